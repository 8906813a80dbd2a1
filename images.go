package inkwell

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	uploadsSubdir = "uploads"
)

// Image describes a processed hero image.
type Image struct {
	Filename string
	Width    int
	Height   int
	Size     int
}

// processImage decodes an image from src, resizes it to maxImageWidth if it
// is wider, and encodes it as JPEG under name.jpg.
func processImage(src io.Reader, name string) (Image, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return Image{
		Filename: name + ".jpg",
		Width:    w,
		Height:   h,
		Size:     buf.Len(),
	}, buf.Bytes(), nil
}

// isLocalImage reports whether ref names a file next to the post rather
// than a URL or a site path.
func isLocalImage(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "/") {
		return false
	}
	u, err := url.Parse(ref)
	return err == nil && u.Scheme == "" && u.Host == ""
}

// importHeroImage converts the image at srcPath into <staticDir>/uploads and
// returns its public path.
func importHeroImage(staticDir, srcPath, slug string) (string, Image, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return "", Image{}, err
	}
	defer f.Close()

	img, data, err := processImage(f, slug)
	if err != nil {
		return "", Image{}, err
	}
	dir := filepath.Join(staticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", Image{}, fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, img.Filename), data, 0o644); err != nil {
		return "", Image{}, fmt.Errorf("write image: %w", err)
	}
	return "/public/" + uploadsSubdir + "/" + img.Filename, img, nil
}
