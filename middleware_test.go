package inkwell

import (
	"net/http"
	"testing"
)

func TestCacheControlFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/public/toc.js", "public, max-age=31536000, immutable"},
		{"/feed.xml", "public, max-age=86400"},
		{"/blog/hello/", "no-store"},
		{"/toc/abc/visible/", "no-store"},
		{"/admin/", "no-store"},
		{"/", "public, max-age=3600"},
	}
	for _, tt := range tests {
		if got := cacheControlFor(tt.path); got != tt.want {
			t.Errorf("cacheControlFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsTOCRequest(t *testing.T) {
	if !isTOCRequest("/toc/abc/release/") {
		t.Error("release endpoint should be a TOC request")
	}
	if isTOCRequest("/admin/save/") || isTOCRequest("/tocs/") {
		t.Error("only /toc/ paths are TOC requests")
	}
}

func TestIsFileRoute(t *testing.T) {
	for _, p := range []string{"/public/toc.js", "/sitemap.xml", "/favicon.svg"} {
		if !isFileRoute(p) {
			t.Errorf("%s should keep its exact name", p)
		}
	}
	if isFileRoute("/blog/hello") {
		t.Error("post pages get a trailing slash")
	}
}

func TestCSRFRequiredOutsideTOC(t *testing.T) {
	a := setupTestApp(t)
	if rec := do(a, http.MethodPost, "/admin/login/", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("login without token = %d, want 403", rec.Code)
	}
}
