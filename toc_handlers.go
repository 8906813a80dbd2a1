package inkwell

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eringen/inkwell/toc"
)

// lookupTOC resolves the widget named by the :id path parameter.
func (a *App) lookupTOC(c echo.Context) (*toc.Widget, error) {
	nav, ok := a.TOC.Lookup(c.Param("id"))
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "unknown table of contents")
	}
	return nav, nil
}

func (a *App) handleTOCToggle(c echo.Context) error {
	nav, err := a.lookupTOC(c)
	if err != nil {
		return err
	}
	nav.Toggle()
	return Render(c, a.Views.TOC(nav))
}

// handleTOCVisible applies visibility notifications reported by the
// browser. The form carries repeated slug/ratio pairs in delivery order.
func (a *App) handleTOCVisible(c echo.Context) error {
	nav, err := a.lookupTOC(c)
	if err != nil {
		return err
	}
	entries, err := parseEntries(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	nav.Notify(entries...)
	return Render(c, a.Views.TOC(nav))
}

func (a *App) handleTOCRelease(c echo.Context) error {
	a.TOC.Release(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func parseEntries(c echo.Context) ([]toc.Entry, error) {
	form, err := c.FormParams()
	if err != nil {
		return nil, err
	}
	slugs := form["slug"]
	ratios := form["ratio"]
	if len(slugs) != len(ratios) {
		return nil, errors.New("slug and ratio counts differ")
	}
	entries := make([]toc.Entry, len(slugs))
	for i, slug := range slugs {
		ratio, err := strconv.ParseFloat(ratios[i], 64)
		if err != nil || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
			return nil, fmt.Errorf("invalid ratio %q", ratios[i])
		}
		entries[i] = toc.Entry{Slug: slug, Ratio: ratio}
	}
	return entries, nil
}
