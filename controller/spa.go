package controller

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

func (ctrl *controller) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// spa serves existing files from the public directory. Every other path that
// is neither an API call nor an asset gets index.html, the client side router
// takes it from there.
func (ctrl *controller) spa(c echo.Context) error {
	p := path.Clean("/" + c.Param("*"))
	name := filepath.Join(ctrl.public, filepath.FromSlash(p))
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return c.File(name)
	}
	if p == "/api" || strings.HasPrefix(p, "/api/") || isAsset(p) {
		return ErrNotFound(fmt.Errorf("no file for %s", p))
	}

	index := filepath.Join(ctrl.public, "index.html")
	if _, err := os.Stat(index); err != nil {
		return ErrNotFound(fmt.Errorf("index.html: %w", err))
	}
	h := c.Response().Header()
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
	return c.File(index)
}
