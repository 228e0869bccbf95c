package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"triptacticx/internal/models"

	"github.com/gin-gonic/gin"
)

const indexFile = "index.html"

// serveIndex отдает index.html фронтенда.
func (h *TripHandler) serveIndex(c *gin.Context) {
	if !h.serveStaticFile(c, indexFile) {
		notFound(c)
	}
}

// noRoute отдает статические файлы для неизвестных GET-путей, иначе 404.
func (h *TripHandler) noRoute(c *gin.Context) {
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		if h.serveStaticFile(c, c.Request.URL.Path) {
			return
		}
	}
	notFound(c)
}

// serveStaticFile отдает файл из staticDir. Путь очищается от "..".
func (h *TripHandler) serveStaticFile(c *gin.Context, requestPath string) bool {
	if h.staticDir == "" {
		return false
	}
	cleaned := path.Clean("/" + requestPath)
	if cleaned == "/" {
		return false
	}
	fullPath := filepath.Join(h.staticDir, filepath.FromSlash(cleaned))

	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		return false
	}
	c.File(fullPath)
	return true
}

func notFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
}
