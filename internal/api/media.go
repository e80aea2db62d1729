package api

import (
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/storage"
)

// serveMediaHandler streams uploaded files through the API server. It is only
// exercised by the local backend with serve_directly enabled; cloud backends
// hand out signed URLs and never hit this route.
func serveMediaHandler(backend storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := strings.TrimPrefix(c.Param("filepath"), "/")
		if path == "" || strings.Contains(path, "..") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file path"})
			return
		}

		ctx := c.Request.Context()

		exists, err := backend.Exists(ctx, path)
		if err != nil {
			slog.Error("failed to check media file", "path", path, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to access file"})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}

		meta, err := backend.GetMetadata(ctx, path)
		if err != nil {
			slog.Error("failed to read media metadata", "path", path, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to access file"})
			return
		}

		reader, err := backend.Download(ctx, path)
		if err != nil {
			slog.Error("failed to open media file", "path", path, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
			return
		}
		defer reader.Close()

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		headers := map[string]string{
			"Content-Disposition": "inline",
			"Cache-Control":       "public, max-age=86400",
		}
		if meta.Checksum != "" {
			headers["X-Checksum-SHA256"] = meta.Checksum
		}

		c.DataFromReader(http.StatusOK, meta.Size, contentType, reader, headers)
	}
}
