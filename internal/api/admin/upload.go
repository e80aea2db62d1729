// upload.go implements the media upload endpoint. Files go to the configured
// storage backend under a date-partitioned path; only configured MIME types are
// accepted and the size cap comes from configuration.
package admin

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bondhu-gosthi/cms-backend/internal/config"
	"github.com/bondhu-gosthi/cms-backend/internal/middleware"
	"github.com/bondhu-gosthi/cms-backend/internal/storage"
	"github.com/bondhu-gosthi/cms-backend/internal/telemetry"
)

// UploadHandlers handles media file uploads
type UploadHandlers struct {
	cfg     *config.Config
	backend storage.Storage
}

// NewUploadHandlers creates a new upload handlers instance
func NewUploadHandlers(cfg *config.Config, backend storage.Storage) *UploadHandlers {
	return &UploadHandlers{cfg: cfg, backend: backend}
}

// extensionFor maps detected MIME types to file extensions. Falling back to the
// original filename's extension keeps unusual but allowed types working.
func extensionFor(mimeType, originalName string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	case "application/pdf":
		return ".pdf"
	}
	if ext := filepath.Ext(originalName); ext != "" && len(ext) <= 8 {
		return strings.ToLower(ext)
	}
	return ".bin"
}

// @Summary      Upload a media file
// @Description  Uploads an image (or other configured type) to the storage backend and returns its URL. Requires authentication.
// @Tags         Uploads
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true   "File to upload"
// @Param        folder  formData  string  false  "Optional subfolder (e.g. gallery, events)"
// @Success      201  {object}  map[string]interface{}  "url, path, size, checksum, content_type"
// @Failure      400  {object}  map[string]interface{}  "Missing file or unsupported type"
// @Failure      413  {object}  map[string]interface{}  "File too large"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/admin/upload [post]
// UploadHandler handles POST /api/admin/upload
func (h *UploadHandlers) UploadHandler(c *gin.Context) {
	backendName := h.cfg.Storage.DefaultBackend
	maxBytes := int64(h.cfg.Uploads.MaxSizeMB) << 20

	if err := c.Request.ParseMultipartForm(maxBytes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse multipart form"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid file upload"})
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("File exceeds maximum size of %dMB", h.cfg.Uploads.MaxSizeMB),
		})
		return
	}

	// Buffer the file so the content type can be sniffed before upload.
	fileBuffer := &bytes.Buffer{}
	size, err := io.Copy(fileBuffer, io.LimitReader(file, maxBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	if size > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("File exceeds maximum size of %dMB", h.cfg.Uploads.MaxSizeMB),
		})
		return
	}

	// Sniff the real content type rather than trusting the client header.
	contentType := http.DetectContentType(fileBuffer.Bytes())
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if !h.typeAllowed(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Unsupported file type: %s", contentType),
		})
		return
	}

	folder := sanitizeFolder(c.PostForm("folder"))
	now := time.Now().UTC()
	storagePath := fmt.Sprintf("%s/%04d/%02d/%s%s",
		folder, now.Year(), now.Month(), uuid.New().String(), extensionFor(contentType, header.Filename))

	result, err := h.backend.Upload(c.Request.Context(), storagePath, bytes.NewReader(fileBuffer.Bytes()), size)
	if err != nil {
		telemetry.MediaUploadsTotal.WithLabelValues(backendName, "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
		return
	}
	telemetry.MediaUploadsTotal.WithLabelValues(backendName, "ok").Inc()

	url, err := h.backend.GetURL(c.Request.Context(), result.Path, h.cfg.Storage.URLExpiry)
	if err != nil {
		// The file is stored; return the path even when URL generation fails.
		url = result.Path
	}

	c.Set(middleware.AuditResourceIDKey, result.Path)
	c.Set(middleware.AuditResourceTypeKey, "media")
	c.Set(middleware.AuditDescriptionKey, "Uploaded media file: "+header.Filename)

	c.JSON(http.StatusCreated, gin.H{
		"url":          url,
		"path":         result.Path,
		"size":         result.Size,
		"checksum":     result.Checksum,
		"content_type": contentType,
	})
}

// @Summary      Delete a media file
// @Description  Removes a file from the storage backend by its storage path. Requires authentication.
// @Tags         Uploads
// @Security     Bearer
// @Produce      json
// @Param        filepath  path  string  true  "Storage path of the file"
// @Success      200  {object}  map[string]interface{}  "message"
// @Failure      404  {object}  map[string]interface{}  "File not found"
// @Router       /api/admin/media/{filepath} [delete]
// DeleteHandler handles DELETE /api/admin/media/*filepath
func (h *UploadHandlers) DeleteHandler(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("filepath"), "/")
	if path == "" || strings.Contains(path, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file path"})
		return
	}

	ctx := c.Request.Context()

	// A trailing slash removes every file under the folder
	if strings.HasSuffix(path, "/") {
		if err := h.backend.DeletePrefix(ctx, path); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete folder"})
			return
		}

		c.Set(middleware.AuditResourceIDKey, path)
		c.Set(middleware.AuditResourceTypeKey, "media_folder")
		c.Set(middleware.AuditDescriptionKey, "Deleted media folder: "+path)

		c.JSON(http.StatusOK, gin.H{"message": "Folder deleted"})
		return
	}
	exists, err := h.backend.Exists(ctx, path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to access file"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if err := h.backend.Delete(ctx, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.Set(middleware.AuditResourceIDKey, path)
	c.Set(middleware.AuditResourceTypeKey, "media")
	c.Set(middleware.AuditDescriptionKey, "Deleted media file: "+path)

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}

// @Summary      List media files
// @Description  Lists stored media paths, optionally filtered by prefix. Requires authentication.
// @Tags         Uploads
// @Security     Bearer
// @Produce      json
// @Param        prefix  query  string  false  "Path prefix filter (e.g. gallery/2026/)"
// @Param        limit   query  int     false  "Maximum number of paths (default 100, max 1000)"
// @Success      200  {object}  map[string]interface{}  "files, count"
// @Router       /api/admin/media [get]
// ListHandler handles GET /api/admin/media
func (h *UploadHandlers) ListHandler(c *gin.Context) {
	prefix := strings.TrimPrefix(c.Query("prefix"), "/")
	if strings.Contains(prefix, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prefix"})
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Limit must be between 1 and 1000"})
			return
		}
		limit = v
	}

	files, err := h.backend.ListObjects(c.Request.Context(), prefix, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list files"})
		return
	}
	if files == nil {
		files = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"files": files,
		"count": len(files),
	})
}

// typeAllowed reports whether the detected MIME type is in the configured allowlist.
// An empty allowlist accepts any image type.
func (h *UploadHandlers) typeAllowed(contentType string) bool {
	if len(h.cfg.Uploads.AllowedTypes) == 0 {
		return strings.HasPrefix(contentType, "image/")
	}
	for _, allowed := range h.cfg.Uploads.AllowedTypes {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}

// sanitizeFolder restricts the optional folder form value to a single flat
// path segment so uploads cannot escape the media prefix.
func sanitizeFolder(folder string) string {
	folder = strings.ToLower(strings.TrimSpace(folder))
	if folder == "" {
		return "uploads"
	}
	for _, r := range folder {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return "uploads"
		}
	}
	return folder
}
