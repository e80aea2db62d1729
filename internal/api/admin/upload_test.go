package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/config"
	"github.com/bondhu-gosthi/cms-backend/internal/storage"
	"github.com/bondhu-gosthi/cms-backend/internal/storage/local"
)

// pngHeader is enough for http.DetectContentType to report image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func newUploadTestRouter(t *testing.T) (*gin.Engine, storage.Storage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Storage.DefaultBackend = "local"
	cfg.Storage.URLExpiry = time.Hour
	cfg.Storage.Local.BasePath = t.TempDir()
	cfg.Server.BaseURL = "http://localhost:8080"
	cfg.Uploads.MaxSizeMB = 5

	backend, err := local.New(&cfg.Storage.Local, cfg.Server.BaseURL)
	if err != nil {
		t.Fatalf("creating local backend: %v", err)
	}

	handlers := NewUploadHandlers(cfg, backend)

	router := gin.New()
	router.POST("/api/admin/upload", handlers.UploadHandler)
	router.GET("/api/admin/media", handlers.ListHandler)
	router.DELETE("/api/admin/media/*filepath", handlers.DeleteHandler)
	return router, backend
}

func multipartBody(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

// ---------------------------------------------------------------------------
// Upload
// ---------------------------------------------------------------------------

func TestUpload_Success(t *testing.T) {
	router, backend := newUploadTestRouter(t)

	body, contentType := multipartBody(t, "file", "photo.png", pngHeader)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		URL         string `json:"url"`
		Path        string `json:"path"`
		Size        int64  `json:"size"`
		ContentType string `json:"content_type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Path == "" {
		t.Fatal("expected a storage path in the response")
	}
	if !strings.HasSuffix(resp.Path, ".png") {
		t.Errorf("expected a .png path, got %q", resp.Path)
	}
	if resp.ContentType != "image/png" {
		t.Errorf("expected image/png, got %q", resp.ContentType)
	}
	if resp.Size != int64(len(pngHeader)) {
		t.Errorf("expected size %d, got %d", len(pngHeader), resp.Size)
	}

	exists, err := backend.Exists(context.Background(), resp.Path)
	if err != nil {
		t.Fatalf("checking stored file: %v", err)
	}
	if !exists {
		t.Error("uploaded file not found in the storage backend")
	}
}

func TestUpload_UnsupportedType(t *testing.T) {
	router, _ := newUploadTestRouter(t)

	body, contentType := multipartBody(t, "file", "notes.txt", []byte("plain text, not an image"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpload_MissingFile(t *testing.T) {
	router, _ := newUploadTestRouter(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("folder", "gallery")
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestListMedia_FiltersByPrefix(t *testing.T) {
	router, backend := newUploadTestRouter(t)
	ctx := context.Background()

	for _, path := range []string{"gallery/2026/a.png", "gallery/2026/b.png", "events/2026/c.png"} {
		if _, err := backend.Upload(ctx, path, bytes.NewReader(pngHeader), int64(len(pngHeader))); err != nil {
			t.Fatalf("seeding %s: %v", path, err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/media?prefix=gallery/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Files []string `json:"files"`
		Count int      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 2 || len(resp.Files) != 2 {
		t.Fatalf("expected 2 files, got count=%d files=%v", resp.Count, resp.Files)
	}
	for _, f := range resp.Files {
		if !strings.HasPrefix(f, "gallery/") {
			t.Errorf("file outside the prefix: %s", f)
		}
	}
}

func TestListMedia_EmptyResultIsArray(t *testing.T) {
	router, _ := newUploadTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/media?prefix=nothing-here/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"files":[]`) {
		t.Errorf("expected an empty array, got %s", w.Body.String())
	}
}

func TestListMedia_InvalidLimit(t *testing.T) {
	router, _ := newUploadTestRouter(t)

	for _, limit := range []string{"0", "-5", "1001", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/media?limit="+limit, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: expected 400, got %d", limit, w.Code)
		}
	}
}

func TestListMedia_TraversalPrefixRejected(t *testing.T) {
	router, _ := newUploadTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/media?prefix=gallery/../../etc/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestDeleteMedia_Success(t *testing.T) {
	router, backend := newUploadTestRouter(t)

	path := "gallery/2026/09/test-file.png"
	if _, err := backend.Upload(context.Background(), path, bytes.NewReader(pngHeader), int64(len(pngHeader))); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/media/"+path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	exists, err := backend.Exists(context.Background(), path)
	if err != nil {
		t.Fatalf("checking deleted file: %v", err)
	}
	if exists {
		t.Error("file still exists after deletion")
	}
}

func TestDeleteMedia_NotFound(t *testing.T) {
	router, _ := newUploadTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/media/gallery/2026/09/missing.png", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteMediaFolder_RemovesPrefix(t *testing.T) {
	router, backend := newUploadTestRouter(t)
	ctx := context.Background()

	for _, path := range []string{"gallery/2026/09/a.png", "gallery/2026/09/b.png", "events/2026/09/c.png"} {
		if _, err := backend.Upload(ctx, path, bytes.NewReader(pngHeader), int64(len(pngHeader))); err != nil {
			t.Fatalf("seeding %s: %v", path, err)
		}
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/media/gallery/2026/09/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	for _, path := range []string{"gallery/2026/09/a.png", "gallery/2026/09/b.png"} {
		exists, err := backend.Exists(ctx, path)
		if err != nil {
			t.Fatalf("checking %s: %v", path, err)
		}
		if exists {
			t.Errorf("%s still exists after folder delete", path)
		}
	}

	exists, err := backend.Exists(ctx, "events/2026/09/c.png")
	if err != nil {
		t.Fatalf("checking kept file: %v", err)
	}
	if !exists {
		t.Error("file outside the folder was deleted")
	}
}

func TestDeleteMedia_TraversalRejected(t *testing.T) {
	router, _ := newUploadTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/media/gallery/../../secrets.txt", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
