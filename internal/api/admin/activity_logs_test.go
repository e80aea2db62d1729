package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/retention"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newActivityLogTestRouter(t *testing.T) (sqlmock.Sqlmock, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logRepo := repositories.NewActivityLogRepository(
		sqlx.NewDb(db, "sqlmock"), retention.New(retention.DefaultDays))
	h := NewActivityLogHandlers(logRepo)

	r := gin.New()
	r.GET("/activity-logs", h.ListHandler())
	r.GET("/activity-logs/stats", h.StatsHandler())
	r.GET("/activity-logs/:id", h.GetHandler())
	return mock, r
}

func getPath(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---------------------------------------------------------------------------
// parseDate
// ---------------------------------------------------------------------------

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", false},
		{"2026-08-30", true},
		{"2026-08-30T12:00:00Z", true},
		{"yesterday", false},
		{"30/08/2026", false},
	}
	for _, tt := range tests {
		got := parseDate(tt.raw)
		if (got != nil) != tt.want {
			t.Errorf("parseDate(%q) = %v, want parsed=%v", tt.raw, got, tt.want)
		}
	}
	if got := parseDate("2026-08-30"); got != nil {
		want := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("parseDate day-only = %v, want %v", got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// List filter validation
// ---------------------------------------------------------------------------

func TestListActivityLogs_UnknownModuleRejected(t *testing.T) {
	_, r := newActivityLogTestRouter(t)

	w := getPath(t, r, "/activity-logs?module=billing")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
}

func TestListActivityLogs_UnknownActionRejected(t *testing.T) {
	_, r := newActivityLogTestRouter(t)

	w := getPath(t, r, "/activity-logs?action=publish")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
}

func TestListActivityLogs_ValidFilters(t *testing.T) {
	mock, r := newActivityLogTestRouter(t)
	mock.ExpectQuery("SELECT COUNT.*FROM activity_logs").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT.*FROM activity_logs").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := getPath(t, r, "/activity-logs?module=events&action=create")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestListActivityLogs_MalformedDateIgnored(t *testing.T) {
	mock, r := newActivityLogTestRouter(t)
	mock.ExpectQuery("SELECT COUNT.*FROM activity_logs").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT.*FROM activity_logs").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// A bad date degrades to an unfiltered listing instead of an error.
	w := getPath(t, r, "/activity-logs?start_date=not-a-date")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestGetActivityLog_NotFound(t *testing.T) {
	mock, r := newActivityLogTestRouter(t)
	mock.ExpectQuery("SELECT.*FROM activity_logs").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := getPath(t, r, "/activity-logs/missing")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", w.Code, w.Body.String())
	}
}
