package audit

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/retention"
)

func newRecorder(t *testing.T) (*Recorder, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	logs := repositories.NewActivityLogRepository(sqlx.NewDb(db, "sqlmock"), retention.New(retention.DefaultDays))
	return NewRecorder(logs), mock
}

func TestRecord_Success(t *testing.T) {
	recorder, mock := newRecorder(t)
	mock.ExpectExec("INSERT INTO activity_logs").WillReturnResult(sqlmock.NewResult(1, 1))

	err := recorder.Record(context.Background(), Entry{
		AdminID:      "admin-1",
		Action:       models.ActionUpdate,
		Module:       models.ModuleEvents,
		Description:  "Updated event: Annual Meet",
		ResourceID:   "e0f9c9d0-0000-0000-0000-000000000001",
		ResourceType: "event",
		IPAddress:    "203.0.113.7",
		UserAgent:    "curl/8.0",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRecord_PathResourceID(t *testing.T) {
	recorder, mock := newRecorder(t)

	// Media actions reference files by storage path, not by row UUID. The
	// resource_id column is TEXT so the path is stored as-is.
	path := "gallery/2026/09/4f2c1a7e-8b55-4d2f-9c3a-2e6f0d1b9a44.jpg"
	mock.ExpectExec("INSERT INTO activity_logs").
		WithArgs(sqlmock.AnyArg(), "admin-1", models.ActionCreate, models.ModuleGallery,
			"Uploaded media file: photo.jpg", path, "media", nil, nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := recorder.Record(context.Background(), Entry{
		AdminID:      "admin-1",
		Action:       models.ActionCreate,
		Module:       models.ModuleGallery,
		Description:  "Uploaded media file: photo.jpg",
		ResourceID:   path,
		ResourceType: "media",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRecord_EmptyOptionalFieldsStayNull(t *testing.T) {
	recorder, mock := newRecorder(t)

	// nil args for resource_id, resource_type, ip_address, user_agent, changes
	mock.ExpectExec("INSERT INTO activity_logs").
		WithArgs(sqlmock.AnyArg(), "admin-1", models.ActionLogin, models.ModuleAuth,
			"Admin logged in", nil, nil, nil, nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := recorder.Record(context.Background(), Entry{
		AdminID:     "admin-1",
		Action:      models.ActionLogin,
		Module:      models.ModuleAuth,
		Description: "Admin logged in",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRecord_InsertFailureReturnsError(t *testing.T) {
	recorder, mock := newRecorder(t)
	mock.ExpectExec("INSERT INTO activity_logs").WillReturnError(errors.New("db error"))

	err := recorder.Record(context.Background(), Entry{
		AdminID: "admin-1",
		Action:  models.ActionDelete,
		Module:  models.ModuleNews,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
