package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
)

var errDB = errors.New("db error")

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var adminCols = []string{
	"id", "name", "email", "password_hash", "role", "is_active",
	"last_login", "created_at", "updated_at",
}

func newAdminRepo(t *testing.T) (*AdminRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewAdminRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func sampleAdminRow() *sqlmock.Rows {
	return sqlmock.NewRows(adminCols).
		AddRow("admin-1", "Alice", "alice@example.com", "$2a$10$hash",
			"super_admin", true, nil, time.Now(), time.Now())
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestAdminCreate_Success(t *testing.T) {
	repo, mock := newAdminRepo(t)
	mock.ExpectExec("INSERT INTO admins").WillReturnResult(sqlmock.NewResult(1, 1))

	admin := &models.Admin{
		Name:         "Alice",
		Email:        "Alice@Example.COM",
		PasswordHash: "$2a$10$hash",
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := repo.Create(context.Background(), admin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.ID == "" {
		t.Error("Create did not assign an ID")
	}
	if admin.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased", admin.Email)
	}
}

func TestAdminCreate_DBError(t *testing.T) {
	repo, mock := newAdminRepo(t)
	mock.ExpectExec("INSERT INTO admins").WillReturnError(errDB)

	admin := &models.Admin{Name: "Alice", Email: "alice@example.com"}
	if err := repo.Create(context.Background(), admin); err == nil {
		t.Error("expected error, got nil")
	}
}

// ---------------------------------------------------------------------------
// GetByID / GetByEmail
// ---------------------------------------------------------------------------

func TestAdminGetByID_Found(t *testing.T) {
	repo, mock := newAdminRepo(t)
	mock.ExpectQuery("SELECT.*FROM admins WHERE id").
		WillReturnRows(sampleAdminRow())

	admin, err := repo.GetByID(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin == nil {
		t.Fatal("expected admin, got nil")
	}
	if !admin.IsSuperAdmin() {
		t.Error("IsSuperAdmin() = false, want true")
	}
}

func TestAdminGetByID_NotFound(t *testing.T) {
	repo, mock := newAdminRepo(t)
	mock.ExpectQuery("SELECT.*FROM admins WHERE id").
		WillReturnRows(sqlmock.NewRows(adminCols))

	admin, err := repo.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin != nil {
		t.Errorf("expected nil, got %v", admin)
	}
}

func TestAdminGetByEmail_Lowercases(t *testing.T) {
	repo, mock := newAdminRepo(t)
	mock.ExpectQuery("SELECT.*FROM admins WHERE email").
		WithArgs("alice@example.com").
		WillReturnRows(sampleAdminRow())

	admin, err := repo.GetByEmail(context.Background(), "ALICE@Example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin == nil {
		t.Fatal("expected admin, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("email lookup must be lowercased: %v", err)
	}
}

// ---------------------------------------------------------------------------
// List / Update
// ---------------------------------------------------------------------------

func TestAdminList_Success(t *testing.T) {
	repo, mock := newAdminRepo(t)
	mock.ExpectQuery("SELECT.*FROM admins ORDER BY created_at DESC").
		WillReturnRows(sampleAdminRow())

	admins, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(admins) != 1 {
		t.Errorf("len(admins) = %d, want 1", len(admins))
	}
}

func TestAdminUpdate_Success(t *testing.T) {
	repo, mock := newAdminRepo(t)
	mock.ExpectExec("UPDATE admins").WillReturnResult(sqlmock.NewResult(0, 1))

	admin := &models.Admin{ID: "admin-1", Name: "Alice", Email: "alice@example.com", Role: models.RoleEditor, IsActive: true}
	if err := repo.Update(context.Background(), admin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdminUpdatePassword_Success(t *testing.T) {
	repo, mock := newAdminRepo(t)
	mock.ExpectExec("UPDATE admins SET password_hash").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(context.Background(), "admin-1", "$2a$10$newhash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdminUpdateLastLogin_Success(t *testing.T) {
	repo, mock := newAdminRepo(t)
	mock.ExpectExec("UPDATE admins SET last_login").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateLastLogin(context.Background(), "admin-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ---------------------------------------------------------------------------
// CountOtherActiveSuperAdmins
// ---------------------------------------------------------------------------

func TestCountOtherActiveSuperAdmins_ExcludesTarget(t *testing.T) {
	repo, mock := newAdminRepo(t)
	mock.ExpectQuery("SELECT COUNT.*FROM admins WHERE role").
		WithArgs(models.RoleSuperAdmin, "admin-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountOtherActiveSuperAdmins(context.Background(), "admin-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("count must exclude the target account: %v", err)
	}
}

func TestCountOtherActiveSuperAdmins_Zero(t *testing.T) {
	repo, mock := newAdminRepo(t)
	mock.ExpectQuery("SELECT COUNT.*FROM admins WHERE role").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	count, err := repo.CountOtherActiveSuperAdmins(context.Background(), "admin-last")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestCountOtherActiveSuperAdmins_Error(t *testing.T) {
	repo, mock := newAdminRepo(t)
	mock.ExpectQuery("SELECT COUNT.*FROM admins WHERE role").WillReturnError(errDB)

	if _, err := repo.CountOtherActiveSuperAdmins(context.Background(), "admin-1"); err == nil {
		t.Error("expected error, got nil")
	}
}
