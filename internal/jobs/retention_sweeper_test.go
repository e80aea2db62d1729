package jobs

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
	"github.com/bondhu-gosthi/cms-backend/internal/retention"
)

func newSweeperTestRepo(t *testing.T) (*repositories.ActivityLogRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return repositories.NewActivityLogRepository(sqlx.NewDb(db, "sqlmock"), retention.New(retention.DefaultDays)), mock
}

func TestNewRetentionSweeper_DefaultsInterval(t *testing.T) {
	repo, _ := newSweeperTestRepo(t)

	s := NewRetentionSweeper(repo, 0)
	if s.interval != defaultSweepInterval {
		t.Errorf("interval = %v, want %v", s.interval, defaultSweepInterval)
	}

	s = NewRetentionSweeper(repo, 15*time.Minute)
	if s.interval != 15*time.Minute {
		t.Errorf("interval = %v, want 15m", s.interval)
	}
}

func TestSweep_DeletesExpiredEntries(t *testing.T) {
	repo, mock := newSweeperTestRepo(t)
	mock.ExpectExec(`DELETE FROM activity_logs`).
		WillReturnResult(sqlmock.NewResult(0, 42))

	s := NewRetentionSweeper(repo, time.Hour)
	s.sweep(context.Background())

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSweep_DatabaseErrorDoesNotPanic(t *testing.T) {
	repo, mock := newSweeperTestRepo(t)
	mock.ExpectExec(`DELETE FROM activity_logs`).
		WillReturnError(context.DeadlineExceeded)

	s := NewRetentionSweeper(repo, time.Hour)
	s.sweep(context.Background())

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStartStop_ExitsCleanly(t *testing.T) {
	repo, mock := newSweeperTestRepo(t)
	// Initial sweep on Start.
	mock.ExpectExec(`DELETE FROM activity_logs`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := NewRetentionSweeper(repo, time.Hour)
	done := make(chan struct{})
	go func() {
		s.Start(context.Background())
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	s.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStart_ContextCancelExits(t *testing.T) {
	repo, mock := newSweeperTestRepo(t)
	mock.ExpectExec(`DELETE FROM activity_logs`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx, cancel := context.WithCancel(context.Background())
	s := NewRetentionSweeper(repo, time.Hour)
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not exit on context cancel")
	}
}
