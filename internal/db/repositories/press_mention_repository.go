package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bondhu-gosthi/cms-backend/internal/db/models"
)

// PressMentionRepository handles press coverage database operations
type PressMentionRepository struct {
	db *sqlx.DB
}

// NewPressMentionRepository creates a new PressMentionRepository
func NewPressMentionRepository(db *sqlx.DB) *PressMentionRepository {
	return &PressMentionRepository{db: db}
}

// List retrieves press mentions, most recently published first
func (r *PressMentionRepository) List(ctx context.Context, publishedOnly bool) ([]*models.PressMention, error) {
	query := `SELECT * FROM press_mentions`
	if publishedOnly {
		query += ` WHERE is_published = TRUE`
	}
	query += ` ORDER BY published_on DESC NULLS LAST, created_at DESC`

	mentions := make([]*models.PressMention, 0)
	if err := r.db.SelectContext(ctx, &mentions, query); err != nil {
		return nil, fmt.Errorf("failed to list press mentions: %w", err)
	}
	return mentions, nil
}

// GetByID retrieves a press mention by ID
func (r *PressMentionRepository) GetByID(ctx context.Context, id string) (*models.PressMention, error) {
	var mention models.PressMention
	err := r.db.GetContext(ctx, &mention, `SELECT * FROM press_mentions WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get press mention: %w", err)
	}
	return &mention, nil
}

// Create inserts a new press mention
func (r *PressMentionRepository) Create(ctx context.Context, mention *models.PressMention) error {
	mention.ID = uuid.New().String()
	now := time.Now()
	mention.CreatedAt = now
	mention.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO press_mentions (id, outlet, title, article_url, published_on, thumbnail, is_published, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		mention.ID, mention.Outlet, mention.Title, mention.ArticleURL,
		mention.PublishedOn, mention.Thumbnail, mention.IsPublished,
		mention.CreatedAt, mention.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert press mention: %w", err)
	}
	return nil
}

// Update persists all mutable press mention fields
func (r *PressMentionRepository) Update(ctx context.Context, mention *models.PressMention) error {
	mention.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE press_mentions
		 SET outlet = $2, title = $3, article_url = $4, published_on = $5,
		     thumbnail = $6, is_published = $7, updated_at = $8
		 WHERE id = $1`,
		mention.ID, mention.Outlet, mention.Title, mention.ArticleURL,
		mention.PublishedOn, mention.Thumbnail, mention.IsPublished,
		mention.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update press mention: %w", err)
	}
	return nil
}

// Delete removes a press mention
func (r *PressMentionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM press_mentions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete press mention: %w", err)
	}
	return nil
}
