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

// NewsRepository handles news and announcement database operations
type NewsRepository struct {
	db *sqlx.DB
}

// NewNewsRepository creates a new NewsRepository
func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// NewsFilters narrows news listings
type NewsFilters struct {
	NewsType      *string
	PublishedOnly bool
}

// List retrieves news items, newest first. With PublishedOnly set, expired
// items (expires_at in the past) are excluded.
func (r *NewsRepository) List(ctx context.Context, filters NewsFilters) ([]*models.News, error) {
	query := `SELECT * FROM news WHERE 1=1`
	args := make([]interface{}, 0)
	paramIndex := 1

	if filters.NewsType != nil {
		query += fmt.Sprintf(` AND news_type = $%d`, paramIndex)
		args = append(args, *filters.NewsType)
		paramIndex++
	}
	if filters.PublishedOnly {
		query += ` AND is_published = TRUE AND (expires_at IS NULL OR expires_at > NOW())`
	}
	query += ` ORDER BY COALESCE(published_at, created_at) DESC`

	items := make([]*models.News, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	return items, nil
}

// GetByID retrieves a news item by ID
func (r *NewsRepository) GetByID(ctx context.Context, id string) (*models.News, error) {
	var item models.News
	err := r.db.GetContext(ctx, &item, `SELECT * FROM news WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get news: %w", err)
	}
	return &item, nil
}

// Create inserts a new news item. Items created already published get a
// published_at stamp.
func (r *NewsRepository) Create(ctx context.Context, item *models.News) error {
	item.ID = uuid.New().String()
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.IsPublished && item.PublishedAt == nil {
		item.PublishedAt = &now
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO news (id, title, content, news_type, cover_image, views, expires_at, is_published, published_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		item.ID, item.Title, item.Content, item.NewsType, item.CoverImage,
		item.Views, item.ExpiresAt, item.IsPublished, item.PublishedAt,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert news: %w", err)
	}
	return nil
}

// Update persists all mutable fields. Transitioning to published for the
// first time stamps published_at.
func (r *NewsRepository) Update(ctx context.Context, item *models.News) error {
	now := time.Now()
	item.UpdatedAt = now
	if item.IsPublished && item.PublishedAt == nil {
		item.PublishedAt = &now
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE news
		 SET title = $2, content = $3, news_type = $4, cover_image = $5,
		     expires_at = $6, is_published = $7, published_at = $8, updated_at = $9
		 WHERE id = $1`,
		item.ID, item.Title, item.Content, item.NewsType, item.CoverImage,
		item.ExpiresAt, item.IsPublished, item.PublishedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update news: %w", err)
	}
	return nil
}

// Delete removes a news item
func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete news: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter without touching updated_at
func (r *NewsRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE news SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment news views: %w", err)
	}
	return nil
}
