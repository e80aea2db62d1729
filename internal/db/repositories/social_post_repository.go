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

// SocialPostRepository handles embedded social post database operations
type SocialPostRepository struct {
	db *sqlx.DB
}

// NewSocialPostRepository creates a new SocialPostRepository
func NewSocialPostRepository(db *sqlx.DB) *SocialPostRepository {
	return &SocialPostRepository{db: db}
}

// List retrieves social posts, optionally filtered by platform and
// publication state, newest first
func (r *SocialPostRepository) List(ctx context.Context, platform *string, publishedOnly bool) ([]*models.SocialPost, error) {
	query := `SELECT * FROM social_posts WHERE 1=1`
	args := make([]interface{}, 0)
	if platform != nil {
		query += ` AND platform = $1`
		args = append(args, *platform)
	}
	if publishedOnly {
		query += ` AND is_published = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	posts := make([]*models.SocialPost, 0)
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list social posts: %w", err)
	}
	return posts, nil
}

// GetByID retrieves a social post by ID
func (r *SocialPostRepository) GetByID(ctx context.Context, id string) (*models.SocialPost, error) {
	var post models.SocialPost
	err := r.db.GetContext(ctx, &post, `SELECT * FROM social_posts WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get social post: %w", err)
	}
	return &post, nil
}

// Create inserts a new social post
func (r *SocialPostRepository) Create(ctx context.Context, post *models.SocialPost) error {
	post.ID = uuid.New().String()
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO social_posts (id, platform, post_url, caption, embed_code, is_published, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		post.ID, post.Platform, post.PostURL, post.Caption, post.EmbedCode,
		post.IsPublished, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert social post: %w", err)
	}
	return nil
}

// Update persists all mutable social post fields
func (r *SocialPostRepository) Update(ctx context.Context, post *models.SocialPost) error {
	post.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE social_posts
		 SET platform = $2, post_url = $3, caption = $4, embed_code = $5,
		     is_published = $6, updated_at = $7
		 WHERE id = $1`,
		post.ID, post.Platform, post.PostURL, post.Caption, post.EmbedCode,
		post.IsPublished, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update social post: %w", err)
	}
	return nil
}

// Delete removes a social post
func (r *SocialPostRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM social_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete social post: %w", err)
	}
	return nil
}
