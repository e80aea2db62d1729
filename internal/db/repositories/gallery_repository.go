// gallery_repository.go implements GalleryRepository for media albums and the
// homepage slider. Album media is a JSONB array persisted opaquely.
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

// GalleryRepository handles gallery and slider image database operations
type GalleryRepository struct {
	db *sqlx.DB
}

// NewGalleryRepository creates a new GalleryRepository
func NewGalleryRepository(db *sqlx.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// ListGalleries retrieves albums, optionally filtered by category and
// publication state, newest first
func (r *GalleryRepository) ListGalleries(ctx context.Context, category *string, publishedOnly bool) ([]*models.Gallery, error) {
	query := `SELECT * FROM galleries WHERE 1=1`
	args := make([]interface{}, 0)
	if category != nil {
		query += ` AND category = $1`
		args = append(args, *category)
	}
	if publishedOnly {
		query += ` AND is_published = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	galleries := make([]*models.Gallery, 0)
	if err := r.db.SelectContext(ctx, &galleries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list galleries: %w", err)
	}
	return galleries, nil
}

// GetGallery retrieves an album by ID
func (r *GalleryRepository) GetGallery(ctx context.Context, id string) (*models.Gallery, error) {
	var gallery models.Gallery
	err := r.db.GetContext(ctx, &gallery, `SELECT * FROM galleries WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery: %w", err)
	}
	return &gallery, nil
}

// CreateGallery inserts a new album
func (r *GalleryRepository) CreateGallery(ctx context.Context, gallery *models.Gallery) error {
	gallery.ID = uuid.New().String()
	now := time.Now()
	gallery.CreatedAt = now
	gallery.UpdatedAt = now
	if gallery.Media == nil {
		gallery.Media = []byte(`[]`)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO galleries (id, title, description, category, cover_image, media, views, is_published, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		gallery.ID, gallery.Title, gallery.Description, gallery.Category,
		gallery.CoverImage, gallery.Media, gallery.Views, gallery.IsPublished,
		gallery.CreatedAt, gallery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert gallery: %w", err)
	}
	return nil
}

// UpdateGallery persists all mutable album fields
func (r *GalleryRepository) UpdateGallery(ctx context.Context, gallery *models.Gallery) error {
	gallery.UpdatedAt = time.Now()
	if gallery.Media == nil {
		gallery.Media = []byte(`[]`)
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE galleries
		 SET title = $2, description = $3, category = $4, cover_image = $5,
		     media = $6, is_published = $7, updated_at = $8
		 WHERE id = $1`,
		gallery.ID, gallery.Title, gallery.Description, gallery.Category,
		gallery.CoverImage, gallery.Media, gallery.IsPublished, gallery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update gallery: %w", err)
	}
	return nil
}

// DeleteGallery removes an album
func (r *GalleryRepository) DeleteGallery(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM galleries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete gallery: %w", err)
	}
	return nil
}

// IncrementGalleryViews bumps the view counter without touching updated_at
func (r *GalleryRepository) IncrementGalleryViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE galleries SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment gallery views: %w", err)
	}
	return nil
}

// ListSliderImages retrieves carousel slides in display order
func (r *GalleryRepository) ListSliderImages(ctx context.Context, activeOnly bool) ([]*models.SliderImage, error) {
	query := `SELECT * FROM slider_images`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY display_order ASC, created_at ASC`

	slides := make([]*models.SliderImage, 0)
	if err := r.db.SelectContext(ctx, &slides, query); err != nil {
		return nil, fmt.Errorf("failed to list slider images: %w", err)
	}
	return slides, nil
}

// GetSliderImage retrieves a slide by ID
func (r *GalleryRepository) GetSliderImage(ctx context.Context, id string) (*models.SliderImage, error) {
	var slide models.SliderImage
	err := r.db.GetContext(ctx, &slide, `SELECT * FROM slider_images WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slider image: %w", err)
	}
	return &slide, nil
}

// CreateSliderImage inserts a new slide
func (r *GalleryRepository) CreateSliderImage(ctx context.Context, slide *models.SliderImage) error {
	slide.ID = uuid.New().String()
	now := time.Now()
	slide.CreatedAt = now
	slide.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO slider_images (id, title, subtitle, image_url, link_url, display_order, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		slide.ID, slide.Title, slide.Subtitle, slide.ImageURL, slide.LinkURL,
		slide.DisplayOrder, slide.IsActive, slide.CreatedAt, slide.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert slider image: %w", err)
	}
	return nil
}

// UpdateSliderImage persists all mutable slide fields
func (r *GalleryRepository) UpdateSliderImage(ctx context.Context, slide *models.SliderImage) error {
	slide.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE slider_images
		 SET title = $2, subtitle = $3, image_url = $4, link_url = $5,
		     display_order = $6, is_active = $7, updated_at = $8
		 WHERE id = $1`,
		slide.ID, slide.Title, slide.Subtitle, slide.ImageURL, slide.LinkURL,
		slide.DisplayOrder, slide.IsActive, slide.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update slider image: %w", err)
	}
	return nil
}

// DeleteSliderImage removes a slide
func (r *GalleryRepository) DeleteSliderImage(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM slider_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete slider image: %w", err)
	}
	return nil
}
