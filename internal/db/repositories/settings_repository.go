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

// SettingsRepository handles the singleton site settings row
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the settings row, creating it with defaults on first read
func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := r.db.GetContext(ctx, &settings, `SELECT * FROM settings LIMIT 1`)
	if err == sql.ErrNoRows {
		return r.createDefault(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

func (r *SettingsRepository) createDefault(ctx context.Context) (*models.Settings, error) {
	settings := &models.Settings{
		ID:          uuid.New().String(),
		Contact:     []byte(`{}`),
		SocialMedia: []byte(`{}`),
		SEO:         []byte(`{}`),
		UpdatedAt:   time.Now(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (id, site_name, tagline, logo, contact, social_media, seo, maintenance_mode, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		settings.ID, settings.SiteName, settings.Tagline, settings.Logo,
		settings.Contact, settings.SocialMedia, settings.SEO,
		settings.MaintenanceMode, settings.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}
	return settings, nil
}

// Update persists all settings fields
func (r *SettingsRepository) Update(ctx context.Context, settings *models.Settings) error {
	settings.UpdatedAt = time.Now()
	if settings.Contact == nil {
		settings.Contact = []byte(`{}`)
	}
	if settings.SocialMedia == nil {
		settings.SocialMedia = []byte(`{}`)
	}
	if settings.SEO == nil {
		settings.SEO = []byte(`{}`)
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE settings
		 SET site_name = $2, tagline = $3, logo = $4, contact = $5,
		     social_media = $6, seo = $7, maintenance_mode = $8, updated_at = $9
		 WHERE id = $1`,
		settings.ID, settings.SiteName, settings.Tagline, settings.Logo,
		settings.Contact, settings.SocialMedia, settings.SEO,
		settings.MaintenanceMode, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
