// sport_repository.go implements SportRepository covering both sports and their
// tournaments. Tournament teams and fixtures live in JSONB and are persisted
// opaquely; the API layer owns their shape.
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

// SportRepository handles sport and tournament database operations
type SportRepository struct {
	db *sqlx.DB
}

// NewSportRepository creates a new SportRepository
func NewSportRepository(db *sqlx.DB) *SportRepository {
	return &SportRepository{db: db}
}

// ListSports retrieves sports, optionally only active ones
func (r *SportRepository) ListSports(ctx context.Context, activeOnly bool) ([]*models.Sport, error) {
	query := `SELECT * FROM sports`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`

	sports := make([]*models.Sport, 0)
	if err := r.db.SelectContext(ctx, &sports, query); err != nil {
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	return sports, nil
}

// GetSport retrieves a sport by ID
func (r *SportRepository) GetSport(ctx context.Context, id string) (*models.Sport, error) {
	var sport models.Sport
	err := r.db.GetContext(ctx, &sport, `SELECT * FROM sports WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sport: %w", err)
	}
	return &sport, nil
}

// CreateSport inserts a new sport
func (r *SportRepository) CreateSport(ctx context.Context, sport *models.Sport) error {
	sport.ID = uuid.New().String()
	now := time.Now()
	sport.CreatedAt = now
	sport.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sports (id, name, description, icon, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sport.ID, sport.Name, sport.Description, sport.Icon, sport.IsActive,
		sport.CreatedAt, sport.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sport: %w", err)
	}
	return nil
}

// UpdateSport persists all mutable sport fields
func (r *SportRepository) UpdateSport(ctx context.Context, sport *models.Sport) error {
	sport.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE sports SET name = $2, description = $3, icon = $4, is_active = $5, updated_at = $6 WHERE id = $1`,
		sport.ID, sport.Name, sport.Description, sport.Icon, sport.IsActive, sport.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update sport: %w", err)
	}
	return nil
}

// DeleteSport removes a sport; tournaments cascade at the database level
func (r *SportRepository) DeleteSport(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sport: %w", err)
	}
	return nil
}

// ListTournaments retrieves tournaments, optionally restricted to one sport
func (r *SportRepository) ListTournaments(ctx context.Context, sportID *string) ([]*models.Tournament, error) {
	query := `SELECT * FROM tournaments`
	args := make([]interface{}, 0)
	if sportID != nil {
		query += ` WHERE sport_id = $1`
		args = append(args, *sportID)
	}
	query += ` ORDER BY start_date DESC NULLS LAST`

	tournaments := make([]*models.Tournament, 0)
	if err := r.db.SelectContext(ctx, &tournaments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

// GetTournament retrieves a tournament by ID
func (r *SportRepository) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	var tournament models.Tournament
	err := r.db.GetContext(ctx, &tournament, `SELECT * FROM tournaments WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return &tournament, nil
}

// CreateTournament inserts a new tournament
func (r *SportRepository) CreateTournament(ctx context.Context, tournament *models.Tournament) error {
	tournament.ID = uuid.New().String()
	now := time.Now()
	tournament.CreatedAt = now
	tournament.UpdatedAt = now
	if tournament.Teams == nil {
		tournament.Teams = []byte(`[]`)
	}
	if tournament.Matches == nil {
		tournament.Matches = []byte(`[]`)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tournaments (id, sport_id, name, description, season, status, start_date, end_date, teams, matches, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		tournament.ID, tournament.SportID, tournament.Name, tournament.Description,
		tournament.Season, tournament.Status, tournament.StartDate, tournament.EndDate,
		tournament.Teams, tournament.Matches, tournament.CreatedAt, tournament.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tournament: %w", err)
	}
	return nil
}

// UpdateTournament persists all mutable tournament fields
func (r *SportRepository) UpdateTournament(ctx context.Context, tournament *models.Tournament) error {
	tournament.UpdatedAt = time.Now()
	if tournament.Teams == nil {
		tournament.Teams = []byte(`[]`)
	}
	if tournament.Matches == nil {
		tournament.Matches = []byte(`[]`)
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE tournaments
		 SET name = $2, description = $3, season = $4, status = $5, start_date = $6,
		     end_date = $7, teams = $8, matches = $9, updated_at = $10
		 WHERE id = $1`,
		tournament.ID, tournament.Name, tournament.Description, tournament.Season,
		tournament.Status, tournament.StartDate, tournament.EndDate,
		tournament.Teams, tournament.Matches, tournament.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update tournament: %w", err)
	}
	return nil
}

// DeleteTournament removes a tournament
func (r *SportRepository) DeleteTournament(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	return nil
}
