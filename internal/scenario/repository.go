package scenario

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("scenario not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Scenario, error)
	List(ctx context.Context) ([]Scenario, error)
	Save(ctx context.Context, sc *Scenario) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Scenario, error) {
	query := `SELECT id, name, baseline, scenario, intervention, created_at, updated_at FROM saved_scenarios WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	sc, err := scanScenario(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sc, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]Scenario, error) {
	query := `SELECT id, name, baseline, scenario, intervention, created_at, updated_at FROM saved_scenarios ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Scenario
	for rows.Next() {
		sc, err := scanScenario(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *sc)
	}
	return out, rows.Err()
}

func scanScenario(scan func(dest ...any) error) (*Scenario, error) {
	var sc Scenario
	var baselineJSON, derivedJSON, interventionJSON []byte

	err := scan(
		&sc.ID,
		&sc.Name,
		&baselineJSON,
		&derivedJSON,
		&interventionJSON,
		&sc.CreatedAt,
		&sc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(baselineJSON, &sc.Baseline); err != nil {
		return nil, fmt.Errorf("failed to unmarshal baseline: %w", err)
	}
	if err := json.Unmarshal(derivedJSON, &sc.Derived); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	if len(interventionJSON) > 0 {
		if err := json.Unmarshal(interventionJSON, &sc.Intervention); err != nil {
			return nil, fmt.Errorf("failed to unmarshal intervention: %w", err)
		}
	}
	return &sc, nil
}

func (r *postgresRepo) Save(ctx context.Context, sc *Scenario) error {
	baselineJSON, err := json.Marshal(sc.Baseline)
	if err != nil {
		return err
	}
	derivedJSON, err := json.Marshal(sc.Derived)
	if err != nil {
		return err
	}
	interventionJSON, err := json.Marshal(sc.Intervention)
	if err != nil {
		return err
	}

	if sc.CreatedAt.IsZero() {
		sc.CreatedAt = time.Now()
	}
	sc.UpdatedAt = time.Now()

	query := `
		INSERT INTO saved_scenarios (id, name, baseline, scenario, intervention, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = $2,
			baseline = $3,
			scenario = $4,
			intervention = $5,
			updated_at = $7
	`
	_, err = r.db.ExecContext(ctx, query,
		sc.ID, sc.Name, baselineJSON, derivedJSON, interventionJSON, sc.CreatedAt, sc.UpdatedAt)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_scenarios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
