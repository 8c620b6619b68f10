package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/model"
)

// PositionRepository provides data access methods for the position table.
// Every mutation executes immediately against the database (write-through,
// no batching); I/O failures are returned to the caller rather than
// swallowed, unlike the tolerant quote-fetch paths.
type PositionRepository struct {
	db *sql.DB
}

// NewPositionRepository creates a new PositionRepository with the provided
// database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// List retrieves all positions in insertion order. A position that was
// re-upserted appears at the end, matching its new insertion point.
// Returns an empty slice when the table is empty.
func (r *PositionRepository) List() ([]model.Position, error) {
	query := `
        SELECT id, symbol, display_name, cost_basis, quantity, currency, tracking_mode, manual_price, logo_url
        FROM position
        ORDER BY rowid
    `

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}

	for rows.Next() {
		var p model.Position

		err := rows.Scan(
			&p.ID,
			&p.Symbol,
			&p.DisplayName,
			&p.CostBasis,
			&p.Quantity,
			&p.Currency,
			&p.TrackingMode,
			&p.ManualPrice,
			&p.LogoURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position table results: %w", err)
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position table: %w", err)
	}

	return positions, nil
}

// Get retrieves a single position by symbol. Returns sql.ErrNoRows
// wrapped when the symbol is absent.
func (r *PositionRepository) Get(symbol string) (model.Position, error) {
	query := `
        SELECT id, symbol, display_name, cost_basis, quantity, currency, tracking_mode, manual_price, logo_url
        FROM position
        WHERE symbol = ?
    `

	var p model.Position
	err := r.db.QueryRow(query, symbol).Scan(
		&p.ID,
		&p.Symbol,
		&p.DisplayName,
		&p.CostBasis,
		&p.Quantity,
		&p.Currency,
		&p.TrackingMode,
		&p.ManualPrice,
		&p.LogoURL,
	)
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to get position %s: %w", symbol, err)
	}

	return p, nil
}

// Upsert removes any existing position with the same symbol and inserts
// the new one, so the table holds at most one row per symbol and a
// re-submitted position moves to the end of the insertion order. Both
// statements run in one transaction.
func (r *PositionRepository) Upsert(p model.Position) (model.Position, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to begin upsert transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(`DELETE FROM position WHERE symbol = ?`, p.Symbol); err != nil {
		return model.Position{}, fmt.Errorf("failed to replace position %s: %w", p.Symbol, err)
	}

	query := `
        INSERT INTO position (id, symbol, display_name, cost_basis, quantity, currency, tracking_mode, manual_price, logo_url)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err = tx.Exec(query,
		p.ID,
		p.Symbol,
		p.DisplayName,
		p.CostBasis,
		p.Quantity,
		p.Currency,
		p.TrackingMode,
		p.ManualPrice,
		p.LogoURL,
	)
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to insert position %s: %w", p.Symbol, err)
	}

	if err := tx.Commit(); err != nil {
		return model.Position{}, fmt.Errorf("failed to commit upsert of %s: %w", p.Symbol, err)
	}

	return p, nil
}

// UpdateManualPrice mutates only the manual_price field of the matching
// position, leaving its insertion order untouched. Returns the number of
// affected rows so callers can detect a missing symbol.
func (r *PositionRepository) UpdateManualPrice(symbol string, price float64) (int64, error) {
	result, err := r.db.Exec(
		`UPDATE position SET manual_price = ?, updated_at = CURRENT_TIMESTAMP WHERE symbol = ?`,
		price, symbol,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update manual price of %s: %w", symbol, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}

// Delete removes the position with the given symbol. Deleting an absent
// symbol is a no-op, not an error.
func (r *PositionRepository) Delete(symbol string) error {
	if _, err := r.db.Exec(`DELETE FROM position WHERE symbol = ?`, symbol); err != nil {
		return fmt.Errorf("failed to delete position %s: %w", symbol, err)
	}
	return nil
}

// DeleteAll clears the entire position table.
func (r *PositionRepository) DeleteAll() error {
	if _, err := r.db.Exec(`DELETE FROM position`); err != nil {
		return fmt.Errorf("failed to clear position table: %w", err)
	}
	return nil
}
