package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wathiq-erp/attendance-engine/internal/domain/punch"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/database"
)

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

// CreateBatch implements punch.PunchRepository.
func (r *punchRepositoryImpl) CreateBatch(ctx context.Context, punches []punch.Punch) error {
	if len(punches) == 0 {
		return punch.ErrEmptyBatch
	}

	q := GetQuerier(ctx, r.db)

	valueStrings := make([]string, 0, len(punches))
	valueArgs := make([]interface{}, 0, len(punches)*3)
	for i, p := range punches {
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3))
		valueArgs = append(valueArgs, p.BiometricCode, p.Date, p.ClockTime)
	}

	query := fmt.Sprintf(`
		INSERT INTO punches (biometric_code, date, clock_time)
		VALUES %s
	`, strings.Join(valueStrings, ", "))

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to insert punches: %w", err)
	}

	return nil
}

// ListByDate implements punch.PunchRepository.
func (r *punchRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, biometric_code, date, clock_time, processed, created_at
		FROM punches
		WHERE date = $1
		ORDER BY biometric_code, clock_time
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		var p punch.Punch
		err := rows.Scan(&p.ID, &p.BiometricCode, &p.Date, &p.ClockTime, &p.Processed, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		punches = append(punches, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return punches, nil
}

// MarkProcessed implements punch.PunchRepository.
func (r *punchRepositoryImpl) MarkProcessed(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE punches
		SET processed = TRUE
		WHERE id = ANY($1)
	`

	if _, err := q.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("failed to mark punches processed: %w", err)
	}

	return nil
}
