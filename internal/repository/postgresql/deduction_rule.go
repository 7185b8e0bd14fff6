package postgresql

import (
	"context"

	"github.com/wathiq-erp/attendance-engine/internal/domain/deduction"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/database"
)

type ruleRepositoryImpl struct {
	db *database.DB
}

func NewRuleRepository(db *database.DB) deduction.RuleRepository {
	return &ruleRepositoryImpl{db: db}
}

// ListOrdered implements deduction.RuleRepository.
// Rules come back in table order so first-match selection is stable.
func (r *ruleRepositoryImpl) ListOrdered(ctx context.Context) ([]deduction.Rule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, rule_type, min_minutes, max_minutes, value_type, value,
			created_at, updated_at
		FROM deduction_rules
		ORDER BY sort_order, created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []deduction.Rule
	for rows.Next() {
		var rule deduction.Rule
		err := rows.Scan(
			&rule.ID, &rule.RuleType, &rule.MinMinutes, &rule.MaxMinutes,
			&rule.ValueType, &rule.Value, &rule.CreatedAt, &rule.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}
