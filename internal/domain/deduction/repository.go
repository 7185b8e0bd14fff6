package deduction

import "context"

// RuleRepository defines read access to the deduction rule table.
// Selection is first-match over the returned order, so the store must
// return rules in their curated table order.
type RuleRepository interface {
	ListOrdered(ctx context.Context) ([]Rule, error)
}
