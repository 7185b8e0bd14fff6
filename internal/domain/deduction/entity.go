package deduction

import (
	"time"

	"github.com/shopspring/decimal"
)

type RuleType string

const (
	RuleTypeLateArrival RuleType = "late_arrival"
	RuleTypeEarlyExit   RuleType = "early_exit"
	RuleTypeAbsence     RuleType = "absence"
	RuleTypeOvertime    RuleType = "overtime"
)

type ValueType string

const (
	ValueTypeFixed      ValueType = "fixed"
	ValueTypePercentage ValueType = "percentage"
	ValueTypeHourly     ValueType = "hourly"
)

// Rule is one configured policy entry. MinMinutes/MaxMinutes bound the
// half-open range [min, max) the rule applies to; a nil bound is
// unbounded on that side. Ranges are ignored for absence rules.
type Rule struct {
	ID         string
	RuleType   RuleType
	MinMinutes *int
	MaxMinutes *int
	ValueType  ValueType
	Value      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Matches reports whether minutes falls inside the rule's range.
func (r Rule) Matches(minutes int) bool {
	if r.MinMinutes != nil && minutes < *r.MinMinutes {
		return false
	}
	if r.MaxMinutes != nil && minutes >= *r.MaxMinutes {
		return false
	}
	return true
}
