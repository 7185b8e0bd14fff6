package attendance

import (
	"github.com/shopspring/decimal"
	"github.com/wathiq-erp/attendance-engine/internal/domain/deduction"
)

// Fixed denominators for salary proration; no calendar-aware counting.
const (
	salaryDaysPerMonth = 30
	workHoursPerDay    = 8
)

var (
	thirty       = decimal.NewFromInt(salaryDaysPerMonth)
	eight        = decimal.NewFromInt(workHoursPerDay)
	sixtyMinutes = decimal.NewFromInt(60)
)

// Deduction is the monetary outcome of the rule engine for one day.
type Deduction struct {
	Amount decimal.Decimal
	RuleID *string
}

// ComputeDeduction selects and applies deduction rules. Absence
// short-circuits the lateness and early-exit evaluation entirely.
// Rule selection is first match over the curated table order; a rule
// set with no applicable entry contributes zero for that category.
// Never returns an error: malformed rule configuration yields a zero
// contribution, not a failure.
func ComputeDeduction(lateMinutes, earlyExitMinutes int, absent bool, basicSalary *decimal.Decimal, rules []deduction.Rule) Deduction {
	zero := Deduction{Amount: decimal.Zero}

	// No deduction is ever computed without a salary basis.
	if basicSalary == nil || !basicSalary.IsPositive() {
		return zero
	}

	dailySalary := basicSalary.Div(thirty)
	hourlyRate := dailySalary.Div(eight)

	if absent {
		for _, r := range rules {
			if r.RuleType != deduction.RuleTypeAbsence {
				continue
			}
			// Range bounds are ignored for absence rules.
			switch r.ValueType {
			case deduction.ValueTypePercentage:
				return Deduction{Amount: dailySalary.Mul(r.Value).Round(2), RuleID: &r.ID}
			case deduction.ValueTypeFixed:
				return Deduction{Amount: r.Value.Round(2), RuleID: &r.ID}
			}
			return zero
		}
		return zero
	}

	amount := decimal.Zero
	var ruleID *string

	if lateMinutes > 0 {
		if r := firstMatch(rules, deduction.RuleTypeLateArrival, lateMinutes); r != nil {
			switch r.ValueType {
			case deduction.ValueTypePercentage:
				amount = amount.Add(dailySalary.Mul(r.Value))
			case deduction.ValueTypeFixed:
				amount = amount.Add(r.Value)
			case deduction.ValueTypeHourly:
				lateHours := decimal.NewFromInt(int64(lateMinutes)).Div(sixtyMinutes)
				amount = amount.Add(hourlyRate.Mul(lateHours).Mul(r.Value))
			}
			ruleID = &r.ID
		}
	}

	if earlyExitMinutes > 0 {
		if r := firstMatch(rules, deduction.RuleTypeEarlyExit, earlyExitMinutes); r != nil {
			switch r.ValueType {
			case deduction.ValueTypePercentage:
				amount = amount.Add(dailySalary.Mul(r.Value))
			case deduction.ValueTypeFixed:
				amount = amount.Add(r.Value)
			}
			// Hourly is not applied for early exits.
			if ruleID == nil {
				ruleID = &r.ID
			}
		}
	}

	return Deduction{Amount: amount.Round(2), RuleID: ruleID}
}

// firstMatch returns the first rule of the given type whose range
// contains minutes, in table order.
func firstMatch(rules []deduction.Rule, ruleType deduction.RuleType, minutes int) *deduction.Rule {
	for i := range rules {
		if rules[i].RuleType == ruleType && rules[i].Matches(minutes) {
			return &rules[i]
		}
	}
	return nil
}
