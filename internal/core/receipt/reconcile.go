package receipt

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/money"
)

// Reconciler compares computed item sums against an authoritative total and
// flags implausible item values. Both receipt builders share one instance so
// the thresholds behave the same whatever the input source.
type Reconciler struct {
	// Tolerance is the largest absolute difference that is not reported.
	Tolerance decimal.Decimal
	// An item is suspect above SuspectRatio times the authoritative total...
	SuspectRatio decimal.Decimal
	// ...or above SuspectCeiling regardless of the total.
	SuspectCeiling decimal.Decimal
}

// DefaultReconciler uses a 0.05 tolerance, a 1.2 ratio and a 500 ceiling.
func DefaultReconciler() Reconciler {
	return Reconciler{
		Tolerance:      decimal.RequireFromString("0.05"),
		SuspectRatio:   decimal.RequireFromString("1.2"),
		SuspectCeiling: decimal.NewFromInt(500),
	}
}

// Mismatch returns a warning when reference is known and differs from
// itemsTotal by more than the tolerance. lead opens the message and hint, if
// set, closes it.
func (r Reconciler) Mismatch(itemsTotal decimal.Decimal, reference decimal.NullDecimal, lead, hint string) (string, bool) {
	if !reference.Valid {
		return "", false
	}
	a, b := money.Round(itemsTotal), money.Round(reference.Decimal)
	if a.Sub(b).Abs().LessThanOrEqual(r.Tolerance) {
		return "", false
	}
	msg := fmt.Sprintf("%s: items sum %s, receipt total %s", lead, money.Format(a), money.Format(b))
	if hint != "" {
		msg += ". " + hint
	}
	return msg, true
}

// IsSuspect reports whether value is implausible against reference or the
// absolute ceiling. Suspect items are kept; the flag is advisory.
func (r Reconciler) IsSuspect(value decimal.Decimal, reference decimal.NullDecimal) bool {
	if reference.Valid && value.GreaterThan(reference.Decimal.Mul(r.SuspectRatio)) {
		return true
	}
	return value.GreaterThan(r.SuspectCeiling)
}
