package model

import (
	"fmt"
	"strings"
)

// RuleStrength buckets a rule's lift into a coarse label for display.
type RuleStrength string

// Rule strength bands.
const (
	StrengthWeak     RuleStrength = "weak"
	StrengthModerate RuleStrength = "moderate"
	StrengthStrong   RuleStrength = "strong"
)

// Lift cutoffs for the strength bands.
const (
	moderateLift = 1.2
	strongLift   = 2.0
)

// AssociationRule is a mined co-borrowing rule: users who borrowed every book
// in Antecedent also tended to borrow every book in Consequent. Both sides
// are sorted, non-empty and disjoint. Rules are derived data, recomputed each
// mining run.
type AssociationRule struct {
	Antecedent []string
	Consequent []string
	Support    float64 // P(antecedent ∪ consequent)
	Confidence float64 // P(consequent | antecedent)
	Lift       float64 // confidence / P(consequent)
}

// Strength labels the rule by its lift.
func (r AssociationRule) Strength() RuleStrength {
	switch {
	case r.Lift >= strongLift:
		return StrengthStrong
	case r.Lift >= moderateLift:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// HasAntecedent reports whether bookID appears in the rule's antecedent.
func (r AssociationRule) HasAntecedent(bookID string) bool {
	for _, b := range r.Antecedent {
		if b == bookID {
			return true
		}
	}
	return false
}

// String renders the rule for logs, e.g. "{B1} => {B2} (conf 1.00, lift 1.33)".
func (r AssociationRule) String() string {
	return fmt.Sprintf("{%s} => {%s} (conf %.2f, lift %.2f)",
		strings.Join(r.Antecedent, ", "),
		strings.Join(r.Consequent, ", "),
		r.Confidence, r.Lift)
}
