package flock

import (
	"errors"
	"fmt"
	"strings"
)

// Rule identifies one of the three local steering rules. It is a closed
// enumeration: the engine dispatches on it through a fixed table, so an
// out-of-range value is rejected before any agent is touched.
type Rule int

const (
	// Separation steers away from neighbors crowding inside half the view
	// radius.
	Separation Rule = iota
	// Alignment steers toward the average velocity of all visible neighbors.
	Alignment
	// Cohesion steers toward the centroid of all visible neighbors.
	Cohesion

	numRules
)

func (r Rule) String() string {
	switch r {
	case Separation:
		return "separation"
	case Alignment:
		return "alignment"
	case Cohesion:
		return "cohesion"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// ParseRule converts a rule name back into its Rule value.
func ParseRule(s string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "separation":
		return Separation, nil
	case "alignment":
		return Alignment, nil
	case "cohesion":
		return Cohesion, nil
	default:
		return 0, fmt.Errorf("unknown rule %q", s)
	}
}

// Order is the sequence of rules applied on each tick. Rules absent from the
// order contribute nothing and are not computed at all. The accumulation is
// numerically order-independent today, but the sequence is preserved for
// order-sensitive rule variants.
type Order []Rule

// Validate rejects an empty order, more entries than there are rules, any
// unknown rule value and any duplicate.
func (o Order) Validate() error {
	if len(o) == 0 {
		return errors.New("rule order must contain at least one rule")
	}
	if len(o) > int(numRules) {
		return fmt.Errorf("rule order has %d entries, at most %d allowed", len(o), int(numRules))
	}
	var seen [numRules]bool
	for _, r := range o {
		if r < 0 || r >= numRules {
			return fmt.Errorf("unknown rule %d in order", int(r))
		}
		if seen[r] {
			return fmt.Errorf("duplicate rule %q in order", r)
		}
		seen[r] = true
	}
	return nil
}

func (o Order) String() string {
	names := make([]string, len(o))
	for i, r := range o {
		names[i] = r.String()
	}
	return strings.Join(names, " > ")
}

// Palette returns the rule order presets selectable at runtime. Swapping the
// active order never resets the flock.
func Palette() []Order {
	return []Order{
		{Separation, Alignment, Cohesion},
		{Alignment, Separation, Cohesion},
		{Cohesion, Separation, Alignment},
	}
}
