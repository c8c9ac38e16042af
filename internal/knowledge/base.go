// Package knowledge holds the immutable coverage and plan tables the
// responder answers from. Tables are built once at startup, either from
// the built-in reference data or from a parsed override document, and
// validated before use.
package knowledge

import (
	"errors"
	"fmt"
	"strings"
)

// Coverage is one entry in the coverage-definition table. Key is the
// canonical lowercase identifier; Text is the markdown-formatted
// explanation returned verbatim for definition answers.
type Coverage struct {
	Key  string
	Text string
}

// Limit caps one coverage within a plan. Exactly one interpretation
// applies: Service marks a service benefit with no monetary cap, PerDay
// marks a daily reimbursement cap, and otherwise Amount is a flat
// monetary limit.
type Limit struct {
	Coverage string
	Amount   int
	Service  bool
	PerDay   bool
}

// Plan is a named bundle of coverages with an annual premium. Coverage
// order is display order and is preserved as authored.
type Plan struct {
	Name        string
	Premium     int
	Description string
	Coverage    []string
	Limits      []Limit
}

// Base is the validated, read-only knowledge base. Both tables keep
// their authored order; iteration order drives match precedence and
// summary ordering.
type Base struct {
	coverages []Coverage
	plans     []Plan
}

// New validates the given tables and returns a Base over them. Callers
// must not modify the slices afterwards.
func New(coverages []Coverage, plans []Plan) (*Base, error) {
	if len(coverages) == 0 {
		return nil, errors.New("knowledge: coverage table must not be empty")
	}
	if len(plans) == 0 {
		return nil, errors.New("knowledge: plan table must not be empty")
	}

	keys := make(map[string]bool, len(coverages))
	for _, cov := range coverages {
		if strings.TrimSpace(cov.Key) == "" {
			return nil, errors.New("knowledge: coverage key must not be empty")
		}
		if cov.Key != strings.ToLower(cov.Key) {
			return nil, fmt.Errorf("knowledge: coverage key %q must be lowercase", cov.Key)
		}
		if keys[cov.Key] {
			return nil, fmt.Errorf("knowledge: duplicate coverage key %q", cov.Key)
		}
		if strings.TrimSpace(cov.Text) == "" {
			return nil, fmt.Errorf("knowledge: coverage %q has no definition text", cov.Key)
		}
		keys[cov.Key] = true
	}

	names := make(map[string]bool, len(plans))
	for _, plan := range plans {
		if strings.TrimSpace(plan.Name) == "" {
			return nil, errors.New("knowledge: plan name must not be empty")
		}
		lower := strings.ToLower(plan.Name)
		if names[lower] {
			return nil, fmt.Errorf("knowledge: duplicate plan name %q", plan.Name)
		}
		names[lower] = true
		if err := validatePlan(plan, keys); err != nil {
			return nil, err
		}
	}

	return &Base{coverages: coverages, plans: plans}, nil
}

func validatePlan(plan Plan, keys map[string]bool) error {
	if plan.Premium < 0 {
		return fmt.Errorf("knowledge: plan %q has negative premium", plan.Name)
	}
	if len(plan.Coverage) == 0 {
		return fmt.Errorf("knowledge: plan %q includes no coverage", plan.Name)
	}
	included := make(map[string]bool, len(plan.Coverage))
	for _, key := range plan.Coverage {
		if !keys[key] {
			return fmt.Errorf("knowledge: plan %q references undefined coverage %q", plan.Name, key)
		}
		if included[key] {
			return fmt.Errorf("knowledge: plan %q lists coverage %q twice", plan.Name, key)
		}
		included[key] = true
	}
	limited := make(map[string]bool, len(plan.Limits))
	for _, limit := range plan.Limits {
		if !included[limit.Coverage] {
			return fmt.Errorf("knowledge: plan %q limits coverage %q it does not include", plan.Name, limit.Coverage)
		}
		if limited[limit.Coverage] {
			return fmt.Errorf("knowledge: plan %q limits coverage %q twice", plan.Name, limit.Coverage)
		}
		limited[limit.Coverage] = true
		if limit.Amount < 0 {
			return fmt.Errorf("knowledge: plan %q has negative limit for %q", plan.Name, limit.Coverage)
		}
		if limit.Service && limit.PerDay {
			return fmt.Errorf("knowledge: plan %q limit for %q is both service and per-day", plan.Name, limit.Coverage)
		}
		if limit.Service && limit.Amount != 0 {
			return fmt.Errorf("knowledge: plan %q service limit for %q must not carry an amount", plan.Name, limit.Coverage)
		}
	}
	return nil
}

// Coverages returns the coverage table in authored order. The returned
// slice is shared and must be treated as read-only.
func (b *Base) Coverages() []Coverage {
	return b.coverages
}

// Plans returns the plan table in authored order. The returned slice is
// shared and must be treated as read-only.
func (b *Base) Plans() []Plan {
	return b.plans
}

// Coverage looks up a definition by its canonical key.
func (b *Base) Coverage(key string) (Coverage, bool) {
	for _, cov := range b.coverages {
		if cov.Key == key {
			return cov, true
		}
	}
	return Coverage{}, false
}

// Plan looks up a plan by name, case-insensitively.
func (b *Base) Plan(name string) (Plan, bool) {
	for _, plan := range b.plans {
		if strings.EqualFold(plan.Name, name) {
			return plan, true
		}
	}
	return Plan{}, false
}
