// Package respond turns free-text questions into canned answers by
// running an ordered keyword cascade over an immutable knowledge base.
// Every input maps to some answer; unmatched questions get the fallback.
package respond

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"insurance-agent/internal/knowledge"
)

// Category identifies which cascade rule produced an answer.
type Category string

const (
	CategoryDefinition Category = "definition"
	CategoryPlan       Category = "plan"
	CategoryPricing    Category = "pricing"
	CategoryOverview   Category = "overview"
	CategoryFallback   Category = "fallback"
)

// Intent keywords, matched as raw substrings of the lowercased question.
var (
	pricingWords  = []string{"price", "cost", "premium", "rates"}
	overviewWords = []string{"coverage", "covered", "benefits"}
)

// Result is one evaluated answer. Match carries the coverage key or the
// plan name for the rules that select a specific table entry.
type Result struct {
	Answer   string
	Category Category
	Match    string
}

// Responder selects canned answers over an immutable knowledge base. It
// holds no mutable state and is safe for concurrent use.
type Responder struct {
	base *knowledge.Base
}

func New(base *knowledge.Base) (*Responder, error) {
	if base == nil {
		return nil, errors.New("respond: knowledge base must not be nil")
	}
	return &Responder{base: base}, nil
}

// Answer returns the response text for a question. It cannot fail; any
// input falls through to the fallback answer at worst.
func (r *Responder) Answer(question string) string {
	return r.Evaluate(question).Answer
}

// Evaluate runs the cascade and reports which rule matched. Rules run in
// fixed precedence: coverage definition, then plan name, then pricing
// keywords, then overview keywords, then fallback. First hit wins, so a
// question naming both a plan and a coverage type gets the definition.
func (r *Responder) Evaluate(question string) Result {
	q := strings.ToLower(question)

	for _, cov := range r.base.Coverages() {
		if matchesKeyFragment(q, cov.Key) {
			return Result{Answer: cov.Text, Category: CategoryDefinition, Match: cov.Key}
		}
	}
	for _, plan := range r.base.Plans() {
		if strings.Contains(q, strings.ToLower(plan.Name)) {
			return Result{Answer: PlanDescription(plan), Category: CategoryPlan, Match: plan.Name}
		}
	}
	if containsAny(q, pricingWords) {
		return Result{Answer: pricingSummary(r.base.Plans()), Category: CategoryPricing}
	}
	if containsAny(q, overviewWords) {
		return Result{Answer: coverageOverview(r.base.Coverages()), Category: CategoryOverview}
	}
	return Result{Answer: fallbackAnswer(r.base.Plans()), Category: CategoryFallback}
}

// matchesKeyFragment reports whether any space-separated fragment of a
// coverage key occurs in q as a whole word, so "of" matches "kind of"
// but not "offer".
func matchesKeyFragment(q, key string) bool {
	for _, fragment := range strings.Fields(key) {
		if containsWord(q, fragment) {
			return true
		}
	}
	return false
}

func containsAny(q string, words []string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// containsWord reports whether sub occurs in s with no letter or digit
// adjacent on either side.
func containsWord(s, sub string) bool {
	if sub == "" {
		return false
	}
	for from := 0; from+len(sub) <= len(s); {
		i := strings.Index(s[from:], sub)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(sub)
		if !wordRuneBefore(s, start) && !wordRuneAt(s, end) {
			return true
		}
		from = start + 1
	}
	return false
}

func wordRuneBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func wordRuneAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
