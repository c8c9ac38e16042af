package respond

import (
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"insurance-agent/internal/knowledge"
)

// FormatCurrency renders an amount in Philippine pesos with thousands
// separators and no decimal places.
func FormatCurrency(amount int) string {
	return "PHP " + humanize.Comma(int64(amount))
}

// PlanDescription composes the multi-line plan summary: header line,
// free-text description, included coverage, annual premium and the
// per-coverage limit clauses.
func PlanDescription(plan knowledge.Plan) string {
	names := make([]string, len(plan.Coverage))
	for i, key := range plan.Coverage {
		names[i] = displayName(key)
	}
	clauses := make([]string, len(plan.Limits))
	for i, limit := range plan.Limits {
		clauses[i] = limitClause(limit)
	}
	lines := []string{
		"**" + plan.Name + " Plan**",
		plan.Description,
		"",
		"Included coverage: " + strings.Join(names, ", ") + ".",
		"Annual premium: " + FormatCurrency(plan.Premium) + ".",
		"Coverage limits: " + strings.Join(clauses, "; ") + ".",
	}
	return strings.Join(lines, "\n")
}

func limitClause(limit knowledge.Limit) string {
	title := displayName(limit.Coverage)
	switch {
	case limit.Service:
		return title + ": service included"
	case limit.PerDay:
		return title + ": reimbursed up to " + FormatCurrency(limit.Amount) + " per day"
	default:
		return title + ": " + FormatCurrency(limit.Amount) + " limit"
	}
}

// displayName renders a coverage key for display. Keys are title-cased
// word by word, except the CTPL abbreviation, which stays all caps.
func displayName(key string) string {
	if key == "ctpl" {
		return "CTPL"
	}
	return cases.Title(language.English).String(key)
}

func pricingSummary(plans []knowledge.Plan) string {
	lines := []string{"Here are the annual premiums for our available plans:"}
	for _, plan := range plans {
		lines = append(lines, "- **"+plan.Name+" Plan**: "+FormatCurrency(plan.Premium))
	}
	lines = append(lines, "\nAsk about a specific plan to see what it covers.")
	return strings.Join(lines, "\n")
}

func coverageOverview(coverages []knowledge.Coverage) string {
	lines := []string{"We offer several types of coverage.  Here's a quick overview:"}
	for _, cov := range coverages {
		lines = append(lines, "- "+firstSentence(cov.Text))
	}
	lines = append(lines, "\nYou can ask about any of these coverage types for more information or inquire about a specific plan.")
	return strings.Join(lines, "\n")
}

func fallbackAnswer(plans []knowledge.Plan) string {
	names := make([]string, len(plans))
	for i, plan := range plans {
		names[i] = plan.Name
	}
	hint := names[len(names)-1]
	if len(names) > 1 {
		hint = strings.Join(names[:len(names)-1], ", ") + " or " + hint
	}
	return "I'm sorry, I don't have an answer to that yet.  You can ask me about " +
		"car insurance coverage, premiums or one of our plans (" + hint + ")."
}

// firstSentence returns text up to and including the first period,
// appending one when the text has none.
func firstSentence(text string) string {
	i := strings.Index(text, ".")
	if i < 0 {
		return text + "."
	}
	return text[:i+1]
}
