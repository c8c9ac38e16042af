package respond

import (
	"testing"

	"github.com/stretchr/testify/require"

	"insurance-agent/internal/knowledge"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount int
		want   string
	}{
		{0, "PHP 0"},
		{999, "PHP 999"},
		{1800, "PHP 1,800"},
		{7500, "PHP 7,500"},
		{100_000, "PHP 100,000"},
		{1_234_567, "PHP 1,234,567"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatCurrency(tc.amount))
	}
}

func TestPlanDescription_Standard(t *testing.T) {
	plan, ok := knowledge.Default().Plan("Standard")
	require.True(t, ok)

	want := "**Standard Plan**\n" +
		"A balanced plan that adds own damage and Acts of God coverage on top of CTPL.  " +
		"Ideal for drivers who want broader protection without paying for all the bells and whistles.\n" +
		"\n" +
		"Included coverage: CTPL, Own Damage, Acts Of God.\n" +
		"Annual premium: PHP 7,500.\n" +
		"Coverage limits: CTPL: PHP 100,000 limit; Own Damage: PHP 400,000 limit; Acts Of God: PHP 300,000 limit."

	got := PlanDescription(plan)
	require.Equal(t, want, got)
	require.NotContains(t, got, "Personal Accident")
}

func TestPlanDescription_SpecialLimitClauses(t *testing.T) {
	plan, ok := knowledge.Default().Plan("Premium")
	require.True(t, ok)

	got := PlanDescription(plan)
	require.Contains(t, got, "Roadside Assistance: service included")
	require.Contains(t, got, "Loss Of Use: reimbursed up to PHP 2,500 per day")
	require.Contains(t, got, "Personal Accident: PHP 200,000 limit")
	require.Contains(t, got, "Annual premium: PHP 14,000.")
}

func TestFirstSentence(t *testing.T) {
	require.Equal(t, "One.", firstSentence("One.  Two."))
	require.Equal(t, "No terminator.", firstSentence("No terminator"))
	require.Equal(t, "**Bold** lead.", firstSentence("**Bold** lead. Rest."))
}
