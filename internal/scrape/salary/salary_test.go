package salary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"talentai-engine/internal/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *domain.SalaryRange
	}{
		{
			name: "k range",
			text: "Compensation: $180k - $220k plus equity",
			want: &domain.SalaryRange{Min: 180000, Max: 220000, Currency: "USD"},
		},
		{
			name: "absolute range with commas",
			text: "$150,000 - $200,000 per year",
			want: &domain.SalaryRange{Min: 150000, Max: 200000, Currency: "USD"},
		},
		{
			name: "absolute range without commas",
			text: "base salary of $95000-$120000",
			want: &domain.SalaryRange{Min: 95000, Max: 120000, Currency: "USD"},
		},
		{
			name: "k plus collapses to single point",
			text: "Earn $160k+ at a fast-growing startup",
			want: &domain.SalaryRange{Min: 160000, Max: 160000, Currency: "USD"},
		},
		{
			name: "single k value",
			text: "pays around $85k depending on experience",
			want: &domain.SalaryRange{Min: 85000, Max: 85000, Currency: "USD"},
		},
		{
			name: "single absolute value",
			text: "Base: $95,000",
			want: &domain.SalaryRange{Min: 95000, Max: 95000, Currency: "USD"},
		},
		{
			name: "bare small number treated as thousands",
			text: "salary range $180 - $220",
			want: &domain.SalaryRange{Min: 180000, Max: 220000, Currency: "USD"},
		},
		{
			name: "range with spaces around dash",
			text: "$130k – $170k",
			want: &domain.SalaryRange{Min: 130000, Max: 170000, Currency: "USD"},
		},
		{
			name: "no salary at all",
			text: "We offer competitive compensation and great benefits.",
			want: nil,
		},
		{
			name: "inverted range rejected",
			text: "$220k - $180k",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParsePrefersRangeOverSingle(t *testing.T) {
	// A range anywhere in the text wins over an earlier single value.
	got := Parse("401k matching. The range for this role is $140,000 - $180,000.")
	require.NotNil(t, got)
	require.Equal(t, 140000, got.Min)
	require.Equal(t, 180000, got.Max)
}
