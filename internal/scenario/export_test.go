package scenario

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	b := func(v float64) *float64 { return &v }
	rows := []SummaryRow{
		{Name: "My plan", BaselinePct: b(27.6), ScenarioPct: b(19.1), DeltaPct: b(-8.5)},
		{Name: "too young", BaselinePct: nil, ScenarioPct: nil, DeltaPct: nil},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	want := "name,baseline_pct,scenario_pct,delta_pct\n" +
		"My plan,27.6,19.1,-8.5\n" +
		"too young,,,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "name,baseline_pct,scenario_pct,delta_pct\n", buf.String())
}

func TestWriteCSVQuotesNames(t *testing.T) {
	b := func(v float64) *float64 { return &v }
	rows := []SummaryRow{{Name: `plan, "aggressive"`, BaselinePct: b(12.0), ScenarioPct: b(9.0), DeltaPct: b(-3.0)}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))
	assert.Equal(t, "name,baseline_pct,scenario_pct,delta_pct\n\"plan, \"\"aggressive\"\"\",12.0,9.0,-3.0\n", buf.String())
}
