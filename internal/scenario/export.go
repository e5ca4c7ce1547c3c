package scenario

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV renders summary rows in the download format: one line per
// saved scenario with name, baseline %, scenario % and delta %. Missing
// percentages (out-of-range ages) are written as empty cells.
func WriteCSV(w io.Writer, rows []SummaryRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"name", "baseline_pct", "scenario_pct", "delta_pct"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Name,
			formatPct(row.BaselinePct),
			formatPct(row.ScenarioPct),
			formatPct(row.DeltaPct),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatPct(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *v)
}
