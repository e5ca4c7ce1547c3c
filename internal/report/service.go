package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/signintech/gopdf"

	"cardiosim/internal/scenario"
)

// Service renders saved scenarios as one-page PDF summaries for download.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Render(sc scenario.Scenario, p scenario.Preview) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	// Try the common DejaVuSans locations (Alpine and Debian images).
	fontPaths := []string{
		"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	}

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF. Please ensure ttf-dejavu is installed. Last error: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "CardioSim - 10-year ASCVD risk scenario")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Date: %s", time.Now().Format("02.01.2006 15:04")))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Scenario: %s", sc.Name))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Saved: %s", sc.CreatedAt.Format("02.01.2006 15:04")))
	pdf.Br(25)

	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Risk summary:")
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("- Baseline: %s (%s)", formatPct(p.Baseline.RiskPct), p.Baseline.Band))
	pdf.Br(12)
	pdf.Cell(nil, fmt.Sprintf("- Scenario: %s (%s)", formatPct(p.Scenario.RiskPct), p.Scenario.Band))
	pdf.Br(12)
	pdf.Cell(nil, fmt.Sprintf("- Delta: %s", formatPct(p.DeltaPct)))
	pdf.Br(25)

	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Risk drivers:")
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	if len(p.Drivers) == 0 {
		pdf.Cell(nil, "- No changes between baseline and scenario.")
		pdf.Br(12)
	}
	for _, d := range p.Drivers {
		line := fmt.Sprintf("- %s: %+.2f%% (scenario vs baseline)", d.Label, d.DeltaPct)
		lines, _ := pdf.SplitText(line, 500)
		for _, l := range lines {
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
	}

	// Footer
	pdf.SetY(800)
	if err := pdf.SetFont("DejaVu", "", 9); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Educational only. Pooled Cohort Equations (2013), intended for ages 40-79. Not medical advice.")

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func formatPct(v *float64) string {
	if v == nil {
		return "out of range"
	}
	return fmt.Sprintf("%.1f%%", *v)
}
