package scenario

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"cardiosim/internal/pce"
)

// Evaluation pairs a model result with its presentation band.
type Evaluation struct {
	RiskPct     *float64         `json:"risk_pct_10y"`
	Band        Band             `json:"band"`
	Diagnostics *pce.Diagnostics `json:"details,omitempty"`
}

// Preview is the full comparison the UI renders for a baseline plus an
// intervention, before anything is saved.
type Preview struct {
	Baseline Evaluation `json:"baseline"`
	Scenario Evaluation `json:"scenario"`
	DeltaPct *float64   `json:"delta_pct"`
	Drivers  []Driver   `json:"drivers"`
}

type Service interface {
	Evaluate(in pce.Inputs) Evaluation
	Preview(base pce.Inputs, iv Intervention) Preview
	Timeline(base pce.Inputs, iv Intervention, months int) []TimelinePoint

	Save(ctx context.Context, name string, base pce.Inputs, iv Intervention) (*Scenario, error)
	Get(ctx context.Context, id uuid.UUID) (*Scenario, error)
	List(ctx context.Context) ([]Scenario, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Summaries(ctx context.Context) ([]SummaryRow, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Evaluate(in pce.Inputs) Evaluation {
	res := pce.Compute(in)
	return Evaluation{
		RiskPct:     res.RiskPct,
		Band:        BandFor(res.RiskPct),
		Diagnostics: res.Diagnostics,
	}
}

func (s *service) Preview(base pce.Inputs, iv Intervention) Preview {
	derived := iv.Apply(base)
	baseEval := s.Evaluate(base)
	scenEval := s.Evaluate(derived)

	p := Preview{
		Baseline: baseEval,
		Scenario: scenEval,
		Drivers:  Drivers(base, derived),
	}
	if baseEval.RiskPct != nil && scenEval.RiskPct != nil {
		d := round1(*scenEval.RiskPct - *baseEval.RiskPct)
		p.DeltaPct = &d
	}
	return p
}

// driverFields enumerates the fields an intervention can change, with a
// swap that builds the single-field hybrid and a predicate for "did it
// change". Age, sex and race are identity fields and never attributed.
var driverFields = []struct {
	field   string
	label   string
	changed func(a, b pce.Inputs) bool
	swap    func(base, scen pce.Inputs) pce.Inputs
}{
	{
		"smoker", "Smoking",
		func(a, b pce.Inputs) bool { return a.Smoker != b.Smoker },
		func(base, scen pce.Inputs) pce.Inputs { return base.WithSmoker(scen.Smoker) },
	},
	{
		"sbp_mmhg", "Systolic BP",
		func(a, b pce.Inputs) bool { return a.SBPMmhg != b.SBPMmhg },
		func(base, scen pce.Inputs) pce.Inputs { return base.WithSBP(scen.SBPMmhg) },
	},
	{
		"on_bp_meds", "BP medication",
		func(a, b pce.Inputs) bool { return a.OnBPMeds != b.OnBPMeds },
		func(base, scen pce.Inputs) pce.Inputs { return base.WithOnBPMeds(scen.OnBPMeds) },
	},
	{
		"total_chol_mgdl", "Total cholesterol",
		func(a, b pce.Inputs) bool { return a.TotalCholMgdl != b.TotalCholMgdl },
		func(base, scen pce.Inputs) pce.Inputs { return base.WithTotalChol(scen.TotalCholMgdl) },
	},
	{
		"hdl_mgdl", "HDL",
		func(a, b pce.Inputs) bool { return a.HDLMgdl != b.HDLMgdl },
		func(base, scen pce.Inputs) pce.Inputs { return base.WithHDL(scen.HDLMgdl) },
	},
	{
		"diabetes", "Diabetes",
		func(a, b pce.Inputs) bool { return a.Diabetes != b.Diabetes },
		func(base, scen pce.Inputs) pce.Inputs { return base.WithDiabetes(scen.Diabetes) },
	},
}

// Drivers attributes the risk delta between base and scen to individual
// changed fields. For each changed field the model is re-run on a hybrid
// (base with only that field swapped) and the delta versus the baseline
// risk is recorded, sorted by descending magnitude. Returns nil when
// either endpoint is outside the age range.
func Drivers(base, scen pce.Inputs) []Driver {
	baseRes := pce.Compute(base)
	scenRes := pce.Compute(scen)
	if baseRes.RiskPct == nil || scenRes.RiskPct == nil {
		return nil
	}

	var drivers []Driver
	for _, f := range driverFields {
		if !f.changed(base, scen) {
			continue
		}
		hybrid := pce.Compute(f.swap(base, scen))
		if hybrid.RiskPct == nil {
			continue
		}
		drivers = append(drivers, Driver{
			Field:    f.field,
			Label:    f.label,
			DeltaPct: *hybrid.RiskPct - *baseRes.RiskPct,
		})
	}

	// Insertion sort keeps ties in field order; the list never exceeds
	// six entries.
	for i := 1; i < len(drivers); i++ {
		for j := i; j > 0 && math.Abs(drivers[j].DeltaPct) > math.Abs(drivers[j-1].DeltaPct); j-- {
			drivers[j], drivers[j-1] = drivers[j-1], drivers[j]
		}
	}
	return drivers
}

// Timeline projects risk over months discrete steps, linearly
// interpolating the numeric fields from baseline to scenario and
// switching boolean fields at the midpoint. Age is held at the baseline
// value: the projection window is short relative to a year of ageing.
// This is a visualization aid, not a kinetics model.
func (s *service) Timeline(base pce.Inputs, iv Intervention, months int) []TimelinePoint {
	derived := iv.Apply(base)
	points := make([]TimelinePoint, 0, months+1)
	for m := 0; m <= months; m++ {
		t := 1.0
		if months > 0 {
			t = float64(m) / float64(months)
		}

		step := base.
			WithTotalChol(lerp(base.TotalCholMgdl, derived.TotalCholMgdl, t)).
			WithHDL(lerp(base.HDLMgdl, derived.HDLMgdl, t)).
			WithSBP(lerp(base.SBPMmhg, derived.SBPMmhg, t))
		if t >= 0.5 {
			step = step.
				WithSmoker(derived.Smoker).
				WithOnBPMeds(derived.OnBPMeds).
				WithDiabetes(derived.Diabetes)
		}

		res := pce.Compute(step)
		points = append(points, TimelinePoint{Month: m, RiskPct: res.RiskPct})
	}
	return points
}

func (s *service) Save(ctx context.Context, name string, base pce.Inputs, iv Intervention) (*Scenario, error) {
	sc := &Scenario{
		ID:           uuid.New(),
		Name:         name,
		Baseline:     base,
		Derived:      iv.Apply(base),
		Intervention: iv,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.repo.Save(ctx, sc); err != nil {
		return nil, fmt.Errorf("save scenario: %w", err)
	}
	return sc, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Scenario, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Scenario, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Summaries(ctx context.Context) ([]SummaryRow, error) {
	scenarios, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]SummaryRow, 0, len(scenarios))
	for _, sc := range scenarios {
		rows = append(rows, Summarize(sc))
	}
	return rows, nil
}

// Summarize re-evaluates both snapshots of a saved scenario. The model is
// cheap enough that storing risk values would only invite staleness.
func Summarize(sc Scenario) SummaryRow {
	baseRes := pce.Compute(sc.Baseline)
	scenRes := pce.Compute(sc.Derived)
	row := SummaryRow{
		Name:        sc.Name,
		BaselinePct: baseRes.RiskPct,
		ScenarioPct: scenRes.RiskPct,
	}
	if baseRes.RiskPct != nil && scenRes.RiskPct != nil {
		d := round1(*scenRes.RiskPct - *baseRes.RiskPct)
		row.DeltaPct = &d
	}
	return row
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
