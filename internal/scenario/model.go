package scenario

import (
	"time"

	"github.com/google/uuid"

	"cardiosim/internal/pce"
)

// Band buckets a risk percentage the way the ACC/AHA guideline groups
// statin-eligibility discussions.
type Band string

const (
	BandOutOfRange   Band = "out_of_range"
	BandLow          Band = "low"          // < 5%
	BandBorderline   Band = "borderline"   // 5 to 7.4%
	BandIntermediate Band = "intermediate" // 7.5 to 19.9%
	BandHigh         Band = "high"         // >= 20%
)

// BandFor maps an optional risk percentage to its band. A nil percentage
// means the age gate rejected the input.
func BandFor(riskPct *float64) Band {
	if riskPct == nil {
		return BandOutOfRange
	}
	switch {
	case *riskPct < 5:
		return BandLow
	case *riskPct < 7.5:
		return BandBorderline
	case *riskPct < 20:
		return BandIntermediate
	default:
		return BandHigh
	}
}

// Intervention is a named set of what-if changes on a baseline snapshot.
// Zero-valued fields are no-ops, so the empty Intervention derives a
// scenario identical to its baseline.
type Intervention struct {
	QuitSmoking bool     `json:"quit_smoking"`
	StartBPMeds bool     `json:"start_bp_meds"`
	SBPTarget   *float64 `json:"sbp_target,omitempty"`
	TCDelta     float64  `json:"tc_delta"`
	HDLDelta    float64  `json:"hdl_delta"`
}

// Clinical ranges the what-if controls clamp to.
const (
	MinSBP = 90
	MaxSBP = 200
	MinTC  = 130
	MaxTC  = 320
	MinHDL = 20
	MaxHDL = 100
)

// Apply derives a new snapshot from base. The base is never modified.
func (iv Intervention) Apply(base pce.Inputs) pce.Inputs {
	out := base
	if iv.QuitSmoking {
		out = out.WithSmoker(false)
	}
	if iv.StartBPMeds {
		out = out.WithOnBPMeds(true)
	}
	if iv.SBPTarget != nil {
		out = out.WithSBP(clamp(*iv.SBPTarget, MinSBP, MaxSBP))
	}
	if iv.TCDelta != 0 {
		out = out.WithTotalChol(clamp(out.TotalCholMgdl+iv.TCDelta, MinTC, MaxTC))
	}
	if iv.HDLDelta != 0 {
		out = out.WithHDL(clamp(out.HDLMgdl+iv.HDLDelta, MinHDL, MaxHDL))
	}
	return out
}

func clamp(x, lo, hi float64) float64 {
	return max(lo, min(hi, x))
}

// Scenario is the aggregate persisted for later comparison: a named pair
// of baseline and derived snapshots plus the intervention that produced
// the derivation.
type Scenario struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	Baseline     pce.Inputs   `json:"baseline" db:"baseline"`
	Derived      pce.Inputs   `json:"scenario" db:"scenario"`
	Intervention Intervention `json:"intervention" db:"intervention"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}

// Driver attributes part of the baseline-to-scenario risk delta to a
// single changed input field.
type Driver struct {
	Field    string  `json:"field"`
	Label    string  `json:"label"`
	DeltaPct float64 `json:"delta_pct"`
}

// TimelinePoint is one step of the interpolated projection.
type TimelinePoint struct {
	Month   int      `json:"month"`
	RiskPct *float64 `json:"risk_pct_10y"`
}

// SummaryRow is the tabular form of a saved scenario used by the list
// view and the CSV export.
type SummaryRow struct {
	Name        string   `json:"name"`
	BaselinePct *float64 `json:"baseline_pct"`
	ScenarioPct *float64 `json:"scenario_pct"`
	DeltaPct    *float64 `json:"delta_pct"`
}
