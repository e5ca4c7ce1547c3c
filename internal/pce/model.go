package pce

type Sex string

const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
)

type Race string

const (
	RaceBlack        Race = "black"
	RaceWhiteOrOther Race = "white_or_other"
)

// Inputs is a full patient snapshot for one risk evaluation.
// Instances are value types: the With* builders return modified copies,
// so a snapshot used as a baseline is never aliased by derived scenarios.
type Inputs struct {
	AgeYears      float64 `json:"age_years"`
	Sex           Sex     `json:"sex"`
	Race          Race    `json:"race"`
	TotalCholMgdl float64 `json:"total_chol_mgdl"`
	HDLMgdl       float64 `json:"hdl_mgdl"`
	SBPMmhg       float64 `json:"sbp_mmhg"`
	OnBPMeds      bool    `json:"on_bp_meds"`
	Smoker        bool    `json:"smoker"`
	Diabetes      bool    `json:"diabetes"`
}

func (in Inputs) WithTotalChol(v float64) Inputs {
	in.TotalCholMgdl = v
	return in
}

func (in Inputs) WithHDL(v float64) Inputs {
	in.HDLMgdl = v
	return in
}

func (in Inputs) WithSBP(v float64) Inputs {
	in.SBPMmhg = v
	return in
}

func (in Inputs) WithOnBPMeds(v bool) Inputs {
	in.OnBPMeds = v
	return in
}

func (in Inputs) WithSmoker(v bool) Inputs {
	in.Smoker = v
	return in
}

func (in Inputs) WithDiabetes(v bool) Inputs {
	in.Diabetes = v
	return in
}

// Diagnostics exposes the intermediate values of one evaluation so callers
// and tests can assert on them without recomputing the formula.
type Diagnostics struct {
	Group           string  `json:"group"`
	LinearPredictor float64 `json:"linear_predictor"`
	S0              float64 `json:"s0"`
	Mean            float64 `json:"mean"`
}

// Result of one evaluation. RiskPct is nil iff the age gate rejected the
// input (age outside 40-79); Diagnostics is nil in exactly the same case.
type Result struct {
	RiskPct     *float64     `json:"risk_pct_10y"`
	Diagnostics *Diagnostics `json:"details,omitempty"`
}
