// Package pce evaluates the 2013 ACC/AHA Pooled Cohort Equations for
// 10-year ASCVD risk. The model is a fixed closed-form regression over
// four sex/race coefficient groups; it is not calibratable.
package pce

import "math"

// MinAge and MaxAge bound the ages the equations were derived for.
// Outside this range the model returns no estimate.
const (
	MinAge = 40
	MaxAge = 79
)

// Compute evaluates the 10-year risk for one snapshot. It is pure and
// never fails: the only gate is the age range, signalled by a Result with
// nil RiskPct. All other fields are evaluated as given, with no bounds
// checks. Callers must supply strictly positive values for age, total
// cholesterol, HDL and systolic BP; non-positive values put the logarithms
// outside the model's contract.
//
// The percentage is rounded to one decimal place, half away from zero.
func Compute(in Inputs) Result {
	if in.AgeYears < MinAge || in.AgeYears > MaxAge {
		return Result{}
	}

	lnAge := math.Log(in.AgeYears)
	lnTC := math.Log(in.TotalCholMgdl)
	lnHDL := math.Log(in.HDLMgdl)

	// Systolic BP enters through exactly one of two channels depending on
	// medication status; the other channel stays at zero.
	var trLnSBP, ntLnSBP float64
	if in.OnBPMeds {
		trLnSBP = math.Log(in.SBPMmhg)
	} else {
		ntLnSBP = math.Log(in.SBPMmhg)
	}

	var smoker, diabetes float64
	if in.Smoker {
		smoker = 1.0
	}
	if in.Diabetes {
		diabetes = 1.0
	}

	g := groupFor(in.Race, in.Sex)
	c := g.Coef

	lp := c.LnAge*lnAge +
		c.LnAgeSq*lnAge*lnAge +
		c.LnTC*lnTC +
		c.AgeTC*lnAge*lnTC +
		c.LnHDL*lnHDL +
		c.AgeHDL*lnAge*lnHDL +
		c.TrLnSBP*trLnSBP +
		c.AgeTrSBP*lnAge*trLnSBP +
		c.NtLnSBP*ntLnSBP +
		c.AgeNtSBP*lnAge*ntLnSBP +
		c.Smoker*smoker +
		c.AgeSmoker*lnAge*smoker +
		c.Diabetes*diabetes

	risk := 1.0 - math.Pow(g.S0, math.Exp(lp-g.Mean))
	pct := round1(100.0 * risk)

	return Result{
		RiskPct: &pct,
		Diagnostics: &Diagnostics{
			Group:           g.Label,
			LinearPredictor: lp,
			S0:              g.S0,
			Mean:            g.Mean,
		},
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
