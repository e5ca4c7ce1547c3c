package pce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typicalFemale() Inputs {
	return Inputs{
		AgeYears:      55,
		Sex:           SexFemale,
		Race:          RaceWhiteOrOther,
		TotalCholMgdl: 213,
		HDLMgdl:       50,
		SBPMmhg:       120,
		OnBPMeds:      false,
		Smoker:        false,
		Diabetes:      false,
	}
}

func highRiskMale() Inputs {
	return Inputs{
		AgeYears:      60,
		Sex:           SexMale,
		Race:          RaceWhiteOrOther,
		TotalCholMgdl: 260,
		HDLMgdl:       38,
		SBPMmhg:       155,
		OnBPMeds:      false,
		Smoker:        true,
		Diabetes:      false,
	}
}

func TestAgeGate(t *testing.T) {
	tests := []struct {
		name string
		age  float64
		want bool // true when an estimate is expected
	}{
		{"below range", 39.9, false},
		{"lower bound inclusive", 40, true},
		{"upper bound inclusive", 79, true},
		{"above range", 79.1, false},
		{"young adult", 25, false},
		{"elderly", 90, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := typicalFemale()
			in.AgeYears = tt.age
			res := Compute(in)
			if tt.want {
				require.NotNil(t, res.RiskPct)
				require.NotNil(t, res.Diagnostics)
			} else {
				assert.Nil(t, res.RiskPct)
				assert.Nil(t, res.Diagnostics)
			}
		})
	}
}

func TestGroupDispatch(t *testing.T) {
	tests := []struct {
		sex   Sex
		race  Race
		label string
	}{
		{SexFemale, RaceBlack, "black_female"},
		{SexFemale, RaceWhiteOrOther, "white_female"},
		{SexMale, RaceBlack, "black_male"},
		{SexMale, RaceWhiteOrOther, "white_male"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			in := typicalFemale()
			in.Sex = tt.sex
			in.Race = tt.race
			res := Compute(in)
			require.NotNil(t, res.Diagnostics)
			assert.Equal(t, tt.label, res.Diagnostics.Group)
		})
	}
}

func TestTypicalWhiteFemale(t *testing.T) {
	res := Compute(typicalFemale())
	require.NotNil(t, res.RiskPct)
	require.NotNil(t, res.Diagnostics)

	assert.Equal(t, "white_female", res.Diagnostics.Group)
	assert.Equal(t, 0.96652, res.Diagnostics.S0)
	assert.Equal(t, -29.1817, res.Diagnostics.Mean)

	// Matches the guideline's worked example for this profile (~2%).
	assert.Greater(t, *res.RiskPct, 0.0)
	assert.Less(t, *res.RiskPct, 5.0)
	assert.InDelta(t, 2.1, *res.RiskPct, 0.4)
}

func TestHighRiskWhiteMale(t *testing.T) {
	res := Compute(highRiskMale())
	require.NotNil(t, res.RiskPct)
	require.NotNil(t, res.Diagnostics)

	assert.Equal(t, "white_male", res.Diagnostics.Group)
	assert.Equal(t, 0.91436, res.Diagnostics.S0)
	assert.Equal(t, 61.1816, res.Diagnostics.Mean)

	assert.GreaterOrEqual(t, *res.RiskPct, 10.0, "expected double-digit risk")
	assert.InDelta(t, 27.6, *res.RiskPct, 2.0)

	base := Compute(typicalFemale())
	assert.Greater(t, *res.RiskPct, *base.RiskPct)
}

func TestDeterminism(t *testing.T) {
	for _, in := range []Inputs{typicalFemale(), highRiskMale()} {
		a := Compute(in)
		b := Compute(in)
		require.NotNil(t, a.RiskPct)
		assert.Equal(t, *a.RiskPct, *b.RiskPct)
		assert.Equal(t, *a.Diagnostics, *b.Diagnostics)
	}
}

func TestRiskWithinBounds(t *testing.T) {
	ages := []float64{40, 55, 70, 79}
	chols := []float64{130, 213, 320}
	sbps := []float64{90, 140, 200}
	for _, sex := range []Sex{SexFemale, SexMale} {
		for _, race := range []Race{RaceBlack, RaceWhiteOrOther} {
			for _, age := range ages {
				for _, tc := range chols {
					for _, sbp := range sbps {
						for _, flags := range []bool{false, true} {
							in := Inputs{
								AgeYears:      age,
								Sex:           sex,
								Race:          race,
								TotalCholMgdl: tc,
								HDLMgdl:       45,
								SBPMmhg:       sbp,
								OnBPMeds:      flags,
								Smoker:        flags,
								Diabetes:      flags,
							}
							res := Compute(in)
							require.NotNil(t, res.RiskPct)
							assert.GreaterOrEqual(t, *res.RiskPct, 0.0)
							assert.LessOrEqual(t, *res.RiskPct, 100.0)
						}
					}
				}
			}
		}
	}
}

func TestHigherSBPDoesNotLowerRisk(t *testing.T) {
	in := highRiskMale()
	prev := -1.0
	for sbp := 100.0; sbp <= 200; sbp += 20 {
		res := Compute(in.WithSBP(sbp))
		require.NotNil(t, res.RiskPct)
		assert.GreaterOrEqual(t, *res.RiskPct, prev, "sbp=%v", sbp)
		prev = *res.RiskPct
	}
}

func TestSmokingDoesNotLowerRisk(t *testing.T) {
	for _, sex := range []Sex{SexFemale, SexMale} {
		for _, race := range []Race{RaceBlack, RaceWhiteOrOther} {
			in := typicalFemale()
			in.Sex = sex
			in.Race = race
			nonSmoker := Compute(in.WithSmoker(false))
			smoker := Compute(in.WithSmoker(true))
			require.NotNil(t, nonSmoker.RiskPct)
			require.NotNil(t, smoker.RiskPct)
			assert.GreaterOrEqual(t, *smoker.RiskPct, *nonSmoker.RiskPct)
		}
	}
}

func TestTreatedUntreatedChannelsDiffer(t *testing.T) {
	// Same pressure through the treated channel carries different
	// coefficients, so the linear predictor must change.
	in := highRiskMale()
	untreated := Compute(in.WithOnBPMeds(false))
	treated := Compute(in.WithOnBPMeds(true))
	require.NotNil(t, untreated.Diagnostics)
	require.NotNil(t, treated.Diagnostics)
	assert.NotEqual(t, untreated.Diagnostics.LinearPredictor, treated.Diagnostics.LinearPredictor)
}

func TestBuildersDoNotMutate(t *testing.T) {
	in := typicalFemale()
	_ = in.WithSmoker(true).WithSBP(180).WithTotalChol(300).WithHDL(20).WithOnBPMeds(true).WithDiabetes(true)
	assert.Equal(t, typicalFemale(), in)
}

func TestOutOfClinicalRangeStillEvaluates(t *testing.T) {
	// No bounds validation beyond the age gate: implausible but positive
	// values are evaluated as given.
	in := typicalFemale().WithTotalChol(50)
	res := Compute(in)
	require.NotNil(t, res.RiskPct)
	assert.GreaterOrEqual(t, *res.RiskPct, 0.0)
}
