package pce

// coefficients holds the per-term weights of one sex/race group. A zero
// entry means the published equation for that group omits the term; the
// female equations carry quadratic and age-interaction terms the male
// equations do not, and that asymmetry is kept here as data rather than
// branch logic.
type coefficients struct {
	LnAge     float64
	LnAgeSq   float64
	LnTC      float64
	AgeTC     float64
	LnHDL     float64
	AgeHDL    float64
	TrLnSBP   float64
	AgeTrSBP  float64
	NtLnSBP   float64
	AgeNtSBP  float64
	Smoker    float64
	AgeSmoker float64
	Diabetes  float64
}

type group struct {
	Label string
	S0    float64 // baseline 10-year survival
	Mean  float64 // mean linear predictor used for centering
	Coef  coefficients
}

type groupKey struct {
	Black bool
	Male  bool
}

// Pooled Cohort Equations, 2013 ACC/AHA guideline, Appendix 7 Table A.
// These are published regulatory constants and must not be tuned.
var groups = map[groupKey]group{
	{Black: true, Male: false}: {
		Label: "black_female",
		S0:    0.95334,
		Mean:  86.6081,
		Coef: coefficients{
			LnAge:    17.1141,
			LnTC:     0.9396,
			LnHDL:    -18.9196,
			AgeHDL:   4.4748,
			TrLnSBP:  29.2907,
			AgeTrSBP: -6.4321,
			NtLnSBP:  27.8197,
			AgeNtSBP: -6.0873,
			Smoker:   0.6908,
			Diabetes: 0.8738,
		},
	},
	{Black: false, Male: false}: {
		Label: "white_female",
		S0:    0.96652,
		Mean:  -29.1817,
		Coef: coefficients{
			LnAge:     -29.799,
			LnAgeSq:   4.884,
			LnTC:      13.54,
			AgeTC:     -3.114,
			LnHDL:     -13.578,
			AgeHDL:    3.149,
			TrLnSBP:   2.019,
			NtLnSBP:   1.957,
			Smoker:    7.574,
			AgeSmoker: -1.665,
			Diabetes:  0.661,
		},
	},
	{Black: true, Male: true}: {
		Label: "black_male",
		S0:    0.89536,
		Mean:  19.5425,
		Coef: coefficients{
			LnAge:    2.469,
			LnTC:     0.302,
			LnHDL:    -0.307,
			TrLnSBP:  1.916,
			NtLnSBP:  1.809,
			Smoker:   0.549,
			Diabetes: 0.645,
		},
	},
	{Black: false, Male: true}: {
		Label: "white_male",
		S0:    0.91436,
		Mean:  61.1816,
		Coef: coefficients{
			LnAge:     12.344,
			LnTC:      11.853,
			AgeTC:     -2.664,
			LnHDL:     -7.99,
			AgeHDL:    1.769,
			TrLnSBP:   1.797,
			NtLnSBP:   1.764,
			Smoker:    7.837,
			AgeSmoker: -1.795,
			Diabetes:  0.658,
		},
	},
}

func groupFor(race Race, sex Sex) group {
	return groups[groupKey{Black: race == RaceBlack, Male: sex == SexMale}]
}
