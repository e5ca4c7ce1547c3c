package scenario

import "cardiosim/internal/pce"

// Presets seed the client's baseline form.

func TypicalPreset() pce.Inputs {
	return pce.Inputs{
		AgeYears:      55,
		Sex:           pce.SexFemale,
		Race:          pce.RaceWhiteOrOther,
		TotalCholMgdl: 213,
		HDLMgdl:       50,
		SBPMmhg:       120,
		OnBPMeds:      false,
		Smoker:        false,
		Diabetes:      false,
	}
}

func HighRiskPreset() pce.Inputs {
	return pce.Inputs{
		AgeYears:      60,
		Sex:           pce.SexMale,
		Race:          pce.RaceWhiteOrOther,
		TotalCholMgdl: 260,
		HDLMgdl:       38,
		SBPMmhg:       155,
		OnBPMeds:      false,
		Smoker:        true,
		Diabetes:      false,
	}
}
