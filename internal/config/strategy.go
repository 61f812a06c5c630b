package config

// Target/stop sizing modes. A strategy uses exactly one of them; they
// are never mixed within a cycle.
const (
	TargetPercent = "percent"
	TargetATR     = "atr"
)

// Strategy is one named generation of the screening model. The
// generations differ only in these numbers, so the pipeline is
// written once and parameterized by a preset.
type Strategy struct {
	Name string

	// Confluence scoring.
	BaseScore           int
	FallbackScore       int
	TrendBonus          int
	SlopeBonus          int
	SlopeLookback       int
	ContractionBonus    int
	ContractionWindows  []int
	RelStrengthBonus    int
	RelStrengthLookback int
	VolumeMultLow       float64
	VolumeBonusLow      int
	VolumeMultHigh      float64
	VolumeBonusHigh     int
	RSIZoneLow          float64
	RSIZoneHigh         float64
	RSIZoneBonus        int

	// Pipeline gates.
	MinBars         int
	MarketSMAWindow int
	GateRSILow      float64
	GateRSIHigh     float64
	ProximityPct    float64
	PivotWindow     int

	// Pattern classification.
	PatternWindow int
	FlagRangeFrac float64

	// Adaptive threshold.
	BaseStrictness    int
	MinResolvedTrades int
	LowWinRate        float64
	HighWinRate       float64
	TightenBias       int
	LoosenBias        int

	// Trade levels.
	TargetMode  string
	GoalPct     float64
	StopPct     float64
	GoalATRMult float64
	StopATRMult float64
}

// Presets returns the named strategy generations. v4 is the default
// and the strictest on breakout proximity.
func Presets() map[string]Strategy {
	return map[string]Strategy{
		"v1": {
			Name:                "v1",
			BaseScore:           0,
			FallbackScore:       0,
			TrendBonus:          40,
			SlopeBonus:          10,
			SlopeLookback:       10,
			ContractionBonus:    10,
			ContractionWindows:  []int{50, 20, 10},
			RelStrengthBonus:    15,
			RelStrengthLookback: 30,
			VolumeMultLow:       1.5,
			VolumeBonusLow:      5,
			VolumeMultHigh:      3.0,
			VolumeBonusHigh:     10,
			RSIZoneLow:          50,
			RSIZoneHigh:         70,
			RSIZoneBonus:        10,
			MinBars:             200,
			MarketSMAWindow:     50,
			GateRSILow:          35,
			GateRSIHigh:         70,
			ProximityPct:        0.04,
			PivotWindow:         20,
			PatternWindow:       20,
			FlagRangeFrac:       0.045,
			BaseStrictness:      60,
			MinResolvedTrades:   2,
			LowWinRate:          50,
			HighWinRate:         65,
			TightenBias:         15,
			LoosenBias:          -5,
			TargetMode:          TargetPercent,
			GoalPct:             0.12,
			StopPct:             0.06,
		},
		"v2": {
			Name:                "v2",
			BaseScore:           10,
			FallbackScore:       0,
			TrendBonus:          30,
			SlopeBonus:          10,
			SlopeLookback:       10,
			ContractionBonus:    10,
			ContractionWindows:  []int{50, 20, 10},
			RelStrengthBonus:    15,
			RelStrengthLookback: 30,
			VolumeMultLow:       1.5,
			VolumeBonusLow:      5,
			VolumeMultHigh:      3.0,
			VolumeBonusHigh:     10,
			RSIZoneLow:          52,
			RSIZoneHigh:         68,
			RSIZoneBonus:        10,
			MinBars:             200,
			MarketSMAWindow:     50,
			GateRSILow:          38,
			GateRSIHigh:         68,
			ProximityPct:        0.035,
			PivotWindow:         20,
			PatternWindow:       20,
			FlagRangeFrac:       0.04,
			BaseStrictness:      65,
			MinResolvedTrades:   3,
			LowWinRate:          48,
			HighWinRate:         68,
			TightenBias:         12,
			LoosenBias:          -5,
			TargetMode:          TargetATR,
			GoalATRMult:         2.5,
			StopATRMult:         1.5,
		},
		"v3": {
			Name:                "v3",
			BaseScore:           40,
			FallbackScore:       0,
			TrendBonus:          20,
			SlopeBonus:          10,
			SlopeLookback:       10,
			ContractionBonus:    10,
			ContractionWindows:  []int{50, 20, 10},
			RelStrengthBonus:    15,
			RelStrengthLookback: 20,
			VolumeMultLow:       1.5,
			VolumeBonusLow:      5,
			VolumeMultHigh:      3.0,
			VolumeBonusHigh:     10,
			RSIZoneLow:          53,
			RSIZoneHigh:         68,
			RSIZoneBonus:        10,
			MinBars:             200,
			MarketSMAWindow:     50,
			GateRSILow:          40,
			GateRSIHigh:         66,
			ProximityPct:        0.03,
			PivotWindow:         20,
			PatternWindow:       15,
			FlagRangeFrac:       0.035,
			BaseStrictness:      70,
			MinResolvedTrades:   3,
			LowWinRate:          45,
			HighWinRate:         70,
			TightenBias:         10,
			LoosenBias:          -5,
			TargetMode:          TargetATR,
			GoalATRMult:         2.0,
			StopATRMult:         1.5,
		},
		"v4": {
			Name:                "v4",
			BaseScore:           50,
			FallbackScore:       50,
			TrendBonus:          15,
			SlopeBonus:          10,
			SlopeLookback:       10,
			ContractionBonus:    10,
			ContractionWindows:  []int{50, 20, 10},
			RelStrengthBonus:    15,
			RelStrengthLookback: 20,
			VolumeMultLow:       1.5,
			VolumeBonusLow:      5,
			VolumeMultHigh:      3.0,
			VolumeBonusHigh:     10,
			RSIZoneLow:          53,
			RSIZoneHigh:         68,
			RSIZoneBonus:        10,
			MinBars:             200,
			MarketSMAWindow:     50,
			GateRSILow:          40,
			GateRSIHigh:         65,
			ProximityPct:        0.02,
			PivotWindow:         20,
			PatternWindow:       15,
			FlagRangeFrac:       0.03,
			BaseStrictness:      70,
			MinResolvedTrades:   3,
			LowWinRate:          45,
			HighWinRate:         75,
			TightenBias:         10,
			LoosenBias:          -5,
			TargetMode:          TargetPercent,
			GoalPct:             0.10,
			StopPct:             0.05,
		},
	}
}
