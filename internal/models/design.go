package models

// DesignParameters - параметры стадиона, которые передаются в Grasshopper-модель.
// Значения не валидируются: диапазоны проверяет сам воркер.
type DesignParameters struct {
	PitchWidth      float64 `json:"pitchWidth" yaml:"pitchWidth"`
	Offset          float64 `json:"offset" yaml:"offset"`
	Shape           string  `json:"shape" yaml:"shape"`
	Depth           float64 `json:"depth" yaml:"depth"`
	AsymmetryLength float64 `json:"asymmetryLength" yaml:"asymmetryLength"`
	AsymmetryWidth  float64 `json:"asymmetryWidth" yaml:"asymmetryWidth"`
	Height          float64 `json:"height" yaml:"height"`
}
