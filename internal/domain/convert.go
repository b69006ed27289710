package domain

const mgdlPerMmol = 18.0182

// Glucose units accepted by ConvertGlucose.
const (
	UnitMgDL  = "mg/dL"
	UnitMmolL = "mmol/L"
)

// ConvertGlucose converts a glucose value between "mg/dL" and "mmol/L".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertGlucose(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == UnitMgDL && to == UnitMmolL {
		return v / mgdlPerMmol
	}
	if from == UnitMmolL && to == UnitMgDL {
		return v * mgdlPerMmol
	}
	return v
}
