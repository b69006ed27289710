package domain

// MedicationClass is a pharmacological class used to reason about a drug's
// expected duration of action.
type MedicationClass string

// Classes in first-match precedence order.
const (
	ClassBiguanide    MedicationClass = "biguanide"
	ClassSulfonylurea MedicationClass = "sulfonylurea"
	ClassBasalInsulin MedicationClass = "basal_insulin"
	ClassBolusInsulin MedicationClass = "bolus_insulin"
	ClassGLP1Daily    MedicationClass = "glp1_daily"
	ClassGLP1Weekly   MedicationClass = "glp1_weekly"
	ClassSGLT2        MedicationClass = "sglt2"
	ClassTZD          MedicationClass = "tzd"
	ClassOther        MedicationClass = "other"
)

// MedicationClasses lists the closed taxonomy in precedence order.
var MedicationClasses = []MedicationClass{
	ClassBiguanide,
	ClassSulfonylurea,
	ClassBasalInsulin,
	ClassBolusInsulin,
	ClassGLP1Daily,
	ClassGLP1Weekly,
	ClassSGLT2,
	ClassTZD,
	ClassOther,
}

// Valid reports whether c belongs to the closed taxonomy.
func (c MedicationClass) Valid() bool {
	for _, k := range MedicationClasses {
		if c == k {
			return true
		}
	}
	return false
}
