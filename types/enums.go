package types

// Format is a type that represents an output format for benchmark results.
type Format string

// Constants for the different output formats.
const (
	FormatText Format = "text" // labelled text blocks, one per workload
	FormatJSON Format = "json" // a JSON array of results
	FormatCSV  Format = "csv"  // the analyzer CSV layout
)

// String returns the string representation of the Format.
func (f Format) String() string {
	return string(f)
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatText, FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// Grade is a type that represents the real-time predictability grade of a workload.
type Grade string

// Constants for the grade bands, from best to worst.
const (
	GradeExcellent Grade = "Excellent" // overall score >= 90
	GradeGood      Grade = "Good"      // overall score >= 75
	GradeFair      Grade = "Fair"      // overall score >= 60
	GradePoor      Grade = "Poor"      // overall score >= 40
	GradeVeryPoor  Grade = "Very Poor" // overall score < 40
)

// String returns the string representation of a Grade.
func (g Grade) String() string {
	return string(g)
}

// GradeFor returns the grade band of an overall score.
func GradeFor(score float64) Grade {
	switch {
	case score >= 90:
		return GradeExcellent
	case score >= 75:
		return GradeGood
	case score >= 60:
		return GradeFair
	case score >= 40:
		return GradePoor
	default:
		return GradeVeryPoor
	}
}
