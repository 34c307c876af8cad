package types

// ValidationReport separates blocking errors from advisory warnings.
// Both maps are keyed by field path, e.g. "experience.0.company".
type ValidationReport struct {
	IsValid  bool              `json:"isValid"`
	Errors   map[string]string `json:"errors"`
	Warnings map[string]string `json:"warnings"`
}

// NewValidationReport returns an empty, valid report
func NewValidationReport() ValidationReport {
	return ValidationReport{
		IsValid:  true,
		Errors:   map[string]string{},
		Warnings: map[string]string{},
	}
}
