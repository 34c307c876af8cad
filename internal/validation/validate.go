// Package validation derives a ValidationReport from a resume snapshot.
//
// Validation never fails: every problem is reported as a blocking error or an
// advisory warning keyed by field path. Callers decide what to gate on
// IsValid; warnings never block anything here.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/types"
)

// Length and count thresholds used by the rules
const (
	MinSummaryLength = 50
	MaxSummaryLength = 500
	MinSkills        = 5
	MaxSkills        = 20
)

// Field keys that are not indexed by entry
const (
	KeyName       = "name"
	KeyEmail      = "email"
	KeyPhone      = "phone"
	KeyLocation   = "location"
	KeySummary    = "summary"
	KeyExperience = "experience"
	KeyEducation  = "education"
	KeySkills     = "skills"
	KeyTemplate   = "template"
	KeyATS        = "ats"
)

// Validate checks data and the selected template against the builder rules.
// It is a pure function: the same inputs always produce deep-equal reports.
func Validate(data types.ResumeData, tmpl *types.Template) types.ValidationReport {
	r := types.NewValidationReport()

	validatePersonalInfo(&r, data.PersonalInfo)
	validateSummary(&r, data.Summary)
	validateExperience(&r, data.Experience)
	validateEducation(&r, data.Education)
	validateSkills(&r, data.Skills)

	if tmpl == nil {
		r.Errors[KeyTemplate] = "Please select a template"
	}

	if !ContainsActionVerb(ResumeText(data)) {
		r.Warnings[KeyATS] = "Consider using action verbs (e.g. led, developed, improved) to strengthen your resume for ATS screening"
	}

	r.IsValid = len(r.Errors) == 0
	return r
}

func validatePersonalInfo(r *types.ValidationReport, info types.PersonalInfo) {
	if isBlank(info.Name) {
		r.Errors[KeyName] = "Name is required"
	}

	switch {
	case isBlank(info.Email):
		r.Errors[KeyEmail] = "Email is required"
	case !IsValidEmail(info.Email):
		r.Errors[KeyEmail] = "Please enter a valid email address"
	}

	switch {
	case isBlank(info.Phone):
		r.Errors[KeyPhone] = "Phone number is required"
	case !IsValidPhone(info.Phone):
		r.Warnings[KeyPhone] = "Phone number format may not be recognized"
	}

	if isBlank(info.Location) {
		r.Warnings[KeyLocation] = "Adding a location helps recruiters find local candidates"
	}
}

func validateSummary(r *types.ValidationReport, summary string) {
	if isBlank(summary) {
		r.Errors[KeySummary] = "Professional summary is required"
		return
	}
	n := utf8.RuneCountInString(summary)
	if n < MinSummaryLength {
		r.Warnings[KeySummary] = fmt.Sprintf("Summary is short (%d characters); aim for at least %d", n, MinSummaryLength)
	} else if n > MaxSummaryLength {
		r.Warnings[KeySummary] = fmt.Sprintf("Summary is long (%d characters); keep it under %d", n, MaxSummaryLength)
	}
}

func validateExperience(r *types.ValidationReport, entries []types.WorkExperience) {
	if len(entries) == 0 {
		r.Errors[KeyExperience] = "At least one work experience entry is required"
		return
	}
	for i, exp := range entries {
		if isBlank(exp.Position) {
			r.Errors[entryKey(KeyExperience, i, "position")] = "Position is required"
		}
		if isBlank(exp.Company) {
			r.Errors[entryKey(KeyExperience, i, "company")] = "Company is required"
		}
		if isBlank(exp.StartDate) {
			r.Errors[entryKey(KeyExperience, i, "startDate")] = "Start date is required"
		}
		if len(exp.Description) == 0 {
			r.Warnings[entryKey(KeyExperience, i, "description")] = "Add a description of your responsibilities"
		}
	}
}

func validateEducation(r *types.ValidationReport, entries []types.Education) {
	if len(entries) == 0 {
		r.Errors[KeyEducation] = "At least one education entry is required"
		return
	}
	for i, edu := range entries {
		if isBlank(edu.Degree) {
			r.Errors[entryKey(KeyEducation, i, "degree")] = "Degree is required"
		}
		if isBlank(edu.Field) {
			r.Errors[entryKey(KeyEducation, i, "field")] = "Field of study is required"
		}
		if isBlank(edu.Institution) {
			r.Errors[entryKey(KeyEducation, i, "institution")] = "Institution is required"
		}
	}
}

func validateSkills(r *types.ValidationReport, skills []string) {
	switch n := len(skills); {
	case n == 0:
		r.Errors[KeySkills] = "At least one skill is required"
	case n < MinSkills:
		r.Warnings[KeySkills] = fmt.Sprintf("Consider adding more skills (at least %d recommended)", MinSkills)
	case n > MaxSkills:
		r.Warnings[KeySkills] = fmt.Sprintf("Too many skills may dilute focus (at most %d recommended)", MaxSkills)
	}
}

// entryKey builds keys like "experience.0.company"
func entryKey(section string, index int, field string) string {
	return fmt.Sprintf("%s.%d.%s", section, index, field)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
