package prompts

import (
	"context"
	"errors"
	"strings"

	"github.com/jonathan/resume-builder/internal/ingestion"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

var (
	errInvalidEmail = errors.New("enter an address like name@example.com")
	errInvalidPhone = errors.New("enter digits with an optional leading +")
)

// Proficiencies lists the language levels offered by AskLanguage
var Proficiencies = []types.Proficiency{
	types.ProficiencyBasic,
	types.ProficiencyConversational,
	types.ProficiencyFluent,
	types.ProficiencyNative,
}

// AskPersonalInfo prompts for the contact block, offering current values as defaults
func AskPersonalInfo(ctx context.Context, d Driver, current types.PersonalInfo) (types.PersonalInfo, error) {
	info := current
	fields := []struct {
		key      string
		dst      *string
		validate func(string) error
	}{
		{"personal.name", &info.Name, required("personal.name")},
		{"personal.email", &info.Email, emailValidator},
		{"personal.phone", &info.Phone, phoneValidator},
		{"personal.location", &info.Location, nil},
		{"personal.linkedin", &info.LinkedIn, nil},
		{"personal.website", &info.Website, nil},
		{"personal.github", &info.GitHub, nil},
	}
	for _, f := range fields {
		v, err := d.Input(ctx, InputConfig{Message: text(f.key), Default: *f.dst, Validator: f.validate})
		if err != nil {
			return current, err
		}
		*f.dst = strings.TrimSpace(v)
	}
	return info, nil
}

// AskSummary prompts for the professional summary
func AskSummary(ctx context.Context, d Driver, current string) (string, error) {
	v, err := d.TextArea(ctx, TextAreaConfig{
		Message: text("summary"),
		Help:    text("summary.help"),
		Default: current,
	})
	if err != nil {
		return current, err
	}
	return strings.TrimSpace(v), nil
}

// AskExperience prompts for one work experience entry. The caller assigns the ID.
func AskExperience(ctx context.Context, d Driver) (types.WorkExperience, error) {
	var e types.WorkExperience
	a := asker{ctx: ctx, d: d}
	e.Company = a.input("experience.company", required("experience.company"))
	e.Position = a.input("experience.position", required("experience.position"))
	e.Location = a.input("experience.location", nil)
	e.StartDate = a.input("experience.start", required("experience.start"))
	e.Current = a.confirm("experience.current")
	if !e.Current {
		e.EndDate = a.input("experience.end", nil)
	}
	e.Description = a.lines("experience.description")
	e.Achievements = a.lines("experience.achievements")
	return e, a.err
}

// AskEducation prompts for one education entry
func AskEducation(ctx context.Context, d Driver) (types.Education, error) {
	var e types.Education
	a := asker{ctx: ctx, d: d}
	e.Institution = a.input("education.institution", required("education.institution"))
	e.Degree = a.input("education.degree", required("education.degree"))
	e.Field = a.input("education.field", nil)
	e.GraduationDate = a.input("education.graduation", nil)
	e.GPA = a.input("education.gpa", nil)
	e.Honors = a.input("education.honors", nil)
	e.RelevantCoursework = []string{}
	e.Activities = []string{}
	return e, a.err
}

// AskProject prompts for one project entry
func AskProject(ctx context.Context, d Driver) (types.Project, error) {
	var p types.Project
	a := asker{ctx: ctx, d: d}
	p.Name = a.input("project.name", required("project.name"))
	p.Description = a.input("project.description", nil)
	p.Technologies = splitList(a.input("project.technologies", nil))
	p.URL = a.input("project.url", nil)
	p.Highlights = a.lines("project.highlights")
	return p, a.err
}

// AskCertification prompts for one certification entry
func AskCertification(ctx context.Context, d Driver) (types.Certification, error) {
	var c types.Certification
	a := asker{ctx: ctx, d: d}
	c.Name = a.input("certification.name", required("certification.name"))
	c.Issuer = a.input("certification.issuer", required("certification.issuer"))
	c.Date = a.input("certification.date", nil)
	c.CredentialID = a.input("certification.credential", nil)
	return c, a.err
}

// AskLanguage prompts for one spoken language entry
func AskLanguage(ctx context.Context, d Driver) (types.Language, error) {
	var l types.Language
	a := asker{ctx: ctx, d: d}
	l.Language = a.input("language.name", required("language.name"))
	if a.err != nil {
		return l, a.err
	}
	options := make([]string, len(Proficiencies))
	for i, p := range Proficiencies {
		options[i] = string(p)
	}
	idx, err := d.Select(ctx, SelectConfig{Message: text("language.proficiency"), Options: options, DefaultIndex: 2})
	if err != nil {
		return l, err
	}
	if idx < 0 || idx >= len(Proficiencies) {
		return l, errors.New("no proficiency selected")
	}
	l.Proficiency = Proficiencies[idx]
	return l, nil
}

// AskSkill prompts for a skill name
func AskSkill(ctx context.Context, d Driver) (string, error) {
	v, err := d.Input(ctx, InputConfig{Message: text("skill.name"), Validator: required("skill.name")})
	return strings.TrimSpace(v), err
}

// AskTemplate offers the given templates and returns the chosen ID. The
// current selection, when present in the list, is the default.
func AskTemplate(ctx context.Context, d Driver, list []types.Template, current string) (string, error) {
	if len(list) == 0 {
		return "", errors.New("no templates to choose from")
	}
	options := make([]string, len(list))
	def := 0
	for i, t := range list {
		options[i] = t.Name + " (" + string(t.Category) + ")"
		if t.ID == current {
			def = i
		}
	}
	idx, err := d.Select(ctx, SelectConfig{
		Message:      text("template.select"),
		Options:      options,
		DefaultIndex: def,
		PageSize:     len(options),
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(list) {
		return "", errors.New("no template selected")
	}
	return list[idx].ID, nil
}

// asker runs a sequence of prompts and stops at the first error
type asker struct {
	ctx context.Context
	d   Driver
	err error
}

func (a *asker) input(key string, validate func(string) error) string {
	if a.err != nil {
		return ""
	}
	v, err := a.d.Input(a.ctx, InputConfig{Message: text(key), Validator: validate})
	if err != nil {
		a.err = err
		return ""
	}
	return strings.TrimSpace(v)
}

func (a *asker) confirm(key string) bool {
	if a.err != nil {
		return false
	}
	v, err := a.d.Confirm(a.ctx, ConfirmConfig{Message: text(key)})
	if err != nil {
		a.err = err
		return false
	}
	return v
}

func (a *asker) lines(key string) []string {
	if a.err != nil {
		return []string{}
	}
	v, err := a.d.TextArea(a.ctx, TextAreaConfig{Message: text(key)})
	if err != nil {
		a.err = err
		return []string{}
	}
	return splitLines(v)
}

// splitLines turns a multi-line answer into bullet items
func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if item := ingestion.CleanBullet(line); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func required(key string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(Format(text("required"), map[string]string{"Field": text(key)}))
		}
		return nil
	}
}

func emailValidator(s string) error {
	if strings.TrimSpace(s) == "" || validation.IsValidEmail(s) {
		return nil
	}
	return errInvalidEmail
}

func phoneValidator(s string) error {
	if strings.TrimSpace(s) == "" || validation.IsValidPhone(s) {
		return nil
	}
	return errInvalidPhone
}
