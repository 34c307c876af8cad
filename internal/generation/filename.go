package generation

import (
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

var whitespace = regexp.MustCompile(`\s+`)

// Filename builds the download name <name>_resume_<template>_<YYYY-MM-DD>.<ext>,
// lowercased with whitespace runs replaced by underscores.
func Filename(name, templateName string, format types.Format, date time.Time) string {
	return slug(name) + "_resume_" + slug(templateName) + "_" + date.Format(time.DateOnly) + "." + format.Extension()
}

func slug(s string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "_")
}
