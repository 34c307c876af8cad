package ingestion

import (
	"log"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/templates"
)

// Commands converts an imported document into the builder commands that
// recreate it, so imports go through the same transitions as manual edits.
// An unknown template ID is skipped with a log line.
func Commands(doc *Document) []builder.Command {
	d := doc.Data
	var cmds []builder.Command

	if doc.TemplateID != "" {
		if tmpl, ok := templates.Get(doc.TemplateID); ok {
			cmds = append(cmds, builder.SelectTemplate{Template: tmpl})
		} else {
			log.Printf("[builder] import: unknown template %q ignored", doc.TemplateID)
		}
	}

	cmds = append(cmds,
		builder.UpdatePersonalInfo{Info: d.PersonalInfo},
		builder.UpdateSummary{Summary: d.Summary},
	)
	for _, e := range d.Experience {
		cmds = append(cmds, builder.AddExperience{Entry: e})
	}
	for _, e := range d.Education {
		cmds = append(cmds, builder.AddEducation{Entry: e})
	}
	for _, p := range d.Projects {
		cmds = append(cmds, builder.AddProject{Entry: p})
	}
	for _, c := range d.Certifications {
		cmds = append(cmds, builder.AddCertification{Entry: c})
	}
	for _, l := range d.Languages {
		cmds = append(cmds, builder.AddLanguage{Entry: l})
	}
	if len(d.Skills) > 0 {
		cmds = append(cmds, builder.SetSkills{Names: d.Skills})
	}
	return cmds
}
