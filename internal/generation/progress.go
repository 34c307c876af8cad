package generation

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Stage is a step of an export
type Stage string

// Export stages in order
const (
	StagePrepare  Stage = "prepare"
	StageGenerate Stage = "generate"
	StageOptimize Stage = "optimize"
	StageComplete Stage = "complete"
)

// StagePercent is the progress reported when a stage starts
var StagePercent = map[Stage]int{
	StagePrepare:  10,
	StageGenerate: 50,
	StageOptimize: 85,
	StageComplete: 100,
}

// ProgressEvent is one progress update of an export
type ProgressEvent struct {
	Stage   Stage          `json:"stage"`
	Percent int            `json:"percent"`
	Message string         `json:"message"`
	Formats []types.Format `json:"formats,omitempty"`
}

// ProgressCallback receives progress updates. It is called synchronously on
// the exporting goroutine.
type ProgressCallback func(event ProgressEvent)

func emitProgress(cb ProgressCallback, stage Stage, formats ...types.Format) {
	if cb == nil {
		return
	}
	cb(ProgressEvent{
		Stage:   stage,
		Percent: StagePercent[stage],
		Message: stageMessage(stage, formats),
		Formats: formats,
	})
}

func stageMessage(stage Stage, formats []types.Format) string {
	switch stage {
	case StagePrepare:
		return "Preparing your resume..."
	case StageGenerate:
		names := make([]string, 0, len(formats))
		for _, f := range formats {
			names = append(names, strings.ToUpper(string(f)))
		}
		return fmt.Sprintf("Generating %s document...", strings.Join(names, " and "))
	case StageOptimize:
		return "Optimizing layout..."
	case StageComplete:
		return "Complete!"
	}
	return string(stage)
}
