package documents

import "time"

// StageCount is the number of sequential summarization passes.
const StageCount = 3

// ValidStage reports whether a stage number names a real pipeline stage.
func ValidStage(stage int) bool {
	return stage >= 1 && stage <= StageCount
}

// Document represents one uploaded source file persisted in SQLite.
type Document struct {
	ID         int64
	SourcePath string
	Filename   string
	Title      string
	Authors    string

	// ImageLinks is the creation-time snapshot of sidecar assets found next
	// to the source file. It is never refreshed afterwards.
	ImageLinks []string

	Stage1Summary  string
	Stage1Approved bool
	Stage2Summary  string
	Stage2Approved bool
	Stage3Summary  string
	Stage3Approved bool

	Published   bool
	ExportNotes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StageSummary returns the summary text for a stage. Invalid stages return "".
func (d *Document) StageSummary(stage int) string {
	switch stage {
	case 1:
		return d.Stage1Summary
	case 2:
		return d.Stage2Summary
	case 3:
		return d.Stage3Summary
	default:
		return ""
	}
}

// SetStageSummary replaces the summary text for a stage.
func (d *Document) SetStageSummary(stage int, text string) {
	switch stage {
	case 1:
		d.Stage1Summary = text
	case 2:
		d.Stage2Summary = text
	case 3:
		d.Stage3Summary = text
	}
}

// StageApproved returns the approval flag for a stage. Invalid stages return false.
func (d *Document) StageApproved(stage int) bool {
	switch stage {
	case 1:
		return d.Stage1Approved
	case 2:
		return d.Stage2Approved
	case 3:
		return d.Stage3Approved
	default:
		return false
	}
}

// SetStageApproved replaces the approval flag for a stage.
func (d *Document) SetStageApproved(stage int, approved bool) {
	switch stage {
	case 1:
		d.Stage1Approved = approved
	case 2:
		d.Stage2Approved = approved
	case 3:
		d.Stage3Approved = approved
	}
}

// NewDocument carries the fields required to insert a document.
type NewDocument struct {
	SourcePath string
	Filename   string
	Title      string
	Authors    string
	ImageLinks []string
}
