package stagegate

import (
	"fmt"
	"strings"

	"summarizer/internal/documents"
	"summarizer/internal/services"
)

// Promotion signals that the approved stage's summary should seed the next
// stage. Approving the terminal stage yields no promotion.
type Promotion struct {
	From int
	To   int
}

// ApprovalResult describes the side effects of an approval decision.
type ApprovalResult struct {
	// Changed is false when the stage was already approved (no-op).
	Changed bool
	// Promote is nil for the terminal stage, no-op approvals, and when the
	// target stage already holds text the caller did not ask to overwrite.
	Promote *Promotion
}

// CanGenerate reports whether a generate or correct action is legal for the
// stage. Stage 1 is always generatable; later stages require the prior stage
// to be approved and the stage itself to still be unapproved.
func CanGenerate(doc *documents.Document, stage int) bool {
	if !documents.ValidStage(stage) {
		return false
	}
	if stage == 1 {
		return true
	}
	return doc.StageApproved(stage-1) && !doc.StageApproved(stage)
}

// Approve decides whether a stage may be approved and what promotion follows.
// The document is not mutated; callers apply the returned effects.
func Approve(doc *documents.Document, stage int, overwrite bool) (ApprovalResult, error) {
	if doc.StageApproved(stage) {
		return ApprovalResult{}, nil
	}
	if stage > 1 && !doc.StageApproved(stage-1) {
		return ApprovalResult{}, services.Wrap(
			services.ErrInvalidTransition, "stagegate", "approve",
			fmt.Sprintf("stage %d cannot be approved while stage %d is unapproved", stage, stage-1), nil)
	}
	if strings.TrimSpace(doc.StageSummary(stage)) == "" {
		return ApprovalResult{}, services.Wrap(
			services.ErrInvalidTransition, "stagegate", "approve",
			fmt.Sprintf("stage %d has no summary to approve", stage), nil)
	}

	result := ApprovalResult{Changed: true}
	if stage < documents.StageCount {
		if doc.StageSummary(stage+1) == "" || overwrite {
			result.Promote = &Promotion{From: stage, To: stage + 1}
		}
	}
	return result, nil
}

// Unapprove returns the stages whose approval must be force-cleared when the
// given stage is unapproved. The stage's own flag clears too; the returned
// slice lists only downstream casualties, in order.
func Unapprove(doc *documents.Document, stage int) []int {
	var cascade []int
	for s := stage + 1; s <= documents.StageCount; s++ {
		if doc.StageApproved(s) {
			cascade = append(cascade, s)
		}
	}
	return cascade
}

// ValidateSummaryEdit decides whether replacing a stage's summary text is
// legal. Text is freely editable except that an approved stage can never be
// left empty, which would break the approved-implies-nonempty invariant.
func ValidateSummaryEdit(doc *documents.Document, stage int, text string) error {
	if doc.StageApproved(stage) && strings.TrimSpace(text) == "" {
		return services.Wrap(
			services.ErrInvalidTransition, "stagegate", "edit",
			fmt.Sprintf("stage %d is approved and cannot be emptied", stage), nil)
	}
	return nil
}
