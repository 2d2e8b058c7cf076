package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"summarizer/internal/documents"
	"summarizer/internal/logging"
	"summarizer/internal/services"
	"summarizer/internal/stagegate"
)

// Approve marks a stage's summary as reviewed and, for non-terminal stages,
// seeds the next stage's draft with the approved text. When the next stage
// already holds text, the copy only happens when overwrite is set. Approving
// an already-approved stage is a no-op.
func (m *Manager) Approve(ctx context.Context, id int64, stage int, overwrite bool) (stagegate.ApprovalResult, error) {
	var result stagegate.ApprovalResult
	err := m.withLock(id, func() error {
		if err := validStageArg(stage, "approve"); err != nil {
			return err
		}
		doc, err := m.GetDocument(ctx, id)
		if err != nil {
			return err
		}
		result, err = stagegate.Approve(doc, stage, overwrite)
		if err != nil {
			return err
		}
		if !result.Changed {
			return nil
		}
		doc.SetStageApproved(stage, true)
		if result.Promote != nil {
			doc.SetStageSummary(result.Promote.To, doc.StageSummary(result.Promote.From))
		}
		if err := m.store.Update(ctx, doc); err != nil {
			return err
		}
		m.logger.InfoContext(ctx, "stage approved",
			logging.DocumentID(id), logging.Stage(stage))
		return nil
	})
	return result, err
}

// Unapprove clears a stage's approval together with every approved stage
// after it, since their review happened against content that is now suspect.
// Summary text is left untouched. The returned slice lists the downstream
// stages that were force-cleared. Unapproving an unapproved stage is a no-op.
func (m *Manager) Unapprove(ctx context.Context, id int64, stage int) ([]int, error) {
	var cascade []int
	err := m.withLock(id, func() error {
		if err := validStageArg(stage, "unapprove"); err != nil {
			return err
		}
		doc, err := m.GetDocument(ctx, id)
		if err != nil {
			return err
		}
		if !doc.StageApproved(stage) {
			return nil
		}
		cascade = stagegate.Unapprove(doc, stage)
		doc.SetStageApproved(stage, false)
		for _, s := range cascade {
			doc.SetStageApproved(s, false)
		}
		if err := m.store.Update(ctx, doc); err != nil {
			return err
		}
		m.logger.InfoContext(ctx, "stage unapproved",
			logging.DocumentID(id), logging.Stage(stage),
			slog.Any("cascade", cascade))
		return nil
	})
	return cascade, err
}

// SetStageSummary replaces a stage's summary text with reviewer-authored
// content. Approved stages may be edited but never emptied.
func (m *Manager) SetStageSummary(ctx context.Context, id int64, stage int, text string) error {
	return m.withLock(id, func() error {
		if err := validStageArg(stage, "edit"); err != nil {
			return err
		}
		doc, err := m.GetDocument(ctx, id)
		if err != nil {
			return err
		}
		if err := stagegate.ValidateSummaryEdit(doc, stage, text); err != nil {
			return err
		}
		doc.SetStageSummary(stage, text)
		return m.store.Update(ctx, doc)
	})
}

// SetExportNotes replaces the document's free-form export notes.
func (m *Manager) SetExportNotes(ctx context.Context, id int64, notes string) error {
	return m.withLock(id, func() error {
		doc, err := m.GetDocument(ctx, id)
		if err != nil {
			return err
		}
		doc.ExportNotes = strings.TrimSpace(notes)
		return m.store.Update(ctx, doc)
	})
}

func validStageArg(stage int, op string) error {
	if !documents.ValidStage(stage) {
		return services.Wrap(services.ErrInvalidTransition, "workflow", op,
			fmt.Sprintf("stage %d does not exist", stage), nil)
	}
	return nil
}
