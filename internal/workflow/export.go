package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"summarizer/internal/logging"
	"summarizer/internal/services"
)

// Export writes the stage 3 summary as a markdown artifact next to the source
// file and marks the document published. The write is idempotent: a second
// export overwrites the artifact in place. Returns the artifact path.
func (m *Manager) Export(ctx context.Context, id int64) (string, error) {
	var artifact string
	err := m.withLock(id, func() error {
		doc, err := m.GetDocument(ctx, id)
		if err != nil {
			return err
		}
		summary := strings.TrimSpace(doc.Stage3Summary)
		if summary == "" {
			return services.Wrap(services.ErrMissingSummary, "workflow", "export",
				"stage 3 has no summary to export", nil)
		}
		folder := filepath.Dir(doc.SourcePath)
		info, statErr := os.Stat(folder)
		if statErr != nil || !info.IsDir() {
			return services.Wrap(services.ErrMissingFolder, "workflow", "export",
				fmt.Sprintf("source folder %s is not available", folder), statErr)
		}

		artifact = filepath.Join(folder, fmt.Sprintf("document_%d_stage3_summary.md", doc.ID))
		body := "# Stage 3 Summary\n\n" + summary + "\n"
		if err := os.WriteFile(artifact, []byte(body), 0o644); err != nil {
			return services.Wrap(services.ErrMissingFolder, "workflow", "export",
				"write summary artifact", err)
		}

		if !doc.Published {
			doc.Published = true
			if err := m.store.Update(ctx, doc); err != nil {
				return err
			}
		}
		m.logger.InfoContext(ctx, "document exported",
			logging.DocumentID(id), slog.String("artifact", artifact))
		return nil
	})
	return artifact, err
}
