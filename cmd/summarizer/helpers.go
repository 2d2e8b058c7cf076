package main

import (
	"fmt"
	"strconv"
	"strings"

	"summarizer/internal/documents"
)

func parseDocumentID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid document id %q", arg)
	}
	return id, nil
}

func parseStage(arg string) (int, error) {
	stage, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || !documents.ValidStage(stage) {
		return 0, fmt.Errorf("invalid stage %q (expected 1-%d)", arg, documents.StageCount)
	}
	return stage, nil
}

// stageStatus renders one stage's state for tabular output.
func stageStatus(doc *documents.Document, stage int) string {
	switch {
	case doc.StageApproved(stage):
		return "approved"
	case strings.TrimSpace(doc.StageSummary(stage)) != "":
		return "draft"
	default:
		return "-"
	}
}

func truncateForDisplay(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-1]) + "…"
}
