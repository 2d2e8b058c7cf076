package documents

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const documentColumns = "id, source_path, filename, title, authors, image_links_json, " +
	"stage1_summary, stage1_approved, stage2_summary, stage2_approved, " +
	"stage3_summary, stage3_approved, published, export_notes, created_at, updated_at"

func scanDocument(scanner interface{ Scan(dest ...any) error }) (*Document, error) {
	var (
		id             int64
		sourcePath     string
		filename       string
		title          sql.NullString
		authors        sql.NullString
		imageLinks     sql.NullString
		stage1Summary  sql.NullString
		stage1Approved int64
		stage2Summary  sql.NullString
		stage2Approved int64
		stage3Summary  sql.NullString
		stage3Approved int64
		published      int64
		exportNotes    sql.NullString
		createdRaw     string
		updatedRaw     string
	)

	if err := scanner.Scan(
		&id,
		&sourcePath,
		&filename,
		&title,
		&authors,
		&imageLinks,
		&stage1Summary,
		&stage1Approved,
		&stage2Summary,
		&stage2Approved,
		&stage3Summary,
		&stage3Approved,
		&published,
		&exportNotes,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	doc := &Document{
		ID:             id,
		SourcePath:     sourcePath,
		Filename:       filename,
		Title:          title.String,
		Authors:        authors.String,
		Stage1Summary:  stage1Summary.String,
		Stage1Approved: stage1Approved != 0,
		Stage2Summary:  stage2Summary.String,
		Stage2Approved: stage2Approved != 0,
		Stage3Summary:  stage3Summary.String,
		Stage3Approved: stage3Approved != 0,
		Published:      published != 0,
		ExportNotes:    exportNotes.String,
	}

	if imageLinks.Valid && imageLinks.String != "" {
		if err := json.Unmarshal([]byte(imageLinks.String), &doc.ImageLinks); err != nil {
			return nil, fmt.Errorf("unmarshal image links for document %d: %w", id, err)
		}
	}

	if created, err := parseTimeString(createdRaw); err == nil {
		doc.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		doc.UpdatedAt = updated
	}
	return doc, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, value)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}
