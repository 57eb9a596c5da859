package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"bacalah/internal/domain/models"
	"bacalah/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders a printable PDF of one document.
type DocsService struct {
	Documents DocumentService
	RequestID string
	Loader    func(ctx context.Context, id int64) (models.DocumentDetail, error)
}

func (s DocsService) GeneratePDF(ctx context.Context, documentID int64) ([]byte, string, error) {
	doc, err := s.load(ctx, documentID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_pdf", fmt.Sprintf("document_id=%d", documentID))
	return buildDocumentPDF(doc)
}

func (s DocsService) load(ctx context.Context, id int64) (models.DocumentDetail, error) {
	if s.Loader != nil {
		return s.Loader(ctx, id)
	}
	return s.Documents.GetByID(ctx, id)
}

func buildDocumentPDF(d models.DocumentDetail) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(d.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 10, d.Title, "", "", false)
	pdf.Ln(4)

	category := d.CategoryName
	if category == "" {
		category = "-"
	}
	tags := strings.Join(d.Tags, ", ")
	if tags == "" {
		tags = "-"
	}

	pdf.SetFont("Helvetica", "", 10)
	meta := []string{
		fmt.Sprintf("Author   : %s", d.UserName),
		fmt.Sprintf("Category : %s", category),
		fmt.Sprintf("Tags     : %s", tags),
		fmt.Sprintf("Created  : %s", d.CreatedAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Updated  : %s", d.UpdatedAt.Format("2006-01-02 15:04")),
	}
	for _, line := range meta {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 6, d.Content, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("DOC_%d_%s.pdf", d.ID, safeFilenamePart(d.Title))
	return buf.Bytes(), filename, nil
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
