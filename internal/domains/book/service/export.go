package service

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"bookstore-admin/internal/domains/book"
	"bookstore-admin/internal/shared/utils"
)

const exportSheet = "Books"

var exportHeaders = []string{"ISBN", "Title", "Author", "Published At", "Summary", "Created At"}

// tách ra để test thay thế
var (
	newExportFile   = excelize.NewFile
	closeExportFile = (*excelize.File).Close
)

func (s *bookService) Export(ctx context.Context, w io.Writer) error {
	books, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}

	f, err := buildBooksExcelFile(books)
	if err != nil {
		return fmt.Errorf("failed to build excel file: %w", err)
	}
	defer func() {
		if err := closeExportFile(f); err != nil {
			log.Warn().Err(err).Msg("Close excel file failed")
		}
	}()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write excel file: %w", err)
	}
	return nil
}

// buildBooksExcelFile: caller Close file khi thành công, lỗi thì file đã được Close
func buildBooksExcelFile(books []book.BookWithAuthor) (_ *excelize.File, err error) {
	f := newExportFile()
	defer func() {
		if err == nil {
			return
		}
		if closeErr := closeExportFile(f); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Close excel file failed")
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	// Row 1: header
	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(exportSheet, "A1", lastCol, headerStyle)
	}

	// Data rows từ row 2
	for i, b := range books {
		row := []interface{}{
			b.ISBN,
			b.Title,
			b.AuthorName,
			b.PublishedAt.Format(book.DateLayout),
			utils.StringValue(b.Summary),
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
