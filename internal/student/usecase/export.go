package usecase

import (
	"context"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/allisson/school/internal/errors"
)

// exportSheetName is the single worksheet of the roster workbook.
const exportSheetName = "Students"

// exportHeaders are the roster columns, in output order. The password hash
// is intentionally absent.
var exportHeaders = []string{"ID", "Name", "Birth Date", "CPF", "Email", "Created At"}

// Export renders the full roster as an xlsx workbook, one row per student,
// ordered by name.
func (uc *studentUseCase) Export(ctx context.Context) ([]byte, error) {
	students, err := uc.studentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName(f.GetSheetName(0), exportSheetName)

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to build export header")
		}
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, apperrors.Wrap(err, "failed to write export header")
		}
	}

	for row, student := range students {
		values := []any{
			student.ID.String(),
			student.Name,
			student.BirthDate.Format("2006-01-02"),
			student.CPF,
			student.Email,
			student.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, apperrors.Wrap(err, "failed to build export cell")
			}
			if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
				return nil, apperrors.Wrap(err, "failed to write export cell")
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to render export workbook")
	}

	return buf.Bytes(), nil
}
