package employee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
	"github.com/xuri/excelize/v2"
)

// Roster workbook columns, in order: Nama, Email, Jabatan, Mulai, Target Jam/Hari, PIN.
const (
	colName = iota
	colEmail
	colRole
	colStartDate
	colTargetHours
	colPIN
)

// ImportXLSX implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ImportXLSX(ctx context.Context, r io.Reader) (employee.ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return employee.ImportResult{}, fmt.Errorf("%w: %v", employee.ErrInvalidImportFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return employee.ImportResult{}, fmt.Errorf("%w: no sheets found", employee.ErrInvalidImportFile)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return employee.ImportResult{}, fmt.Errorf("%w: %v", employee.ErrInvalidImportFile, err)
	}

	result := employee.ImportResult{
		Imported: []employee.EmployeeResponse{},
		Skipped:  []employee.ImportSkip{},
	}
	for i, row := range rows {
		// header
		if i == 0 {
			continue
		}
		rowNum := i + 1
		if isBlankRow(row) {
			continue
		}

		req, err := parseRow(row)
		if err == nil {
			err = req.Validate()
		}
		if err != nil {
			result.Skipped = append(result.Skipped, employee.ImportSkip{Row: rowNum, Email: cell(row, colEmail), Reason: err.Error()})
			continue
		}

		created, err := s.create(ctx, req)
		if errors.Is(err, employee.ErrEmailExists) {
			result.Skipped = append(result.Skipped, employee.ImportSkip{Row: rowNum, Email: req.Email, Reason: err.Error()})
			continue
		}
		if err != nil {
			return result, fmt.Errorf("failed to import row %d: %w", rowNum, err)
		}
		result.Imported = append(result.Imported, employee.NewEmployeeResponse(created))
	}

	slog.Info("Roster imported", "imported", len(result.Imported), "skipped", len(result.Skipped))
	return result, nil
}

func parseRow(row []string) (employee.CreateEmployeeRequest, error) {
	req := employee.CreateEmployeeRequest{
		Name:      cell(row, colName),
		Email:     cell(row, colEmail),
		Role:      cell(row, colRole),
		StartDate: cell(row, colStartDate),
		PIN:       cell(row, colPIN),
	}
	if raw := cell(row, colTargetHours); raw != "" {
		hours, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil {
			return req, validator.ValidationErrors{{Field: "target_hours", Message: "target_hours must be a number"}}
		}
		req.TargetHours = &hours
	}
	return req, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
