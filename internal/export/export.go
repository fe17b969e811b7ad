// Package export renders stored financing requests as downloadable files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"loan-scorer/internal/apperrors"
	"loan-scorer/internal/features"
	"loan-scorer/internal/models"

	"github.com/xuri/excelize/v2"
)

// Format is an export file format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatExcel Format = "excel"
)

const sheetName = "Sheet1"

// Header lists the exported columns in persisted order.
var Header = []string{
	features.FieldRequestID,
	features.FieldAge,
	features.FieldSex,
	features.FieldEducation,
	features.FieldGrossIncome,
	features.FieldWorkExperience,
	features.FieldRealEstate,
	features.FieldAmountRequested,
	features.FieldPurpose,
	features.FieldInterestRate,
	features.FieldAmountToIncome,
	features.FieldCreditHistoryYears,
	features.FieldCreditScore,
	features.FieldPriorDefault,
	features.FieldApprovalProbability,
}

// ParseFormat maps the query value to a Format. Empty selects CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON, FormatExcel:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported export format %q: %w", s, apperrors.ErrInput)
	}
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// FileName is the attachment name of the format, or "" when the format is served inline.
func (f Format) FileName() string {
	switch f {
	case FormatCSV:
		return "richieste.csv"
	case FormatExcel:
		return "richieste.xlsx"
	default:
		return ""
	}
}

// Write renders records in format f.
func Write(w io.Writer, f Format, records []models.FinancingRequest) error {
	switch f {
	case FormatJSON:
		return json.NewEncoder(w).Encode(records)
	case FormatExcel:
		return writeExcel(w, records)
	default:
		return writeCSV(w, records)
	}
}

func row(r *models.FinancingRequest) []any {
	return []any{
		r.RequestID, r.Age, r.Sex, r.Education, r.GrossIncome, r.WorkExperience,
		r.RealEstate, r.AmountRequested, r.Purpose, r.InterestRate, r.AmountToIncome,
		r.CreditHistoryYears, r.CreditScore, r.PriorDefault, r.ApprovalProbability,
	}
}

func writeCSV(w io.Writer, records []models.FinancingRequest) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}

	line := make([]string, len(Header))
	for i := range records {
		for j, v := range row(&records[i]) {
			switch val := v.(type) {
			case int64:
				line[j] = strconv.FormatInt(val, 10)
			case float64:
				line[j] = strconv.FormatFloat(val, 'f', -1, 64)
			default:
				line[j] = fmt.Sprint(val)
			}
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeExcel(w io.Writer, records []models.FinancingRequest) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(&records[i])
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
