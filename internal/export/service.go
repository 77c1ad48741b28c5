// Package export produces XLSX workbooks from stored normalized records,
// for accountants who want the quarter's certificates in one sheet.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/Cpaul777/docai-parse-codes/internal/record"
	"github.com/Cpaul777/docai-parse-codes/internal/repository"
)

// Service is a tiny façade over the record store that renders XLSX bytes.
type Service struct {
	store  repository.Store
	logger *slog.Logger
}

func NewService(store repository.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// columns is the fixed export layout: header label and the record field it
// reads. Missing fields render empty.
var columns = []struct {
	header string
	field  string
}{
	{"Document", ""}, // assigned store name
	{"Form No", "form_no"},
	{"From", "from_date"},
	{"To", "to_date"},
	{"Quarter", "quarter"},
	{"Payee TIN", "payee_tin_no"},
	{"Payee Name", "payee_name"},
	{"Payor TIN", "payor_tin_no"},
	{"Payor Name", "payor_name"},
	{"Gross Amount", "gross_amount"},
	{"Withheld Amount", "withheld_amount"},
	{"Net Amount", "net_amount"},
	{"Confidence", "confidence_average"},
}

// ExportCollectionXLSX renders every record of a collection into one sheet.
func (s *Service) ExportCollectionXLSX(ctx context.Context, collection string) ([]byte, error) {
	stored, err := s.store.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", collection, err)
	}

	f := excelize.NewFile()
	const sheet = "Records"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	f.DeleteSheet("Sheet1")

	for i, c := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, c.header)
	}

	row := 2
	for _, sr := range stored {
		var rec record.Record
		if err := json.Unmarshal(sr.Payload, &rec); err != nil {
			s.logger.Warn("skipping undecodable record", "name", sr.Name, "error", err)
			continue
		}
		for i, c := range columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if c.field == "" {
				_ = f.SetCellValue(sheet, cell, sr.Name)
				continue
			}
			if v, ok := rec.Fields[c.field]; ok {
				_ = f.SetCellValue(sheet, cell, v)
			}
		}
		row++
	}

	s.logger.Info("export built", "collection", collection, "records", row-2)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
