// Package report exports leads and workload as an Excel workbook.
package report

import (
	"fmt"
	"io"

	"github.com/diewo77/lead-hunter/internal/models"
	"github.com/diewo77/lead-hunter/internal/services"
	"github.com/diewo77/lead-hunter/internal/store"
	"github.com/xuri/excelize/v2"
)

const (
	LeadsSheet    = "Leads"
	WorkloadSheet = "Workload"
)

var (
	leadHeaders     = []string{"ID", "Name", "Status", "Responsible", "Category", "Phone", "Website", "Rating"}
	workloadHeaders = []string{"Responsible ID", "Name", "Email", "Leads"}
)

// WriteWorkbook writes a Leads sheet and a Workload sheet to w. The
// responsible column uses names from workload where known, ids otherwise.
func WriteWorkbook(w io.Writer, leads []models.Lead, workload []services.WorkloadRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LeadsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(WorkloadSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	names := make(map[string]string, len(workload))
	for _, r := range workload {
		if r.Name != "" {
			names[r.ResponsibleID] = r.Name
		}
	}

	leadRows := make([][]any, 0, len(leads))
	for _, l := range leads {
		responsible := l.GetResponsibleID()
		if n, ok := names[responsible]; ok {
			responsible = n
		}
		leadRows = append(leadRows, []any{
			l.ID, l.Name, string(l.Status), responsible, l.Category, l.Phone, l.Website, l.Rating,
		})
	}
	if err := writeSheet(f, LeadsSheet, leadHeaders, leadRows, headerStyle); err != nil {
		return err
	}

	workRows := make([][]any, 0, len(workload))
	for _, r := range workload {
		id := r.ResponsibleID
		if id == store.UnassignedBucket {
			id = "(unassigned)"
		}
		workRows = append(workRows, []any{id, r.Name, r.Email, r.Leads})
	}
	if err := writeSheet(f, WorkloadSheet, workloadHeaders, workRows, headerStyle); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any, headerStyle int) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}
	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, 18); err != nil {
			return err
		}
	}
	return nil
}
