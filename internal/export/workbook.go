// Package export writes the roster to an Excel workbook.
package export

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/naveenspark/roster/pkg/domain"
)

// Sheet names in the exported workbook.
const (
	ActivitiesSheet   = "Activities"
	ParticipantsSheet = "Participants"
)

var (
	activityHeader    = []any{"Activity", "Description", "Schedule", "Max participants", "Enrolled", "Spots left"}
	participantHeader = []any{"Activity", "Email"}
)

// WriteWorkbook writes r as an .xlsx workbook to w: one row per activity on
// the Activities sheet and one row per registration on the Participants
// sheet, both in roster order.
func WriteWorkbook(w io.Writer, r *domain.Roster) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("export: close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), ActivitiesSheet); err != nil {
		return fmt.Errorf("export.WriteWorkbook: %w", err)
	}
	if _, err := f.NewSheet(ParticipantsSheet); err != nil {
		return fmt.Errorf("export.WriteWorkbook: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export.WriteWorkbook: header style: %w", err)
	}

	activityRows := make([][]any, 0, r.Len())
	var participantRows [][]any
	for _, a := range r.Activities {
		activityRows = append(activityRows, []any{
			a.Name, a.Description, a.Schedule, a.MaxParticipants, len(a.Participants), a.SpotsLeft(),
		})
		for _, email := range a.Participants {
			participantRows = append(participantRows, []any{a.Name, email})
		}
	}

	if err := writeSheet(f, ActivitiesSheet, activityHeader, activityRows, bold); err != nil {
		return fmt.Errorf("export.WriteWorkbook: %w", err)
	}
	if err := writeSheet(f, ParticipantsSheet, participantHeader, participantRows, bold); err != nil {
		return fmt.Errorf("export.WriteWorkbook: %w", err)
	}
	if err := f.SetColWidth(ActivitiesSheet, "A", "C", 32); err != nil {
		return fmt.Errorf("export.WriteWorkbook: %w", err)
	}
	if err := f.SetColWidth(ParticipantsSheet, "A", "B", 32); err != nil {
		return fmt.Errorf("export.WriteWorkbook: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export.WriteWorkbook: write: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// SaveFile writes the workbook for r to path, replacing any existing file.
func SaveFile(path string, r *domain.Roster) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export.SaveFile: %w", err)
	}
	if err := WriteWorkbook(out, r); err != nil {
		out.Close() //nolint:errcheck
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("export.SaveFile: %w", err)
	}
	return nil
}
