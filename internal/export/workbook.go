// Package export renders a job's pipeline as an Excel workbook.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"hvac-ats-backend/internal/jobs"
	"hvac-ats-backend/internal/pipeline"
	"hvac-ats-backend/internal/scoring"
)

const (
	SheetPipeline = "Pipeline"
	SheetSummary  = "Summary"
)

var headers = []string{
	"Candidate", "Email", "Phone", "Status", "Tier", "Tier Score", "Stars",
	"Give Them A Chance", "Vehicle", "Contacted", "Summary", "Notes",
}

var tierFills = map[string]string{
	string(scoring.TierGreen):  "C6EFCE",
	string(scoring.TierYellow): "FFEB9C",
	string(scoring.TierRed):    "FFC7CE",
}

// WriteWorkbook writes entries, already in display order, to w as xlsx.
func WriteWorkbook(w io.Writer, job jobs.Job, entries []pipeline.Entry, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPipeline); err != nil {
		return err
	}
	if err := writePipelineSheet(f, entries); err != nil {
		return fmt.Errorf("pipeline sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	if err := writeSummarySheet(f, job, entries, now); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	_, err := f.WriteTo(w)
	return err
}

func border() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func writePipelineSheet(f *excelize.File, entries []pipeline.Entry) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border(),
	})
	if err != nil {
		return err
	}
	tierStyles := make(map[string]int, len(tierFills))
	for tier, color := range tierFills {
		style, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
			Border:    border(),
		})
		if err != nil {
			return err
		}
		tierStyles[tier] = style
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetPipeline, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(SheetPipeline, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, e := range entries {
		row := i + 2
		contacted := ""
		if e.ContactedAt != nil {
			contacted = e.ContactedAt.UTC().Format("2006-01-02")
		}
		values := []any{
			e.CandidateName, e.CandidateEmail, e.CandidatePhone, string(e.Status), e.Tier,
			e.TierScore, e.StarRating, yesNo(e.GiveThemAChance), e.VehicleStatus, contacted,
			e.AISummary, e.Notes,
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SheetPipeline, start, &values); err != nil {
			return err
		}
		if style, ok := tierStyles[e.Tier]; ok {
			end, _ := excelize.CoordinatesToCellName(len(headers), row)
			if err := f.SetCellStyle(SheetPipeline, start, end, style); err != nil {
				return err
			}
		}
	}

	widths := map[string]float64{"A": 24, "B": 28, "C": 16, "D": 12, "E": 10, "F": 10, "G": 8, "H": 12, "I": 12, "J": 12, "K": 60, "L": 40}
	for col, width := range widths {
		if err := f.SetColWidth(SheetPipeline, col, col, width); err != nil {
			return err
		}
	}
	if len(entries) > 0 {
		ref := fmt.Sprintf("A1:%s", lastCell(len(entries)+1))
		if err := f.AutoFilter(SheetPipeline, ref, nil); err != nil {
			return err
		}
	}
	return f.SetPanes(SheetPipeline, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeSummarySheet(f *excelize.File, job jobs.Job, entries []pipeline.Entry, now time.Time) error {
	counts := map[string]int{}
	byStatus := map[pipeline.Status]int{}
	for _, e := range entries {
		counts[e.Tier]++
		byStatus[e.Status]++
	}
	rows := [][]any{
		{"Job", job.Title},
		{"Position", job.Position},
		{"Generated", now.UTC().Format("2006-01-02 15:04:05")},
		{"Candidates", len(entries)},
		{"Green", counts[string(scoring.TierGreen)]},
		{"Yellow", counts[string(scoring.TierYellow)]},
		{"Red", counts[string(scoring.TierRed)]},
	}
	for _, s := range pipeline.Statuses() {
		rows = append(rows, []any{"Status: " + string(s), byStatus[s]})
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &r); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetSummary, "A", "A", 22)
}

func lastCell(row int) string {
	cell, _ := excelize.CoordinatesToCellName(len(headers), row)
	return cell
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
