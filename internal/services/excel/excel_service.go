package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

// Service writes click reports as Excel workbooks
type Service struct {
	exportsDir string
}

// NewExcelService creates a new Excel service instance
func NewExcelService(exportsDir string) *Service {
	// Create exports directory if it doesn't exist
	if _, err := os.Stat(exportsDir); os.IsNotExist(err) {
		os.MkdirAll(exportsDir, 0755)
	}

	return &Service{exportsDir: exportsDir}
}

// ExportResult contains the result of an export operation
type ExportResult struct {
	Message  string
	Filename string
	Path     string
}

var reportColumns = []string{"email", "clicked", "timestamp", "ip"}

// ExportClickReport writes report to a new workbook in the exports directory
func (s *Service) ExportClickReport(report *models.ClickReport) (*ExportResult, error) {
	filename := fmt.Sprintf("click_report_%s_%d.xlsx", report.CampaignID, time.Now().Unix())
	filePath := filepath.Join(s.exportsDir, filename)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	f.SetActiveSheet(0)

	for i, col := range reportColumns {
		f.SetCellValue(sheet, columnToLetter(i+1)+"1", col)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"FFFF00"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err == nil {
		f.SetCellStyle(sheet, "A1", columnToLetter(len(reportColumns))+strconv.Itoa(1), headerStyle)
	}

	clickedStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"F4B084"}, // Orange
			Pattern: 1,
		},
	})

	for i, col := range reportColumns {
		width := 20.0
		switch col {
		case "email":
			width = 35.0
		case "clicked":
			width = 10.0
		case "timestamp":
			width = 28.0
		}
		letter := columnToLetter(i + 1)
		f.SetColWidth(sheet, letter, letter, width)
	}

	for j, entry := range report.Entries {
		row := j + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), entry.Email)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), yesNo(entry.Clicked))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), entry.Timestamp)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), entry.IP)
		if entry.Clicked {
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", columnToLetter(len(reportColumns)), row), clickedStyle)
		}
	}
	if len(report.Entries) == 0 {
		f.SetCellValue(sheet, "A2", "no recipients found for this campaign")
	}

	if err := f.SaveAs(filePath); err != nil {
		return nil, fmt.Errorf("failed to save Excel file: %w", err)
	}

	return &ExportResult{
		Message:  fmt.Sprintf("Exported %d recipients, %d clicked", report.Total, report.Clicked),
		Filename: filename,
		Path:     filePath,
	}, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Helper function to convert column number to Excel column letter
func columnToLetter(col int) string {
	var result string
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
