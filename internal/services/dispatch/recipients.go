package dispatch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

// ErrNoRecipients is returned when a list has no usable row
var ErrNoRecipients = errors.New("no valid recipients found in the uploaded list")

var recipientColumns = []string{"email", "name", "address", "department"}

// LoadRecipients reads a .csv or .xlsx recipient list with a header row.
// Rows missing any of email, name, address or department are dropped.
func LoadRecipients(path string) ([]models.Recipient, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return loadXLSX(path)
	default:
		return loadCSV(path)
	}
}

func loadCSV(path string) ([]models.Recipient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipient list: %w", err)
	}
	defer f.Close()
	return ParseRecipientsCSV(f)
}

// ParseRecipientsCSV parses a CSV recipient list from r
func ParseRecipientsCSV(r io.Reader) ([]models.Recipient, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read recipient list: %w", err)
	}
	return recipientsFromRows(rows)
}

func loadXLSX(path string) ([]models.Recipient, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipient workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("recipient workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read recipient sheet: %w", err)
	}
	return recipientsFromRows(rows)
}

func recipientsFromRows(rows [][]string) ([]models.Recipient, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range recipientColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("recipient list is missing the %q column", col)
		}
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []models.Recipient
	for _, row := range rows[1:] {
		r := models.Recipient{
			Email:      cell(row, "email"),
			Name:       cell(row, "name"),
			Address:    cell(row, "address"),
			Department: cell(row, "department"),
		}
		if r.Email == "" || r.Name == "" || r.Address == "" || r.Department == "" {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
