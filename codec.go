package drivetab

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const defaultSheetName = "Sheet1"

// ReadOptions configures how downloaded bytes are decoded into a Table.
// The zero value is valid and means: comma-delimited CSV, first worksheet,
// first row is the header.
type ReadOptions struct {
	// Sheet selects the worksheet to read from spreadsheet files.
	// Empty means the first worksheet. Ignored for CSV files.
	Sheet string
	// Delimiter is the CSV field delimiter. Zero means ','. Ignored for
	// spreadsheet files.
	Delimiter rune
	// NoHeader treats the first row as data; column names are synthesized
	// as "0", "1", ... instead.
	NoHeader bool
}

// Validate checks the options at the boundary before any network call.
func (o ReadOptions) Validate() error {
	if err := validateDelimiter(o.Delimiter); err != nil {
		return err
	}
	return validateSheetName(o.Sheet)
}

// WriteOptions configures how a Table is serialized before upload.
// The zero value is valid and means: comma-delimited CSV, worksheet
// "Sheet1", header row written.
type WriteOptions struct {
	// Sheet names the worksheet in written spreadsheet files.
	// Empty means "Sheet1". Ignored for CSV files.
	Sheet string
	// Delimiter is the CSV field delimiter. Zero means ','. Ignored for
	// spreadsheet files.
	Delimiter rune
	// NoHeader omits the header row.
	NoHeader bool
}

// Validate checks the options at the boundary before any network call.
func (o WriteOptions) Validate() error {
	if err := validateDelimiter(o.Delimiter); err != nil {
		return err
	}
	return validateSheetName(o.Sheet)
}

func validateDelimiter(d rune) error {
	if d == 0 {
		return nil
	}
	if d == '\r' || d == '\n' || d == '"' || d == utf8.RuneError {
		return fmt.Errorf("delimiter %q is not usable in CSV: %w", d, ErrInvalidOptions)
	}
	return nil
}

// validateSheetName enforces the worksheet naming rules of the XLSX format:
// at most 31 characters, none of : \ / ? * [ ], and no leading or trailing
// apostrophe. An empty name means the default sheet and is always valid.
func validateSheetName(name string) error {
	if name == "" {
		return nil
	}
	if utf8.RuneCountInString(name) > 31 {
		return fmt.Errorf("sheet name '%s' is longer than 31 characters: %w", name, ErrInvalidOptions)
	}
	if strings.ContainsAny(name, `:\/?*[]`) {
		return fmt.Errorf("sheet name '%s' contains one of : \\ / ? * [ ]: %w", name, ErrInvalidOptions)
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return fmt.Errorf("sheet name '%s' begins or ends with an apostrophe: %w", name, ErrInvalidOptions)
	}
	return nil
}

func decodeCSV(data []byte, o ReadOptions) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	if o.Delimiter != 0 {
		r.Comma = o.Delimiter
	}
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return tableFromRecords(records, o.NoHeader)
}

func encodeCSV(t *Table, o WriteOptions) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if o.Delimiter != 0 {
		w.Comma = o.Delimiter
	}
	if !o.NoHeader {
		if err := w.Write(t.columns); err != nil {
			return nil, fmt.Errorf("failed to write CSV header: %w", err)
		}
	}
	for _, row := range t.rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeXLSX(data []byte, o ReadOptions) (table *Table, err error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", closeErr)
		}
	}()

	sheet := o.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	index, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to look up worksheet '%s': %w", sheet, err)
	}
	if index < 0 {
		return nil, fmt.Errorf("worksheet '%s' does not exist: %w", sheet, ErrInvalidOptions)
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet '%s': %w", sheet, err)
	}
	return tableFromRecords(records, o.NoHeader)
}

func encodeXLSX(t *Table, o WriteOptions) (data []byte, err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", closeErr)
		}
	}()

	sheet := o.Sheet
	if sheet == "" {
		sheet = defaultSheetName
	}
	if sheet != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, sheet); err != nil {
			return nil, fmt.Errorf("failed to name worksheet '%s': %w", sheet, err)
		}
	}

	records := [][]string{}
	if !o.NoHeader {
		records = append(records, t.columns)
	}
	records = append(records, t.rows...)
	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("failed to locate row %d: %w", i+1, err)
		}
		row := make([]any, len(record))
		for j, v := range record {
			row[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// tableFromRecords builds a Table from raw records. Spreadsheet readers trim
// trailing empty cells per row, so rows shorter than the header are padded
// with empty cells. Rows wider than the header widen the table; the extra
// columns get synthesized names, the same "0", "1", ... scheme NoHeader uses.
func tableFromRecords(records [][]string, noHeader bool) (*Table, error) {
	if len(records) == 0 {
		return NewTable(nil, nil)
	}

	var columns []string
	rows := records
	if noHeader {
		columns = []string{}
	} else {
		columns = records[0]
		rows = records[1:]
	}

	width := len(columns)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for len(columns) < width {
		columns = append(columns, strconv.Itoa(len(columns)))
	}

	padded := make([][]string, 0, len(rows))
	for _, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		padded = append(padded, row)
	}
	return NewTable(columns, padded)
}
