package statement

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Santander card statements are XLSX workbooks with a fixed layout on the
// first sheet:
//
//	"Fecha de cierre" | "Fecha de vencimiento" | ...   <- marker row
//	"29/01/2026"      | "06/02/2026"           | ...   <- values one row below
//	...
//	"Tarjeta de ..."                                   <- block marker
//	(header row)
//	fecha | descripción | cuotas | ... | monto         <- transactions
//	...
//	"Total de ..."                                     <- block end

// installmentPattern matches Santander's "16 de 18" installment column text
var installmentPattern = regexp.MustCompile(`(?i)(\d+)\s+de\s+(\d+)`)

// ParseSantander extracts transactions from a Santander XLSX statement
func ParseSantander(data []byte) (*Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return parseSantanderRows(rows), nil
}

// parseSantanderRows walks the row grid and emits the transaction block.
// Pure function of its input so it can be tested without a workbook.
func parseSantanderRows(rows [][]string) *Result {
	statementDate := detectClosingDate(rows)

	start, end := consumptionBounds(rows)
	if start < 0 {
		return &Result{StatementDate: statementDate}
	}

	var transactions []Transaction
	for i := start; i < end; i++ {
		row := rows[i]
		if rowEmpty(row) {
			continue
		}

		description := strings.TrimSpace(cell(row, 1))
		installmentRaw := strings.TrimSpace(cell(row, 2))
		amountRaw := strings.TrimSpace(cell(row, 4))

		if description == "" || amountRaw == "" {
			continue
		}

		amount, err := ParseAmount(amountRaw)
		if err != nil {
			continue // unparsable amount, skip the row
		}

		// Credits and card payments appear as negative amounts and count
		// as income; everything else is an expense.
		kind := KindExpense
		if amount.IsNegative() {
			kind = KindIncome
		}

		transactions = append(transactions, Transaction{
			Date:        statementDate,
			Description: description,
			Amount:      amount.Abs(),
			Kind:        kind,
			Installment: extractInstallment(installmentRaw),
		})
	}

	return &Result{Transactions: transactions, StatementDate: statementDate}
}

// detectClosingDate finds the "Fecha de cierre" marker and reads the
// DD/MM/YYYY value one row below it. The statement date is the first day of
// the closing month; falls back to today when the marker is missing.
func detectClosingDate(rows [][]string) time.Time {
	for i, row := range rows {
		if !strings.Contains(strings.ToLower(cell(row, 0)), "fecha de cierre") {
			continue
		}
		if i+1 < len(rows) {
			if date, ok := parseSlashDate(cell(rows[i+1], 0)); ok {
				return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
			}
		}
		break
	}
	return today()
}

// consumptionBounds locates the transaction block: it starts two rows after
// the "tarjeta de" marker and ends at the "total de" row. Without an end
// marker the block runs to the last row; without a start marker there is no
// block and start is -1.
func consumptionBounds(rows [][]string) (start, end int) {
	start, end = -1, -1
	for i, row := range rows {
		col0 := strings.ToLower(cell(row, 0))
		if strings.Contains(col0, "tarjeta de") {
			start = i + 2
		}
		if start > 0 && strings.Contains(col0, "total de") {
			end = i
			break
		}
	}
	if end < 0 {
		end = len(rows)
	}
	return start, end
}

// extractInstallment converts "16 de 18" into "16/18", or "" when the cell
// holds no installment marker
func extractInstallment(raw string) string {
	m := installmentPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1] + "/" + m[2]
}

// parseSlashDate parses a DD/MM/YYYY cell value
func parseSlashDate(raw string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// cell reads column idx from a row, returning "" for missing cells. Excelize
// trims trailing empty cells, so short rows are normal.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
