package statement

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// BBVA card statements are PDFs. The extracted text lays each transaction
// out as a repeating 3-line pattern inside the "Consumos" block:
//
//	05-Feb-26                       <- purchase date (ignored)
//	MERCADOPAGO C.3/12 12345678     <- description (+ installment/reference)
//	1.234,56                        <- amount
//
// The block ends at the payments/taxes/balance sections. Anything the
// pattern cannot account for is skipped one line at a time so a single
// malformed record never derails the rest of the scan.

var (
	bbvaDatePattern    = regexp.MustCompile(`^(\d{2})-([A-Za-záéíóú]{3})-(\d{2,4})$`)
	bbvaAmountPattern  = regexp.MustCompile(`^[\d.]+,\d{2}$`)
	bbvaHeaderPattern  = regexp.MustCompile(`(?i)^FECHADESCRIPCI`)
	bbvaPagePattern    = regexp.MustCompile(`(?i)^(Sobre\s*\(\d+\)|Banco BBVA|OCASA)`)
	bbvaBlockStart     = regexp.MustCompile(`(?i)^consumos\s+`)
	bbvaBlockEnd       = regexp.MustCompile(`(?i)^(sus pagos|impuesto de sellos|saldo actual$|detalle$)`)
	bbvaSkipPattern    = regexp.MustCompile(`(?i)^(impuesto de sellos|total consumos|total de cuotas)`)
	bbvaDueDatePattern = regexp.MustCompile(`(?i)vencimiento[:\s]+(\d{2})-([A-Za-záéíóú]{3})-(\d{2,4})`)

	// "C.3/12" followed by a reference number marks an installment purchase
	bbvaInstallmentPattern = regexp.MustCompile(`(?i)C\.(\d{1,2})/(\d{1,2})\d{4,}`)
	bbvaInstallmentStrip   = regexp.MustCompile(`(?i)C\.\d+/\d+`)
	bbvaReferenceStrip     = regexp.MustCompile(`\s+\d{6,}$`)
	whitespaceCollapse     = regexp.MustCompile(`\s+`)
)

var spanishMonths = map[string]time.Month{
	"ene": time.January, "feb": time.February, "mar": time.March,
	"abr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "ago": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dic": time.December,
}

// ParseBBVA extracts transactions from a BBVA PDF statement
func ParseBBVA(data []byte) (*Result, error) {
	text, err := extractPDFText(data)
	if err != nil {
		return nil, fmt.Errorf("PDF text extraction failed: %w", err)
	}
	return parseBBVAText(text), nil
}

// parseBBVAText runs the line state machine over extracted statement text.
// Pure function of its input so it can be tested without a PDF.
func parseBBVAText(text string) *Result {
	lines := splitLines(text)
	statementDate := detectDueDate(lines)

	var transactions []Transaction
	inBlock := false
	i := 0

	for i < len(lines) {
		line := lines[i]

		if bbvaBlockStart.MatchString(line) {
			inBlock = true
			i++
			continue
		}

		if inBlock && bbvaBlockEnd.MatchString(line) {
			inBlock = false
			i++
			continue
		}

		if bbvaHeaderPattern.MatchString(line) || bbvaPagePattern.MatchString(line) || bbvaSkipPattern.MatchString(line) {
			i++
			continue
		}

		if !inBlock {
			i++
			continue
		}

		if !bbvaDatePattern.MatchString(line) {
			i++
			continue
		}

		// Date line found: the next two lines should be description and
		// amount. Anything else means this date line was noise.
		if i+1 >= len(lines) {
			break
		}
		descLine := lines[i+1]
		if bbvaDatePattern.MatchString(descLine) || bbvaHeaderPattern.MatchString(descLine) {
			i++
			continue
		}

		if i+2 >= len(lines) {
			break
		}
		amountLine := lines[i+2]
		if !bbvaAmountPattern.MatchString(amountLine) {
			i++
			continue
		}

		amount, err := ParseAmount(amountLine)
		if err != nil {
			i += 3 // abandon the triplet, resume after it
			continue
		}

		// The consumos block only contains charges
		transactions = append(transactions, Transaction{
			Date:        statementDate,
			Description: cleanBBVADescription(descLine),
			Amount:      amount,
			Kind:        KindExpense,
			Installment: extractBBVAInstallment(descLine),
		})

		i += 3
	}

	return &Result{Transactions: transactions, StatementDate: statementDate}
}

// detectDueDate scans for the "Vencimiento: 06-Feb-26" marker. The statement
// date is the first day of the due month; falls back to today.
func detectDueDate(lines []string) time.Time {
	for _, line := range lines {
		m := bbvaDueDatePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		month, ok := spanishMonths[strings.ToLower(m[2])]
		if !ok {
			break
		}
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	}
	return today()
}

// extractBBVAInstallment pulls "3/12" out of an installment reference tag
// like "C.3/1212345678", or returns "" when the description has none
func extractBBVAInstallment(descLine string) string {
	m := bbvaInstallmentPattern.FindStringSubmatch(descLine)
	if m == nil {
		return ""
	}
	return m[1] + "/" + m[2]
}

// cleanBBVADescription strips the installment tag and any trailing reference
// number, collapsing the leftover whitespace
func cleanBBVADescription(descLine string) string {
	s := bbvaInstallmentStrip.ReplaceAllString(descLine, "")
	s = bbvaReferenceStrip.ReplaceAllString(s, "")
	s = whitespaceCollapse.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// splitLines trims every line and drops blank ones
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
