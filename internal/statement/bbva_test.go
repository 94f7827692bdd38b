package statement

import (
	"strings"
	"testing"
	"time"
)

const bbvaFixtureText = `
Banco BBVA Argentina S.A.
Resumen de tarjeta de crédito
Vencimiento: 06-Feb-26
Saldo actual
Consumos realizados en el período
FECHADESCRIPCIONCUOTAIMPORTE
05-Feb-26
STORE C.3/1212345678
1.234,56
06-Ene-26
MERCADOPAGO*RESTAURANT 987654321
500,00
OCASA distribución
12-Ene-26
KIOSCO 24HS
99,90
Total consumos 1.834,46
Sus pagos
10-Ene-26
SU PAGO EN PESOS
10.000,00
`

func TestParseBBVAText(t *testing.T) {
	result := parseBBVAText(bbvaFixtureText)

	wantDate := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	if !result.StatementDate.Equal(wantDate) {
		t.Fatalf("statement date: got %v, want %v", result.StatementDate, wantDate)
	}

	if len(result.Transactions) != 3 {
		t.Fatalf("got %d transactions, want 3", len(result.Transactions))
	}

	installment := result.Transactions[0]
	if installment.Description != "STORE" {
		t.Errorf("description: got %q, want STORE", installment.Description)
	}
	if installment.Installment != "3/12" {
		t.Errorf("installment: got %q, want 3/12", installment.Installment)
	}
	if installment.Amount.String() != "1234.56" {
		t.Errorf("amount: got %s, want 1234.56", installment.Amount)
	}

	// Trailing reference numbers are stripped from descriptions
	plain := result.Transactions[1]
	if plain.Description != "MERCADOPAGO*RESTAURANT" {
		t.Errorf("description: got %q, want MERCADOPAGO*RESTAURANT", plain.Description)
	}
	if plain.Installment != "" {
		t.Errorf("installment: got %q, want empty", plain.Installment)
	}

	for i, tx := range result.Transactions {
		if tx.Kind != KindExpense {
			t.Errorf("transaction %d kind: got %s, want %s", i, tx.Kind, KindExpense)
		}
		if !tx.Date.Equal(wantDate) {
			t.Errorf("transaction %d date: got %v, want %v", i, tx.Date, wantDate)
		}
	}
}

func TestParseBBVATextExcludesPaymentsSection(t *testing.T) {
	result := parseBBVAText(bbvaFixtureText)

	for _, tx := range result.Transactions {
		if strings.Contains(tx.Description, "SU PAGO") {
			t.Errorf("payment line leaked into transactions: %q", tx.Description)
		}
	}
}

func TestParseBBVATextResynchronization(t *testing.T) {
	// A date line followed by another date line is noise: the scan must
	// drop it and still pick up the record that follows.
	text := `
Vencimiento: 06-Feb-26
Consumos realizados en el período
05-Feb-26
04-Feb-26
KIOSCO 24HS
100,00
03-Feb-26
FARMACIA CENTRAL
no es un monto
02-Feb-26
PANADERIA LA UNION
55,50
`
	result := parseBBVAText(text)

	if len(result.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(result.Transactions))
	}
	if result.Transactions[0].Description != "KIOSCO 24HS" {
		t.Errorf("first description: got %q", result.Transactions[0].Description)
	}
	if result.Transactions[1].Description != "PANADERIA LA UNION" {
		t.Errorf("second description: got %q", result.Transactions[1].Description)
	}
}

func TestParseBBVATextNoDueDate(t *testing.T) {
	text := `
Consumos realizados en el período
05-Feb-26
KIOSCO 24HS
100,00
`
	result := parseBBVAText(text)

	if len(result.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(result.Transactions))
	}
	if !result.StatementDate.Equal(today()) {
		t.Errorf("expected fallback to today, got %v", result.StatementDate)
	}
}

func TestParseBBVATextEmptyInput(t *testing.T) {
	result := parseBBVAText("")

	if len(result.Transactions) != 0 {
		t.Fatalf("got %d transactions, want 0", len(result.Transactions))
	}
}

func TestParseBBVATextIdempotent(t *testing.T) {
	first := parseBBVAText(bbvaFixtureText)
	second := parseBBVAText(bbvaFixtureText)

	if len(first.Transactions) != len(second.Transactions) {
		t.Fatalf("transaction counts differ: %d vs %d", len(first.Transactions), len(second.Transactions))
	}
	for i := range first.Transactions {
		a, b := first.Transactions[i], second.Transactions[i]
		if a.Description != b.Description || !a.Amount.Equal(b.Amount) || a.Installment != b.Installment {
			t.Errorf("transaction %d differs between runs: %+v vs %+v", i, a, b)
		}
	}
}

func TestCleanBBVADescription(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"STORE C.3/1212345678", "STORE"},
		{"MERCADOPAGO*RESTAURANT 987654321", "MERCADOPAGO*RESTAURANT"},
		{"KIOSCO 24HS", "KIOSCO 24HS"},
		{"MUEBLES  DEL   SUR", "MUEBLES DEL SUR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := cleanBBVADescription(tt.input); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}
