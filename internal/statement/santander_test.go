package statement

import (
	"testing"
	"time"
)

func santanderFixtureRows() [][]string {
	return [][]string{
		{"Resumen de tarjeta de crédito"},
		{},
		{"Fecha de cierre", "Fecha de vencimiento"},
		{"29/01/2026", "06/02/2026"},
		{},
		{"Tarjeta de crédito Visa **** 1234"},
		{"Fecha", "Descripción", "Cuotas", "Comprobante", "Monto"},
		{"12/01/2026", "SUPERMERCADO DIA", "", "000123", "$12.494,44"},
		{"13/01/2026", "SU PAGO EN PESOS", "", "000124", "$-506.186,34"},
		{"14/01/2026", "MUEBLERIA LOPEZ", "16 de 18", "000125", "$7.000,00"},
		{"15/01/2026", "", "", "000126", "$1,00"},
		{"16/01/2026", "CARGO ILEGIBLE", "", "000127", "sin monto"},
		{},
		{"Total de consumos", "", "", "", "$13.494,44"},
		{"Legales del resumen"},
	}
}

func TestParseSantanderRows(t *testing.T) {
	result := parseSantanderRows(santanderFixtureRows())

	wantDate := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !result.StatementDate.Equal(wantDate) {
		t.Fatalf("statement date: got %v, want %v", result.StatementDate, wantDate)
	}

	if len(result.Transactions) != 3 {
		t.Fatalf("got %d transactions, want 3", len(result.Transactions))
	}

	first := result.Transactions[0]
	if first.Description != "SUPERMERCADO DIA" {
		t.Errorf("description: got %q", first.Description)
	}
	if first.Amount.String() != "12494.44" {
		t.Errorf("amount: got %s, want 12494.44", first.Amount)
	}
	if first.Kind != KindExpense {
		t.Errorf("kind: got %s, want %s", first.Kind, KindExpense)
	}
	if first.Installment != "" {
		t.Errorf("installment: got %q, want empty", first.Installment)
	}

	// Negative amounts are payments/credits: income with the absolute value
	payment := result.Transactions[1]
	if payment.Kind != KindIncome {
		t.Errorf("payment kind: got %s, want %s", payment.Kind, KindIncome)
	}
	if payment.Amount.String() != "506186.34" {
		t.Errorf("payment amount: got %s, want 506186.34", payment.Amount)
	}

	installment := result.Transactions[2]
	if installment.Installment != "16/18" {
		t.Errorf("installment: got %q, want 16/18", installment.Installment)
	}

	// Every transaction carries the statement date, not its row date
	for i, tx := range result.Transactions {
		if !tx.Date.Equal(wantDate) {
			t.Errorf("transaction %d date: got %v, want %v", i, tx.Date, wantDate)
		}
	}
}

func TestParseSantanderRowsNoClosingDate(t *testing.T) {
	rows := [][]string{
		{"Tarjeta de crédito Visa"},
		{"Fecha", "Descripción", "Cuotas", "Comprobante", "Monto"},
		{"12/01/2026", "ALMACEN", "", "1", "$100,00"},
	}

	result := parseSantanderRows(rows)

	if len(result.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(result.Transactions))
	}
	if !result.StatementDate.Equal(today()) {
		t.Errorf("expected fallback to today, got %v", result.StatementDate)
	}
}

func TestParseSantanderRowsNoBlock(t *testing.T) {
	rows := [][]string{
		{"Fecha de cierre"},
		{"29/01/2026"},
		{"Sin movimientos este mes"},
	}

	result := parseSantanderRows(rows)

	if len(result.Transactions) != 0 {
		t.Fatalf("got %d transactions, want 0", len(result.Transactions))
	}
	wantDate := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !result.StatementDate.Equal(wantDate) {
		t.Errorf("statement date: got %v, want %v", result.StatementDate, wantDate)
	}
}

func TestParseSantanderRowsBlockWithoutEnd(t *testing.T) {
	rows := [][]string{
		{"Tarjeta de crédito Visa"},
		{"Fecha", "Descripción", "Cuotas", "Comprobante", "Monto"},
		{"12/01/2026", "ALMACEN", "", "1", "$100,00"},
		{"13/01/2026", "FERRETERIA", "2 de 6", "2", "$200,00"},
	}

	result := parseSantanderRows(rows)

	if len(result.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(result.Transactions))
	}
	if result.Transactions[1].Installment != "2/6" {
		t.Errorf("installment: got %q, want 2/6", result.Transactions[1].Installment)
	}
}

func TestExtractInstallment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"16 de 18", "16/18"},
		{"1 de 3", "1/3"},
		{"3 DE 12", "3/12"},
		{"contado", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := extractInstallment(tt.input); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}
