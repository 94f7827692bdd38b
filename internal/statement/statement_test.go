package statement

import (
	"errors"
	"testing"
)

func TestParseBankName(t *testing.T) {
	tests := []struct {
		input    string
		expected Bank
		wantErr  bool
	}{
		{"SANTANDER", BankSantander, false},
		{"santander", BankSantander, false},
		{"BBVA", BankBBVA, false},
		{" bbva ", BankBBVA, false},
		{"GALICIA", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBankName(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedBank) {
					t.Errorf("expected ErrUnsupportedBank, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestParseUnsupportedBank(t *testing.T) {
	_, err := Parse([]byte("irrelevant"), Bank("GALICIA"))
	if !errors.Is(err, ErrUnsupportedBank) {
		t.Errorf("expected ErrUnsupportedBank, got %v", err)
	}
}

func TestParseSantanderRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("this is not a workbook"), BankSantander)
	if err == nil {
		t.Error("expected error for non-xlsx input")
	}
}

func TestParseBBVARejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("this is not a pdf"), BankBBVA)
	if err == nil {
		t.Error("expected error for non-pdf input")
	}
}
