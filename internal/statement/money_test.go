package statement

import (
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"12.494,44", "12494.44", false},
		{"$12.494,44", "12494.44", false},
		{"$-506.186,34", "-506186.34", false},
		{"-100,00", "-100", false},
		{"100,00", "100", false},
		{"1.234,56", "1234.56", false},
		{"0,00", "0", false},
		{" $ 7.000,00 ", "7000", false},
		{"1234", "1234", false},
		{"abc", "", true},
		{"", "", true},
		{"$", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}
