package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAdjustedAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *decimal.Decimal
		wantErr bool
	}{
		{name: "absent", raw: ""},
		{name: "null", raw: "null"},
		{name: "number", raw: "1250.50", want: ptr(decimal.RequireFromString("1250.50"))},
		{name: "numeric string", raw: `"99.90"`, want: ptr(decimal.RequireFromString("99.90"))},
		{name: "negative is parsed", raw: "-5", want: ptr(decimal.RequireFromString("-5"))},
		{name: "word", raw: `"abc"`, wantErr: true},
		{name: "boolean", raw: "true", wantErr: true},
		{name: "object", raw: `{"x":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAdjustedAmount(json.RawMessage(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %s", got)
				}
				return
			}
			if got == nil || !got.Equal(*tt.want) {
				t.Fatalf("expected %s, got %v", tt.want, got)
			}
		})
	}
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
