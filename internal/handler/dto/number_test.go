package dto

import (
	"encoding/json"
	"testing"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"integer", `2`, 2, false},
		{"float", `1500.5`, 1500.5, false},
		{"zero", `0`, 0, false},
		{"negative", `-1`, -1, false},
		{"integer string", `"2"`, 2, false},
		{"float string", `"1500.50"`, 1500.5, false},
		{"string with spaces", ` "3" `, 3, false},
		{"empty string", `""`, 0, true},
		{"non-numeric string", `"two"`, 0, true},
		{"boolean", `true`, 0, true},
		{"object", `{}`, 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var n Number
			err := json.Unmarshal([]byte(tt.input), &n)

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for input %s", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.Float64() != tt.want {
				t.Errorf("Float64() = %v, want %v", n.Float64(), tt.want)
			}
		})
	}
}

func TestNumber_Int_Truncates(t *testing.T) {
	t.Parallel()

	var n Number
	if err := json.Unmarshal([]byte(`2.9`), &n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Int() != 2 {
		t.Errorf("Int() = %d, want 2", n.Int())
	}
}

// A JSON null leaves a *Number field nil instead of invoking the
// coercion, so "absent" stays distinguishable from "zero".
func TestNumber_NullLeavesPointerNil(t *testing.T) {
	t.Parallel()

	var payload struct {
		Quantity *Number `json:"quantity"`
	}
	if err := json.Unmarshal([]byte(`{"quantity": null}`), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Quantity != nil {
		t.Errorf("expected nil pointer for null, got %v", *payload.Quantity)
	}
}

func TestLoginRequest_ResolveIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  LoginRequest
		want string
	}{
		{"identifier wins", LoginRequest{Identifier: "alice", Username: "bob", Email: "c@example.com"}, "alice"},
		{"username next", LoginRequest{Username: "bob", Email: "c@example.com"}, "bob"},
		{"email last", LoginRequest{Email: "c@example.com"}, "c@example.com"},
		{"trims whitespace", LoginRequest{Identifier: "  alice  "}, "alice"},
		{"blank identifier falls through", LoginRequest{Identifier: "   ", Username: "bob"}, "bob"},
		{"all empty", LoginRequest{}, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.req.ResolveIdentifier(); got != tt.want {
				t.Errorf("ResolveIdentifier() = %q, want %q", got, tt.want)
			}
		})
	}
}
