package library

import (
	"errors"
	"testing"
	"time"
)

var fixedNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		author  string
		year    string
		wantMsg string
		want    Draft
	}{
		{name: "valid", title: "  One Piece ", author: "Oda", year: "1997", want: Draft{Title: "One Piece", Author: "Oda", PublishYear: 1997}},
		{name: "current year", title: "New", author: "Someone", year: "2025", want: Draft{Title: "New", Author: "Someone", PublishYear: 2025}},
		{name: "year zero", title: "Old", author: "Anon", year: "0", want: Draft{Title: "Old", Author: "Anon", PublishYear: 0}},
		{name: "blank title", title: "   ", author: "Oda", year: "1997", wantMsg: MsgFieldsRequired},
		{name: "blank author", title: "One Piece", author: "", year: "1997", wantMsg: MsgFieldsRequired},
		{name: "blank year", title: "One Piece", author: "Oda", year: " ", wantMsg: MsgFieldsRequired},
		{name: "future year", title: "One Piece", author: "Oda", year: "2026", wantMsg: MsgInvalidYear},
		{name: "negative year", title: "One Piece", author: "Oda", year: "-5", wantMsg: MsgInvalidYear},
		{name: "not a number", title: "One Piece", author: "Oda", year: "abc", wantMsg: MsgInvalidYear},
		{name: "fractional", title: "One Piece", author: "Oda", year: "1997.5", wantMsg: MsgInvalidYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateInput(tt.title, tt.author, tt.year, fixedNow)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("ValidateInput returned error: %v", err)
				}
				if got != tt.want {
					t.Fatalf("ValidateInput = %#v, want %#v", got, tt.want)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateInput returned nil error, want %q", tt.wantMsg)
			}
			if !IsValidation(err) {
				t.Fatalf("error %T is not a ValidationError", err)
			}
			if err.Error() != tt.wantMsg {
				t.Fatalf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidate_TrimsBeforeRequiredCheck(t *testing.T) {
	err := Validate(Draft{Title: " \t", Author: "Oda", PublishYear: 1997}, fixedNow)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate error = %v, want ValidationError", err)
	}
	if verr.Message != MsgFieldsRequired || verr.Field != "Title" {
		t.Fatalf("Validate error = %#v, want Title/%q", verr, MsgFieldsRequired)
	}

	if err := Validate(Draft{Title: "a", Author: "b", PublishYear: 2025}, fixedNow); err != nil {
		t.Fatalf("Validate returned error for current year: %v", err)
	}
}

func TestIsValidation_IgnoresOtherErrors(t *testing.T) {
	if IsValidation(errors.New("boom")) {
		t.Fatalf("IsValidation(plain error) = true")
	}
	if IsValidation(&StatusError{Code: 500}) {
		t.Fatalf("IsValidation(StatusError) = true")
	}
}
