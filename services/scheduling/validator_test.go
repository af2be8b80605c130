package scheduling

import (
	"errors"
	"testing"

	"salonbook/pkg/fault"
)

func validationCode(t *testing.T, err error) string {
	t.Helper()
	var ve *fault.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return ve.Code
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		slot    string
		want    int
		wantErr bool
	}{
		{"10-11", 10, false},
		{"1-2", 1, false},
		{"13-14", 13, false},
		{"21-22", 21, false},
		{"10to11", 0, true},
		{"10-12", 0, true},
		{"12-13", 0, true}, // noon is not bookable
		{"0-1", 0, true},
		{"22-23", 0, true},
		{"", 0, true},
		{"a-b", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSlot(tt.slot)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSlot(%q): expected error, got %d", tt.slot, got)
				continue
			}
			if code := validationCode(t, err); code != fault.CodeInvalidSlotFormat {
				t.Errorf("ParseSlot(%q): code = %s, want %s", tt.slot, code, fault.CodeInvalidSlotFormat)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSlot(%q): unexpected error %v", tt.slot, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSlot(%q) = %d, want %d", tt.slot, got, tt.want)
		}
	}
}

func TestMaxDuration(t *testing.T) {
	tests := []struct {
		start int
		want  int
	}{
		{10, 2},
		{14, 8},
		{1, 11},
		{13, 9},
		{11, 1},
		{21, 1},
	}
	for _, tt := range tests {
		if got := MaxDuration(tt.start); got != tt.want {
			t.Errorf("MaxDuration(%d) = %d, want %d", tt.start, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		slot     string
		duration int
		nber     int
		wantCode string
	}{
		{"ok single hour", "9-10", 1, 1, ""},
		{"ok full morning", "1-2", 11, 3, ""},
		{"duration exceeds block", "10-11", 3, 1, fault.CodeDurationOutOfRange},
		{"duration below one", "10-11", 0, 0, fault.CodeDurationOutOfRange},
		{"services exceed duration", "1-2", 2, 5, fault.CodeServiceCountExceedsDuration},
		{"bad slot", "10to11", 1, 1, fault.CodeInvalidSlotFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.slot, tt.duration, tt.nber)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate: unexpected error %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate: expected error, got nil")
			}
			if code := validationCode(t, err); code != tt.wantCode {
				t.Fatalf("Validate: code = %s, want %s", code, tt.wantCode)
			}
		})
	}
}

func TestPrice(t *testing.T) {
	rate := 20.0
	tests := []struct {
		name     string
		duration int
		nber     int
		payRate  *float64
		want     float64
	}{
		{"default rate", 1, 1, nil, 15.75},
		{"explicit rate", 2, 3, &rate, 120},
		{"zero rate falls back", 1, 1, new(float64), 15.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Price(tt.duration, tt.nber, tt.payRate); got != tt.want {
				t.Fatalf("Price = %v, want %v", got, tt.want)
			}
		})
	}
}
