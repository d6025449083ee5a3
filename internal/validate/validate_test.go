package validate

import (
	"errors"
	"testing"

	"github.com/Camblonie/recruiting-tracker/internal/model"
)

func TestCandidate(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		phone   string
		wantErr error
	}{
		{"both empty ok", "", "", nil},
		{"valid email", "jane@example.com", "", nil},
		{"email missing domain", "jane@", "", ErrInvalidEmail},
		{"email missing tld", "jane@host", "", ErrInvalidEmail},
		{"email missing local part", "@example.com", "", ErrInvalidEmail},
		{"email with space", "ja ne@example.com", "", ErrInvalidEmail},
		{"valid bare phone", "", "5551234567", nil},
		{"valid punctuated phone", "", "(555) 123-4567", nil},
		{"phone too short", "", "123456", ErrInvalidPhoneNumber},
		{"phone too long", "", "15551234567", ErrInvalidPhoneNumber},
		{"phone with letters only", "", "call me", ErrInvalidPhoneNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &model.Candidate{Email: tt.email, Phone: tt.phone}
			err := Candidate(c)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Candidate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"(555) 123-4567", "5551234567"},
		{"555.123.4567 ext 9", "55512345679"},
		{"", ""},
		{"abc", ""},
	}
	for _, tt := range tests {
		if got := DigitsOnly(tt.in); got != tt.want {
			t.Errorf("DigitsOnly(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsDuplicate(t *testing.T) {
	existing := []*model.Candidate{
		{Name: "Alice Smith", Phone: "5551234567"},
		{Name: "Bob Jones", Phone: ""},
	}

	tests := []struct {
		name  string
		cname string
		phone string
		want  bool
	}{
		{"exact phone match", "Someone Else", "5551234567", true},
		{"case-insensitive name match", "ALICE SMITH", "9998887777", true},
		{"no match", "Carol White", "5550000000", false},
		{"empty name and phone never match", "", "", false},
		{"empty phone does not match empty stored phone", "Carol White", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicate(tt.cname, tt.phone, existing); got != tt.want {
				t.Errorf("IsDuplicate(%q, %q) = %v, want %v", tt.cname, tt.phone, got, tt.want)
			}
		})
	}
}

func TestCheckForDuplicates(t *testing.T) {
	existing := []*model.Candidate{{Name: "Alice Smith", Phone: "5551234567"}}

	dup := &model.Candidate{Name: "alice smith"}
	if err := CheckForDuplicates(dup, existing); !errors.Is(err, ErrDuplicateCandidate) {
		t.Errorf("CheckForDuplicates(dup) = %v, want ErrDuplicateCandidate", err)
	}

	fresh := &model.Candidate{Name: "Carol White", Phone: "5550000000"}
	if err := CheckForDuplicates(fresh, existing); err != nil {
		t.Errorf("CheckForDuplicates(fresh) = %v, want nil", err)
	}
}
