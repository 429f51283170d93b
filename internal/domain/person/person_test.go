package person

import (
	"errors"
	"strings"
	"testing"

	"github.com/jsamuelsen11/go-failure-demos/internal/domain"
)

// requireValidationField is a test helper that asserts err wraps domain.ErrValidation
// and the resulting ValidationError contains the expected field key.
func requireValidationField(t *testing.T, err error, field string) {
	t.Helper()

	if err == nil {
		t.Fatal("err = nil, want error")
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("errors.Is(err, ErrValidation) = false, got %v", err)
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("errors.As(err, *ValidationError) = false, got %T", err)
	}
	if _, ok := verr.Fields[field]; !ok {
		t.Errorf("ValidationError.Fields missing key %q, got %v", field, verr.Fields)
	}
}

func TestSetAge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		age     int
		wantAge int
		wantErr bool
	}{
		{name: "zero is accepted", age: 0, wantAge: 0},
		{name: "positive is accepted", age: 42, wantAge: 42},
		{name: "negative is rejected", age: -5, wantAge: 30, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := &Person{Name: "Ada", Age: 30}
			err := p.SetAge(tt.age)

			if tt.wantErr {
				requireValidationField(t, err, "age")
			} else if err != nil {
				t.Fatalf("SetAge(%d) error = %v, want nil", tt.age, err)
			}
			if p.Age != tt.wantAge {
				t.Errorf("Age = %d, want %d", p.Age, tt.wantAge)
			}
		})
	}
}

func TestSetAge_MessageNamesValue(t *testing.T) {
	t.Parallel()

	p := &Person{Name: "Ada"}
	err := p.SetAge(-5)
	if err == nil {
		t.Fatal("SetAge(-5) = nil, want error")
	}
	if !strings.Contains(err.Error(), MsgNegativeAge) {
		t.Errorf("error = %q, want it to contain %q", err.Error(), MsgNegativeAge)
	}
	if !strings.Contains(err.Error(), "-5") {
		t.Errorf("error = %q, want it to contain the rejected value", err.Error())
	}
}
