package domain

import (
	"errors"
	"strings"
	"testing"
)

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }
func strp(v string) *string  { return &v }

func validInput() ProductInput {
	return ProductInput{
		Name:        "Widget",
		Description: "A widget",
		Price:       f64(1.5),
		Category:    "tools",
		SKU:         "W-1",
		Stock:       intp(3),
	}
}

func TestProductInput_Validate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*ProductInput)
		wantMsg string
	}{
		{"valid", func(*ProductInput) {}, ""},
		{"zero price and stock", func(in *ProductInput) { in.Price = f64(0); in.Stock = intp(0) }, ""},
		{"missing name", func(in *ProductInput) { in.Name = "" }, "name is required"},
		{"name too long", func(in *ProductInput) { in.Name = strings.Repeat("n", 101) }, "name cannot exceed 100 characters"},
		{"missing description", func(in *ProductInput) { in.Description = "" }, "description is required"},
		{"missing price", func(in *ProductInput) { in.Price = nil }, "price is required"},
		{"negative price", func(in *ProductInput) { in.Price = f64(-0.01) }, "price cannot be less than 0"},
		{"negative stock", func(in *ProductInput) { in.Stock = intp(-1) }, "stock cannot be less than 0"},
		{"missing sku", func(in *ProductInput) { in.SKU = "" }, "sku is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			err := in.Validate()
			if tc.wantMsg == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("expected %q in %q", tc.wantMsg, err.Error())
			}
		})
	}
}

func TestProductInput_ValidateCollectsAllFields(t *testing.T) {
	err := (&ProductInput{}).Validate()

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Fields) != 6 {
		t.Fatalf("expected 6 field errors, got %d: %v", len(ve.Fields), ve.Fields)
	}
}

func TestProductInput_Normalize(t *testing.T) {
	in := validInput()
	in.Name = "  Widget \t"
	in.Normalize()
	if in.Name != "Widget" {
		t.Fatalf("expected trimmed name, got %q", in.Name)
	}
}

func TestProductPatch_Validate(t *testing.T) {
	cases := []struct {
		name    string
		patch   ProductPatch
		wantErr string
	}{
		{"single field", ProductPatch{Stock: intp(0)}, ""},
		{"empty", ProductPatch{}, "at least one field must be provided"},
		{"blank name", ProductPatch{Name: strp("")}, "name cannot be empty"},
		{"long description", ProductPatch{Description: strp(strings.Repeat("d", 1001))}, "description cannot exceed 1000 characters"},
		{"negative price", ProductPatch{Price: f64(-2)}, "price cannot be less than 0"},
		{"blank sku", ProductPatch{SKU: strp("")}, "sku cannot be empty"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.patch.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected validation error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestProductPatch_NormalizeTrimsName(t *testing.T) {
	p := ProductPatch{Name: strp("   ")}
	p.Normalize()
	if err := p.Validate(); err == nil {
		t.Fatal("expected whitespace-only name to be rejected after normalization")
	}
}

func TestValidRole(t *testing.T) {
	for role, want := range map[string]bool{"admin": true, "user": true, "root": false, "": false} {
		if got := ValidRole(role); got != want {
			t.Errorf("ValidRole(%q) = %v, want %v", role, got, want)
		}
	}
}
