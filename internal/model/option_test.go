package model

import (
	"testing"
)

func TestOptionValuesEncode(t *testing.T) {
	values := OptionValues{
		{Name: "dsm", Value: true},
		{Name: "pc-quality", Value: "high"},
		{Name: "orthophoto-resolution", Value: 2.5},
	}

	encoded := values.Encode()

	expected := OptionList{
		{Name: "dsm", Value: "true"},
		{Name: "pc-quality", Value: "high"},
		{Name: "orthophoto-resolution", Value: "2.5"},
	}

	if len(encoded) != len(expected) {
		t.Fatalf("expected %d options, got %d", len(expected), len(encoded))
	}
	for i := range expected {
		if encoded[i] != expected[i] {
			t.Errorf("option %d = %+v, expected %+v", i, encoded[i], expected[i])
		}
	}
}

func TestOptionValuesEncodeDropsEmpty(t *testing.T) {
	values := OptionValues{
		{Name: "skipped-nil", Value: nil},
		{Name: "skipped-blank", Value: "   "},
		{Name: "kept", Value: false},
	}

	encoded := values.Encode()

	if len(encoded) != 1 {
		t.Fatalf("expected 1 option, got %d: %+v", len(encoded), encoded)
	}
	if encoded[0].Name != "kept" || encoded[0].Value != "false" {
		t.Errorf("unexpected option: %+v", encoded[0])
	}
}

func TestOptionValuesEncodeCoercion(t *testing.T) {
	tests := []struct {
		value    any
		expected string
	}{
		{true, "true"},
		{false, "false"},
		{3, "3"},
		{int64(9000), "9000"},
		{2.5, "2.5"},
		{2.0, "2"},
		{" trimmed ", "trimmed"},
	}

	for _, test := range tests {
		encoded := OptionValues{{Name: "x", Value: test.value}}.Encode()
		if len(encoded) != 1 {
			t.Fatalf("value %v: expected 1 option, got %d", test.value, len(encoded))
		}
		if encoded[0].Value != test.expected {
			t.Errorf("value %v encoded to %q, expected %q", test.value, encoded[0].Value, test.expected)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		raw      string
		expected OptionKind
	}{
		{"bool", KindBool},
		{"boolean", KindBool},
		{"int", KindInt},
		{"float", KindFloat},
		{"percent", KindPercent},
		{"enum", KindEnum},
		{"string", KindString},
		{"  Enum ", KindEnum},
		{"something-new", KindString},
	}

	for _, test := range tests {
		if got := ParseKind(test.raw); got != test.expected {
			t.Errorf("ParseKind(%q) = %v, expected %v", test.raw, got, test.expected)
		}
	}
}

func TestProcessingOptionValidateValue(t *testing.T) {
	tests := []struct {
		option  ProcessingOption
		value   string
		wantErr bool
	}{
		{ProcessingOption{Name: "dsm", Kind: KindBool}, "true", false},
		{ProcessingOption{Name: "dsm", Kind: KindBool}, "yes", true},
		{ProcessingOption{Name: "min-num-features", Kind: KindInt}, "8000", false},
		{ProcessingOption{Name: "min-num-features", Kind: KindInt}, "8.5", true},
		{ProcessingOption{Name: "orthophoto-resolution", Kind: KindFloat}, "2.5", false},
		{ProcessingOption{Name: "orthophoto-resolution", Kind: KindFloat}, "high", true},
		{ProcessingOption{Name: "crop", Kind: KindPercent}, "50", false},
		{ProcessingOption{Name: "crop", Kind: KindPercent}, "150", true},
		{ProcessingOption{Name: "pc-quality", Kind: KindEnum, Domain: []string{"low", "medium", "high"}}, "high", false},
		{ProcessingOption{Name: "pc-quality", Kind: KindEnum, Domain: []string{"low", "medium", "high"}}, "ultra", true},
		{ProcessingOption{Name: "sm-cluster", Kind: KindString}, "anything", false},
	}

	for _, test := range tests {
		err := test.option.ValidateValue(test.value)
		if test.wantErr && err == nil {
			t.Errorf("option %s: expected error for value %q, got nil", test.option.Name, test.value)
		}
		if !test.wantErr && err != nil {
			t.Errorf("option %s: unexpected error for value %q: %v", test.option.Name, test.value, err)
		}
	}
}
