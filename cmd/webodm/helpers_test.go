package main

import (
	"strings"
	"testing"

	"github.com/odmkit/webodm-client/internal/config"
)

func TestParseOptionFlags(t *testing.T) {
	cfg := config.Default()

	values, err := parseOptionFlags([]string{"dsm=true", "pc-quality=high"}, &cfg)
	if err != nil {
		t.Fatalf("parseOptionFlags returned error: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}
	if values[0].Name != "dsm" || values[0].Value != "true" {
		t.Errorf("unexpected first value: %+v", values[0])
	}

	if _, err := parseOptionFlags([]string{"missing-equals"}, &cfg); err == nil {
		t.Error("expected error for malformed option flag")
	}
	if _, err := parseOptionFlags([]string{"=value"}, &cfg); err == nil {
		t.Error("expected error for empty option name")
	}
}

func TestParseOptionFlagsFallsBackToConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Processing.DefaultOptions = map[string]string{
		"pc-quality": "high",
		"dsm":        "true",
	}

	values, err := parseOptionFlags(nil, &cfg)
	if err != nil {
		t.Fatalf("parseOptionFlags returned error: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 defaults, got %d", len(values))
	}
	// Defaults come out in sorted name order for determinism.
	if values[0].Name != "dsm" || values[1].Name != "pc-quality" {
		t.Errorf("unexpected default order: %+v", values)
	}
}

func TestFormatProcessingTime(t *testing.T) {
	tests := []struct {
		millis   int64
		expected string
	}{
		{0, "-"},
		{-5, "-"},
		{1000, "1s"},
		{90000, "1m30s"},
		{3600000, "1h0m0s"},
	}

	for _, test := range tests {
		if got := formatProcessingTime(test.millis); got != test.expected {
			t.Errorf("formatProcessingTime(%d) = %q, expected %q", test.millis, got, test.expected)
		}
	}
}

func TestTaskIDArgs(t *testing.T) {
	ids := taskIDArgs([]string{"7", "abc-def"})
	if len(ids) != 2 || ids[0] != "7" || ids[1] != "abc-def" {
		t.Errorf("unexpected ids: %v", ids)
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"ID", "Name"},
		[][]string{{"1", "Survey"}, {"2"}},
		[]columnAlignment{alignRight, alignLeft},
	)
	if !strings.Contains(out, "Survey") {
		t.Errorf("rendered table missing row content:\n%s", out)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Error("empty header set should render nothing")
	}
}
