package model

import (
	"encoding/json"
	"testing"
)

func TestTaskIDUnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw      string
		expected TaskID
	}{
		{`42`, "42"},
		{`"42"`, "42"},
		{`"0f6f7312-6f79-4a04-b2b8-7e0123456789"`, "0f6f7312-6f79-4a04-b2b8-7e0123456789"},
		{`null`, ""},
	}

	for _, test := range tests {
		var id TaskID
		if err := json.Unmarshal([]byte(test.raw), &id); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", test.raw, err)
		}
		if id != test.expected {
			t.Errorf("Unmarshal(%s) = %q, expected %q", test.raw, id, test.expected)
		}
	}

	var id TaskID
	if err := json.Unmarshal([]byte(`{"nested":true}`), &id); err == nil {
		t.Error("expected error for object-shaped task id, got nil")
	}
}

func TestTaskIDMarshalJSON(t *testing.T) {
	tests := []struct {
		id       TaskID
		expected string
	}{
		{"42", `42`},
		{"abc-def", `"abc-def"`},
	}

	for _, test := range tests {
		data, err := json.Marshal(test.id)
		if err != nil {
			t.Fatalf("Marshal(%q) returned error: %v", test.id, err)
		}
		if string(data) != test.expected {
			t.Errorf("Marshal(%q) = %s, expected %s", test.id, data, test.expected)
		}
	}
}

func TestTaskUnmarshal(t *testing.T) {
	raw := `{
		"id": 7,
		"name": "Field Survey",
		"status": 40,
		"created_at": "2026-03-01T10:00:00Z",
		"processing_time": 125000,
		"available_assets": ["orthophoto.tif", "dsm.tif"],
		"options": [{"name": "dsm", "value": "true"}]
	}`

	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if task.ID != "7" {
		t.Errorf("expected id '7', got %q", task.ID)
	}
	if task.Status != StatusCompleted {
		t.Errorf("expected status completed, got %s", task.Status)
	}
	if !task.HasAsset("dsm.tif") {
		t.Error("expected dsm.tif to be available")
	}
	if task.HasAsset("report.pdf") {
		t.Error("report.pdf should not be available")
	}
	if len(task.Options) != 1 || task.Options[0].Name != "dsm" {
		t.Errorf("unexpected options: %+v", task.Options)
	}
}

func TestTaskDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		id       TaskID
		expected string
	}{
		{"Survey A", "3", "Survey A"},
		{"", "3", "task_3"},
		{"", "abc", "task_abc"},
	}

	for _, test := range tests {
		task := &Task{ID: test.id, Name: test.name}
		if got := task.DisplayName(); got != test.expected {
			t.Errorf("DisplayName() with name=%q id=%q = %q, expected %q", test.name, test.id, got, test.expected)
		}
	}
}
