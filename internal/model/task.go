package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TaskID identifies a task on the server. The API returns it as a JSON
// number on older servers and as a UUID string on newer ones, so it is
// kept as an opaque string either way.
type TaskID string

// UnmarshalJSON accepts both numeric and string task ids.
func (id *TaskID) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("task id must be a number or string: %w", err)
	}
	*id = TaskID(n.String())
	return nil
}

// MarshalJSON emits numeric ids as numbers and everything else as strings,
// mirroring what the server sent.
func (id TaskID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id TaskID) String() string { return string(id) }

// Task is one photogrammetry processing job tracked by the server. The
// client never mutates these fields; it re-fetches after every state
// transition it requests.
type Task struct {
	ID              TaskID     `json:"id"`
	Name            string     `json:"name"`
	Status          Status     `json:"status"`
	CreatedAt       string     `json:"created_at"`
	ProcessingTime  int64      `json:"processing_time"`
	ImagesCount     int        `json:"images_count"`
	AvailableAssets []string   `json:"available_assets"`
	Options         OptionList `json:"options"`
}

// DisplayName returns the task name, or a stable fallback derived from the
// id when the server reports an empty name.
func (t *Task) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return "task_" + t.ID.String()
}

// HasAsset reports whether the named artifact is downloadable for this task.
func (t *Task) HasAsset(name string) bool {
	for _, a := range t.AvailableAssets {
		if a == name {
			return true
		}
	}
	return false
}
