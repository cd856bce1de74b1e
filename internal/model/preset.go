package model

// Preset is a named, server-stored bundle of processing options. Selecting
// a preset yields the option list sent on task creation or restart.
type Preset struct {
	ID      int        `json:"id"`
	Name    string     `json:"name"`
	Options OptionList `json:"options"`
	System  bool       `json:"system"`
}
