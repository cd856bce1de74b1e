package model

// Package model defines domain data structures shared across the app:
// projects, processing tasks, status enums, and the processing-option
// schema. Values are normalized once when they cross the API boundary and
// treated as read-only snapshots of server state afterwards.
