package workflow

// Package workflow composes transport calls into the user-facing multi-step
// operations: task creation with sequential image upload and commit, and
// best-effort batch restart/cancel/remove/download with per-item outcome
// accounting. It manages progress propagation to the caller and never
// mutates server state directly, only requests transitions and re-fetches.
