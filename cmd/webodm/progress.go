package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/odmkit/webodm-client/internal/workflow"
)

// newProgressBar returns a progress callback that drives a terminal bar.
// The orchestrator calls it from its own goroutine; writing to the bar is
// safe here because the command blocks until the operation returns.
func newProgressBar(out io.Writer, description string) workflow.ProgressFunc {
	var bar *progressbar.ProgressBar
	return func(completed, total int, message string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(out),
				progressbar.OptionSetDescription(description),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		bar.Describe(fmt.Sprintf("%s: %s", description, message))
		_ = bar.Set(completed)
	}
}

// newProgressLines returns a progress callback that prints one line per
// completed batch item.
func newProgressLines(out io.Writer) workflow.ProgressFunc {
	return func(completed, total int, message string) {
		fmt.Fprintf(out, "[%d/%d] %s\n", completed, total, message)
	}
}
