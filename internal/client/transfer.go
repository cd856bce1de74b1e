package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/odmkit/webodm-client/internal/model"
	"github.com/odmkit/webodm-client/internal/platform"
)

// downloadChunkSize is the copy buffer size for streamed asset downloads.
const downloadChunkSize = 32 * 1024

// DownloadAsset streams a result artifact to outputPath, creating parent
// directories as needed. A partially written file is removed on failure.
func (c *Client) DownloadAsset(ctx context.Context, projectID int, taskID model.TaskID, asset, outputPath string) error {
	path := fmt.Sprintf("/api/projects/%d/tasks/%s/download/%s", projectID, taskID, asset)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", asset, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: "download " + asset, Code: resp.StatusCode}
	}

	if err := platform.EnsureDir(filepath.Dir(outputPath)); err != nil {
		return fmt.Errorf("download %s: %w", asset, err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("download %s: %w", asset, err)
	}

	buf := make([]byte, downloadChunkSize)
	if _, err := io.CopyBuffer(out, resp.Body, buf); err != nil {
		out.Close()
		os.Remove(outputPath)
		return fmt.Errorf("download %s: %w", asset, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("download %s: %w", asset, err)
	}
	c.logger.Debug("asset downloaded", "task", taskID, "asset", asset, "path", outputPath)
	return nil
}

// processingOptionWire is the raw schema entry the processing node reports.
// Value and domain arrive with mixed types depending on the option kind.
type processingOptionWire struct {
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Value  any             `json:"value"`
	Domain json.RawMessage `json:"domain"`
	Help   string          `json:"help"`
}

// ProcessingOptions fetches the option schema of the processing nodes and
// normalizes each entry into a typed ProcessingOption.
func (c *Client) ProcessingOptions(ctx context.Context) ([]model.ProcessingOption, error) {
	var raw []processingOptionWire
	if err := c.getJSON(ctx, "get processing options", "/api/processingnodes/options/", &raw); err != nil {
		return nil, err
	}

	options := make([]model.ProcessingOption, 0, len(raw))
	for _, w := range raw {
		opt := model.ProcessingOption{
			Name: w.Name,
			Kind: model.ParseKind(w.Type),
			Help: w.Help,
		}
		if s, ok := model.FormatValue(w.Value); ok {
			opt.Default = s
		}
		if len(w.Domain) > 0 {
			// Enum domains are JSON arrays; other kinds carry a free-text
			// range description that has no machine use here.
			var values []string
			if err := json.Unmarshal(w.Domain, &values); err == nil {
				opt.Domain = values
			}
		}
		options = append(options, opt)
	}
	return options, nil
}

// Presets returns the server-stored option bundles.
func (c *Client) Presets(ctx context.Context) ([]model.Preset, error) {
	return getList[model.Preset](ctx, c, "list presets", "/api/presets/")
}
