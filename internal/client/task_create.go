package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/odmkit/webodm-client/internal/model"
	"github.com/odmkit/webodm-client/internal/platform"
)

// NewTaskRequest is the metadata sent when creating a shell task, before
// any image bytes are uploaded.
type NewTaskRequest struct {
	Name               string           `json:"name,omitempty"`
	Options            model.OptionList `json:"options"`
	ProcessingNode     int              `json:"processing_node,omitempty"`
	AutoProcessingNode bool             `json:"auto_processing_node"`
	Partial            bool             `json:"partial"`
	AlignTo            string           `json:"align_to"`
}

// NewShellTaskRequest builds a task-creation request with the defaults the
// chunked upload protocol needs: partial mode on, automatic node selection,
// automatic alignment.
func NewShellTaskRequest(name string, options model.OptionList) NewTaskRequest {
	if options == nil {
		options = model.OptionList{}
	}
	return NewTaskRequest{
		Name:               name,
		Options:            options,
		AutoProcessingNode: true,
		Partial:            true,
		AlignTo:            "auto",
	}
}

// CreateTask registers a shell task and returns its server-assigned id.
// Images are uploaded separately with UploadImage and the task started
// with CommitTask.
func (c *Client) CreateTask(ctx context.Context, projectID int, taskReq NewTaskRequest) (model.TaskID, error) {
	if taskReq.AlignTo == "" {
		taskReq.AlignTo = "auto"
	}
	payload, err := json.Marshal(taskReq)
	if err != nil {
		return "", fmt.Errorf("create task: encode request: %w", err)
	}

	path := fmt.Sprintf("/api/projects/%d/tasks/", projectID)
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("create task: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", &StatusError{Op: "create task", Code: resp.StatusCode}
	}

	var created struct {
		ID model.TaskID `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("create task: decode response: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("create task: server returned no task id")
	}
	c.logger.Debug("shell task created", "project", projectID, "task", created.ID)
	return created.ID, nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// UploadImage streams one image file to a shell task as multipart form
// data. The MIME type is guessed from the extension, falling back to
// application/octet-stream.
func (c *Client) UploadImage(ctx context.Context, projectID int, taskID model.TaskID, imagePath string) error {
	file, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`,
			quoteEscaper.Replace(filepath.Base(imagePath))))
		header.Set("Content-Type", platform.DetectContentType(imagePath))

		part, err := mw.CreatePart(header)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	path := fmt.Sprintf("/api/projects/%d/tasks/%s/upload/", projectID, taskID)
	req, err := c.newRequest(ctx, http.MethodPost, path, pr)
	if err != nil {
		pr.CloseWithError(err)
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload image %s: %w", filepath.Base(imagePath), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &StatusError{Op: "upload image " + filepath.Base(imagePath), Code: resp.StatusCode}
	}
	return nil
}

// CommitTask finalizes an uploaded image set and starts remote processing.
func (c *Client) CommitTask(ctx context.Context, projectID int, taskID model.TaskID) (*model.Task, error) {
	path := fmt.Sprintf("/api/projects/%d/tasks/%s/commit/", projectID, taskID)
	req, err := c.newRequest(ctx, http.MethodPost, path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("commit task: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Op: "commit task", Code: resp.StatusCode}
	}

	var task model.Task
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, fmt.Errorf("commit task: decode response: %w", err)
	}
	c.logger.Info("task committed", "project", projectID, "task", taskID)
	return &task, nil
}

// RestartTask requeues a task, optionally with new options or an explicit
// processing node.
func (c *Client) RestartTask(ctx context.Context, projectID int, taskID model.TaskID, options model.OptionList, processingNode int) error {
	form := url.Values{}
	if len(options) > 0 {
		encoded, err := json.Marshal(options)
		if err != nil {
			return fmt.Errorf("restart task: encode options: %w", err)
		}
		form.Set("options", string(encoded))
	}
	if processingNode > 0 {
		form.Set("processing_node", strconv.Itoa(processingNode))
		form.Set("auto_processing_node", "false")
	} else {
		form.Set("auto_processing_node", "true")
	}

	path := fmt.Sprintf("/api/projects/%d/tasks/%s/restart/", projectID, taskID)
	return c.postForm(ctx, "restart task", path, form)
}

// CancelTask requests cancellation of a queued or running task.
func (c *Client) CancelTask(ctx context.Context, projectID int, taskID model.TaskID) error {
	path := fmt.Sprintf("/api/projects/%d/tasks/%s/cancel/", projectID, taskID)
	return c.postForm(ctx, "cancel task", path, nil)
}

// RemoveTask deletes a task and its assets from the server.
func (c *Client) RemoveTask(ctx context.Context, projectID int, taskID model.TaskID) error {
	path := fmt.Sprintf("/api/projects/%d/tasks/%s/remove/", projectID, taskID)
	return c.postForm(ctx, "remove task", path, nil)
}

func (c *Client) postForm(ctx context.Context, op, path string, form url.Values) error {
	var body io.Reader
	if len(form) > 0 {
		body = strings.NewReader(form.Encode())
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: op, Code: resp.StatusCode}
	}
	return nil
}
