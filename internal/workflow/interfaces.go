package workflow

import (
	"context"

	"github.com/odmkit/webodm-client/internal/client"
	"github.com/odmkit/webodm-client/internal/model"
)

// API is the slice of the transport client the orchestrator depends on.
type API interface {
	GetTask(ctx context.Context, projectID int, taskID model.TaskID) (*model.Task, error)
	CreateTask(ctx context.Context, projectID int, taskReq client.NewTaskRequest) (model.TaskID, error)
	UploadImage(ctx context.Context, projectID int, taskID model.TaskID, imagePath string) error
	CommitTask(ctx context.Context, projectID int, taskID model.TaskID) (*model.Task, error)
	RestartTask(ctx context.Context, projectID int, taskID model.TaskID, options model.OptionList, processingNode int) error
	CancelTask(ctx context.Context, projectID int, taskID model.TaskID) error
	RemoveTask(ctx context.Context, projectID int, taskID model.TaskID) error
	DownloadAsset(ctx context.Context, projectID int, taskID model.TaskID, asset, outputPath string) error
}

// ProgressFunc receives progress updates during an operation. It is called
// synchronously from the goroutine running the operation, zero or more
// times, with a monotonically non-decreasing completed count; the final
// call of a successful operation has completed == total. Callers running a
// UI are responsible for marshaling onto their own thread.
type ProgressFunc func(completed, total int, message string)
