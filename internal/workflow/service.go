package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/odmkit/webodm-client/internal/client"
	"github.com/odmkit/webodm-client/internal/model"
	"github.com/odmkit/webodm-client/internal/platform"
)

// ErrNoImages is returned when a task-creation request contains no existing
// image files.
var ErrNoImages = errors.New("no valid image files")

// ErrNoCancelableTasks is returned when every task selected for a cancel
// batch is already completed.
var ErrNoCancelableTasks = errors.New("no cancelable tasks: all selected tasks are completed")

// Service orchestrates multi-step task operations on top of the transport.
type Service struct {
	api    API
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used by the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a workflow service over the given transport.
func NewService(api API, opts ...Option) *Service {
	s := &Service{api: api, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// emit invokes the progress callback, if any. A panicking callback is
// logged and swallowed so it cannot abort the underlying operation.
func (s *Service) emit(progress ProgressFunc, completed, total int, message string) {
	if progress == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("progress callback panicked", "recovered", r)
		}
	}()
	progress(completed, total, message)
}

// CreateTaskWithImages creates a task from a set of local images: it
// registers a shell task, uploads each existing image sequentially in
// input order, and commits. A failed upload aborts the remaining uploads
// and the commit; the shell task then remains uncommitted on the server
// (the error says so).
func (s *Service) CreateTaskWithImages(ctx context.Context, projectID int, imagePaths []string, options model.OptionValues, name string, progress ProgressFunc) (*model.Task, error) {
	images := platform.FilterExisting(imagePaths)
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	total := len(images)

	s.emit(progress, 0, total, "preparing")

	taskID, err := s.api.CreateTask(ctx, projectID, client.NewShellTaskRequest(name, options.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create shell task: %w", err)
	}
	s.logger.Info("uploading images", "project", projectID, "task", taskID, "count", total)

	for i, imagePath := range images {
		if err := s.api.UploadImage(ctx, projectID, taskID, imagePath); err != nil {
			return nil, fmt.Errorf("upload %d of %d: %w (shell task %s remains uncommitted on the server)",
				i+1, total, err, taskID)
		}
		s.emit(progress, i+1, total, filepath.Base(imagePath))
	}

	s.emit(progress, total, total, "submitting")

	task, err := s.api.CommitTask(ctx, projectID, taskID)
	if err != nil {
		return nil, fmt.Errorf("commit task %s: %w", taskID, err)
	}
	return task, nil
}

// RestartTasks requeues each task independently, best-effort.
func (s *Service) RestartTasks(ctx context.Context, projectID int, taskIDs []model.TaskID, options model.OptionValues, progress ProgressFunc) *BatchReport {
	encoded := options.Encode()
	return s.runBatch(ctx, projectID, taskIDs, progress, "restart", func(ctx context.Context, task *model.Task) error {
		return s.api.RestartTask(ctx, projectID, task.ID, encoded, 0)
	})
}

// RemoveTasks deletes each task independently, best-effort.
func (s *Service) RemoveTasks(ctx context.Context, projectID int, taskIDs []model.TaskID, progress ProgressFunc) *BatchReport {
	return s.runBatch(ctx, projectID, taskIDs, progress, "remove", func(ctx context.Context, task *model.Task) error {
		return s.api.RemoveTask(ctx, projectID, task.ID)
	})
}

// PartitionCancelable splits tasks into those a cancel request makes sense
// for and those already completed.
func PartitionCancelable(tasks []*model.Task) (cancelable, completed []*model.Task) {
	for _, task := range tasks {
		if task.Status.IsCancelable() {
			cancelable = append(cancelable, task)
		} else {
			completed = append(completed, task)
		}
	}
	return cancelable, completed
}

// CancelTasks cancels the cancelable subset of the selected tasks.
// Completed tasks are skipped and listed in the report's Skipped field so
// the caller can warn about them. When every selected task is completed
// the batch is rejected with ErrNoCancelableTasks and no cancel request is
// issued. Tasks whose info cannot be fetched count as failures.
func (s *Service) CancelTasks(ctx context.Context, projectID int, taskIDs []model.TaskID, progress ProgressFunc) (*BatchReport, error) {
	report := newBatchReport()

	var fetched []*model.Task
	var fetchFailures []ItemOutcome
	for _, id := range taskIDs {
		task, err := s.api.GetTask(ctx, projectID, id)
		if err != nil {
			fetchFailures = append(fetchFailures, ItemOutcome{TaskID: id, Err: fmt.Errorf("fetch task info: %w", err)})
			continue
		}
		fetched = append(fetched, task)
	}

	cancelable, skipped := PartitionCancelable(fetched)
	if len(cancelable) == 0 && len(skipped) > 0 {
		return nil, ErrNoCancelableTasks
	}

	for _, task := range skipped {
		report.Skipped = append(report.Skipped, *task)
	}

	total := len(cancelable) + len(fetchFailures)
	completed := 0
	for _, failure := range fetchFailures {
		report.add(failure)
		completed++
		s.emit(progress, completed, total, fmt.Sprintf("cancel %s: %v", failure.TaskID, failure.Err))
	}

	for _, task := range cancelable {
		outcome := ItemOutcome{TaskID: task.ID, TaskName: task.DisplayName()}
		outcome.Err = s.api.CancelTask(ctx, projectID, task.ID)
		report.add(outcome)
		completed++
		s.emit(progress, completed, total, batchLine("cancel", outcome))
	}

	s.logger.Info("cancel batch finished", "operation", report.OperationID,
		"total", report.Total(), "succeeded", report.SucceededCount(), "failed", report.FailedCount(),
		"skipped_completed", len(report.Skipped))
	return report, nil
}

// DownloadAssets downloads the requested artifacts of each task into
// per-task directories under baseDir. Assets a task does not offer are
// recorded as failures, not silently skipped. One download unit is a
// task+asset pair; the report covers len(taskIDs) * len(assets) units.
func (s *Service) DownloadAssets(ctx context.Context, projectID int, taskIDs []model.TaskID, assets []string, baseDir string, progress ProgressFunc) *BatchReport {
	report := newBatchReport()
	total := len(taskIDs) * len(assets)
	completed := 0

	for _, id := range taskIDs {
		task, err := s.api.GetTask(ctx, projectID, id)
		if err != nil {
			for _, asset := range assets {
				report.add(ItemOutcome{TaskID: id, Asset: asset, Err: fmt.Errorf("fetch task info: %w", err)})
				completed++
			}
			s.emit(progress, completed, total, fmt.Sprintf("task %s: cannot fetch info", id))
			continue
		}

		taskDir := filepath.Join(baseDir,
			platform.SanitizeFilename(task.DisplayName())+"_"+platform.SanitizeFilename(id.String()))

		for _, asset := range assets {
			outcome := ItemOutcome{TaskID: id, TaskName: task.DisplayName(), Asset: asset}
			if !task.HasAsset(asset) {
				outcome.Err = fmt.Errorf("asset %s not available for task %s", asset, id)
			} else {
				outcome.Path = filepath.Join(taskDir, platform.SanitizeFilename(asset))
				outcome.Err = s.api.DownloadAsset(ctx, projectID, id, asset, outcome.Path)
			}
			report.add(outcome)
			completed++
			s.emit(progress, completed, total, batchLine("download "+asset+" for", outcome))
		}
	}

	s.logger.Info("download batch finished", "operation", report.OperationID,
		"total", report.Total(), "succeeded", report.SucceededCount(), "failed", report.FailedCount())
	return report
}

// runBatch applies one action per task id, independently: a failure to
// fetch task info or to perform the action is recorded for that id and the
// loop moves on. No single bad task blocks the rest of the batch.
func (s *Service) runBatch(ctx context.Context, projectID int, taskIDs []model.TaskID, progress ProgressFunc, verb string, action func(ctx context.Context, task *model.Task) error) *BatchReport {
	report := newBatchReport()
	total := len(taskIDs)

	for i, id := range taskIDs {
		outcome := ItemOutcome{TaskID: id}

		task, err := s.api.GetTask(ctx, projectID, id)
		if err != nil {
			outcome.Err = fmt.Errorf("fetch task info: %w", err)
		} else {
			outcome.TaskName = task.DisplayName()
			outcome.Err = action(ctx, task)
		}

		report.add(outcome)
		s.emit(progress, i+1, total, batchLine(verb, outcome))
	}

	s.logger.Info(verb+" batch finished", "operation", report.OperationID,
		"total", report.Total(), "succeeded", report.SucceededCount(), "failed", report.FailedCount())
	return report
}

func batchLine(verb string, outcome ItemOutcome) string {
	label := outcome.TaskID.String()
	if outcome.TaskName != "" {
		label = fmt.Sprintf("%s (%s)", outcome.TaskID, outcome.TaskName)
	}
	if outcome.Err != nil {
		return fmt.Sprintf("%s %s: %v", verb, label, outcome.Err)
	}
	return fmt.Sprintf("%s %s: ok", verb, label)
}
