package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/odmkit/webodm-client/internal/config"
	"github.com/odmkit/webodm-client/internal/model"
	"github.com/odmkit/webodm-client/internal/workflow"
)

func newTasksCommand(ctx *commandContext) *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "List, create, and manage processing tasks",
	}

	tasksCmd.AddCommand(newTasksListCommand(ctx))
	tasksCmd.AddCommand(newTasksShowCommand(ctx))
	tasksCmd.AddCommand(newTasksCreateCommand(ctx))
	tasksCmd.AddCommand(newTasksRestartCommand(ctx))
	tasksCmd.AddCommand(newTasksCancelCommand(ctx))
	tasksCmd.AddCommand(newTasksRemoveCommand(ctx))
	tasksCmd.AddCommand(newTasksWaitCommand(ctx))

	return tasksCmd
}

func parseProjectID(arg string) (int, error) {
	projectID, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid project id %q", arg)
	}
	return projectID, nil
}

func taskIDArgs(args []string) []model.TaskID {
	ids := make([]model.TaskID, 0, len(args))
	for _, arg := range args {
		ids = append(ids, model.TaskID(arg))
	}
	return ids
}

// parseOptionFlags turns repeated --opt name=value flags into ordered
// option values, falling back to the config's default options when none
// were given.
func parseOptionFlags(flags []string, cfg *config.Config) (model.OptionValues, error) {
	if len(flags) == 0 {
		return defaultOptionValues(cfg), nil
	}
	values := make(model.OptionValues, 0, len(flags))
	for _, flag := range flags {
		name, value, found := strings.Cut(flag, "=")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid option %q, expected name=value", flag)
		}
		values = append(values, model.OptionValue{Name: strings.TrimSpace(name), Value: value})
	}
	return values, nil
}

func defaultOptionValues(cfg *config.Config) model.OptionValues {
	if len(cfg.Processing.DefaultOptions) == 0 {
		return nil
	}
	names := make([]string, 0, len(cfg.Processing.DefaultOptions))
	for name := range cfg.Processing.DefaultOptions {
		names = append(names, name)
	}
	sort.Strings(names)
	values := make(model.OptionValues, 0, len(names))
	for _, name := range names {
		values = append(values, model.OptionValue{Name: name, Value: cfg.Processing.DefaultOptions[name]})
	}
	return values
}

func printBatchReport(cmd *cobra.Command, verb string, report *workflow.BatchReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s finished: %d total, %d succeeded, %d failed\n",
		verb, report.Total(), report.SucceededCount(), report.FailedCount())
	for _, skipped := range report.Skipped {
		fmt.Fprintf(out, "  skipped %s (%s): already completed\n", skipped.ID, skipped.DisplayName())
	}
	for _, failure := range report.Failures() {
		fmt.Fprintf(out, "  failed %s: %v\n", failure.TaskID, failure.Err)
	}
}

func newTasksListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list <project-id>",
		Short: "List the tasks of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			api, _, err := ctx.newClient()
			if err != nil {
				return err
			}
			tasks, err := api.ListTasks(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(tasks))
			for i := range tasks {
				task := &tasks[i]
				rows = append(rows, []string{
					task.ID.String(),
					task.DisplayName(),
					task.Status.String(),
					task.CreatedAt,
					formatProcessingTime(task.ProcessingTime),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Status", "Created", "Processing Time"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

func formatProcessingTime(millis int64) string {
	if millis <= 0 {
		return "-"
	}
	return (time.Duration(millis) * time.Millisecond).Round(time.Second).String()
}

func newTasksShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id> <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			api, _, err := ctx.newClient()
			if err != nil {
				return err
			}
			task, err := api.GetTask(cmd.Context(), projectID, model.TaskID(args[1]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:              %s\n", task.ID)
			fmt.Fprintf(out, "Name:            %s\n", task.DisplayName())
			fmt.Fprintf(out, "Status:          %s\n", task.Status)
			fmt.Fprintf(out, "Created:         %s\n", task.CreatedAt)
			fmt.Fprintf(out, "Processing time: %s\n", formatProcessingTime(task.ProcessingTime))
			fmt.Fprintf(out, "Assets:          %s\n", strings.Join(task.AvailableAssets, ", "))
			if len(task.Options) > 0 {
				fmt.Fprintln(out, "Options:")
				for _, opt := range task.Options {
					fmt.Fprintf(out, "  %s = %s\n", opt.Name, opt.Value)
				}
			}
			return nil
		},
	}
}

func newTasksCreateCommand(ctx *commandContext) *cobra.Command {
	var nameFlag string
	var optionFlags []string
	var waitFlag bool

	cmd := &cobra.Command{
		Use:   "create <project-id> <image>...",
		Short: "Create a task by uploading images",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			svc, api, cfg, err := ctx.newWorkflow()
			if err != nil {
				return err
			}
			options, err := parseOptionFlags(optionFlags, cfg)
			if err != nil {
				return err
			}

			progress := newProgressBar(cmd.OutOrStdout(), "uploading")
			task, err := svc.CreateTaskWithImages(cmd.Context(), projectID, args[1:], options, nameFlag, progress)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s created (%s)\n", task.ID, task.Status)

			if waitFlag {
				finished, err := api.WaitForCompletion(cmd.Context(), projectID, task.ID, cfg.PollInterval())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task %s completed in %s\n",
					finished.ID, formatProcessingTime(finished.ProcessingTime))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Task name")
	cmd.Flags().StringArrayVarP(&optionFlags, "opt", "o", nil, "Processing option as name=value (repeatable)")
	cmd.Flags().BoolVarP(&waitFlag, "wait", "w", false, "Block until processing finishes")
	return cmd
}

func newTasksRestartCommand(ctx *commandContext) *cobra.Command {
	var optionFlags []string

	cmd := &cobra.Command{
		Use:   "restart <project-id> <task-id>...",
		Short: "Restart one or more tasks",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			svc, _, cfg, err := ctx.newWorkflow()
			if err != nil {
				return err
			}
			options, err := parseOptionFlags(optionFlags, cfg)
			if err != nil {
				return err
			}

			report := svc.RestartTasks(cmd.Context(), projectID, taskIDArgs(args[1:]), options,
				newProgressLines(cmd.OutOrStdout()))
			printBatchReport(cmd, "Restart", report)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&optionFlags, "opt", "o", nil, "Processing option as name=value (repeatable)")
	return cmd
}

func newTasksCancelCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <project-id> <task-id>...",
		Short: "Cancel one or more tasks (completed tasks are skipped)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			svc, _, _, err := ctx.newWorkflow()
			if err != nil {
				return err
			}

			report, err := svc.CancelTasks(cmd.Context(), projectID, taskIDArgs(args[1:]),
				newProgressLines(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			printBatchReport(cmd, "Cancel", report)
			return nil
		},
	}
}

func newTasksRemoveCommand(ctx *commandContext) *cobra.Command {
	var yesFlag bool

	cmd := &cobra.Command{
		Use:   "remove <project-id> <task-id>...",
		Short: "Delete one or more tasks from the server",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			if !yesFlag {
				return fmt.Errorf("removing tasks is irreversible; re-run with --yes to confirm")
			}
			svc, _, _, err := ctx.newWorkflow()
			if err != nil {
				return err
			}

			report := svc.RemoveTasks(cmd.Context(), projectID, taskIDArgs(args[1:]),
				newProgressLines(cmd.OutOrStdout()))
			printBatchReport(cmd, "Remove", report)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Confirm deletion")
	return cmd
}

func newTasksWaitCommand(ctx *commandContext) *cobra.Command {
	var timeoutFlag time.Duration

	cmd := &cobra.Command{
		Use:   "wait <project-id> <task-id>",
		Short: "Block until a task finishes processing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			api, cfg, err := ctx.newClient()
			if err != nil {
				return err
			}

			waitCtx := cmd.Context()
			if timeoutFlag > 0 {
				var cancel func()
				waitCtx, cancel = context.WithTimeout(waitCtx, timeoutFlag)
				defer cancel()
			}

			task, err := api.WaitForCompletion(waitCtx, projectID, model.TaskID(args[1]), cfg.PollInterval())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s completed in %s\n",
				task.ID, formatProcessingTime(task.ProcessingTime))
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Give up after this duration (0 waits indefinitely)")
	return cmd
}
