package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var assetFlags []string
	var outFlag string

	cmd := &cobra.Command{
		Use:   "download <project-id> <task-id>...",
		Short: "Download result assets of one or more tasks",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			if len(assetFlags) == 0 {
				return fmt.Errorf("at least one --asset is required (e.g. --asset orthophoto.tif)")
			}
			svc, _, cfg, err := ctx.newWorkflow()
			if err != nil {
				return err
			}

			baseDir := outFlag
			if baseDir == "" {
				baseDir = cfg.Download.Dir
			}

			report := svc.DownloadAssets(cmd.Context(), projectID, taskIDArgs(args[1:]),
				assetFlags, baseDir, newProgressLines(cmd.OutOrStdout()))
			printBatchReport(cmd, "Download", report)
			for _, item := range report.Items {
				if item.Succeeded() {
					fmt.Fprintf(cmd.OutOrStdout(), "  saved %s\n", item.Path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&assetFlags, "asset", "a", nil, "Asset name to download (repeatable)")
	cmd.Flags().StringVarP(&outFlag, "out", "O", "", "Output directory (defaults to download.dir from config)")
	return cmd
}
