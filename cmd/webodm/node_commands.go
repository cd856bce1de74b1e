package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newOptionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the processing options supported by the nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := ctx.newClient()
			if err != nil {
				return err
			}
			options, err := api.ProcessingOptions(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(options))
			for _, opt := range options {
				domain := strings.Join(opt.Domain, "|")
				rows = append(rows, []string{opt.Name, opt.Kind.String(), opt.Default, domain, opt.Help})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Name", "Type", "Default", "Domain", "Help"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newPresetsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the server-stored option presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := ctx.newClient()
			if err != nil {
				return err
			}
			presets, err := api.Presets(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(presets))
			for _, preset := range presets {
				pairs := make([]string, 0, len(preset.Options))
				for _, opt := range preset.Options {
					pairs = append(pairs, opt.Name+"="+opt.Value)
				}
				rows = append(rows, []string{
					strconv.Itoa(preset.ID), preset.Name, strings.Join(pairs, " "),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Options"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
