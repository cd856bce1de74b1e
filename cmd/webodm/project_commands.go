package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newProjectsCommand(ctx *commandContext) *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "List, create, and inspect projects",
	}

	projectsCmd.AddCommand(newProjectsListCommand(ctx))
	projectsCmd.AddCommand(newProjectsCreateCommand(ctx))
	projectsCmd.AddCommand(newProjectsShowCommand(ctx))

	return projectsCmd
}

func newProjectsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := ctx.newClient()
			if err != nil {
				return err
			}
			projects, err := api.ListProjects(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{
					strconv.Itoa(p.ID), p.Name, p.Description, p.CreatedAt,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Description", "Created"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newProjectsCreateCommand(ctx *commandContext) *cobra.Command {
	var descriptionFlag string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("project name must not be empty")
			}
			api, _, err := ctx.newClient()
			if err != nil {
				return err
			}
			project, err := api.CreateProject(cmd.Context(), name, descriptionFlag)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %d (%s)\n", project.ID, project.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&descriptionFlag, "description", "d", "", "Project description")
	return cmd
}

func newProjectsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			api, _, err := ctx.newClient()
			if err != nil {
				return err
			}
			project, err := api.GetProject(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:          %d\n", project.ID)
			fmt.Fprintf(out, "Name:        %s\n", project.Name)
			fmt.Fprintf(out, "Description: %s\n", project.Description)
			fmt.Fprintf(out, "Created:     %s\n", project.CreatedAt)
			fmt.Fprintf(out, "Permissions: %s\n", strings.Join(project.Permissions, ", "))
			return nil
		},
	}
}
