package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"montage/internal/project"
	"montage/internal/projectstore"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage stored projects",
	}

	projectCmd.AddCommand(newProjectListCommand(ctx))
	projectCmd.AddCommand(newProjectShowCommand(ctx))
	projectCmd.AddCommand(newProjectNewCommand(ctx))
	projectCmd.AddCommand(newProjectDeleteCommand(ctx))

	return projectCmd
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *projectstore.Store) error {
				infos, err := store.List(cmd.Context())
				if err != nil {
					return err
				}

				if asJSON {
					type jsonProject struct {
						ID        string    `json:"id"`
						Name      string    `json:"name"`
						UpdatedAt time.Time `json:"updated_at"`
					}
					items := make([]jsonProject, 0, len(infos))
					for _, info := range infos {
						items = append(items, jsonProject{ID: info.ID, Name: info.Name, UpdatedAt: info.UpdatedAt})
					}
					return writeJSON(cmd, map[string]any{"projects": items})
				}

				out := cmd.OutOrStdout()
				if len(infos) == 0 {
					fmt.Fprintln(out, "No projects stored")
					return nil
				}
				rows := make([][]string, 0, len(infos))
				for _, info := range infos {
					rows = append(rows, []string{
						info.ID,
						info.Name,
						info.UpdatedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Name", "Updated"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable output")
	return cmd
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project's tracks, clips, and effects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *projectstore.Store) error {
				p, err := store.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				titleCaser := cases.Title(language.English)

				fmt.Fprintf(out, "%s (%s)\n", p.Name, p.ID)
				fmt.Fprintf(out, "Duration: %s\n", formatMillis(p.Duration()))

				for _, track := range p.Tracks {
					for _, line := range renderSectionHeader(titleCaser.String(string(track.Type))+" Track", colorize) {
						fmt.Fprintln(out, line)
					}
					rows := make([][]string, 0, len(track.Clips))
					for _, clip := range track.Clips {
						rows = append(rows, []string{
							clip.ID,
							clip.RecordingID,
							formatMillis(clip.StartTime),
							formatMillis(clip.EndTime),
							fmt.Sprintf("%.2fx", clip.PlaybackRate),
						})
					}
					fmt.Fprintln(out, renderTable(
						[]string{"Clip", "Recording", "Start", "End", "Rate"},
						rows,
						[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
					))
				}

				effectsList := p.Effects.All()
				if len(effectsList) > 0 {
					for _, line := range renderSectionHeader("Effects", colorize) {
						fmt.Fprintln(out, line)
					}
					rows := make([][]string, 0, len(effectsList))
					for _, eff := range effectsList {
						rows = append(rows, []string{
							eff.ID,
							string(eff.Type),
							formatMillis(eff.StartTime),
							formatMillis(eff.EndTime),
							eff.ClipID,
							yesNo(eff.Enabled),
						})
					}
					fmt.Fprintln(out, renderTable(
						[]string{"ID", "Type", "Start", "End", "Clip", "Enabled"},
						rows,
						[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
					))
				}
				return nil
			})
		},
	}
}

func newProjectNewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *projectstore.Store) error {
				p := project.New(uuid.NewString(), strings.Join(args, " "))
				if err := store.Save(cmd.Context(), p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", p.Name, p.ID)
				return nil
			})
		},
	}
}

func newProjectDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a stored project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *projectstore.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
				return nil
			})
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
