package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"montage/internal/clipops"
	"montage/internal/project"
	"montage/internal/projectstore"
	"montage/internal/workflow"
)

func newClipCommand(ctx *commandContext) *cobra.Command {
	var projectID string

	clipCmd := &cobra.Command{
		Use:   "clip",
		Short: "Edit clips in a stored project",
	}
	clipCmd.PersistentFlags().StringVarP(&projectID, "project", "P", "", "Project id to edit")
	_ = clipCmd.MarkPersistentFlagRequired("project")

	clipCmd.AddCommand(newClipAddCommand(ctx, &projectID))
	clipCmd.AddCommand(newClipDeleteCommand(ctx, &projectID))
	clipCmd.AddCommand(newClipSplitCommand(ctx, &projectID))
	clipCmd.AddCommand(newClipTrimCommand(ctx, &projectID, true))
	clipCmd.AddCommand(newClipTrimCommand(ctx, &projectID, false))
	clipCmd.AddCommand(newClipRateCommand(ctx, &projectID))
	clipCmd.AddCommand(newClipSpeedCommand(ctx, &projectID))
	clipCmd.AddCommand(newClipReorderCommand(ctx, &projectID))

	return clipCmd
}

// withEditor loads the project, runs the edit, and saves the result back.
func (c *commandContext) withEditor(cmd *cobra.Command, projectID string, fn func(*project.Project, *clipops.Editor) error) error {
	return c.withStore(func(store *projectstore.Store) error {
		p, err := store.Load(cmd.Context(), projectID)
		if err != nil {
			return err
		}
		editor := clipops.NewEditor(p, workflow.NewOrchestrator(c.logger()))
		if err := fn(p, editor); err != nil {
			return err
		}
		return store.Save(cmd.Context(), p)
	})
}

func newClipAddCommand(ctx *commandContext, projectID *string) *cobra.Command {
	var rate float64

	cmd := &cobra.Command{
		Use:   "add <recording-id> <source-in-ms> <source-out-ms>",
		Short: "Append a clip to the primary track",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceIn, err := parseMillis(args[1])
			if err != nil {
				return err
			}
			sourceOut, err := parseMillis(args[2])
			if err != nil {
				return err
			}
			return ctx.withEditor(cmd, *projectID, func(p *project.Project, editor *clipops.Editor) error {
				clip, err := editor.AddClip(args[0], sourceIn, sourceOut, rate)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added clip %s at %s\n", clip.ID, formatMillis(clip.StartTime))
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&rate, "rate", 1, "Playback rate for the new clip")
	return cmd
}

func newClipDeleteCommand(ctx *commandContext, projectID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <clip-id>",
		Short: "Delete a clip and close the gap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEditor(cmd, *projectID, func(p *project.Project, editor *clipops.Editor) error {
				if err := editor.DeleteClip(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted clip %s\n", args[0])
				return nil
			})
		},
	}
}

func newClipSplitCommand(ctx *commandContext, projectID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "split <clip-id> <at-ms>",
		Short: "Split a clip at a timeline position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseMillis(args[1])
			if err != nil {
				return err
			}
			return ctx.withEditor(cmd, *projectID, func(p *project.Project, editor *clipops.Editor) error {
				first, second, err := editor.SplitClip(args[0], at)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Split clip %s into %s and %s\n", args[0], first.ID, second.ID)
				return nil
			})
		},
	}
}

func newClipTrimCommand(ctx *commandContext, projectID *string, fromStart bool) *cobra.Command {
	use := "trim-end <clip-id> <ms>"
	short := "Trim milliseconds off the end of a clip"
	if fromStart {
		use = "trim-start <clip-id> <ms>"
		short = "Trim milliseconds off the start of a clip"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseMillis(args[1])
			if err != nil {
				return err
			}
			return ctx.withEditor(cmd, *projectID, func(p *project.Project, editor *clipops.Editor) error {
				if fromStart {
					err = editor.TrimStart(args[0], amount)
				} else {
					err = editor.TrimEnd(args[0], amount)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Trimmed clip %s by %s\n", args[0], formatMillis(amount))
				return nil
			})
		},
	}
}

func newClipRateCommand(ctx *commandContext, projectID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <clip-id> <rate>",
		Short: "Change a clip's playback rate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid rate %q", args[1])
			}
			return ctx.withEditor(cmd, *projectID, func(p *project.Project, editor *clipops.Editor) error {
				if err := editor.SetRate(args[0], rate); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set clip %s rate to %.2fx\n", args[0], rate)
				return nil
			})
		},
	}
}

func newClipSpeedCommand(ctx *commandContext, projectID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "speed <clip-id> <source-start-ms> <source-end-ms> <multiplier>",
		Short: "Speed up a source range of a clip",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseMillis(args[1])
			if err != nil {
				return err
			}
			end, err := parseMillis(args[2])
			if err != nil {
				return err
			}
			mult, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("invalid multiplier %q", args[3])
			}
			return ctx.withEditor(cmd, *projectID, func(p *project.Project, editor *clipops.Editor) error {
				err := editor.ApplySpeedUp(args[0], []clipops.SpeedRange{
					{SourceStart: start, SourceEnd: end, Multiplier: mult},
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %.2fx speed to clip %s\n", mult, args[0])
				return nil
			})
		},
	}
}

func newClipReorderCommand(ctx *commandContext, projectID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <clip-id> <index>",
		Short: "Move a clip to a new position on its track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[1])
			}
			return ctx.withEditor(cmd, *projectID, func(p *project.Project, editor *clipops.Editor) error {
				if err := editor.Reorder(args[0], index); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved clip %s to index %d\n", args[0], index)
				return nil
			})
		},
	}
}

func parseMillis(arg string) (float64, error) {
	value, err := strconv.ParseFloat(arg, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid time %q (expected milliseconds)", arg)
	}
	return value, nil
}
