package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haierkeys/note-discord-share/pkg/code"
)

func init() {
	webhookCmd := &cobra.Command{
		Use:   "webhook",
		Short: "Manage Discord webhook destinations",
	}

	addCmd := &cobra.Command{
		Use:   "add <description> <url>",
		Short: "Add a webhook destination",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.InOrStdin(), cmd.OutOrStdout(), func(ctx context.Context, r *runtime) error {
				if err := r.app.SettingService.AddWebhook(ctx, args[0], args[1]); err != nil {
					return err
				}
				r.notifier.Success(code.SuccessWebhookAdded.WithArgs(args[0]))
				return nil
			})
		},
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List webhook destinations",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.InOrStdin(), cmd.OutOrStdout(), func(ctx context.Context, r *runtime) error {
				hooks, err := r.app.SettingService.ListWebhooks(ctx)
				if err != nil {
					return err
				}
				if len(hooks) == 0 {
					return code.ErrorNoDestination
				}
				tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
				for _, h := range hooks {
					fmt.Fprintf(tw, "%s\t%s\n", h.Description, h.URL)
				}
				return tw.Flush()
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:     "remove <description>",
		Aliases: []string{"rm"},
		Short:   "Remove a webhook destination",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.InOrStdin(), cmd.OutOrStdout(), func(ctx context.Context, r *runtime) error {
				if err := r.app.SettingService.RemoveWebhook(ctx, args[0]); err != nil {
					return err
				}
				r.notifier.Success(code.SuccessWebhookRemoved.WithArgs(args[0]))
				return nil
			})
		},
	}

	webhookCmd.AddCommand(addCmd, listCmd, removeCmd)
	rootCmd.AddCommand(webhookCmd)
}
