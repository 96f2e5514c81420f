package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/haierkeys/note-discord-share/internal/domain"
	"github.com/haierkeys/note-discord-share/pkg/code"
)

func init() {
	settingsCmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"setting"},
		Short:   "Show and edit the share settings",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.InOrStdin(), cmd.OutOrStdout(), func(ctx context.Context, r *runtime) error {
				s, err := r.app.Settings(ctx)
				if err != nil {
					return err
				}
				data, err := sonic.ConfigStd.MarshalIndent(s, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(r.out, string(data))
				return nil
			})
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.InOrStdin(), cmd.OutOrStdout(), func(ctx context.Context, r *runtime) error {
				fmt.Fprintln(r.out, r.app.SettingService.Location())
				return nil
			})
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rerun the legacy settings migration and save the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.InOrStdin(), cmd.OutOrStdout(), func(ctx context.Context, r *runtime) error {
				if _, err := r.app.SettingService.Migrate(ctx); err != nil {
					return err
				}
				r.notifier.Success(code.SuccessSettingsMigrate.WithArgs(domain.SettingsVersion))
				return nil
			})
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting, see \"settings keys\"",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.InOrStdin(), cmd.OutOrStdout(), func(ctx context.Context, r *runtime) error {
				if err := r.app.SettingService.Set(ctx, args[0], args[1]); err != nil {
					return err
				}
				r.notifier.Success(code.SuccessSettingsSaved)
				return nil
			})
		},
	}

	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "List the keys accepted by \"settings set\"",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.InOrStdin(), cmd.OutOrStdout(), func(ctx context.Context, r *runtime) error {
				fmt.Fprintln(r.out, strings.Join(r.app.SettingService.Keys(), "\n"))
				return nil
			})
		},
	}

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "Manage the default embed fields",
	}

	var inline bool
	fieldAddCmd := &cobra.Command{
		Use:   "add <name> <value>",
		Short: "Append a default embed field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.InOrStdin(), cmd.OutOrStdout(), func(ctx context.Context, r *runtime) error {
				field := domain.EmbedField{Name: args[0], Value: args[1], Inline: inline}
				if err := r.app.SettingService.AddField(ctx, field); err != nil {
					return err
				}
				r.notifier.Success(code.SuccessSettingsSaved)
				return nil
			})
		},
	}
	fieldAddCmd.Flags().BoolVar(&inline, "inline", false, "render the field inline")

	fieldRemoveCmd := &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a default embed field by name",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.InOrStdin(), cmd.OutOrStdout(), func(ctx context.Context, r *runtime) error {
				if err := r.app.SettingService.RemoveField(ctx, args[0]); err != nil {
					return err
				}
				r.notifier.Success(code.SuccessSettingsSaved)
				return nil
			})
		},
	}

	fieldCmd.AddCommand(fieldAddCmd, fieldRemoveCmd)
	settingsCmd.AddCommand(showCmd, pathCmd, migrateCmd, setCmd, keysCmd, fieldCmd)
	rootCmd.AddCommand(settingsCmd)
}
