package cmd

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/haierkeys/note-discord-share/internal/service"
	"github.com/haierkeys/note-discord-share/pkg/code"
)

// targetFlags destination selection shared by the share commands
// targetFlags 分享目标参数
type targetFlags struct {
	webhook string
	all     bool
}

func (t *targetFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&t.webhook, "webhook", "w", "", "webhook description to share to")
	cmd.Flags().BoolVarP(&t.all, "all", "a", false, "share to every configured webhook")
	cmd.MarkFlagsMutuallyExclusive("webhook", "all")
}

func (t *targetFlags) target() service.ShareTarget {
	return service.ShareTarget{Webhook: t.webhook, All: t.all}
}

func init() {
	shareCmd := &cobra.Command{
		Use:   "share",
		Short: "Share a note, a selection or an attachment to Discord",
	}

	propsTarget := new(targetFlags)
	propertiesCmd := &cobra.Command{
		Use:   "properties <note>",
		Short: "Share the embed described by a note's properties",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.InOrStdin(), cmd.OutOrStdout(), func(ctx context.Context, r *runtime) error {
				s, err := r.app.Settings(ctx)
				if err != nil {
					return err
				}
				return shared(r.app.ShareService.ShareProperties(ctx, s, firstArg(args), propsTarget.target()))
			})
		},
	}
	propsTarget.bind(propertiesCmd)

	contentTarget := new(targetFlags)
	contentCmd := &cobra.Command{
		Use:   "content <note>",
		Short: "Share a note's body as an embed description",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.InOrStdin(), cmd.OutOrStdout(), func(ctx context.Context, r *runtime) error {
				s, err := r.app.Settings(ctx)
				if err != nil {
					return err
				}
				return shared(r.app.ShareService.ShareContent(ctx, s, firstArg(args), contentTarget.target()))
			})
		},
	}
	contentTarget.bind(contentCmd)

	selectionTarget := new(targetFlags)
	var selectionNote, selectionText string
	selectionCmd := &cobra.Command{
		Use:   "selection [--note <note>] [--text <text>]",
		Short: "Share a piece of text, read from --text or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := selectionText
			in := cmd.InOrStdin()
			if !cmd.Flags().Changed("text") {
				data, err := io.ReadAll(in)
				if err != nil {
					return errors.Wrap(err, "read selection")
				}
				text = string(data)
				// stdin is consumed; a webhook prompt cannot read from it
				in = strings.NewReader("")
			}
			return withRuntime(in, cmd.OutOrStdout(), func(ctx context.Context, r *runtime) error {
				s, err := r.app.Settings(ctx)
				if err != nil {
					return err
				}
				return shared(r.app.ShareService.ShareSelection(ctx, s, selectionNote, text, selectionTarget.target()))
			})
		},
	}
	selectionCmd.Flags().StringVarP(&selectionNote, "note", "n", "", "note the selection comes from; local image links in the defaults resolve relative to it")
	selectionCmd.Flags().StringVarP(&selectionText, "text", "t", "", "text to share")
	selectionTarget.bind(selectionCmd)

	attachmentTarget := new(targetFlags)
	var attachmentQuery string
	attachmentCmd := &cobra.Command{
		Use:   "attachment [file]",
		Short: "Upload a vault file; without a path, pick one from the attachments folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.InOrStdin(), cmd.OutOrStdout(), func(ctx context.Context, r *runtime) error {
				s, err := r.app.Settings(ctx)
				if err != nil {
					return err
				}
				filePath := firstArg(args)
				if filePath == "" {
					if !s.HasDestinations() {
						return code.ErrorNoDestination
					}
					files, err := r.app.FileService.Suggestions(ctx, s, attachmentQuery)
					if err != nil {
						return err
					}
					if len(files) == 0 {
						return code.ErrorAttachmentNotFound.WithDetails(attachmentQuery)
					}
					file, ok, err := r.chooser.ChooseFile(ctx, files, s.ShowPreview)
					if err != nil {
						return err
					}
					if !ok {
						return code.ErrorCanceled
					}
					filePath = file.Path
				}
				return shared(r.app.ShareService.ShareAttachment(ctx, s, filePath, attachmentTarget.target()))
			})
		},
	}
	attachmentCmd.Flags().StringVarP(&attachmentQuery, "query", "q", "", "filter suggestions by path")
	attachmentTarget.bind(attachmentCmd)

	shareCmd.AddCommand(propertiesCmd, contentCmd, selectionCmd, attachmentCmd)
	rootCmd.AddCommand(shareCmd)
}

// shared maps a share error to errReported; the share service has already
// printed its notice.
func shared(err error) error {
	if err != nil {
		return errReported
	}
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
