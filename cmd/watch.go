package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/haierkeys/note-discord-share/pkg/fileurl"
	"github.com/haierkeys/note-discord-share/pkg/logger"
)

type watchFlags struct {
	content  bool
	interval time.Duration
	targetFlags
}

func init() {
	flags := new(watchFlags)

	watchCmd := &cobra.Command{
		Use:   "watch <note>",
		Short: "Share a note again every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.InOrStdin(), cmd.OutOrStdout(), func(ctx context.Context, r *runtime) error {
				return watchNote(ctx, r, args[0], flags)
			})
		},
	}
	watchCmd.Flags().BoolVar(&flags.content, "content", false, "share the note body instead of its properties")
	watchCmd.Flags().DurationVar(&flags.interval, "interval", time.Second, "polling interval")
	flags.bind(watchCmd)

	rootCmd.AddCommand(watchCmd)
}

// notePathOnDisk maps a vault-relative note path to the file to poll.
func notePathOnDisk(root, notePath string) string {
	p := filepath.Join(root, filepath.FromSlash(notePath))
	if !fileurl.IsExist(p) && !strings.HasSuffix(strings.ToLower(p), ".md") {
		p += ".md"
	}
	return p
}

func watchNote(ctx context.Context, r *runtime, notePath string, flags *watchFlags) error {
	file := notePathOnDisk(r.app.Vault.Root(), notePath)
	if !fileurl.IsExist(file) {
		return errors.Errorf("note %s not found", notePath)
	}

	w := watcher.New()

	// At most one event per polling cycle; a save often touches the file twice.
	// 每个监听周期至多接收 1 个事件
	w.SetMaxEvents(1)

	// Only notify write events.
	// 只通知写入事件。
	w.FilterOps(watcher.Write)

	if err := w.Add(file); err != nil {
		return errors.Wrap(err, "note watcher file error")
	}

	share := func() {
		s, err := r.app.Settings(ctx)
		if err != nil {
			_ = r.notifier.report(err)
			return
		}
		// failures are printed by the share service
		if flags.content {
			_ = r.app.ShareService.ShareContent(ctx, s, notePath, flags.target())
		} else {
			_ = r.app.ShareService.ShareProperties(ctx, s, notePath, flags.target())
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Start(flags.interval)
	}()
	defer w.Close()

	r.logger.Info("watching note", zap.String(logger.FieldPath, file))

	for {
		select {
		case event := <-w.Event:
			r.logger.Info("note watcher change", zap.String("event", event.Op.String()), zap.String(logger.FieldPath, event.Path))
			share()
		case err := <-w.Error:
			r.logger.Error("note watcher error", zap.Error(err))
		case err := <-errCh:
			return errors.Wrap(err, "note watcher start error")
		case <-w.Closed:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}
