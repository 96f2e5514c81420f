package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	internalApp "github.com/haierkeys/note-discord-share/internal/app"
	"github.com/haierkeys/note-discord-share/pkg/fileurl"
	"github.com/haierkeys/note-discord-share/pkg/logger"
)

// configCandidates lookup order when -c is not given
// configCandidates 未指定 -c 时的配置文件查找顺序
var configCandidates = []string{"config/config-dev.yaml", "config.yaml", "config/config.yaml"}

const defaultConfigPath = "config/config.yaml"

// resolveConfig changes into the working directory and finds or creates the
// config file.
// resolveConfig 切换工作目录并查找或创建配置文件
func resolveConfig(flags *rootFlags) (string, error) {
	if len(flags.dir) > 0 {
		if err := os.Chdir(flags.dir); err != nil {
			return "", errors.Wrap(err, "failed to change the current working directory")
		}
		bootstrapLogger.Debug("working directory changed", zap.String("dir", flags.dir))
	}

	if len(flags.config) > 0 {
		return flags.config, nil
	}

	if p, ok := fileurl.FirstExisting(configCandidates...); ok {
		return p, nil
	}

	bootstrapLogger.Warn("config file not found, creating default config")
	created, err := fileurl.WriteIfMissing(defaultConfigPath, configDefault)
	if err != nil {
		return "", errors.Wrap(err, "config file auto create error")
	}
	if created {
		bootstrapLogger.Info("config file auto create successfully", zap.String("path", defaultConfigPath))
	}
	return defaultConfigPath, nil
}

// runtime everything a command needs after startup
// runtime 命令执行所需的运行时
type runtime struct {
	app      *internalApp.App
	out      io.Writer
	logger   *zap.Logger
	chooser  *promptChooser
	notifier *consoleNotifier
}

// newRuntime loads config, logger and the app container. in/out are the
// terminal streams used by prompts and notices.
// newRuntime 加载配置、日志与应用容器
func newRuntime(in io.Reader, out io.Writer) (*runtime, error) {
	path, err := resolveConfig(globalFlags)
	if err != nil {
		return nil, err
	}

	cfg, realpath, err := internalApp.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	bootstrapLogger.Debug("config loaded", zap.String("path", realpath))

	lg, err := logger.NewLogger(cfg.GetLoggerConfig())
	if err != nil {
		return nil, errors.Wrap(err, "failed to init logger")
	}

	chooser := newPromptChooser(in, out)
	notifier := newConsoleNotifier(out)

	a, err := internalApp.NewApp(cfg, lg, chooser, notifier)
	if err != nil {
		_ = lg.Sync()
		return nil, err
	}

	return &runtime{app: a, out: out, logger: lg, chooser: chooser, notifier: notifier}, nil
}

func (r *runtime) Close() {
	_ = r.app.Close()
}

// signalContext is canceled on SIGINT / SIGTERM
// signalContext 收到退出信号时取消
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// withRuntime runs fn with a fresh runtime bound to the command's streams.
func withRuntime(cmdIn io.Reader, cmdOut io.Writer, fn func(ctx context.Context, r *runtime) error) error {
	r, err := newRuntime(cmdIn, cmdOut)
	if err != nil {
		return err
	}
	defer r.Close()

	ctx, cancel := signalContext()
	defer cancel()
	return r.notifier.report(fn(ctx, r))
}
