package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/haierkeys/note-discord-share/internal/domain"
	"github.com/haierkeys/note-discord-share/pkg/code"
	apperrors "github.com/haierkeys/note-discord-share/pkg/errors"
)

// errReported marks an error whose notice was already printed.
var errReported = errors.New("reported")

// consoleNotifier prints notices to the terminal
// consoleNotifier 在终端输出提示
type consoleNotifier struct {
	out io.Writer
}

func newConsoleNotifier(out io.Writer) *consoleNotifier {
	return &consoleNotifier{out: out}
}

func (n *consoleNotifier) Success(c *code.Code) {
	msg := c.Msg()
	if c.HaveContext() && c.Context() != "" {
		msg = fmt.Sprintf("[%s] %s", c.Context(), msg)
	}
	fmt.Fprintln(n.out, msg)
}

func (n *consoleNotifier) Failure(err *apperrors.AppError) {
	msg := err.Message
	if err.Context != "" {
		msg = fmt.Sprintf("[%s] %s", err.Context, msg)
	}
	fmt.Fprintln(n.out, msg)
	for _, d := range err.Details {
		if d != "" && d != err.Message {
			fmt.Fprintf(n.out, "  %s\n", d)
		}
	}
	if err.DeliveryID != "" {
		fmt.Fprintf(n.out, "  delivery id: %s\n", err.DeliveryID)
	}
}

// report prints err through the notifier unless it was already shown.
func (n *consoleNotifier) report(err error) error {
	if err == nil || errors.Is(err, errReported) {
		return err
	}
	n.Failure(apperrors.FromError(err))
	return errReported
}

// lineReader reads answers from the terminal; shared by all prompts of one run.
type lineReader struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

func newLineReader(in io.Reader, out io.Writer) *lineReader {
	return &lineReader{in: bufio.NewReader(in), out: out}
}

// pick prints a numbered menu and returns the chosen 0-based index, or -1
// when the answer is blank, "q" or not a listed number.
func (l *lineReader) pick(ctx context.Context, title string, items []string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return -1, err
	}

	fmt.Fprintln(l.out, title)
	for i, item := range items {
		fmt.Fprintf(l.out, "  %d) %s\n", i+1, item)
	}
	fmt.Fprint(l.out, "> ")

	line, err := l.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return -1, errors.Wrap(err, "read answer")
	}
	answer := strings.TrimSpace(line)
	if answer == "" || strings.EqualFold(answer, "q") {
		return -1, nil
	}
	n, convErr := strconv.Atoi(answer)
	if convErr != nil || n < 1 || n > len(items) {
		return -1, nil
	}
	return n - 1, nil
}

// promptChooser asks which webhook to use when several are configured
// promptChooser 多个 webhook 时提示用户选择
type promptChooser struct {
	*lineReader
}

func newPromptChooser(in io.Reader, out io.Writer) *promptChooser {
	return &promptChooser{lineReader: newLineReader(in, out)}
}

func (p *promptChooser) Choose(ctx context.Context, destinations []domain.WebhookDestination) (int, error) {
	items := make([]string, 0, len(destinations))
	for _, d := range destinations {
		items = append(items, d.Description)
	}
	return p.pick(ctx, "Select a webhook:", items)
}

// ChooseFile asks which attachment suggestion to share
// ChooseFile 选择要分享的附件
func (p *promptChooser) ChooseFile(ctx context.Context, files []domain.NoteFile, showPath bool) (domain.NoteFile, bool, error) {
	items := make([]string, 0, len(files))
	for _, f := range files {
		if showPath {
			items = append(items, f.Path)
		} else {
			items = append(items, f.Name)
		}
	}
	i, err := p.pick(ctx, "Select a file:", items)
	if err != nil || i < 0 {
		return domain.NoteFile{}, false, err
	}
	return files[i], true, nil
}
