package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haierkeys/note-discord-share/internal/domain"
	"github.com/haierkeys/note-discord-share/pkg/code"
	apperrors "github.com/haierkeys/note-discord-share/pkg/errors"
)

func TestPromptChooser_Choose(t *testing.T) {
	dests := []domain.WebhookDestination{
		{Description: "main", URL: "https://discord.com/api/webhooks/main"},
		{Description: "alerts", URL: "https://discord.com/api/webhooks/alerts"},
	}

	tests := []struct {
		name   string
		answer string
		want   int
	}{
		{name: "first", answer: "1\n", want: 0},
		{name: "second without newline", answer: "2", want: 1},
		{name: "padded", answer: "  2  \n", want: 1},
		{name: "blank cancels", answer: "\n", want: -1},
		{name: "quit cancels", answer: "Q\n", want: -1},
		{name: "out of range", answer: "3\n", want: -1},
		{name: "not a number", answer: "main\n", want: -1},
		{name: "eof", answer: "", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := newPromptChooser(strings.NewReader(tt.answer), &out)

			got, err := p.Choose(context.Background(), dests)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "1) main")
			assert.Contains(t, out.String(), "2) alerts")
		})
	}
}

func TestPromptChooser_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	p := newPromptChooser(strings.NewReader("1\n"), &out)
	_, err := p.Choose(ctx, []domain.WebhookDestination{{Description: "a"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestPromptChooser_ChooseFile(t *testing.T) {
	files := []domain.NoteFile{
		{Path: "attachments/a.png", Name: "a.png"},
		{Path: "attachments/sub/b.png", Name: "b.png"},
	}

	var out bytes.Buffer
	p := newPromptChooser(strings.NewReader("2\n"), &out)
	f, ok, err := p.ChooseFile(context.Background(), files, true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "attachments/sub/b.png", f.Path)
	assert.Contains(t, out.String(), "attachments/sub/b.png")

	out.Reset()
	p = newPromptChooser(strings.NewReader("\n"), &out)
	_, ok, err = p.ChooseFile(context.Background(), files, false)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "1) a.png")
	assert.NotContains(t, out.String(), "attachments/")
}

func TestConsoleNotifier(t *testing.T) {
	var out bytes.Buffer
	n := newConsoleNotifier(&out)

	n.Success(code.SuccessShareEmbed.WithContext("main"))
	assert.Equal(t, "[main] Successfully shared embed to Discord!\n", out.String())

	out.Reset()
	appErr := apperrors.NewAppError(code.ErrorEmbedTooLarge.WithContext("alerts"), errors.New("413")).
		WithDeliveryID("d-1")
	n.Failure(appErr)
	assert.Contains(t, out.String(), "[alerts] Failed to share embed to Discord. Attachments must be smaller than 8MB.")
	assert.Contains(t, out.String(), "delivery id: d-1")
}

func TestConsoleNotifier_Report(t *testing.T) {
	var out bytes.Buffer
	n := newConsoleNotifier(&out)

	assert.NoError(t, n.report(nil))
	assert.Empty(t, out.String())

	err := n.report(code.ErrorWebhookExists.WithArgs("main"))
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out.String(), "A webhook named main already exists")

	out.Reset()
	assert.ErrorIs(t, n.report(errReported), errReported)
	assert.Empty(t, out.String(), "already reported errors are not printed twice")
}
