package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func intPtr(n int) *int { return &n }

func TestSendEmbed_JSON(t *testing.T) {
	var (
		gotContentType string
		gotUserAgent   string
		gotBody        map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotContentType = r.Header.Get("Content-Type")
		gotUserAgent = r.Header.Get("User-Agent")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(Config{UserAgent: "note-discord-share/test"}, nil)
	payload := &WebhookPayload{
		Username: "Obsidian Share",
		Embeds: []Embed{{
			Title:     "Hello",
			Color:     intPtr(65280),
			Timestamp: "2026-01-02T03:04:05Z",
		}},
	}

	require.NoError(t, client.SendEmbed(context.Background(), server.URL, payload, nil))

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "note-discord-share/test", gotUserAgent)
	assert.Equal(t, "Obsidian Share", gotBody["username"])
	assert.NotContains(t, gotBody, "avatar_url")
	assert.NotContains(t, gotBody, "content")

	embeds := gotBody["embeds"].([]any)
	require.Len(t, embeds, 1)
	embed := embeds[0].(map[string]any)
	assert.Equal(t, "Hello", embed["title"])
	assert.Equal(t, float64(65280), embed["color"])
	assert.NotContains(t, embed, "image")
	assert.NotContains(t, embed, "fields")
}

func TestSendEmbed_Multipart(t *testing.T) {
	var (
		payloadJSON string
		fileName    string
		fileType    string
		fileData    []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		payloadJSON = r.FormValue("payload_json")
		f, header, err := r.FormFile("files[0]")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		fileName = header.Filename
		fileType = header.Header.Get("Content-Type")
		fileData, _ = io.ReadAll(f)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(Config{}, nil)
	payload := &WebhookPayload{
		Embeds: []Embed{{Image: &Media{URL: AttachmentURL("pic.png")}}},
	}

	err := client.SendEmbed(context.Background(), server.URL, payload, []File{{Name: "pic.png", Data: pngBytes}})
	require.NoError(t, err)

	assert.Equal(t, "pic.png", fileName)
	assert.Equal(t, "image/png", fileType)
	assert.Equal(t, pngBytes, fileData)
	assert.JSONEq(t, `{"embeds":[{"image":{"url":"attachment://pic.png"}}]}`, payloadJSON)
}

func TestSendAttachment_Identity(t *testing.T) {
	var payloadJSON, fileName string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		payloadJSON = r.FormValue("payload_json")
		_, header, err := r.FormFile("files[0]")
		if !assert.NoError(t, err) {
			return
		}
		fileName = header.Filename
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(Config{}, nil)
	err := client.SendAttachment(context.Background(), server.URL,
		Identity{Username: "bot", AvatarURL: "https://example.com/a.png"},
		File{Name: `my "pic".png`, Data: pngBytes})
	require.NoError(t, err)

	assert.Equal(t, `my "pic".png`, fileName)
	assert.JSONEq(t, `{"username":"bot","avatar_url":"https://example.com/a.png"}`, payloadJSON)
}

func TestSend_FailureClassification(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantTooLarge bool
	}{
		{name: "413", status: http.StatusRequestEntityTooLarge, body: "", wantTooLarge: true},
		{name: "too large message", status: http.StatusBadRequest, body: "Request Entity Too Large", wantTooLarge: true},
		{name: "server error", status: http.StatusInternalServerError, body: "oops"},
		{name: "not found", status: http.StatusNotFound, body: `{"message": "Unknown Webhook"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(Config{}, nil)
			err := client.SendEmbed(context.Background(), server.URL, &WebhookPayload{Content: "x"}, nil)
			require.Error(t, err)

			var de *DeliveryError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.status, de.StatusCode)
			assert.NotEmpty(t, de.DeliveryID)
			assert.Equal(t, tt.wantTooLarge, IsPayloadTooLarge(err))
			assert.Contains(t, err.Error(), "HTTP")
		})
	}
}

func TestSend_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(Config{Timeout: time.Second}, nil)
	err := client.SendEmbed(context.Background(), url, &WebhookPayload{Content: "x"}, nil)
	require.Error(t, err)

	var de *DeliveryError
	require.True(t, errors.As(err, &de))
	assert.Zero(t, de.StatusCode)
	assert.False(t, IsPayloadTooLarge(err))
	assert.NotEmpty(t, DeliveryIDOf(err))
}

func TestSend_RateLimitHonoursContext(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	// one request per minute, no burst
	client := NewClient(Config{RatePerMinute: 1, Burst: 1}, nil)
	require.NoError(t, client.SendEmbed(context.Background(), server.URL, &WebhookPayload{Content: "a"}, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := client.SendEmbed(ctx, server.URL, &WebhookPayload{Content: "b"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, int32(1), calls.Load())
}

func TestIsPayloadTooLarge(t *testing.T) {
	assert.False(t, IsPayloadTooLarge(nil))
	assert.True(t, IsPayloadTooLarge(ErrPayloadTooLarge))
	assert.True(t, IsPayloadTooLarge(errors.Wrap(ErrPayloadTooLarge, "send")))
	assert.True(t, IsPayloadTooLarge(errors.New("proxy said: request entity too large")))
	assert.False(t, IsPayloadTooLarge(errors.New("connection refused")))
}
