package discord

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/juju/ratelimit"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/haierkeys/note-discord-share/pkg/logger"
)

const maxErrorBody = 64 << 10

// Config 投递客户端配置
type Config struct {
	// Timeout 单次请求超时，0 表示不设超时
	Timeout time.Duration
	// RatePerMinute 每分钟最多发送的请求数，0 表示不限速
	RatePerMinute int
	// Burst 令牌桶容量
	Burst int
	// UserAgent 请求头 User-Agent
	UserAgent string
}

// Client posts payloads to Discord webhooks. Every call is a single attempt.
// Client Discord webhook 投递客户端，每次调用只尝试一次
type Client struct {
	httpClient *http.Client
	bucket     *ratelimit.Bucket
	userAgent  string
	logger     *zap.Logger
}

// Option 客户端可选项
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient 创建投递客户端
func NewClient(cfg Config, lg *zap.Logger, opts ...Option) *Client {
	if lg == nil {
		lg = zap.NewNop()
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		logger:     lg,
	}

	if cfg.RatePerMinute > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.bucket = ratelimit.NewBucketWithRate(float64(cfg.RatePerMinute)/60, int64(burst))
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendEmbed posts payload to endpoint. With files the request is multipart
// (payload_json plus files[N]); otherwise it is a JSON body.
// SendEmbed 发送 embed，有附件时使用 multipart
func (c *Client) SendEmbed(ctx context.Context, endpoint string, payload *WebhookPayload, files []File) error {
	body, err := sonic.ConfigStd.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshal webhook payload")
	}

	if len(files) == 0 {
		return c.post(ctx, endpoint, "application/json", bytes.NewReader(body), 0)
	}

	buf, contentType, err := buildMultipart(body, files)
	if err != nil {
		return err
	}
	return c.post(ctx, endpoint, contentType, buf, len(files))
}

// SendAttachment uploads one file as a message of its own under the given bot identity.
// SendAttachment 单独上传一个附件
func (c *Client) SendAttachment(ctx context.Context, endpoint string, identity Identity, file File) error {
	payload := &WebhookPayload{
		Username:  identity.Username,
		AvatarURL: identity.AvatarURL,
	}
	return c.SendEmbed(ctx, endpoint, payload, []File{file})
}

func (c *Client) post(ctx context.Context, endpoint, contentType string, body io.Reader, files int) error {
	deliveryID := uuid.New().String()
	lg := c.logger.With(zap.String(logger.FieldDeliveryID, deliveryID))

	if err := c.wait(ctx); err != nil {
		return &DeliveryError{DeliveryID: deliveryID, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return &DeliveryError{DeliveryID: deliveryID, Err: errors.Wrap(err, "create request")}
	}
	req.Header.Set("Content-Type", contentType)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		lg.Warn("webhook request failed", zap.Error(err))
		return &DeliveryError{DeliveryID: deliveryID, Err: errors.Wrap(err, "send request")}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		lg.Warn("webhook rejected request",
			zap.Int(logger.FieldStatus, resp.StatusCode),
			zap.Duration(logger.FieldDuration, time.Since(start)))
		return newStatusError(deliveryID, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	lg.Debug("webhook delivered",
		zap.Int(logger.FieldStatus, resp.StatusCode),
		zap.Int(logger.FieldFiles, files),
		zap.Duration(logger.FieldDuration, time.Since(start)))
	return nil
}

// wait blocks until the token bucket allows one more request or ctx is done.
func (c *Client) wait(ctx context.Context) error {
	if c.bucket == nil {
		return ctx.Err()
	}
	d := c.bucket.Take(1)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func buildMultipart(payloadJSON []byte, files []File) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for i, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files[%d]"; filename="%s"`, i, quoteEscaper.Replace(f.Name)))
		h.Set("Content-Type", mimetype.Detect(f.Data).String())
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", errors.Wrap(err, "create file part")
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", errors.Wrap(err, "write file part")
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="payload_json"`)
	h.Set("Content-Type", "application/json")
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", errors.Wrap(err, "create payload part")
	}
	if _, err := part.Write(payloadJSON); err != nil {
		return nil, "", errors.Wrap(err, "write payload part")
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "close multipart writer")
	}
	return buf, w.FormDataContentType(), nil
}
