package discord

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// ErrPayloadTooLarge Discord 拒绝了过大的请求体（HTTP 413）
var ErrPayloadTooLarge = errors.New("request entity too large")

const tooLargeMarker = "request entity too large"

// DeliveryError describes one failed webhook request.
// StatusCode is 0 when the request never got a response.
// DeliveryError 一次失败的 webhook 请求
type DeliveryError struct {
	DeliveryID string
	StatusCode int
	Body       string
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "delivery failed"
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

func newStatusError(id string, status int, body string) *DeliveryError {
	e := &DeliveryError{DeliveryID: id, StatusCode: status, Body: body}
	if status == http.StatusRequestEntityTooLarge || strings.Contains(strings.ToLower(body), tooLargeMarker) {
		e.Err = ErrPayloadTooLarge
	}
	return e
}

// IsPayloadTooLarge reports whether err means the request was rejected for its size:
// HTTP 413, or a body / message containing "request entity too large".
// IsPayloadTooLarge 判断是否为请求体过大
func IsPayloadTooLarge(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrPayloadTooLarge) {
		return true
	}
	var de *DeliveryError
	if errors.As(err, &de) && de.StatusCode == http.StatusRequestEntityTooLarge {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), tooLargeMarker)
}

// DeliveryIDOf returns the delivery id carried by err, if any.
func DeliveryIDOf(err error) string {
	var de *DeliveryError
	if errors.As(err, &de) {
		return de.DeliveryID
	}
	return ""
}
