package errors

import (
	"errors"
	"time"

	"github.com/haierkeys/note-discord-share/pkg/code"
)

// AppError 统一应用错误结构体
// 包含提示码、消息、详情、投递ID和时间戳
type AppError struct {
	// Code 错误码
	Code int `json:"code"`
	// Message 面向用户的提示消息
	Message string `json:"message"`
	// Details 错误详情（可选）
	Details []string `json:"details,omitempty"`
	// Context 提示所属的对象，例如 webhook 名称
	Context string `json:"context,omitempty"`
	// DeliveryID 对应的投递ID，便于在日志中定位
	DeliveryID string `json:"deliveryId,omitempty"`
	// Cause 原始错误（不序列化到JSON）
	Cause error `json:"-"`
	// Timestamp 错误发生时间
	Timestamp time.Time `json:"timestamp"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap 实现 errors.Unwrap 接口，支持错误链路追踪
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 从 Code 对象创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c.Code(),
		Message:   c.Msg(),
		Details:   c.Details(),
		Context:   c.Context(),
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// WithDeliveryID 设置投递ID并返回自身（链式调用）
func (e *AppError) WithDeliveryID(id string) *AppError {
	e.DeliveryID = id
	return e
}

// WithDetails 设置详情并返回自身（链式调用）
func (e *AppError) WithDetails(details ...string) *AppError {
	e.Details = details
	return e
}

// FromError converts any error into an AppError.
// AppError and *code.Code are kept; anything else becomes code.Failed with the error as cause.
// FromError 将任意错误转换为 AppError
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		return NewAppError(codeErr, err)
	}

	return NewAppError(code.Failed, err).WithDetails(err.Error())
}

// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 从错误链中获取 AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
