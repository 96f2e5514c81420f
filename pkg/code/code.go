package code

import (
	"fmt"
	"strings"
)

// Code is a user-facing notice: a numeric id, a success flag and a bilingual message.
// Code 面向用户的提示码
type Code struct {
	// 状态码
	code int
	// 状态
	status bool
	// 提示消息
	Lang lang
	// 消息格式化参数
	args []any
	// 错误详细信息
	details []string
	// 是否含有详情
	haveDetails bool
	context     string
	// 是否含有Context
	haveContext bool
}

var codes = map[int]string{}

func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: false, Lang: l}
}

var sussCodes = map[int]string{}

func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()
	return &Code{code: code, status: true, Lang: l}
}

// Clone 创建一个新的 Code 副本，不带参数、详情与上下文
func (e *Code) Clone() *Code {
	return &Code{
		code:    e.code,
		status:  e.status,
		Lang:    e.Lang,
		details: []string{},
	}
}

func (e *Code) Error() string {
	if e.haveDetails && len(e.details) > 0 {
		return e.Msg() + ": " + strings.Join(e.details, "; ")
	}
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

// Msg returns the message in the global language with any arguments applied.
func (e *Code) Msg() string {
	msg := e.Lang.GetMessage()
	if len(e.args) > 0 {
		return fmt.Sprintf(msg, e.args...)
	}
	return msg
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Context() string {
	return e.context
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveContext() bool {
	return e.haveContext
}

// The With* methods return a modified copy; the package-level codes are shared
// between goroutines and are never mutated.

// WithArgs 设置消息格式化参数
func (e *Code) WithArgs(args ...any) *Code {
	c := e.copy()
	c.args = append([]any(nil), args...)
	return c
}

func (e *Code) WithDetails(details ...string) *Code {
	c := e.copy()
	c.haveDetails = true
	c.details = append([]string{}, details...)
	return c
}

func (e *Code) WithContext(context string) *Code {
	c := e.copy()
	c.haveContext = true
	c.context = context
	return c
}

func (e *Code) copy() *Code {
	c := *e
	return &c
}
