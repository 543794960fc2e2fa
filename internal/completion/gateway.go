// Package completion 封裝外部文字生成服務 (OpenAI 相容 API 或 Gemini)
package completion

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrNotConfigured 未設定 API 金鑰
var ErrNotConfigured = errors.New("completion service credentials are not configured")

// Prompt 一次生成請求：系統指示與使用者訊息
type Prompt struct {
	System string
	User   string
}

// Gateway 給定 prompt 回傳生成文字
type Gateway interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

// redact 從錯誤訊息中移除金鑰
func redact(msg, secret string) string {
	if secret == "" {
		return msg
	}
	return strings.ReplaceAll(msg, secret, "[REDACTED]")
}

// redactedError 保留原錯誤鏈，但訊息中不含金鑰
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

func redactError(err error, secret string) error {
	if err == nil {
		return nil
	}
	msg := redact(err.Error(), secret)
	if msg == err.Error() {
		return err
	}
	return &redactedError{msg: msg, err: err}
}

// FakeGateway 測試用
type FakeGateway struct {
	CompleteFn func(ctx context.Context, p Prompt) (string, error)

	mu    sync.Mutex
	calls []Prompt
}

func (f *FakeGateway) Complete(ctx context.Context, p Prompt) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, p)
	f.mu.Unlock()
	if f.CompleteFn != nil {
		return f.CompleteFn(ctx, p)
	}
	panic("unexpected Complete")
}

// Calls 回傳目前為止收到的 prompt
func (f *FakeGateway) Calls() []Prompt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Prompt(nil), f.calls...)
}
