package completion

import (
	"context"
	"time"

	"nexthire/internal/metrics"
	"nexthire/internal/worker"
)

// Pooled 讓所有生成請求經過固定大小的 worker pool，限制對上游的並行數
type Pooled struct {
	next    Gateway
	pool    worker.Pool
	timeout time.Duration
	metrics *metrics.Metrics
}

// NewPooled timeout 為 0 表示不設逾時；m 可為 nil
func NewPooled(next Gateway, pool worker.Pool, timeout time.Duration, m *metrics.Metrics) *Pooled {
	return &Pooled{next: next, pool: pool, timeout: timeout, metrics: m}
}

type result struct {
	text string
	err  error
}

// Complete 的 operation 標籤取自 context，見 WithOperation
func (p *Pooled) Complete(ctx context.Context, pr Prompt) (string, error) {
	start := time.Now()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	done := make(chan result, 1)
	err := p.pool.SubmitContext(ctx, func() {
		text, err := p.next.Complete(ctx, pr)
		done <- result{text: text, err: err}
	})
	if err != nil {
		p.metrics.ObserveCompletion(operation(ctx), start, err)
		return "", err
	}

	select {
	case r := <-done:
		p.metrics.ObserveCompletion(operation(ctx), start, r.err)
		return r.text, r.err
	case <-ctx.Done():
		p.metrics.ObserveCompletion(operation(ctx), start, ctx.Err())
		return "", ctx.Err()
	}
}

type operationKey struct{}

// WithOperation 標記本次生成的用途 (question, evaluate, mcq)，僅用於 metrics
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

func operation(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey{}).(string); ok && op != "" {
		return op
	}
	return "unknown"
}
