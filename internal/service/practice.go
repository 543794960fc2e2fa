package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nexthire/internal/completion"
	"nexthire/internal/database"
	"nexthire/internal/metrics"
	"nexthire/internal/model"

	"go.uber.org/zap"
)

// DefaultRole 未指定職缺時使用
const DefaultRole = "SDE"

const (
	questionSystem = "You are an expert technical interviewer. Generate a challenging interview question."
	evaluateSystem = "You are an expert interviewer. Evaluate the candidate's answer."
	mcqSystem      = "You are an expert technical interviewer. Generate an MCQ question."
)

type Practice struct {
	db      database.DB
	gateway completion.Gateway
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewPractice(db database.DB, gateway completion.Gateway, m *metrics.Metrics, log *zap.Logger) *Practice {
	return &Practice{db: db, gateway: gateway, metrics: m, log: log}
}

func roleOrDefault(role string) (string, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return DefaultRole, nil
	}
	if len(role) > 50 {
		return "", validationError("role must be at most 50 characters")
	}
	return role, nil
}

func (p *Practice) complete(ctx context.Context, op string, pr completion.Prompt) (string, error) {
	text, err := p.gateway.Complete(completion.WithOperation(ctx, op), pr)
	if errors.Is(err, completion.ErrNotConfigured) {
		return "", &Error{Kind: KindUpstreamConfig, Message: "completion service is not configured", Err: err}
	}
	if err != nil {
		p.log.Warn("completion failed", zap.String("operation", op), zap.Error(err))
		return "", &Error{Kind: KindUpstream, Message: fmt.Sprintf("completion service failed: %v", err), Err: err}
	}
	return text, nil
}

// GenerateQuestion 產生一題中等難度的面試題
func (p *Practice) GenerateQuestion(ctx context.Context, role string) (question, usedRole string, err error) {
	usedRole, err = roleOrDefault(role)
	if err != nil {
		return "", "", err
	}
	question, err = p.complete(ctx, "question", completion.Prompt{
		System: questionSystem,
		User:   fmt.Sprintf("Generate a medium-level interview question for a %s role.", usedRole),
	})
	if err != nil {
		return "", "", err
	}
	return question, usedRole, nil
}

// EvaluateAnswer 評分成功後才寫入作答紀錄；寫入失敗時回傳 StorageError
func (p *Practice) EvaluateAnswer(ctx context.Context, userID int, question, answer, role string) (string, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return "", validationError("question and answer are required")
	}
	role, err := roleOrDefault(role)
	if err != nil {
		return "", err
	}

	feedback, err := p.complete(ctx, "evaluate", completion.Prompt{
		System: evaluateSystem,
		User:   fmt.Sprintf("Question: %s\nAnswer: %s\nRole: %s\n\nProvide feedback and a score out of 10.", question, answer, role),
	})
	if err != nil {
		return "", err
	}

	r := &model.Response{
		Question: question,
		Answer:   answer,
		Feedback: feedback,
		Role:     role,
		UserID:   &userID,
	}
	if err := createResponse(ctx, p.db, r); err != nil {
		p.log.Error("response not recorded",
			zap.Int("user_id", userID),
			zap.Int("feedback_len", len(feedback)),
			zap.Error(err),
		)
		return "", storageError(err)
	}
	if p.metrics != nil {
		p.metrics.ResponsesRecorded.Inc()
	}
	return feedback, nil
}

// GenerateMCQ 回傳模型產生的原始文字，不解析成結構化題目
func (p *Practice) GenerateMCQ(ctx context.Context, role, topic string) (string, error) {
	role = strings.TrimSpace(role)
	topic = strings.TrimSpace(topic)
	if role == "" || topic == "" {
		return "", validationError("role and topic are required")
	}
	return p.complete(ctx, "mcq", completion.Prompt{
		System: mcqSystem,
		User:   fmt.Sprintf("Generate a challenging MCQ for %s role about %s. Include 4 options, correct answer, and explanation.", role, topic),
	})
}
