package service

import (
	"context"
	"errors"
	"strings"

	"nexthire/internal/database"
	"nexthire/internal/model"
	"nexthire/internal/store"
)

type Content struct {
	db database.DB
}

func NewContent(db database.DB) *Content {
	return &Content{db: db}
}

func (c *Content) GetRoadmap(ctx context.Context, role string) (*model.Roadmap, error) {
	r, err := getRoadmapByRole(ctx, c.db, role)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("roadmap not found", err)
	}
	if err != nil {
		return nil, storageError(err)
	}
	return r, nil
}

// MCQQuery Topic 與 Difficulty 為空時不過濾
type MCQQuery struct {
	Role       string
	Topic      string
	Difficulty string
	Page       int
	PerPage    int
}

type MCQPage struct {
	Items []model.MCQ
	Pagination
}

func (c *Content) ListMCQs(ctx context.Context, q MCQQuery) (*MCQPage, error) {
	if err := checkPaging(q.Page, q.PerPage); err != nil {
		return nil, err
	}
	items, total, err := listMCQs(ctx, c.db, store.MCQFilter{
		Role:       q.Role,
		Topic:      q.Topic,
		Difficulty: q.Difficulty,
	}, q.PerPage, offset(q.Page, q.PerPage))
	if err != nil {
		return nil, storageError(err)
	}
	return &MCQPage{Items: items, Pagination: paginate(total, q.Page, q.PerPage)}, nil
}

// ListMCQTopics 依字母排序
func (c *Content) ListMCQTopics(ctx context.Context, role string) ([]string, error) {
	topics, err := listMCQTopics(ctx, c.db, role)
	if err != nil {
		return nil, storageError(err)
	}
	return topics, nil
}

// CheckResult 不論對錯都揭露正確答案與解析
type CheckResult struct {
	Correct       bool
	CorrectAnswer string
	Explanation   string
}

func (c *Content) CheckMCQAnswer(ctx context.Context, mcqID int, answer string) (*CheckResult, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, validationError("answer is required")
	}
	m, err := getMCQByID(ctx, c.db, mcqID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("mcq not found", err)
	}
	if err != nil {
		return nil, storageError(err)
	}
	return &CheckResult{
		Correct:       m.IsCorrect(answer),
		CorrectAnswer: m.CorrectAnswer,
		Explanation:   m.Explanation,
	}, nil
}
