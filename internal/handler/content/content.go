package content

import (
	"context"
	"net/http"
	"strconv"

	"nexthire/internal/api"
	"nexthire/internal/handler"
	"nexthire/internal/model"
	"nexthire/internal/service"

	"github.com/labstack/echo/v4"
)

// Service 由 service.Content 實作
type Service interface {
	GetRoadmap(ctx context.Context, role string) (*model.Roadmap, error)
	ListMCQs(ctx context.Context, q service.MCQQuery) (*service.MCQPage, error)
	ListMCQTopics(ctx context.Context, role string) ([]string, error)
	CheckMCQAnswer(ctx context.Context, mcqID int, answer string) (*service.CheckResult, error)
}

func roadmapView(r *model.Roadmap) api.RoadmapResponse {
	topics := make(map[string]api.TopicResponse, len(r.Topics))
	for key, t := range r.Topics {
		items := t.Items
		if items == nil {
			items = []string{}
		}
		topics[key] = api.TopicResponse{Title: t.Title, Items: items}
	}
	return api.RoadmapResponse{
		ID:          r.ID,
		Role:        r.Role,
		Title:       r.Title,
		Description: r.Description,
		Topics:      topics,
		Resources:   r.Resources,
	}
}

// RoadmapHandler
// @Summary  Get roadmap
// @Tags     roadmap
// @Produce  json
// @Param    role path     string true "職缺" example(software-engineer)
// @Success  200  {object} api.RoadmapResponse
// @Failure  404  {object} api.ErrorResponse
// @Failure  500  {object} api.ErrorResponse
// @Router   /roadmap/{role} [get]
func RoadmapHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		r, err := svc.GetRoadmap(c.Request().Context(), c.Param("role"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, roadmapView(r))
	}
}

// ListMCQsHandler 分頁列出題目，不含正確答案
// @Summary  List MCQs
// @Tags     mcq
// @Produce  json
// @Param    role       path     string true  "職缺"
// @Param    page       query    int    false "頁碼"     default(1)
// @Param    per_page   query    int    false "每頁筆數" default(10)
// @Param    topic      query    string false "主題"
// @Param    difficulty query    string false "難度"
// @Success  200        {object} api.MCQListResponse
// @Failure  400        {object} api.ErrorResponse
// @Failure  500        {object} api.ErrorResponse
// @Router   /mcq/{role} [get]
func ListMCQsHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, perPage, err := handler.PageParams(c)
		if err != nil {
			return err
		}
		res, err := svc.ListMCQs(c.Request().Context(), service.MCQQuery{
			Role:       c.Param("role"),
			Topic:      c.QueryParam("topic"),
			Difficulty: c.QueryParam("difficulty"),
			Page:       page,
			PerPage:    perPage,
		})
		if err != nil {
			return err
		}
		items, err := handler.CopyList[api.MCQItem](res.Items)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.MCQListResponse{
			MCQs:        items,
			Total:       res.Total,
			Pages:       res.Pages,
			CurrentPage: res.CurrentPage,
		})
	}
}

// TopicsHandler
// @Summary  List MCQ topics
// @Tags     mcq
// @Produce  json
// @Param    role path     string true "職缺"
// @Success  200  {object} api.TopicsResponse
// @Failure  500  {object} api.ErrorResponse
// @Router   /mcq/{role}/topics [get]
func TopicsHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		topics, err := svc.ListMCQTopics(c.Request().Context(), c.Param("role"))
		if err != nil {
			return err
		}
		if topics == nil {
			topics = []string{}
		}
		return c.JSON(http.StatusOK, api.TopicsResponse{Topics: topics})
	}
}

// CheckHandler 檢查作答並揭露正確答案
// @Summary  Check MCQ answer
// @Tags     mcq
// @Accept   json
// @Produce  json
// @Param    id   path     int                    true "題目 ID"
// @Param    body body     api.CheckAnswerRequest true "作答字母"
// @Success  200  {object} api.CheckAnswerResponse
// @Failure  400  {object} api.ErrorResponse
// @Failure  401  {object} api.ErrorResponse
// @Failure  404  {object} api.ErrorResponse
// @Security ApiKeyAuth
// @Router   /mcq/check/{id} [post]
func CheckHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			return &service.Error{Kind: service.KindNotFound, Message: "mcq not found", Err: err}
		}
		var req api.CheckAnswerRequest
		if err := handler.Bind(c, &req); err != nil {
			return err
		}
		res, err := svc.CheckMCQAnswer(c.Request().Context(), id, req.Answer)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.CheckAnswerResponse{
			Correct:       res.Correct,
			CorrectAnswer: res.CorrectAnswer,
			Explanation:   res.Explanation,
		})
	}
}
