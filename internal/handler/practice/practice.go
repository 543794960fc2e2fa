package practice

import (
	"context"
	"net/http"

	"nexthire/internal/api"
	"nexthire/internal/handler"
	"nexthire/internal/middleware"

	"github.com/labstack/echo/v4"
)

// Service 由 service.Practice 實作
type Service interface {
	GenerateQuestion(ctx context.Context, role string) (question, usedRole string, err error)
	EvaluateAnswer(ctx context.Context, userID int, question, answer, role string) (string, error)
	GenerateMCQ(ctx context.Context, role, topic string) (string, error)
}

// QuestionHandler 產生一題面試題，不需登入
// @Summary     Generate interview question
// @Description role 省略時為 SDE
// @Tags        practice
// @Produce     json
// @Param       role query    string false "職缺" default(SDE)
// @Success     200  {object} api.QuestionResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /questions [get]
func QuestionHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		q, role, err := svc.GenerateQuestion(c.Request().Context(), c.QueryParam("role"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.QuestionResponse{Question: q, Role: role})
	}
}

// EvaluateHandler 評分並記錄作答
// @Summary  Evaluate answer
// @Tags     practice
// @Accept   json
// @Produce  json
// @Param    body body     api.EvaluateRequest true "題目與作答"
// @Success  200  {object} api.EvaluateResponse
// @Failure  400  {object} api.ErrorResponse
// @Failure  401  {object} api.ErrorResponse
// @Failure  500  {object} api.ErrorResponse
// @Security ApiKeyAuth
// @Router   /evaluate [post]
func EvaluateHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.EvaluateRequest
		if err := handler.Bind(c, &req); err != nil {
			return err
		}
		feedback, err := svc.EvaluateAnswer(c.Request().Context(), middleware.ClaimsFrom(c).UserID, req.Question, req.Answer, req.Role)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.EvaluateResponse{Feedback: feedback})
	}
}

// GenerateMCQHandler
// @Summary     Generate MCQ
// @Description 回傳模型產生的原始文字
// @Tags        mcq
// @Accept      json
// @Produce     json
// @Param       body body     api.GenerateMCQRequest true "職缺與主題"
// @Success     200  {object} api.GeneratedMCQResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /mcq/generate [post]
func GenerateMCQHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.GenerateMCQRequest
		if err := handler.Bind(c, &req); err != nil {
			return err
		}
		text, err := svc.GenerateMCQ(c.Request().Context(), req.Role, req.Topic)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.GeneratedMCQResponse{Question: text})
	}
}
