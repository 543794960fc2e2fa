package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nexthire/internal/api"
	"nexthire/internal/middleware"
	"nexthire/internal/model"
	"nexthire/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type testValidator struct{ v *validator.Validate }

func (tv *testValidator) Validate(i any) error { return tv.v.Struct(i) }

type fakeService struct {
	roadmaps map[string]*model.Roadmap
	mcqs     []model.MCQ
	topics   []string
	lastQ    service.MCQQuery
}

func (f *fakeService) GetRoadmap(_ context.Context, role string) (*model.Roadmap, error) {
	r, ok := f.roadmaps[role]
	if !ok {
		return nil, &service.Error{Kind: service.KindNotFound, Message: "roadmap not found"}
	}
	return r, nil
}

func (f *fakeService) ListMCQs(_ context.Context, q service.MCQQuery) (*service.MCQPage, error) {
	f.lastQ = q
	if q.Page < 1 || q.PerPage < 1 {
		return nil, &service.Error{Kind: service.KindValidation, Message: "page and per_page must be positive"}
	}
	start := min((q.Page-1)*q.PerPage, len(f.mcqs))
	end := min(start+q.PerPage, len(f.mcqs))
	pages := (len(f.mcqs) + q.PerPage - 1) / q.PerPage
	return &service.MCQPage{
		Items:      f.mcqs[start:end],
		Pagination: service.Pagination{Total: len(f.mcqs), Pages: pages, CurrentPage: q.Page},
	}, nil
}

func (f *fakeService) ListMCQTopics(context.Context, string) ([]string, error) {
	return f.topics, nil
}

func (f *fakeService) CheckMCQAnswer(_ context.Context, id int, answer string) (*service.CheckResult, error) {
	for _, m := range f.mcqs {
		if m.ID == id {
			return &service.CheckResult{Correct: m.IsCorrect(answer), CorrectAnswer: m.CorrectAnswer, Explanation: m.Explanation}, nil
		}
	}
	return nil, &service.Error{Kind: service.KindNotFound, Message: "mcq not found"}
}

func newCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sampleMCQs() []model.MCQ {
	var out []model.MCQ
	for i := 1; i <= 11; i++ {
		out = append(out, model.MCQ{
			ID:            i,
			Role:          "software-engineer",
			Question:      "Q" + string(rune('A'+i-1)),
			Options:       model.OptionSet{"A": "a", "B": "b"},
			CorrectAnswer: "B",
			Explanation:   "because",
			Topic:         "Algorithms",
			Difficulty:    "easy",
		})
	}
	return out
}

func TestRoadmapHandler(t *testing.T) {
	svc := &fakeService{roadmaps: map[string]*model.Roadmap{
		"software-engineer": {
			ID:    1,
			Role:  "software-engineer",
			Title: "Software Engineering Career Path",
			Topics: map[string]model.Topic{
				"fundamentals": {Title: "Programming Fundamentals", Items: []string{"Data Structures"}},
				"empty":        {Title: "Empty"},
			},
			Resources: map[string][]string{"books": {"Clean Code"}},
		},
	}}

	c, rec := newCtx(http.MethodGet, "/", "")
	c.SetParamNames("role")
	c.SetParamValues("software-engineer")
	require.NoError(t, RoadmapHandler(svc)(c))

	var got api.RoadmapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Software Engineering Career Path", got.Title)
	require.Equal(t, []string{"Data Structures"}, got.Topics["fundamentals"].Items)
	require.Equal(t, []string{}, got.Topics["empty"].Items)
	require.Equal(t, []string{"Clean Code"}, got.Resources["books"])

	c, _ = newCtx(http.MethodGet, "/", "")
	c.SetParamNames("role")
	c.SetParamValues("astronaut")
	status, body := middleware.Render(RoadmapHandler(svc)(c))
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "roadmap not found", body.Message)
}

func TestListMCQsHandler(t *testing.T) {
	svc := &fakeService{mcqs: sampleMCQs()}

	c, rec := newCtx(http.MethodGet, "/?page=2&per_page=5&topic=Algorithms&difficulty=easy", "")
	c.SetParamNames("role")
	c.SetParamValues("software-engineer")
	require.NoError(t, ListMCQsHandler(svc)(c))
	require.Equal(t, service.MCQQuery{Role: "software-engineer", Topic: "Algorithms", Difficulty: "easy", Page: 2, PerPage: 5}, svc.lastQ)

	var got api.MCQListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 11, got.Total)
	require.Equal(t, 3, got.Pages)
	require.Equal(t, 2, got.CurrentPage)
	require.Len(t, got.MCQs, 5)
	require.Equal(t, 6, got.MCQs[0].ID)
	require.NotContains(t, rec.Body.String(), "correct_answer")
	require.NotContains(t, rec.Body.String(), "because")

	// 超出範圍的頁面回傳空陣列
	c, rec = newCtx(http.MethodGet, "/?page=9", "")
	c.SetParamNames("role")
	c.SetParamValues("software-engineer")
	require.NoError(t, ListMCQsHandler(svc)(c))
	require.Contains(t, rec.Body.String(), `"mcqs":[]`)

	c, _ = newCtx(http.MethodGet, "/?per_page=abc", "")
	status, _ := middleware.Render(ListMCQsHandler(svc)(c))
	require.Equal(t, http.StatusBadRequest, status)
}

func TestTopicsHandler(t *testing.T) {
	c, rec := newCtx(http.MethodGet, "/", "")
	require.NoError(t, TopicsHandler(&fakeService{topics: []string{"Algorithms", "Go"}})(c))
	require.JSONEq(t, `{"topics":["Algorithms","Go"]}`, rec.Body.String())

	c, rec = newCtx(http.MethodGet, "/", "")
	require.NoError(t, TopicsHandler(&fakeService{})(c))
	require.JSONEq(t, `{"topics":[]}`, rec.Body.String())
}

func TestCheckHandler(t *testing.T) {
	svc := &fakeService{mcqs: sampleMCQs()}
	check := func(id, body string) (echo.Context, *httptest.ResponseRecorder) {
		c, rec := newCtx(http.MethodPost, "/", body)
		c.SetParamNames("id")
		c.SetParamValues(id)
		return c, rec
	}

	c, rec := check("3", `{"answer":"b"}`)
	require.NoError(t, CheckHandler(svc)(c))
	require.JSONEq(t, `{"correct":true,"correct_answer":"B","explanation":"because"}`, rec.Body.String())

	c, rec = check("3", `{"answer":"A"}`)
	require.NoError(t, CheckHandler(svc)(c))
	require.JSONEq(t, `{"correct":false,"correct_answer":"B","explanation":"because"}`, rec.Body.String())

	for _, id := range []string{"99", "abc", "-1"} {
		c, _ = check(id, `{"answer":"A"}`)
		status, body := middleware.Render(CheckHandler(svc)(c))
		require.Equal(t, http.StatusNotFound, status, id)
		require.Equal(t, "mcq not found", body.Message)
	}

	c, _ = check("3", `{}`)
	status, _ := middleware.Render(CheckHandler(svc)(c))
	require.Equal(t, http.StatusBadRequest, status)
}
