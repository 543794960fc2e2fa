package api

// swagger:model api.QuestionResponse
type QuestionResponse struct {
	Question string `json:"question" example:"Explain how a hash map handles collisions."`
	Role     string `json:"role" example:"SDE"`
}

// swagger:model api.EvaluateRequest
type EvaluateRequest struct {
	Question string `json:"question" validate:"required" example:"Explain how a hash map handles collisions."`
	Answer   string `json:"answer" validate:"required" example:"By chaining entries in buckets..."`
	Role     string `json:"role" example:"SDE"`
}

// swagger:model api.EvaluateResponse
type EvaluateResponse struct {
	Feedback string `json:"feedback" example:"Good explanation of chaining. Score: 7/10"`
}

// swagger:model api.GenerateMCQRequest
type GenerateMCQRequest struct {
	Role  string `json:"role" validate:"required" example:"software-engineer"`
	Topic string `json:"topic" validate:"required" example:"Algorithms"`
}

// GeneratedMCQResponse 模型產生的原始文字
// swagger:model api.GeneratedMCQResponse
type GeneratedMCQResponse struct {
	Question string `json:"question" example:"Which sorting algorithm...\nA) ...\nB) ..."`
}
