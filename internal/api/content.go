package api

// swagger:model api.TopicResponse
type TopicResponse struct {
	Title string   `json:"title" example:"Programming Fundamentals"`
	Items []string `json:"items"`
}

// swagger:model api.RoadmapResponse
type RoadmapResponse struct {
	ID          int                      `json:"id" example:"1"`
	Role        string                   `json:"role" example:"software-engineer"`
	Title       string                   `json:"title" example:"Software Engineering Career Path"`
	Description string                   `json:"description"`
	Topics      map[string]TopicResponse `json:"topics"`
	Resources   map[string][]string      `json:"resources"`
}

// MCQItem 列表不含正確答案與解析
// swagger:model api.MCQItem
type MCQItem struct {
	ID         int               `json:"id" example:"1"`
	Question   string            `json:"question" example:"What is the time complexity of binary search?"`
	Options    map[string]string `json:"options"`
	Topic      string            `json:"topic" example:"Algorithms"`
	Difficulty string            `json:"difficulty" example:"easy"`
}

// swagger:model api.MCQListResponse
type MCQListResponse struct {
	MCQs        []MCQItem `json:"mcqs"`
	Total       int       `json:"total" example:"11"`
	Pages       int       `json:"pages" example:"3"`
	CurrentPage int       `json:"current_page" example:"1"`
}

// swagger:model api.TopicsResponse
type TopicsResponse struct {
	Topics []string `json:"topics"`
}

// swagger:model api.CheckAnswerRequest
type CheckAnswerRequest struct {
	Answer string `json:"answer" validate:"required" example:"B"`
}

// swagger:model api.CheckAnswerResponse
type CheckAnswerResponse struct {
	Correct       bool   `json:"correct" example:"true"`
	CorrectAnswer string `json:"correct_answer" example:"B"`
	Explanation   string `json:"explanation"`
}
