package api

import "time"

// swagger:model api.RoleStat
type RoleStat struct {
	Role  string `json:"role" example:"SDE"`
	Count int    `json:"count" example:"3"`
}

// swagger:model api.RecentActivity
type RecentActivity struct {
	ID        int       `json:"id" example:"12"`
	Question  string    `json:"question"`
	Role      string    `json:"role" example:"SDE"`
	CreatedAt time.Time `json:"created_at"`
}

// swagger:model api.StatsResponse
type StatsResponse struct {
	TotalResponses int              `json:"total_responses" example:"3"`
	RoleStats      []RoleStat       `json:"role_stats"`
	RecentActivity []RecentActivity `json:"recent_activity"`
}

// swagger:model api.ResponseItem
type ResponseItem struct {
	ID        int       `json:"id" example:"12"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Feedback  string    `json:"feedback"`
	Role      string    `json:"role" example:"SDE"`
	CreatedAt time.Time `json:"created_at"`
}

// swagger:model api.ResponsesResponse
type ResponsesResponse struct {
	Responses   []ResponseItem `json:"responses"`
	Total       int            `json:"total" example:"12"`
	Pages       int            `json:"pages" example:"2"`
	CurrentPage int            `json:"current_page" example:"1"`
}

// swagger:model api.UserDetail
type UserDetail struct {
	ID         int       `json:"id" example:"1"`
	Name       string    `json:"name" example:"Ann"`
	Email      string    `json:"email" example:"ann@example.com"`
	JoinedDate time.Time `json:"joined_date"`
}

// swagger:model api.RecentResponse
type RecentResponse struct {
	Question  string    `json:"question"`
	Role      string    `json:"role" example:"SDE"`
	CreatedAt time.Time `json:"created_at"`
}

// swagger:model api.DetailStats
type DetailStats struct {
	TotalResponses  int              `json:"total_responses" example:"3"`
	RolesPracticed  []RoleStat       `json:"roles_practiced"`
	LatestPractice  *time.Time       `json:"latest_practice"`
	RecentResponses []RecentResponse `json:"recent_responses"`
}

// swagger:model api.UserDetailsResponse
type UserDetailsResponse struct {
	User  UserDetail  `json:"user"`
	Stats DetailStats `json:"stats"`
}

// swagger:model api.HealthResponse
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Timestamp time.Time `json:"timestamp"`
}
