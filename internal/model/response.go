package model

import "time"

// Response 一次已評分的練習作答
type Response struct {
	ID        int       `db:"id" json:"id"`
	Question  string    `db:"question" json:"question"`
	Answer    string    `db:"answer" json:"answer"`
	Feedback  string    `db:"feedback" json:"feedback"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UserID    *int      `db:"user_id" json:"user_id,omitempty"`
}

// RoleCount 依職缺分組的作答次數
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}
