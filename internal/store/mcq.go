package store

import (
	"context"

	"nexthire/internal/database"
	"nexthire/internal/model"

	"github.com/jackc/pgx/v5"
)

// MCQFilter 空字串欄位表示不過濾
type MCQFilter struct {
	Role       string
	Topic      string
	Difficulty string
}

const mcqWhere = `WHERE role = $1
		   AND ($2::text = '' OR topic = $2)
		   AND ($3::text = '' OR difficulty = $3)`

// ListMCQs 依 id 排序回傳一頁題目與符合條件的總數；兩個查詢在同一個 snapshot 內執行
func ListMCQs(ctx context.Context, db database.DB, f MCQFilter, limit, offset int) ([]model.MCQ, int, error) {
	var (
		total int
		list  []model.MCQ
	)
	err := pgx.BeginTxFunc(ctx, db, snapshotTx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM mcqs `+mcqWhere,
			f.Role,
			f.Topic,
			f.Difficulty,
		).Scan(&total); err != nil {
			return err
		}

		rows, err := tx.Query(ctx,
			`SELECT id, role, question, options, correct_answer, COALESCE(explanation, ''), difficulty, topic, created_at
			 FROM mcqs `+mcqWhere+`
			 ORDER BY id
			 LIMIT $4 OFFSET $5`,
			f.Role,
			f.Topic,
			f.Difficulty,
			limit,
			offset,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		list = []model.MCQ{}
		for rows.Next() {
			var m model.MCQ
			if err := scanMCQ(rows, &m); err != nil {
				return err
			}
			list = append(list, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, wrap("ListMCQs", err)
	}
	return list, total, nil
}

func ListMCQTopics(ctx context.Context, db database.DB, role string) ([]string, error) {
	rows, err := db.Query(ctx,
		`SELECT DISTINCT topic FROM mcqs WHERE role = $1 ORDER BY topic`,
		role,
	)
	if err != nil {
		return nil, wrap("ListMCQTopics", err)
	}
	defer rows.Close()

	topics := []string{}
	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			return nil, wrap("ListMCQTopics", err)
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListMCQTopics", err)
	}
	return topics, nil
}

func GetMCQByID(ctx context.Context, db database.DB, id int) (*model.MCQ, error) {
	m := &model.MCQ{}
	if err := scanMCQ(db.QueryRow(ctx,
		`SELECT id, role, question, options, correct_answer, COALESCE(explanation, ''), difficulty, topic, created_at
		 FROM mcqs WHERE id = $1`,
		id,
	), m); err != nil {
		return nil, wrap("GetMCQByID", err)
	}
	return m, nil
}

// CreateMCQ 正確答案必須是選項之一，否則拒絕寫入
func CreateMCQ(ctx context.Context, db database.DB, m *model.MCQ) error {
	if err := m.Validate(); err != nil {
		return wrap("CreateMCQ", err)
	}
	if err := db.QueryRow(ctx,
		`INSERT INTO mcqs (role, question, options, correct_answer, explanation, difficulty, topic)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		 RETURNING id, created_at`,
		m.Role,
		m.Question,
		m.Options,
		m.CorrectAnswer,
		m.Explanation,
		m.Difficulty,
		m.Topic,
	).Scan(&m.ID, &m.CreatedAt); err != nil {
		return wrap("CreateMCQ", err)
	}
	return nil
}

func scanMCQ(row interface{ Scan(...any) error }, m *model.MCQ) error {
	return row.Scan(
		&m.ID,
		&m.Role,
		&m.Question,
		&m.Options,
		&m.CorrectAnswer,
		&m.Explanation,
		&m.Difficulty,
		&m.Topic,
		&m.CreatedAt,
	)
}
