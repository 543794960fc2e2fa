package store

import (
	"context"

	"nexthire/internal/database"
	"nexthire/internal/model"

	"github.com/jackc/pgx/v5"
)

const responseColumns = `id, question, answer, feedback, role, created_at, user_id`

// CreateResponse 在單一交易內寫入作答紀錄，失敗時整筆回滾
func CreateResponse(ctx context.Context, db database.DB, r *model.Response) error {
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			`INSERT INTO responses (question, answer, feedback, role, user_id)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id, created_at`,
			r.Question,
			r.Answer,
			r.Feedback,
			r.Role,
			r.UserID,
		).Scan(&r.ID, &r.CreatedAt)
	})
	if err != nil {
		return wrap("CreateResponse", err)
	}
	return nil
}

// CountResponsesByRole 依 role 排序，確保輸出穩定
func CountResponsesByRole(ctx context.Context, db database.DB, userID int) ([]model.RoleCount, error) {
	rows, err := db.Query(ctx,
		`SELECT role, COUNT(*)
		 FROM responses
		 WHERE user_id = $1
		 GROUP BY role
		 ORDER BY role`,
		userID,
	)
	if err != nil {
		return nil, wrap("CountResponsesByRole", err)
	}
	defer rows.Close()

	stats := []model.RoleCount{}
	for rows.Next() {
		var rc model.RoleCount
		if err := rows.Scan(&rc.Role, &rc.Count); err != nil {
			return nil, wrap("CountResponsesByRole", err)
		}
		stats = append(stats, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("CountResponsesByRole", err)
	}
	return stats, nil
}

// ListResponses 回傳一頁作答紀錄 (新到舊，同時間以 id 小者在前) 與符合條件的總數；role 為空表示不過濾
func ListResponses(ctx context.Context, db database.DB, userID int, role string, limit, offset int) ([]model.Response, int, error) {
	var (
		total int
		list  []model.Response
	)
	err := pgx.BeginTxFunc(ctx, db, snapshotTx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM responses
			 WHERE user_id = $1 AND ($2::text = '' OR role = $2)`,
			userID,
			role,
		).Scan(&total); err != nil {
			return err
		}

		rows, err := tx.Query(ctx,
			`SELECT `+responseColumns+`
			 FROM responses
			 WHERE user_id = $1 AND ($2::text = '' OR role = $2)
			 ORDER BY created_at DESC, id ASC
			 LIMIT $3 OFFSET $4`,
			userID,
			role,
			limit,
			offset,
		)
		if err != nil {
			return err
		}
		list, err = collectResponses(rows)
		return err
	})
	if err != nil {
		return nil, 0, wrap("ListResponses", err)
	}
	return list, total, nil
}

// RecentResponses 最新的 limit 筆作答
func RecentResponses(ctx context.Context, db database.DB, userID int, limit int) ([]model.Response, error) {
	rows, err := db.Query(ctx,
		`SELECT `+responseColumns+`
		 FROM responses
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id ASC
		 LIMIT $2`,
		userID,
		limit,
	)
	if err != nil {
		return nil, wrap("RecentResponses", err)
	}
	list, err := collectResponses(rows)
	if err != nil {
		return nil, wrap("RecentResponses", err)
	}
	return list, nil
}

func collectResponses(rows pgx.Rows) ([]model.Response, error) {
	defer rows.Close()
	list := []model.Response{}
	for rows.Next() {
		var r model.Response
		if err := rows.Scan(
			&r.ID,
			&r.Question,
			&r.Answer,
			&r.Feedback,
			&r.Role,
			&r.CreatedAt,
			&r.UserID,
		); err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}
