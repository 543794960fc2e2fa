package store

import (
	"context"

	"nexthire/internal/database"
	"nexthire/internal/model"
)

// GetRoadmapByRole role 完全相符；同 role 多筆時取最早建立者
func GetRoadmapByRole(ctx context.Context, db database.DB, role string) (*model.Roadmap, error) {
	r := &model.Roadmap{}
	if err := db.QueryRow(ctx,
		`SELECT id, role, title, description, topics, resources, created_at
		 FROM roadmaps
		 WHERE role = $1
		 ORDER BY id
		 LIMIT 1`,
		role,
	).Scan(
		&r.ID,
		&r.Role,
		&r.Title,
		&r.Description,
		&r.Topics,
		&r.Resources,
		&r.CreatedAt,
	); err != nil {
		return nil, wrap("GetRoadmapByRole", err)
	}
	return r, nil
}

// CreateRoadmap 寫入前先驗證結構
func CreateRoadmap(ctx context.Context, db database.DB, r *model.Roadmap) error {
	if err := r.Validate(); err != nil {
		return wrap("CreateRoadmap", err)
	}
	var resources any
	if len(r.Resources) > 0 {
		resources = r.Resources
	}
	if err := db.QueryRow(ctx,
		`INSERT INTO roadmaps (role, title, description, topics, resources)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		r.Role,
		r.Title,
		r.Description,
		r.Topics,
		resources,
	).Scan(&r.ID, &r.CreatedAt); err != nil {
		return wrap("CreateRoadmap", err)
	}
	return nil
}
