package service

import (
	"context"
	"time"

	"nexthire/internal/database"
	"nexthire/internal/model"
)

const recentLimit = 5

type Dashboard struct {
	db   database.DB
	auth *Auth
}

func NewDashboard(db database.DB, auth *Auth) *Dashboard {
	return &Dashboard{db: db, auth: auth}
}

type Stats struct {
	TotalResponses int
	RoleStats      []model.RoleCount
	RecentActivity []model.Response
}

func sumCounts(stats []model.RoleCount) int {
	total := 0
	for _, rc := range stats {
		total += rc.Count
	}
	return total
}

// Stats TotalResponses 由分組加總而來，兩者必然一致
func (d *Dashboard) Stats(ctx context.Context, userID int) (*Stats, error) {
	roleStats, err := countResponsesByRole(ctx, d.db, userID)
	if err != nil {
		return nil, storageError(err)
	}
	recent, err := recentResponses(ctx, d.db, userID, recentLimit)
	if err != nil {
		return nil, storageError(err)
	}
	return &Stats{
		TotalResponses: sumCounts(roleStats),
		RoleStats:      roleStats,
		RecentActivity: recent,
	}, nil
}

type ResponsePage struct {
	Items []model.Response
	Pagination
}

// Responses role 為空時列出全部
func (d *Dashboard) Responses(ctx context.Context, userID int, role string, page, perPage int) (*ResponsePage, error) {
	if err := checkPaging(page, perPage); err != nil {
		return nil, err
	}
	items, total, err := listResponses(ctx, d.db, userID, role, perPage, offset(page, perPage))
	if err != nil {
		return nil, storageError(err)
	}
	return &ResponsePage{Items: items, Pagination: paginate(total, page, perPage)}, nil
}

type UserDetails struct {
	User           *model.User
	TotalResponses int
	RolesPracticed []model.RoleCount
	LatestPractice *time.Time
	Recent         []model.Response
}

func (d *Dashboard) UserDetails(ctx context.Context, userID int) (*UserDetails, error) {
	u, err := d.auth.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := d.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := &UserDetails{
		User:           u,
		TotalResponses: stats.TotalResponses,
		RolesPracticed: stats.RoleStats,
		Recent:         stats.RecentActivity,
	}
	if len(stats.RecentActivity) > 0 {
		latest := stats.RecentActivity[0].CreatedAt
		details.LatestPractice = &latest
	}
	return details, nil
}
