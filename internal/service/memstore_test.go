package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"nexthire/internal/database"
	"nexthire/internal/model"
	"nexthire/internal/store"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// memStore 以記憶體模擬 store 層，保留排序與唯一性語意
type memStore struct {
	mu        sync.Mutex
	users     []model.User
	responses []model.Response
	roadmaps  []model.Roadmap
	mcqs      []model.MCQ
	clock     time.Time
	failWrite error
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func restoreStore() {
	getUserByID = store.GetUserByID
	getUserByEmail = store.GetUserByEmail
	createUser = store.CreateUser
	updateUserName = store.UpdateUserName
	updateUserPassword = store.UpdateUserPassword
	createResponse = store.CreateResponse
	countResponsesByRole = store.CountResponsesByRole
	recentResponses = store.RecentResponses
	listResponses = store.ListResponses
	getRoadmapByRole = store.GetRoadmapByRole
	listMCQs = store.ListMCQs
	listMCQTopics = store.ListMCQTopics
	getMCQByID = store.GetMCQByID
	hashPassword = HashPassword
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
}

func useMemStore(t *testing.T) *memStore {
	t.Helper()
	t.Cleanup(restoreStore)
	m := &memStore{clock: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}

	// bcrypt 最低成本，加快測試
	bcryptGenerateFromPassword = func(pw []byte, _ int) ([]byte, error) {
		return bcrypt.GenerateFromPassword(pw, bcrypt.MinCost)
	}

	getUserByID = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, u := range m.users {
			if u.ID == id {
				return &u, nil
			}
		}
		return nil, fmt.Errorf("GetUserByID: %w", store.ErrNotFound)
	}
	getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, u := range m.users {
			if u.Email == email {
				return &u, nil
			}
		}
		return nil, fmt.Errorf("GetUserByEmail: %w", store.ErrNotFound)
	}
	createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, existing := range m.users {
			if existing.Email == u.Email {
				return nil, fmt.Errorf("CreateUser: %w", store.ErrDuplicate)
			}
		}
		u.ID = len(m.users) + 1
		u.CreatedAt = m.tick()
		m.users = append(m.users, *u)
		return u, nil
	}
	updateUserName = func(_ context.Context, _ database.DB, id int, name string) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i := range m.users {
			if m.users[i].ID == id {
				m.users[i].Name = name
				u := m.users[i]
				return &u, nil
			}
		}
		return nil, fmt.Errorf("UpdateUserName: %w", store.ErrNotFound)
	}
	updateUserPassword = func(_ context.Context, _ database.DB, id int, hash string) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i := range m.users {
			if m.users[i].ID == id {
				m.users[i].PasswordHash = hash
				return nil
			}
		}
		return fmt.Errorf("UpdateUserPassword: %w", store.ErrNotFound)
	}
	createResponse = func(_ context.Context, _ database.DB, r *model.Response) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.failWrite != nil {
			return fmt.Errorf("CreateResponse: %w", m.failWrite)
		}
		r.ID = len(m.responses) + 1
		r.CreatedAt = m.tick()
		m.responses = append(m.responses, *r)
		return nil
	}
	countResponsesByRole = func(_ context.Context, _ database.DB, userID int) ([]model.RoleCount, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		counts := map[string]int{}
		for _, r := range m.responses {
			if r.UserID != nil && *r.UserID == userID {
				counts[r.Role]++
			}
		}
		stats := []model.RoleCount{}
		for role, n := range counts {
			stats = append(stats, model.RoleCount{Role: role, Count: n})
		}
		sort.Slice(stats, func(i, j int) bool { return stats[i].Role < stats[j].Role })
		return stats, nil
	}
	userResponses := func(userID int, role string) []model.Response {
		list := []model.Response{}
		for _, r := range m.responses {
			if r.UserID != nil && *r.UserID == userID && (role == "" || r.Role == role) {
				list = append(list, r)
			}
		}
		sort.SliceStable(list, func(i, j int) bool {
			if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
				return list[i].CreatedAt.After(list[j].CreatedAt)
			}
			return list[i].ID < list[j].ID
		})
		return list
	}
	recentResponses = func(_ context.Context, _ database.DB, userID, limit int) ([]model.Response, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		return window(userResponses(userID, ""), limit, 0), nil
	}
	listResponses = func(_ context.Context, _ database.DB, userID int, role string, limit, offset int) ([]model.Response, int, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		all := userResponses(userID, role)
		return window(all, limit, offset), len(all), nil
	}
	getRoadmapByRole = func(_ context.Context, _ database.DB, role string) (*model.Roadmap, error) {
		for _, r := range m.roadmaps {
			if r.Role == role {
				return &r, nil
			}
		}
		return nil, fmt.Errorf("GetRoadmapByRole: %w", store.ErrNotFound)
	}
	filterMCQs := func(f store.MCQFilter) []model.MCQ {
		list := []model.MCQ{}
		for _, q := range m.mcqs {
			if q.Role == f.Role && (f.Topic == "" || q.Topic == f.Topic) && (f.Difficulty == "" || q.Difficulty == f.Difficulty) {
				list = append(list, q)
			}
		}
		return list
	}
	listMCQs = func(_ context.Context, _ database.DB, f store.MCQFilter, limit, offset int) ([]model.MCQ, int, error) {
		all := filterMCQs(f)
		return window(all, limit, offset), len(all), nil
	}
	listMCQTopics = func(_ context.Context, _ database.DB, role string) ([]string, error) {
		seen := map[string]bool{}
		topics := []string{}
		for _, q := range filterMCQs(store.MCQFilter{Role: role}) {
			if !seen[q.Topic] {
				seen[q.Topic] = true
				topics = append(topics, q.Topic)
			}
		}
		sort.Strings(topics)
		return topics, nil
	}
	getMCQByID = func(_ context.Context, _ database.DB, id int) (*model.MCQ, error) {
		for _, q := range m.mcqs {
			if q.ID == id {
				return &q, nil
			}
		}
		return nil, fmt.Errorf("GetMCQByID: %w", store.ErrNotFound)
	}
	return m
}

func window[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := min(offset+limit, len(all))
	return all[offset:end]
}

// seedMCQs 建立 n 題 software-engineer 題目，主題與難度輪流分配
func (m *memStore) seedMCQs(n int) {
	topics := []string{"Data Structures", "Algorithms", "System Design"}
	levels := []string{"easy", "medium", "hard"}
	for i := 1; i <= n; i++ {
		m.mcqs = append(m.mcqs, model.MCQ{
			ID:            i,
			Role:          "software-engineer",
			Question:      fmt.Sprintf("Question %d", i),
			Options:       model.OptionSet{"A": "a", "B": "b", "C": "c", "D": "d"},
			CorrectAnswer: "B",
			Explanation:   fmt.Sprintf("Because %d", i),
			Difficulty:    levels[i%len(levels)],
			Topic:         topics[i%len(topics)],
		})
	}
}

// fakeRevoker 記憶體版黑名單
type fakeRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func (f *fakeRevoker) Revoke(_ context.Context, jti string, exp time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.revoked == nil {
		f.revoked = map[string]time.Time{}
	}
	f.revoked[jti] = exp
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.revoked[jti]
	return ok, nil
}

func newTestAuth() (*Auth, *fakeRevoker) {
	r := &fakeRevoker{}
	return NewAuth(nil, NewTokens("test-secret", 24*time.Hour, r), zap.NewNop()), r
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	var se *Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *service.Error of kind %d, got %v", kind, err)
	}
	if se.Kind != kind {
		t.Fatalf("expected kind %d (%s), got %d (%s): %v", kind, kind.Code(), se.Kind, se.Kind.Code(), err)
	}
}
