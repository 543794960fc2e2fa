// Package seed 載入內建的學習路線與選擇題
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"nexthire/internal/database"
	"nexthire/internal/model"
	"nexthire/internal/store"

	"go.uber.org/zap"
)

//go:embed data.json
var defaultData []byte

var (
	getRoadmapByRole = store.GetRoadmapByRole
	createRoadmap    = store.CreateRoadmap
	listMCQs         = store.ListMCQs
	createMCQ        = store.CreateMCQ
)

// Data 一份種子資料
type Data struct {
	Roadmaps []model.Roadmap `json:"roadmaps"`
	MCQs     []model.MCQ     `json:"mcqs"`
}

// Result 寫入與略過的筆數
type Result struct {
	RoadmapsCreated int
	RoadmapsSkipped int
	MCQsCreated     int
	MCQsSkipped     int
}

// Parse 解析並驗證全部資料；任何一筆無效就整份拒絕
func Parse(raw []byte) (*Data, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var d Data
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	for i := range d.Roadmaps {
		if err := d.Roadmaps[i].Validate(); err != nil {
			return nil, fmt.Errorf("seed: roadmap %d: %w", i, err)
		}
	}
	for i := range d.MCQs {
		if err := d.MCQs[i].Validate(); err != nil {
			return nil, fmt.Errorf("seed: mcq %d: %w", i, err)
		}
	}
	return &d, nil
}

// Default 內建資料
func Default() (*Data, error) {
	return Parse(defaultData)
}

// Load 寫入資料。已有路線的職缺不再寫入路線；已有題目的職缺整批略過，重複執行不會產生重複資料
func Load(ctx context.Context, db database.DB, d *Data, log *zap.Logger) (*Result, error) {
	res := &Result{}

	for i := range d.Roadmaps {
		r := &d.Roadmaps[i]
		_, err := getRoadmapByRole(ctx, db, r.Role)
		switch {
		case err == nil:
			res.RoadmapsSkipped++
			log.Info("roadmap exists, skipped", zap.String("role", r.Role))
			continue
		case !errors.Is(err, store.ErrNotFound):
			return res, fmt.Errorf("Load: %w", err)
		}
		if err := createRoadmap(ctx, db, r); err != nil {
			return res, fmt.Errorf("Load: roadmap %q: %w", r.Role, err)
		}
		res.RoadmapsCreated++
	}

	seeded := map[string]bool{}
	for i := range d.MCQs {
		m := &d.MCQs[i]
		has, ok := seeded[m.Role]
		if !ok {
			_, total, err := listMCQs(ctx, db, store.MCQFilter{Role: m.Role}, 1, 0)
			if err != nil {
				return res, fmt.Errorf("Load: %w", err)
			}
			has = total > 0
			seeded[m.Role] = has
			if has {
				log.Info("mcqs exist, skipped", zap.String("role", m.Role), zap.Int("existing", total))
			}
		}
		if has {
			res.MCQsSkipped++
			continue
		}
		if err := createMCQ(ctx, db, m); err != nil {
			return res, fmt.Errorf("Load: mcq %d: %w", i, err)
		}
		res.MCQsCreated++
	}
	return res, nil
}
