package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Topic struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type Roadmap struct {
	ID          int                 `db:"id" json:"id"`
	Role        string              `db:"role" json:"role"`
	Title       string              `db:"title" json:"title"`
	Description string              `db:"description" json:"description"`
	Topics      map[string]Topic    `db:"topics" json:"topics"`
	Resources   map[string][]string `db:"resources" json:"resources"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
}

func (r *Roadmap) Validate() error {
	if strings.TrimSpace(r.Role) == "" {
		return errors.New("roadmap role is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("roadmap title is required")
	}
	if len(r.Topics) == 0 {
		return fmt.Errorf("roadmap %q has no topics", r.Role)
	}
	for key, t := range r.Topics {
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("roadmap %q topic %q has no title", r.Role, key)
		}
	}
	return nil
}
