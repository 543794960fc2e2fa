package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// OptionSet 選項字母 (A, B, C ...) 對應選項文字
type OptionSet map[string]string

// Letters 依字母排序回傳選項鍵
func (o OptionSet) Letters() []string {
	letters := make([]string, 0, len(o))
	for k := range o {
		letters = append(letters, k)
	}
	sort.Strings(letters)
	return letters
}

func (o OptionSet) Has(letter string) bool {
	_, ok := o[letter]
	return ok
}

func (o OptionSet) Validate() error {
	if len(o) < 2 {
		return errors.New("an MCQ needs at least two options")
	}
	for k, v := range o {
		if len(k) != 1 || k[0] < 'A' || k[0] > 'Z' {
			return fmt.Errorf("option key %q must be a single upper-case letter", k)
		}
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("option %s is empty", k)
		}
	}
	return nil
}

type MCQ struct {
	ID            int       `db:"id" json:"id"`
	Role          string    `db:"role" json:"role"`
	Question      string    `db:"question" json:"question"`
	Options       OptionSet `db:"options" json:"options"`
	CorrectAnswer string    `db:"correct_answer" json:"correct_answer"`
	Explanation   string    `db:"explanation" json:"explanation"`
	Difficulty    string    `db:"difficulty" json:"difficulty"`
	Topic         string    `db:"topic" json:"topic"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Validate 檢查必要欄位，且正確答案必須是選項之一
func (m *MCQ) Validate() error {
	switch {
	case strings.TrimSpace(m.Role) == "":
		return errors.New("mcq role is required")
	case strings.TrimSpace(m.Question) == "":
		return errors.New("mcq question is required")
	case strings.TrimSpace(m.Topic) == "":
		return errors.New("mcq topic is required")
	case strings.TrimSpace(m.Difficulty) == "":
		return errors.New("mcq difficulty is required")
	}
	if err := m.Options.Validate(); err != nil {
		return err
	}
	if !m.Options.Has(m.CorrectAnswer) {
		return fmt.Errorf("correct answer %q is not one of the options %v", m.CorrectAnswer, m.Options.Letters())
	}
	return nil
}

// IsCorrect 不分大小寫比對作答字母
func (m *MCQ) IsCorrect(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), m.CorrectAnswer)
}
