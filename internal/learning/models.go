package learning

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ayash-Bera/goai/backend/internal/prompt"
)

// CodeExample is a rated (prompt, code) sample.
type CodeExample struct {
	ID         string            `json:"id"`
	Prompt     string            `json:"prompt"`
	Language   prompt.Language   `json:"language"`
	Complexity prompt.Complexity `json:"complexity"`
	Code       string            `json:"code"`
	Quality    int               `json:"quality"`
	Feedback   []string          `json:"feedback"`
	Tags       []string          `json:"tags"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// NewExample is the caller-supplied part of a CodeExample.
type NewExample struct {
	Prompt     string            `json:"prompt" yaml:"prompt" binding:"required"`
	Language   prompt.Language   `json:"language" yaml:"language" binding:"required"`
	Complexity prompt.Complexity `json:"complexity" yaml:"complexity"`
	Code       string            `json:"code" yaml:"code" binding:"required"`
	Quality    int               `json:"quality" yaml:"quality" binding:"required,min=1,max=10"`
	Feedback   []string          `json:"feedback" yaml:"feedback"`
	Tags       []string          `json:"tags" yaml:"tags"`
}

// PatternData aggregates every observation of one pattern tag.
type PatternData struct {
	Pattern       string   `json:"pattern"`
	Frequency     int      `json:"frequency"`
	SuccessRate   float64  `json:"successRate"`
	Examples      []string `json:"examples"`
	BestPractices []string `json:"bestPractices"`
}

func (p PatternData) clone() PatternData {
	p.Examples = append([]string(nil), p.Examples...)
	p.BestPractices = append([]string(nil), p.BestPractices...)
	return p
}

// document is the persisted form: patterns are kept as ordered [key, value]
// pairs so the map and its insertion order can be rebuilt.
type document struct {
	Examples []CodeExample  `json:"examples"`
	Patterns []patternEntry `json:"patterns"`
}

type patternEntry struct {
	Key  string
	Data PatternData
}

func (e patternEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Key, e.Data})
}

func (e *patternEntry) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("pattern entry must have 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Key); err != nil {
		return fmt.Errorf("pattern key: %w", err)
	}
	if err := json.Unmarshal(pair[1], &e.Data); err != nil {
		return fmt.Errorf("pattern %s: %w", e.Key, err)
	}
	return nil
}
