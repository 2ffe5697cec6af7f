// Package learning records rated code examples, tracks the patterns they
// exhibit and uses both to enrich new generation prompts.
package learning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Ayash-Bera/goai/backend/internal/prompt"
	"github.com/Ayash-Bera/goai/backend/internal/storage"
	"github.com/Ayash-Bera/goai/backend/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	DefaultSimilarLimit   = 5
	improvementLimit      = 3
	relevantSuccessRate   = 0.7
	relevantPatternsLimit = 5
)

var ErrInvalidQuality = errors.New("quality must be an integer between 1 and 10")

// System owns the example repository and the pattern store.
type System struct {
	mu       sync.RWMutex
	saveMu   sync.Mutex // orders snapshot and store write
	examples []CodeExample
	patterns map[string]*PatternData
	order    []string

	store  storage.Store
	logger *logrus.Logger
	newID  func() string
	now    func() time.Time
}

func NewSystem(store storage.Store, logger *logrus.Logger) *System {
	return &System{
		patterns: make(map[string]*PatternData),
		store:    store,
		logger:   logger,
		newID:    func() string { return utils.NewID("example") },
		now:      time.Now,
	}
}

// Load replaces the in-memory state with the persisted document. A missing or
// corrupt document leaves the system empty and is not an error.
func (s *System) Load(ctx context.Context) error {
	data, err := s.store.Load(ctx, storage.LearningDataKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("No stored learning data, starting empty")
			return nil
		}
		return fmt.Errorf("failed to load learning data: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.WithError(err).Warn("Stored learning data is corrupt, starting empty")
		return nil
	}

	s.examples = doc.Examples
	for _, entry := range doc.Patterns {
		if _, dup := s.patterns[entry.Key]; dup {
			continue
		}
		p := entry.Data
		s.patterns[entry.Key] = &p
		s.order = append(s.order, entry.Key)
	}

	s.logger.WithFields(logrus.Fields{
		"examples": len(s.examples),
		"patterns": len(s.order),
	}).Info("Learning data loaded")

	return nil
}

// Save writes the examples and patterns as a single document.
func (s *System) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	data, err := s.marshalLocked()
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return s.store.Save(ctx, storage.LearningDataKey, data)
}

func (s *System) reset() {
	s.examples = nil
	s.patterns = make(map[string]*PatternData)
	s.order = nil
}

func (s *System) marshalLocked() ([]byte, error) {
	doc := document{
		Examples: s.examples,
		Patterns: make([]patternEntry, 0, len(s.order)),
	}
	if doc.Examples == nil {
		doc.Examples = []CodeExample{}
	}
	for _, key := range s.order {
		doc.Patterns = append(doc.Patterns, patternEntry{Key: key, Data: *s.patterns[key]})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal learning data: %w", err)
	}
	return data, nil
}

// RecordExample stores a rated example, updates the pattern store and
// persists both. The id is returned even when persistence fails.
func (s *System) RecordExample(ctx context.Context, in NewExample) (string, error) {
	if in.Quality < 1 || in.Quality > 10 {
		return "", ErrInvalidQuality
	}

	now := s.now().UTC()
	example := CodeExample{
		ID:         s.newID(),
		Prompt:     in.Prompt,
		Language:   in.Language,
		Complexity: in.Complexity,
		Code:       in.Code,
		Quality:    in.Quality,
		Feedback:   append([]string(nil), in.Feedback...),
		Tags:       append([]string(nil), in.Tags...),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	s.examples = append(s.examples, example)
	s.analyzePatterns(example)
	data, err := s.marshalLocked()
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"example_id": example.ID,
		"language":   example.Language,
		"quality":    example.Quality,
	}).Info("Example recorded")

	if err != nil {
		return example.ID, err
	}
	if err := s.store.Save(ctx, storage.LearningDataKey, data); err != nil {
		return example.ID, fmt.Errorf("failed to persist learning data: %w", err)
	}
	return example.ID, nil
}

func (s *System) analyzePatterns(example CodeExample) {
	basic := append(ExtractCodePatterns(example.Code), ExtractPromptPatterns(example.Prompt)...)
	for _, tag := range basic {
		s.observeBasic(tag, example)
	}

	for _, tag := range ExtractAdvancedPatterns(example.Code) {
		s.observeAdvanced(tag, example.Quality)
	}
}

// observeBasic keeps the success rate from the first observation.
func (s *System) observeBasic(tag string, example CodeExample) {
	if existing, ok := s.patterns[tag]; ok {
		existing.Frequency++
		existing.Examples = append(existing.Examples, example.ID)
		return
	}
	s.insert(&PatternData{
		Pattern:       tag,
		Frequency:     1,
		SuccessRate:   float64(example.Quality) / 10,
		Examples:      []string{example.ID},
		BestPractices: []string{},
	})
}

// observeAdvanced moves the success rate halfway towards the new quality and
// does not track example ids.
func (s *System) observeAdvanced(tag string, quality int) {
	if existing, ok := s.patterns[tag]; ok {
		existing.Frequency++
		existing.SuccessRate = (existing.SuccessRate + float64(quality)/10) / 2
		return
	}
	s.insert(&PatternData{
		Pattern:       tag,
		Frequency:     1,
		SuccessRate:   float64(quality) / 10,
		Examples:      []string{},
		BestPractices: bestPracticesForPattern(tag),
	})
}

func (s *System) insert(p *PatternData) {
	s.patterns[p.Pattern] = p
	s.order = append(s.order, p.Pattern)
}

// Examples returns the repository in insertion order.
func (s *System) Examples() []CodeExample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CodeExample(nil), s.examples...)
}

// Patterns returns the pattern store in first-seen order.
func (s *System) Patterns() []PatternData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]PatternData, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.patterns[key].clone())
	}
	return out
}

func (s *System) Pattern(tag string) (PatternData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.patterns[tag]
	if !ok {
		return PatternData{}, false
	}
	return p.clone(), true
}

// FindSimilarExamples returns up to limit examples for language whose prompt
// similarity exceeds SimilarityThreshold, best quality first.
func (s *System) FindSimilarExamples(userPrompt string, lang prompt.Language, limit int) []CodeExample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findSimilarLocked(userPrompt, lang, limit)
}

func (s *System) findSimilarLocked(userPrompt string, lang prompt.Language, limit int) []CodeExample {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	var matches []CodeExample
	for _, ex := range s.examples {
		if ex.Language != lang {
			continue
		}
		if Similarity(userPrompt, ex.Prompt) > SimilarityThreshold {
			matches = append(matches, ex)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Quality > matches[j].Quality
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// GenerateImprovedPrompt appends the tags of the best similar examples and the
// language's best practices to the prompt.
func (s *System) GenerateImprovedPrompt(userPrompt string, lang prompt.Language) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return userPrompt + s.improvementBlocksLocked(userPrompt, lang)
}

// GenerateIntelligentPrompt appends the relevant high-success patterns to the prompt.
func (s *System) GenerateIntelligentPrompt(userPrompt string, lang prompt.Language) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return userPrompt + patternBlock(s.relevantPatternsLocked(userPrompt, lang))
}

// Guidance is the text both prompt builders would append, without the prompt itself.
func (s *System) Guidance(userPrompt string, lang prompt.Language) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.improvementBlocksLocked(userPrompt, lang) + patternBlock(s.relevantPatternsLocked(userPrompt, lang))
}

func (s *System) improvementBlocksLocked(userPrompt string, lang prompt.Language) string {
	var b strings.Builder

	similar := s.findSimilarLocked(userPrompt, lang, improvementLimit)
	if len(similar) > 0 {
		seen := make(map[string]bool)
		var tags []string
		for _, ex := range similar {
			for _, tag := range ex.Tags {
				if !seen[tag] {
					seen[tag] = true
					tags = append(tags, tag)
				}
			}
		}
		b.WriteString("\n\nCONTEXT FROM BEST EXAMPLES:\n")
		b.WriteString(bulletList(tags))
	}

	b.WriteString("\n\nIDENTIFIED BEST PRACTICES:\n")
	b.WriteString(strings.Join(BestPracticesForLanguage(lang), "\n"))
	return b.String()
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func patternBlock(patterns []PatternData) string {
	if len(patterns) == 0 {
		return ""
	}
	lines := make([]string, len(patterns))
	for i, p := range patterns {
		lines[i] = fmt.Sprintf("- %s (%d%% success)", p.Pattern, int(math.Round(p.SuccessRate*100)))
	}
	return "\n\nAPPLY SUCCESSFUL PATTERNS:\n" + strings.Join(lines, "\n")
}

// RelevantPatterns returns up to five patterns above the success cut-off that
// apply to the prompt and language, highest success rate first.
func (s *System) RelevantPatterns(userPrompt string, lang prompt.Language) []PatternData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.relevantPatternsLocked(userPrompt, lang)
}

func (s *System) relevantPatternsLocked(userPrompt string, lang prompt.Language) []PatternData {
	var out []PatternData
	for _, key := range s.order {
		p := s.patterns[key]
		if p.SuccessRate > relevantSuccessRate && isPatternRelevant(p.Pattern, userPrompt, lang) {
			out = append(out, p.clone())
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SuccessRate > out[j].SuccessRate
	})

	if len(out) > relevantPatternsLimit {
		out = out[:relevantPatternsLimit]
	}
	return out
}

func isPatternRelevant(tag, userPrompt string, lang prompt.Language) bool {
	lower := strings.ToLower(userPrompt)

	if strings.Contains(tag, "react") && (lang == prompt.LanguageReact || lang == prompt.LanguageNextJS) {
		return true
	}
	if strings.Contains(tag, "css") && strings.Contains(lower, "design") {
		return true
	}
	if strings.Contains(tag, "performance") && strings.Contains(lower, "rápido") {
		return true
	}
	return false
}
