package learning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Ayash-Bera/goai/backend/internal/prompt"
	"github.com/Ayash-Bera/goai/backend/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSystem(store storage.Store) *System {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s := NewSystem(store, logger)
	var n atomic.Int64
	s.newID = func() string { return fmt.Sprintf("example-%d", n.Add(1)) }
	s.now = func() time.Time { return fixedTime }
	return s
}

func record(t *testing.T, s *System, p string, lang prompt.Language, code string, quality int, tags ...string) string {
	t.Helper()
	id, err := s.RecordExample(context.Background(), NewExample{
		Prompt:   p,
		Language: lang,
		Code:     code,
		Quality:  quality,
		Tags:     tags,
	})
	require.NoError(t, err)
	return id
}

type failingStore struct{}

func (failingStore) Load(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) Save(ctx context.Context, key string, data []byte) error {
	return errors.New("connection refused")
}

func TestExtractPatterns(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) []string
		in   string
		want []string
	}{
		{"basic css", ExtractCodePatterns, "display: grid; transition: all .2s", []string{"css:grid", "css:animations"}},
		{"basic js", ExtractCodePatterns, "btn.addEventListener('click', () => fetch('/api'))", []string{"js:events", "js:api"}},
		{"prompt is case-insensitive", ExtractPromptPatterns, "Landing page MODERNO e responsivo", []string{"prompt:landing", "prompt:responsive", "prompt:modern"}},
		{"structure", ExtractStructurePatterns, `interface Props {}; const [a] = useState(); useEffect(() => {})`, []string{"react:hooks-pattern", "typescript:props-interface"}},
		{"design", ExtractDesignPatterns, `className="rounded-lg shadow-md hover:bg-blue focus:ring"`, []string{"design:modern-card", "design:interactive"}},
		{"performance", ExtractPerformancePatterns, "const v = useMemo(() => x, [])", []string{"performance:optimization"}},
		{"nothing", ExtractPatterns, "plain text", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestTierOf(t *testing.T) {
	tier, ok := TierOf("css:grid")
	assert.True(t, ok)
	assert.Equal(t, TierBasic, tier)

	tier, ok = TierOf("performance:lazy-loading")
	assert.True(t, ok)
	assert.Equal(t, TierPerformance, tier)

	_, ok = TierOf("unknown")
	assert.False(t, ok)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("landing page padaria", "Landing Page Padaria"))
	assert.Equal(t, 0.0, Similarity("landing page", "dashboard financeiro"))
	assert.Equal(t, 0.0, Similarity("", "   "))
	assert.InDelta(t, 1.0/3.0, Similarity("a a b", "a c"), 1e-9)
	assert.Equal(t, 1.0, Similarity("a a a", "a"))

	pairs := [][2]string{
		{"a a b", "a c"},
		{"landing page para padaria", "landing page para café"},
		{"site site site loja", "loja site"},
	}
	for _, p := range pairs {
		ab, ba := Similarity(p[0], p[1]), Similarity(p[1], p[0])
		assert.Equal(t, ab, ba, "similarity should be symmetric for %q", p)
		assert.GreaterOrEqual(t, ab, 0.0)
		assert.LessOrEqual(t, ab, 1.0)
	}
}

func TestRecordExample_RejectsInvalidQuality(t *testing.T) {
	s := newTestSystem(storage.NewMemoryStore())

	for _, q := range []int{0, 11, -3} {
		_, err := s.RecordExample(context.Background(), NewExample{Prompt: "x", Language: prompt.LanguageHTML, Code: "y", Quality: q})
		assert.ErrorIs(t, err, ErrInvalidQuality)
	}
	assert.Empty(t, s.Examples())
}

func TestRecordExample_BasicPatternKeepsFirstSuccessRate(t *testing.T) {
	s := newTestSystem(storage.NewMemoryStore())

	id1 := record(t, s, "x", prompt.LanguageHTML, "display: grid", 8)
	id2 := record(t, s, "y", prompt.LanguageHTML, "grid-template: auto", 4)

	p, ok := s.Pattern("css:grid")
	require.True(t, ok)
	assert.Equal(t, 2, p.Frequency)
	assert.InDelta(t, 0.8, p.SuccessRate, 1e-9)
	assert.Equal(t, []string{id1, id2}, p.Examples)
	assert.Empty(t, p.BestPractices)
}

func TestRecordExample_AdvancedPatternAveragesSuccessRate(t *testing.T) {
	s := newTestSystem(storage.NewMemoryStore())
	code := "const [open, setOpen] = useState(false); useEffect(() => {}, [])"

	record(t, s, "x", prompt.LanguageReact, code, 8)
	p, ok := s.Pattern("react:hooks-pattern")
	require.True(t, ok)
	assert.Equal(t, 1, p.Frequency)
	assert.InDelta(t, 0.8, p.SuccessRate, 1e-9)
	assert.Empty(t, p.Examples)
	assert.Equal(t, []string{"Use useState for local state", "Use useEffect for side effects"}, p.BestPractices)

	record(t, s, "y", prompt.LanguageReact, code, 4)
	p, _ = s.Pattern("react:hooks-pattern")
	assert.Equal(t, 2, p.Frequency)
	assert.InDelta(t, 0.6, p.SuccessRate, 1e-9)
	assert.Empty(t, p.Examples)
}

func TestRecordExample_PromptPatterns(t *testing.T) {
	s := newTestSystem(storage.NewMemoryStore())
	id := record(t, s, "Landing page moderna para padaria", prompt.LanguageHTML, "<p>oi</p>", 7)

	p, ok := s.Pattern("prompt:landing")
	require.True(t, ok)
	assert.Equal(t, []string{id}, p.Examples)
	assert.InDelta(t, 0.7, p.SuccessRate, 1e-9)
}

func TestRecordExample_PatternOrderIsFirstSeen(t *testing.T) {
	s := newTestSystem(storage.NewMemoryStore())
	record(t, s, "landing", prompt.LanguageHTML, "transition: all; className=\"flex\"", 6)
	record(t, s, "x", prompt.LanguageHTML, "display: grid", 6)

	var tags []string
	for _, p := range s.Patterns() {
		tags = append(tags, p.Pattern)
	}
	assert.Equal(t, []string{"css:animations", "prompt:landing", "css:flexbox-layout", "css:grid"}, tags)
}

func TestFindSimilarExamples(t *testing.T) {
	s := newTestSystem(storage.NewMemoryStore())
	record(t, s, "landing page para padaria", prompt.LanguageHTML, "<div></div>", 5, "hero", "cta")
	record(t, s, "landing page para café", prompt.LanguageHTML, "<div></div>", 9, "cta", "footer")
	record(t, s, "landing page para padaria", prompt.LanguageReact, "<div/>", 10)

	found := s.FindSimilarExamples("landing page para padaria", prompt.LanguageHTML, 5)
	require.Len(t, found, 2)
	assert.Equal(t, 9, found[0].Quality)
	assert.Equal(t, 5, found[1].Quality)

	limited := s.FindSimilarExamples("landing page para padaria", prompt.LanguageHTML, 1)
	require.Len(t, limited, 1)
	assert.Equal(t, 9, limited[0].Quality)

	assert.Empty(t, s.FindSimilarExamples("dashboard financeiro", prompt.LanguageHTML, 5))
	assert.Empty(t, s.FindSimilarExamples("landing page para padaria", prompt.LanguageVue, 5))
}

func TestGenerateImprovedPrompt(t *testing.T) {
	s := newTestSystem(storage.NewMemoryStore())
	practices := strings.Join(BestPracticesForLanguage(prompt.LanguageHTML), "\n")

	assert.Equal(t,
		"landing page para padaria\n\nIDENTIFIED BEST PRACTICES:\n"+practices,
		s.GenerateImprovedPrompt("landing page para padaria", prompt.LanguageHTML))

	record(t, s, "landing page para padaria", prompt.LanguageHTML, "<div></div>", 5, "hero", "cta")
	record(t, s, "landing page para café", prompt.LanguageHTML, "<div></div>", 9, "cta", "footer")

	assert.Equal(t,
		"landing page para padaria\n\nCONTEXT FROM BEST EXAMPLES:\n- cta\n- footer\n- hero\n\nIDENTIFIED BEST PRACTICES:\n"+practices,
		s.GenerateImprovedPrompt("landing page para padaria", prompt.LanguageHTML))
}

func TestBestPracticesForLanguage_FallsBackToHTML(t *testing.T) {
	assert.Equal(t, BestPracticesForLanguage(prompt.LanguageHTML), BestPracticesForLanguage(prompt.LanguageVue))
	assert.NotEqual(t, BestPracticesForLanguage(prompt.LanguageHTML), BestPracticesForLanguage(prompt.LanguageReact))
}

func TestRelevantPatterns(t *testing.T) {
	s := newTestSystem(storage.NewMemoryStore())
	record(t, s, "x", prompt.LanguageReact, "useState(); useEffect();", 9)
	record(t, s, "x", prompt.LanguageHTML, "display: grid", 8)
	record(t, s, "x", prompt.LanguageHTML, "background: linear-gradient(red, blue)", 9)
	record(t, s, "x", prompt.LanguageHTML, "transition: opacity", 7)

	react := s.RelevantPatterns("app de tarefas", prompt.LanguageReact)
	require.Len(t, react, 1)
	assert.Equal(t, "react:hooks-pattern", react[0].Pattern)
	assert.Empty(t, s.RelevantPatterns("app de tarefas", prompt.LanguageHTML))

	design := s.RelevantPatterns("clean design", prompt.LanguageHTML)
	require.Len(t, design, 2)
	assert.Equal(t, "css:gradients", design[0].Pattern)
	assert.Equal(t, "css:grid", design[1].Pattern)
}

func TestGenerateIntelligentPrompt(t *testing.T) {
	s := newTestSystem(storage.NewMemoryStore())
	record(t, s, "x", prompt.LanguageReact, "useState(); useEffect();", 9)

	assert.Equal(t,
		"app\n\nAPPLY SUCCESSFUL PATTERNS:\n- react:hooks-pattern (90% success)",
		s.GenerateIntelligentPrompt("app", prompt.LanguageReact))
	assert.Equal(t, "app", s.GenerateIntelligentPrompt("app", prompt.LanguageHTML))

	guidance := s.Guidance("app", prompt.LanguageReact)
	assert.True(t, strings.HasPrefix(guidance, "\n\nIDENTIFIED BEST PRACTICES:\n"))
	assert.True(t, strings.HasSuffix(guidance, "- react:hooks-pattern (90% success)"))
}

func TestPersistence_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	s := newTestSystem(store)
	record(t, s, "landing page moderno", prompt.LanguageHTML, "display: grid", 8, "hero")
	record(t, s, "app", prompt.LanguageReact, "useState(); useEffect(); rounded-lg shadow-md", 6)

	reloaded := newTestSystem(store)
	require.NoError(t, reloaded.Load(ctx))

	assert.Equal(t, s.Examples(), reloaded.Examples())
	assert.Equal(t, s.Patterns(), reloaded.Patterns())
}

func TestPersistence_PatternsStoredAsPairs(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	s := newTestSystem(store)
	record(t, s, "x", prompt.LanguageHTML, "display: grid", 8)

	data, err := store.Load(ctx, storage.LearningDataKey)
	require.NoError(t, err)

	var doc struct {
		Examples []json.RawMessage   `json:"examples"`
		Patterns [][]json.RawMessage `json:"patterns"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Examples, 1)
	require.Len(t, doc.Patterns, 1)
	require.Len(t, doc.Patterns[0], 2)
	assert.JSONEq(t, `"css:grid"`, string(doc.Patterns[0][0]))
}

func TestLoad_ToleratesMissingAndCorruptData(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	s := newTestSystem(store)
	require.NoError(t, s.Load(ctx))
	assert.Empty(t, s.Examples())

	record(t, s, "x", prompt.LanguageHTML, "display: grid", 8)
	require.NoError(t, store.Save(ctx, storage.LearningDataKey, []byte("{not json")))

	require.NoError(t, s.Load(ctx))
	assert.Empty(t, s.Examples())
	assert.Empty(t, s.Patterns())
}

func TestStoreFailures(t *testing.T) {
	s := newTestSystem(failingStore{})

	assert.Error(t, s.Load(context.Background()))

	id, err := s.RecordExample(context.Background(), NewExample{Prompt: "x", Language: prompt.LanguageHTML, Code: "y", Quality: 5})
	assert.Error(t, err)
	assert.NotEmpty(t, id)
	assert.Len(t, s.Examples(), 1)
}

func TestRecordExample_Concurrent(t *testing.T) {
	store := storage.NewMemoryStore()
	s := newTestSystem(store)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.RecordExample(context.Background(), NewExample{Prompt: "x", Language: prompt.LanguageHTML, Code: "display: grid", Quality: 7})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, s.Examples(), 20)
	p, ok := s.Pattern("css:grid")
	require.True(t, ok)
	assert.Equal(t, 20, p.Frequency)
	assert.Len(t, p.Examples, 20)

	reloaded := newTestSystem(store)
	require.NoError(t, reloaded.Load(context.Background()))
	assert.Len(t, reloaded.Examples(), 20)
	rp, ok := reloaded.Pattern("css:grid")
	require.True(t, ok)
	assert.Equal(t, 20, rp.Frequency)
}

// slowFirstSaveStore holds its first Save until release is closed.
type slowFirstSaveStore struct {
	*storage.MemoryStore
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (s *slowFirstSaveStore) Save(ctx context.Context, key string, data []byte) error {
	first := false
	s.once.Do(func() { first = true })
	if first {
		close(s.entered)
		<-s.release
	}
	return s.MemoryStore.Save(ctx, key, data)
}

func TestRecordExample_SavesInOrder(t *testing.T) {
	store := &slowFirstSaveStore{
		MemoryStore: storage.NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	s := newTestSystem(store)
	ex := NewExample{Prompt: "x", Language: prompt.LanguageHTML, Code: "y", Quality: 5}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := s.RecordExample(context.Background(), ex)
		assert.NoError(t, err)
	}()
	<-store.entered

	go func() {
		defer wg.Done()
		_, err := s.RecordExample(context.Background(), ex)
		assert.NoError(t, err)
	}()
	time.Sleep(50 * time.Millisecond)
	close(store.release)
	wg.Wait()

	reloaded := newTestSystem(store.MemoryStore)
	require.NoError(t, reloaded.Load(context.Background()))
	assert.Len(t, reloaded.Examples(), 2)
}
