// Package generator runs a prompt through classification, enhancement and a
// generation provider, falling back to a static project when the provider
// cannot deliver files.
package generator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Ayash-Bera/goai/backend/internal/gemini"
	"github.com/Ayash-Bera/goai/backend/internal/metrics"
	"github.com/Ayash-Bera/goai/backend/internal/prompt"
	"github.com/Ayash-Bera/goai/backend/pkg/utils"
	"github.com/sirupsen/logrus"
)

const MethodFallback = "fallback"

var ErrEmptyPrompt = errors.New("prompt is required")

// Guide supplies learned context to append to the enhanced prompt.
type Guide interface {
	Guidance(userPrompt string, lang prompt.Language) string
}

// ResultCache is satisfied by database.Cache.
type ResultCache interface {
	CacheGeneration(ctx context.Context, promptKey string, result interface{}, expiration time.Duration) error
	GetCachedGeneration(ctx context.Context, promptKey string, result interface{}) error
}

type Options struct {
	UseLearning bool
	CacheTTL    time.Duration
}

type Result struct {
	Files          []File                `json:"files"`
	Classification prompt.Classification `json:"classification"`
	Method         string                `json:"method"`
	EnhancedPrompt string                `json:"-"`
	Cached         bool                  `json:"cached"`
}

// outcome is what a provider call produced: files or the reason there are none.
type outcome struct {
	files []File
	err   error
}

type Service struct {
	provider Provider
	guide    Guide
	cache    ResultCache
	opts     Options
	metrics  *metrics.Metrics
	logger   *logrus.Logger
}

// NewService wires a generator. provider, guide and cache may each be nil.
func NewService(provider Provider, guide Guide, cache ResultCache, opts Options, logger *logrus.Logger) *Service {
	return &Service{
		provider: provider,
		guide:    guide,
		cache:    cache,
		opts:     opts,
		metrics:  metrics.NewMetrics(),
		logger:   logger,
	}
}

// ProviderName is the configured provider's method name, or "" without one.
func (s *Service) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// Generate always yields files for a non-empty prompt; provider failures
// select the fallback project.
func (s *Service) Generate(ctx context.Context, userPrompt string) (*Result, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return nil, ErrEmptyPrompt
	}

	start := time.Now()
	classification := prompt.Classify(userPrompt)
	guidance := s.guidance(userPrompt, classification.Language)
	enhanced := prompt.Enhance(userPrompt, classification) + guidance

	log := s.logger.WithFields(logrus.Fields{
		"language":   classification.Language,
		"complexity": classification.Complexity,
	})

	if s.provider == nil {
		log.Warn("No generation provider configured, using fallback")
		return s.fallback(userPrompt, classification, enhanced, start)
	}

	key := cacheKey(userPrompt, guidance)
	if cached, ok := s.lookup(ctx, key); ok {
		log.Debug("Serving generation from cache")
		return cached, nil
	}

	out := s.call(ctx, enhanced)
	if out.err != nil {
		log.WithError(out.err).Warn("Generation provider failed, using fallback")
		s.metrics.ProviderErrors.WithLabelValues(s.provider.Name(), errorType(out.err)).Inc()
		return s.fallback(userPrompt, classification, enhanced, start)
	}

	result := &Result{
		Files:          out.files,
		Classification: classification,
		Method:         s.provider.Name(),
		EnhancedPrompt: enhanced,
	}
	s.store(ctx, key, result)
	s.observe(result, start)

	log.WithFields(logrus.Fields{
		"method": result.Method,
		"files":  len(result.Files),
	}).Info("Project generated")

	return result, nil
}

// BuildPrompt is the enhanced instruction text plus learned guidance when enabled.
func (s *Service) BuildPrompt(userPrompt string, c prompt.Classification) string {
	return prompt.Enhance(userPrompt, c) + s.guidance(userPrompt, c.Language)
}

func (s *Service) guidance(userPrompt string, lang prompt.Language) string {
	if !s.opts.UseLearning || s.guide == nil {
		return ""
	}
	return s.guide.Guidance(userPrompt, lang)
}

// cacheKey changes whenever the learned guidance does, so newly recorded
// examples are not hidden behind an older cached result.
func cacheKey(userPrompt, guidance string) string {
	key := utils.PromptKey(userPrompt)
	if guidance == "" {
		return key
	}
	return key + ":" + utils.MD5Hash(guidance)
}

func (s *Service) call(ctx context.Context, enhanced string) outcome {
	text, err := s.provider.Generate(ctx, enhanced)
	if err != nil {
		return outcome{err: err}
	}
	files, err := ParseFiles(text)
	return outcome{files: files, err: err}
}

func (s *Service) fallback(userPrompt string, c prompt.Classification, enhanced string, start time.Time) (*Result, error) {
	files, err := FallbackProject(userPrompt)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Files:          files,
		Classification: c,
		Method:         MethodFallback,
		EnhancedPrompt: enhanced,
	}
	s.observe(result, start)
	return result, nil
}

func (s *Service) lookup(ctx context.Context, key string) (*Result, bool) {
	if s.cache == nil {
		return nil, false
	}

	var cached Result
	if err := s.cache.GetCachedGeneration(ctx, key, &cached); err != nil {
		s.metrics.CacheMisses.Inc()
		return nil, false
	}

	s.metrics.CacheHits.Inc()
	cached.Cached = true
	return &cached, true
}

func (s *Service) store(ctx context.Context, key string, result *Result) {
	if s.cache == nil || s.opts.CacheTTL <= 0 {
		return
	}
	if err := s.cache.CacheGeneration(ctx, key, result, s.opts.CacheTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to cache generation result")
	}
}

func (s *Service) observe(result *Result, start time.Time) {
	s.metrics.GenerationsTotal.WithLabelValues(result.Method, string(result.Classification.Language)).Inc()
	s.metrics.GenerationDuration.WithLabelValues(result.Method).Observe(time.Since(start).Seconds())
}

func errorType(err error) string {
	var apiErr *gemini.APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Retryable() {
			return "upstream_unavailable"
		}
		return "upstream_rejected"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	case errors.Is(err, ErrNoFiles):
		return "no_files"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, gemini.ErrEmptyResponse), errors.Is(err, ErrEmptyCompletion):
		return "empty"
	default:
		return "transport"
	}
}
