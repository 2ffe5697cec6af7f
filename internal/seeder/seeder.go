// Package seeder bootstraps the example repository from a YAML file of rated
// examples or by crawling live pages.
package seeder

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Ayash-Bera/goai/backend/internal/learning"
	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const userAgent = "GoAI-Seeder/1.0"

// Recorder is satisfied by learning.System.
type Recorder interface {
	RecordExample(ctx context.Context, in learning.NewExample) (string, error)
}

type Options struct {
	DryRun     bool
	Limit      int
	Concurrent int
	Delay      time.Duration
	Timeout    time.Duration
}

// Report summarises a seeding run.
type Report struct {
	Recorded int
	Skipped  int
	Errors   []error
}

// ContentSeeder feeds examples into a Recorder
type ContentSeeder struct {
	processor *ContentProcessor
	recorder  Recorder
	opts      Options
	logger    *logrus.Logger

	mu     sync.Mutex
	report Report
}

func NewContentSeeder(recorder Recorder, opts Options, logger *logrus.Logger) *ContentSeeder {
	if opts.Concurrent <= 0 {
		opts.Concurrent = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return &ContentSeeder{
		processor: NewContentProcessor(),
		recorder:  recorder,
		opts:      opts,
		logger:    logger,
	}
}

type examplesFile struct {
	Examples []learning.NewExample `yaml:"examples"`
}

// LoadExamplesFile reads a YAML document with a top-level "examples" list.
func LoadExamplesFile(path string) ([]learning.NewExample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read examples file: %w", err)
	}

	var file examplesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse examples file: %w", err)
	}
	return file.Examples, nil
}

// SeedExamples records each example in order, honouring Limit and DryRun.
func (cs *ContentSeeder) SeedExamples(ctx context.Context, examples []learning.NewExample) Report {
	cs.reset()

	if cs.opts.Limit > 0 && cs.opts.Limit < len(examples) {
		examples = examples[:cs.opts.Limit]
		cs.logger.WithField("limit", cs.opts.Limit).Info("Limited examples to process")
	}

	for i, ex := range examples {
		cs.logger.WithFields(logrus.Fields{
			"language": ex.Language,
			"progress": fmt.Sprintf("%d/%d", i+1, len(examples)),
		}).Debug("Seeding example")

		cs.record(ctx, ex, fmt.Sprintf("example %d", i+1))
	}

	return cs.finish()
}

// CrawlPages fetches every URL, converts each page into a rated example and
// records it. Failed pages are collected in the report and do not stop the run.
func (cs *ContentSeeder) CrawlPages(ctx context.Context, urls []string) Report {
	cs.reset()

	if cs.opts.Limit > 0 && cs.opts.Limit < len(urls) {
		urls = urls[:cs.opts.Limit]
		cs.logger.WithField("limit", cs.opts.Limit).Info("Limited pages to process")
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.Async(true),
	)
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: cs.opts.Concurrent,
		Delay:       cs.opts.Delay,
	})
	c.SetRequestTimeout(cs.opts.Timeout)

	c.OnResponse(func(r *colly.Response) {
		pageURL := r.Request.URL.String()

		result, err := cs.processor.Process(pageURL, string(r.Body))
		if err != nil {
			cs.fail(fmt.Errorf("failed to process %s: %w", pageURL, err))
			return
		}

		cs.logger.WithFields(logrus.Fields{
			"url":      pageURL,
			"overall":  result.Metrics.Overall,
			"quality":  result.Example.Quality,
			"language": result.Example.Language,
			"tags":     len(result.Example.Tags),
		}).Debug("Page processed")

		cs.record(ctx, result.Example, pageURL)
	})

	c.OnError(func(r *colly.Response, err error) {
		cs.fail(fmt.Errorf("failed to fetch %s: %w", r.Request.URL, err))
	})

	for _, u := range urls {
		if ctx.Err() != nil {
			break
		}
		if err := c.Visit(u); err != nil {
			cs.fail(fmt.Errorf("failed to visit %s: %w", u, err))
		}
	}
	c.Wait()

	return cs.finish()
}

func (cs *ContentSeeder) record(ctx context.Context, ex learning.NewExample, source string) {
	if cs.opts.DryRun {
		cs.logger.WithFields(logrus.Fields{
			"source":  source,
			"prompt":  ex.Prompt,
			"quality": ex.Quality,
			"tags":    ex.Tags,
		}).Info("DRY RUN: Would record example")
		cs.mu.Lock()
		cs.report.Skipped++
		cs.mu.Unlock()
		return
	}

	id, err := cs.recorder.RecordExample(ctx, ex)
	if err != nil {
		cs.fail(fmt.Errorf("failed to record %s: %w", source, err))
		return
	}

	cs.mu.Lock()
	cs.report.Recorded++
	cs.mu.Unlock()

	cs.logger.WithFields(logrus.Fields{
		"source":     source,
		"example_id": id,
	}).Info("Example seeded")
}

func (cs *ContentSeeder) fail(err error) {
	cs.logger.WithError(err).Warn("Seeding error")
	cs.mu.Lock()
	cs.report.Errors = append(cs.report.Errors, err)
	cs.mu.Unlock()
}

func (cs *ContentSeeder) reset() {
	cs.mu.Lock()
	cs.report = Report{}
	cs.mu.Unlock()
}

func (cs *ContentSeeder) finish() Report {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.logger.WithFields(logrus.Fields{
		"recorded": cs.report.Recorded,
		"skipped":  cs.report.Skipped,
		"errors":   len(cs.report.Errors),
	}).Info("Seeding completed")

	report := cs.report
	report.Errors = append([]error(nil), cs.report.Errors...)
	return report
}
