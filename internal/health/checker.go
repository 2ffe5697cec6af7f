package health

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Probe checks a single dependency. Optional probes only degrade the
// overall status when they fail.
type Probe struct {
	Name     string
	Check    func(ctx context.Context) error
	Optional bool
}

// HealthChecker manages health checks for all services
type HealthChecker struct {
	probes  []Probe
	timeout time.Duration
	logger  *logrus.Logger
	started time.Time
}

func NewHealthChecker(logger *logrus.Logger, probes ...Probe) *HealthChecker {
	return &HealthChecker{
		probes:  probes,
		timeout: 5 * time.Second,
		logger:  logger,
		started: time.Now(),
	}
}

// ServiceHealth represents the health status of a service
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth represents the overall system health
type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
	Uptime   string          `json:"uptime"`
}

func (h *HealthChecker) check(ctx context.Context, p Probe) ServiceHealth {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	err := p.Check(ctx)
	responseTime := int(time.Since(start).Milliseconds())

	status := StatusHealthy
	errorMsg := ""
	if err != nil {
		status = StatusUnhealthy
		if p.Optional {
			status = StatusDegraded
		}
		errorMsg = err.Error()
		h.logger.WithError(err).WithField("service", p.Name).Error("Health check failed")
	}

	return ServiceHealth{
		Name:         p.Name,
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckAll runs every probe concurrently
func (h *HealthChecker) CheckAll(ctx context.Context) OverallHealth {
	services := make([]ServiceHealth, len(h.probes))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range h.probes {
		i, p := i, p
		g.Go(func() error {
			services[i] = h.check(gctx, p)
			return nil
		})
	}
	g.Wait()

	overallStatus := StatusHealthy
	for _, service := range services {
		if service.Status == StatusUnhealthy {
			overallStatus = StatusUnhealthy
			break
		}
		if service.Status == StatusDegraded && overallStatus == StatusHealthy {
			overallStatus = StatusDegraded
		}
	}

	return OverallHealth{
		Status:   overallStatus,
		Services: services,
		Uptime:   time.Since(h.started).String(),
	}
}
