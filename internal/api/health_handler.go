package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ignite/response-prettier/internal/decorator"
	"github.com/ignite/response-prettier/internal/format"
	"github.com/ignite/response-prettier/internal/pkg/httputil"
	"github.com/ignite/response-prettier/internal/prettier"
)

// HealthStatus represents the overall health of the system.
type HealthStatus struct {
	Status     string                    `json:"status"` // "healthy", "degraded", "unhealthy"
	Version    string                    `json:"version"`
	InstanceID string                    `json:"instanceId"`
	Uptime     string                    `json:"uptime"`
	Checks     map[string]ComponentCheck `json:"checks"`
}

// ComponentCheck represents the health of a single component.
type ComponentCheck struct {
	Status  string `json:"status"` // "up", "down"
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}

// HealthChecker probes every formatting engine through the decorated
// capability, so a missing or broken registration shows up here.
type HealthChecker struct {
	registry   *decorator.Registry
	decorator  string
	instanceID string
	startTime  time.Time
}

// NewHealthChecker creates a new HealthChecker.
func NewHealthChecker(registry *decorator.Registry, instanceID string) *HealthChecker {
	return &HealthChecker{
		registry:   registry,
		decorator:  prettier.DefaultDecorator,
		instanceID: instanceID,
		startTime:  time.Now(),
	}
}

// SetFormatDecorator changes the capability name the probes resolve.
func (hc *HealthChecker) SetFormatDecorator(name string) {
	hc.decorator = name
}

// Version is reported by /health and the CLI.
var Version = "1.0.0"

// probes holds a small valid document per grammar.
var probes = map[string]string{
	format.GrammarJSON:          `{"ok":true}`,
	format.GrammarJSONStringify: `[1,2]`,
	format.GrammarYAML:          "ok: true\n",
	format.GrammarXML:           `<ok>true</ok>`,
	format.GrammarHTML:          `<p><b>ok</b></p>`,
	format.GrammarHCL:           "ok = true\n",
}

// HandleHealth returns the status of every engine.
//
//	GET /health
func (hc *HealthChecker) HandleHealth(w http.ResponseWriter, r *http.Request) {
	checks := hc.runAllChecks()

	httputil.OK(w, HealthStatus{
		Status:     determineOverallStatus(checks),
		Version:    Version,
		InstanceID: hc.instanceID,
		Uptime:     formatUptime(time.Since(hc.startTime)),
		Checks:     checks,
	})
}

// HandleLiveness always returns 200 while the process is running.
//
//	GET /health/live
func (hc *HealthChecker) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]any{
		"status": "alive",
		"uptime": formatUptime(time.Since(hc.startTime)),
	})
}

// HandleReadiness returns 503 when the default grammar cannot be formatted.
//
//	GET /health/ready
func (hc *HealthChecker) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	checks := hc.runAllChecks()
	overall := determineOverallStatus(checks)

	ready := overall != "unhealthy"
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}

	httputil.JSON(w, status, map[string]any{
		"ready":  ready,
		"status": overall,
		"checks": checks,
	})
}

func (hc *HealthChecker) runAllChecks() map[string]ComponentCheck {
	fn, err := decorator.Resolve[prettier.FormatFunc](hc.registry, hc.decorator)
	if err != nil {
		return map[string]ComponentCheck{
			"decorator": {Status: "down", Message: err.Error()},
		}
	}

	checks := make(map[string]ComponentCheck, len(probes)+1)
	checks["decorator"] = ComponentCheck{Status: "up", Message: hc.decorator}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for grammar, sample := range probes {
		grammar, sample := grammar, sample
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := probe(fn, grammar, sample)
			mu.Lock()
			checks[grammar] = c
			mu.Unlock()
		}()
	}
	wg.Wait()

	return checks
}

func probe(fn prettier.FormatFunc, grammar, sample string) ComponentCheck {
	start := time.Now()
	_, err := fn(sample, map[string]any{"grammar": grammar})
	latency := time.Since(start)

	if err != nil {
		return ComponentCheck{
			Status:  "down",
			Latency: latency.String(),
			Message: fmt.Sprintf("probe failed: %v", err),
		}
	}
	return ComponentCheck{Status: "up", Latency: latency.String()}
}

// determineOverallStatus derives the aggregate status from individual checks.
//
// Rules:
//   - "unhealthy" if the capability or the json engine is down
//   - "degraded"  if any other engine is down
//   - "healthy"   otherwise
func determineOverallStatus(checks map[string]ComponentCheck) string {
	for _, critical := range []string{"decorator", format.GrammarJSON} {
		if c, ok := checks[critical]; !ok || c.Status == "down" {
			return "unhealthy"
		}
	}

	for _, c := range checks {
		if c.Status == "down" {
			return "degraded"
		}
	}

	return "healthy"
}

// formatUptime produces a human-readable uptime string like "3d 4h 12m 5s".
func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
