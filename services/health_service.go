package services

import (
	"context"
	"time"

	"studytrack_go/config"
	"studytrack_go/database"
)

const (
	overallStatusOK       = "ok"
	overallStatusDegraded = "degraded"
	overallStatusCritical = "critical"

	dependencyStatusUp       = "up"
	dependencyStatusDown     = "down"
	dependencyStatusDisabled = "disabled"

	defaultServiceName = "StudyTrack API"
	defaultVersion     = "1.0.0"
	defaultTimeout     = 1500 * time.Millisecond
)

// HealthService aggregates application health information for reporting endpoints.
type HealthService struct {
	serviceName string
	version     string
	startTime   time.Time
	timeout     time.Duration
}

// HealthReport represents the JSON response for health endpoints.
type HealthReport struct {
	Status        string             `json:"status"`
	Service       string             `json:"service"`
	Version       string             `json:"version"`
	Environment   string             `json:"environment"`
	Time          time.Time          `json:"time"`
	UptimeSeconds float64            `json:"uptime_seconds"`
	Dependencies  []DependencyStatus `json:"dependencies"`
}

// DependencyStatus captures the health of a single external dependency.
type DependencyStatus struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// NewHealthService constructs a HealthService.
func NewHealthService(serviceName, version string) *HealthService {
	if serviceName == "" {
		serviceName = defaultServiceName
	}
	if version == "" {
		version = defaultVersion
	}
	return &HealthService{
		serviceName: serviceName,
		version:     version,
		startTime:   time.Now(),
		timeout:     defaultTimeout,
	}
}

// GetHealthReport probes the database and Redis and aggregates the result.
func (hs *HealthService) GetHealthReport() HealthReport {
	now := time.Now()
	deps := []DependencyStatus{
		hs.checkDatabase(),
		hs.checkRedis(),
	}

	return HealthReport{
		Status:        overallStatus(deps),
		Service:       hs.serviceName,
		Version:       hs.version,
		Environment:   config.AppConfig.AppEnv,
		Time:          now,
		UptimeSeconds: now.Sub(hs.startTime).Seconds(),
		Dependencies:  deps,
	}
}

// HTTPStatusForOverall maps the aggregated status to an HTTP status code.
func (hs *HealthService) HTTPStatusForOverall(status string) int {
	if status == overallStatusCritical {
		return 503
	}
	return 200
}

func (hs *HealthService) checkDatabase() DependencyStatus {
	dep := DependencyStatus{Name: "mysql"}

	db := database.GetDB()
	if db == nil {
		dep.Status = dependencyStatusDown
		dep.Error = "database not initialized"
		return dep
	}
	sqlDB, err := db.DB()
	if err != nil {
		dep.Status = dependencyStatusDown
		dep.Error = err.Error()
		return dep
	}

	ctx, cancel := context.WithTimeout(context.Background(), hs.timeout)
	defer cancel()

	start := time.Now()
	if err := sqlDB.PingContext(ctx); err != nil {
		dep.Status = dependencyStatusDown
		dep.Error = err.Error()
	} else {
		dep.Status = dependencyStatusUp
	}
	dep.LatencyMs = time.Since(start).Milliseconds()
	return dep
}

func (hs *HealthService) checkRedis() DependencyStatus {
	dep := DependencyStatus{Name: "redis"}

	rc := database.GetRedisClient()
	if rc == nil {
		// The service degrades gracefully without Redis.
		dep.Status = dependencyStatusDisabled
		return dep
	}

	ctx, cancel := context.WithTimeout(context.Background(), hs.timeout)
	defer cancel()

	start := time.Now()
	if err := rc.Ping(ctx).Err(); err != nil {
		dep.Status = dependencyStatusDown
		dep.Error = err.Error()
	} else {
		dep.Status = dependencyStatusUp
	}
	dep.LatencyMs = time.Since(start).Milliseconds()
	return dep
}

// overallStatus folds dependency states into one value. A down database is
// critical; a down optional dependency only degrades the service.
func overallStatus(deps []DependencyStatus) string {
	status := overallStatusOK
	for _, dep := range deps {
		if dep.Status != dependencyStatusDown {
			continue
		}
		if dep.Name == "mysql" {
			return overallStatusCritical
		}
		status = overallStatusDegraded
	}
	return status
}
