package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"shoplens/pkg/contracts/domain"
)

// HealthService reports process and dataset health.
type HealthService struct {
	version   string
	buildTime string
	dataset   *domain.Dataset
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus is the health check response.
type HealthStatus struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Version   string        `json:"version"`
	BuildTime string        `json:"build_time,omitempty"`
	Uptime    string        `json:"uptime"`
	Runtime   RuntimeStats  `json:"runtime"`
	Dataset   DatasetHealth `json:"dataset"`
}

// RuntimeStats is a small snapshot of the Go runtime.
type RuntimeStats struct {
	GoVersion  string `json:"go_version"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Goroutines int    `json:"goroutines"`
}

// DatasetHealth reports whether a dataset is loaded and where it came from.
type DatasetHealth struct {
	Status   string    `json:"status"`
	Records  int       `json:"records"`
	Source   string    `json:"source,omitempty"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
}

// NewHealthService creates a health service over the loaded dataset.
func NewHealthService(version, buildTime string, dataset *domain.Dataset, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		dataset:   dataset,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Check returns the current health status. The service is degraded when the
// dataset is empty, since every analytics endpoint would return empty
// aggregates.
func (hs *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   hs.version,
		BuildTime: hs.buildTime,
		Uptime:    time.Since(hs.startTime).Round(time.Second).String(),
		Runtime: RuntimeStats{
			GoVersion:  runtime.Version(),
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			Goroutines: runtime.NumGoroutine(),
		},
		Dataset: DatasetHealth{Status: "loaded"},
	}

	if hs.dataset == nil || len(hs.dataset.Records) == 0 {
		status.Status = "degraded"
		status.Dataset.Status = "empty"
		return status
	}

	status.Dataset.Records = len(hs.dataset.Records)
	status.Dataset.Source = hs.dataset.Source
	status.Dataset.LoadedAt = hs.dataset.LoadedAt
	return status
}
