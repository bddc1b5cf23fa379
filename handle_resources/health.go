package handle_resources

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/domnix/domnix/config"
	"github.com/domnix/domnix/utils"
)

// startTime records the server start time for uptime calculation
var startTime = time.Now()

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime,omitempty"`
	Checks    map[string]Check `json:"checks"`
}

// Check represents a single health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// isRedisHealthy checks if the primary cache (Redis) is healthy
func isRedisHealthy() bool {
	if config.CacheManager == nil {
		return false
	}
	if fc, ok := config.CacheManager.(*utils.FallbackCache); ok {
		return fc.IsPrimaryHealthy()
	}
	return config.CacheManager.IsHealthy()
}

// cacheCheck returns the cache health check result
func cacheCheck() (Check, bool) {
	if config.CacheManager == nil {
		return Check{Status: "fail", Message: "not initialized"}, false
	}
	if isRedisHealthy() {
		return Check{Status: "ok", Message: "redis"}, true
	}
	return Check{Status: "ok", Message: "memory"}, true
}

// HandleHealth handles the /health endpoint. It always returns 200 while the
// server is running.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	cache, _ := cacheCheck()

	utils.WriteJSON(w, http.StatusOK, HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		Checks:    map[string]Check{"cache": cache},
	})
}

// ReadyHandler serves the /ready endpoint: 200 when the service can accept
// checks, 503 when a required dependency is missing.
type ReadyHandler struct {
	Limiter chan struct{}
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpStatus := http.StatusOK
	overall := "ok"

	cache, cacheOk := cacheCheck()
	if config.Settings.Cache.RequireRedis && !isRedisHealthy() {
		overall = "unavailable"
		cache = Check{Status: "fail", Message: "redis required but unavailable"}
		httpStatus = http.StatusServiceUnavailable
	} else if !cacheOk {
		overall = "unavailable"
		httpStatus = http.StatusServiceUnavailable
	}

	capacity := Check{Status: "ok", Message: fmt.Sprintf("%d/%d", len(h.Limiter), cap(h.Limiter))}
	if len(h.Limiter) >= cap(h.Limiter) {
		capacity = Check{Status: "warning", Message: fmt.Sprintf("at limit (%d/%d)", len(h.Limiter), cap(h.Limiter))}
	}

	utils.WriteJSON(w, httpStatus, HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		Checks:    map[string]Check{"cache": cache, "capacity": capacity},
	})
}

// RuntimeInfo represents runtime information
type RuntimeInfo struct {
	Version      string `json:"version"`
	BuildTime    string `json:"buildTime,omitempty"`
	GitCommit    string `json:"gitCommit,omitempty"`
	GoVersion    string `json:"goVersion"`
	Uptime       string `json:"uptime"`
	NumGoroutine int    `json:"numGoroutine"`
	NumCPU       int    `json:"numCPU"`
}

// HandleInfo handles the /info endpoint (optional, for debugging)
func HandleInfo(w http.ResponseWriter, r *http.Request) {
	info := RuntimeInfo{
		Version:      config.Version,
		GoVersion:    runtime.Version(),
		Uptime:       time.Since(startTime).Round(time.Second).String(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
	}
	if config.BuildTime != "unknown" {
		info.BuildTime = config.BuildTime
	}
	if config.GitCommit != "unknown" {
		info.GitCommit = config.GitCommit
	}

	utils.WriteJSON(w, http.StatusOK, info)
}
