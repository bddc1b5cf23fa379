// Package handle_resources contains the HTTP handlers for serve mode.
package handle_resources

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/domnix/domnix/checker"
	"github.com/domnix/domnix/config"
	"github.com/domnix/domnix/metrics"
	"github.com/domnix/domnix/utils"
)

// CheckHandler serves GET /check?domain=<name>, running the WHOIS pipeline
// for one domain and caching the resulting record.
type CheckHandler struct {
	Checker *checker.Checker
	Metrics *metrics.Metrics

	// InFlight tracks running checks so shutdown can drain them.
	InFlight *sync.WaitGroup
	// Limiter bounds the number of concurrent checks.
	Limiter chan struct{}
}

// ServeHTTP handles a single check request. Cached results are served
// verbatim; fresh results are cached with the configured expiration.
func (h *CheckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	domain := r.URL.Query().Get("domain")
	if domain == "" {
		utils.WriteError(w, http.StatusBadRequest, "missing domain parameter")
		return
	}

	ctx := r.Context()
	key := "check:" + domain

	if cached, err := config.CacheManager.Get(ctx, key); err == nil && cached.Found {
		h.Metrics.CacheHits.Inc()
		utils.WriteCached(w, cached.Data)
		return
	}

	select {
	case h.Limiter <- struct{}{}:
	case <-ctx.Done():
		utils.WriteError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}
	h.InFlight.Add(1)
	defer func() {
		<-h.Limiter
		h.InFlight.Done()
	}()

	start := time.Now()
	result := h.Checker.Check(ctx, domain)
	h.Metrics.CheckDuration.Observe(time.Since(start).Seconds())
	h.Metrics.ChecksTotal.WithLabelValues(string(result.Status)).Inc()

	body, err := json.Marshal(result)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	config.CacheManager.Set(ctx, key, string(body), config.CacheExpiration)

	utils.WriteCached(w, string(body))
}
