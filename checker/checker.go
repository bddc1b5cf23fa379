// Package checker ties the WHOIS pipeline together: normalize a domain,
// resolve its authoritative server, query it with a retry and query-variant
// strategy, and classify the response.
package checker

import (
	"context"
	"time"

	"github.com/domnix/domnix/whois_tools"
)

// retryDelay is the fixed pause between failed transport attempts.
const retryDelay = 200 * time.Millisecond

// Finder resolves a normalized domain to its authoritative WHOIS server.
type Finder interface {
	Find(ctx context.Context, domain string) (string, error)
}

// Result is the outcome of checking one domain. Domain carries the original
// input string, not the normalized form, so batch output lines up with the
// caller's list.
type Result struct {
	Domain string             `json:"domain"`
	Status whois_tools.Status `json:"status"`
	Note   string             `json:"note"`
}

// Checker performs per-domain WHOIS checks. It is safe for concurrent use;
// all mutable state lives in the injected Finder's cache.
type Checker struct {
	finder     Finder
	timeout    time.Duration
	retry      int
	defaultTLD string

	// query is the transport; tests replace it with fakes.
	query whois_tools.QueryFunc
	// sleep is time.Sleep unless a test needs to skip the retry delay.
	sleep func(time.Duration)
}

// New creates a Checker. retry is the number of extra attempts after the
// first; timeout bounds every individual network operation.
func New(finder Finder, timeout time.Duration, retry int, defaultTLD string) *Checker {
	return &Checker{
		finder:     finder,
		timeout:    timeout,
		retry:      retry,
		defaultTLD: defaultTLD,
		query:      whois_tools.Query,
		sleep:      time.Sleep,
	}
}

// Check resolves and classifies a single domain. It always returns a Result;
// failures are encoded in the Status and Note fields, never as an error, so
// one bad domain cannot abort a batch.
//
// Each retry attempt tries two query texts in order: the bare domain, then
// "domain <name>", which some registries require. The first attempt that
// completes at the transport level is terminal, whatever its classification:
// an unknown-but-received response is a legitimate answer, only transport
// failures are retried. The alternate query text is therefore reached only
// when the bare query itself failed to complete.
func (c *Checker) Check(ctx context.Context, domain string) Result {
	normalized := whois_tools.NormalizeDomain(domain, c.defaultTLD)
	if !whois_tools.IsCheckable(normalized) {
		return Result{Domain: domain, Status: whois_tools.StatusInvalid, Note: "invalid domain name"}
	}

	server, err := c.finder.Find(ctx, normalized)
	if err != nil {
		return Result{Domain: domain, Status: whois_tools.StatusUnknown, Note: "WHOIS server not found at " + whois_tools.RootWhoisServer}
	}

	queries := []string{normalized, "domain " + normalized}
	var lastErr error
	for attempt := 0; attempt <= c.retry; attempt++ {
		for _, q := range queries {
			raw, err := c.query(server, q, c.timeout)
			if err != nil {
				lastErr = err
				c.sleep(retryDelay)
				continue
			}
			status := whois_tools.Classify(raw)
			return Result{Domain: domain, Status: status, Note: "whois: " + server}
		}
	}

	note := "whois query failed"
	if lastErr != nil {
		note = lastErr.Error()
	}
	return Result{Domain: domain, Status: whois_tools.StatusError, Note: note}
}
