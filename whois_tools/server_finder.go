package whois_tools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/domnix/domnix/server_lists"
	"github.com/domnix/domnix/utils"
	"golang.org/x/net/publicsuffix"
)

// RootWhoisServer is the IANA root directory queried with a bare TLD to
// discover the authoritative WHOIS server for that zone.
const RootWhoisServer = "whois.iana.org"

// ErrNoServer is returned when no authoritative WHOIS server can be
// determined for a domain's zone.
var ErrNoServer = errors.New("no whois server found for zone")

// noServerMarker is the cache value recorded for zones the root directory
// could not resolve, so repeated misses do not re-query IANA. "-" is not a
// valid hostname, so it cannot collide with a real referral.
const noServerMarker = "-"

// zoneCacheTTL is the lifetime of a cached zone referral. Referrals
// effectively never change, so the TTL only bounds memory in long-lived
// server mode.
const zoneCacheTTL = 24 * time.Hour

// ServerFinder resolves a domain's top-level zone to its authoritative WHOIS
// server: first via the static seed table, then the cache, then a referral
// query against the root directory. Lookups for distinct zones may run
// concurrently; the cache guarantees at most one root round trip per zone
// once a result is recorded.
type ServerFinder struct {
	cache   utils.Cache
	root    string
	timeout time.Duration

	// query performs the raw WHOIS round trip; tests replace it to count
	// calls and to serve canned referrals.
	query QueryFunc
}

// NewServerFinder creates a ServerFinder backed by the given cache. An empty
// root falls back to the IANA directory.
func NewServerFinder(cache utils.Cache, root string, timeout time.Duration) *ServerFinder {
	if root == "" {
		root = RootWhoisServer
	}
	return &ServerFinder{
		cache:   cache,
		root:    root,
		timeout: timeout,
		query:   Query,
	}
}

// Find returns the authoritative WHOIS server for the given normalized
// domain, or ErrNoServer when the zone cannot be resolved.
func (f *ServerFinder) Find(ctx context.Context, domain string) (string, error) {
	tld := ZoneOf(domain)
	if tld == "" {
		return "", fmt.Errorf("%w: no zone in %q", ErrNoServer, domain)
	}

	if server, ok := server_lists.TLDToWhoisServer[tld]; ok {
		return server, nil
	}

	key := "whois-server:" + tld
	if cached, err := f.cache.Get(ctx, key); err == nil && cached.Found {
		if cached.Data == noServerMarker {
			return "", fmt.Errorf("%w: %s", ErrNoServer, tld)
		}
		return cached.Data, nil
	}

	resp, err := f.query(f.root, tld, f.timeout)
	if err != nil {
		return "", fmt.Errorf("%w: root query for %s failed: %v", ErrNoServer, tld, err)
	}

	server := parseReferral(resp)
	if server == "" {
		f.cache.Set(ctx, key, noServerMarker, zoneCacheTTL)
		return "", fmt.Errorf("%w: %s", ErrNoServer, tld)
	}

	log.Printf("Resolved WHOIS server for zone %s: %s\n", tld, server)
	f.cache.Set(ctx, key, server, zoneCacheTTL)
	return server, nil
}

// ZoneOf extracts the top-level zone of a normalized domain: the public
// suffix, reduced to its final label for multi-label suffixes such as
// "com.cn". It returns "" for dotless input, which has no zone at all.
func ZoneOf(domain string) string {
	if !strings.Contains(domain, ".") {
		return ""
	}
	tld, _ := publicsuffix.PublicSuffix(domain)
	if strings.Contains(tld, ".") {
		parts := strings.Split(tld, ".")
		tld = parts[len(parts)-1]
	}
	return tld
}

// parseReferral scans a root directory response for the first line of the
// form "whois: <hostname>" (case-insensitive) and returns the hostname, or
// "" when no referral is present.
func parseReferral(resp string) string {
	for _, line := range strings.Split(resp, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 6 && strings.EqualFold(line[:6], "whois:") {
			return strings.TrimSpace(line[6:])
		}
	}
	return ""
}
