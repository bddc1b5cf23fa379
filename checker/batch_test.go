package checker

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/domnix/domnix/whois_tools"
)

// delayedFinder resolves instantly; the delay lives in the transport so the
// whole per-domain chain runs on the worker.
type delayedFinder struct{}

func (delayedFinder) Find(ctx context.Context, domain string) (string, error) {
	return "whois.example", nil
}

func TestCheckAllPreservesInputOrder(t *testing.T) {
	domains := make([]string, 20)
	for i := range domains {
		domains[i] = fmt.Sprintf("domain%02d.com", i)
	}

	c := New(delayedFinder{}, time.Second, 0, "com")
	c.sleep = func(time.Duration) {}
	// Later inputs answer faster, so completion order is roughly the
	// reverse of input order.
	c.query = func(server, query string, timeout time.Duration) (string, error) {
		var idx int
		fmt.Sscanf(query, "domain%d.com", &idx)
		time.Sleep(time.Duration(len(domains)-idx) * time.Millisecond)
		return "Domain Name: " + query + "\n", nil
	}

	results := CheckAll(context.Background(), c, domains, 10)

	if len(results) != len(domains) {
		t.Fatalf("got %d results for %d domains", len(results), len(domains))
	}
	for i, r := range results {
		if r.Domain != domains[i] {
			t.Errorf("result %d is for %q; want %q", i, r.Domain, domains[i])
		}
		if r.Status != whois_tools.StatusRegistered {
			t.Errorf("result %d status = %q; want %q", i, r.Status, whois_tools.StatusRegistered)
		}
	}
}

func TestCheckAllOneResultPerDomain(t *testing.T) {
	domains := []string{"good.com", "", "bad domain", "good.com"}

	c := New(delayedFinder{}, time.Second, 0, "com")
	c.sleep = func(time.Duration) {}
	c.query = func(server, query string, timeout time.Duration) (string, error) {
		return "No match for domain\n", nil
	}

	results := CheckAll(context.Background(), c, domains, 2)

	if len(results) != len(domains) {
		t.Fatalf("got %d results for %d domains", len(results), len(domains))
	}
	if results[1].Status != whois_tools.StatusInvalid {
		t.Errorf("empty input status = %q; want %q", results[1].Status, whois_tools.StatusInvalid)
	}
	if results[0].Status != whois_tools.StatusFree || results[3].Status != whois_tools.StatusFree {
		t.Errorf("expected free for resolvable domains, got %q and %q", results[0].Status, results[3].Status)
	}
}

func TestCheckAllBoundsConcurrency(t *testing.T) {
	var mu sync.Mutex
	inFlight, peak := 0, 0

	c := New(delayedFinder{}, time.Second, 0, "com")
	c.sleep = func(time.Duration) {}
	c.query = func(server, query string, timeout time.Duration) (string, error) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return "Domain Name: X\n", nil
	}

	domains := make([]string, 30)
	for i := range domains {
		domains[i] = fmt.Sprintf("d%d.com", i)
	}
	CheckAll(context.Background(), c, domains, 4)

	if peak > 4 {
		t.Errorf("peak concurrency %d exceeded the worker limit of 4", peak)
	}
	if peak == 0 {
		t.Error("no queries ran")
	}
}
