// domnix checks whether domains are registered, free, or undeterminable by
// walking the WHOIS hierarchy: the IANA root directory for a zone referral,
// then the authoritative server for the registration record, then heuristic
// classification of the response text.
//
// Usage:
//
//	domnix [flags] domains.txt       batch mode (prints a table, optional CSV)
//	domnix -serve                    HTTP API mode
//	domnix -mcp                      MCP stdio mode
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/domnix/domnix/checker"
	"github.com/domnix/domnix/config"
	"github.com/domnix/domnix/handle_resources"
	"github.com/domnix/domnix/metrics"
	"github.com/domnix/domnix/whois_tools"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	flagConfig  = flag.String("config", "", "Path to configuration file (default: config.yaml or config.json if present)")
	flagOut     = flag.String("out", "", "CSV file to save results (default: print to stdout only)")
	flagTLD     = flag.String("tld", "com", "Default TLD to add if a domain has no extension")
	flagWorkers = flag.Int("workers", 10, "Number of parallel workers")
	flagTimeout = flag.Float64("timeout", 6, "WHOIS query timeout in seconds")
	flagRetry   = flag.Int("retry", 1, "Extra query attempts after the first")
	flagServe   = flag.Bool("serve", false, "Run as an HTTP server instead of batch mode")
	flagPort    = flag.Int("port", 8043, "HTTP server port (serve mode)")
	flagMCP     = flag.Bool("mcp", false, "Serve the checker over MCP on stdio")
	flagVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if err := config.Init(*flagConfig); err != nil {
		log.Fatalf("Failed to initialize configuration: %v", err)
	}
	applyFlagOverrides()

	if *flagVersion {
		fmt.Printf("domnix %s (%s, built %s)\n", config.Version, config.GitCommit, config.BuildTime)
		return
	}

	finder := whois_tools.NewServerFinder(config.CacheManager, config.Settings.RootServer, config.Timeout())
	chk := checker.New(finder, config.Timeout(), config.Settings.Retry, config.Settings.DefaultTLD)

	switch {
	case *flagServe:
		runServer(chk)
	case *flagMCP:
		if err := runMCPServer(context.Background(), chk); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}
	default:
		runBatch(chk)
	}
}

// applyFlagOverrides copies explicitly set flags over the file/env
// configuration. flag.Visit only walks flags the user actually passed, so
// zero values on the command line still win over the config file.
func applyFlagOverrides() {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tld":
			config.Settings.DefaultTLD = *flagTLD
		case "workers":
			config.Settings.Workers = *flagWorkers
		case "timeout":
			config.Settings.Timeout = *flagTimeout
		case "retry":
			config.Settings.Retry = *flagRetry
		case "port":
			config.Settings.Port = *flagPort
		}
	})
}

// runBatch checks every domain from the input file concurrently and prints
// the results in input order.
func runBatch(chk *checker.Checker) {
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: domnix [flags] <domains file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	domains, err := loadDomains(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to load domain list: %v", err)
	}
	if len(domains) == 0 {
		fmt.Fprintln(os.Stderr, "File is empty or contains no valid domains.")
		os.Exit(1)
	}

	results := checker.CheckAll(context.Background(), chk, domains, config.Settings.Workers)

	printTable(results)

	if *flagOut != "" {
		if err := writeCSV(*flagOut, results); err != nil {
			log.Fatalf("Failed to write CSV: %v", err)
		}
		fmt.Printf("\nResults saved to: %s\n", *flagOut)
	}
}

// loadDomains reads a domain list from a file: comma-separated when the
// content contains a comma, otherwise one domain per line. Blank entries and
// "#" comment lines are skipped.
func loadDomains(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []string
	if strings.Contains(string(content), ",") {
		raw = strings.Split(string(content), ",")
	} else {
		raw = strings.Split(string(content), "\n")
	}

	domains := make([]string, 0, len(raw))
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}
		domains = append(domains, entry)
	}
	return domains, nil
}

// printTable writes a fixed-width result table to stdout.
func printTable(results []checker.Result) {
	fmt.Printf("%-40s  %-12s  %s\n", "DOMAIN", "STATUS", "NOTE")
	for _, r := range results {
		fmt.Printf("%-40s  %-12s  %s\n", r.Domain, r.Status, r.Note)
	}
}

// writeCSV saves results with a "domain,status,note" header.
func writeCSV(path string, results []checker.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"domain", "status", "note"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write([]string{r.Domain, string(r.Status), r.Note}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// runServer exposes the checker over HTTP and shuts down gracefully: on
// SIGINT/SIGTERM it stops accepting requests, waits for in-flight checks to
// drain, then closes the Redis connection.
func runServer(chk *checker.Checker) {
	var inFlight sync.WaitGroup
	limiter := make(chan struct{}, config.Settings.RateLimit)
	m := metrics.New()

	mux := http.NewServeMux()
	mux.Handle("/check", &handle_resources.CheckHandler{
		Checker:  chk,
		Metrics:  m,
		InFlight: &inFlight,
		Limiter:  limiter,
	})
	mux.HandleFunc("/health", handle_resources.HandleHealth)
	mux.Handle("/ready", &handle_resources.ReadyHandler{Limiter: limiter})
	mux.HandleFunc("/info", handle_resources.HandleInfo)
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Settings.Port),
		Handler: mux,
	}

	go func() {
		fmt.Printf("Server is listening on port %d...\n", config.Settings.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server failed to start:", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Received shutdown signal, waiting for running checks to complete...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	server.Shutdown(shutdownCtx)
	inFlight.Wait()

	log.Println("All checks completed. Shutting down server...")
	config.RedisClient.Close()
}
