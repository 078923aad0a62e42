package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/IsaacDSC/miracle/internal/health"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	vegeta "github.com/tsenart/vegeta/v12/lib"
)

var paths = []string{
	health.HeartbeatPath,
	health.LBHeartbeatPath,
	health.VersionPath,
	health.RobotsPath,
	"/",
}

// go run ./cmd/loadtest -base-url=http://localhost:8080 -rate=50 -duration=30s
func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "api base url")
	freq := flag.Int("rate", 50, "requests per second")
	duration := flag.Duration("duration", 30*time.Second, "attack duration")
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())

	rate := vegeta.Rate{Freq: *freq, Per: time.Second}
	attacker := vegeta.NewAttacker()

	var metrics vegeta.Metrics
	for res := range attacker.Attack(newTargeter(*baseURL), rate, *duration, "health routes") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Printf("99th percentile: %s\n", metrics.Latencies.P99)
	fmt.Printf("95th percentile: %s\n", metrics.Latencies.P95)
	fmt.Printf("Mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Max: %s\n", metrics.Latencies.Max)
	fmt.Printf("Requests per second: %.2f\n", metrics.Rate)
	fmt.Printf("Success ratio: %.2f%%\n", metrics.Success*100)
	fmt.Printf("Status codes: %v\n", metrics.StatusCodes)
	fmt.Printf("Total requests: %d\n", metrics.Requests)

	fmt.Println("\n=== Report ===")
	reporter := vegeta.NewTextReporter(&metrics)
	if err := reporter.Report(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newTargeter rotates over the health routes with a fake user agent and a
// fresh request id per hit.
func newTargeter(baseURL string) vegeta.Targeter {
	baseURL = strings.TrimRight(baseURL, "/")
	var n atomic.Uint64

	return func(tgt *vegeta.Target) error {
		i := n.Add(1) - 1

		tgt.Method = http.MethodGet
		tgt.URL = baseURL + paths[i%uint64(len(paths))]
		tgt.Header = make(http.Header)
		tgt.Header.Set("User-Agent", gofakeit.UserAgent())
		tgt.Header.Set("X-Request-ID", uuid.New().String())

		return nil
	}
}
