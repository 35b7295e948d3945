package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numPosts     = 20
	numPlayers   = 500
)

// suffixes glued onto the daily fragment so a share of submissions is
// prefix-valid regardless of which fragment the server drew.
var suffixes = []string{"one", "ing", "ation", "er", "ate", "ory", "and", "ent", "ickle", "ound"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// fragment is fetched once from the leaderboard endpoint so generated
// words start with the right letters.
var fragment atomic.Value

func main() {
	fmt.Println("=== Fragments Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Posts: %d | Players: %d\n\n", numPosts, numPlayers)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/api/dates")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fragment.Store("st")
	fetchFragment()

	// Phase 1: Start games
	fmt.Println("\n--- Phase 1: Starting games (POST /api/new-game) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doNewGame(rng)
	})

	// Phase 2: Active play
	fmt.Println("\n--- Phase 2: Active play (submissions and state polls) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.15:
			return doNewGame(rng)
		case r < 0.60:
			return doSubmitWord(rng)
		case r < 0.80:
			return doGameState(rng)
		case r < 0.90:
			return doEndGame(rng)
		default:
			return doInit(rng)
		}
	})

	// Phase 3: Board watching
	fmt.Println("\n--- Phase 3: Board watching (90% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doSubmitWord(rng)
		case r < 0.60:
			return doLeaderboard(rng)
		case r < 0.80:
			return doGameState(rng)
		default:
			return doDates()
		}
	})
}

func fetchFragment() {
	resp, err := httpClient.Get(baseURL + "/api/leaderboard")
	if err != nil {
		return
	}
	defer resp.Body.Close()
	var payload struct {
		Fragment string `json:"fragment"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Fragment != "" {
		fragment.Store(payload.Fragment)
	}
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 94))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 94))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func pickIdentity(rng *rand.Rand) (string, string) {
	postID := fmt.Sprintf("post_%d", rng.Intn(numPosts)+1)
	username := fmt.Sprintf("player_%d", rng.Intn(numPlayers)+1)
	return postID, username
}

func pickWord(rng *rand.Rand) string {
	// a quarter of submissions deliberately miss the prefix
	if rng.Float64() < 0.25 {
		return "xylophone"
	}
	return fragment.Load().(string) + suffixes[rng.Intn(len(suffixes))]
}

func doPlayerPost(rng *rand.Rand, endpoint, path string, body any, okStatus int) result {
	postID, username := pickIdentity(rng)
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s%s?postId=%s", baseURL, path, postID), reader)
	if err != nil {
		return result{endpoint, 0, 0, true}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Username", username)

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != okStatus}
}

func doPlayerGet(rng *rand.Rand, endpoint, path string, okStatuses ...int) result {
	postID, username := pickIdentity(rng)
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s%s?postId=%s", baseURL, path, postID), nil)
	if err != nil {
		return result{endpoint, 0, 0, true}
	}
	req.Header.Set("X-Username", username)

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	bad := true
	for _, status := range okStatuses {
		if resp.StatusCode == status {
			bad = false
			break
		}
	}
	return result{endpoint, resp.StatusCode, lat, bad}
}

func doNewGame(rng *rand.Rand) result {
	return doPlayerPost(rng, "POST /api/new-game", "/api/new-game", nil, 200)
}

func doSubmitWord(rng *rand.Rand) result {
	body := map[string]string{"word": pickWord(rng)}
	r := doPlayerPost(rng, "POST /api/submit-word", "/api/submit-word", body, 200)
	// a 404 just means this player has no open game yet
	if r.status == 404 {
		r.err = false
	}
	return r
}

func doEndGame(rng *rand.Rand) result {
	r := doPlayerPost(rng, "POST /api/end-game", "/api/end-game", nil, 200)
	if r.status == 404 {
		r.err = false
	}
	return r
}

func doGameState(rng *rand.Rand) result {
	return doPlayerGet(rng, "GET /api/game-state", "/api/game-state", 200, 404)
}

func doInit(rng *rand.Rand) result {
	return doPlayerGet(rng, "GET /api/init", "/api/init", 200)
}

func doLeaderboard(rng *rand.Rand) result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/api/leaderboard")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /api/leaderboard", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /api/leaderboard", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doDates() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/api/dates")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /api/dates", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /api/dates", resp.StatusCode, lat, resp.StatusCode != 200}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
