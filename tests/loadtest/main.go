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
	numSessions  = 100
	tokenHeader  = "X-Session-Token"
)

var roles = []string{"editor", "shooter", "writer", "admin"}

var clients = []string{"acme", "globex", "initech", "umbrella", "hooli"}

var videoTypes = []string{"reel", "short", "longform", "promo"}

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

type sessionPool struct {
	tokens []string
}

func (p *sessionPool) pick(rng *rand.Rand) string {
	return p.tokens[rng.Intn(len(p.tokens))]
}

func main() {
	fmt.Println("=== CrewOps Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Sessions: %d\n\n", numWorkers, testDuration, numSessions)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
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

	// Open the session pool
	fmt.Printf("Opening %d sessions... ", numSessions)
	pool, err := openSessions(numSessions)
	if err != nil {
		fmt.Printf("FAILED: %s\n", err)
		return
	}
	fmt.Println("OK")

	// Phase 1: Seed logs and attendance
	fmt.Println("\n--- Phase 1: Seeding (POST /logs, /checkin, /tasks/add, /items/add) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.55:
			return doAddLog(pool, rng)
		case r < 0.75:
			return doCheckIn(pool, rng)
		case r < 0.90:
			return doAddTask(pool, rng)
		default:
			return doAddItem(pool, rng)
		}
	})

	// Phase 2: Mixed read/write load
	fmt.Println("\n--- Phase 2: Mixed load (60% write, 40% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.45:
			return doAddLog(pool, rng)
		case r < 0.60:
			return doCheckIn(pool, rng)
		case r < 0.75:
			return doGetWeekly(pool, rng)
		case r < 0.90:
			return doGetSummary(pool, rng)
		default:
			return doGetTasks(pool, rng)
		}
	})

	// Phase 3: Read-heavy load
	fmt.Println("\n--- Phase 3: Read-heavy load (10% write, 90% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doAddLog(pool, rng)
		case r < 0.45:
			return doGetWeekly(pool, rng)
		case r < 0.75:
			return doGetSummary(pool, rng)
		case r < 0.90:
			return doGetAttendance(pool, rng)
		default:
			return doGetTasks(pool, rng)
		}
	})
}

func openSessions(n int) (*sessionPool, error) {
	pool := &sessionPool{tokens: make([]string, 0, n)}
	for i := 0; i < n; i++ {
		body := map[string]string{
			"name": fmt.Sprintf("crew_%d", i),
			"role": roles[i%len(roles)],
		}
		data, _ := json.Marshal(body)
		resp, err := httpClient.Post(baseURL+"/login", "application/json", bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		var parsed struct {
			Token string `json:"token"`
		}
		err = json.NewDecoder(resp.Body).Decode(&parsed)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		if parsed.Token == "" {
			return nil, fmt.Errorf("login %d returned empty token", i)
		}
		pool.tokens = append(pool.tokens, parsed.Token)
	}
	return pool, nil
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

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

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

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func dayKey(rng *rand.Rand) string {
	base := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, rng.Intn(7)).Format("2006-01-02")
}

func doPost(pool *sessionPool, rng *rand.Rand, path string, body interface{}, wantStatus int) result {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tokenHeader, pool.pick(rng))

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{"POST " + path, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST " + path, resp.StatusCode, lat, resp.StatusCode != wantStatus}
}

func doGet(pool *sessionPool, rng *rand.Rand, path string) result {
	req, _ := http.NewRequest(http.MethodGet, baseURL+path, nil)
	req.Header.Set(tokenHeader, pool.pick(rng))

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{"GET " + path, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET " + path, resp.StatusCode, lat, resp.StatusCode != 200}
}

func doAddLog(pool *sessionPool, rng *rand.Rand) result {
	body := map[string]interface{}{
		"date_key":   dayKey(rng),
		"client":     clients[rng.Intn(len(clients))],
		"video_type": videoTypes[rng.Intn(len(videoTypes))],
		"quantity":   rng.Intn(5) + 1,
	}
	return doPost(pool, rng, "/logs", body, 201)
}

func doCheckIn(pool *sessionPool, rng *rand.Rand) result {
	return doPost(pool, rng, "/checkin", map[string]string{}, 204)
}

func doAddTask(pool *sessionPool, rng *rand.Rand) result {
	body := map[string]string{
		"title":   fmt.Sprintf("task_%d", rng.Intn(1000)),
		"role":    roles[rng.Intn(3)], // producing roles only
		"due_key": dayKey(rng),
	}
	return doPost(pool, rng, "/tasks/add", body, 201)
}

func doAddItem(pool *sessionPool, rng *rand.Rand) result {
	body := map[string]string{
		"date_key": dayKey(rng),
		"title":    fmt.Sprintf("piece_%d", rng.Intn(1000)),
		"client":   clients[rng.Intn(len(clients))],
	}
	return doPost(pool, rng, "/items/add", body, 201)
}

func doGetWeekly(pool *sessionPool, rng *rand.Rand) result {
	return doGet(pool, rng, "/weekly")
}

func doGetSummary(pool *sessionPool, rng *rand.Rand) result {
	return doGet(pool, rng, "/summary")
}

func doGetAttendance(pool *sessionPool, rng *rand.Rand) result {
	return doGet(pool, rng, "/attendance")
}

func doGetTasks(pool *sessionPool, rng *rand.Rand) result {
	return doGet(pool, rng, "/tasks")
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
