package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"
)

const (
	BaseURL        = "http://localhost:8080"
	SeedUsers      = 20   // accounts posting content
	FeedReaders    = 200  // concurrent viewers
	ReadsPerViewer = 25
)

var httpClient *http.Client

func init() {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 2000
	t.MaxIdleConnsPerHost = 2000
	t.MaxConnsPerHost = 2000
	httpClient = &http.Client{
		Transport: t,
		Timeout:   10 * time.Second,
	}
}

type authResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

func register(i int) (string, error) {
	payload, _ := json.Marshal(map[string]string{
		"name":     fmt.Sprintf("Load Tester %d", i),
		"email":    fmt.Sprintf("loadtest%d@example.com", i),
		"password": "loadtest-secret",
	})
	resp, err := httpClient.Post(BaseURL+"/api/auth/register", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return login(i)
	}
	body, _ := io.ReadAll(resp.Body)
	var auth authResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return "", err
	}
	return auth.Data.Token, nil
}

func login(i int) (string, error) {
	payload, _ := json.Marshal(map[string]string{
		"email":    fmt.Sprintf("loadtest%d@example.com", i),
		"password": "loadtest-secret",
	})
	resp, err := httpClient.Post(BaseURL+"/api/auth/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var auth authResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return "", err
	}
	return auth.Data.Token, nil
}

func createPost(token string, i int) error {
	payload, _ := json.Marshal(map[string]string{
		"type":        "pdf",
		"title":       fmt.Sprintf("Load test material %d", i),
		"subject":     "Physics",
		"description": "generated by the stress tool",
		"fileUrl":     "https://example.com/notes.pdf",
	})
	req, _ := http.NewRequest(http.MethodPost, BaseURL+"/api/posts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("create post: status %d", resp.StatusCode)
	}
	return nil
}

func readFeed(token string) (time.Duration, error) {
	req, _ := http.NewRequest(http.MethodGet, BaseURL+"/api/posts?page=1&limit=10", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("feed: status %d", resp.StatusCode)
	}
	return time.Since(start), nil
}

func main() {
	// 1. Seed accounts and content so the feed has something to compose.
	fmt.Printf("seeding %d accounts with one post each...\n", SeedUsers)
	tokens := make([]string, 0, SeedUsers)
	for i := 0; i < SeedUsers; i++ {
		token, err := register(i)
		if err != nil || token == "" {
			fmt.Printf("seed user %d failed: %v\n", i, err)
			continue
		}
		if err := createPost(token, i); err != nil {
			fmt.Printf("seed post %d failed: %v\n", i, err)
		}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		fmt.Println("no usable accounts, aborting")
		return
	}

	// 2. Concurrent feed reads.
	fmt.Printf("starting %d readers x %d requests...\n", FeedReaders, ReadsPerViewer)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var latencies []time.Duration
	errCount := 0

	start := time.Now()
	for i := 0; i < FeedReaders; i++ {
		wg.Add(1)
		token := tokens[i%len(tokens)]
		go func() {
			defer wg.Done()
			for j := 0; j < ReadsPerViewer; j++ {
				d, err := readFeed(token)
				mu.Lock()
				if err != nil {
					errCount++
				} else {
					latencies = append(latencies, d)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	if len(latencies) == 0 {
		fmt.Printf("all %d requests failed\n", errCount)
		return
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	p := func(q float64) time.Duration {
		return latencies[int(float64(len(latencies)-1)*q)]
	}

	total := len(latencies) + errCount
	fmt.Println("---- feed read results ----")
	fmt.Printf("requests: %d  errors: %d  elapsed: %v\n", total, errCount, elapsed.Round(time.Millisecond))
	fmt.Printf("throughput: %.0f req/s\n", float64(total)/elapsed.Seconds())
	fmt.Printf("latency p50=%v p95=%v p99=%v max=%v\n",
		p(0.50).Round(time.Millisecond),
		p(0.95).Round(time.Millisecond),
		p(0.99).Round(time.Millisecond),
		latencies[len(latencies)-1].Round(time.Millisecond))
}
