package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/exec"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	mockPort = 9091
	appPort  = 8081
)

var mockRecipe = `{"title":"Bench Pasta","description":"Benchmark dish","prepTime":5,"cookTime":10,` +
	`"difficulty":"easy","cuisine":"italian","instructions":["Mix","Cook"],` +
	`"ingredients":[{"name":"pasta","amount":"200","unit":"g"}],"tags":["bench"]}`

var ingredientPool = []string{
	"tomato", "basil", "pasta", "garlic", "onion", "chicken", "rice",
	"pepper", "mushroom", "spinach", "cheese", "lemon", "thyme", "cream",
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Duration of the test")
	rate := flag.Int("rate", 50, "Requests per second")
	unique := flag.Bool("unique", false, "Send unique ingredient sets (defeats the cache)")
	flag.Parse()

	go startMockOllama()

	fmt.Println("Building application...")
	buildCmd := exec.Command("go", "build", "-o", "bin/server", "./cmd/server")
	buildCmd.Stdout = os.Stdout
	buildCmd.Stderr = os.Stderr
	if err := buildCmd.Run(); err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	configFile := "bench_config.yaml"
	if err := os.WriteFile(configFile, []byte(benchConfig), 0644); err != nil {
		log.Fatalf("Failed to write config: %v", err)
	}
	defer os.Remove(configFile)

	fmt.Println("Starting application...")
	cmd := exec.Command("./bin/server")
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("CONFIG_FILE=%s", configFile),
		"LOG_LEVEL=error",
	)

	logFile, _ := os.Create("bench_server.log")
	defer logFile.Close()
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}
	defer func() {
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	}()

	waitForApp(fmt.Sprintf("http://localhost:%d/health", appPort))

	token := registerBenchUser()

	mode := "cached (repeated ingredients)"
	if *unique {
		mode = "uncached (unique ingredients)"
	}
	fmt.Printf("Running %s benchmark: %s duration, %d req/s\n", mode, *duration, *rate)

	targeter := func(t *vegeta.Target) error {
		ingredients := []string{"tomato", "basil", "pasta"}
		if *unique {
			ingredients = randomIngredients()
		}
		body, _ := json.Marshal(map[string]interface{}{
			"ingredients": ingredients,
			"servings":    2,
		})

		t.Method = "POST"
		t.URL = fmt.Sprintf("http://localhost:%d/v1/recipes/generate", appPort)
		t.Body = body
		t.Header = http.Header{
			"Content-Type":  []string{"application/json"},
			"Authorization": []string{"Bearer " + token},
		}
		return nil
	}

	attacker := vegeta.NewAttacker(vegeta.KeepAlive(true))
	var metrics vegeta.Metrics

	for res := range attacker.Attack(targeter, vegeta.Rate{Freq: *rate, Per: time.Second}, *duration, "Benchmark") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("--------------------------------------------------")
	fmt.Println("99th percentile: ", metrics.Latencies.P99)
	fmt.Println("Mean:            ", metrics.Latencies.Mean)
	fmt.Println("Max:             ", metrics.Latencies.Max)
	fmt.Printf("Success:         %.2f%%\n", metrics.Success*100)
	fmt.Printf("Throughput:      %.2f req/s\n", metrics.Throughput)
	fmt.Println("--------------------------------------------------")

	if len(metrics.Errors) > 0 {
		fmt.Println("Error Set (first 5 unique):")

		uniqueErrors := make(map[string]bool)
		count := 0
		for _, msg := range metrics.Errors {
			if !uniqueErrors[msg] && count < 5 {
				fmt.Println(msg)

				uniqueErrors[msg] = true
				count++
			}
		}
	}

	printCacheStats(token)
	os.Remove("bench.db")
}

func randomIngredients() []string {
	n := 3 + rand.Intn(3)
	picked := make([]string, 0, n)
	seen := make(map[string]bool)
	for len(picked) < n {
		ing := ingredientPool[rand.Intn(len(ingredientPool))]
		if !seen[ing] {
			seen[ing] = true
			picked = append(picked, ing)
		}
	}
	// Salt one entry so every set fingerprints differently
	picked = append(picked, fmt.Sprintf("spice-%d", rand.Int63()))
	return picked
}

func registerBenchUser() string {
	body := `{"name":"Bench User","email":"bench@example.com","password":"bench-password-1"}`
	resp, err := http.Post(
		fmt.Sprintf("http://localhost:%d/v1/auth/register", appPort),
		"application/json",
		bytes.NewReader([]byte(body)),
	)
	if err != nil {
		log.Fatalf("Failed to register bench user: %v", err)
	}
	defer resp.Body.Close()

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil || auth.AccessToken == "" {
		log.Fatalf("Failed to parse auth response (status %d)", resp.StatusCode)
	}
	return auth.AccessToken
}

func printCacheStats(token string) {
	req, _ := http.NewRequest("GET",
		fmt.Sprintf("http://localhost:%d/v1/admin/cache/stats", appPort), nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	var stats struct {
		ValidEntries int64   `json:"valid_entries"`
		TotalEntries int64   `json:"total_entries"`
		HitRate      float64 `json:"hit_rate"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return
	}

	fmt.Printf("Cache: %d valid / %d total entries (hit rate %.2f)\n",
		stats.ValidEntries, stats.TotalEntries, stats.HitRate)
}

func startMockOllama() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"models":[{"name":"mistral"}]}`))
	})

	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(25 * time.Millisecond)

		out, _ := json.Marshal(map[string]interface{}{
			"model":      "mistral",
			"response":   mockRecipe,
			"done":       true,
			"eval_count": 128,
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(out)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	_ = http.ListenAndServe(fmt.Sprintf(":%d", mockPort), mux)
}

func waitForApp(url string) {
	for i := 0; i < 20; i++ {
		resp, err := http.Get(url)
		if err == nil && resp.StatusCode == 200 {
			return
		}
		time.Sleep(500 * time.Millisecond)
	}
	log.Fatal("App timed out")
}

var benchConfig = fmt.Sprintf(`
server:
  port: "%d"
  env: development
database:
  dsn: "bench.db"
llm:
  base_url: "http://localhost:%d"
  model: "mistral"
auth:
  jwt_secret: "bench-secret-0123456789abcdef"
rate_limit:
  requests_per_second: 100000
  burst: 100000
`, appPort, mockPort)
