//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

func TestSystem_E2E(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := &http.Client{Jar: jar, Timeout: 5 * time.Second}

	code := fmt.Sprintf("CS%d%d", time.Now().Unix()%100000, rand.Intn(1000))

	resp, err := client.PostForm(baseURL+"/courses/new", url.Values{
		"code":          {code},
		"name":          {"Integration Testing"},
		"instructor":    {"Dr. E2E"},
		"semester":      {"Fall"},
		"schedule":      {"TTh 2pm"},
		"classroom":     {"Rm42"},
		"prerequisites": {"None"},
		"grading":       {"Letter"},
		"description":   {"Added by the system test"},
	})
	if err != nil {
		t.Fatalf("add course: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("add course: status=%d\n%s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), code) {
		t.Fatalf("expected %s in catalog listing after add", code)
	}

	var courses []map[string]any
	getJSON(t, client, baseURL+"/api/courses", &courses)

	found := false
	for _, c := range courses {
		if c["code"] == code {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("course %s missing from /api/courses", code)
	}

	var course map[string]any
	getJSON(t, client, baseURL+"/api/courses/"+code, &course)
	if course["instructor"] != "Dr. E2E" {
		t.Fatalf("unexpected course detail: %#v", course)
	}
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func getJSON(t *testing.T, client *http.Client, url string, out any) {
	t.Helper()

	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("GET %s: status=%d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
