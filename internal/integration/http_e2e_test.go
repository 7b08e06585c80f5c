//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	server "business_reviews/internal/adapters/http_server"
	redisad "business_reviews/internal/adapters/redis"
	"business_reviews/internal/app"
	"business_reviews/internal/storage/sqlstore"
)

// ---------- helpers ----------

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	raw, _ := json.Marshal(body)
	res, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer res.Body.Close()
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return res.StatusCode
}

func do(t *testing.T, method, url string) int {
	t.Helper()
	req, _ := http.NewRequest(method, url, nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	res.Body.Close()
	return res.StatusCode
}

// startAPI wires the real router to MySQL in a container and a miniredis guard.
func startAPI(t *testing.T) *httptest.Server {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=business_reviews",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/business_reviews?charset=utf8mb4&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sqlstore.Open(context.Background(), sqlstore.MySQL, dsn)
		return e
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := sqlstore.New(db, sqlstore.MySQL)
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	guard := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = guard.Close() })

	srv := server.New(server.Options{})
	srv.MountHandlers(&server.Handlers{
		Businesses: app.NewBusinessService(store),
		Reviews:    app.NewReviewService(store, guard, 5*time.Second),
		Lodgings:   app.NewLodgingService(store),
		Ping:       db.PingContext,
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

// ---------- the test ----------

func TestHTTP_EndToEnd_MySQL(t *testing.T) {
	ts := startAPI(t)

	var biz struct {
		ID   int64  `json:"id"`
		Self string `json:"self"`
	}
	code := postJSON(t, ts.URL+"/businesses", map[string]any{
		"owner_id": 1, "name": "E2E Diner", "street_address": "1 Test Way",
		"city": "Portland", "state": "OR", "zip_code": 97201,
	}, &biz)
	if code != http.StatusCreated || biz.Self != fmt.Sprintf("%s/businesses/%d", ts.URL, biz.ID) {
		t.Fatalf("create business: %d %+v", code, biz)
	}

	// concurrent identical submissions: exactly one wins
	const n = 8
	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			raw := fmt.Sprintf(`{"user_id":42,"business_id":%d,"stars":5}`, biz.ID)
			res, err := http.Post(ts.URL+"/reviews", "application/json", bytes.NewBufferString(raw))
			if err != nil {
				return // codes[i] stays 0 and fails below
			}
			res.Body.Close()
			codes[i] = res.StatusCode
		}(i)
	}
	wg.Wait()
	created := 0
	for _, c := range codes {
		switch c {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
		default:
			t.Fatalf("unexpected status %d", c)
		}
	}
	if created != 1 {
		t.Fatalf("want exactly one created review, got %d (%v)", created, codes)
	}

	var reviews []struct {
		Self string `json:"self"`
	}
	res, err := http.Get(ts.URL + "/users/42/reviews")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	_ = json.NewDecoder(res.Body).Decode(&reviews)
	res.Body.Close()
	if len(reviews) != 1 {
		t.Fatalf("want 1 stored review, got %d", len(reviews))
	}

	if c := do(t, http.MethodDelete, biz.Self); c != http.StatusNoContent {
		t.Fatalf("delete business: %d", c)
	}
	if c := do(t, http.MethodGet, reviews[0].Self); c != http.StatusNotFound {
		t.Fatalf("review after cascade: %d", c)
	}
	if c := do(t, http.MethodDelete, biz.Self); c != http.StatusNotFound {
		t.Fatalf("second delete: %d", c)
	}
}
