package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	httpadapter "portfolio/internal/adapter/http"
	"portfolio/internal/adapter/notify"
	"portfolio/internal/adapter/repository"
	"portfolio/internal/model"
	"portfolio/internal/seed"
	"portfolio/internal/usecase"
	"portfolio/pkg/infrastructure"
)

// Boots the API on a throwaway sqlite database and drives it over real HTTP.

type stubRenderer struct{}

func (stubRenderer) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	return []byte("%PDF-1.4\n% smoke " + fmt.Sprint(len(html)) + " bytes of html\n"), nil
}

type check struct {
	method string
	path   string
	body   string
	want   int
}

func main() {
	seedFile := flag.String("seed", "seed/portfolio.yaml", "seed document loaded before the checks")
	realPDF := flag.Bool("chrome", false, "render /resume.pdf with headless Chrome instead of a stub")
	flag.Parse()

	dir, err := os.MkdirTemp("", "portfolio-smoke-")
	if err != nil {
		log.Fatalf("temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	db, err := infrastructure.NewSQLite(filepath.Join(dir, "smoke.db"))
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer infrastructure.CloseSQLite(db)

	store := repository.NewGormStore(db)
	if err := store.AutoMigrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	doc, err := seed.Load(*seedFile)
	if err != nil {
		log.Fatalf("load seed: %v", err)
	}
	if _, err := seed.Apply(ctx, store, doc); err != nil {
		log.Fatalf("apply seed: %v", err)
	}

	v, err := model.NewValidator()
	if err != nil {
		log.Fatalf("validator: %v", err)
	}
	var renderer usecase.Renderer = stubRenderer{}
	if *realPDF {
		renderer = infrastructure.NewChromedpRenderer(os.Getenv("CHROME_PATH"), time.Minute)
	}
	h := httpadapter.NewHandler(store, v,
		usecase.NewContactService(v, notify.LogNotifier{}),
		usecase.NewResumeService(store, renderer),
		"",
	)
	app := httpadapter.NewApp(h, httpadapter.Options{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	go func() {
		if err := app.Listener(ln); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()
	defer app.Shutdown()

	base := "http://" + ln.Addr().String()
	client := &http.Client{Timeout: 90 * time.Second}

	checks := []check{
		{method: http.MethodGet, path: "/healthz", want: http.StatusOK},
		{method: http.MethodGet, path: "/api/portfolio/personal-info", want: http.StatusOK},
		{method: http.MethodGet, path: "/api/portfolio/skills", want: http.StatusOK},
		{method: http.MethodGet, path: "/api/portfolio/skills?category=soft", want: http.StatusOK},
		{method: http.MethodGet, path: "/api/portfolio/education", want: http.StatusOK},
		{method: http.MethodGet, path: "/api/portfolio/experience", want: http.StatusOK},
		{method: http.MethodGet, path: "/api/portfolio/projects", want: http.StatusOK},
		{method: http.MethodGet, path: "/api/portfolio/projects/1/technologies", want: http.StatusOK},
		{method: http.MethodGet, path: "/api/portfolio/technologies", want: http.StatusOK},
		{method: http.MethodPost, path: "/api/portfolio/skills", body: `{"name":"Go","category":"technical","ordinal":17}`, want: http.StatusCreated},
		{method: http.MethodPost, path: "/api/portfolio/skills", body: `{"category":"technical","ordinal":18}`, want: http.StatusBadRequest},
		{method: http.MethodPatch, path: "/api/portfolio/skills/1", body: `{"proficiency":95}`, want: http.StatusOK},
		{method: http.MethodGet, path: "/api/portfolio/skills/9999", want: http.StatusNotFound},
		{method: http.MethodGet, path: "/api/portfolio/skills/abc", want: http.StatusBadRequest},
		{method: http.MethodPost, path: "/api/portfolio/projects/1/technologies/1", want: http.StatusCreated},
		{method: http.MethodPost, path: "/api/contact", body: `{"name":"Smoke","email":"smoke@example.com","subject":"Smoke test","message":"Checking the contact form."}`, want: http.StatusOK},
		{method: http.MethodPost, path: "/api/contact", body: `{"name":"S","email":"nope","subject":"x","message":"y"}`, want: http.StatusBadRequest},
		{method: http.MethodGet, path: "/resume.pdf", want: http.StatusOK},
	}

	failed := 0
	for _, c := range checks {
		status, body, err := do(ctx, client, c.method, base+c.path, c.body)
		if err != nil {
			fmt.Printf("FAIL %-6s %s: %v\n", c.method, c.path, err)
			failed++
			continue
		}
		mark := "ok  "
		if status != c.want {
			mark = "FAIL"
			failed++
		}
		fmt.Printf("%s %-6s %-50s %d (want %d) %s\n", mark, c.method, c.path, status, c.want, summarize(body))
	}

	if failed > 0 {
		fmt.Printf("%d of %d checks failed\n", failed, len(checks))
		os.Exit(1)
	}
	fmt.Printf("all %d checks passed\n", len(checks))
}

func do(ctx context.Context, client *http.Client, method, url, body string) (int, []byte, error) {
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return 0, nil, err
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	return resp.StatusCode, b, err
}

// summarize shortens a response for the report: item counts for lists, the
// message for errors, the size for anything else.
func summarize(body []byte) string {
	var list []json.RawMessage
	if json.Unmarshal(body, &list) == nil {
		return fmt.Sprintf("[%d items]", len(list))
	}
	var obj struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &obj) == nil && obj.Message != "" {
		return obj.Message
	}
	return fmt.Sprintf("(%d bytes)", len(body))
}
