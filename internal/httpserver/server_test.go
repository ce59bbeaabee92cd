package httpserver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/naitik09090/backend-games/internal/auth"
	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/games"
	"github.com/naitik09090/backend-games/internal/httpserver/deps"
	"github.com/naitik09090/backend-games/internal/logger"
	"github.com/naitik09090/backend-games/internal/metrics"
	"github.com/naitik09090/backend-games/internal/store/docs"
	"github.com/naitik09090/backend-games/internal/store/memory"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func newTestDeps(t *testing.T, st domain.Store) deps.Deps {
	t.Helper()
	log := logger.New("error", false)
	tokens, err := auth.NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	hasher, err := auth.NewHasher(4)
	if err != nil {
		t.Fatal(err)
	}
	return deps.Deps{
		Logger:         log,
		StartTime:      time.Now(),
		Version:        "test",
		Store:          st,
		Lister:         domain.NewLister(st.Local(), st.Catalog(), 50),
		Resolver:       domain.NewResolver(st.Local(), st.Catalog()),
		Games:          games.NewService(st.Local(), log),
		Catalog:        games.NewCatalog(st.Catalog(), log),
		Auth:           auth.NewService(st.Users(), hasher, tokens, log),
		Metrics:        metrics.New(),
		CORSOrigins:    []string{"*"},
		AuthRateLimit:  100,
		MaxUploadBytes: 1 << 20,
	}
}

type request struct {
	method string
	path   string
	body   io.Reader
	header map[string]string
	remote string
}

func do(t *testing.T, h http.Handler, req request) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(req.method, req.path, req.body)
	if req.body != nil && r.Header.Get("Content-Type") == "" {
		r.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.header {
		r.Header.Set(k, v)
	}
	if req.remote != "" {
		r.RemoteAddr = req.remote
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}

func TestProbes(t *testing.T) {
	h := NewRouter(time.Second, newTestDeps(t, memory.New()))

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{path: "/", wantStatus: http.StatusOK, wantBody: "Hello World"},
		{path: "/healthz", wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
		{path: "/readyz", wantStatus: http.StatusOK, wantBody: `"ready":true`},
		{path: "/infra", wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
		{path: "/nope", wantStatus: http.StatusNotFound, wantBody: `"error":"route not found"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(t, h, request{method: "GET", path: tt.path})
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want to contain %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestGameLifecycle(t *testing.T) {
	h := NewRouter(time.Second, newTestDeps(t, memory.New()))

	rec := do(t, h, request{method: "POST", path: "/games", body: strings.NewReader(
		`{"gameName":"  Moto X3M ","gameLogo":"https://cdn.example/moto.png","iframs":"a, b ,c"}`)})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	created := decode[domain.View](t, rec)
	if created.Name != "Moto X3M" || !created.Active || created.Source != domain.SourceLocal {
		t.Errorf("created = %+v", created)
	}
	if strings.Join(created.EmbedLinks, "|") != "a|b|c" {
		t.Errorf("EmbedLinks = %q, want [a b c]", created.EmbedLinks)
	}
	path := "/games/" + created.ID

	rec = do(t, h, request{method: "GET", path: "/games/%20" + created.ID + "%20"})
	if rec.Code != http.StatusOK || decode[domain.View](t, rec).ID != created.ID {
		t.Fatalf("get with padded id: status %d, body %s", rec.Code, rec.Body)
	}

	rec = do(t, h, request{method: "PATCH", path: path + "/toggle-status"})
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d", rec.Code)
	}
	if got := decode[map[string]any](t, rec); got["status"] != false || got["message"] != "Status updated" {
		t.Errorf("toggle body = %v", got)
	}

	rec = do(t, h, request{method: "PUT", path: path, body: strings.NewReader(`{"gameName":"Moto X3M 2"}`)})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body)
	}
	updated := decode[domain.View](t, rec)
	if updated.Name != "Moto X3M 2" || updated.Logo.Value != "https://cdn.example/moto.png" || updated.Active {
		t.Errorf("updated = %+v", updated)
	}

	rec = do(t, h, request{method: "DELETE", path: path})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Game deleted successfully") {
		t.Fatalf("delete: status %d, body %s", rec.Code, rec.Body)
	}

	for _, method := range []string{"GET", "DELETE", "PATCH"} {
		p := path
		if method == "PATCH" {
			p += "/toggle-status"
		}
		rec = do(t, h, request{method: method, path: p})
		if rec.Code != http.StatusNotFound || errorBody(t, rec) != "game not found" {
			t.Errorf("%s after delete: status %d, body %s", method, rec.Code, rec.Body)
		}
	}
}

func TestCreateGameRejects(t *testing.T) {
	h := NewRouter(time.Second, newTestDeps(t, memory.New()))

	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"gameLogo":"https://x/y.png"}`},
		{name: "blank name", body: `{"gameName":"   ","gameLogo":"https://x/y.png"}`},
		{name: "missing logo", body: `{"gameName":"x"}`},
		{name: "malformed json", body: `{"gameName":`},
		{name: "bad links type", body: `{"gameName":"x","gameLogo":"y","iframs":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, request{method: "POST", path: "/games", body: strings.NewReader(tt.body)})
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body)
			}
			if errorBody(t, rec) == "" {
				t.Error("missing error message")
			}
		})
	}
}

func multipartBody(t *testing.T, fields map[string]string, file []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if file != nil {
		fw, err := w.CreateFormFile("gameLogo", "logo.bin")
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write(file)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestCreateGameMultipart(t *testing.T) {
	h := NewRouter(time.Second, newTestDeps(t, memory.New()))

	body, ct := multipartBody(t, map[string]string{"gameName": "Pong", "iframs": "https://a, ,https://b"}, pngHeader)
	rec := do(t, h, request{method: "POST", path: "/games", body: body, header: map[string]string{"Content-Type": ct}})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	v := decode[domain.View](t, rec)
	if !strings.HasPrefix(v.Logo.Value, "data:image/png;base64,") {
		t.Errorf("Logo = %.40q, want a png data URI", v.Logo.Value)
	}
	if strings.Join(v.EmbedLinks, "|") != "https://a|https://b" {
		t.Errorf("EmbedLinks = %q", v.EmbedLinks)
	}

	body, ct = multipartBody(t, map[string]string{"gameName": "Pong"}, []byte("just some text"))
	rec = do(t, h, request{method: "POST", path: "/games", body: body, header: map[string]string{"Content-Type": ct}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-image upload status = %d, want 400", rec.Code)
	}

	// Empty form fields leave the stored values alone on update.
	body, ct = multipartBody(t, map[string]string{"gameName": "", "iframs": ""}, nil)
	rec = do(t, h, request{method: "PUT", path: "/games/" + v.ID, body: body, header: map[string]string{"Content-Type": ct}})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body)
	}
	if got := decode[domain.View](t, rec); got.Name != "Pong" || len(got.EmbedLinks) != 2 {
		t.Errorf("after blank update = %+v", got)
	}
}

func TestListGamesTwoPhase(t *testing.T) {
	st := memory.New()
	d := newTestDeps(t, st)
	d.PublicBaseURL = "https://cdn.example"
	h := NewRouter(time.Second, d)
	ctx := context.Background()

	// The catalog record is newer but still listed after the local one.
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := st.Local().Insert(ctx, &domain.LocalGame{Name: "local", Logo: domain.ParseLogo("/images/a.jpg"), Active: true, CreatedAt: old}); err != nil {
		t.Fatal(err)
	}
	if err := st.Catalog().Insert(ctx, &domain.CatalogGame{DisplayName: "catalog", ImageURL: "https://x/c.png", FileURL: "https://x/play"}); err != nil {
		t.Fatal(err)
	}

	rec := do(t, h, request{method: "GET", path: "/games?page=1&limit=1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	p1 := decode[domain.Page](t, rec)
	if len(p1.Items) != 1 || p1.Items[0].Source != domain.SourceLocal || !p1.HasMore || p1.NextPage == nil || *p1.NextPage != 2 {
		t.Fatalf("page 1 = %+v", p1)
	}
	if got := p1.Items[0].Logo.Value; got != "https://cdn.example/images/a.jpg" {
		t.Errorf("resolved logo = %q", got)
	}

	p2 := decode[domain.Page](t, do(t, h, request{method: "GET", path: "/games?page=2&limit=1"}))
	if len(p2.Items) != 1 || p2.Items[0].Source != domain.SourceCatalog || p2.HasMore || p2.NextPage != nil {
		t.Fatalf("page 2 = %+v", p2)
	}
	if p2.Items[0].Name != "catalog" || p2.TotalCount != 2 || p2.TotalPages != 2 {
		t.Errorf("page 2 = %+v", p2)
	}

	all := decode[domain.Page](t, do(t, h, request{method: "GET", path: "/games?page=abc&limit=-3"}))
	if all.Page != 1 || all.PageSize != 50 || len(all.Items) != 2 {
		t.Errorf("defaults page = %+v", all)
	}
}

func TestGetGameUnknownIDs(t *testing.T) {
	h := NewRouter(time.Second, newTestDeps(t, memory.New()))
	for _, id := range []string{"not-an-id", domain.NewID()} {
		rec := do(t, h, request{method: "GET", path: "/games/" + id})
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET /games/%s status = %d, want 404", id, rec.Code)
		}
	}
}

func TestCatalogRoutes(t *testing.T) {
	h := NewRouter(time.Second, newTestDeps(t, memory.New()))

	rec := do(t, h, request{method: "POST", path: "/gm_games", body: strings.NewReader(
		`{"gameName":"Drift","gameLogo":"https://x/d.png","iframs":["https://play/d"]}`)})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	doc := decode[docs.Catalog](t, rec)
	if doc.Name != "Drift" || doc.GameName != "Drift" || doc.File != "https://play/d" || doc.Published != 1 {
		t.Errorf("created doc = %+v", doc)
	}
	path := "/gm_games/" + doc.ID.Hex()

	rec = do(t, h, request{method: "PUT", path: path, body: strings.NewReader(`{"gameName":"Drift Hunters"}`)})
	if rec.Code != http.StatusOK || decode[docs.Catalog](t, rec).Name != "Drift Hunters" {
		t.Fatalf("update: status %d, body %s", rec.Code, rec.Body)
	}

	list := decode[[]docs.Catalog](t, do(t, h, request{method: "GET", path: "/gm_games"}))
	if len(list) != 1 {
		t.Fatalf("list len = %d, want 1", len(list))
	}

	// The unified lookup falls back to the catalog.
	v := decode[domain.View](t, do(t, h, request{method: "GET", path: "/games/" + doc.ID.Hex()}))
	if v.Source != domain.SourceCatalog || v.Name != "Drift Hunters" {
		t.Errorf("resolved = %+v", v)
	}

	if rec = do(t, h, request{method: "DELETE", path: path}); rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec = do(t, h, request{method: "GET", path: path}); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestAuthFlow(t *testing.T) {
	h := NewRouter(time.Second, newTestDeps(t, memory.New()))
	creds := `{"username":"alice","password":"hunter2"}`

	rec := do(t, h, request{method: "POST", path: "/register", body: strings.NewReader(creds)})
	if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), "User created successfully") {
		t.Fatalf("register: status %d, body %s", rec.Code, rec.Body)
	}

	rec = do(t, h, request{method: "POST", path: "/register", body: strings.NewReader(creds)})
	if rec.Code != http.StatusBadRequest || errorBody(t, rec) != "Username already exists" {
		t.Errorf("duplicate register: status %d, body %s", rec.Code, rec.Body)
	}

	rec = do(t, h, request{method: "POST", path: "/login", body: strings.NewReader(creds)})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body)
	}
	sess := decode[auth.Session](t, rec)
	if sess.Token == "" || sess.User.Username != "alice" || sess.User.ID == "" {
		t.Errorf("session = %+v", sess)
	}

	rec = do(t, h, request{method: "POST", path: "/login", body: strings.NewReader(`{"username":"alice","password":"nope"}`)})
	if rec.Code != http.StatusBadRequest || errorBody(t, rec) != "Invalid username or password" {
		t.Errorf("bad login: status %d, body %s", rec.Code, rec.Body)
	}

	rec = do(t, h, request{method: "POST", path: "/register", body: strings.NewReader(`{}`)})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty register status = %d, want 400", rec.Code)
	}
}

func TestRequireAuth(t *testing.T) {
	d := newTestDeps(t, memory.New())
	d.RequireAuth = true
	h := NewRouter(time.Second, d)
	game := `{"gameName":"x","gameLogo":"https://x/y.png"}`

	rec := do(t, h, request{method: "POST", path: "/games", body: strings.NewReader(game)})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create status = %d, want 401", rec.Code)
	}

	rec = do(t, h, request{method: "POST", path: "/games", body: strings.NewReader(game),
		header: map[string]string{"Authorization": "Bearer nope"}})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token create status = %d, want 401", rec.Code)
	}

	creds := `{"username":"bob","password":"pw"}`
	do(t, h, request{method: "POST", path: "/register", body: strings.NewReader(creds)})
	sess := decode[auth.Session](t, do(t, h, request{method: "POST", path: "/login", body: strings.NewReader(creds)}))

	rec = do(t, h, request{method: "POST", path: "/games", body: strings.NewReader(game),
		header: map[string]string{"Authorization": "Bearer " + sess.Token}})
	if rec.Code != http.StatusCreated {
		t.Fatalf("authenticated create status = %d, body %s", rec.Code, rec.Body)
	}

	if rec = do(t, h, request{method: "GET", path: "/games"}); rec.Code != http.StatusOK {
		t.Errorf("anonymous list status = %d, want 200", rec.Code)
	}
}

func TestAuthRateLimit(t *testing.T) {
	d := newTestDeps(t, memory.New())
	d.AuthRateLimit = 2
	h := NewRouter(time.Second, d)

	var last *httptest.ResponseRecorder
	for range 3 {
		last = do(t, h, request{method: "POST", path: "/login", remote: "192.0.2.10:4000",
			body: strings.NewReader(`{"username":"x","password":"y"}`)})
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("third login status = %d, want 429", last.Code)
	}
	if errorBody(t, last) == "" {
		t.Error("429 without error body")
	}

	other := do(t, h, request{method: "POST", path: "/login", remote: "192.0.2.11:4000",
		body: strings.NewReader(`{"username":"x","password":"y"}`)})
	if other.Code == http.StatusTooManyRequests {
		t.Error("limit leaked across client IPs")
	}
}

func TestOpsEndpointsCIDR(t *testing.T) {
	d := newTestDeps(t, memory.New())
	d.AllowedCIDRS = []string{"10.0.0.0/8"}
	h := NewRouter(time.Second, d)

	for _, path := range []string{"/metrics", "/infra"} {
		if rec := do(t, h, request{method: "GET", path: path, remote: "192.0.2.1:1234"}); rec.Code != http.StatusForbidden {
			t.Errorf("%s from outside status = %d, want 403", path, rec.Code)
		}
	}

	do(t, h, request{method: "GET", path: "/games"})
	rec := do(t, h, request{method: "GET", path: "/metrics", remote: "10.1.2.3:1234"})
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `games_http_requests_total{method="GET",route="/games`) {
		t.Errorf("/metrics missing request counter:\n%s", rec.Body)
	}

	if rec := do(t, h, request{method: "GET", path: "/readyz", remote: "192.0.2.1:1234"}); rec.Code != http.StatusOK {
		t.Errorf("/readyz status = %d, want 200 for any client", rec.Code)
	}
}

func TestImages(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stickman.jpg"), []byte("jpeg-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	d := newTestDeps(t, memory.New())
	d.ImagesDir = dir
	h := NewRouter(time.Second, d)

	rec := do(t, h, request{method: "GET", path: "/images/stickman.jpg"})
	if rec.Code != http.StatusOK || rec.Body.String() != "jpeg-bytes" {
		t.Errorf("status = %d, body %q", rec.Code, rec.Body)
	}
	if rec := do(t, h, request{method: "GET", path: "/images/missing.jpg"}); rec.Code != http.StatusNotFound {
		t.Errorf("missing image status = %d, want 404", rec.Code)
	}
}

// brokenStore fails every local-game count and every ping.
type brokenStore struct {
	*memory.Store
	err error
}

type brokenLocal struct {
	domain.LocalGameStore
	err error
}

func (s brokenStore) Local() domain.LocalGameStore { return brokenLocal{s.Store.Local(), s.err} }

func (s brokenStore) Ping(context.Context) error { return s.err }

func (l brokenLocal) Count(context.Context) (int, error) { return 0, l.err }

func TestStoreFailures(t *testing.T) {
	st := brokenStore{Store: memory.New(), err: errors.New("connection refused")}
	d := newTestDeps(t, st)
	h := NewRouter(time.Second, d)

	rec := do(t, h, request{method: "GET", path: "/games"})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("list status = %d, want 500", rec.Code)
	}
	if msg := errorBody(t, rec); !strings.Contains(msg, "connection refused") {
		t.Errorf("error = %q, want the underlying message", msg)
	}
	if got := testutil.ToFloat64(d.Metrics.StoreFailures.WithLabelValues("count local games")); got != 1 {
		t.Errorf("store error metric = %v, want 1", got)
	}

	if rec := do(t, h, request{method: "GET", path: "/readyz"}); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz status = %d, want 503", rec.Code)
	}
	infra := decode[map[string]any](t, do(t, h, request{method: "GET", path: "/infra"}))
	if infra["status"] != "critical" {
		t.Errorf("infra status = %v, want critical", infra["status"])
	}
}
