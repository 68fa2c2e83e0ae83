package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"simaset/internal/config"
	"simaset/internal/middleware"
	"simaset/internal/model"
	"simaset/internal/repo"
	"simaset/internal/scope"
	"simaset/internal/service"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

const testSecret = "test-secret"

// testServer — полный HTTP-стек поверх in-memory SQLite.
type testServer struct {
	srv      *httptest.Server
	db       *gorm.DB
	services Services
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:" + name + "?mode=memory&cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}

	poldas := repo.NewPoldaRepository(db)
	polres := repo.NewPolresRepository(db)
	users := repo.NewUserRepository(db)
	assets := repo.NewAssetRepository(db)
	reports := repo.NewReportRepository(db)
	categories := repo.NewCategoryRepository(db)
	reportTypes := repo.NewCustomReportTypeRepository(db)

	userService := service.NewUserService(users, poldas, polres)
	services := Services{
		Auth:        service.NewAuthService(userService, users, "setup-secret"),
		Polda:       service.NewPoldaService(poldas),
		Polres:      service.NewPolresService(polres, poldas),
		Users:       userService,
		Assets:      service.NewAssetService(assets, polres, users, categories),
		Reports:     service.NewReportService(reports, polres, poldas),
		Categories:  service.NewCategoryService(categories),
		ReportTypes: service.NewCustomReportTypeService(reportTypes),
	}

	cfg := &config.Config{
		RunAddress:  "localhost:0",
		AuthSecret:  testSecret,
		CORSOrigins: []string{"http://localhost:3000"},
	}
	h := NewHandler(services, zap.NewNop().Sugar(), cfg)
	srv := httptest.NewServer(h.Router)
	t.Cleanup(srv.Close)
	return &testServer{srv: srv, db: db, services: services}
}

// sessionCookie подписывает cookie сессии для вызывающего.
func sessionCookie(t *testing.T, c scope.Caller) *http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	if err := middleware.SetLoginCookie(rr, c, testSecret); err != nil {
		t.Fatalf("sign session cookie: %v", err)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie issued")
	}
	return cookies[0]
}

func adminSession(t *testing.T) *http.Cookie {
	return sessionCookie(t, scope.Caller{UserID: "admin", Role: model.RoleAdmin})
}

// do выполняет запрос; body == nil — без тела, иначе сериализуется в JSON.
func (ts *testServer) do(t *testing.T, method, path string, body any, cookie *http.Cookie) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, rd)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := ts.srv.Client().Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp, data
}

// decode разбирает JSON-ответ в map для точечных проверок полей.
func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal response %q: %v", data, err)
	}
	return m
}
