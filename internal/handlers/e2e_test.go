package handlers

import (
	"bytes"
	"net/http"
	"testing"

	"simaset/internal/model"
	"simaset/internal/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) mustPoldaAPI(t *testing.T, name string) string {
	t.Helper()
	resp, data := ts.do(t, http.MethodPost, "/api/polda", map[string]any{"name": name}, adminSession(t))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create polda: %d %s", resp.StatusCode, data)
	}
	return decode(t, data)["polda"].(map[string]any)["id"].(string)
}

func (ts *testServer) mustPolresAPI(t *testing.T, name, poldaID string) string {
	t.Helper()
	resp, data := ts.do(t, http.MethodPost, "/api/polres", map[string]any{"name": name, "poldaId": poldaID}, adminSession(t))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create polres: %d %s", resp.StatusCode, data)
	}
	return decode(t, data)["polres"].(map[string]any)["id"].(string)
}

// Сквозной сценарий: регистрация → PENDING → одобрение админом → вход → профиль
func TestE2E_RegisterApproveLogin(t *testing.T) {
	ts := newTestServer(t)
	poldaID := ts.mustPoldaAPI(t, "Polda Metro Jaya")
	polresID := ts.mustPolresAPI(t, "Polres Jakarta Selatan", poldaID)

	resp, data := ts.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"nrp": "87020990", "name": "Budi Santoso", "email": "budi@polri.test",
		"password": "rahasia1", "role": "USER", "poldaId": poldaID, "polresId": polresID,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "register: %s", data)
	user := decode(t, data)["user"].(map[string]any)
	assert.Equal(t, "PENDING", user["status"])
	assert.NotContains(t, string(data), "rahasia1", "пароль не утекает в ответ")

	login := map[string]any{"email": "budi@polri.test", "password": "rahasia1"}
	resp, data = ts.do(t, http.MethodPost, "/api/auth/login", login, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Akun belum disetujui", decode(t, data)["message"])

	resp, data = ts.do(t, http.MethodGet, "/api/users/pending-count", nil, adminSession(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, decode(t, data)["count"])

	resp, data = ts.do(t, http.MethodPatch, "/api/users/"+user["id"].(string)+"/approve", nil, adminSession(t))
	require.Equal(t, http.StatusOK, resp.StatusCode, "approve: %s", data)

	resp, data = ts.do(t, http.MethodPost, "/api/auth/login", login, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "login: %s", data)
	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "auth_token" {
			session = c
		}
	}
	require.NotNil(t, session, "login должен ставить cookie сессии")

	resp, data = ts.do(t, http.MethodGet, "/api/auth/me", nil, session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "budi@polri.test", decode(t, data)["user"].(map[string]any)["email"])

	// повторное одобрение — недопустимый переход
	resp, _ = ts.do(t, http.MethodPatch, "/api/users/"+user["id"].(string)+"/approve", nil, adminSession(t))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Дубль инвентарного номера через API
func TestE2E_AssetDuplicateInventoryNumber(t *testing.T) {
	ts := newTestServer(t)
	poldaID := ts.mustPoldaAPI(t, "Polda Metro Jaya")
	polresID := ts.mustPolresAPI(t, "Polres Jaksel", poldaID)

	asset := map[string]any{"name": "Mobil Patroli", "polresId": polresID, "inventoryNumber": "INV-001"}
	resp, data := ts.do(t, http.MethodPost, "/api/assets", asset, adminSession(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create: %s", data)

	asset["name"] = "Motor Patroli"
	resp, data = ts.do(t, http.MethodPost, "/api/assets", asset, adminSession(t))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Inventory number sudah digunakan", decode(t, data)["message"])
}

// Polres вне выбранного Polda отклоняется при создании пользователя
func TestE2E_UserCreate_MismatchedRegion(t *testing.T) {
	ts := newTestServer(t)
	poldaA := ts.mustPoldaAPI(t, "Polda A")
	poldaB := ts.mustPoldaAPI(t, "Polda B")
	polresB := ts.mustPolresAPI(t, "Polres B-1", poldaB)

	resp, data := ts.do(t, http.MethodPost, "/api/users", map[string]any{
		"nrp": "1", "name": "Andi", "email": "andi@polri.test", "password": "rahasia1",
		"role": "USER", "poldaId": poldaA, "polresId": polresB,
	}, adminSession(t))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Polres yang dipilih tidak termasuk dalam Polda tersebut", decode(t, data)["message"])
}

// POLRES-вызывающий видит только активы своего подразделения; формат пагинации
func TestE2E_AssetList_ScopedByPolres(t *testing.T) {
	ts := newTestServer(t)
	poldaID := ts.mustPoldaAPI(t, "Polda Scope")
	polresA := ts.mustPolresAPI(t, "Polres A", poldaID)
	polresB := ts.mustPolresAPI(t, "Polres B", poldaID)

	admin := adminSession(t)
	for _, a := range []map[string]any{
		{"name": "Senter A", "polresId": polresA},
		{"name": "Senter B", "polresId": polresB},
	} {
		resp, data := ts.do(t, http.MethodPost, "/api/assets", a, admin)
		require.Equal(t, http.StatusCreated, resp.StatusCode, "create: %s", data)
	}

	polresSession := sessionCookie(t, scope.Caller{
		UserID: "op", Role: model.RolePolres, PoldaID: poldaID, PolresID: polresA,
	})
	resp, data := ts.do(t, http.MethodGet, "/api/assets", nil, polresSession)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, data)
	assets := body["assets"].([]any)
	require.Len(t, assets, 1)
	assert.Equal(t, "Senter A", assets[0].(map[string]any)["name"])

	pg := body["pagination"].(map[string]any)
	for _, key := range []string{"page", "limit", "total", "totalPages", "hasNext", "hasPrev"} {
		assert.Contains(t, pg, key)
	}
	assert.EqualValues(t, 1, pg["total"])
}

// Гварды доступа: аноним — 401, недостаточная роль — 403
func TestE2E_RoleGuards(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := ts.do(t, http.MethodGet, "/api/assets", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	userSession := sessionCookie(t, scope.Caller{UserID: "u", Role: model.RoleUser})
	resp, _ = ts.do(t, http.MethodGet, "/api/users", nil, userSession)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/api/polda", map[string]any{"name": "X"}, userSession)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodGet, "/api/polda", nil, userSession)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Чужая строка неотличима от несуществующей
func TestE2E_OutOfScopeLooksNotFound(t *testing.T) {
	ts := newTestServer(t)
	poldaA := ts.mustPoldaAPI(t, "Polda A")
	poldaB := ts.mustPoldaAPI(t, "Polda B")
	polresB := ts.mustPolresAPI(t, "Polres B-1", poldaB)

	session := sessionCookie(t, scope.Caller{UserID: "pa", Role: model.RolePolda, PoldaID: poldaA})
	resp, data := ts.do(t, http.MethodGet, "/api/polres/"+polresB, nil, session)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Polres tidak ditemukan", decode(t, data)["message"])

	resp, _ = ts.do(t, http.MethodGet, "/api/polres/does-not-exist", nil, session)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Экспорт отчёта: заголовки файла и неподдерживаемый формат
func TestE2E_ReportExport(t *testing.T) {
	ts := newTestServer(t)
	poldaID := ts.mustPoldaAPI(t, "Polda E")
	polresID := ts.mustPolresAPI(t, "Polres E", poldaID)
	admin := adminSession(t)

	resp, data := ts.do(t, http.MethodPost, "/api/reports", map[string]any{
		"title": "Laporan Bulanan", "type": "GENERAL", "description": "rekap", "polresId": polresID,
	}, admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create report: %s", data)
	id := decode(t, data)["report"].(map[string]any)["id"].(string)

	resp, data = ts.do(t, http.MethodGet, "/api/reports/"+id+"/export?format=pdf", nil, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="laporan-`+id+`.pdf"`, resp.Header.Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	resp, _ = ts.do(t, http.MethodGet, "/api/reports/"+id+"/export?format=excel", nil, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	resp, _ = ts.do(t, http.MethodGet, "/api/reports/"+id+"/export?format=doc", nil, admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// QR-эндпоинт отдаёт PNG
func TestE2E_AssetQR(t *testing.T) {
	ts := newTestServer(t)
	poldaID := ts.mustPoldaAPI(t, "Polda QR")
	polresID := ts.mustPolresAPI(t, "Polres QR", poldaID)
	admin := adminSession(t)

	resp, data := ts.do(t, http.MethodPost, "/api/assets", map[string]any{
		"name": "Drone", "polresId": polresID,
	}, admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode(t, data)["asset"].(map[string]any)["id"].(string)

	resp, data = ts.do(t, http.MethodGet, "/api/assets/"+id+"/qr", nil, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

// Неизвестные поля тела отклоняются
func TestE2E_UnknownFieldRejected(t *testing.T) {
	ts := newTestServer(t)
	resp, _ := ts.do(t, http.MethodPost, "/api/polda", map[string]any{"nama": "Polda X"}, adminSession(t))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Bootstrap администратора через API
func TestE2E_AdminSetup(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"name": "Administrator", "email": "admin@polri.test",
		"password": "admin12345", "nrp": "ADMIN001", "secretKey": "setup-secret",
	}
	resp, data := ts.do(t, http.MethodPost, "/api/admin/setup", body, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "setup: %s", data)
	assert.Equal(t, "ADMIN", decode(t, data)["user"].(map[string]any)["role"])

	body["secretKey"] = "wrong"
	resp, _ = ts.do(t, http.MethodPost, "/api/admin/setup", body, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
