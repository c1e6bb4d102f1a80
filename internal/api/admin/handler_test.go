package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vasu1712/zenith-backend/internal/auth"
	"github.com/Vasu1712/zenith-backend/internal/middleware"
	"github.com/Vasu1712/zenith-backend/internal/registration"
	"github.com/Vasu1712/zenith-backend/internal/scene"
	"github.com/Vasu1712/zenith-backend/internal/storage/memory"
	"github.com/Vasu1712/zenith-backend/internal/ws"
)

const (
	adminEmail    = "admin@zenith.test"
	adminPassword = "letmein"
)

type fixture struct {
	router  *mux.Router
	service *registration.Service
}

func setup(t *testing.T) fixture {
	t.Helper()
	gate, err := auth.NewGate(auth.Settings{
		AuthURL:       "http://localhost:8080",
		Secret:        "admin-test",
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
		BcryptCost:    bcrypt.MinCost,
	})
	require.NoError(t, err)

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.Stopped()
	})

	svc := registration.NewService(memory.NewRegistrationStore())
	r := mux.NewRouter()
	RegisterAdminRoutes(r, &AdminHandler{Gate: gate, Service: svc, Hub: hub})
	return fixture{router: r, service: svc}
}

func (f fixture) do(method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f fixture) login(t *testing.T) string {
	t.Helper()
	rec := f.do(http.MethodPost, "/api/v1/admin/login", `{"email":"`+adminEmail+`","password":"`+adminPassword+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestLogin_SetsCookie(t *testing.T) {
	f := setup(t)
	rec := f.do(http.MethodPost, "/api/v1/admin/login", `{"email":"`+adminEmail+`","password":"`+adminPassword+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := setup(t)
	rec := f.do(http.MethodPost, "/api/v1/admin/login", `{"email":"`+adminEmail+`","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid email or password"}`, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogin_BadJSON(t *testing.T) {
	f := setup(t)
	rec := f.do(http.MethodPost, "/api/v1/admin/login", `not json`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_OversizedBody(t *testing.T) {
	f := setup(t)
	body := `{"email":"` + adminEmail + `","password":"` + strings.Repeat("x", 2*maxLoginBytes) + `"}`
	rec := f.do(http.MethodPost, "/api/v1/admin/login", body, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestProtectedRoutes_RequireAdmin(t *testing.T) {
	f := setup(t)
	for _, path := range []string{"/api/v1/admin/session", "/api/v1/admin/registrations", "/api/v1/admin/stats"} {
		rec := f.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)

		rec = f.do(http.MethodGet, path, "", "forged.token.value")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestSession(t *testing.T) {
	f := setup(t)
	token := f.login(t)

	rec := f.do(http.MethodGet, "/api/v1/admin/session", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, adminEmail, res["email"])
	assert.Equal(t, auth.RoleAdmin, res["role"])
}

func TestListRegistrations(t *testing.T) {
	f := setup(t)
	token := f.login(t)

	rec := f.do(http.MethodGet, "/api/v1/admin/registrations", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"registrations":[]}`, rec.Body.String())

	_, err := f.service.Register(context.Background(), registration.Form{
		Name: "Ada", Email: "ada@example.com", College: "IIT", Year: "1", Phone: "5550100",
	})
	require.NoError(t, err)

	rec = f.do(http.MethodGet, "/api/v1/admin/registrations", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var res RegistrationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Registrations, 1)
	assert.Equal(t, "ada@example.com", res.Registrations[0].Email)
}

func TestStats(t *testing.T) {
	f := setup(t)
	token := f.login(t)

	rec := f.do(http.MethodGet, "/api/v1/admin/stats", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var res StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Zero(t, res.Registrations)
	assert.Zero(t, res.Connected)
	assert.Len(t, res.Viewers, len(scene.Pages()))
}

func TestLogout_ClearsCookie(t *testing.T) {
	f := setup(t)
	rec := f.do(http.MethodPost, "/api/v1/admin/logout", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
