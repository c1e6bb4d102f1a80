package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vasu1712/zenith-backend/internal/auth"
	"github.com/Vasu1712/zenith-backend/internal/registration"
	"github.com/Vasu1712/zenith-backend/internal/render"
	"github.com/Vasu1712/zenith-backend/internal/scene"
	"github.com/Vasu1712/zenith-backend/internal/server"
	"github.com/Vasu1712/zenith-backend/internal/storage/memory"
	"github.com/Vasu1712/zenith-backend/internal/ws"
)

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	gate, err := auth.NewGate(auth.Settings{
		AuthURL:       "http://zenith.test",
		Secret:        "client-test",
		AdminEmail:    "admin@zenith.test",
		AdminPassword: "pw",
		BcryptCost:    bcrypt.MinCost,
	})
	require.NoError(t, err)

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(server.NewRouter(server.Deps{
		Registry:      scene.NewRegistry(),
		Hub:           hub,
		Service:       registration.NewService(memory.NewRegistrationStore()),
		Gate:          gate,
		RenderOptions: render.Options{FrameInterval: 10 * time.Millisecond},
		CORSOrigin:    "http://127.0.0.1:5173",
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-hub.Stopped()
	})
	return srv
}

func form() registration.Form {
	return registration.Form{Name: "Ada", Email: "ada@example.com", College: "IIT", Year: "2", Phone: "5550100"}
}

func TestClient_SubmitAndList(t *testing.T) {
	srv := startServer(t)
	c := New(srv.URL + "/")
	ctx := context.Background()

	require.NoError(t, c.Submit(ctx, form()))

	_, err := c.ListRegistrations(ctx)
	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusUnauthorized, serr.Code)

	_, err = c.Login(ctx, "admin@zenith.test", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, c.Token)

	recs, err := c.ListRegistrations(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "ada@example.com", recs[0].Email)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Registrations)
}

func TestClient_SubmitValidationError(t *testing.T) {
	srv := startServer(t)
	c := New(srv.URL)
	f := form()
	f.College = ""

	err := c.Submit(context.Background(), f)
	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusBadRequest, serr.Code)
	assert.Contains(t, serr.Message, "college")
}

func TestClient_LoginRejected(t *testing.T) {
	srv := startServer(t)
	c := New(srv.URL)

	_, err := c.Login(context.Background(), "admin@zenith.test", "wrong")
	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusUnauthorized, serr.Code)
	assert.Equal(t, "Invalid email or password", serr.Message)
	assert.Empty(t, c.Token)
}

func TestClient_DrivesFlow(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	fl := registration.NewFlow(New(srv.URL), time.Second)
	t.Cleanup(fl.Stop)

	assert.Equal(t, registration.StatusFailure, fl.Submit(context.Background(), form()))
	assert.EqualValues(t, 1, hits.Load())
}
