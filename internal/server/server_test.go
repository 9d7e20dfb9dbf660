package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Daniangio/golem/internal/catalog"
	"github.com/Daniangio/golem/internal/game"
	"github.com/Daniangio/golem/internal/service"
	"github.com/Daniangio/golem/internal/store"
)

func newTestServer() *Server {
	log := logrus.New()
	log.SetOutput(io.Discard)
	engine := game.NewEngine(catalog.Default())
	svc := service.New(engine, store.NewMemoryStore(), store.NewNotifier(), nil, log)
	return New(svc, "test-secret", log)
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func guestToken(t *testing.T, handler http.Handler, name string) (uid, token string) {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/auth/guest", "", map[string]string{"name": name})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		UID   string `json:"uid"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.UID, resp.Token
}

func TestGuestLoginIssuesValidToken(t *testing.T) {
	s := newTestServer()
	r := s.Router()

	uid, token := guestToken(t, r, "Alice")
	require.NotEmpty(t, uid)

	parsedUID, name, err := s.parseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uid, parsedUID)
	assert.Equal(t, "Alice", name)
}

func TestGuestLoginRequiresName(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s.Router(), http.MethodPost, "/api/auth/guest", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer()
	r := s.Router()

	rec := doJSON(t, r, http.MethodPost, "/api/games", "", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/games", "not-a-token", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndJoinGame(t *testing.T) {
	s := newTestServer()
	r := s.Router()

	hostUID, hostToken := guestToken(t, r, "Host")
	_, guestTok := guestToken(t, r, "Two")

	rec := doJSON(t, r, http.MethodPost, "/api/games", hostToken,
		map[string]string{"visibility": "public", "mode": "campaign"})
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		ID        string `json:"id"`
		CreatedBy string `json:"createdBy"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, hostUID, created.CreatedBy)

	rec = doJSON(t, r, http.MethodPost, "/api/games/"+created.ID+"/join", guestTok, map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/games/"+created.ID, hostToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Seats []struct {
			Seat string `json:"seat"`
			Name string `json:"name"`
		} `json:"seats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Seats, 3)
	assert.Equal(t, "Host", view.Seats[0].Name)
	assert.Equal(t, "Two", view.Seats[1].Name)
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer()
	r := s.Router()

	_, token := guestToken(t, r, "Host")

	// Unknown game id.
	rec := doJSON(t, r, http.MethodGet, "/api/games/nope", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Starting a lobby with empty seats trips a precondition.
	rec = doJSON(t, r, http.MethodPost, "/api/games", token, map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, r, http.MethodPost, "/api/games/"+created.ID+"/start", token, map[string]string{})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// A non-host cannot add bots.
	_, otherToken := guestToken(t, r, "Other")
	rec = doJSON(t, r, http.MethodPost, "/api/games/"+created.ID+"/bots", otherToken, map[string]string{})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListGamesFilter(t *testing.T) {
	s := newTestServer()
	r := s.Router()
	_, token := guestToken(t, r, "Host")

	rec := doJSON(t, r, http.MethodPost, "/api/games", token, map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/games?status=lobby", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Games []json.RawMessage `json:"games"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed.Games, 1)

	rec = doJSON(t, r, http.MethodGet, "/api/games?status=completed", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed.Games)
}
