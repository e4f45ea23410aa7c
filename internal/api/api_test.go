package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"github.com/mindgrid/mindgrid-server/internal/factory"
	"github.com/mindgrid/mindgrid-server/internal/testutil"
)

const testSecret = "api-test-secret"

type APISuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.app = factory.NewTestApp()

	router := NewRouter(RouterConfig{
		Logger:         testutil.NopLogger(),
		AuthSecret:     []byte(testSecret),
		AccountService: s.app.AccountService,
		SessionService: s.app.SessionService,
		AdminService:   s.app.AdminService,
	})

	s.server = httptest.NewServer(router)
}

func (s *APISuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
	}
}

// token mints an identity-provider token for a subject
func (s *APISuite) token(uid string, admin bool) string {
	claims := jwt.MapClaims{"sub": uid}
	if admin {
		claims["admin"] = true
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	s.Require().NoError(err)
	return signed
}

// do performs a request and decodes the JSON response body
func (s *APISuite) do(method, path, token string, body any) (int, map[string]any) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()

	var decoded map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func (s *APISuite) errorCode(body map[string]any) string {
	errObj, ok := body["error"].(map[string]any)
	s.Require().True(ok, "expected an error payload, got %v", body)
	code, _ := errObj["code"].(string)
	return code
}

func (s *APISuite) register(uid, username string) {
	status, body := s.do(http.MethodPost, "/api/v1/accounts", s.token(uid, false), map[string]any{
		"username": username,
		"email":    username + "@example.com",
	})
	s.Require().Equal(http.StatusCreated, status, "register failed: %v", body)
}

// Health

func (s *APISuite) TestHealthNoAuth() {
	status, body := s.do(http.MethodGet, "/api/v1/health", "", nil)
	s.Equal(http.StatusOK, status)
	s.Equal("ok", body["status"])
}

// Registration

func (s *APISuite) TestRegisterRequiresAuth() {
	status, body := s.do(http.MethodPost, "/api/v1/accounts", "", map[string]any{
		"username": "Alice",
		"email":    "alice@example.com",
	})
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("UNAUTHENTICATED", s.errorCode(body))
}

func (s *APISuite) TestRegisterRejectsBadToken() {
	badToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "uid-1"}).
		SignedString([]byte("wrong-secret"))
	s.Require().NoError(err)

	status, body := s.do(http.MethodPost, "/api/v1/accounts", badToken, map[string]any{
		"username": "Alice",
		"email":    "alice@example.com",
	})
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("UNAUTHENTICATED", s.errorCode(body))
}

func (s *APISuite) TestRegister() {
	status, body := s.do(http.MethodPost, "/api/v1/accounts", s.token("uid-1", false), map[string]any{
		"username": "Alice",
		"email":    "alice@example.com",
	})
	s.Equal(http.StatusCreated, status)
	s.Equal(true, body["ok"])
}

func (s *APISuite) TestRegisterDuplicateHandle() {
	s.register("uid-1", "Alice")

	status, body := s.do(http.MethodPost, "/api/v1/accounts", s.token("uid-2", false), map[string]any{
		"username": "ALICE",
		"email":    "other@example.com",
	})
	s.Equal(http.StatusConflict, status)
	s.Equal("ALREADY_EXISTS", s.errorCode(body))
}

func (s *APISuite) TestRegisterValidation() {
	tests := []struct {
		name string
		req  map[string]any
	}{
		{"missing username", map[string]any{"email": "a@example.com"}},
		{"blank username", map[string]any{"username": "   ", "email": "a@example.com"}},
		{"overlong username", map[string]any{"username": "abcdefghijklmnop", "email": "a@example.com"}},
		{"missing email", map[string]any{"username": "Alice"}},
	}

	for _, tt := range tests {
		status, body := s.do(http.MethodPost, "/api/v1/accounts", s.token("uid-1", false), tt.req)
		s.Equal(http.StatusBadRequest, status, tt.name)
		s.Equal("INVALID_ARGUMENT", s.errorCode(body), tt.name)
	}
}

// Session lifecycle

func (s *APISuite) TestStartGame() {
	s.register("uid-1", "Alice")

	status, body := s.do(http.MethodPost, "/api/v1/games", s.token("uid-1", false), map[string]any{
		"difficulty": "Expert",
	})
	s.Equal(http.StatusOK, status)
	s.Equal(true, body["ok"])
	s.Equal("expert", body["difficulty"])

	game, ok := body["currentGame"].(map[string]any)
	s.Require().True(ok)
	s.Equal(float64(25), game["requiredMoves"])
	s.Equal(float64(140), game["coinsReward"])
	s.Equal(float64(0), game["skipsUsed"])
}

func (s *APISuite) TestStartGameInvalidDifficulty() {
	s.register("uid-1", "Alice")

	status, body := s.do(http.MethodPost, "/api/v1/games", s.token("uid-1", false), map[string]any{
		"difficulty": "nightmare",
	})
	s.Equal(http.StatusBadRequest, status)
	s.Equal("INVALID_ARGUMENT", s.errorCode(body))
}

func (s *APISuite) TestFinishWithoutStart() {
	s.register("uid-1", "Alice")

	status, body := s.do(http.MethodPost, "/api/v1/games/finish", s.token("uid-1", false), map[string]any{})
	s.Equal(http.StatusConflict, status)
	s.Equal("FAILED_PRECONDITION", s.errorCode(body))
}

func (s *APISuite) TestFinishGameFlow() {
	s.register("uid-1", "Alice")

	status, _ := s.do(http.MethodPost, "/api/v1/games", s.token("uid-1", false), map[string]any{
		"difficulty": "easy",
	})
	s.Require().Equal(http.StatusOK, status)

	// Clean walk-away one block into the risk ladder
	status, body := s.do(http.MethodPost, "/api/v1/games/finish", s.token("uid-1", false), map[string]any{
		"currentMove": 12,
		"incorrects":  0,
		"timeSeconds": 45,
		"riskMode":    true,
		"walkedAway":  true,
		"lost":        false,
	})
	s.Equal(http.StatusOK, status)
	s.Equal(true, body["ok"])
	s.Equal(float64(60), body["coinsReward"])
	s.Equal(float64(5), body["extraMoves"])
	s.Equal(float64(2), body["theoreticalMultiplier"])
	s.Equal(float64(2), body["effectiveMultiplier"])
	s.Equal(float64(0), body["intyCardsReward"])

	// IQ: easy base 10, perfect accuracy and speed, streak 1 + 0.5*5/7
	s.Equal(float64(14), body["finalIq"])
	s.Equal(float64(14), body["iqReward"])
}

func (s *APISuite) TestFinishTwiceDoesNotDoubleCredit() {
	s.register("uid-1", "Alice")

	status, _ := s.do(http.MethodPost, "/api/v1/games", s.token("uid-1", false), map[string]any{
		"difficulty": "easy",
	})
	s.Require().Equal(http.StatusOK, status)

	report := map[string]any{"currentMove": 7, "timeSeconds": 30}

	status, _ = s.do(http.MethodPost, "/api/v1/games/finish", s.token("uid-1", false), report)
	s.Require().Equal(http.StatusOK, status)

	status, body := s.do(http.MethodPost, "/api/v1/games/finish", s.token("uid-1", false), report)
	s.Equal(http.StatusConflict, status)
	s.Equal("FAILED_PRECONDITION", s.errorCode(body))

	_, me := s.do(http.MethodGet, "/api/v1/accounts/me", s.token("uid-1", false), nil)
	s.Equal(float64(30), me["coins"])
}

// Account snapshot

func (s *APISuite) TestGetMeOmitsPrivateData() {
	s.register("uid-1", "Alice")

	status, body := s.do(http.MethodGet, "/api/v1/accounts/me", s.token("uid-1", false), nil)
	s.Equal(http.StatusOK, status)
	s.Equal("uid-1", body["uid"])
	s.Equal("Alice", body["username"])
	s.Equal(float64(0), body["coins"])
	s.NotContains(body, "private")
}

// Admin

func (s *APISuite) TestAdminResetRequiresAdminClaim() {
	s.register("uid-1", "Alice")

	status, body := s.do(http.MethodPost, "/api/v1/admin/reset-legal-flags", s.token("uid-1", false), nil)
	s.Equal(http.StatusForbidden, status)
	s.Equal("PERMISSION_DENIED", s.errorCode(body))
}

func (s *APISuite) TestAdminResetLegalFlags() {
	s.register("uid-1", "Alice")
	s.register("uid-2", "Bob")

	status, body := s.do(http.MethodPost, "/api/v1/admin/reset-legal-flags", s.token("admin-1", true), nil)
	s.Equal(http.StatusOK, status)
	s.Equal(true, body["ok"])
	s.Equal(float64(2), body["updatedCount"])
}
