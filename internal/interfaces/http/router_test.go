package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banking/internal/application/user/dto"
	"banking/internal/infrastructure/config"
	"banking/internal/infrastructure/database"
	"banking/internal/infrastructure/migration"
	sharedConfig "banking/internal/shared/config"
	"banking/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: sharedConfig.ServerConfig{
			Environment:    "test",
			BaseURL:        "http://localhost:3000",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: sharedConfig.DatabaseConfig{Driver: "sqlite", Path: ":memory:"},
		Auth: sharedConfig.AuthConfig{
			Password: sharedConfig.PasswordConfig{BcryptCost: 4},
			Token:    sharedConfig.TokenConfig{VerificationExpiresHours: 24},
			JWT: sharedConfig.JWTConfig{
				Secret:           "router-test-secret",
				Issuer:           "banking",
				AccessExpMinutes: 15,
				RefreshExpDays:   7,
			},
			Lockout:    sharedConfig.LockoutConfig{MaxAttempts: 3, DurationMinutes: 15},
			MinimumAge: 18,
		},
		RateLimit: sharedConfig.RateLimitConfig{Requests: 100, WindowSeconds: 60},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()

	db, err := database.Open(&cfg.Database)
	require.NoError(t, err)

	strategy, err := migration.NewGooseStrategy(cfg.Database.Driver)
	require.NoError(t, err)
	require.NoError(t, migration.NewManagerWithStrategy(strategy).Migrate(db))

	router, err := NewRouter(context.Background(), db, cfg, logger.NewNopLogger())
	require.NoError(t, err)
	router.SetupRoutes()

	t.Cleanup(func() {
		router.Shutdown()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return router.GetEngine()
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func call(t *testing.T, engine *gin.Engine, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func register(t *testing.T, engine *gin.Engine, email, cpf, first string) dto.UserResponse {
	t.Helper()

	status, env := call(t, engine, http.MethodPost, "/auth/register", "", dto.RegisterRequest{
		Email:       email,
		CPF:         cpf,
		Password:    "Secret#123",
		FirstName:   first,
		LastName:    "Silva",
		DateOfBirth: "1990-04-12",
	})
	require.Equal(t, http.StatusCreated, status, "register %s: %+v", email, env.Error)

	var u dto.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &u))
	return u
}

func login(t *testing.T, engine *gin.Engine, email string) (int, string) {
	t.Helper()

	status, env := call(t, engine, http.MethodPost, "/auth/login", "", dto.LoginRequest{
		Email:    email,
		Password: "Secret#123",
	})
	if status != http.StatusOK {
		return status, ""
	}

	var auth dto.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	return status, auth.AccessToken
}

func TestRouter_UserLifecycle(t *testing.T) {
	engine := newTestRouter(t, testConfig())

	admin := register(t, engine, "Maria.Silva@Example.com", "111.444.777-35", "Maria")
	assert.Equal(t, "maria.silva@example.com", admin.Email)
	assert.Equal(t, "***.444.777-**", admin.CPF)

	customer := register(t, engine, "joao.souza@example.com", "52998224725", "Joao")
	assert.Equal(t, "user", customer.Role)

	status, adminToken := login(t, engine, "maria.silva@example.com")
	require.Equal(t, http.StatusOK, status)
	status, customerToken := login(t, engine, "joao.souza@example.com")
	require.Equal(t, http.StatusOK, status)

	t.Run("profile", func(t *testing.T) {
		status, env := call(t, engine, http.MethodGet, "/auth/me", adminToken, nil)
		require.Equal(t, http.StatusOK, status)

		var me dto.UserResponse
		require.NoError(t, json.Unmarshal(env.Data, &me))
		assert.Equal(t, admin.SID, me.SID)
		assert.Equal(t, "admin", me.Role, "first registered user administers the installation")
	})

	t.Run("customers cannot list users", func(t *testing.T) {
		status, _ := call(t, engine, http.MethodGet, "/admin/users", customerToken, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("admin lists users", func(t *testing.T) {
		status, env := call(t, engine, http.MethodGet, "/admin/users?page=1&page_size=10", adminToken, nil)
		require.Equal(t, http.StatusOK, status)

		var list dto.ListUsersResponse
		require.NoError(t, json.Unmarshal(env.Data, &list))
		assert.Len(t, list.Users, 2)
		assert.Equal(t, int64(2), list.Pagination.Total)
	})

	t.Run("duplicate cpf is a conflict", func(t *testing.T) {
		status, env := call(t, engine, http.MethodPost, "/auth/register", "", dto.RegisterRequest{
			Email:     "other@example.com",
			CPF:       "529.982.247-25",
			Password:  "Secret#123",
			FirstName: "Other",
			LastName:  "Person",
		})
		assert.Equal(t, http.StatusConflict, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "conflict", env.Error.Type)
	})

	t.Run("pending accounts cannot be suspended directly", func(t *testing.T) {
		status, _ := call(t, engine, http.MethodPatch, "/admin/users/"+customer.SID+"/status", adminToken,
			dto.UpdateUserStatusRequest{Status: "suspended"})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("deactivated customers cannot log in", func(t *testing.T) {
		status, _ := call(t, engine, http.MethodPatch, "/admin/users/"+customer.SID+"/status", adminToken,
			dto.UpdateUserStatusRequest{Status: "inactive"})
		require.Equal(t, http.StatusOK, status)

		status, _ = login(t, engine, "joao.souza@example.com")
		assert.Equal(t, http.StatusForbidden, status)
	})
}

func TestRouter_RegisterReportsTypedErrors(t *testing.T) {
	engine := newTestRouter(t, testConfig())

	body := func(overrides map[string]any) map[string]any {
		b := map[string]any{
			"email":      "a@example.com",
			"cpf":        "111.444.777-35",
			"password":   "Secret#123",
			"first_name": "A",
			"last_name":  "B",
		}
		for k, v := range overrides {
			if v == "<absent>" {
				delete(b, k)
				continue
			}
			b[k] = v
		}
		return b
	}

	tests := []struct {
		name     string
		req      any
		wantType string
	}{
		{
			name:     "email",
			req:      dto.RegisterRequest{Email: "not-an-email", CPF: "111.444.777-35", Password: "Secret#123", FirstName: "A", LastName: "B"},
			wantType: "invalid_email",
		},
		{
			name:     "cpf",
			req:      dto.RegisterRequest{Email: "a@example.com", CPF: "111.444.777-36", Password: "Secret#123", FirstName: "A", LastName: "B"},
			wantType: "invalid_cpf",
		},
		{
			name:     "password",
			req:      dto.RegisterRequest{Email: "a@example.com", CPF: "111.444.777-35", Password: "secret#123", FirstName: "A", LastName: "B"},
			wantType: "invalid_password",
		},
		{name: "empty email", req: body(map[string]any{"email": ""}), wantType: "invalid_email"},
		{name: "null email", req: body(map[string]any{"email": nil}), wantType: "invalid_email"},
		{name: "absent email", req: body(map[string]any{"email": "<absent>"}), wantType: "invalid_email"},
		{name: "numeric email", req: body(map[string]any{"email": 12345}), wantType: "invalid_email"},
		{name: "null cpf", req: body(map[string]any{"cpf": nil}), wantType: "invalid_cpf"},
		{name: "numeric cpf with valid digits", req: body(map[string]any{"cpf": 11144477735}), wantType: "invalid_cpf"},
		{name: "empty password", req: body(map[string]any{"password": ""}), wantType: "invalid_password"},
		{name: "object password", req: body(map[string]any{"password": map[string]string{"p": "Secret#123"}}), wantType: "invalid_password"},
		{
			name:     "email is reported before cpf",
			req:      body(map[string]any{"email": nil, "cpf": true}),
			wantType: "invalid_email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := call(t, engine, http.MethodPost, "/auth/register", "", tt.req)
			assert.Equal(t, http.StatusBadRequest, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantType, env.Error.Type)
		})
	}
}

func TestRouter_PublicEndpoints(t *testing.T) {
	engine := newTestRouter(t, testConfig())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "Banking System API is running!", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"connected"`)

	status, env := call(t, engine, http.MethodPost, "/validate", "", map[string]string{
		"email": "USER@Example.com",
		"cpf":   "11144477735",
	})
	require.Equal(t, http.StatusOK, status)
	var report dto.ValidationReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.True(t, report.Valid)
	require.Len(t, report.Fields, 2)
	assert.Equal(t, "user@example.com", report.Fields[0].Normalized)
	assert.Equal(t, "111.444.777-35", report.Fields[1].Formatted)

	status, _ = call(t, engine, http.MethodPost, "/validate", "not-a-jwt", map[string]string{"cpf": "11144477735"})
	assert.Equal(t, http.StatusOK, status, "a bad token does not block anonymous validation")

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "banking_http_requests_total")
}

func TestRouter_LoginIsRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = sharedConfig.RateLimitConfig{Requests: 2, WindowSeconds: 60}
	engine := newTestRouter(t, cfg)

	for i := 0; i < 2; i++ {
		status, _ := login(t, engine, "nobody@example.com")
		assert.Equal(t, http.StatusUnauthorized, status)
	}

	status, _ := login(t, engine, "nobody@example.com")
	assert.Equal(t, http.StatusTooManyRequests, status)
}
