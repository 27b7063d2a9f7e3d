package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/patronbase/backend/internal/config"
	"github.com/patronbase/backend/internal/database"
	"github.com/patronbase/backend/internal/routes"
	"github.com/patronbase/backend/internal/utils"
)

const testSecret = "test-signing-secret"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: testSecret, ExpirationMinutes: 60},
	}

	router := gin.New()
	routes.RegisterRoutes(router, db, cfg, nil)
	return router, db
}

func doJSON(router *gin.Engine, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAlice(t *testing.T, router *gin.Engine) {
	// Short passwords are allowed; no length policy is imposed.
	w := doJSON(router, http.MethodPost, "/api/register", gin.H{
		"username":   "alice",
		"email":      "a@x.com",
		"password":   "p1",
		"first_name": "Alice",
		"last_name":  "Smith",
		"dob":        "1990-04-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestRegister(t *testing.T) {
	router, db := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/api/register", gin.H{
		"username": "alice",
		"email":    "a@x.com",
		"password": "p1",
		"dob":      "1990-04-01",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp["user"]["username"])
	assert.Equal(t, "a@x.com", resp["profile"]["email"])

	// The password never round-trips, and the stored value is a hash.
	assert.NotContains(t, w.Body.String(), "password")

	user, err := database.GetUserByUsername(db, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "p1", user.Password)
	assert.True(t, utils.CheckPasswordHash("p1", user.Password))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := setupRouter(t)
	registerAlice(t, router)

	w := doJSON(router, http.MethodPost, "/api/register", gin.H{
		"username": "alice2",
		"email":    "a@x.com",
		"password": "p2",
		"dob":      "1991-05-02",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email already in use")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	router, _ := setupRouter(t)
	registerAlice(t, router)

	w := doJSON(router, http.MethodPost, "/api/register", gin.H{
		"username": "alice",
		"email":    "other@x.com",
		"password": "p2",
		"dob":      "1991-05-02",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "username already in use")
}

func TestRegisterBadDOB(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/api/register", gin.H{
		"username": "alice",
		"email":    "a@x.com",
		"password": "p1",
		"dob":      "01/04/1990",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	router, _ := setupRouter(t)
	registerAlice(t, router)

	// Wrong password and unknown email get the same generic answer.
	w := doJSON(router, http.MethodPost, "/api/token", gin.H{
		"email": "a@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")

	w2 := doJSON(router, http.MethodPost, "/api/token", gin.H{
		"email": "nobody@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, w2.Code)
	assert.JSONEq(t, w.Body.String(), w2.Body.String())

	// Correct credentials yield a token in the body and a jwt cookie.
	w3 := doJSON(router, http.MethodPost, "/api/token", gin.H{
		"email": "a@x.com", "password": "p1",
	})
	require.Equal(t, http.StatusOK, w3.Code, w3.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w3.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])

	var jwtCookie *http.Cookie
	for _, cookie := range w3.Result().Cookies() {
		if cookie.Name == "jwt" {
			jwtCookie = cookie
		}
	}
	require.NotNil(t, jwtCookie, "jwt cookie not set")
	assert.Equal(t, resp["token"], jwtCookie.Value)
	assert.True(t, jwtCookie.HttpOnly)
}

func TestCurrentUser(t *testing.T) {
	router, _ := setupRouter(t)
	registerAlice(t, router)

	w := doJSON(router, http.MethodPost, "/api/token", gin.H{
		"email": "a@x.com", "password": "p1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w2 := doJSON(router, http.MethodGet, "/api/user", nil,
		&http.Cookie{Name: "jwt", Value: login["token"]})
	require.Equal(t, http.StatusOK, w2.Code, w2.Body.String())

	var resp map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp["user"]["username"])
	assert.Equal(t, "a@x.com", resp["profile"]["email"])
	assert.NotContains(t, w2.Body.String(), "password")
}

func TestCurrentUserNoCookie(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "not authenticated")
}

func TestCurrentUserExpiredToken(t *testing.T) {
	router, _ := setupRouter(t)

	expired, err := utils.GenerateToken(uuid.New(), testSecret, -time.Minute)
	require.NoError(t, err)

	w := doJSON(router, http.MethodGet, "/api/user", nil,
		&http.Cookie{Name: "jwt", Value: expired})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token expired")
}

func TestCurrentUserTamperedToken(t *testing.T) {
	router, _ := setupRouter(t)

	token, err := utils.GenerateToken(uuid.New(), "wrong-secret", time.Hour)
	require.NoError(t, err)

	w := doJSON(router, http.MethodGet, "/api/user", nil,
		&http.Cookie{Name: "jwt", Value: token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestVerifyToken(t *testing.T) {
	router, _ := setupRouter(t)

	token, err := utils.GenerateToken(uuid.New(), testSecret, time.Hour)
	require.NoError(t, err)

	w := doJSON(router, http.MethodGet, "/api/token/verify", nil,
		&http.Cookie{Name: "jwt", Value: token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Token is valid")

	w2 := doJSON(router, http.MethodGet, "/api/token/verify", nil)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
}

func TestLogoutIsIdempotent(t *testing.T) {
	router, _ := setupRouter(t)

	// Logging out without ever logging in still succeeds.
	w := doJSON(router, http.MethodPost, "/api/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "success")

	var cleared *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "jwt" {
			cleared = cookie
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	w2 := doJSON(router, http.MethodPost, "/api/logout", nil)
	assert.Equal(t, http.StatusOK, w2.Code)
}
