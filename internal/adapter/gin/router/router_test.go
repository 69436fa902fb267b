package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"signup-service/internal/adapter/db/postgres"
	"signup-service/internal/adapter/gin/handler"
	"signup-service/internal/usecase/user"
	"signup-service/pkg/security"
)

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupApp(t *testing.T) *testApp {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&postgres.UserSchema{}))

	log := zaptest.NewLogger(t)
	repo := postgres.NewUserRepoPG(db, log)
	uc := user.New(repo, security.NewBcryptHasher(bcrypt.MinCost), log)

	r := SetupRouter(handler.NewUserHandler(uc, log), handler.NewHealthHandler(uc, log), log)
	return &testApp{router: r, db: db}
}

func (a *testApp) do(method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) closeDB(t *testing.T) {
	sqlDB, err := a.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

type signupResponse struct {
	Success bool  `json:"success"`
	UserID  int64 `json:"userId"`
}

func TestHealth(t *testing.T) {
	app := setupApp(t)

	w := app.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealth_DatabaseDown(t *testing.T) {
	app := setupApp(t)
	app.closeDB(t)

	w := app.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestDBTest(t *testing.T) {
	app := setupApp(t)

	w := app.do(http.MethodGet, "/_db-test", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"db":"connected"}`, w.Body.String())

	app.closeDB(t)

	w = app.do(http.MethodGet, "/_db-test", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"db":"failed"}`, w.Body.String())
}

func TestSignup_CreatesUser(t *testing.T) {
	app := setupApp(t)

	w := app.do(http.MethodPost, "/api/signup", `{"email":"a@b.com","password":"x","name":"Ann"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp signupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Positive(t, resp.UserID)

	var stored postgres.UserSchema
	require.NoError(t, app.db.First(&stored, resp.UserID).Error)
	assert.Equal(t, "a@b.com", stored.Email)
	assert.Equal(t, "Ann", stored.Name)
	assert.NotEqual(t, "x", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("x")))
}

func TestSignup_RepeatCreatesSecondRow(t *testing.T) {
	app := setupApp(t)
	body := `{"email":"a@b.com","password":"x","name":"Ann"}`

	var ids []int64
	for i := 0; i < 2; i++ {
		w := app.do(http.MethodPost, "/api/signup", body)
		require.Equal(t, http.StatusOK, w.Code)

		var resp signupResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		ids = append(ids, resp.UserID)
	}

	assert.NotEqual(t, ids[0], ids[1])

	var count int64
	require.NoError(t, app.db.Model(&postgres.UserSchema{}).Where("email = ?", "a@b.com").Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSignup_EmptyObject(t *testing.T) {
	app := setupApp(t)

	for _, body := range []string{`{}`, ""} {
		w := app.do(http.MethodPost, "/api/signup", body)
		require.Equal(t, http.StatusOK, w.Code, "body %q", body)

		var resp signupResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		var stored postgres.UserSchema
		require.NoError(t, app.db.First(&stored, resp.UserID).Error)
		assert.Equal(t, "User", stored.Name)
		assert.Empty(t, stored.Email)
		assert.Empty(t, stored.Password)
	}
}

func TestSignup_OrgNameIgnored(t *testing.T) {
	app := setupApp(t)

	w := app.do(http.MethodPost, "/api/signup", `{"email":"a@b.com","password":"x","orgName":"Acme"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignup_MalformedJSON(t *testing.T) {
	app := setupApp(t)

	w := app.do(http.MethodPost, "/api/signup", `{"email":"a@b.com"`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, app.db.Model(&postgres.UserSchema{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSignup_DatabaseDown(t *testing.T) {
	app := setupApp(t)
	app.closeDB(t)

	w := app.do(http.MethodPost, "/api/signup", `{"email":"a@b.com","password":"x"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Signup failed", resp["error"])
	assert.Contains(t, resp["message"], "database is closed")
}

func TestUnknownRoute(t *testing.T) {
	app := setupApp(t)

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/api/users", "").Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/api/signup", "").Code)
}

func TestCORS(t *testing.T) {
	app := setupApp(t)

	t.Run("cross origin request", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/signup", bytes.NewBufferString(`{"email":"c@d.com"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Origin", "https://frontend.example.com")
		app.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/signup", nil)
		req.Header.Set("Origin", "https://frontend.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		app.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})
}
