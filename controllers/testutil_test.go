package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"annotator/config"
	dbpkg "annotator/db"
	"annotator/router"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	cfg    config.Configuration
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logrus.SetLevel(logrus.FatalLevel)

	database, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// keep the single in-memory database alive across queries
	database.DB().SetMaxOpenConns(1)
	database.LogMode(false)
	require.NoError(t, dbpkg.AutoMigrate(database))
	t.Cleanup(func() { database.Close() })

	cfg := config.Configuration{
		DatabaseURL: "sqlite3::memory:",
		JWTSecret:   testSecret,
		Port:        5000,
		Env:         config.EnvTest,
		FrontendURL: "http://localhost:5173",
	}

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	router.Initialize(r, cfg)

	return &testEnv{t: t, router: r, db: database, cfg: cfg}
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signup registers a user through the API and returns its token.
func (e *testEnv) signup(email string) string {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    email,
		"password": "secret1",
		"name":     strings.Split(email, "@")[0],
	})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(e.t, resp.Token)
	return resp.Token
}

// createExtraction makes a minimal extraction and returns its id.
func (e *testEnv) createExtraction(token string, body gin.H) string {
	e.t.Helper()
	if body == nil {
		body = gin.H{"schemaInput": "{}", "outputJson": "{}"}
	}
	w := e.do(http.MethodPost, "/api/extractions", token, body)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Extraction struct {
			ID string `json:"id"`
		} `json:"extraction"`
	}
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(e.t, resp.Extraction.ID)
	return resp.Extraction.ID
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}
