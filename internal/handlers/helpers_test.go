package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/todo-api/internal/auth"
	"github.com/yukikurage/todo-api/internal/logger"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/services"
	"github.com/yukikurage/todo-api/internal/testutil"
)

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	taskService *services.TaskService
	tokens      *auth.TokenManager
	now         time.Time
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		db:  testutil.NewDB(t),
		now: time.Now(),
	}
	log := logger.Nop()

	env.tokens = auth.NewTokenManager([]byte("handler-secret"), "todo-api", 60*time.Minute,
		auth.WithClock(func() time.Time { return env.now }))
	authService, err := services.NewAuthService(
		repository.NewUserRepository(env.db),
		auth.NewBcryptHasher(bcrypt.MinCost),
		env.tokens,
		log,
	)
	require.NoError(t, err)
	env.authService = authService
	env.taskService = services.NewTaskService(repository.NewTaskRepository(env.db), log)

	env.router = NewRouter(RouterDeps{
		AuthHandler:    NewAuthHandler(env.authService, log),
		TaskHandler:    NewTaskHandler(env.taskService, log),
		TokenValidator: env.tokens,
		Logger:         log,
	})

	return env
}

// do sends a request through the full router. body may be nil, a string of
// raw JSON, or any value that is marshalled to JSON.
func (env *testEnv) do(t *testing.T, method, url string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// login registers a user and returns a valid access token
func (env *testEnv) login(t *testing.T, username string) string {
	t.Helper()

	user, err := env.authService.Register(context.Background(), services.RegisterInput{Username: username, Password: "supersecret"})
	require.NoError(t, err)

	token, err := env.authService.Login(user)
	require.NoError(t, err)
	return token.AccessToken
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
