package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/config"
	appsvc "github.com/taskflow/taskflow-api/internal/application"
	"github.com/taskflow/taskflow-api/internal/infrastructure/memory"
	handlers "github.com/taskflow/taskflow-api/internal/interface/http"
	"github.com/taskflow/taskflow-api/internal/interface/middleware"
	"github.com/taskflow/taskflow-api/internal/router"
	"github.com/taskflow/taskflow-api/internal/router/modules"
	"github.com/taskflow/taskflow-api/pkg/helpers"
	"github.com/taskflow/taskflow-api/pkg/validation"
)

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

// Local mirrors of the handler package's unexported response DTOs, so this
// external test package can decode responses into the same shape.
type taskResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

type listResponse struct {
	ID        string         `json:"id"`
	OwnerID   string         `json:"owner_id"`
	Title     string         `json:"title"`
	Tasks     []taskResponse `json:"tasks"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	cfg := &config.Config{AppName: "taskflow-test", MailSendEnabled: false}
	jwt := helpers.NewJWTManager("test-access", "test-refresh", time.Hour, 24*time.Hour)

	users := memory.NewUserRepository()
	lists := memory.NewListRepository()

	userSvc := appsvc.NewService(users, jwt, nil, "", nil)
	listSvc := appsvc.NewListService(lists, nil)
	auth := middleware.Auth(jwt, users)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	reg := router.NewRegistry(engine)
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(userSvc, nil, cfg, nil)))
	reg.Add(modules.NewListModule(handlers.NewListHandler(listSvc, nil), handlers.NewTaskHandler(listSvc, nil), auth))
	reg.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, nil), auth))
	reg.RegisterAll()
	return engine
}

func doJSON(t *testing.T, e *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func registerAndLogin(t *testing.T, e *gin.Engine, email string) string {
	t.Helper()
	w, _ := doJSON(t, e, http.MethodPost, "/auth/register", "", gin.H{
		"email": email, "name": "Test User", "password": "s3curepassword",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, e, http.MethodPost, "/auth/login", "", gin.H{
		"email": email, "password": "s3curepassword",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func decodeList(t *testing.T, env envelope) listResponse {
	t.Helper()
	var l listResponse
	require.NoError(t, json.Unmarshal(env.Data, &l))
	return l
}

func TestRegisterValidation(t *testing.T) {
	e := newTestServer(t)

	w, env := doJSON(t, e, http.MethodPost, "/auth/register", "", gin.H{
		"email": "not-an-email", "name": "", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var details map[string]string
	require.NoError(t, json.Unmarshal(env.Error, &details))
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := newTestServer(t)
	registerAndLogin(t, e, "dup@example.com")

	w, _ := doJSON(t, e, http.MethodPost, "/auth/register", "", gin.H{
		"email": "dup@example.com", "name": "Someone Else", "password": "s3curepassword",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginFailuresAreUniform401(t *testing.T) {
	e := newTestServer(t)
	registerAndLogin(t, e, "jane@example.com")

	w1, env1 := doJSON(t, e, http.MethodPost, "/auth/login", "", gin.H{
		"email": "jane@example.com", "password": "wrongpassword",
	})
	w2, env2 := doJSON(t, e, http.MethodPost, "/auth/login", "", gin.H{
		"email": "nobody@example.com", "password": "s3curepassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w1.Code)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Equal(t, env1.Message, env2.Message)
}

func TestRefreshEndpoint(t *testing.T) {
	e := newTestServer(t)
	registerAndLogin(t, e, "jane@example.com")

	w, env := doJSON(t, e, http.MethodPost, "/auth/login", "", gin.H{
		"email": "jane@example.com", "password": "s3curepassword",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	w, _ = doJSON(t, e, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": data.RefreshToken})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, e, http.MethodPost, "/auth/refresh", "", gin.H{"refresh_token": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListsRequireAuthentication(t *testing.T) {
	e := newTestServer(t)

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/lists"},
		{http.MethodPost, "/lists"},
		{http.MethodPut, "/lists/some-id"},
		{http.MethodDelete, "/lists/some-id"},
	} {
		w, _ := doJSON(t, e, req.method, req.path, "", gin.H{"title": "x"})
		assert.Equalf(t, http.StatusUnauthorized, w.Code, "%s %s", req.method, req.path)
	}

	w, _ := doJSON(t, e, http.MethodGet, "/lists", "not-a-valid-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Mirrors the canonical client flow: create an empty list, add a task, mark
// it done, then submit a bogus task id and verify nothing was disturbed.
func TestListLifecycleScenario(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "u1@example.com")

	// create with no tasks
	w, env := doJSON(t, e, http.MethodPost, "/lists", token, gin.H{"title": "Groceries"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeList(t, env)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Tasks)

	// add one task through a full update
	w, env = doJSON(t, e, http.MethodPut, "/lists/"+created.ID, token, gin.H{
		"title": "Groceries",
		"tasks": []gin.H{{"text": "Milk"}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	withMilk := decodeList(t, env)
	require.Len(t, withMilk.Tasks, 1)
	milk := withMilk.Tasks[0]
	assert.NotEmpty(t, milk.ID)
	assert.False(t, milk.Done)

	// mark it done, identity and creation time survive
	w, env = doJSON(t, e, http.MethodPut, "/lists/"+created.ID, token, gin.H{
		"title": "Groceries",
		"tasks": []gin.H{{"id": milk.ID, "text": "Milk", "done": true}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	done := decodeList(t, env)
	require.Len(t, done.Tasks, 1)
	assert.Equal(t, milk.ID, done.Tasks[0].ID)
	assert.True(t, done.Tasks[0].Done)
	assert.Equal(t, milk.CreatedAt, done.Tasks[0].CreatedAt)

	// bogus id rejects the whole update
	w, env = doJSON(t, e, http.MethodPut, "/lists/"+created.ID, token, gin.H{
		"title": "Changed",
		"tasks": []gin.H{{"id": "bogus", "text": "x", "done": false}},
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	var details map[string]string
	require.NoError(t, json.Unmarshal(env.Error, &details))
	assert.Equal(t, "bogus", details["task_id"])

	// previous state is untouched
	w, env = doJSON(t, e, http.MethodGet, "/lists/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	after := decodeList(t, env)
	assert.Equal(t, "Groceries", after.Title)
	require.Len(t, after.Tasks, 1)
	assert.Equal(t, milk.ID, after.Tasks[0].ID)
	assert.True(t, after.Tasks[0].Done)
}

func TestOwnershipIsolation(t *testing.T) {
	e := newTestServer(t)
	tokenA := registerAndLogin(t, e, "a@example.com")
	tokenB := registerAndLogin(t, e, "b@example.com")

	w, env := doJSON(t, e, http.MethodPost, "/lists", tokenA, gin.H{"title": "A's list"})
	require.Equal(t, http.StatusCreated, w.Code)
	l := decodeList(t, env)

	w, _ = doJSON(t, e, http.MethodGet, "/lists/"+l.ID, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = doJSON(t, e, http.MethodPut, "/lists/"+l.ID, tokenB, gin.H{"title": "stolen", "tasks": []gin.H{}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = doJSON(t, e, http.MethodDelete, "/lists/"+l.ID, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// unknown ids read as 404 for everyone
	w, _ = doJSON(t, e, http.MethodGet, "/lists/missing", tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// B's own view contains nothing of A's
	w, env = doJSON(t, e, http.MethodGet, "/lists", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lists []listResponse
	require.NoError(t, json.Unmarshal(env.Data, &lists))
	assert.Empty(t, lists)
}

func TestUpdateBodyIDMismatchRejected(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "u1@example.com")

	w, env := doJSON(t, e, http.MethodPost, "/lists", token, gin.H{"title": "Groceries"})
	require.Equal(t, http.StatusCreated, w.Code)
	l := decodeList(t, env)

	w, _ = doJSON(t, e, http.MethodPut, "/lists/"+l.ID, token, gin.H{
		"id": "different-id", "title": "Groceries", "tasks": []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateIgnoresClientSuppliedTaskIDs(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "u1@example.com")

	w, env := doJSON(t, e, http.MethodPost, "/lists", token, gin.H{
		"title": "Groceries",
		"tasks": []gin.H{{"id": "client-picked", "text": "Milk"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	l := decodeList(t, env)
	require.Len(t, l.Tasks, 1)
	assert.NotEqual(t, "client-picked", l.Tasks[0].ID)
}

func TestUpdateDuplicateTaskIDRejected(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "u1@example.com")

	w, env := doJSON(t, e, http.MethodPost, "/lists", token, gin.H{
		"title": "Groceries",
		"tasks": []gin.H{{"text": "Milk"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	l := decodeList(t, env)
	taskID := l.Tasks[0].ID

	w, _ = doJSON(t, e, http.MethodPut, "/lists/"+l.ID, token, gin.H{
		"title": "Groceries",
		"tasks": []gin.H{
			{"id": taskID, "text": "Milk"},
			{"id": taskID, "text": "Milk again", "done": true},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doJSON(t, e, http.MethodGet, "/lists/"+l.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	after := decodeList(t, env)
	require.Len(t, after.Tasks, 1)
	assert.False(t, after.Tasks[0].Done)
}

func TestDeleteList(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "u1@example.com")

	w, env := doJSON(t, e, http.MethodPost, "/lists", token, gin.H{"title": "Groceries"})
	require.Equal(t, http.StatusCreated, w.Code)
	l := decodeList(t, env)

	w, _ = doJSON(t, e, http.MethodDelete, "/lists/"+l.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = doJSON(t, e, http.MethodGet, "/lists/"+l.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, e, http.MethodDelete, "/lists/"+l.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskEndpoints(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "u1@example.com")

	w, env := doJSON(t, e, http.MethodPost, "/lists", token, gin.H{
		"title": "Groceries",
		"tasks": []gin.H{{"text": "Milk"}, {"text": "Bread"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	l := decodeList(t, env)
	require.Len(t, l.Tasks, 2)
	milk, bread := l.Tasks[0], l.Tasks[1]

	// PUT replaces one task's fields
	w, env = doJSON(t, e, http.MethodPut, fmt.Sprintf("/lists/%s/tasks/%s", l.ID, milk.ID), token, gin.H{
		"text": "Oat milk", "done": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeList(t, env)
	require.Len(t, updated.Tasks, 2)
	assert.Equal(t, "Oat milk", updated.Tasks[0].Text)
	assert.True(t, updated.Tasks[0].Done)
	assert.Equal(t, bread, updated.Tasks[1])

	// PATCH flips done only
	w, env = doJSON(t, e, http.MethodPatch, fmt.Sprintf("/lists/%s/tasks/%s", l.ID, bread.ID), token, gin.H{
		"done": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	patched := decodeList(t, env)
	assert.Equal(t, "Bread", patched.Tasks[1].Text)
	assert.True(t, patched.Tasks[1].Done)

	// DELETE drops only the target
	w, env = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/lists/%s/tasks/%s", l.ID, milk.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	afterDelete := decodeList(t, env)
	require.Len(t, afterDelete.Tasks, 1)
	assert.Equal(t, bread.ID, afterDelete.Tasks[0].ID)

	// unknown task id is 404
	w, _ = doJSON(t, e, http.MethodPut, fmt.Sprintf("/lists/%s/tasks/%s", l.ID, "bogus"), token, gin.H{
		"text": "x", "done": false,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileEndpoints(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "u1@example.com")

	w, env := doJSON(t, e, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "u1@example.com", profile.Email)

	w, env = doJSON(t, e, http.MethodPut, "/profile", token, gin.H{"name": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "Renamed", profile.Name)
}

func TestBlankTitleRejected(t *testing.T) {
	e := newTestServer(t)
	token := registerAndLogin(t, e, "u1@example.com")

	w, _ := doJSON(t, e, http.MethodPost, "/lists", token, gin.H{"title": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
