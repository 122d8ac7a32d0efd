package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"schoolnet_backend/internal/config"
	"schoolnet_backend/internal/util"
	"schoolnet_backend/pkg/security"
	"schoolnet_backend/pkg/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", Mode: "debug"},
		JWT: config.JWTConfig{
			Secret:     "app-test-secret",
			ExpireTime: time.Hour,
		},
		Store:   config.StoreConfig{DataDir: t.TempDir()},
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
	}

	st, err := store.Open(cfg.Store.DataDir)
	require.NoError(t, err)

	app := &App{
		Config:  cfg,
		Store:   st,
		Origins: security.NewDynamicOrigins(nil),
	}

	repos := app.initRepositories(st)
	services, err := app.initServices(repos, cfg)
	require.NoError(t, err)
	app.services = services
	controllers := app.initControllers(services)

	router := gin.New()
	app.Router = router
	app.registerRoutes(router, controllers, repos, cfg)
	return app
}

type envelope struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func doJSON(t *testing.T, app *App, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: util.TokenCookieName, Value: token})
	}

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func registerUser(t *testing.T, app *App, email, name string) envelope {
	t.Helper()
	_, env := doJSON(t, app, http.MethodPost, "/api/register", "", gin.H{
		"email":    email,
		"password": "password123",
		"name":     name,
	})
	return env
}

func login(t *testing.T, app *App, email string) string {
	t.Helper()
	w, env := doJSON(t, app, http.MethodPost, "/api/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := env.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func userID(t *testing.T, env envelope) string {
	t.Helper()
	user, ok := env.Data["user"].(map[string]any)
	require.True(t, ok)
	id, _ := user["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestApp_RegistrationAndApprovalFlow(t *testing.T) {
	app := newTestApp(t)

	// 首个用户注册即成为管理员并直接登录
	w, env := doJSON(t, app, http.MethodPost, "/api/register", "", gin.H{
		"email":    "admin@school.edu",
		"password": "password123",
		"name":     "Admin",
	})
	require.Equal(t, http.StatusOK, w.Code)
	adminUser := env.Data["user"].(map[string]any)
	assert.Equal(t, "admin", adminUser["role"])
	assert.Equal(t, "approved", adminUser["status"])
	assert.Empty(t, adminUser["password"])
	assert.NotEmpty(t, env.Data["token"])
	assert.NotEmpty(t, w.Result().Cookies())

	// 后续用户注册后处于 pending
	env = registerUser(t, app, "bob@school.edu", "Bob")
	bobID := userID(t, env)
	bobUser := env.Data["user"].(map[string]any)
	assert.Equal(t, "pending", bobUser["status"])

	adminToken := login(t, app, "admin@school.edu")
	bobToken := login(t, app, "bob@school.edu")

	// pending 用户持有令牌但进不了社交接口
	w, _ = doJSON(t, app, http.MethodGet, "/api/friendships", bobToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 普通用户访问管理接口被拒
	w, _ = doJSON(t, app, http.MethodGet, "/api/admin/users", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 管理员审批通过后即可访问
	w, _ = doJSON(t, app, http.MethodPost, "/api/admin/users/"+bobID+"/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, app, http.MethodGet, "/api/friendships", bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApp_RejectedUserCannotLogin(t *testing.T) {
	app := newTestApp(t)

	registerUser(t, app, "admin@school.edu", "Admin")
	env := registerUser(t, app, "bad@school.edu", "Bad")
	badID := userID(t, env)

	adminToken := login(t, app, "admin@school.edu")
	w, _ := doJSON(t, app, http.MethodPost, "/api/admin/users/"+badID+"/reject", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, app, http.MethodPost, "/api/login", "", gin.H{
		"email":    "bad@school.edu",
		"password": "password123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestApp_PostLifecycle(t *testing.T) {
	app := newTestApp(t)

	registerUser(t, app, "admin@school.edu", "Admin")
	env := registerUser(t, app, "bob@school.edu", "Bob")
	bobID := userID(t, env)

	adminToken := login(t, app, "admin@school.edu")
	doJSON(t, app, http.MethodPost, "/api/admin/users/"+bobID+"/approve", adminToken, nil)
	bobToken := login(t, app, "bob@school.edu")

	// 游客未登录不能发帖
	w, _ := doJSON(t, app, http.MethodPost, "/api/posts", "", gin.H{"content": "anon"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 发帖，作者信息做快照
	w, env = doJSON(t, app, http.MethodPost, "/api/posts", adminToken, gin.H{"content": "第一条动态"})
	require.Equal(t, http.StatusCreated, w.Code)
	postID := env.Data["id"].(string)
	assert.Equal(t, "Admin", env.Data["authorName"])

	// 游客可以浏览帖子流
	w, _ = doJSON(t, app, http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 点赞翻转
	w, env = doJSON(t, app, http.MethodPost, "/api/posts/"+postID+"/like", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["likes"], 1)

	w, env = doJSON(t, app, http.MethodPost, "/api/posts/"+postID+"/like", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Data["likes"])

	// 评论
	w, _ = doJSON(t, app, http.MethodPost, "/api/posts/"+postID+"/comments", bobToken, gin.H{"content": "沙发"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// 非作者不能修改或删除
	w, _ = doJSON(t, app, http.MethodPatch, "/api/posts/"+postID, bobToken, gin.H{"content": "hijack"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = doJSON(t, app, http.MethodDelete, "/api/posts/"+postID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 作者删除
	w, _ = doJSON(t, app, http.MethodDelete, "/api/posts/"+postID, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, app, http.MethodGet, "/api/posts/"+postID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApp_FriendshipAndMessagingFlow(t *testing.T) {
	app := newTestApp(t)

	env := registerUser(t, app, "admin@school.edu", "Admin")
	adminID := userID(t, env)
	env = registerUser(t, app, "bob@school.edu", "Bob")
	bobID := userID(t, env)

	adminToken := login(t, app, "admin@school.edu")
	doJSON(t, app, http.MethodPost, "/api/admin/users/"+bobID+"/approve", adminToken, nil)
	bobToken := login(t, app, "bob@school.edu")

	// bob 向 admin 发送好友请求
	w, env := doJSON(t, app, http.MethodPost, "/api/friendships", bobToken, gin.H{"friendId": adminID})
	require.Equal(t, http.StatusCreated, w.Code)
	requestID := env.Data["id"].(string)

	// 重复请求被拒
	w, _ = doJSON(t, app, http.MethodPost, "/api/friendships", bobToken, gin.H{"friendId": adminID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 发起方不能替接收方接受
	w, _ = doJSON(t, app, http.MethodPost, "/api/friendships/"+requestID+"/accept", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, app, http.MethodPost, "/api/friendships/"+requestID+"/accept", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 私信往返
	w, _ = doJSON(t, app, http.MethodPost, "/api/messages", bobToken, gin.H{
		"receiverId": adminID,
		"content":    "你好",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = doJSON(t, app, http.MethodGet, "/api/messages/unread-count", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), env.Data["count"])

	// 拉取会话后未读归零
	w, _ = doJSON(t, app, http.MethodGet, "/api/messages?userId="+bobID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, app, http.MethodGet, "/api/messages/unread-count", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), env.Data["count"])
}

func TestApp_ProfileAndSearch(t *testing.T) {
	app := newTestApp(t)

	env := registerUser(t, app, "admin@school.edu", "Admin")
	adminID := userID(t, env)
	env = registerUser(t, app, "bob@school.edu", "Bob Chen")
	bobID := userID(t, env)

	adminToken := login(t, app, "admin@school.edu")
	doJSON(t, app, http.MethodPost, "/api/admin/users/"+bobID+"/approve", adminToken, nil)
	bobToken := login(t, app, "bob@school.edu")

	// 只能改自己的资料
	w, _ := doJSON(t, app, http.MethodPatch, "/api/users/"+adminID, bobToken, gin.H{"bio": "hacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = doJSON(t, app, http.MethodPatch, "/api/users/"+bobID, bobToken, gin.H{"bio": "高二学生"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "高二学生", env.Data["bio"])

	// 公开资料不含密码
	w, env = doJSON(t, app, http.MethodGet, "/api/users/"+bobID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Data["password"])

	// 搜索排除自己
	req := httptest.NewRequest(http.MethodGet, "/api/users/search?q=Bob", nil)
	req.AddCookie(&http.Cookie{Name: util.TokenCookieName, Value: bobToken})
	w2 := httptest.NewRecorder()
	app.Router.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)

	var listEnv struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &listEnv))
	assert.Empty(t, listEnv.Data)

	req = httptest.NewRequest(http.MethodGet, "/api/users/search?q=Admin", nil)
	req.AddCookie(&http.Cookie{Name: util.TokenCookieName, Value: bobToken})
	w2 = httptest.NewRecorder()
	app.Router.ServeHTTP(w2, req)
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &listEnv))
	require.Len(t, listEnv.Data, 1)
	assert.Equal(t, adminID, listEnv.Data[0]["id"])
}

func TestApp_HealthAndBearerFallback(t *testing.T) {
	app := newTestApp(t)

	w, _ := doJSON(t, app, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	registerUser(t, app, "admin@school.edu", "Admin")
	token := login(t, app, "admin@school.edu")

	// Authorization 头作为Cookie的回退方式
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
