package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"pattern_master_backend/internal/config"
	"pattern_master_backend/internal/model"
	"pattern_master_backend/internal/util"
	"pattern_master_backend/pkg/logger"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func jwtStore(secret string) *config.Store {
	return config.NewStore(&config.Config{
		JWT: config.JWTConfig{Secret: secret, ExpireTime: time.Hour},
	})
}

func signedToken(t *testing.T, secret string) string {
	t.Helper()
	user := &model.User{
		UUIDBase: model.UUIDBase{ID: "user-1"},
		Email:    "ada@example.com",
	}
	token, err := util.GenerateJWT(user, secret, time.Hour)
	require.NoError(t, err)
	return token
}

func authRouter(store *config.Store) *gin.Engine {
	router := gin.New()
	router.GET("/protected", AuthMiddleware(store), func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	return router
}

func doAuthed(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	router := authRouter(jwtStore("first-secret"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareUsesReloadedSecret(t *testing.T) {
	store := jwtStore("first-secret")
	router := authRouter(store)

	oldToken := signedToken(t, "first-secret")
	assert.Equal(t, http.StatusOK, doAuthed(router, oldToken).Code)

	store.Swap(&config.Config{
		JWT: config.JWTConfig{Secret: "second-secret", ExpireTime: time.Hour},
	})

	// 旧密钥签的token失效，新密钥立即生效
	assert.Equal(t, http.StatusUnauthorized, doAuthed(router, oldToken).Code)
	assert.Equal(t, http.StatusOK, doAuthed(router, signedToken(t, "second-secret")).Code)
}

// 热更新与在途请求并发执行，校验结果只会是200或401
func TestAuthMiddlewareConcurrentReload(t *testing.T) {
	store := jwtStore("first-secret")
	router := authRouter(store)

	tokens := []string{
		signedToken(t, "first-secret"),
		signedToken(t, "second-secret"),
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		secrets := []string{"second-secret", "first-secret"}
		for i := 0; i < 200; i++ {
			store.Swap(&config.Config{
				JWT: config.JWTConfig{Secret: secrets[i%2], ExpireTime: time.Hour},
			})
		}
	}()

	var wg sync.WaitGroup
	for worker := 0; worker < 4; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				w := doAuthed(router, tokens[(worker+i)%2])
				assert.Contains(t, []int{http.StatusOK, http.StatusUnauthorized}, w.Code)
			}
		}(worker)
	}
	wg.Wait()
	<-done
}

func TestTryAuthMiddlewareOptional(t *testing.T) {
	store := jwtStore("first-secret")
	router := gin.New()
	router.GET("/open", TryAuthMiddleware(store), func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			c.JSON(http.StatusOK, gin.H{"user_id": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})

	// 无token不拦截
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":""`)

	// 有效token注入用户
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "first-secret"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"user-1"`)
}
