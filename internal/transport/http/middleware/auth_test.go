package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopherpost/internal/app"
	"gopherpost/internal/model"
	"gopherpost/internal/pkg/jwtutil"
)

const testSecret = "middleware-test-secret"

type fakeUserStore struct {
	user *model.User
}

func (s *fakeUserStore) Create(*model.User) error { return nil }

func (s *fakeUserStore) GetByEmail(string) (*model.User, error) { return nil, nil }

func (s *fakeUserStore) GetByID(id uint) (*model.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

func newTestRouter(store *fakeUserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	authService := app.NewAuthService(store, nil, testSecret, time.Minute)

	router := gin.New()
	router.GET("/protected", Auth(authService), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	return router
}

func doRequest(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuth_ValidToken(t *testing.T) {
	store := &fakeUserStore{user: &model.User{ID: 1, Email: "a@x.com"}}
	router := newTestRouter(store)

	token, err := jwtutil.GenerateToken(testSecret, time.Minute, 1)
	require.NoError(t, err)

	rec := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_Rejections(t *testing.T) {
	store := &fakeUserStore{user: &model.User{ID: 1, Email: "a@x.com"}}
	router := newTestRouter(store)

	expired, err := jwtutil.GenerateToken(testSecret, -time.Minute, 1)
	require.NoError(t, err)
	foreign, err := jwtutil.GenerateToken("other-secret", time.Minute, 1)
	require.NoError(t, err)
	vanished, err := jwtutil.GenerateToken(testSecret, time.Minute, 2)
	require.NoError(t, err)

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"garbage token":  "Bearer not-a-token",
		"expired token":  "Bearer " + expired,
		"foreign secret": "Bearer " + foreign,
		"vanished user":  "Bearer " + vanished,
	}
	for name, header := range cases {
		rec := doRequest(router, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}
