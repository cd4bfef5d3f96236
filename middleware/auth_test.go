package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/heatmapp/heatmapp/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func authTestRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"user_id":  ctx.GetUint(ContextUserIDKey),
			"username": ctx.GetString(ContextUsernameKey),
		})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	w := doRequest(authTestRouter(), "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsBadScheme(t *testing.T) {
	w := doRequest(authTestRouter(), "Basic abc123")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsInvalidToken(t *testing.T) {
	w := doRequest(authTestRouter(), "Bearer not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	token, err := utils.GenerateToken(7, "ana", time.Hour)
	require.NoError(t, err)

	w := doRequest(authTestRouter(), "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		UserID   uint   `json:"user_id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, uint(7), body.UserID)
	require.Equal(t, "ana", body.Username)
}
