package controllers

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/heatmapp/heatmapp/config"
	"github.com/heatmapp/heatmapp/utils"
)

func greenAreaRouter(db *gorm.DB, storage *utils.StorageClient, userID uint) *gin.Engine {
	r := gin.New()
	gc := NewGreenAreaController(db, storage)
	r.POST("/posts_areas/", asUser(userID), gc.Create)
	return r
}

func greenAreaBody(image string) string {
	return fmt.Sprintf(`{
		"local_latitude": -23.5,
		"local_longitude": -46.6,
		"titulo": "Praça Central",
		"modo_acesso": "público",
		"descricao": "Área arborizada",
		"imagem_base64": %q,
		"imagem_nome": "praca.jpg"
	}`, image)
}

func TestCreateGreenAreaRejectsBadImage(t *testing.T) {
	storage := utils.NewStorageClient(config.AppConfig{})
	w := performJSON(greenAreaRouter(nil, storage, 1), http.MethodPost, "/posts_areas/",
		greenAreaBody("%%%nao-e-base64"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 40026, decodeEnvelope(t, w.Body.Bytes()).Code)
}

func TestCreateGreenAreaWithoutStorageIs503(t *testing.T) {
	storage := utils.NewStorageClient(config.AppConfig{})
	image := base64.StdEncoding.EncodeToString([]byte("imagem"))

	w := performJSON(greenAreaRouter(nil, storage, 1), http.MethodPost, "/posts_areas/",
		greenAreaBody(image))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateGreenAreaUploadsAndStores(t *testing.T) {
	var uploadedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uploadedPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	storage := utils.NewStorageClient(config.AppConfig{
		SupabaseURL:         srv.URL,
		SupabaseServiceKey:  "service-key",
		SupabaseAreasBucket: "areas-verdes",
	})

	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `green_area_posts`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	image := base64.StdEncoding.EncodeToString([]byte("imagem"))
	w := performJSON(greenAreaRouter(db, storage, 1), http.MethodPost, "/posts_areas/",
		greenAreaBody(image))

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.HasPrefix(uploadedPath, "/storage/v1/object/areas-verdes/"))
	require.True(t, strings.HasSuffix(uploadedPath, "-praca.jpg"))
	require.NoError(t, mock.ExpectationsWereMet())
}
