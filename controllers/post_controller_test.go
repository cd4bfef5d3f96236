package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func postRouter(db *gorm.DB, userID uint) *gin.Engine {
	r := gin.New()
	pc := NewPostController(db)
	group := r.Group("/", asUser(userID))
	group.POST("/posts/", pc.CreatePost)
	group.POST("/posts_ruido/", pc.CreateNoisePost)
	return r
}

func TestCreatePostRequiresAuth(t *testing.T) {
	r := gin.New()
	r.POST("/posts/", NewPostController(nil).CreatePost)

	w := performJSON(r, http.MethodPost, "/posts/", `{"local_latitude":-23.5,"local_longitude":-46.6}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePostRejectsMissingCoordinates(t *testing.T) {
	w := performJSON(postRouter(nil, 1), http.MethodPost, "/posts/", `{"local_latitude":-23.5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePostRejectsOutOfRangeCoordinates(t *testing.T) {
	w := performJSON(postRouter(nil, 1), http.MethodPost, "/posts/", `{"local_latitude":123.0,"local_longitude":-46.6}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 40021, body.Code)
}

func TestCreatePostAppliesRewardAndStoresPost(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE .*FOR UPDATE").WillReturnRows(userRows(1, 10, 4))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `posts`").WillReturnRows(countRows(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `noise_posts`").WillReturnRows(countRows(0))
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `posts`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w := performJSON(postRouter(db, 1), http.MethodPost, "/posts/", `{"local_latitude":-23.5,"local_longitude":-46.6}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Recompensa struct {
				AumentouStreak bool `json:"aumentou_streak"`
				MoedasGanhas   int  `json:"moedas_ganhas"`
			} `json:"recompensa"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Data.Recompensa.AumentouStreak)
	require.Equal(t, 5, body.Data.Recompensa.MoedasGanhas)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNoisePostRejectsNegativeDecibels(t *testing.T) {
	w := performJSON(postRouter(nil, 1), http.MethodPost, "/posts_ruido/",
		`{"local_latitude":-23.5,"local_longitude":-46.6,"decibeis":-4.0}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateNoisePostAppliesReward(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE .*FOR UPDATE").WillReturnRows(userRows(1, 10, 4))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `posts`").WillReturnRows(countRows(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `noise_posts`").WillReturnRows(countRows(0))
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `noise_posts`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w := performJSON(postRouter(db, 1), http.MethodPost, "/posts_ruido/",
		`{"local_latitude":-23.5,"local_longitude":-46.6,"decibeis":72.5}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
