package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sparkd_server/services"
	"sparkd_server/utils"

	"github.com/stretchr/testify/assert"
)

func TestHandlers_RejectMissingCredential(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userController := NewUserController(nil, nil, nil)
	chatController := NewChatController(nil)

	handlers := map[string]http.HandlerFunc{
		"swipe":         userController.HandleSwipe,
		"feed":          userController.HandleGetFeed,
		"likedBy":       userController.HandleGetLikedBy,
		"respondToLike": userController.HandleRespondToLike,
		"matches":       userController.HandleGetMatches,
		"findRoom":      chatController.HandleFindRoom,
		"history":       chatController.HandleChatHistory,
	}

	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", nil)
			w := httptest.NewRecorder()
			handler(w, r)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestStatusForError(t *testing.T) {
	cases := map[error]int{
		utils.ErrInvalidToken:        http.StatusUnauthorized,
		services.ErrUserNotFound:     http.StatusNotFound,
		services.ErrChatNotFound:     http.StatusNotFound,
		services.ErrPreferenceNotSet: http.StatusPreconditionFailed,
		services.ErrSelfSwipe:        http.StatusBadRequest,
		services.ErrInvalidDirection: http.StatusBadRequest,
		services.ErrEmptyContent:     http.StatusBadRequest,
		assert.AnError:               http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusForError(err), err.Error())
	}
}

func TestParsePagination_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/users/feed", nil)
	page, limit := parsePagination(r)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	r = httptest.NewRequest("GET", "/api/users/feed?page=3&limit=25", nil)
	page, limit = parsePagination(r)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)

	r = httptest.NewRequest("GET", "/api/users/feed?page=-1&limit=0", nil)
	page, limit = parsePagination(r)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
}
