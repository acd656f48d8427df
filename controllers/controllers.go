package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"sparkd_server/services"
	"sparkd_server/utils"
)

// Shared response and auth plumbing for the HTTP controllers

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// statusForError maps service-layer sentinels onto HTTP statuses
func statusForError(err error) int {
	switch {
	case errors.Is(err, utils.ErrNoToken), errors.Is(err, utils.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrChatNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrPreferenceNotSet):
		return http.StatusPreconditionFailed
	case errors.Is(err, services.ErrSelfSwipe),
		errors.Is(err, services.ErrSameParticipant),
		errors.Is(err, services.ErrInvalidDirection),
		errors.Is(err, services.ErrInvalidAction),
		errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrNotParticipant):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// authenticate resolves the request's bearer token to a userId, writing
// the 401 itself when the credential is missing or bad
func authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := utils.UserIDFromRequest(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized: "+err.Error())
		return "", false
	}
	return userID, true
}

// parsePagination reads page/limit query parameters with the usual defaults
func parsePagination(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}
