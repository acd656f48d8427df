package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"sparkd_server/models"
	"sparkd_server/services"
)

// UserController serves the matching-engine endpoints: swipe, feed,
// liked-by, respond-to-like and matches.
type UserController struct {
	Swipes  *services.SwipeService
	Feed    *services.FeedService
	Matches *services.MatchService
}

// NewUserController initializes the user controller
func NewUserController(swipes *services.SwipeService, feed *services.FeedService, matches *services.MatchService) *UserController {
	return &UserController{Swipes: swipes, Feed: feed, Matches: matches}
}

// HandleSwipe records a directional decision and reports whether it
// completed a mutual match
func (c *UserController) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticate(w, r)
	if !ok {
		return
	}

	var request struct {
		SwipedUserID string `json:"swipedUserId"`
		Direction    string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.SwipedUserID == "" {
		writeError(w, http.StatusBadRequest, "swipedUserId is required")
		return
	}

	swipe, err := c.Swipes.RecordSwipe(r.Context(), userID, request.SwipedUserID, request.Direction)
	if err != nil {
		log.Printf("❌ Swipe failed for %s -> %s: %v", userID, request.SwipedUserID, err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	// The ledger only persists; the mutual check is the caller's job
	isMatch := false
	if swipe.Direction == models.DirectionRight {
		back, err := c.Swipes.FindDirection(r.Context(), request.SwipedUserID, userID)
		if err != nil {
			writeError(w, statusForError(err), err.Error())
			return
		}
		isMatch = back == models.DirectionRight
	}

	response := map[string]interface{}{
		"message": "Swipe recorded successfully",
		"swipe":   swipe,
		"isMatch": isMatch,
	}
	if isMatch {
		response["matchMessage"] = "It's a match"
	}
	writeJSON(w, http.StatusOK, response)
}

// HandleGetFeed returns one shuffled page of swipe candidates
func (c *UserController) HandleGetFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticate(w, r)
	if !ok {
		return
	}
	page, limit := parsePagination(r)

	users, totalUsers, totalPages, err := c.Feed.GetFeed(r.Context(), userID, page, limit)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Feed fetched successfully",
		"users":       users,
		"totalUsers":  totalUsers,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// HandleGetLikedBy returns the users awaiting a decision from the caller
func (c *UserController) HandleGetLikedBy(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticate(w, r)
	if !ok {
		return
	}
	page, limit := parsePagination(r)

	users, totalLikes, err := c.Matches.GetLikedBy(r.Context(), userID, page, limit)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Liked by users fetched successfully",
		"users":       users,
		"totalLikes":  totalLikes,
		"totalPages":  services.TotalPages(totalLikes, limit),
		"currentPage": page,
	})
}

// HandleRespondToLike accepts or rejects a pending liker
func (c *UserController) HandleRespondToLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticate(w, r)
	if !ok {
		return
	}

	var request struct {
		UserID string `json:"userId"`
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	swipe, err := c.Matches.RespondToLike(r.Context(), userID, request.UserID, request.Action)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	message := "Profile rejected successfully"
	if request.Action == models.ActionAccept {
		message = "Match created successfully!"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"swipe":   swipe,
	})
}

// HandleGetMatches returns the caller's mutual matches, newest first
func (c *UserController) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticate(w, r)
	if !ok {
		return
	}
	page, limit := parsePagination(r)

	users, totalMatches, err := c.Matches.GetMatches(r.Context(), userID, page, limit)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Matches fetched successfully",
		"users":        users,
		"totalMatches": totalMatches,
		"totalPages":   services.TotalPages(totalMatches, limit),
		"currentPage":  page,
	})
}
