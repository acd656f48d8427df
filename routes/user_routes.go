package routes

import (
	"sparkd_server/controllers"
	"sparkd_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up the matching-engine routes under /api/users
func RegisterUserRoutes(r *mux.Router, swipes *services.SwipeService, feed *services.FeedService, matches *services.MatchService) {
	controller := controllers.NewUserController(swipes, feed, matches)

	userRouter := r.PathPrefix("/api/users").Subrouter()

	userRouter.HandleFunc("/swipe", controller.HandleSwipe).Methods("POST")
	userRouter.HandleFunc("/feed", controller.HandleGetFeed).Methods("GET")
	userRouter.HandleFunc("/likedBy", controller.HandleGetLikedBy).Methods("GET")
	userRouter.HandleFunc("/respondToLike", controller.HandleRespondToLike).Methods("POST")
	userRouter.HandleFunc("/matches", controller.HandleGetMatches).Methods("GET")
}
