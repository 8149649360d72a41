package dating

import (
	"github.com/gorilla/mux"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/auth"
	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/common/utils"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Compatibility
	api.HandleFunc("/compatibility/score", handler.ScoreProfiles).Methods("POST")
	api.HandleFunc("/compatibility/weights", handler.GetWeights).Methods("GET")
	api.HandleFunc("/compatibility/top", handler.GetTopMatches).Methods("GET")
	api.HandleFunc("/compatibility/{userId:[0-9]+}", handler.GetCompatibility).Methods("GET")
	api.HandleFunc("/compatibility/{userId:[0-9]+}/saved", handler.GetSavedScore).Methods("GET")

	// Recommendations
	api.HandleFunc("/recommendations", handler.GetRecommendations).Methods("GET")

	// Admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware.RequireRole(utils.RoleAdmin))
	admin.HandleFunc("/qcs/sync", handler.TriggerSync).Methods("POST")
}
