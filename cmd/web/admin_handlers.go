package main

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

// AdminStatsHandler returns visitor and submission stats as JSON. Access
// requires a bearer token; with no token configured the route plays dead.
func AdminStatsHandler(w http.ResponseWriter, r *http.Request) {
	token := os.Getenv("PORTFOLIO_WEB_ADMIN_TOKEN")
	if token == "" {
		NotFoundHandler(w, r)
		return
	}
	auth := r.Header.Get("Authorization")
	supplied, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
		w.Header().Set("WWW-Authenticate", "Bearer")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := visitStore.Stats(r.Context())
	if err != nil {
		log.Printf("admin: stats: %v", err)
		http.Error(w, "failed to load stats", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(stats)
}
