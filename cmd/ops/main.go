// Ops is a small admin sidecar: health probe and suggestion-cache
// flush, kept off the public API surface.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/arvella/stockroom/internal/cache"
	"github.com/arvella/stockroom/internal/config"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	cfg := config.Load()

	suggestionCache, err := cache.NewSuggestionCache(cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to connect suggestion cache: %v", err)
	}

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/cache/suggestions/flush", func(w http.ResponseWriter, r *http.Request) {
		if err := suggestionCache.InvalidateAll(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "flushed"})
	}).Methods("POST")

	r.HandleFunc("/cache/suggestions/flush/{store_id}", func(w http.ResponseWriter, r *http.Request) {
		storeID, err := strconv.ParseInt(mux.Vars(r)["store_id"], 10, 64)
		if err != nil {
			http.Error(w, "invalid store_id", http.StatusBadRequest)
			return
		}
		if err := suggestionCache.Invalidate(r.Context(), storeID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "flushed"})
	}).Methods("POST")

	addr := fmt.Sprintf(":%s", envPort(cfg))
	log.Printf("Ops server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func envPort(cfg *config.Config) string {
	// the ops sidecar listens one port above the API by convention
	if p, err := strconv.Atoi(cfg.Server.Port); err == nil {
		return strconv.Itoa(p + 1)
	}
	return "8081"
}
