package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the dashboard API routes.
func NewRouter(h *Handlers) http.Handler {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/insights/overview", h.Overview).Methods("GET", "OPTIONS")
	v1.HandleFunc("/insights/campuses", h.Campuses).Methods("GET", "OPTIONS")
	v1.HandleFunc("/insights/teachers", h.Teachers).Methods("GET", "OPTIONS")
	v1.HandleFunc("/insights/range", h.Range).Methods("GET", "OPTIONS")
	v1.HandleFunc("/insights/sections", h.Sections).Methods("GET", "OPTIONS")

	v1.HandleFunc("/responses", h.SubmitResponse).Methods("POST", "OPTIONS")
	v1.HandleFunc("/responses/sectioned", h.SubmitSectioned).Methods("POST", "OPTIONS")

	v1.HandleFunc("/survey/next", h.SurveyNext).Methods("POST", "OPTIONS")
	v1.HandleFunc("/translate", h.Translate).Methods("POST", "OPTIONS")

	v1.HandleFunc("/export.csv", h.ExportCSV).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
