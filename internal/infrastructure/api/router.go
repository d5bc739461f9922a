package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"style-outfits/internal/metrics"
)

func NewRouter(handler *OutfitHandler, reg *metrics.Registry) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger(reg))

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/outfits/generate", handler.HandleGenerateOutfit).Methods(http.MethodPost)
	api.HandleFunc("/items/analyze", handler.HandleAnalyzeItem).Methods(http.MethodPost)

	r.HandleFunc("/healthz", handler.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/metrics", reg.HandleText).Methods(http.MethodGet)
	r.HandleFunc("/metrics.json", reg.HandleJSON).Methods(http.MethodGet)

	return r
}
