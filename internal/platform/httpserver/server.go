package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	poolservice "commonweal/contexts/resource-sharing/pool-service"
	_ "commonweal/internal/platform/httpserver/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	pools  poolservice.Module
}

func New(pools poolservice.Module, logger *slog.Logger, addr string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		pools:  pools,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/councils/{council_id}/pools", s.handleCreatePool)
	s.mux.HandleFunc("GET /v1/councils/{council_id}/pools", s.handleListCouncilPools)
	s.mux.HandleFunc("GET /v1/pools/{pool_id}", s.handleGetPool)
	s.mux.HandleFunc("PATCH /v1/pools/{pool_id}", s.handleUpdatePool)
	s.mux.HandleFunc("DELETE /v1/pools/{pool_id}", s.handleClosePool)
	s.mux.HandleFunc("GET /v1/pools/{pool_id}/inventory", s.handleListInventory)
	s.mux.HandleFunc("POST /v1/pools/{pool_id}/contributions", s.handleContribute)
	s.mux.HandleFunc("GET /v1/pools/{pool_id}/contributions/pending", s.handleListPendingContributions)
	s.mux.HandleFunc("POST /v1/pools/{pool_id}/contributions/{id}/confirm", s.handleConfirmContribution)
	s.mux.HandleFunc("POST /v1/pools/{pool_id}/contributions/{id}/reject", s.handleRejectContribution)
	s.mux.HandleFunc("POST /v1/pools/{pool_id}/distributions", s.handleDistribute)
	s.mux.HandleFunc("GET /v1/pools/{pool_id}/distributions", s.handleListDistributions)
	s.mux.HandleFunc("POST /v1/pools/{pool_id}/distributions/preview", s.handlePreviewMassDistribution)
	s.mux.HandleFunc("POST /v1/pools/{pool_id}/distributions/mass", s.handleMassDistribute)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
