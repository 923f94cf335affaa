package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	poolerrors "commonweal/contexts/resource-sharing/pool-service/domain/errors"
	poolhttp "commonweal/contexts/resource-sharing/pool-service/transport/http"
)

const (
	poolActionRead       = "pools.read"
	poolActionManage     = "pools.manage"
	poolActionContribute = "pools.contribute"
	poolActionReview     = "pools.review"
	poolActionDistribute = "pools.distribute"
)

func writePoolError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, poolhttp.ErrorResponse{Code: code, Message: message})
}

func writePoolDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, poolerrors.ErrPoolNotFound):
		writePoolError(w, http.StatusNotFound, "pool_not_found", err.Error())
	case errors.Is(err, poolerrors.ErrContributionNotFound):
		writePoolError(w, http.StatusNotFound, "contribution_not_found", err.Error())
	case errors.Is(err, poolerrors.ErrPoolExists):
		writePoolError(w, http.StatusConflict, "pool_exists", err.Error())
	case errors.Is(err, poolerrors.ErrPoolClosed):
		writePoolError(w, http.StatusConflict, "pool_closed", err.Error())
	case errors.Is(err, poolerrors.ErrInvalidState):
		writePoolError(w, http.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, poolerrors.ErrInventoryChanged):
		writePoolError(w, http.StatusConflict, "inventory_changed", err.Error())
	case errors.Is(err, poolerrors.ErrInsufficientInventory):
		writePoolError(w, http.StatusConflict, "insufficient_inventory", err.Error())
	case errors.Is(err, poolerrors.ErrBelowMinimumContribution):
		writePoolError(w, http.StatusBadRequest, "below_minimum_contribution", err.Error())
	case errors.Is(err, poolerrors.ErrItemNotAllowed):
		writePoolError(w, http.StatusBadRequest, "item_not_allowed", err.Error())
	case errors.Is(err, poolerrors.ErrUnsupportedStrategy):
		writePoolError(w, http.StatusBadRequest, "unsupported_strategy", err.Error())
	case errors.Is(err, poolerrors.ErrInvalidPoolInput),
		errors.Is(err, poolerrors.ErrInvalidContributionInput),
		errors.Is(err, poolerrors.ErrInvalidDistributionInput):
		writePoolError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writePoolError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// requirePoolActor resolves the acting user and runs the authorization check
// before any command or query dispatch. Returns the empty string after
// writing the error response when the request may not proceed.
func (s *Server) requirePoolActor(w http.ResponseWriter, r *http.Request, action string, poolID string) string {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writePoolError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return ""
	}
	if s.pools.Authorizer == nil {
		return userID
	}
	allowed, err := s.pools.Authorizer.Check(r.Context(), userID, action, poolID)
	if err != nil {
		writePoolError(w, http.StatusInternalServerError, "authorization_failed", "authorization check failed")
		return ""
	}
	if !allowed {
		writePoolError(w, http.StatusForbidden, "forbidden", "not allowed to "+action)
		return ""
	}
	return userID
}

func (s *Server) handleCreatePool(w http.ResponseWriter, r *http.Request) {
	userID := s.requirePoolActor(w, r, poolActionManage, "")
	if userID == "" {
		return
	}

	var req poolhttp.CreatePoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePoolError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.pools.Handler.CreatePoolHandler(r.Context(), userID, r.PathValue("council_id"), req)
	if err != nil {
		writePoolDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCouncilPools(w http.ResponseWriter, r *http.Request) {
	userID := s.requirePoolActor(w, r, poolActionRead, "")
	if userID == "" {
		return
	}

	resp, err := s.pools.Handler.ListCouncilPoolsHandler(r.Context(), r.PathValue("council_id"))
	if err != nil {
		writePoolDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPool(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("pool_id")
	userID := s.requirePoolActor(w, r, poolActionRead, poolID)
	if userID == "" {
		return
	}

	resp, err := s.pools.Handler.GetPoolHandler(r.Context(), poolID)
	if err != nil {
		writePoolDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePool(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("pool_id")
	userID := s.requirePoolActor(w, r, poolActionManage, poolID)
	if userID == "" {
		return
	}

	var req poolhttp.UpdatePoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePoolError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.pools.Handler.UpdatePoolHandler(r.Context(), userID, poolID, req)
	if err != nil {
		writePoolDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClosePool(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("pool_id")
	userID := s.requirePoolActor(w, r, poolActionManage, poolID)
	if userID == "" {
		return
	}

	if err := s.pools.Handler.ClosePoolHandler(r.Context(), userID, poolID); err != nil {
		writePoolDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListInventory(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("pool_id")
	userID := s.requirePoolActor(w, r, poolActionRead, poolID)
	if userID == "" {
		return
	}

	resp, err := s.pools.Handler.ListInventoryHandler(r.Context(), poolID)
	if err != nil {
		writePoolDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("pool_id")
	userID := s.requirePoolActor(w, r, poolActionContribute, poolID)
	if userID == "" {
		return
	}

	var req poolhttp.ContributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePoolError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.pools.Handler.ContributeHandler(r.Context(), userID, poolID, req)
	if err != nil {
		writePoolDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPendingContributions(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("pool_id")
	userID := s.requirePoolActor(w, r, poolActionReview, poolID)
	if userID == "" {
		return
	}

	resp, err := s.pools.Handler.ListPendingContributionsHandler(r.Context(), poolID)
	if err != nil {
		writePoolDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConfirmContribution(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("pool_id")
	userID := s.requirePoolActor(w, r, poolActionReview, poolID)
	if userID == "" {
		return
	}

	resp, err := s.pools.Handler.ConfirmContributionHandler(r.Context(), userID, poolID, r.PathValue("id"))
	if err != nil {
		writePoolDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectContribution(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("pool_id")
	userID := s.requirePoolActor(w, r, poolActionReview, poolID)
	if userID == "" {
		return
	}

	resp, err := s.pools.Handler.RejectContributionHandler(r.Context(), userID, poolID, r.PathValue("id"))
	if err != nil {
		writePoolDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDistribute(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("pool_id")
	userID := s.requirePoolActor(w, r, poolActionDistribute, poolID)
	if userID == "" {
		return
	}

	var req poolhttp.DistributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePoolError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.pools.Handler.DistributeHandler(r.Context(), userID, poolID, req)
	if err != nil {
		writePoolDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListDistributions(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("pool_id")
	userID := s.requirePoolActor(w, r, poolActionRead, poolID)
	if userID == "" {
		return
	}

	resp, err := s.pools.Handler.ListDistributionsHandler(r.Context(), poolID)
	if err != nil {
		writePoolDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePreviewMassDistribution(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("pool_id")
	userID := s.requirePoolActor(w, r, poolActionDistribute, poolID)
	if userID == "" {
		return
	}

	var req poolhttp.PreviewMassDistributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePoolError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.pools.Handler.PreviewMassDistributionHandler(r.Context(), poolID, req)
	if err != nil {
		writePoolDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMassDistribute(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("pool_id")
	userID := s.requirePoolActor(w, r, poolActionDistribute, poolID)
	if userID == "" {
		return
	}

	var req poolhttp.MassDistributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePoolError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.pools.Handler.MassDistributeHandler(r.Context(), userID, poolID, req)
	if err != nil {
		writePoolDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}
