// Package api - HTTP handlers
// Handlers wrap the engine and the analysis store; they contain NO pricing logic.
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cloudguide/adapters/storage"
	"cloudguide/core/engine"
	"cloudguide/core/questionnaire"
	"cloudguide/core/types"
	"cloudguide/internal/errors"
	"cloudguide/internal/logging"
)

// Evaluation kinds recorded in metrics
const (
	kindAdvisory = "advisory"
	kindCompare  = "compare"
	kindEstimate = "estimate"
)

// handleAdvisory handles POST /api/v1/advisory
func (s *Server) handleAdvisory(w http.ResponseWriter, r *http.Request) {
	var profile types.MigrationProfile
	if err := decode(w, r, &profile); err != nil {
		s.metrics.RecordEvaluation(kindAdvisory, err)
		writeError(w, r, err)
		return
	}

	result := s.engine.Advise(profile)
	s.metrics.RecordEvaluation(kindAdvisory, nil)
	writeJSON(w, result, http.StatusOK)
}

// handleCompare handles POST /api/v1/pricing/compare
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req engine.CompareRequest
	if err := decode(w, r, &req); err != nil {
		s.metrics.RecordEvaluation(kindCompare, err)
		writeError(w, r, err)
		return
	}

	cmp, err := s.engine.Compare(r.Context(), req)
	s.metrics.RecordEvaluation(kindCompare, err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if best, ok := cmp.Cheapest(); ok {
		s.metrics.RecordMostEconomical(best.Provider.String())
	}
	logging.Debug("compared providers",
		logging.RequestID(RequestIDFrom(r.Context())),
		zap.String("input_hash", cmp.Metadata.InputHash),
		zap.Int("providers", len(cmp.Estimates)),
	)
	writeJSON(w, cmp, http.StatusOK)
}

// handleDiskType handles GET /api/v1/pricing/disk-type?use_case=
func (s *Server) handleDiskType(w http.ResponseWriter, r *http.Request) {
	useCase := types.UseCase(r.URL.Query().Get("use_case"))
	if useCase == "" {
		writeError(w, r, errors.Input("use_case query parameter is required").WithContext("field", "use_case"))
		return
	}
	writeJSON(w, DiskTypeResponse{
		UseCase:  useCase,
		DiskType: s.engine.RecommendDisk(useCase),
	}, http.StatusOK)
}

// handleListProviders handles GET /api/v1/providers
func (s *Server) handleListProviders(w http.ResponseWriter, r *http.Request) {
	entries, err := s.engine.Providers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"providers": entries,
		"count":     len(entries),
	}, http.StatusOK)
}

// handleGetProvider handles GET /api/v1/providers/{name}
func (s *Server) handleGetProvider(w http.ResponseWriter, r *http.Request) {
	detail, err := s.engine.Provider(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, detail, http.StatusOK)
}

// handleEstimate handles POST /api/v1/estimate
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var answers questionnaire.Answers
	if err := decode(w, r, &answers); err != nil {
		s.metrics.RecordEvaluation(kindEstimate, err)
		writeError(w, r, err)
		return
	}

	result, err := s.engine.EstimateProject(answers)
	s.metrics.RecordEvaluation(kindEstimate, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

// handleEstimateProfile handles POST /api/v1/estimate/profile
func (s *Server) handleEstimateProfile(w http.ResponseWriter, r *http.Request) {
	var profile types.MigrationProfile
	if err := decode(w, r, &profile); err != nil {
		s.metrics.RecordEvaluation(kindEstimate, err)
		writeError(w, r, err)
		return
	}

	result, err := s.engine.EstimateProfile(profile)
	s.metrics.RecordEvaluation(kindEstimate, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

// requireStore answers 503 when no analysis store is configured
func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			writeJSON(w, ErrorResponse{Error: ErrorBody{
				Code:      "UNAVAILABLE",
				Message:   "analysis storage is not configured",
				RequestID: RequestIDFrom(r.Context()),
			}}, http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleListAnalyses handles GET /api/v1/analyses?user_id=
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("user_id")
	if userID == "" {
		writeError(w, r, errors.Input("user_id query parameter is required").WithContext("field", "user_id"))
		return
	}

	limit, err := intParam(q.Get("limit"), "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	offset, err := intParam(q.Get("offset"), "offset")
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := s.store.List(r.Context(), storage.ListFilter{UserID: userID, Limit: limit, Offset: offset})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, ListAnalysesResponse{Analyses: list, Count: len(list)}, http.StatusOK)
}

// handleCreateAnalysis handles POST /api/v1/analyses
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req CreateAnalysisRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	a := &storage.SavedAnalysis{
		UserID:    req.UserID,
		Title:     req.Title,
		Config:    req.Config,
		Estimates: req.Estimates,
		Advisory:  req.Advisory,
		Trends:    req.Trends,
	}
	if err := s.store.Save(r.Context(), a); err != nil {
		writeError(w, r, err)
		return
	}

	logging.Info("analysis saved",
		logging.RequestID(RequestIDFrom(r.Context())),
		zap.String("id", a.ID),
		zap.String("user_id", a.UserID),
	)
	writeJSON(w, a, http.StatusCreated)
}

// handleGetAnalysis handles GET /api/v1/analyses/{id}
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, a, http.StatusOK)
}

// handleUpdateAnalysis handles PUT /api/v1/analyses/{id}
func (s *Server) handleUpdateAnalysis(w http.ResponseWriter, r *http.Request) {
	var patch storage.Patch
	if err := decode(w, r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	a, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, a, http.StatusOK)
}

// handleDeleteAnalysis handles DELETE /api/v1/analyses/{id}?user_id=
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id, r.URL.Query().Get("user_id")); err != nil {
		writeError(w, r, err)
		return
	}

	logging.Info("analysis deleted",
		logging.RequestID(RequestIDFrom(r.Context())),
		zap.String("id", id),
	)
	writeJSON(w, DeleteResponse{Deleted: id}, http.StatusOK)
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.Inputf("%s must be a non-negative integer", name).WithContext("field", name)
	}
	return n, nil
}
