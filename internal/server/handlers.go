package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/Papalexios/sota-god-mode/internal/llm"
	"github.com/Papalexios/sota-god-mode/internal/pipeline"
	"github.com/Papalexios/sota-god-mode/internal/types"
)

// tokenRequest is the body for POST /auth/token.
type tokenRequest struct {
	Token string `json:"token"`
}

// enhanceRequest is the body for POST /enhance and POST /enhance/stream.
type enhanceRequest struct {
	Items    []types.ContentItem `json:"items"`
	Corpus   []types.SitemapPage `json:"corpus,omitempty"`
	MaxLinks int                 `json:"max_links,omitempty"`
	Tier     string              `json:"tier,omitempty"`
}

// handleToken exchanges the operator access token for a short-lived JWT.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Token == "" || !s.tokenConfig.VerifyToken(req.Token, s.tokenHash) {
		err := &ErrInvalidToken{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := s.jwtService.GenerateToken(uuid.New())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"token": token})
}

// handleEnhance runs the pipeline synchronously and returns all enriched
// items in one response.
func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeEnhanceRequest(w, r)
	if !ok {
		return
	}

	results, err := s.pipe.Run(r.Context(), opts)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"results": results})
}

// handleEnhanceStream runs the pipeline and streams progress as SSE events,
// ending with a complete event carrying the enriched items.
func (s *Server) handleEnhanceStream(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeEnhanceRequest(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts.OnProgress = sse.WriteProgress

	results, err := s.pipe.Run(r.Context(), opts)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(results)
}

// decodeEnhanceRequest parses and validates the shared enhance request body.
// Writes the error response itself when the request is unusable.
func (s *Server) decodeEnhanceRequest(w http.ResponseWriter, r *http.Request) (pipeline.RunOptions, bool) {
	var req enhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return pipeline.RunOptions{}, false
	}

	if len(req.Items) == 0 {
		err := &ErrValidation{Field: "items", Message: "at least one content item is required"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return pipeline.RunOptions{}, false
	}

	tier := llm.ModelTier(req.Tier)
	if req.Tier == "" {
		tier = llm.TierStandard
	}

	return pipeline.RunOptions{
		Items:    req.Items,
		Corpus:   req.Corpus,
		MaxLinks: req.MaxLinks,
		Tier:     tier,
	}, true
}

// handleMetrics returns the tracker's aggregate performance view.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"average":             s.track.Average(),
		"trend":               s.track.TrendDirection(),
		"total_optimizations": s.track.Total(),
		"average_improvement": s.track.AverageImprovement(),
	})
}

// handleListRuns returns recent enhancement runs, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.database == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run history requires a database")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	runs, err := s.database.ListRuns(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs})
}

// handleGetItem returns one enriched item from a past run.
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	if s.database == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run history requires a database")
		return
	}

	runID, err := uuid.Parse(r.PathValue("run_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid run ID")
		return
	}
	itemID := r.PathValue("item_id")

	item, err := s.database.GetItem(r.Context(), runID, itemID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if item == nil {
		notFound := &ErrItemNotFound{ItemID: itemID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, item)
}
