package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/keyword-scout/internal/pipeline"
	"github.com/jonathan/keyword-scout/internal/types"
)

// maxBodyBytes bounds analyze request bodies.
const maxBodyBytes = 64 << 10

// handleAnalyze runs an analysis and returns the full result as JSON
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAnalyzeRequest(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.logger.Info("starting analysis", "keyword", req.Keyword, "count", req.Count)
	result := s.analyzer.SafeRun(r.Context(), req, nil)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleAnalyzeStream runs an analysis and streams progress as Server-Sent Events.
// The final "complete" event carries the report. A run that ended in an internal
// error is announced with an "error" event first.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAnalyzeRequest(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("starting streaming analysis", "keyword", req.Keyword, "count", req.Count)

	result := s.analyzer.SafeRun(r.Context(), req, func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent(EventStep, event); err != nil {
			s.logger.Warn("failed to write SSE event", "err", err)
		}
	})

	if result.Outcome == types.OutcomeInternalError {
		sse.WriteError(result.Report)
	}
	sse.WriteComplete(result)
	s.logger.Info("streaming analysis completed", "run_id", result.RunID, "outcome", result.Outcome)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeAnalyzeRequest reads and validates an AnalyzeRequest body.
func decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (types.AnalyzeRequest, error) {
	var req types.AnalyzeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return req, &ErrBodyTooLarge{Limit: maxErr.Limit}
		}
		if errors.Is(err, io.EOF) {
			return req, &ErrValidation{Field: "body", Message: "request body is empty"}
		}
		return req, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}

	if err := req.Validate(); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return req, &ErrValidation{Field: strings.ToLower(fieldErrs[0].Field()), Message: fieldErrs[0].Tag() + " " + fieldErrs[0].Param()}
		}
		return req, &ErrValidation{Field: "body", Message: err.Error()}
	}

	return req, nil
}
