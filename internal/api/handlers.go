package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rlevin/matchpoint/internal/docload"
	"github.com/rlevin/matchpoint/internal/model"
	"github.com/rlevin/matchpoint/internal/pipeline"
)

type analyzeRequest struct {
	HandbookPath string               `json:"handbook_path"`
	Question     string               `json:"question,omitempty"`
	Paystub      *model.PaystubRecord `json:"paystub"`
	RSU          *model.RSURecord     `json:"rsu,omitempty"`
}

type policyQuestionRequest struct {
	HandbookPath string `json:"handbook_path"`
	Question     string `json:"question,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.HandbookPath == "" {
		jsonError(w, http.StatusBadRequest, "handbook_path is required")
		return
	}
	if req.Paystub == nil {
		jsonError(w, http.StatusBadRequest, "paystub is required")
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), pipeline.Request{
		HandbookPath: req.HandbookPath,
		Question:     req.Question,
		Paystub:      *req.Paystub,
		RSU:          req.RSU,
	})
	if err != nil {
		writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handlePolicyQuestion(w http.ResponseWriter, r *http.Request) {
	var req policyQuestionRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.HandbookPath == "" {
		jsonError(w, http.StatusBadRequest, "handbook_path is required")
		return
	}

	answer, err := s.analyzer.AnswerPolicyQuestion(r.Context(), req.HandbookPath, req.Question)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, docload.ErrDocumentNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, docload.ErrUnsupportedFormat):
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		jsonError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
