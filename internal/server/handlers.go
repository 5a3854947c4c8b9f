package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/talent-matcher/internal/recommend"
	"github.com/jonathan/talent-matcher/internal/types"
)

// maxBodyBytes bounds request bodies, resumes included.
const maxBodyBytes = 1 << 20

// PairRequest carries an inline candidate and job.
type PairRequest struct {
	Candidate *types.CandidateSignal `json:"candidate"`
	Job       *types.JobSignal       `json:"job"`
}

// ScoreResponse is returned by the score endpoints.
type ScoreResponse struct {
	CandidateID string `json:"candidate_id,omitempty"`
	JobID       string `json:"job_id,omitempty"`
	Score       int    `json:"score"`
}

// ResumeRequest carries resume text as JSON. Plain text and HTML bodies are accepted as-is.
type ResumeRequest struct {
	Text string `json:"text"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics exposes the cache counters.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"cache": s.service.CacheStats()})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	score, err := s.service.Score(r.Context(), req.Candidate, req.Job)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ScoreResponse{Score: score})
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	breakdown, err := s.service.Explain(req.Candidate, req.Job)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, breakdown)
}

func (s *Server) handleGap(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	report, err := s.service.AnalyzeGap(req.Candidate, req.Job)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleScoreByID(w http.ResponseWriter, r *http.Request) {
	candidateID, jobID := r.PathValue("candidate_id"), r.PathValue("job_id")
	score, err := s.service.ScoreByID(r.Context(), candidateID, jobID)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ScoreResponse{CandidateID: candidateID, JobID: jobID, Score: score})
}

func (s *Server) handleExplainByID(w http.ResponseWriter, r *http.Request) {
	breakdown, err := s.service.ExplainByID(r.Context(), r.PathValue("candidate_id"), r.PathValue("job_id"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, breakdown)
}

func (s *Server) handleGapByID(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.AnalyzeGapByID(r.Context(), r.PathValue("candidate_id"), r.PathValue("job_id"))
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleRecommendJobs(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	bundle, err := s.service.RecommendJobsFor(r.Context(), r.PathValue("candidate_id"), limit)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, bundle)
}

func (s *Server) handleRecommendCandidates(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	bundle, err := s.service.RecommendCandidatesFor(r.Context(), r.PathValue("job_id"), limit)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, bundle)
}

func (s *Server) handleSimilarJobs(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	similar, err := s.service.SimilarJobs(r.Context(), r.PathValue("job_id"), limit)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"job_id": r.PathValue("job_id"), "similar": similar})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	text, err := resumeText(w, r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.service.Extract(text))
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	text, err := resumeText(w, r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.service.AnalyzeResume(text))
}

func (s *Server) handleInvalidateCandidate(w http.ResponseWriter, r *http.Request) {
	if err := s.service.InvalidateCandidate(r.Context(), r.PathValue("candidate_id")); err != nil {
		s.failure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInvalidateJob(w http.ResponseWriter, r *http.Request) {
	if err := s.service.InvalidateJob(r.Context(), r.PathValue("job_id")); err != nil {
		s.failure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSON reads exactly one JSON value from the body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrValidation{Field: "body", Message: "request body too large"}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if dec.More() {
		return &ErrValidation{Field: "body", Message: "unexpected data after JSON value"}
	}
	return nil
}

// resumeText accepts {"text": ...} for JSON bodies and the raw body otherwise.
func resumeText(w http.ResponseWriter, r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req ResumeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return "", err
		}
		return req.Text, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return "", &ErrValidation{Field: "body", Message: "request body too large"}
	}
	return string(body), nil
}

// limitParam parses ?limit=, defaulting to recommend.DefaultLimit.
func limitParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return recommend.DefaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &ErrValidation{Field: "limit", Message: "must be a positive integer"}
	}
	return n, nil
}
