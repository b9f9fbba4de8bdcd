package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/matzehuels/palletizer/pkg/buildinfo"
	"github.com/matzehuels/palletizer/pkg/errors"
	"github.com/matzehuels/palletizer/pkg/pipeline"
)

// document is the body of a pipeline request.
type document struct {
	pipeline.Request
	Options *pipeline.Options `json:"options,omitempty"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type partitionResponse struct {
	RunID string `json:"run_id"`
	*pipeline.Partitioning
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	doc, opts, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	plan, err := s.runner.Execute(r.Context(), doc.Request, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set(HeaderRunID, plan.RunID)
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handlePartition(w http.ResponseWriter, r *http.Request) {
	doc, opts, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	runID := uuid.NewString()
	opts.Logger = opts.Logger.With("run", runID)
	parts, _, err := pipeline.Partition(doc.Request, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set(HeaderRunID, runID)
	writeJSON(w, http.StatusOK, partitionResponse{RunID: runID, Partitioning: parts})
}

// decode reads the request document and merges its options over the
// server defaults.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (document, pipeline.Options, error) {
	var doc document
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return document{}, pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	return doc, s.options(doc.Options), nil
}

// options overlays the non-zero fields of o on the server defaults.
func (s *Server) options(o *pipeline.Options) pipeline.Options {
	opts := s.defaults
	if o == nil {
		return opts
	}
	if o.MaxWeight != 0 {
		opts.MaxWeight = o.MaxWeight
	}
	if o.Ceiling != 0 {
		opts.Ceiling = o.Ceiling
	}
	if len(o.StageOrder) > 0 {
		opts.StageOrder = o.StageOrder
	}
	if o.Parallelism != 0 {
		opts.Parallelism = o.Parallelism
	}
	opts.Refresh = o.Refresh
	return opts
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	} else {
		s.logger.Warn("request rejected", "code", code, "err", err)
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: errors.UserMessage(err)}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
