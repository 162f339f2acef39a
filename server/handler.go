// SPDX-License-Identifier: MIT

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/katalvlaran/timewarp/dtw"
)

var (
	// ErrTooLong indicates a sequence longer than server.max_length.
	ErrTooLong = errors.New("sequence exceeds maximum length")

	// ErrTooManyCells indicates a cost matrix larger than server.max_cells.
	ErrTooManyCells = errors.New("cost matrix exceeds maximum cell count")

	// ErrTrailingData indicates extra content after the request object.
	ErrTrailingData = errors.New("unexpected data after request body")
)

// AlignRequest is the body of POST /align.
type AlignRequest struct {
	A      []float64 `json:"a"`
	B      []float64 `json:"b"`
	Band   *int      `json:"band"`
	Path   bool      `json:"path"`
	Metric string    `json:"metric,omitempty"`
}

// AlignResponse is the body of a successful POST /align.
type AlignResponse struct {
	Distance    float64  `json:"distance"`
	Path        [][2]int `json:"path,omitempty"`
	Band        *int     `json:"band"`
	Restriction string   `json:"restriction"`
	Cells       int      `json:"cells"`
	Cached      bool     `json:"cached"`
}

// InfoResponse is the body of GET /info.
type InfoResponse struct {
	MaxLength int      `json:"max_length"`
	MaxCells  int      `json:"max_cells"`
	MaxBody   int64    `json:"max_body"`
	Cache     bool     `json:"cache"`
	Metrics   []string `json:"metrics"`
}

// align computes one alignment.
func (s *Server) align(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req AlignRequest
	if status, err := s.decode(w, r, &req); err != nil {
		s.fail(w, status, err)
		return
	}
	if len(req.A) > s.cfg.MaxLength || len(req.B) > s.cfg.MaxLength {
		s.fail(w, http.StatusRequestEntityTooLarge,
			fmt.Errorf("%w: %d > %d", ErrTooLong, max(len(req.A), len(req.B)), s.cfg.MaxLength))
		return
	}

	opts := dtw.DefaultOptions()
	if req.Band != nil {
		opts.Restriction = dtw.Band(*req.Band)
	}
	if err := opts.Restriction.Validate(); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	// empty sequences are rejected by compute
	if len(req.A) > 0 && len(req.B) > 0 {
		shape := dtw.Shape{Rows: len(req.A), Cols: len(req.B)}
		if cells := opts.Restriction.Count(shape); cells > s.cfg.MaxCells {
			s.fail(w, http.StatusRequestEntityTooLarge,
				fmt.Errorf("%w: %d > %d", ErrTooManyCells, cells, s.cfg.MaxCells))
			return
		}
	}

	key := cacheKey(&req)
	if resp, ok := s.cache.Get(key); ok {
		s.metrics.cacheHits.Inc()
		s.metrics.alignments.WithLabelValues(outcomeOK).Inc()
		resp.Cached = true
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp, status, err := s.compute(&req, opts)
	if err != nil {
		s.fail(w, status, err)
		return
	}
	s.cache.Set(key, resp)
	s.metrics.alignments.WithLabelValues(outcomeOK).Inc()
	writeJSON(w, http.StatusOK, resp)
}

// decode reads the JSON body, capped at maxBody bytes.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) (int, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, err
		}
		return http.StatusBadRequest, err
	}
	if dec.More() {
		return http.StatusBadRequest, ErrTrailingData
	}

	return http.StatusOK, nil
}

// compute runs the alignment and maps dtw errors to HTTP statuses.
// A distance that does not fit float64 (ErrCostOverflow) is a 422, like an
// infeasible band: the input is well-formed but has no usable answer.
func (s *Server) compute(req *AlignRequest, opts dtw.Options) (AlignResponse, int, error) {
	metric, err := dtw.MetricByName[float64](req.Metric)
	if err != nil {
		return AlignResponse{}, http.StatusBadRequest, err
	}

	start := time.Now()
	al, err := dtw.Align(req.A, req.B, metric, &opts)
	if errors.Is(err, dtw.ErrCostOverflow) {
		return AlignResponse{}, http.StatusUnprocessableEntity, err
	}
	if err != nil {
		return AlignResponse{}, http.StatusBadRequest, err
	}
	cells := opts.Restriction.Count(al.Shape())
	s.metrics.cells.Add(float64(cells))

	dist, err := al.Distance()
	if err != nil {
		s.metrics.duration.Observe(time.Since(start).Seconds())
		return AlignResponse{}, http.StatusUnprocessableEntity, err
	}
	resp := AlignResponse{
		Distance:    dist,
		Band:        req.Band,
		Restriction: opts.Restriction.String(),
		Cells:       cells,
	}
	if req.Path {
		p, err := al.Path()
		if err != nil {
			return AlignResponse{}, http.StatusInternalServerError, err
		}
		resp.Path = p.Pairs()
	}
	elapsed := time.Since(start)
	s.metrics.duration.Observe(elapsed.Seconds())

	s.logger.Debug("aligned",
		"n", len(req.A),
		"m", len(req.B),
		"restriction", resp.Restriction,
		"cells", cells,
		"distance", dist,
		"elapsed", elapsed,
	)

	return resp, http.StatusOK, nil
}

// info reports the service limits.
func (s *Server) info(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, InfoResponse{
		MaxLength: s.cfg.MaxLength,
		MaxCells:  s.cfg.MaxCells,
		MaxBody:   s.maxBody,
		Cache:     s.cache != nil,
		Metrics:   []string{dtw.MetricAbs, dtw.MetricSquared},
	})
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// fail counts the failure and writes the error body.
func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	outcome := outcomeInvalid
	switch {
	case status == http.StatusRequestEntityTooLarge:
		outcome = outcomeTooLarge
	case errors.Is(err, dtw.ErrCostOverflow):
		outcome = outcomeOverflow
	case status == http.StatusUnprocessableEntity:
		outcome = outcomeInfeasible
	}
	s.metrics.alignments.WithLabelValues(outcome).Inc()
	s.logger.Debug("align rejected", "status", status, "error", err)
	writeError(w, status, err)
}

// errorResponse is the body of every non-2xx JSON reply.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v before touching the status line, so a value that
// cannot be encoded becomes a 500 instead of a 200 with an empty body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
