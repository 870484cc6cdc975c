package api

import (
	"encoding/json"
	"net/http"

	"github.com/promptdeck/flownote/pkg/ascii"
	"github.com/promptdeck/flownote/pkg/cache"
	"github.com/promptdeck/flownote/pkg/errors"
	"github.com/promptdeck/flownote/pkg/flow"
	"github.com/promptdeck/flownote/pkg/layout"
	"github.com/promptdeck/flownote/pkg/pipeline"
)

// detectRequest is the body of POST /v1/detect.
type detectRequest struct {
	Text string `json:"text"`
}

// detectResponse reports whether a diagram block was found. A miss is a
// normal 200 response with found=false, not an error.
type detectResponse struct {
	Found      bool    `json:"found"`
	Confidence float64 `json:"confidence,omitempty"`
	StartLine  int     `json:"start_line,omitempty"`
	EndLine    int     `json:"end_line,omitempty"`
	RawBlock   string  `json:"raw_block,omitempty"`
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		respondError(w, errors.New(errors.ErrCodeInvalidInput, "text is required"))
		return
	}

	det := pipeline.Detect(r.Context(), req.Text)
	if det == nil {
		respondJSON(w, http.StatusOK, detectResponse{Found: false})
		return
	}
	respondJSON(w, http.StatusOK, detectResponse{
		Found:      true,
		Confidence: det.Confidence,
		StartLine:  det.StartLine,
		EndLine:    det.EndLine,
		RawBlock:   det.RawBlock,
	})
}

// parseRequest is the body of POST /v1/parse.
type parseRequest struct {
	Text         string `json:"text"`
	RowTolerance int    `json:"row_tolerance,omitempty"`
	MaxLabelLen  int    `json:"max_label_len,omitempty"`
}

// parseResponse carries the parsed graph and its content hash.
type parseResponse struct {
	Flow       flow.Data `json:"flow"`
	FlowHash   string    `json:"flow_hash"`
	Confidence float64   `json:"confidence"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		respondError(w, errors.New(errors.ErrCodeInvalidInput, "text is required"))
		return
	}

	opts := pipeline.Options{
		Text:         req.Text,
		RowTolerance: req.RowTolerance,
		MaxLabelLen:  req.MaxLabelLen,
		Logger:       s.logger,
	}
	d, det, err := pipeline.Parse(r.Context(), req.Text, opts)
	if err != nil {
		respondError(w, err)
		return
	}

	raw, err := flow.MarshalData(d)
	if err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "serialize flow"))
		return
	}

	respondJSON(w, http.StatusOK, parseResponse{
		Flow:       d,
		FlowHash:   cache.Hash(raw),
		Confidence: det.Confidence,
	})
}

// generateRequest is the body of POST /v1/generate.
type generateRequest struct {
	Flow flow.Data `json:"flow"`
}

// generateResponse carries the regenerated diagram text.
type generateResponse struct {
	ASCII string `json:"ascii"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := flow.Validate(req.Flow); err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeInvalidFlow, err, "validate flow"))
		return
	}

	respondJSON(w, http.StatusOK, generateResponse{ASCII: ascii.Generate(req.Flow)})
}

// layoutRequest is the body of POST /v1/layout.
type layoutRequest struct {
	Flow      flow.Data `json:"flow"`
	ColumnGap float64   `json:"column_gap,omitempty"`
	RowGap    float64   `json:"row_gap,omitempty"`
	Padding   float64   `json:"padding,omitempty"`
}

// layoutResponse carries the graph with recomputed positions.
type layoutResponse struct {
	Flow flow.Data `json:"flow"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := flow.Validate(req.Flow); err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeInvalidFlow, err, "validate flow"))
		return
	}

	params := layout.DefaultParams()
	if req.ColumnGap > 0 {
		params.ColumnGap = req.ColumnGap
	}
	if req.RowGap > 0 {
		params.RowGap = req.RowGap
	}
	if req.Padding > 0 {
		params.Padding = req.Padding
	}

	out := req.Flow.Clone()
	out.Nodes = layout.AutoWith(out.Nodes, out.Edges, params)
	respondJSON(w, http.StatusOK, layoutResponse{Flow: out})
}

// renderResponse carries the full pipeline result. Artifact bytes are
// base64-encoded by encoding/json.
type renderResponse struct {
	Flow      flow.Data          `json:"flow"`
	FlowHash  string             `json:"flow_hash"`
	Artifacts map[string][]byte  `json:"artifacts"`
	Stats     pipeline.Stats     `json:"stats"`
	CacheInfo pipeline.CacheInfo `json:"cache_info"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if !decodeBody(w, r, &opts) {
		return
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, renderResponse{
		Flow:      result.Flow,
		FlowHash:  result.FlowHash,
		Artifacts: result.Artifacts,
		Stats:     result.Stats,
		CacheInfo: result.CacheInfo,
	})
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// decodeBody decodes a JSON request body, writing a 400 response and
// returning false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return false
	}
	return true
}

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondError maps structured error codes to HTTP statuses and writes the
// uniform error body.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFlow, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case errors.ErrCodeNoDiagram:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	}

	var body errorResponse
	body.Error.Code = string(errors.GetCode(err))
	if body.Error.Code == "" {
		body.Error.Code = string(errors.ErrCodeInternal)
	}
	body.Error.Message = errors.UserMessage(err)
	respondJSON(w, status, body)
}
