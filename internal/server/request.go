package server

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/aleister1102/diffsense/internal/common/errorwrapper"
	"github.com/aleister1102/diffsense/internal/differ"
)

// DiffOptionsPayload is the options object accepted on the wire. Fields are
// pointers where absence must fall back to configured defaults.
type DiffOptionsPayload struct {
	Granularity         string   `json:"granularity,omitempty" validate:"omitempty,granularity"`
	IgnoreWhitespace    *bool    `json:"ignore_whitespace,omitempty"`
	IgnoreCase          *bool    `json:"ignore_case,omitempty"`
	SemanticAnalysis    *bool    `json:"semantic_analysis,omitempty"`
	SimilarityThreshold *float64 `json:"similarity_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// DiffRequest is the body of the diff endpoints. HTML selects visible-text
// extraction before comparison; ChunkSize only affects the stream endpoint.
type DiffRequest struct {
	Original  string             `json:"original"`
	Modified  string             `json:"modified"`
	Options   DiffOptionsPayload `json:"options"`
	HTML      bool               `json:"html,omitempty"`
	ChunkSize int                `json:"chunk_size,omitempty" validate:"gte=0"`
}

// decodeDiffRequest reads, decodes and validates a request body. Malformed
// granularities, out-of-domain thresholds and oversized inputs are all
// rejected here; the engine never sees them.
func (s *Server) decodeDiffRequest(w http.ResponseWriter, r *http.Request) (*DiffRequest, bool) {
	maxBytes := int64(s.diffConfig.MaxInputBytes)
	if maxBytes > 0 {
		// Two texts plus JSON framing.
		r.Body = http.MaxBytesReader(w, r.Body, 2*maxBytes+4096)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, errorwrapper.ErrTooLarge.Error())
		return nil, false
	}

	var req DiffRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed JSON body")
		return nil, false
	}

	if maxBytes > 0 && (int64(len(req.Original)) > maxBytes || int64(len(req.Modified)) > maxBytes) {
		s.writeError(w, http.StatusRequestEntityTooLarge, errorwrapper.ErrTooLarge.Error())
		return nil, false
	}

	if err := s.validator.Struct(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid options: "+err.Error())
		return nil, false
	}

	return &req, true
}

// engineOptions merges the request payload over the configured defaults.
func (s *Server) engineOptions(payload DiffOptionsPayload) differ.Options {
	opts := s.defaultOptions
	if payload.Granularity != "" {
		if g, err := differ.ParseGranularity(strings.ToLower(payload.Granularity)); err == nil {
			opts.Granularity = g
		}
	}
	if payload.IgnoreWhitespace != nil {
		opts.IgnoreWhitespace = *payload.IgnoreWhitespace
	}
	if payload.IgnoreCase != nil {
		opts.IgnoreCase = *payload.IgnoreCase
	}
	if payload.SemanticAnalysis != nil {
		opts.SemanticAnalysis = *payload.SemanticAnalysis
	}
	if payload.SimilarityThreshold != nil {
		opts.SimilarityThreshold = *payload.SimilarityThreshold
	}
	return opts
}

// callerIdentity derives the rate-limiting identity of a request.
func callerIdentity(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
