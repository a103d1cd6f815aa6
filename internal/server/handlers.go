package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aleister1102/diffsense/internal/cache"
	"github.com/aleister1102/diffsense/internal/differ"
	"github.com/rs/zerolog/hlog"
)

// diffResponse is the body returned by the diff endpoint.
type diffResponse struct {
	Result *differ.Result `json:"result"`
	Cached bool           `json:"cached"`
}

// insightsResponse bundles a result with its aggregated insights.
type insightsResponse struct {
	Result   *differ.Result  `json:"result"`
	Insights differ.Insights `json:"insights"`
}

// handleDiff runs a synchronous comparison, memoizing results when the
// cache is enabled.
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeDiffRequest(w, r)
	if !ok {
		return
	}
	original, modified, ok := s.prepareInputs(w, r, req)
	if !ok {
		return
	}
	if err := s.resourceGuard.CheckHeadroom(); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	opts := s.engineOptions(req.Options)

	var key string
	if s.resultCache != nil {
		key = cache.Key(original, modified, opts)
		if cached := s.resultCache.Get(key); cached != nil {
			s.writeJSON(w, http.StatusOK, diffResponse{Result: cached, Cached: true})
			return
		}
	}

	start := time.Now()
	result := s.engine.Diff(original, modified, opts)
	s.recordRun(r, result, opts, time.Since(start))

	if s.resultCache != nil {
		s.resultCache.Put(key, result)
	}
	s.writeJSON(w, http.StatusOK, diffResponse{Result: result, Cached: false})
}

// handleStreamDiff emits newline-delimited JSON progress events, flushing
// after each one. The response ends with the complete event.
func (s *Server) handleStreamDiff(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeDiffRequest(w, r)
	if !ok {
		return
	}
	original, modified, ok := s.prepareInputs(w, r, req)
	if !ok {
		return
	}
	if err := s.resourceGuard.CheckHeadroom(); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	opts := s.engineOptions(req.Options)
	chunkSize := req.ChunkSize
	if chunkSize <= 0 {
		chunkSize = s.diffConfig.ChunkSize
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	encoder := json.NewEncoder(w)
	for event := range s.engine.StreamDiff(r.Context(), original, modified, opts, chunkSize) {
		if err := encoder.Encode(event); err != nil {
			hlog.FromRequest(r).Debug().Err(err).Msg("Stream consumer went away")
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// handleInsights runs a comparison and returns the aggregated summary.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeDiffRequest(w, r)
	if !ok {
		return
	}
	original, modified, ok := s.prepareInputs(w, r, req)
	if !ok {
		return
	}
	if err := s.resourceGuard.CheckHeadroom(); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	opts := s.engineOptions(req.Options)

	start := time.Now()
	result := s.engine.Diff(original, modified, opts)
	s.recordRun(r, result, opts, time.Since(start))

	s.writeJSON(w, http.StatusOK, insightsResponse{
		Result:   result,
		Insights: differ.BuildInsights(result),
	})
}

// handleHealthz reports liveness plus current resource usage.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	usage := s.resourceGuard.Usage()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"alloc_mb":     usage.AllocMB,
		"goroutines":   usage.Goroutines,
		"cache_active": s.resultCache != nil,
	})
}

// prepareInputs applies optional HTML text extraction to both sides.
func (s *Server) prepareInputs(w http.ResponseWriter, r *http.Request, req *DiffRequest) (string, string, bool) {
	if !req.HTML {
		return req.Original, req.Modified, true
	}

	original, err := s.htmlExtractor.ExtractText(req.Original)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to parse original HTML: "+err.Error())
		return "", "", false
	}
	modified, err := s.htmlExtractor.ExtractText(req.Modified)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to parse modified HTML: "+err.Error())
		return "", "", false
	}
	return original, modified, true
}

// recordRun persists a history row when the store is configured. Failures
// are logged and never surface to the caller.
func (s *Server) recordRun(r *http.Request, result *differ.Result, opts differ.Options, duration time.Duration) {
	if s.historyStore == nil {
		return
	}
	insights := differ.BuildInsights(result)
	if _, err := s.historyStore.RecordRun(result, opts, insights.Impact, duration); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to record diff run")
	}
}
