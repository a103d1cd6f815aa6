package differ

import (
	"context"
)

// DefaultChunkSize is the per-chunk character count used by the streaming
// coordinator when the caller does not choose one.
const DefaultChunkSize = 1000

// chunkThresholdFactor: inputs whose combined length exceeds this many
// chunk sizes are processed chunk by chunk.
const chunkThresholdFactor = 10

// ProgressEvent is one element of the finite event sequence produced by
// StreamDiff. The sequence is terminated by the event with Complete set.
type ProgressEvent struct {
	Progress float64 `json:"progress"`
	Partial  *Result `json:"partial_result,omitempty"`
	Complete bool    `json:"complete"`
}

// StreamDiff runs the comparison as a cooperative producer that yields
// progress events. Large inputs are split into fixed-size, index-paired
// chunks and diffed chunk by chunk; the accumulated result grows across
// chunk iterations until the final event carries it whole. Inputs below
// the chunking threshold still produce two events (50% then 100%) carrying
// the identical complete result, so consumers see a uniform protocol.
//
// Cancellation is cooperative: the producer stops as soon as ctx is done.
// The channel is unbuffered, so a consumer that stops receiving must
// cancel ctx to release the producer goroutine; abandoning the channel
// alone leaves it blocked on the next send. Chunk-local alignment means a
// change spanning a chunk boundary
// may surface as two adjacent changes; that is an accepted approximation
// for very large inputs.
func (e *Engine) StreamDiff(ctx context.Context, original, modified string, opts Options, chunkSize int) <-chan ProgressEvent {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	events := make(chan ProgressEvent)
	go func() {
		defer close(events)

		if len(original)+len(modified) <= chunkThresholdFactor*chunkSize {
			result := e.Diff(original, modified, opts)
			emit(ctx, events, ProgressEvent{Progress: 50, Partial: result})
			emit(ctx, events, ProgressEvent{Progress: 100, Partial: result, Complete: true})
			return
		}

		originalChunks := splitChunks(original, chunkSize)
		modifiedChunks := splitChunks(modified, chunkSize)
		total := max(len(originalChunks), len(modifiedChunks))

		accumulated := &Result{}
		for idx := 0; idx < total; idx++ {
			chunkResult := e.Diff(chunkAt(originalChunks, idx), chunkAt(modifiedChunks, idx), opts)
			accumulated.Changes = append(accumulated.Changes, chunkResult.Changes...)
			accumulated.Stats.add(chunkResult.Stats)

			progress := float64(idx+1) / float64(total) * 100
			if !emit(ctx, events, ProgressEvent{Progress: progress, Partial: accumulated.Clone()}) {
				return
			}
		}

		emit(ctx, events, ProgressEvent{Progress: 100, Partial: accumulated, Complete: true})
	}()

	return events
}

// emit delivers an event unless the context ends first.
func emit(ctx context.Context, events chan<- ProgressEvent, event ProgressEvent) bool {
	select {
	case events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

// splitChunks cuts text into fixed-size rune chunks; the final chunk may be
// shorter.
func splitChunks(text string, chunkSize int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	chunks := make([]string, 0, (len(runes)+chunkSize-1)/chunkSize)
	for start := 0; start < len(runes); start += chunkSize {
		end := min(start+chunkSize, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// chunkAt pairs chunks by index; a side past its own chunk count
// contributes an empty string.
func chunkAt(chunks []string, idx int) string {
	if idx >= len(chunks) {
		return ""
	}
	return chunks[idx]
}
