package batch

import (
	"context"
	"errors"
	"fmt"
)

// Chunk size bounds.
const (
	// MinChunkSize is the minimum allowed chunk size.
	MinChunkSize = 1

	// MaxChunkSize is the maximum allowed chunk size.
	MaxChunkSize = 1000
)

// Common chunking errors.
var (
	ErrInvalidChunkSize = errors.New("chunk size must be between 1 and 1000")
	ErrNilCallback      = errors.New("chunk callback cannot be nil")
	ErrEmptyItems       = errors.New("items slice cannot be empty")
)

// Bounds is a chunk's [start, end) index range into the original
// sequence.
type Bounds struct {
	Start int
	End   int
}

// ChunkCallback processes a single chunk. The items slice aliases the
// original sequence, so element writes are visible to the caller; bounds
// give the chunk's absolute position.
type ChunkCallback[T any] func(ctx context.Context, items []T, bounds Bounds, chunkIndex int) error

// ProgressCallback is invoked after each chunk completes.
type ProgressCallback func(progress *Progress)

// Chunker splits a sequence into consecutive fixed-size chunks and
// processes them in order, one at a time. The last chunk may be smaller
// than the configured size; boundaries never split a row.
type Chunker[T any] struct {
	chunkSize  int
	onProgress ProgressCallback
}

// NewChunker creates a chunker with the given chunk size.
func NewChunker[T any](chunkSize int) (*Chunker[T], error) {
	if chunkSize < MinChunkSize || chunkSize > MaxChunkSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, chunkSize)
	}
	return &Chunker[T]{chunkSize: chunkSize}, nil
}

// WithProgressCallback sets a callback for per-chunk progress updates.
func (c *Chunker[T]) WithProgressCallback(callback ProgressCallback) *Chunker[T] {
	c.onProgress = callback
	return c
}

// Process runs callback over each chunk in ascending order, stopping on
// the first error. Cancellation is checked before every chunk.
func (c *Chunker[T]) Process(ctx context.Context, items []T, callback ChunkCallback[T]) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	if callback == nil {
		return ErrNilCallback
	}

	totalChunks := c.NumChunks(len(items))
	progress := NewProgress(len(items), totalChunks, c.chunkSize)

	for chunkIndex := range totalChunks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		bounds := c.boundsAt(chunkIndex, len(items))
		chunk := items[bounds.Start:bounds.End]

		if err := callback(ctx, chunk, bounds, chunkIndex); err != nil {
			return fmt.Errorf("chunk %d failed: %w", chunkIndex, err)
		}

		progress.AddProcessed(len(chunk))
		if c.onProgress != nil {
			c.onProgress(progress)
		}
	}

	return nil
}

// ChunkSize returns the configured chunk size.
func (c *Chunker[T]) ChunkSize() int {
	return c.chunkSize
}

// NumChunks returns ceil(totalItems / chunkSize).
func (c *Chunker[T]) NumChunks(totalItems int) int {
	chunks := totalItems / c.chunkSize
	if totalItems%c.chunkSize > 0 {
		chunks++
	}
	return chunks
}

// CalculateBounds returns every chunk's [start, end) range for the given
// item count. Every index appears in exactly one chunk.
func (c *Chunker[T]) CalculateBounds(totalItems int) []Bounds {
	totalChunks := c.NumChunks(totalItems)
	bounds := make([]Bounds, totalChunks)
	for i := range totalChunks {
		bounds[i] = c.boundsAt(i, totalItems)
	}
	return bounds
}

func (c *Chunker[T]) boundsAt(chunkIndex, totalItems int) Bounds {
	start := chunkIndex * c.chunkSize
	end := start + c.chunkSize
	if end > totalItems {
		end = totalItems
	}
	return Bounds{Start: start, End: end}
}
