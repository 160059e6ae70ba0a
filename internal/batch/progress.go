package batch

import (
	"sync"
	"time"
)

const percentMultiplier = 100

// Progress tracks chunk processing for UI updates and logging. Methods
// are safe for concurrent use so a progress sink may read from another
// goroutine while processing continues.
type Progress struct {
	// TotalItems is the total number of rows to process.
	TotalItems int

	// ProcessedItems is the number of rows processed so far.
	ProcessedItems int

	// TotalChunks is the total number of chunks.
	TotalChunks int

	// ProcessedChunks is the number of chunks completed so far.
	ProcessedChunks int

	// ChunkSize is the configured chunk size.
	ChunkSize int

	// StartTime is when processing started.
	StartTime time.Time

	// LastUpdateTime is when progress was last updated.
	LastUpdateTime time.Time

	mu sync.RWMutex
}

// NewProgress creates a progress tracker.
func NewProgress(totalItems, totalChunks, chunkSize int) *Progress {
	now := time.Now()
	return &Progress{
		TotalItems:     totalItems,
		TotalChunks:    totalChunks,
		ChunkSize:      chunkSize,
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// AddProcessed records one completed chunk of itemsProcessed rows.
func (p *Progress) AddProcessed(itemsProcessed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ProcessedItems += itemsProcessed
	p.ProcessedChunks++
	p.LastUpdateTime = time.Now()
}

// PercentComplete returns the completion percentage (0-100).
func (p *Progress) PercentComplete() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.percentCompleteUnsafe()
}

// IsComplete reports whether all rows have been processed.
func (p *Progress) IsComplete() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ProcessedItems >= p.TotalItems
}

// ElapsedTime returns wall-clock time since processing started.
func (p *Progress) ElapsedTime() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return time.Since(p.StartTime)
}

// EstimatedTimeRemaining extrapolates remaining time from the current
// rate. Returns 0 before any rows have been processed.
func (p *Progress) EstimatedTimeRemaining() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.ProcessedItems == 0 {
		return 0
	}

	elapsed := time.Since(p.StartTime)
	avgTimePerItem := elapsed / time.Duration(p.ProcessedItems)
	remainingItems := p.TotalItems - p.ProcessedItems

	return avgTimePerItem * time.Duration(remainingItems)
}

// Snapshot returns an immutable copy of the current progress state.
func (p *Progress) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return Snapshot{
		TotalItems:      p.TotalItems,
		ProcessedItems:  p.ProcessedItems,
		TotalChunks:     p.TotalChunks,
		ProcessedChunks: p.ProcessedChunks,
		ChunkSize:       p.ChunkSize,
		StartTime:       p.StartTime,
		LastUpdateTime:  p.LastUpdateTime,
		PercentComplete: p.percentCompleteUnsafe(),
		ElapsedTime:     time.Since(p.StartTime),
	}
}

// Snapshot is an immutable view of progress state.
type Snapshot struct {
	TotalItems      int
	ProcessedItems  int
	TotalChunks     int
	ProcessedChunks int
	ChunkSize       int
	StartTime       time.Time
	LastUpdateTime  time.Time
	PercentComplete float64
	ElapsedTime     time.Duration
}

// percentCompleteUnsafe calculates percent complete without locking.
// Callers must hold the lock.
func (p *Progress) percentCompleteUnsafe() float64 {
	if p.TotalItems == 0 {
		return 0
	}
	return (float64(p.ProcessedItems) / float64(p.TotalItems)) * percentMultiplier
}
