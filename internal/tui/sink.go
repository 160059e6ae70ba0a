package tui

import "time"

// ChannelSink adapts the engine's progress reports onto the update
// channel the Bubble Tea model reads. Reports never block: when the UI
// falls behind, stale updates are dropped in favor of the newest one.
type ChannelSink struct {
	ch chan ChunkUpdate
}

// NewChannelSink creates a sink with a small buffer.
func NewChannelSink() *ChannelSink {
	return &ChannelSink{ch: make(chan ChunkUpdate, 8)}
}

// Updates returns the channel the progress model consumes.
func (s *ChannelSink) Updates() <-chan ChunkUpdate {
	return s.ch
}

// Report implements the engine's progress sink.
func (s *ChannelSink) Report(completed, total int, elapsed time.Duration) {
	update := ChunkUpdate{Completed: completed, Total: total, Elapsed: elapsed}
	select {
	case s.ch <- update:
	default:
		// Drop the oldest pending update so the newest wins.
		select {
		case <-s.ch:
		default:
		}
		select {
		case s.ch <- update:
		default:
		}
	}
}

// Close signals the UI that no further updates will arrive.
func (s *ChannelSink) Close() {
	close(s.ch)
}
