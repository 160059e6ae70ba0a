// Package tui contains the Bubble Tea presentation layer: a progress bar
// for batched KEGG enrichment. Presentation only; dropping every update
// on the floor would not change annotation results.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ChunkUpdate is one chunk-completion report from the enrichment engine.
type ChunkUpdate struct {
	Completed int
	Total     int
	Elapsed   time.Duration
}

// Default dimensions for the progress view.
const (
	progressDefaultWidth = 50
	progressPadding      = 2
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// chunkMsg wraps a ChunkUpdate received from the engine.
type chunkMsg ChunkUpdate

// updatesClosedMsg signals that the engine closed the update channel.
type updatesClosedMsg struct{}

// EnrichModel is the Bubble Tea model rendering enrichment progress from
// a channel of chunk updates.
type EnrichModel struct {
	bar     progress.Model
	updates <-chan ChunkUpdate
	current ChunkUpdate
	done    bool
	width   int
}

// NewEnrichModel creates a progress model consuming updates until the
// channel is closed.
func NewEnrichModel(updates <-chan ChunkUpdate) *EnrichModel {
	return &EnrichModel{
		bar:     progress.New(progress.WithDefaultGradient()),
		updates: updates,
		width:   progressDefaultWidth,
	}
}

// Init starts listening for chunk updates.
func (m *EnrichModel) Init() tea.Cmd {
	return m.waitForUpdate()
}

// Update handles chunk updates, bar animation frames, resizes, and quit
// keys.
func (m *EnrichModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chunkMsg:
		m.current = ChunkUpdate(msg)
		var percent float64
		if m.current.Total > 0 {
			percent = float64(m.current.Completed) / float64(m.current.Total)
		}
		return m, tea.Batch(m.bar.SetPercent(percent), m.waitForUpdate())

	case updatesClosedMsg:
		m.done = true
		return m, tea.Quit

	case progress.FrameMsg:
		barModel, cmd := m.bar.Update(msg)
		if b, ok := barModel.(progress.Model); ok {
			m.bar = b
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width - progressPadding
		if m.width > progressDefaultWidth {
			m.width = progressDefaultWidth
		}
		m.bar.Width = m.width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the progress bar with chunk counts and elapsed time.
func (m *EnrichModel) View() string {
	if m.done {
		return ""
	}
	status := fmt.Sprintf("chunk %d/%d • %s elapsed",
		m.current.Completed, m.current.Total, m.current.Elapsed.Round(time.Second))
	return titleStyle.Render("Enriching pathways from KEGG") + "\n" +
		m.bar.View() + "\n" +
		statusStyle.Render(status) + "\n"
}

// waitForUpdate blocks on the update channel, translating closure into
// updatesClosedMsg.
func (m *EnrichModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updates
		if !ok {
			return updatesClosedMsg{}
		}
		return chunkMsg(update)
	}
}

// RunEnrichProgress runs the progress program until the update channel
// closes. It blocks, so callers run it on its own goroutine alongside
// the engine.
func RunEnrichProgress(updates <-chan ChunkUpdate) error {
	_, err := tea.NewProgram(NewEnrichModel(updates)).Run()
	return err
}
