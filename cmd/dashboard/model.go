package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const pollInterval = 2 * time.Second

// diagnosticsPayload mirrors the handler's GET /api/v1/diagnostics body.
type diagnosticsPayload struct {
	Data struct {
		QueueLength  int            `json:"queue_length"`
		WorkerCount  int            `json:"worker_count"`
		StatusCounts map[string]int `json:"status_counts"`
	} `json:"data"`
}

type diagnosticsMsg diagnosticsPayload

type errMsg struct{ err error }

type tickMsg time.Time

// Model polls the diagnostics endpoint on a fixed interval and renders the
// queue depth, worker count, and per-status order counts it returns.
type Model struct {
	baseURL    string
	httpClient *http.Client

	queueLength  int
	workerCount  int
	statusCounts map[string]int
	lastUpdated  time.Time
	lastErr      error

	width  int
	height int
}

func Initialize(baseURL string) Model {
	return Model{
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		statusCounts: map[string]int{},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchDiagnostics(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchDiagnostics() tea.Cmd {
	return func() tea.Msg {
		resp, err := m.httpClient.Get(m.baseURL + "/api/v1/diagnostics")
		if err != nil {
			return errMsg{err}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("diagnostics: unexpected status %d", resp.StatusCode)}
		}

		var payload diagnosticsPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return errMsg{fmt.Errorf("diagnostics: decode response: %w", err)}
		}
		return diagnosticsMsg(payload)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(m.fetchDiagnostics(), tickCmd())

	case diagnosticsMsg:
		m.queueLength = msg.Data.QueueLength
		m.workerCount = msg.Data.WorkerCount
		m.statusCounts = msg.Data.StatusCounts
		m.lastUpdated = time.Now()
		m.lastErr = nil

	case errMsg:
		m.lastErr = msg.err
	}

	return m, nil
}

func (m Model) sortedStatuses() []string {
	statuses := make([]string, 0, len(m.statusCounts))
	for status := range m.statusCounts {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	return statuses
}
