package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/subx/internal/services"
	"github.com/desertthunder/subx/internal/tasks"
)

// ViewState identifies the active view.
type ViewState int

const (
	ConfirmView ViewState = iota
	AuthView
	ProgressView
	ResultView
)

// maxNotices caps the per-channel lines kept on the replication screen.
const maxNotices = 8

var _ tea.Model = Model{}

// Model is the top-level bubbletea model for a migration session. The
// session itself runs in a separate goroutine; the model listens on the
// three channels it is constructed with and never calls the API directly.
type Model struct {
	ctx context.Context

	confirms <-chan ConfirmRequest
	progress <-chan tasks.ProgressUpdate
	done     <-chan SessionResult

	view    ViewState
	pending *ConfirmRequest
	update  tasks.ProgressUpdate
	authURL string
	subList list.Model
	listing bool
	notices []string
	result  *SessionResult

	keys   keyMap
	help   help.Model
	width  int
	height int
}

// NewModel builds the model around the channels a running session feeds.
func NewModel(ctx context.Context, confirms <-chan ConfirmRequest, progress <-chan tasks.ProgressUpdate, done <-chan SessionResult) Model {
	return Model{
		ctx:      ctx,
		confirms: confirms,
		progress: progress,
		done:     done,
		view:     ProgressView,
		keys:     newKeyMap(),
		help:     help.New(),
	}
}

// Init starts one listener command per session channel.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForConfirm(), m.waitForProgress(), m.waitForDone())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.listing {
			m.subList.SetSize(msg.Width-4, max(msg.Height-10, 5))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case confirmRequestMsg:
		req := ConfirmRequest(msg)
		m.pending = &req
		m.view = ConfirmView
		return m, nil

	case progressUpdateMsg:
		return m.handleProgress(tasks.ProgressUpdate(msg))

	case sessionDoneMsg:
		res := SessionResult(msg)
		m.result = &res
		m.view = ResultView
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.view == ConfirmView {
		return m.handleConfirmKeys(msg)
	}
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		return m.answer(true)
	case key.Matches(msg, m.keys.no):
		return m.answer(false)
	case key.Matches(msg, m.keys.quit):
		// Quitting mid-prompt declines first so the session can settle.
		if m.pending != nil {
			m.pending.Reply <- false
			m.pending = nil
		}
		return m, tea.Quit
	}

	if m.listing {
		var cmd tea.Cmd
		m.subList, cmd = m.subList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// answer resolves the pending prompt and re-arms the confirm listener.
func (m Model) answer(yes bool) (tea.Model, tea.Cmd) {
	if m.pending == nil {
		return m, nil
	}
	m.pending.Reply <- yes
	m.pending = nil
	if yes {
		m.view = AuthView
	} else {
		m.view = ProgressView
	}
	return m, m.waitForConfirm()
}

func (m Model) handleProgress(update tasks.ProgressUpdate) (tea.Model, tea.Cmd) {
	m.update = update

	switch update.Phase {
	case tasks.AuthorizeSource, tasks.AuthorizeDestination:
		if url, ok := update.Data.(string); ok {
			m.authURL = url
		}
		if m.view != ConfirmView && m.view != ResultView {
			m.view = AuthView
		}
	case tasks.FetchSubscriptions:
		if subs, ok := update.Data.([]services.Subscription); ok {
			m.setSubscriptions(subs)
		}
		if m.view != ConfirmView && m.view != ResultView {
			m.view = ProgressView
		}
	case tasks.ReplicateSubscriptions:
		if strings.HasPrefix(update.Message, "[") {
			m.notices = append(m.notices, update.Message)
			if len(m.notices) > maxNotices {
				m.notices = m.notices[len(m.notices)-maxNotices:]
			}
		}
		if m.view != ResultView {
			m.view = ProgressView
		}
	}

	return m, m.waitForProgress()
}

// setSubscriptions builds the preview list shown with the destination prompt.
func (m *Model) setSubscriptions(subs []services.Subscription) {
	items := make([]list.Item, len(subs))
	for i, sub := range subs {
		items[i] = subscriptionItem{sub: sub}
	}
	m.subList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.subList.Title = fmt.Sprintf("Collected subscriptions (%d)", len(subs))
	m.subList.SetShowHelp(false)
	if m.width > 0 {
		m.subList.SetSize(m.width-4, max(m.height-10, 5))
	}
	m.listing = true
}

// View renders the current view.
func (m Model) View() string {
	switch m.view {
	case ConfirmView:
		return m.renderConfirm()
	case AuthView:
		return m.renderAuth()
	case ProgressView:
		return m.renderProgress()
	case ResultView:
		return m.renderResult()
	}
	return ""
}

func (m Model) renderConfirm() string {
	if m.pending == nil {
		return ""
	}

	var b strings.Builder
	if m.listing {
		b.WriteString(m.subList.View())
		b.WriteString("\n\n")
	}
	b.WriteString(styles.title.Render(m.pending.Prompt))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s / %s\n\n", styles.ok.Render("(y)es"), styles.err.Render("(n)o")))
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderAuth() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Account Authorization"))
	b.WriteString("\n")
	if m.update.Message != "" {
		b.WriteString(m.update.Message)
		b.WriteString("\n")
	}
	if m.authURL != "" {
		b.WriteString(styles.help.Render("If the browser did not open, visit:"))
		b.WriteString("\n")
		b.WriteString(m.authURL)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderProgress() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Migrating Subscriptions"))
	b.WriteString("\n")
	if m.update.Message != "" && !strings.HasPrefix(m.update.Message, "[") {
		b.WriteString(m.update.Message)
		b.WriteString("\n")
	}
	for _, line := range m.notices {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderResult() string {
	if m.result == nil {
		return ""
	}

	var b strings.Builder
	if m.result.Err != nil {
		b.WriteString(styles.err.Render("✗ Migration Failed"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%v\n", m.result.Err))
	} else {
		m.renderOutcome(&b)
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderOutcome(b *strings.Builder) {
	out := m.result.Outcome
	if out == nil {
		return
	}

	switch out.Status {
	case tasks.OutcomeDeclined:
		b.WriteString(styles.warn.Render("Migration canceled."))
		b.WriteString("\n")
	case tasks.OutcomeEmptySource:
		b.WriteString(styles.err.Render("The source account has no subscriptions."))
		b.WriteString("\n")
	case tasks.OutcomeCompleted:
		b.WriteString(styles.ok.Render("✓ Migration Complete"))
		b.WriteString("\n")
		if rep := out.Replication; rep != nil {
			b.WriteString(fmt.Sprintf("Subscribed: %d\n", rep.Succeeded))
			if rep.Failed > 0 {
				b.WriteString(styles.err.Render(fmt.Sprintf("Failed: %d", rep.Failed)))
				b.WriteString("\n")
				for _, item := range rep.Items {
					if item.Err != nil {
						b.WriteString(fmt.Sprintf("  • %s: %v\n", item.Subscription.Title, item.Err))
					}
				}
			}
		}
	}
}

func (m Model) waitForConfirm() tea.Cmd {
	return func() tea.Msg {
		select {
		case req, ok := <-m.confirms:
			if !ok {
				return nil
			}
			return confirmRequestMsg(req)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		select {
		case update, ok := <-m.progress:
			if !ok {
				return nil
			}
			return progressUpdateMsg(update)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) waitForDone() tea.Cmd {
	return func() tea.Msg {
		select {
		case res, ok := <-m.done:
			if !ok {
				return nil
			}
			return sessionDoneMsg(res)
		case <-m.ctx.Done():
			return nil
		}
	}
}
