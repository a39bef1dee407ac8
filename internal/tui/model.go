package tui

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"ticketdesk-service/internal/client"
	"ticketdesk-service/internal/domain/entity"
	"ticketdesk-service/pkg/utils"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focusRegion identifies which pane has keyboard focus
type focusRegion int

const (
	// focusAuth means the password prompt is active (no cached token).
	focusAuth focusRegion = iota
	// focusList means navigation keys drive the ticket table.
	focusList
	// focusFilter means keystrokes go to the filter input.
	focusFilter
	// focusForm means the add-ticket form is open.
	focusForm
)

// Model is the top-level bubbletea model for the ticket desk. One tab
// per configured exhibition; every mutation refetches the affected
// exhibition's full list rather than patching local state.
type Model struct {
	api   *client.Client
	store *client.TokenStore
	keys  KeyMap
	theme Theme

	exhibitions []string
	activeTab   int

	// tickets holds each exhibition's sorted list as last fetched.
	// marked holds the multi-select set per exhibition, keyed by
	// ticket number, feeding the bulk delete endpoint.
	tickets map[string][]*entity.Ticket
	marked  map[string]map[string]bool

	table  table.Model
	filter FilterModel
	form   *addForm

	passwordInput textinput.Model
	focus         focusRegion

	notice    string
	noticeErr bool

	width  int
	height int
}

// New creates the desk model. When the client carries no cached token
// the model starts at the password prompt.
func New(api *client.Client, store *client.TokenStore, exhibitions []string) *Model {
	columns := []table.Column{
		{Title: " ", Width: 2},
		{Title: "Number", Width: 8},
		{Title: "Client", Width: 16},
		{Title: "Operator", Width: 12},
		{Title: "Type", Width: 10},
		{Title: "Date", Width: 10},
		{Title: "Notes", Width: 18},
		{Title: "Verified", Width: 8},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.Width = 24
	password.Focus()

	m := &Model{
		api:           api,
		store:         store,
		keys:          DefaultKeyMap(),
		theme:         DefaultTheme(),
		exhibitions:   exhibitions,
		tickets:       make(map[string][]*entity.Ticket),
		marked:        make(map[string]map[string]bool),
		table:         t,
		passwordInput: password,
		focus:         focusList,
	}
	if api.Token() == "" {
		m.focus = focusAuth
	}
	return m
}

// Init fetches every exhibition's list when a token is already cached
func (m *Model) Init() tea.Cmd {
	if m.focus == focusAuth {
		return textinput.Blink
	}
	return m.fetchAll()
}

func (m *Model) currentExhibition() string {
	return m.exhibitions[m.activeTab]
}

// visibleTickets returns the active tab's list after filtering. The
// stored list is already sorted, so row order follows ticket number.
func (m *Model) visibleTickets() []*entity.Ticket {
	return m.filter.Apply(m.tickets[m.currentExhibition()])
}

// selectedTicket maps the table cursor back to the underlying record
func (m *Model) selectedTicket() *entity.Ticket {
	visible := m.visibleTickets()
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(visible) {
		return nil
	}
	return visible[cursor]
}

func (m *Model) markedNumbers(exhibition string) []string {
	var numbers []string
	for number := range m.marked[exhibition] {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)
	return numbers
}

// rebuildRows re-renders the table from the active tab's filtered list
func (m *Model) rebuildRows() {
	exhibition := m.currentExhibition()
	visible := m.visibleTickets()
	rows := make([]table.Row, 0, len(visible))
	for _, ticket := range visible {
		mark := " "
		if m.marked[exhibition][ticket.TicketNumber] {
			mark = "*"
		}
		verified := "no"
		if ticket.Verified {
			verified = "yes"
		}
		date := ""
		if !ticket.Date.IsZero() {
			date = ticket.Date.Format("2006-01-02")
		}
		rows = append(rows, table.Row{
			mark,
			utils.PadTicketNumber(ticket.TicketNumber),
			ticket.Client,
			ticket.Operator,
			ticket.Type,
			date,
			ticket.Notes,
			verified,
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

// sortTickets orders by ticket number ascending, numerically where both
// numbers parse, lexicographically otherwise
func sortTickets(tickets []*entity.Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		a, errA := strconv.Atoi(tickets[i].TicketNumber)
		b, errB := strconv.Atoi(tickets[j].TicketNumber)
		if errA == nil && errB == nil {
			return a < b
		}
		return tickets[i].TicketNumber < tickets[j].TicketNumber
	})
}

// Update is the bubbletea message loop
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		height := msg.Height - 9
		if height < 5 {
			height = 5
		}
		m.table.SetHeight(height)
		return m, nil

	case loginDoneMsg:
		if msg.err != nil {
			m.setNotice("Login failed", true)
			return m, nil
		}
		if err := m.store.Save(msg.token); err != nil {
			m.setNotice(fmt.Sprintf("Logged in, but could not cache the token: %v", err), true)
		} else {
			m.setNotice("Logged in", false)
		}
		m.focus = focusList
		m.passwordInput.SetValue("")
		return m, m.fetchAll()

	case ticketsLoadedMsg:
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("Failed to fetch %s tickets", msg.exhibition), true)
			return m, nil
		}
		sortTickets(msg.tickets)
		m.tickets[msg.exhibition] = msg.tickets
		if msg.exhibition == m.currentExhibition() {
			m.rebuildRows()
		}
		return m, nil

	case mutationDoneMsg:
		m.noticeForMutation(msg)
		if msg.action == "delete" && msg.batch && msg.err == nil {
			delete(m.marked, msg.exhibition)
		}
		// Refetch even after failure: a batch conflict leaves a
		// persisted prefix behind.
		return m, m.fetchTickets(msg.exhibition)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusAuth:
		return m.handleAuthKey(msg)
	case focusFilter:
		return m.handleFilterKey(msg)
	case focusForm:
		return m.handleFormKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	// Only esc and ctrl+c quit here: the password may contain 'q'.
	case msg.String() == "ctrl+c", key.Matches(msg, m.keys.Cancel):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		password := m.passwordInput.Value()
		if password == "" {
			return m, nil
		}
		return m, m.login(password)
	}
	var cmd tea.Cmd
	m.passwordInput, cmd = m.passwordInput.Update(msg)
	return m, cmd
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filter.Clear()
		m.focus = focusList
		m.rebuildRows()
		return m, nil
	case tea.KeyEnter:
		m.filter.Active = false
		m.focus = focusList
		return m, nil
	case tea.KeyBackspace:
		m.filter.HandleBackspace()
		m.rebuildRows()
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.filter.HandleRune(r)
		}
		m.rebuildRows()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.form = nil
		m.focus = focusList
		return m, nil
	case msg.String() == "ctrl+s":
		m.form.toggleSerial()
		return m, nil
	case msg.Type == tea.KeyTab:
		m.form.nextField(false)
		return m, nil
	case msg.Type == tea.KeyShiftTab:
		m.form.nextField(true)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		documents, err := m.form.submit()
		if err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}
		exhibition := m.currentExhibition()
		m.form = nil
		m.focus = focusList
		return m, m.createTickets(exhibition, documents)
	}
	return m, m.form.Update(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		m.activeTab = (m.activeTab + 1) % len(m.exhibitions)
		m.table.SetCursor(0)
		m.rebuildRows()
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.activeTab = (m.activeTab + len(m.exhibitions) - 1) % len(m.exhibitions)
		m.table.SetCursor(0)
		m.rebuildRows()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filter.Active = true
		m.focus = focusFilter
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.form = newAddForm()
		m.focus = focusForm
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchTickets(m.currentExhibition())

	case key.Matches(msg, m.keys.Verify):
		ticket := m.selectedTicket()
		if ticket == nil {
			return m, nil
		}
		// Verification is one-way; there is no un-verify.
		if ticket.Verified {
			m.setNotice("Ticket is already verified", true)
			return m, nil
		}
		return m, m.verifyTicket(m.currentExhibition(), ticket.TicketNumber)

	case key.Matches(msg, m.keys.Mark):
		ticket := m.selectedTicket()
		if ticket == nil {
			return m, nil
		}
		exhibition := m.currentExhibition()
		if m.marked[exhibition] == nil {
			m.marked[exhibition] = make(map[string]bool)
		}
		m.marked[exhibition][ticket.TicketNumber] = !m.marked[exhibition][ticket.TicketNumber]
		m.rebuildRows()
		return m, nil

	case key.Matches(msg, m.keys.DeleteMark):
		exhibition := m.currentExhibition()
		numbers := m.markedNumbers(exhibition)
		if len(numbers) == 0 {
			m.setNotice("No tickets marked", true)
			return m, nil
		}
		return m, m.deleteTickets(exhibition, numbers)

	case key.Matches(msg, m.keys.Delete):
		ticket := m.selectedTicket()
		if ticket == nil {
			return m, nil
		}
		return m, m.deleteTicket(m.currentExhibition(), ticket.TicketNumber)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

// noticeForMutation translates a mutation outcome into the status-bar
// message, distinguishing the single-insert conflict (nothing stored)
// from the batch conflict (prefix stored, reconciliation needed).
func (m *Model) noticeForMutation(msg mutationDoneMsg) {
	if msg.err == nil {
		switch msg.action {
		case "create":
			m.setNotice(fmt.Sprintf("Added %d ticket(s)", msg.count), false)
		case "verify":
			m.setNotice("Ticket verified", false)
		case "delete":
			m.setNotice(fmt.Sprintf("Deleted %d ticket(s)", msg.count), false)
		}
		return
	}

	var batchConflict *client.BatchConflictError
	switch {
	case errors.As(msg.err, &batchConflict):
		m.setNotice(fmt.Sprintf(
			"Some ticket numbers already used: %d inserted before the conflict, check the list and re-add the rest",
			batchConflict.Inserted), true)
	case errors.Is(msg.err, client.ErrConflict):
		m.setNotice("Ticket number already used, nothing was added", true)
	case errors.Is(msg.err, client.ErrTicketNotFound):
		m.setNotice("No ticket with that number", true)
	case errors.Is(msg.err, client.ErrPermissionDenied):
		m.setNotice("Session rejected, restart the desk and log in again", true)
	default:
		m.setNotice("Request failed", true)
	}
}

// View renders the desk
func (m *Model) View() string {
	if m.focus == focusAuth {
		return m.authView()
	}

	var b strings.Builder
	b.WriteString(m.tabBar())
	b.WriteString("\n")

	if filterBar := m.filter.View(m.theme); filterBar != "" {
		b.WriteString(filterBar)
		b.WriteString("\n")
	}

	if m.focus == focusForm && m.form != nil {
		b.WriteString(m.form.View(m.theme))
	} else {
		b.WriteString(m.theme.TableBorder.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.notice != "" {
		style := m.theme.Notice
		if m.noticeErr {
			style = m.theme.ErrorNotice
		}
		b.WriteString(style.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Help.Render(
		"a: add · v: verify · d: delete · space: mark · D: delete marked · /: filter · r: refresh · tab: exhibition · q: quit"))
	return b.String()
}

func (m *Model) tabBar() string {
	tabs := make([]string, 0, len(m.exhibitions))
	for i, exhibition := range m.exhibitions {
		style := m.theme.InactiveTab
		if i == m.activeTab {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(exhibition))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m *Model) authView() string {
	var b strings.Builder
	b.WriteString(m.theme.FormTitle.Render("Ticket desk login"))
	b.WriteString("\n")
	b.WriteString(m.theme.FormLabel.Render("Password"))
	b.WriteString(m.passwordInput.View())
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(m.theme.ErrorNotice.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Help.Render("enter: log in · esc: quit"))
	return b.String()
}
