// Package tui implements the contacts admin dashboard as a Bubble Tea program.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/baharkarakas/contact-manager/internal/dashboard"
	"github.com/baharkarakas/contact-manager/internal/models"
)

// API is the subset of the contacts client the dashboard drives.
type API interface {
	List(ctx context.Context) ([]models.Contact, error)
	Update(ctx context.Context, id string, p models.ContactPatch) (models.Contact, error)
	Delete(ctx context.Context, id string) error
}

const requestTimeout = 15 * time.Second

type mode int

const (
	modeList mode = iota
	modeSearch
	modeConfirmDelete
	modeEdit
)

type flashKind int

const (
	flashInfo flashKind = iota
	flashOK
	flashErr
)

// contactsLoadedMsg carries a fresh list from the API.
type contactsLoadedMsg struct {
	contacts []models.Contact
}

// contactUpdatedMsg carries the stored state after a successful edit.
type contactUpdatedMsg struct {
	contact models.Contact
}

// contactDeletedMsg confirms the API removed id.
type contactDeletedMsg struct {
	id string
}

type exportedMsg struct {
	path string
}

// opErrMsg reports a failed API call or export; held state stays unchanged.
type opErrMsg struct {
	op  string
	err error
}

// flashMsg clears the flash set under the same sequence number.
type flashMsg struct {
	seq int
}

// Model is the root dashboard model. contacts is the authoritative held list;
// visible is derived from it and query on every change.
type Model struct {
	api       API
	exportDir string
	now       func() time.Time

	contacts []models.Contact
	visible  []models.Contact
	query    dashboard.Query
	cursor   int
	loading  bool

	mode    mode
	search  textinput.Model
	form    formModel
	pending models.Contact

	flash     string
	flashKind flashKind
	flashSeq  int

	width int
}

func New(api API, exportDir string) Model {
	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = "search name, email or phone"
	si.CharLimit = 100

	return Model{
		api:       api,
		exportDir: exportDir,
		now:       time.Now,
		query:     dashboard.DefaultQuery(),
		search:    si,
		loading:   true,
		visible:   []models.Contact{},
	}
}

// Run starts the dashboard on the terminal and blocks until it quits.
func Run(api API, exportDir string) error {
	_, err := tea.NewProgram(New(api, exportDir), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.fetch()
}

// ----------------- Commands -----------------

func (m Model) fetch() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		list, err := api.List(ctx)
		if err != nil {
			return opErrMsg{op: "fetch contacts", err: err}
		}
		return contactsLoadedMsg{contacts: list}
	}
}

func (m Model) update(id string, in models.ContactInput) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		c, err := api.Update(ctx, id, models.PatchFrom(in))
		if err != nil {
			return opErrMsg{op: "update contact", err: err}
		}
		return contactUpdatedMsg{contact: c}
	}
}

func (m Model) remove(id string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := api.Delete(ctx, id); err != nil {
			return opErrMsg{op: "delete contact", err: err}
		}
		return contactDeletedMsg{id: id}
	}
}

func (m Model) export() tea.Cmd {
	held := append([]models.Contact(nil), m.contacts...)
	dir, now := m.exportDir, m.now()
	return func() tea.Msg {
		path, err := dashboard.SaveCSV(dir, held, now)
		if err != nil {
			return opErrMsg{op: "export", err: err}
		}
		return exportedMsg{path: path}
	}
}

func (m Model) setFlash(kind flashKind, text string) (Model, tea.Cmd) {
	m.flashSeq++
	m.flash, m.flashKind = text, kind
	seq := m.flashSeq
	return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg { return flashMsg{seq: seq} })
}

// ----------------- Update -----------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case contactsLoadedMsg:
		m.loading = false
		m.contacts = msg.contacts
		m.refresh()
		return m, nil

	case contactUpdatedMsg:
		for i := range m.contacts {
			if m.contacts[i].ID == msg.contact.ID {
				m.contacts[i] = msg.contact
			}
		}
		m.mode = modeList
		m.refresh()
		return m.setFlash(flashOK, "Contact updated successfully")

	case contactDeletedMsg:
		kept := m.contacts[:0:0]
		for _, c := range m.contacts {
			if c.ID != msg.id {
				kept = append(kept, c)
			}
		}
		m.contacts = kept
		m.refresh()
		return m.setFlash(flashOK, "Contact permanently removed")

	case exportedMsg:
		return m.setFlash(flashOK, "CSV exported to "+msg.path)

	case opErrMsg:
		m.loading = false
		if errors.Is(msg.err, dashboard.ErrNothingToExport) {
			return m.setFlash(flashInfo, "No contacts to export")
		}
		return m.setFlash(flashErr, "Failed to "+msg.op+": "+msg.err.Error())

	case flashMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case submitEditMsg:
		return m, m.update(msg.id, msg.in)

	case cancelEditMsg:
		m.mode = modeList
		return m, nil
	}

	switch m.mode {
	case modeEdit:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	case modeSearch:
		return m.updateSearch(msg)
	case modeConfirmDelete:
		if k, ok := msg.(tea.KeyMsg); ok {
			return m.handleConfirmKey(k)
		}
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(k)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyQuit):
		return m, tea.Quit
	case key.Matches(msg, keyUp):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, keyDown):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, keyBack):
		m.search.SetValue("")
		m.query.Search = ""
		m.refresh()
		return m, nil
	}

	switch msg.String() {
	case "r":
		m.loading = true
		return m, m.fetch()
	case "/":
		m.mode = modeSearch
		cmd := m.search.Focus()
		return m, cmd
	case "n":
		m.query = m.query.Toggle(dashboard.SortByName)
		m.refresh()
		return m, nil
	case "t":
		m.query = m.query.Toggle(dashboard.SortByDate)
		m.refresh()
		return m, nil
	case "x":
		return m, m.export()
	}

	sel, ok := m.selected()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "e":
		m.form = newFormModel(sel)
		m.mode = modeEdit
		return m, textinput.Blink
	case "d":
		m.pending = sel
		m.mode = modeConfirmDelete
		return m, nil
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case k.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case key.Matches(k, keyEnter):
			m.mode = modeList
			m.search.Blur()
			return m, nil
		case key.Matches(k, keyBack):
			m.mode = modeList
			m.search.Blur()
			m.search.SetValue("")
			m.query.Search = ""
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.query.Search = m.search.Value()
	m.refresh()
	return m, cmd
}

// handleConfirmKey deletes only on an explicit "y"; any other key cancels.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	target := m.pending
	m.mode = modeList
	m.pending = models.Contact{}
	if msg.String() == "y" {
		return m, m.remove(target.ID)
	}
	return m, nil
}

func (m Model) selected() (models.Contact, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return models.Contact{}, false
	}
	return m.visible[m.cursor], true
}

// refresh recomputes the visible list and keeps the cursor in range.
func (m *Model) refresh() {
	m.visible = dashboard.Apply(m.contacts, m.query)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// ----------------- View -----------------

func (m Model) View() string {
	var content string
	if m.mode == modeEdit {
		content = m.form.View()
	} else {
		content = m.listView()
	}

	header := renderHeader("contacts", m.subtitle())
	return "\n" + header + "\n" + renderSeparator(m.width) + "\n" + content + "\n" + m.flashLine() + "\n" + renderFooter(m.help()) + "\n"
}

func (m Model) subtitle() string {
	if m.mode == modeEdit {
		return "edit"
	}
	return "dashboard"
}

func (m Model) listView() string {
	var b strings.Builder

	st := dashboard.ComputeStats(m.contacts, m.now())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		statBox.Render(fmt.Sprintf("Total %d", st.Total)),
		" ",
		statBox.Render(fmt.Sprintf("Recent (24h) %d", st.Recent)),
	))
	b.WriteString("\n\n")

	b.WriteString("  " + mutedText.Render("sort: ") + sortLabel(m.query))
	if m.mode == modeSearch || m.query.Search != "" {
		b.WriteString("   " + m.search.View())
	}
	b.WriteString("\n\n")

	switch {
	case m.loading && len(m.contacts) == 0:
		b.WriteString("  " + mutedText.Render("loading...") + "\n")
	case len(m.visible) == 0:
		b.WriteString("  " + mutedText.Render("no contacts found") + "\n")
	default:
		b.WriteString("    " + headerCell.Render(fmt.Sprintf("%-22s %-28s %-11s %-20s", "NAME", "EMAIL", "PHONE", "DATE")) + "\n")
		for i, c := range m.visible {
			line := fmt.Sprintf("%-22s %-28s %-11s %-20s",
				truncate(c.Name, 22),
				truncate(c.Email, 28),
				c.Phone,
				c.CreatedAt.Local().Format("Jan 2, 2006 15:04"),
			)
			if i == m.cursor {
				b.WriteString("  " + highlight.Render("▸") + " " + line + "\n")
				if c.Message != "" {
					b.WriteString("      " + mutedText.Render(truncate(c.Message, 80)) + "\n")
				}
			} else {
				b.WriteString("    " + line + "\n")
			}
		}
	}

	if m.mode == modeConfirmDelete {
		b.WriteString("\n  " + statusWarn.Render(fmt.Sprintf("delete %s? (y/n)", m.pending.Name)) + "\n")
	}
	return b.String()
}

func sortLabel(q dashboard.Query) string {
	arrow := "↓"
	if q.Order == dashboard.Asc {
		arrow = "↑"
	}
	return highlight.Render(string(q.SortBy) + " " + arrow)
}

// flashLine always occupies a line so the footer does not jump.
func (m Model) flashLine() string {
	if m.flash == "" {
		return ""
	}
	style := mutedText
	switch m.flashKind {
	case flashOK:
		style = statusOK
	case flashErr:
		style = statusErr
	}
	return "  " + style.Render(m.flash)
}

func (m Model) help() []helpPair {
	switch m.mode {
	case modeEdit:
		return []helpPair{
			{Key: "tab", Desc: "next"},
			{Key: "shift+tab", Desc: "prev"},
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	case modeSearch:
		return []helpPair{
			{Key: "enter", Desc: "apply"},
			{Key: "esc", Desc: "clear"},
		}
	case modeConfirmDelete:
		return []helpPair{
			{Key: "y", Desc: "delete"},
			{Key: "any", Desc: "cancel"},
		}
	}
	return []helpPair{
		{Key: "j/k", Desc: "navigate"},
		{Key: "/", Desc: "search"},
		{Key: "n/t", Desc: "sort name/date"},
		{Key: "e", Desc: "edit"},
		{Key: "d", Desc: "delete"},
		{Key: "x", Desc: "export"},
		{Key: "r", Desc: "refresh"},
		{Key: "q", Desc: "quit"},
	}
}
