package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/contact-manager/internal/dashboard"
	"github.com/baharkarakas/contact-manager/internal/models"
)

// helpers

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func specialKey(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

var now = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

type fakeAPI struct {
	contacts  []models.Contact
	listErr   error
	updateErr error
	deleteErr error

	deleted []string
	patches map[string]models.ContactPatch
}

func (f *fakeAPI) List(context.Context) ([]models.Contact, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Contact(nil), f.contacts...), nil
}

func (f *fakeAPI) Update(_ context.Context, id string, p models.ContactPatch) (models.Contact, error) {
	if f.updateErr != nil {
		return models.Contact{}, f.updateErr
	}
	if f.patches == nil {
		f.patches = map[string]models.ContactPatch{}
	}
	f.patches[id] = p
	for _, c := range f.contacts {
		if c.ID == id {
			p.Apply(&c)
			return c, nil
		}
	}
	return models.Contact{}, errors.New("not found")
}

func (f *fakeAPI) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func seed() []models.Contact {
	return []models.Contact{
		{ID: "1", Name: "Charlie", Email: "c@x.io", Phone: "1111111111", CreatedAt: now.Add(-time.Hour)},
		{ID: "2", Name: "alice", Email: "a@x.io", Phone: "2222222222", Message: "hi", CreatedAt: now.Add(-30 * time.Hour)},
		{ID: "3", Name: "Bob", Email: "b@y.io", Phone: "3333333333", CreatedAt: now.Add(-2 * time.Hour)},
	}
}

// loaded returns a model that has already received the fake's list.
func loaded(t *testing.T, api *fakeAPI) Model {
	t.Helper()
	m := New(api, t.TempDir())
	m.now = func() time.Time { return now }
	msg := m.Init()()
	return step(t, m, msg)
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	out, _ := m.Update(msg)
	return out.(Model)
}

// run feeds msg and then the message produced by the returned command, once.
func run(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	out, cmd := m.Update(msg)
	m = out.(Model)
	if cmd == nil {
		return m
	}
	next := cmd()
	if _, isTick := next.(flashMsg); isTick || next == nil {
		return m
	}
	out, _ = m.Update(next)
	return out.(Model)
}

func names(cs []models.Contact) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

// tests

func TestInitLoadsNewestFirst(t *testing.T) {
	m := loaded(t, &fakeAPI{contacts: seed()})

	assert.False(t, m.loading)
	assert.Equal(t, []string{"Charlie", "Bob", "alice"}, names(m.visible))

	view := m.View()
	assert.Contains(t, view, "Total 3")
	assert.Contains(t, view, "Recent (24h) 2")
}

func TestFetchFailureKeepsState(t *testing.T) {
	api := &fakeAPI{contacts: seed()}
	m := loaded(t, api)

	api.listErr = errors.New("connection refused")
	m = run(t, m, keyMsg('r'))

	assert.Len(t, m.contacts, 3)
	assert.Contains(t, m.flash, "Failed to fetch contacts")
	assert.Equal(t, flashErr, m.flashKind)
}

func TestSortToggle(t *testing.T) {
	m := loaded(t, &fakeAPI{contacts: seed()})

	m = step(t, m, keyMsg('n'))
	assert.Equal(t, []string{"alice", "Bob", "Charlie"}, names(m.visible))
	m = step(t, m, keyMsg('n'))
	assert.Equal(t, []string{"Charlie", "Bob", "alice"}, names(m.visible))

	m = step(t, m, keyMsg('t'))
	assert.Equal(t, dashboard.Asc, m.query.Order)
	assert.Equal(t, []string{"alice", "Bob", "Charlie"}, names(m.visible))
}

func TestSearch(t *testing.T) {
	m := loaded(t, &fakeAPI{contacts: seed()})

	m = step(t, m, keyMsg('/'))
	require.Equal(t, modeSearch, m.mode)
	for _, r := range "x.io" {
		m = step(t, m, keyMsg(r))
	}
	assert.Equal(t, []string{"Charlie", "alice"}, names(m.visible))

	m = step(t, m, specialKey(tea.KeyEnter))
	assert.Equal(t, modeList, m.mode)
	assert.Len(t, m.visible, 2, "term stays applied after leaving search")

	m = step(t, m, specialKey(tea.KeyEsc))
	assert.Len(t, m.visible, 3)
}

func TestSearchKeysDoNotTriggerActions(t *testing.T) {
	api := &fakeAPI{contacts: seed()}
	m := loaded(t, api)

	m = step(t, m, keyMsg('/'))
	m = step(t, m, keyMsg('d'))
	m = step(t, m, keyMsg('q'))

	assert.Equal(t, modeSearch, m.mode)
	assert.Equal(t, "dq", m.search.Value())
	assert.Empty(t, api.deleted)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	api := &fakeAPI{contacts: seed()}
	m := loaded(t, api)

	m = step(t, m, keyMsg('d'))
	require.Equal(t, modeConfirmDelete, m.mode)
	assert.Contains(t, m.View(), "delete Charlie? (y/n)")

	m = run(t, m, keyMsg('n'))
	assert.Equal(t, modeList, m.mode)
	assert.Empty(t, api.deleted)
	assert.Len(t, m.contacts, 3)

	m = step(t, m, keyMsg('d'))
	m = run(t, m, keyMsg('y'))
	assert.Equal(t, []string{"1"}, api.deleted)
	assert.Equal(t, []string{"Bob", "alice"}, names(m.visible))
	assert.Equal(t, "Contact permanently removed", m.flash)
}

func TestDeleteFailureKeepsRecord(t *testing.T) {
	api := &fakeAPI{contacts: seed(), deleteErr: errors.New("boom")}
	m := loaded(t, api)

	m = step(t, m, keyMsg('d'))
	m = run(t, m, keyMsg('y'))

	assert.Len(t, m.contacts, 3)
	assert.Contains(t, m.flash, "Failed to delete contact")
}

func TestEditSubmitsFullRecord(t *testing.T) {
	api := &fakeAPI{contacts: seed()}
	m := loaded(t, api)

	m = step(t, m, keyMsg('j'))
	m = step(t, m, keyMsg('e'))
	require.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "Bob", m.form.inputs[fieldName].Value())

	// jump to the message field and type
	for i := 0; i < fieldMessage; i++ {
		m = step(t, m, specialKey(tea.KeyTab))
	}
	for _, r := range "hello" {
		m = step(t, m, keyMsg(r))
	}

	out, cmd := m.Update(specialKey(tea.KeyEnter))
	m = out.(Model)
	require.NotNil(t, cmd)
	m = run(t, m, cmd())

	p := api.patches["3"]
	require.NotNil(t, p.Name)
	assert.Equal(t, "Bob", *p.Name)
	assert.Equal(t, "hello", *p.Message)

	assert.Equal(t, modeList, m.mode)
	assert.Equal(t, "Contact updated successfully", m.flash)
	for _, c := range m.contacts {
		if c.ID == "3" {
			assert.Equal(t, "hello", c.Message)
		}
	}
}

func TestEditRejectsInvalidLocally(t *testing.T) {
	api := &fakeAPI{contacts: seed()}
	m := loaded(t, api)

	m = step(t, m, keyMsg('e'))
	m.form.inputs[fieldPhone].SetValue("12")
	out, cmd := m.Update(specialKey(tea.KeyEnter))
	m = out.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, modeEdit, m.mode)
	assert.Contains(t, m.View(), "Phone must be 10 digits")
	assert.Empty(t, api.patches)
}

func TestEditFailureKeepsHeldRecord(t *testing.T) {
	api := &fakeAPI{contacts: seed(), updateErr: errors.New("Contact not found")}
	m := loaded(t, api)

	m = step(t, m, keyMsg('e'))
	m.form.inputs[fieldMessage].SetValue("changed")
	out, cmd := m.Update(specialKey(tea.KeyEnter))
	m = run(t, out.(Model), cmd())

	assert.Contains(t, m.flash, "Failed to update contact")
	assert.Equal(t, "", m.contacts[0].Message)
}

func TestEditEscCancels(t *testing.T) {
	m := loaded(t, &fakeAPI{contacts: seed()})
	m = step(t, m, keyMsg('e'))
	m = run(t, m, specialKey(tea.KeyEsc))
	assert.Equal(t, modeList, m.mode)
}

func TestExportWritesHeldList(t *testing.T) {
	m := loaded(t, &fakeAPI{contacts: seed()})

	// a filtered view still exports every held record
	m.query.Search = "Bob"
	m.refresh()
	require.Len(t, m.visible, 1)

	m = run(t, m, keyMsg('x'))
	require.Contains(t, m.flash, "CSV exported to ")

	path := strings.TrimPrefix(m.flash, "CSV exported to ")
	assert.Equal(t, "Contacts_2026-10-17.csv", filepath.Base(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(b), "\n"))
}

func TestExportEmpty(t *testing.T) {
	m := loaded(t, &fakeAPI{})
	m = run(t, m, keyMsg('x'))
	assert.Equal(t, "No contacts to export", m.flash)
	assert.Equal(t, flashInfo, m.flashKind)
}

func TestFlashClearsOnlyLatest(t *testing.T) {
	m := loaded(t, &fakeAPI{})
	m, _ = m.setFlash(flashInfo, "first")
	m, _ = m.setFlash(flashInfo, "second")

	m = step(t, m, flashMsg{seq: 1})
	assert.Equal(t, "second", m.flash)
	m = step(t, m, flashMsg{seq: 2})
	assert.Equal(t, "", m.flash)
}

func TestCursorBounds(t *testing.T) {
	m := loaded(t, &fakeAPI{contacts: seed()})

	m = step(t, m, keyMsg('k'))
	assert.Equal(t, 0, m.cursor)
	for i := 0; i < 10; i++ {
		m = step(t, m, keyMsg('j'))
	}
	assert.Equal(t, 2, m.cursor)
}

func TestQuit(t *testing.T) {
	m := loaded(t, &fakeAPI{})
	_, cmd := m.Update(keyMsg('q'))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestEmptyView(t *testing.T) {
	m := loaded(t, &fakeAPI{})
	assert.Contains(t, m.View(), "no contacts found")
}
