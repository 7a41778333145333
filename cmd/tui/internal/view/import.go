package view

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lucasvgarcia/contas/internal/importer"
	"github.com/lucasvgarcia/contas/internal/tracker"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

// ImportModel loads bills from a CSV file picked off disk. Each valid
// row becomes a create; rejected rows are reported with their line
// numbers and never reach the store.
type ImportModel struct {
	CommonModel
	store tracker.Store

	state      importState
	filePicker filepicker.Model

	rejects []importer.RowError

	status string
	err    error
}

func NewImportModel(store tracker.Store) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		store:      store,
		filePicker: fp,
	}
}

func (m ImportModel) Title() string { return "Import Bills" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Esc: back"
	}

	return "Esc: back | Enter: select file"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case importResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.rejects = msg.rejects
		m.status = fmt.Sprintf("Imported %d bills.", msg.imported)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Select a CSV file to import:\n\n" + m.filePicker.View(),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) +
				"\n\n(Esc to go back)",
		)
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status),
	}

	if len(m.rejects) > 0 {
		lines = append(lines, "", fmt.Sprintf("Rejected %d rows:", len(m.rejects)))
		for _, re := range m.rejects {
			lines = append(lines, "  "+re.Error())
		}
	}

	lines = append(lines, "", "(Esc to go back)")

	return style.Render(strings.Join(lines, "\n"))
}

// Messages

type importResultMsg struct {
	imported int
	rejects  []importer.RowError
	err      error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		params, rejects, err := importer.Parse(f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		for _, p := range params {
			if _, err := m.store.Create(ctx, p); err != nil {
				return importResultMsg{err: err}
			}
		}

		return importResultMsg{imported: len(params), rejects: rejects}
	}
}
