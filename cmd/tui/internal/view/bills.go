package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/lucasvgarcia/contas/internal/bill"
	"github.com/lucasvgarcia/contas/internal/tracker"
)

type billsState int

const (
	billsStateBrowse billsState = iota
	billsStateForm
	billsStateConfirmDelete
	billsStateReorder
)

// BillsModel is the single screen of the client: the bill table with its
// totals, the add/edit form, the delete confirmation and the reorder
// mode. All list state lives in the tracker; this model only renders it
// and translates key presses into tracker and store operations.
type BillsModel struct {
	CommonModel
	tracker  *tracker.Tracker
	currency CurrencyFormatter

	state   billsState
	table   table.Model
	form    *huh.Form
	loading bool
	status  string
	err     error

	// Form bindings
	mode       tracker.FormMode
	formDesc   string
	formAmount string
	formDue    string
	formStatus string

	// Delete confirmation binding
	deleteID  uuid.UUID
	confirmed bool
}

func NewBillsModel(t *tracker.Tracker, currency CurrencyFormatter) BillsModel {
	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Description", Width: 38},
		{Title: "Amount", Width: 12},
		{Title: "Due", Width: 12},
		{Title: "Status", Width: 10},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	tbl.SetStyles(s)

	return BillsModel{
		tracker:  t,
		currency: currency,
		table:    tbl,
		loading:  true,
	}
}

func (m BillsModel) Title() string { return "Bills" }

func (m BillsModel) ShortHelp() string {
	switch m.state {
	case billsStateForm:
		return "Navigate form | Esc: cancel"
	case billsStateConfirmDelete:
		return "y/n: confirm | Esc: cancel"
	case billsStateReorder:
		return "j/k: choose target | Enter: drop | Esc: cancel"
	}

	return "a: add | e: edit | x: delete | g: grab row | i: import | o: export | r: refresh | q: quit"
}

func (m BillsModel) Init() tea.Cmd {
	return m.reloadCmd()
}

func (m BillsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case billsReloadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.refreshTable()

		return m, nil

	case billSavedMsg:
		m.state = billsStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.status = "Saved."
		m.refreshTable()

		return m, nil

	case billDeletedMsg:
		m.state = billsStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}

		m.status = "Deleted."
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.table.SetHeight(msg.Height - 10)

		return m, nil
	}

	switch m.state {
	case billsStateBrowse:
		return m.updateBrowse(msg)
	case billsStateForm:
		return m.updateForm(msg)
	case billsStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case billsStateReorder:
		return m.updateReorder(msg)
	}

	return m, nil
}

func (m BillsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.status = ""

			return m, m.reloadCmd()
		case "a":
			return m.openForm(tracker.Adding())
		case "e", "enter":
			if b, ok := m.selectedBill(); ok {
				return m.openForm(tracker.Editing(b.ID))
			}

			return m, nil
		case "x", "d":
			return m.openConfirmDelete()
		case "g", " ":
			return m.startReorder()
		case "i":
			return m, OpenImport
		case "o":
			return m, OpenExport
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

// startReorder begins a drag on the selected row.
func (m BillsModel) startReorder() (tea.Model, tea.Cmd) {
	b, ok := m.selectedBill()
	if !ok {
		return m, nil
	}

	if !m.tracker.DragStart(b.ID) {
		return m, nil
	}

	m.state = billsStateReorder
	m.status = fmt.Sprintf("Moving %q", b.Description)
	m.refreshTable()

	return m, nil
}

// updateReorder drives the drag protocol with the cursor: moving it
// hovers a new drop target, Enter drops, Esc abandons the drag.
func (m BillsModel) updateReorder(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "q":
		m.tracker.DragEnd()
		m.state = billsStateBrowse
		m.status = ""
		m.refreshTable()

		return m, nil

	case "enter", " ":
		if b, ok := m.selectedBill(); ok {
			m.tracker.Drop(b.ID)
		}

		m.tracker.DragEnd()
		m.state = billsStateBrowse
		m.status = ""
		m.refreshTable()

		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	if b, ok := m.selectedBill(); ok {
		if dragged, dragging := m.tracker.Dragging(); dragging {
			if b.ID == dragged {
				if target, has := m.tracker.DropTarget(); has {
					m.tracker.DragLeave(target)
				}
			} else {
				m.tracker.DragOver(b.ID)
			}
		}
	}

	m.refreshTable()

	return m, cmd
}

func (m BillsModel) openForm(mode tracker.FormMode) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.formDesc = ""
	m.formAmount = ""
	m.formDue = ""
	m.formStatus = string(bill.StatusPending)

	if id, editing := mode.Editing(); editing {
		b, ok := m.tracker.Get(id)
		if !ok {
			m.status = "Bill not found."
			return m, nil
		}

		m.formDesc = b.Description
		m.formAmount = b.Amount.StringFixed(2)
		m.formDue = FormatDate(b.DueDate)
		m.formStatus = string(b.Status)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					_, err := bill.ParseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("due_date").
				Title("Due date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDue).
				Validate(func(s string) error {
					_, err := bill.ParseDueDate(s)
					return err
				}),

			huh.NewSelect[string]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption("Pending", string(bill.StatusPending)),
					huh.NewOption("Paid", string(bill.StatusPaid)),
				).
				Value(&m.formStatus),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = billsStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m BillsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = billsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.submitCmd()
}

// openConfirmDelete asks before touching the store; answering no aborts
// with no store interaction at all.
func (m BillsModel) openConfirmDelete() (tea.Model, tea.Cmd) {
	b, ok := m.selectedBill()
	if !ok {
		return m, nil
	}

	m.deleteID = b.ID
	m.confirmed = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete bill %q?", b.Description)).
				Affirmative("Yes").
				Negative("No").
				Value(&m.confirmed),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = billsStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m BillsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = billsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !m.confirmed {
		m.state = billsStateBrowse
		m.form = nil
		m.table.Focus()
		m.status = ""

		return m, nil
	}

	return m, m.deleteCmd(m.deleteID)
}

func (m BillsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading bills...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit.", m.err),
		)
	}

	totals := m.tracker.Totals()
	totalsLine := fmt.Sprintf(
		"%s %s   %s %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("Pending:"),
		m.currency.Format(totals.Pending),
		lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Render("Paid:"),
		m.currency.Format(totals.Paid),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		tableView,
		lipgloss.NewStyle().PaddingTop(1).Render(totalsLine),
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)

	if (m.state == billsStateForm || m.state == billsStateConfirmDelete) && m.form != nil {
		title := "Add bill"
		if _, editing := m.mode.Editing(); editing && m.state == billsStateForm {
			title = "Edit bill"
		}

		if m.state == billsStateConfirmDelete {
			title = "Delete bill"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(49).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m BillsModel) selectedBill() (*bill.Bill, bool) {
	bills := m.tracker.Bills()

	idx := m.table.Cursor()
	if idx < 0 || idx >= len(bills) {
		return nil, false
	}

	return bills[idx], true
}

// refreshTable rebuilds the rows from the tracker cache. The marker
// column shows the row being dragged and the current drop candidate.
func (m *BillsModel) refreshTable() {
	dragged, _ := m.tracker.Dragging()
	target, _ := m.tracker.DropTarget()

	bills := m.tracker.Bills()

	rows := make([]table.Row, 0, len(bills))
	for _, b := range bills {
		marker := ""

		switch b.ID {
		case dragged:
			marker = "≡"
		case target:
			marker = "▾"
		}

		rows = append(rows, table.Row{
			marker,
			b.Description,
			b.Amount.StringFixed(2),
			FormatDate(b.DueDate),
			string(b.Status),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type billsReloadedMsg struct {
	err error
}

func (m BillsModel) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return billsReloadedMsg{err: m.tracker.Reload(ctx)}
	}
}

type billSavedMsg struct {
	err error
}

func (m BillsModel) submitCmd() tea.Cmd {
	mode := m.mode
	desc := m.formDesc
	amount := m.formAmount
	due := m.formDue
	status := m.formStatus

	return func() tea.Msg {
		params, err := bill.ParseParams(desc, amount, due, status)
		if err != nil {
			return billSavedMsg{err: err}
		}

		ctx, cancel := StoreCtx()
		defer cancel()

		return billSavedMsg{err: m.tracker.Submit(ctx, mode, params)}
	}
}

type billDeletedMsg struct {
	err error
}

func (m BillsModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return billDeletedMsg{err: m.tracker.Delete(ctx, id)}
	}
}
