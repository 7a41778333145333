package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/lucasvgarcia/contas/cmd/tui/internal/view"
	"github.com/lucasvgarcia/contas/internal/bill"
	billStore "github.com/lucasvgarcia/contas/internal/bill/store"
	"github.com/lucasvgarcia/contas/internal/config"
	"github.com/lucasvgarcia/contas/internal/database"
	"github.com/lucasvgarcia/contas/internal/tracker"
)

type model struct {
	billService *bill.Service

	currentView View

	billsView  view.BillsModel
	importView view.ImportModel
	exportView view.ExportModel
}

type View int

const (
	ViewBills  View = 0
	ViewImport View = 1
	ViewExport View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	billSvc := bill.NewService(billStore.New(db))

	return model{
		billService: billSvc,
		currentView: ViewBills,
		billsView: view.NewBillsModel(
			tracker.New(billSvc),
			view.NewCurrencyFormatter(cfg.Locale.Language, cfg.Locale.Currency),
		),
		importView: view.NewImportModel(billSvc),
		exportView: view.NewExportModel(billSvc),
	}
}

func (m model) Init() tea.Cmd {
	return m.billsView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.(type) {
	case view.OpenImportMsg:
		m.currentView = ViewImport
		m.importView = view.NewImportModel(m.billService)

		return m, m.importView.Init()
	case view.OpenExportMsg:
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(m.billService)

		return m, m.exportView.Init()
	case view.BackMsg:
		// the bills screen re-syncs since an import may have changed
		// the store
		m.currentView = ViewBills
		return m, m.billsView.Init()
	}

	switch m.currentView {
	case ViewBills:
		var newModel tea.Model
		newModel, cmd = m.billsView.Update(msg)
		m.billsView = newModel.(view.BillsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewBills:
		return m.billsView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
