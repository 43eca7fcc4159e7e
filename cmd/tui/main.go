package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/minhvng/fruitbill/cmd/tui/internal/view"
	"github.com/minhvng/fruitbill/internal/config"
	"github.com/minhvng/fruitbill/internal/database"
	"github.com/minhvng/fruitbill/internal/export"
	"github.com/minhvng/fruitbill/internal/importer"
	"github.com/minhvng/fruitbill/internal/invoice"
	invoiceStore "github.com/minhvng/fruitbill/internal/invoice/store"
	"github.com/minhvng/fruitbill/internal/kvstore"
	"github.com/minhvng/fruitbill/internal/preset"
	presetStore "github.com/minhvng/fruitbill/internal/preset/store"
)

type model struct {
	session    *invoice.Session
	invoiceSvc *invoice.Service
	presetSvc  *preset.Service
	importSvc  *importer.Service
	exportSvc  *export.Service
	exportDir  string

	currentView View

	entryView   view.EntryModel
	historyView view.HistoryModel
	statsView   view.StatsModel
	presetsView view.PresetsModel
	importView  view.ImportModel
}

type View int

const (
	ViewMenu    View = 0
	ViewEntry   View = 1
	ViewHistory View = 2
	ViewStats   View = 3
	ViewPresets View = 4
	ViewImport  View = 5
)

func newStore(cfg *config.Config) (kvstore.Store, error) {
	if cfg.Storage.Backend == config.BackendPostgres {
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, err
		}

		pg := kvstore.NewPostgres(db)
		if err := pg.Init(context.Background()); err != nil {
			return nil, err
		}

		return pg, nil
	}

	return kvstore.NewFile(cfg.Storage.Dir)
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	kv, err := newStore(cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}

	invoiceSvc := invoice.NewService(invoiceStore.New(kv))
	presetSvc := preset.NewService(presetStore.New(kv))
	importSvc := importer.NewService(presetSvc)
	exportSvc := export.NewService(invoiceSvc)
	session := invoice.NewSession(invoiceSvc)

	return model{
		session:     session,
		invoiceSvc:  invoiceSvc,
		presetSvc:   presetSvc,
		importSvc:   importSvc,
		exportSvc:   exportSvc,
		exportDir:   cfg.Export.Dir,
		currentView: ViewMenu,
		entryView:   view.NewEntryModel(session, presetSvc),
		historyView: view.NewHistoryModel(invoiceSvc, exportSvc, cfg.Export.Dir),
		statsView:   view.NewStatsModel(invoiceSvc),
		presetsView: view.NewPresetsModel(presetSvc),
		importView:  view.NewImportModel(importSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewEntry
				m.entryView = view.NewEntryModel(m.session, m.presetSvc)

				return m, m.entryView.Init()
			case "2":
				m.currentView = ViewHistory
				m.historyView = view.NewHistoryModel(m.invoiceSvc, m.exportSvc, m.exportDir)

				return m, m.historyView.Init()
			case "3":
				m.currentView = ViewStats
				m.statsView = view.NewStatsModel(m.invoiceSvc)

				return m, m.statsView.Init()
			case "4":
				m.currentView = ViewPresets
				m.presetsView = view.NewPresetsModel(m.presetSvc)

				return m, m.presetsView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importSvc)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewEntry:
		var newModel tea.Model
		newModel, cmd = m.entryView.Update(msg)
		m.entryView = newModel.(view.EntryModel)
	case ViewHistory:
		var newModel tea.Model
		newModel, cmd = m.historyView.Update(msg)
		m.historyView = newModel.(view.HistoryModel)
	case ViewStats:
		var newModel tea.Model
		newModel, cmd = m.statsView.Update(msg)
		m.statsView = newModel.(view.StatsModel)
	case ViewPresets:
		var newModel tea.Model
		newModel, cmd = m.presetsView.Update(msg)
		m.presetsView = newModel.(view.PresetsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Fruitbill\n\n" +
				"1. New Invoice\n" +
				"2. Invoice History\n" +
				"3. Daily Statistics\n" +
				"4. Fruit Presets\n" +
				"5. Import Presets from CSV\n\n" +
				"q. Quit",
		)
	case ViewEntry:
		return m.entryView.View()
	case ViewHistory:
		return m.historyView.View()
	case ViewStats:
		return m.statsView.View()
	case ViewPresets:
		return m.presetsView.View()
	case ViewImport:
		return m.importView.View()
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
