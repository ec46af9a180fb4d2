package main

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/rnet/pkg/config"
	"github.com/itohio/rnet/pkg/network"
	"github.com/itohio/rnet/pkg/plot"
	"github.com/itohio/rnet/pkg/topology"
	"github.com/spf13/cobra"
)

var (
	viewNetwork string
	viewBank    bool
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Plot the sorted resistance ladder and its linearized subset",
	Long: `Open a window showing every filtered resistance of a network (or the
configured bank) in ascending order together with the linearized lookup
table. Table settings can be changed live from the settings dialog.

Examples:
  rnet view --network "[5] [18] [7, 22, 49, 77, 100, 107, 241, 49, 71, 4]"
  rnet view --bank`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringVarP(&viewNetwork, "network", "n", "",
		`network topology, e.g. "[5] [18] [7, 22, 49]"`)
	viewCmd.Flags().BoolVar(&viewBank, "bank", false,
		"plot the configured parallel bank instead of a network")
	viewCmd.MarkFlagsOneRequired("network", "bank")
	viewCmd.MarkFlagsMutuallyExclusive("network", "bank")
}

// viewState holds the viewer state.
type viewState struct {
	cfg     *config.Config
	logger  *slog.Logger
	title   string
	entries []network.Entry
	window  fyne.Window
	curve   *plot.CurveWidget
	status  *widget.Label
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	state := &viewState{cfg: cfg, logger: logger}
	if viewBank {
		bank := network.Bank(cfg.Bank.Values)
		if err := bank.Validate(); err != nil {
			return fmt.Errorf("invalid bank: %w", err)
		}
		state.title = fmt.Sprintf("Bank %v", cfg.Bank.Values)
		state.entries = bank.Enumerate(network.OpenOnDisable)
	} else {
		n, err := topology.ParseNetwork(viewNetwork)
		if err != nil {
			return err
		}
		state.title = topology.Format(n)
		state.entries = network.Enumerate(n)
	}

	application := app.NewWithID("com.itohio.rnet")

	window := application.NewWindow("Resistor Network: " + state.title)
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()
	state.window = window

	state.curve = plot.New()
	state.status = widget.NewLabel("")

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})
	toolbar := container.NewBorder(nil, nil, container.NewHBox(settingsBtn), nil, state.status)

	window.SetContent(container.NewBorder(toolbar, nil, nil, nil, state.curve))
	state.update()
	window.ShowAndRun()
	return nil
}

// update rebuilds the table from the current settings and redraws.
func (s *viewState) update() {
	sorted, table := buildTable(s.entries, tableOptionsFrom(s.cfg))
	s.curve.SetData(network.Ohms(sorted), network.Ohms(table))
	s.status.SetText(fmt.Sprintf("%d configurations, %d kept, %d in table (tolerance %.2f, %s step)",
		len(s.entries), len(sorted), len(table), s.cfg.Linearize.Tolerance, s.cfg.StepMode()))
	s.logger.Debug("view updated", "sorted", len(sorted), "table", len(table))
}
