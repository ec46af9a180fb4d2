package main

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/rnet/pkg/linearize"
)

// showSettingsDialog displays the table settings.
func showSettingsDialog(state *viewState) {
	tabs := container.NewAppTabs(
		createLinearizeTab(state),
		createTableTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(500, 300))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(500, 300))
	d.Show()
}

// createLinearizeTab creates the Linearize configuration tab.
func createLinearizeTab(state *viewState) *container.TabItem {
	toleranceEntry := widget.NewEntry()
	toleranceEntry.SetText(strconv.FormatFloat(state.cfg.Linearize.Tolerance, 'f', -1, 64))

	stepSelect := widget.NewSelect([]string{linearize.MaxStep.String(), linearize.MedianStep.String()}, nil)
	stepSelect.SetSelected(state.cfg.StepMode().String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Tolerance", Widget: toleranceEntry},
			{Text: "Ideal step", Widget: stepSelect},
		},
		OnSubmit: func() {
			if tol, err := strconv.ParseFloat(toleranceEntry.Text, 64); err == nil && tol >= 0 {
				state.cfg.Linearize.Tolerance = tol
			}
			if stepSelect.Selected != "" {
				state.cfg.Linearize.Step = stepSelect.Selected
			}
			applySettings(state)
		},
	}

	return container.NewTabItem("Linearize", form)
}

// createTableTab creates the Table configuration tab.
func createTableTab(state *viewState) *container.TabItem {
	maxOhmsEntry := widget.NewEntry()
	maxOhmsEntry.SetText(strconv.FormatFloat(state.cfg.Table.MaxOhms, 'f', -1, 64))

	excludeZero := widget.NewCheck("", nil)
	excludeZero.SetChecked(state.cfg.Table.ExcludeZero)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Max resistance (Ω, 0 = all)", Widget: maxOhmsEntry},
			{Text: "Exclude 0 Ω", Widget: excludeZero},
		},
		OnSubmit: func() {
			if maxOhms, err := strconv.ParseFloat(maxOhmsEntry.Text, 64); err == nil && maxOhms >= 0 {
				state.cfg.Table.MaxOhms = maxOhms
			}
			state.cfg.Table.ExcludeZero = excludeZero.Checked
			applySettings(state)
		},
	}

	return container.NewTabItem("Table", form)
}

// applySettings redraws and persists the configuration.
func applySettings(state *viewState) {
	state.update()
	if err := state.cfg.Save(configPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
	}
}
