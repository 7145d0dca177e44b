// Package ui provides the loadplanner desktop application UI components.
//
// This file provides the tariff profile manager dialog: viewing builtin
// cost profiles and adding, editing, or removing custom ones.

package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/cargoplan/loadplanner/internal/tariff"
)

// showTariffProfileManager opens a dialog listing builtin and custom
// tariff profiles, allowing the user to add, edit, or remove custom ones.
func (a *App) showTariffProfileManager() {
	list := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		list.RemoveAll()

		list.Add(widget.NewLabelWithStyle("Builtin Profiles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		for _, p := range tariff.BuiltinProfiles() {
			list.Add(widget.NewLabel(profileSummary(p)))
		}

		list.Add(widget.NewSeparator())
		list.Add(widget.NewLabelWithStyle("Custom Profiles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))

		if len(a.customProfiles) == 0 {
			list.Add(widget.NewLabel("No custom profiles defined."))
		}

		for i := range a.customProfiles {
			idx := i
			p := a.customProfiles[idx]

			editBtn := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showEditTariffProfileDialog(idx, refreshList)
			})
			deleteBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.customProfiles = append(a.customProfiles[:idx], a.customProfiles[idx+1:]...)
				a.saveCustomProfiles()
				refreshList()
			})

			row := container.NewBorder(nil, nil, nil,
				container.NewHBox(editBtn, deleteBtn),
				widget.NewLabel(profileSummary(p)),
			)
			list.Add(row)
		}
	}
	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Custom Profile", theme.ContentAddIcon(), func() {
		a.showAddTariffProfileDialog(refreshList)
	})

	content := container.NewBorder(addBtn, nil, nil, nil, container.NewVScroll(list))

	d := dialog.NewCustom("Tariff Profiles", "Close", content, a.window)
	d.Resize(fyne.NewSize(620, 480))
	d.Show()
}

// profileSummary formats a single-line description of a tariff profile.
func profileSummary(p tariff.Profile) string {
	return fmt.Sprintf("%s (%s) — fixed %.0f, %.2f/km, %.0f/h, %.1fh loading",
		p.Name, p.TruckClass, p.FixedCost, p.PerKmCost, p.PerHourCost, p.LoadingHours)
}

func (a *App) showAddTariffProfileDialog(onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Profile name")

	classEntry := widget.NewEntry()
	classEntry.SetPlaceHolder("e.g., van, 19t, 26t, 40t, lowbed")

	fixedEntry := widget.NewEntry()
	fixedEntry.SetText("0")

	perKmEntry := widget.NewEntry()
	perKmEntry.SetText("0")

	perHourEntry := widget.NewEntry()
	perHourEntry.SetText("0")

	loadingHoursEntry := widget.NewEntry()
	loadingHoursEntry.SetText("1")

	form := dialog.NewForm("Add Tariff Profile", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Truck Class", classEntry),
			widget.NewFormItem("Fixed Cost", fixedEntry),
			widget.NewFormItem("Cost per km", perKmEntry),
			widget.NewFormItem("Cost per hour", perHourEntry),
			widget.NewFormItem("Loading Hours", loadingHoursEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			if nameEntry.Text == "" || classEntry.Text == "" {
				dialog.ShowError(fmt.Errorf("name and truck class are required"), a.window)
				return
			}
			p := tariff.Profile{
				ID:           "custom-" + classEntry.Text,
				TruckClass:   classEntry.Text,
				Name:         nameEntry.Text,
				FixedCost:    parseFloat(fixedEntry.Text),
				PerKmCost:    parseFloat(perKmEntry.Text),
				PerHourCost:  parseFloat(perHourEntry.Text),
				LoadingHours: parseFloat(loadingHoursEntry.Text),
				IsBuiltIn:    false,
			}
			a.customProfiles = append(a.customProfiles, p)
			a.saveCustomProfiles()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 420))
	form.Show()
}

func (a *App) showEditTariffProfileDialog(idx int, onDone func()) {
	p := a.customProfiles[idx]

	nameEntry := widget.NewEntry()
	nameEntry.SetText(p.Name)

	classEntry := widget.NewEntry()
	classEntry.SetText(p.TruckClass)

	fixedEntry := widget.NewEntry()
	fixedEntry.SetText(fmt.Sprintf("%.2f", p.FixedCost))

	perKmEntry := widget.NewEntry()
	perKmEntry.SetText(fmt.Sprintf("%.2f", p.PerKmCost))

	perHourEntry := widget.NewEntry()
	perHourEntry.SetText(fmt.Sprintf("%.2f", p.PerHourCost))

	loadingHoursEntry := widget.NewEntry()
	loadingHoursEntry.SetText(fmt.Sprintf("%.2f", p.LoadingHours))

	form := dialog.NewForm("Edit Tariff Profile", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Truck Class", classEntry),
			widget.NewFormItem("Fixed Cost", fixedEntry),
			widget.NewFormItem("Cost per km", perKmEntry),
			widget.NewFormItem("Cost per hour", perHourEntry),
			widget.NewFormItem("Loading Hours", loadingHoursEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			a.customProfiles[idx].Name = nameEntry.Text
			a.customProfiles[idx].TruckClass = classEntry.Text
			a.customProfiles[idx].FixedCost = parseFloat(fixedEntry.Text)
			a.customProfiles[idx].PerKmCost = parseFloat(perKmEntry.Text)
			a.customProfiles[idx].PerHourCost = parseFloat(perHourEntry.Text)
			a.customProfiles[idx].LoadingHours, _ = strconv.ParseFloat(loadingHoursEntry.Text, 64)
			a.saveCustomProfiles()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 420))
	form.Show()
}

// saveCustomProfiles persists the custom tariff profile list to disk.
func (a *App) saveCustomProfiles() {
	if err := tariff.SaveCustomProfilesToDefault(a.customProfiles); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save tariff profiles: %w", err), a.window)
	}
}
