package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/cargoplan/loadplanner/internal/model"
	"github.com/cargoplan/loadplanner/internal/project"
)

// ─── Item Template Inventory Dialog ────────────────────────

func (a *App) showItemInventoryDialog() {
	itemList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		itemList.RemoveAll()

		if len(a.inventory.Items) == 0 {
			itemList.Add(widget.NewLabel("No item templates defined."))
			return
		}

		header := container.NewGridWithColumns(6,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("L x W x H", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Weight", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Stackable", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		)
		itemList.Add(header)
		itemList.Add(widget.NewSeparator())

		for i := range a.inventory.Items {
			idx := i
			it := a.inventory.Items[idx]
			row := container.NewGridWithColumns(6,
				widget.NewLabel(it.Name),
				widget.NewLabel(fmt.Sprintf("%.0fx%.0fx%.0f cm", it.Length, it.Width, it.Height)),
				widget.NewLabel(fmt.Sprintf("%.0f kg", it.Weight)),
				widget.NewLabel(yesNo(it.Stackable)),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.showEditItemTemplateDialog(idx, refreshList)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.inventory.Items = append(a.inventory.Items[:idx], a.inventory.Items[idx+1:]...)
					a.saveInventory()
					refreshList()
				}),
			)
			itemList.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Item Template", theme.ContentAddIcon(), func() {
		a.showAddItemTemplateDialog(refreshList)
	})

	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importInventory(refreshList)
	})

	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), func() {
		a.exportInventory()
	})

	toolbar := container.NewHBox(addBtn, layout.NewSpacer(), importBtn, exportBtn)

	content := container.NewBorder(
		toolbar,
		nil, nil, nil,
		container.NewVScroll(itemList),
	)

	d := dialog.NewCustom("Item Templates", "Close", content, a.window)
	d.Resize(fyne.NewSize(700, 500))
	d.Show()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func (a *App) showAddItemTemplateDialog(onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Item template name")
	nameEntry.SetText("New Pallet")

	lengthEntry := widget.NewEntry()
	lengthEntry.SetText("120")

	widthEntry := widget.NewEntry()
	widthEntry.SetText("80")

	heightEntry := widget.NewEntry()
	heightEntry.SetText("144")

	weightEntry := widget.NewEntry()
	weightEntry.SetText("25")

	fragileCheck := widget.NewCheck("Fragile", nil)
	stackableCheck := widget.NewCheck("Stackable", nil)
	stackableCheck.SetChecked(true)

	form := dialog.NewForm("Add Item Template", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Length (cm)", lengthEntry),
			widget.NewFormItem("Width (cm)", widthEntry),
			widget.NewFormItem("Height (cm)", heightEntry),
			widget.NewFormItem("Weight (kg)", weightEntry),
			widget.NewFormItem("", fragileCheck),
			widget.NewFormItem("", stackableCheck),
		},
		func(ok bool) {
			if !ok {
				return
			}
			length, _ := strconv.ParseFloat(lengthEntry.Text, 64)
			width, _ := strconv.ParseFloat(widthEntry.Text, 64)
			height, _ := strconv.ParseFloat(heightEntry.Text, 64)
			weight, _ := strconv.ParseFloat(weightEntry.Text, 64)

			if length <= 0 || width <= 0 || height <= 0 {
				dialog.ShowError(fmt.Errorf("length, width, and height must be > 0"), a.window)
				return
			}

			tmpl := model.NewItemTemplate(nameEntry.Text, length, width, height, weight)
			tmpl.Fragile = fragileCheck.Checked
			tmpl.Stackable = stackableCheck.Checked
			a.inventory.Items = append(a.inventory.Items, tmpl)
			a.saveInventory()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 450))
	form.Show()
}

func (a *App) showEditItemTemplateDialog(idx int, onDone func()) {
	it := a.inventory.Items[idx]

	nameEntry := widget.NewEntry()
	nameEntry.SetText(it.Name)

	lengthEntry := widget.NewEntry()
	lengthEntry.SetText(fmt.Sprintf("%.1f", it.Length))

	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.1f", it.Width))

	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.1f", it.Height))

	weightEntry := widget.NewEntry()
	weightEntry.SetText(fmt.Sprintf("%.1f", it.Weight))

	fragileCheck := widget.NewCheck("Fragile", nil)
	fragileCheck.SetChecked(it.Fragile)
	stackableCheck := widget.NewCheck("Stackable", nil)
	stackableCheck.SetChecked(it.Stackable)

	form := dialog.NewForm("Edit Item Template", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Length (cm)", lengthEntry),
			widget.NewFormItem("Width (cm)", widthEntry),
			widget.NewFormItem("Height (cm)", heightEntry),
			widget.NewFormItem("Weight (kg)", weightEntry),
			widget.NewFormItem("", fragileCheck),
			widget.NewFormItem("", stackableCheck),
		},
		func(ok bool) {
			if !ok {
				return
			}
			a.inventory.Items[idx].Name = nameEntry.Text
			a.inventory.Items[idx].Length, _ = strconv.ParseFloat(lengthEntry.Text, 64)
			a.inventory.Items[idx].Width, _ = strconv.ParseFloat(widthEntry.Text, 64)
			a.inventory.Items[idx].Height, _ = strconv.ParseFloat(heightEntry.Text, 64)
			a.inventory.Items[idx].Weight, _ = strconv.ParseFloat(weightEntry.Text, 64)
			a.inventory.Items[idx].Fragile = fragileCheck.Checked
			a.inventory.Items[idx].Stackable = stackableCheck.Checked
			a.saveInventory()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 450))
	form.Show()
}

// ─── Truck Catalog Dialog ───────────────────────────────────

func (a *App) showTruckInventoryDialog() {
	truckList := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		truckList.RemoveAll()

		if len(a.inventory.Trucks) == 0 {
			truckList.Add(widget.NewLabel("No truck presets defined."))
			return
		}

		header := container.NewGridWithColumns(7,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("L x W x H", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Max Weight", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Base Cost", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Cost/km", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		)
		truckList.Add(header)
		truckList.Add(widget.NewSeparator())

		for i := range a.inventory.Trucks {
			idx := i
			tr := a.inventory.Trucks[idx]
			row := container.NewGridWithColumns(7,
				widget.NewLabel(tr.Name),
				widget.NewLabel(fmt.Sprintf("%.0fx%.0fx%.0f cm", tr.Length, tr.Width, tr.Height)),
				widget.NewLabel(fmt.Sprintf("%.0f kg", tr.MaxWeight)),
				widget.NewLabel(fmt.Sprintf("%.0f", tr.BaseCost)),
				widget.NewLabel(fmt.Sprintf("%.0f", tr.CostPerKm)),
				widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
					a.showEditTruckPresetDialog(idx, refreshList)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.inventory.Trucks = append(a.inventory.Trucks[:idx], a.inventory.Trucks[idx+1:]...)
					a.saveInventory()
					refreshList()
				}),
			)
			truckList.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Truck Preset", theme.ContentAddIcon(), func() {
		a.showAddTruckPresetDialog(refreshList)
	})

	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importInventory(refreshList)
	})

	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), func() {
		a.exportInventory()
	})

	toolbar := container.NewHBox(addBtn, layout.NewSpacer(), importBtn, exportBtn)

	content := container.NewBorder(
		toolbar,
		nil, nil, nil,
		container.NewVScroll(truckList),
	)

	d := dialog.NewCustom("Truck Catalog", "Close", content, a.window)
	d.Resize(fyne.NewSize(760, 500))
	d.Show()
}

func (a *App) showAddTruckPresetDialog(onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Truck preset name")
	nameEntry.SetText("New Flatbed")

	classEntry := widget.NewEntry()
	classEntry.SetPlaceHolder("e.g., van, 19t, 26t, 40t, lowbed")
	classEntry.SetText("19t")

	lengthEntry := widget.NewEntry()
	lengthEntry.SetText("720")

	widthEntry := widget.NewEntry()
	widthEntry.SetText("245")

	heightEntry := widget.NewEntry()
	heightEntry.SetText("240")

	maxWeightEntry := widget.NewEntry()
	maxWeightEntry.SetText("10000")

	baseCostEntry := widget.NewEntry()
	baseCostEntry.SetText("120000")

	costPerKmEntry := widget.NewEntry()
	costPerKmEntry.SetText("550")

	form := dialog.NewForm("Add Truck Preset", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Class", classEntry),
			widget.NewFormItem("Length (cm)", lengthEntry),
			widget.NewFormItem("Width (cm)", widthEntry),
			widget.NewFormItem("Height (cm)", heightEntry),
			widget.NewFormItem("Max Weight (kg)", maxWeightEntry),
			widget.NewFormItem("Base Cost", baseCostEntry),
			widget.NewFormItem("Cost per km", costPerKmEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			length, _ := strconv.ParseFloat(lengthEntry.Text, 64)
			width, _ := strconv.ParseFloat(widthEntry.Text, 64)
			height, _ := strconv.ParseFloat(heightEntry.Text, 64)
			maxWeight, _ := strconv.ParseFloat(maxWeightEntry.Text, 64)
			baseCost, _ := strconv.ParseFloat(baseCostEntry.Text, 64)
			costPerKm, _ := strconv.ParseFloat(costPerKmEntry.Text, 64)

			if length <= 0 || width <= 0 || height <= 0 || maxWeight <= 0 {
				dialog.ShowError(fmt.Errorf("length, width, height, and max weight must be > 0"), a.window)
				return
			}

			preset := model.NewTruckPreset(nameEntry.Text, classEntry.Text, length, width, height, maxWeight, baseCost, costPerKm)
			a.inventory.Trucks = append(a.inventory.Trucks, preset)
			a.saveInventory()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 480))
	form.Show()
}

func (a *App) showEditTruckPresetDialog(idx int, onDone func()) {
	tr := a.inventory.Trucks[idx]

	nameEntry := widget.NewEntry()
	nameEntry.SetText(tr.Name)

	classEntry := widget.NewEntry()
	classEntry.SetText(tr.Class)

	lengthEntry := widget.NewEntry()
	lengthEntry.SetText(fmt.Sprintf("%.0f", tr.Length))

	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.0f", tr.Width))

	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.0f", tr.Height))

	maxWeightEntry := widget.NewEntry()
	maxWeightEntry.SetText(fmt.Sprintf("%.0f", tr.MaxWeight))

	baseCostEntry := widget.NewEntry()
	baseCostEntry.SetText(fmt.Sprintf("%.0f", tr.BaseCost))

	costPerKmEntry := widget.NewEntry()
	costPerKmEntry.SetText(fmt.Sprintf("%.0f", tr.CostPerKm))

	form := dialog.NewForm("Edit Truck Preset", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Class", classEntry),
			widget.NewFormItem("Length (cm)", lengthEntry),
			widget.NewFormItem("Width (cm)", widthEntry),
			widget.NewFormItem("Height (cm)", heightEntry),
			widget.NewFormItem("Max Weight (kg)", maxWeightEntry),
			widget.NewFormItem("Base Cost", baseCostEntry),
			widget.NewFormItem("Cost per km", costPerKmEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			a.inventory.Trucks[idx].Name = nameEntry.Text
			a.inventory.Trucks[idx].Class = classEntry.Text
			a.inventory.Trucks[idx].Length, _ = strconv.ParseFloat(lengthEntry.Text, 64)
			a.inventory.Trucks[idx].Width, _ = strconv.ParseFloat(widthEntry.Text, 64)
			a.inventory.Trucks[idx].Height, _ = strconv.ParseFloat(heightEntry.Text, 64)
			a.inventory.Trucks[idx].MaxWeight, _ = strconv.ParseFloat(maxWeightEntry.Text, 64)
			a.inventory.Trucks[idx].BaseCost, _ = strconv.ParseFloat(baseCostEntry.Text, 64)
			a.inventory.Trucks[idx].CostPerKm, _ = strconv.ParseFloat(costPerKmEntry.Text, 64)
			a.saveInventory()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 480))
	form.Show()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importInventory(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		merged, err := project.ImportInventory(reader.URI().Path(), a.inventory)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		a.inventory = merged
		a.saveInventory()
		onDone()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Inventory now contains %d item templates and %d truck presets.",
				len(a.inventory.Items), len(a.inventory.Trucks)),
			a.window)
	}, a.window)
}

func (a *App) exportInventory() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		if err := project.ExportInventory(writer.URI().Path(), a.inventory); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Inventory exported to %s", writer.URI().Path()),
				a.window)
		}
	}, a.window)
	d.SetFileName("inventory.json")
	d.Show()
}

// ─── Inventory Integration Helpers ─────────────────────────

// saveInventory persists the current inventory to disk.
func (a *App) saveInventory() {
	if a.inventoryPath == "" {
		return
	}
	if err := project.SaveInventory(a.inventoryPath, a.inventory); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save inventory: %w", err), a.window)
	}
}

// showAddTruckFromInventory shows a picker to add a truck to the active
// project's catalog from the saved truck presets.
func (a *App) showAddTruckFromInventory() {
	if len(a.inventory.Trucks) == 0 {
		dialog.ShowInformation("No Presets",
			"No truck presets defined. Use Admin > Truck Catalog to add presets.",
			a.window)
		return
	}

	names := a.inventory.TruckNames()
	truckSelect := widget.NewSelect(names, nil)
	truckSelect.SetSelected(names[0])

	form := dialog.NewForm("Add from Catalog", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Truck Preset", truckSelect),
		},
		func(ok bool) {
			if !ok {
				return
			}
			preset := a.inventory.FindTruckByName(truckSelect.Selected)
			if preset == nil {
				return
			}
			a.project.Trucks = append(a.project.Trucks, preset.ToTruckSpecs())
			a.refreshTruckList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 180))
	form.Show()
}

// buildItemTemplateSelector creates a dropdown to quickly add a manifest
// item from a saved item template.
func (a *App) buildItemTemplateSelector() fyne.CanvasObject {
	names := a.inventory.ItemNames()
	if len(names) == 0 {
		return widget.NewLabel("No item templates. Use Admin > Item Templates to add some.")
	}

	itemSelect := widget.NewSelect(names, func(selected string) {
		for _, tmpl := range a.inventory.Items {
			if tmpl.Name == selected {
				a.project.Items = append(a.project.Items, tmpl.ToItem(1))
				a.refreshItemList()
				return
			}
		}
	})
	itemSelect.PlaceHolder = "Add from Item Template..."

	return itemSelect
}
