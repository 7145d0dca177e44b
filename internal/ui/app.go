package ui

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/cargoplan/loadplanner/internal/engine"
	"github.com/cargoplan/loadplanner/internal/export"
	"github.com/cargoplan/loadplanner/internal/fleet"
	itemimporter "github.com/cargoplan/loadplanner/internal/importer"
	"github.com/cargoplan/loadplanner/internal/model"
	"github.com/cargoplan/loadplanner/internal/project"
	"github.com/cargoplan/loadplanner/internal/tariff"
	"github.com/cargoplan/loadplanner/internal/ui/widgets"
)

// appVersion is the displayed application version string.
const appVersion = "loadplanner 0.1.0"

// App holds all application state and UI references.
type App struct {
	app     fyne.App
	window  fyne.Window
	project model.Project
	config  model.AppConfig
	tabs    *container.AppTabs
	history *History

	// Inventory management
	inventory     model.Inventory
	inventoryPath string

	// Template management
	templates model.TemplateStore

	// Tariff profiles (builtin + user-defined)
	customProfiles []tariff.Profile

	// Auto-optimization
	optimizeTimer *time.Timer
	optimizeMu    sync.Mutex

	// UI references for dynamic updates
	itemsContainer  *fyne.Container
	trucksContainer *fyne.Container
	resultBox       *fyne.Container
	statusLabel     *widget.Label
	settingsContainer *fyne.Container
	truckSelect     *widget.Select

	// Fleet suggestion tab
	fleetBox    *fyne.Container
	distanceKM  float64

	// Last single-truck optimization result, against the truck selected
	// by truckSelect.
	currentResult    *model.Result
	selectedTruckIdx int
}

// NewApp constructs the application state, loading persisted config,
// inventory, and templates from disk.
func NewApp(application fyne.App, window fyne.Window) *App {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		cfg = model.DefaultAppConfig()
	}

	proj := model.NewProject()
	cfg.ApplyToConfig(&proj.Config)

	a := &App{
		app:        application,
		window:     window,
		project:    proj,
		config:     cfg,
		history:    NewHistory(),
		distanceKM: 100,
	}
	a.loadCustomProfiles()
	a.loadInventory()
	a.loadTemplates()
	a.applyTheme()
	return a
}

// applyTheme sets the compact loadplanner theme with the configured light or
// dark variant; "system" and any other value select dark.
func (a *App) applyTheme() {
	var variant fyne.ThemeVariant
	switch a.config.Theme {
	case "light":
		variant = theme.VariantLight
	case "dark":
		variant = theme.VariantDark
	default:
		variant = theme.VariantDark
	}
	a.app.Settings().SetTheme(NewLoadPlannerThemeWithVariant(variant))
}

// loadInventory loads the item template and truck preset catalog from the default path.
func (a *App) loadInventory() {
	inv, path, err := project.LoadOrCreateInventory()
	if err != nil {
		fmt.Printf("Warning: could not load inventory: %v\n", err)
		a.inventory = model.DefaultInventory()
		return
	}
	a.inventory = inv
	a.inventoryPath = path
}

// loadTemplates loads project templates from disk on startup.
func (a *App) loadTemplates() {
	store, err := project.LoadDefaultTemplates()
	if err != nil {
		fmt.Printf("Warning: could not load templates: %v\n", err)
		a.templates = model.NewTemplateStore()
		return
	}
	a.templates = store
}

// loadCustomProfiles loads user-defined tariff profiles from disk on startup.
func (a *App) loadCustomProfiles() {
	profiles, err := tariff.LoadCustomProfilesFromDefault()
	if err != nil {
		fmt.Printf("Warning: failed to load custom tariff profiles: %v\n", err)
		return
	}
	a.customProfiles = profiles
}

// ─── Menus ──────────────────────────────────────────────────

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.saveState("New Project")
			a.project = model.NewProject()
			a.config.ApplyToConfig(&a.project.Config)
			a.refreshItemList()
			a.refreshTruckList()
			a.refreshResults()
		}),
		fyne.NewMenuItem("Open Project...", func() {
			a.loadProject()
		}),
		fyne.NewMenuItem("Save Project...", func() {
			a.saveProject()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Items from CSV...", func() {
			a.importCSV()
		}),
		fyne.NewMenuItem("Import Items from Excel...", func() {
			a.importExcel()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Load Plan...", func() {
			a.exportPDF()
		}),
		fyne.NewMenuItem("Export QR Labels...", func() {
			a.exportLabels()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Share Project...", func() {
			a.shareProject()
		}),
		fyne.NewMenuItem("Import Shared Project...", func() {
			a.importSharedProject()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			a.undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			a.redo()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Items", func() {
			a.saveState("Clear All Items")
			a.project.Items = nil
			a.refreshItemList()
			a.scheduleOptimize()
		}),
		fyne.NewMenuItem("Clear All Trucks", func() {
			a.saveState("Clear All Trucks")
			a.project.Trucks = nil
			a.refreshTruckList()
			a.scheduleOptimize()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Force Re-Optimize", func() {
			a.runOptimize()
		}),
		fyne.NewMenuItem("Suggest Fleet...", func() {
			a.runSuggestFleet()
		}),
	)

	adminMenu := fyne.NewMenu("Admin",
		fyne.NewMenuItem("Item Templates...", func() {
			a.showItemInventoryDialog()
		}),
		fyne.NewMenuItem("Truck Catalog...", func() {
			a.showTruckInventoryDialog()
		}),
		fyne.NewMenuItem("Project Templates...", func() {
			a.showTemplateManager()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Tariff Profiles...", func() {
			a.showTariffProfileManager()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import/Export Data...", func() {
			a.showImportExportDialog()
		}),
		fyne.NewMenuItem("Settings...", func() {
			a.showSettingsDialog()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, adminMenu, helpMenu)
	a.window.SetMainMenu(mainMenu)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About loadplanner",
		"loadplanner — 3D Cargo Load Planner\n\n"+
			"A cross-platform desktop application for packing manifests\n"+
			"into trucks and suggesting cost-efficient fleets.\n\n"+
			appVersion,
		a.window,
	)
}

// ─── Build ───────────────────────────────────────────────────

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	planTab := container.NewTabItem("Load Plan", a.buildLoadPlanTab())
	fleetTab := container.NewTabItem("Fleet Suggestions", a.buildFleetTab())

	a.tabs = container.NewAppTabs(planTab, fleetTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	a.registerShortcuts()

	a.statusLabel = widget.NewLabel("No optimization yet")

	versionLabel := widget.NewLabelWithStyle(
		appVersion,
		fyne.TextAlignLeading,
		fyne.TextStyle{Italic: true},
	)

	exportPDFBtn := widget.NewButtonWithIcon("Export PDF", theme.DocumentSaveIcon(), func() {
		a.exportPDF()
	})
	exportLabelsBtn := widget.NewButtonWithIcon("Export Labels", theme.DocumentSaveIcon(), func() {
		a.exportLabels()
	})

	statusBar := container.NewHBox(
		versionLabel,
		layout.NewSpacer(),
		a.statusLabel,
		layout.NewSpacer(),
		exportPDFBtn,
		exportLabelsBtn,
	)

	return container.NewBorder(nil, statusBar, nil, nil, a.tabs)
}

// buildLoadPlanTab creates the three-pane Load Plan tab.
func (a *App) buildLoadPlanTab() fyne.CanvasObject {
	leftPanel := a.buildQuickSettingsPanel()
	centerPanel := a.buildCenterPanel()
	rightPanel := a.buildItemsTrucksPanel()

	leftCenter := container.NewHSplit(leftPanel, centerPanel)
	leftCenter.SetOffset(0.22)

	threePanes := container.NewHSplit(leftCenter, rightPanel)
	threePanes.SetOffset(0.75)

	return threePanes
}

// ─── Left Panel: Planner Settings ───────────────────────────

func (a *App) buildQuickSettingsPanel() fyne.CanvasObject {
	c := &a.project.Config

	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%.2f", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
				a.scheduleOptimize()
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
				a.scheduleOptimize()
			}
		}
		return e
	}

	algorithmSelect := widget.NewSelect([]string{"Constructive (Fast)", "Genetic Algorithm (Better)"}, func(selected string) {
		switch selected {
		case "Genetic Algorithm (Better)":
			c.Algorithm = "genetic"
		default:
			c.Algorithm = "simple"
		}
		a.scheduleOptimize()
	})
	switch c.Algorithm {
	case "simple":
		algorithmSelect.SetSelected("Constructive (Fast)")
	default:
		algorithmSelect.SetSelected("Genetic Algorithm (Better)")
	}

	populationEntry := intEntry(&c.PopulationSize)
	generationsEntry := intEntry(&c.Generations)
	mutationEntry := floatEntry(&c.MutationRate)
	crossoverEntry := floatEntry(&c.CrossoverRate)
	elitismEntry := floatEntry(&c.ElitismRate)
	timeoutEntry := intEntry(&c.TimeoutSeconds)

	algorithmContent := container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Algorithm"), algorithmSelect,
			widget.NewLabel("Population Size"), populationEntry,
			widget.NewLabel("Generations"), generationsEntry,
			widget.NewLabel("Mutation Rate"), mutationEntry,
			widget.NewLabel("Crossover Rate"), crossoverEntry,
			widget.NewLabel("Elitism Rate"), elitismEntry,
			widget.NewLabel("Timeout (s)"), timeoutEntry,
		),
	)

	clearanceEntry := floatEntry(&c.ClearanceCM)
	supportEntry := floatEntry(&c.MinSupportRatio)
	heightRatioEntry := floatEntry(&c.MaxHeightRatio)
	gridStepEntry := intEntry(&c.GridStepCM)

	rotationCheck := widget.NewCheck("Allow Rotation", func(b bool) {
		c.AllowRotation = b
		a.scheduleOptimize()
	})
	rotationCheck.Checked = c.AllowRotation

	packingContent := container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Clearance (cm)"), clearanceEntry,
			widget.NewLabel("Min Support Ratio"), supportEntry,
			widget.NewLabel("Max Height Ratio"), heightRatioEntry,
			widget.NewLabel("Grid Step (cm)"), gridStepEntry,
		),
		rotationCheck,
	)

	distanceEntry := widget.NewEntry()
	distanceEntry.SetText(fmt.Sprintf("%.0f", a.distanceKM))
	distanceEntry.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil && v >= 0 {
			a.distanceKM = v
		}
	}

	logisticsContent := container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Route Distance (km)"), distanceEntry,
		),
	)

	algorithmItem := widget.NewAccordionItem("Algorithm", algorithmContent)
	packingItem := widget.NewAccordionItem("Packing", packingContent)
	logisticsItem := widget.NewAccordionItem("Logistics", logisticsContent)

	accordion := widget.NewAccordion(algorithmItem, packingItem, logisticsItem)
	accordion.MultiOpen = true
	accordion.Open(0)
	accordion.Open(1)
	accordion.Open(2)

	a.settingsContainer = container.NewVBox(accordion)

	return container.NewBorder(nil, nil, nil, nil, container.NewVScroll(a.settingsContainer))
}

// ─── Center Panel: Truck Bay Result View ────────────────────

func (a *App) buildCenterPanel() fyne.CanvasObject {
	truckNames := func() []string {
		names := make([]string, len(a.project.Trucks))
		for i, t := range a.project.Trucks {
			names[i] = t.Name
		}
		return names
	}

	a.truckSelect = widget.NewSelect(truckNames(), func(selected string) {
		for i, t := range a.project.Trucks {
			if t.Name == selected {
				a.selectedTruckIdx = i
				a.scheduleOptimize()
				return
			}
		}
	})
	a.truckSelect.PlaceHolder = "Select a truck to load..."

	a.resultBox = container.NewStack(
		widget.NewLabel("Add items and a truck, then select the truck above."),
	)

	topBar := container.NewHBox(widget.NewLabel("Truck:"), a.truckSelect)

	return container.NewBorder(topBar, nil, nil, nil, container.NewVScroll(a.resultBox))
}

// refreshTruckSelect keeps the truck dropdown synced with the catalog.
func (a *App) refreshTruckSelect() {
	if a.truckSelect == nil {
		return
	}
	names := make([]string, len(a.project.Trucks))
	for i, t := range a.project.Trucks {
		names[i] = t.Name
	}
	a.truckSelect.Options = names
	if a.selectedTruckIdx >= len(names) {
		a.selectedTruckIdx = 0
	}
	if len(names) > 0 {
		a.truckSelect.SetSelected(names[a.selectedTruckIdx])
	} else {
		a.truckSelect.ClearSelected()
	}
	a.truckSelect.Refresh()
}

// ─── Right Panel: Items + Trucks ────────────────────────────

func (a *App) buildItemsTrucksPanel() fyne.CanvasObject {
	a.itemsContainer = container.NewVBox()
	a.trucksContainer = container.NewVBox()
	a.refreshItemList()
	a.refreshTruckList()

	// --- Items Quick-Add ---
	qaRef := widget.NewEntry()
	qaRef.SetPlaceHolder("Reference")
	qaLength := widget.NewEntry()
	qaLength.SetPlaceHolder("L")
	qaWidth := widget.NewEntry()
	qaWidth.SetPlaceHolder("W")
	qaHeight := widget.NewEntry()
	qaHeight.SetPlaceHolder("H")
	qaWeight := widget.NewEntry()
	qaWeight.SetPlaceHolder("Wt")
	qaQty := widget.NewEntry()
	qaQty.SetPlaceHolder("Qty")
	qaQty.SetText("1")

	doItemAdd := func() {
		ref := qaRef.Text
		if ref == "" {
			ref = fmt.Sprintf("Item %d", len(a.project.Items)+1)
		}
		l := parseFloat(qaLength.Text)
		w := parseFloat(qaWidth.Text)
		h := parseFloat(qaHeight.Text)
		wt := parseFloat(qaWeight.Text)
		if l <= 0 || w <= 0 || h <= 0 {
			dialog.ShowError(fmt.Errorf("length, width, and height must be positive numbers"), a.window)
			return
		}
		q := parseInt(qaQty.Text)
		if q <= 0 {
			q = 1
		}
		a.saveState("Quick Add Item")
		a.project.Items = append(a.project.Items, model.NewItem(ref, l, w, h, wt, q))
		a.refreshItemList()
		qaRef.SetText("")
		qaLength.SetText("")
		qaWidth.SetText("")
		qaHeight.SetText("")
		qaWeight.SetText("")
		qaQty.SetText("1")
		a.window.Canvas().Focus(qaLength)
		a.scheduleOptimize()
	}

	qaRef.OnSubmitted = func(_ string) { doItemAdd() }
	qaLength.OnSubmitted = func(_ string) { doItemAdd() }
	qaWidth.OnSubmitted = func(_ string) { doItemAdd() }
	qaHeight.OnSubmitted = func(_ string) { doItemAdd() }
	qaWeight.OnSubmitted = func(_ string) { doItemAdd() }
	qaQty.OnSubmitted = func(_ string) { doItemAdd() }

	itemAddBtn := newEnterButton(theme.ContentAddIcon(), doItemAdd)

	itemQuickAdd := container.NewVBox(
		container.NewBorder(nil, nil, nil, itemAddBtn, qaRef),
		container.NewGridWithColumns(5, qaLength, qaWidth, qaHeight, qaWeight, qaQty),
	)

	addItemMenuBtn := widget.NewButton("More...", nil)
	addItemMenu := fyne.NewMenu("",
		fyne.NewMenuItem("Add Item (detailed)...", func() {
			a.showAddItemDialog()
		}),
	)
	addItemMenuBtn.OnTapped = func() {
		pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(addItemMenuBtn)
		pos.Y += addItemMenuBtn.Size().Height
		widget.ShowPopUpMenuAtPosition(addItemMenu, a.window.Canvas(), pos)
	}

	itemTemplateSelector := a.buildItemTemplateSelector()

	itemsHeader := container.NewHBox(
		widget.NewLabelWithStyle(fmt.Sprintf("Items (%d)", len(a.project.Items)),
			fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		addItemMenuBtn,
	)

	itemsContent := container.NewVBox(
		itemsHeader,
		itemQuickAdd,
		itemTemplateSelector,
		widget.NewSeparator(),
		container.NewVScroll(a.itemsContainer),
	)

	// --- Trucks Quick-Add ---
	tqaName := widget.NewEntry()
	tqaName.SetPlaceHolder("Name")
	tqaName.SetText("Box Truck")
	tqaLength := widget.NewEntry()
	tqaLength.SetPlaceHolder("L")
	tqaWidth := widget.NewEntry()
	tqaWidth.SetPlaceHolder("W")
	tqaHeight := widget.NewEntry()
	tqaHeight.SetPlaceHolder("H")
	tqaMaxWeight := widget.NewEntry()
	tqaMaxWeight.SetPlaceHolder("Max Wt")

	doTruckAdd := func() {
		name := tqaName.Text
		if name == "" {
			name = fmt.Sprintf("Truck %d", len(a.project.Trucks)+1)
		}
		l := parseFloat(tqaLength.Text)
		w := parseFloat(tqaWidth.Text)
		h := parseFloat(tqaHeight.Text)
		maxW := parseFloat(tqaMaxWeight.Text)
		if l <= 0 || w <= 0 || h <= 0 || maxW <= 0 {
			dialog.ShowError(fmt.Errorf("length, width, height, and max weight must be positive numbers"), a.window)
			return
		}
		a.saveState("Quick Add Truck")
		a.project.Trucks = append(a.project.Trucks, model.NewTruckSpecs(name, l, w, h, maxW))
		a.refreshTruckList()
		tqaName.SetText("")
		tqaLength.SetText("")
		tqaWidth.SetText("")
		tqaHeight.SetText("")
		tqaMaxWeight.SetText("")
		a.window.Canvas().Focus(tqaLength)
		a.scheduleOptimize()
	}

	tqaName.OnSubmitted = func(_ string) { doTruckAdd() }
	tqaLength.OnSubmitted = func(_ string) { doTruckAdd() }
	tqaWidth.OnSubmitted = func(_ string) { doTruckAdd() }
	tqaHeight.OnSubmitted = func(_ string) { doTruckAdd() }
	tqaMaxWeight.OnSubmitted = func(_ string) { doTruckAdd() }

	truckAddBtn := newEnterButton(theme.ContentAddIcon(), doTruckAdd)

	truckQuickAdd := container.NewVBox(
		container.NewBorder(nil, nil, nil, truckAddBtn, tqaName),
		container.NewGridWithColumns(4, tqaLength, tqaWidth, tqaHeight, tqaMaxWeight),
	)

	addTruckMenuBtn := widget.NewButton("More...", nil)
	addTruckMenu := fyne.NewMenu("",
		fyne.NewMenuItem("Add Truck (detailed)...", func() {
			a.showAddTruckDialog()
		}),
		fyne.NewMenuItem("Add from Catalog...", func() {
			a.showAddTruckFromInventory()
		}),
	)
	addTruckMenuBtn.OnTapped = func() {
		pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(addTruckMenuBtn)
		pos.Y += addTruckMenuBtn.Size().Height
		widget.ShowPopUpMenuAtPosition(addTruckMenu, a.window.Canvas(), pos)
	}

	trucksHeader := container.NewHBox(
		widget.NewLabelWithStyle(fmt.Sprintf("Trucks (%d)", len(a.project.Trucks)),
			fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		addTruckMenuBtn,
	)

	trucksContent := container.NewVBox(
		trucksHeader,
		truckQuickAdd,
		widget.NewSeparator(),
		container.NewVScroll(a.trucksContainer),
	)

	itemsItem := widget.NewAccordionItem("Items", itemsContent)
	trucksItem := widget.NewAccordionItem("Trucks", trucksContent)
	rightAccordion := widget.NewAccordion(itemsItem, trucksItem)
	rightAccordion.MultiOpen = true
	rightAccordion.Open(0)
	rightAccordion.Open(1)

	return container.NewVScroll(rightAccordion)
}

// refreshItemList rebuilds the item card list in the right panel.
func (a *App) refreshItemList() {
	if a.itemsContainer == nil {
		return
	}
	a.itemsContainer.RemoveAll()

	if len(a.project.Items) == 0 {
		a.itemsContainer.Add(widget.NewLabel("No items added yet."))
		return
	}

	for i := range a.project.Items {
		idx := i
		it := a.project.Items[idx]

		nameLabel := widget.NewLabelWithStyle(it.Reference, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

		detailText := fmt.Sprintf("%.0f x %.0f x %.0f cm  %.0f kg  x%d", it.Length, it.Width, it.Height, it.Weight, it.Quantity)
		if it.Fragile {
			detailText += "  [fragile]"
		}
		if !it.Stackable {
			detailText += "  [no stack]"
		}
		detailLabel := widget.NewLabel(detailText)

		editBtn := newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit Item", func() {
			a.showEditItemDialog(idx)
		})
		deleteBtn := newIconButtonWithTooltip(theme.DeleteIcon(), "Delete Item", func() {
			a.saveState("Delete Item")
			a.project.Items = append(a.project.Items[:idx], a.project.Items[idx+1:]...)
			a.refreshItemList()
			a.scheduleOptimize()
		})
		saveBtn := newIconButtonWithTooltip(theme.DownloadIcon(), "Save as Template", func() {
			tmpl := model.NewItemTemplate(it.Reference, it.Length, it.Width, it.Height, it.Weight)
			tmpl.Fragile = it.Fragile
			tmpl.Stackable = it.Stackable
			a.inventory.Items = append(a.inventory.Items, tmpl)
			a.saveInventory()
			dialog.ShowInformation("Saved", fmt.Sprintf("%q added to item templates.", it.Reference), a.window)
		})

		buttons := container.NewHBox(editBtn, saveBtn, deleteBtn)
		topRow := container.NewBorder(nil, nil, nil, buttons, nameLabel)

		card := container.NewVBox(topRow, detailLabel, widget.NewSeparator())
		a.itemsContainer.Add(card)
	}
}

// refreshTruckList rebuilds the truck card list in the right panel.
func (a *App) refreshTruckList() {
	if a.trucksContainer == nil {
		return
	}
	a.trucksContainer.RemoveAll()

	if len(a.project.Trucks) == 0 {
		a.trucksContainer.Add(widget.NewLabel("No trucks defined."))
		a.refreshTruckSelect()
		return
	}

	for i := range a.project.Trucks {
		idx := i
		t := a.project.Trucks[idx]

		nameLabel := widget.NewLabelWithStyle(t.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

		detailText := fmt.Sprintf("%.0f x %.0f x %.0f cm  max %.0f kg", t.Length, t.Width, t.Height, t.MaxWeight)
		if t.BaseCost > 0 {
			detailText += fmt.Sprintf("  base %.0f + %.0f/km", t.BaseCost, t.CostPerKm)
		}
		detailLabel := widget.NewLabel(detailText)

		editBtn := newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit Truck", func() {
			a.showEditTruckDialog(idx)
		})
		deleteBtn := newIconButtonWithTooltip(theme.DeleteIcon(), "Delete Truck", func() {
			a.saveState("Delete Truck")
			a.project.Trucks = append(a.project.Trucks[:idx], a.project.Trucks[idx+1:]...)
			a.refreshTruckList()
			a.scheduleOptimize()
		})

		buttons := container.NewHBox(editBtn, deleteBtn)
		topRow := container.NewBorder(nil, nil, nil, buttons, nameLabel)

		card := container.NewVBox(topRow, detailLabel, widget.NewSeparator())
		a.trucksContainer.Add(card)
	}

	a.refreshTruckSelect()
}

// ─── Fleet Suggestions Tab ──────────────────────────────────

func (a *App) buildFleetTab() fyne.CanvasObject {
	a.fleetBox = container.NewVBox(
		container.NewCenter(widget.NewLabel("Add items and trucks, then click Suggest Fleet.")),
	)

	suggestBtn := widget.NewButtonWithIcon("Suggest Fleet", theme.ViewRefreshIcon(), func() {
		a.runSuggestFleet()
	})
	suggestBtn.Importance = widget.HighImportance

	topBar := container.NewHBox(suggestBtn, layout.NewSpacer())

	return container.NewBorder(topBar, nil, nil, nil, container.NewVScroll(a.fleetBox))
}

// runSuggestFleet runs the fleet partitioner over the current manifest
// and truck catalog and renders the resulting scenarios.
func (a *App) runSuggestFleet() {
	if len(a.project.Items) == 0 {
		dialog.ShowInformation("Nothing to plan", "Add at least one item first.", a.window)
		return
	}
	if len(a.project.Trucks) == 0 {
		dialog.ShowInformation("No trucks", "Add at least one truck to the catalog first.", a.window)
		return
	}

	scenarios := fleet.SuggestFleet(a.project.Items, a.project.Trucks, a.distanceKM)
	a.renderFleetScenarios(scenarios)
}

func (a *App) renderFleetScenarios(scenarios []fleet.Scenario) {
	a.fleetBox.RemoveAll()

	for _, s := range scenarios {
		title := s.Name
		if s.Recommended {
			title += "  (recommended)"
		}
		header := widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

		costText := "no feasible cost estimate"
		if s.TotalCost != nil {
			costText = fmt.Sprintf("total cost: %.0f", *s.TotalCost)
		}
		summary := widget.NewLabel(fmt.Sprintf("%d bucket(s), %s", len(s.Buckets), costText))

		bucketRows := container.NewVBox()
		for i, b := range s.Buckets {
			if b.Exception {
				bucketRows.Add(widget.NewLabel(fmt.Sprintf("Unserved: %s (%d item(s))", b.Reason, len(b.Items))))
				continue
			}
			bucketRows.Add(widget.NewLabel(fmt.Sprintf(
				"Truck %d: %s — %d item(s), weight fill %.0f%%, volume fill %.0f%%, floor fill %.0f%%",
				i+1, b.Truck.Name, len(b.Items),
				b.Metrics.FillWeightPct, b.Metrics.FillVolumePct, b.Metrics.FillFloorPct,
			)))
		}

		card := widget.NewCard("", "", container.NewVBox(header, summary, widget.NewSeparator(), bucketRows))
		a.fleetBox.Add(card)
	}
}

// ─── Auto-Optimize ──────────────────────────────────────────

// scheduleOptimize debounces optimization with a 500ms delay.
func (a *App) scheduleOptimize() {
	a.optimizeMu.Lock()
	defer a.optimizeMu.Unlock()
	if a.optimizeTimer != nil {
		a.optimizeTimer.Stop()
	}
	a.optimizeTimer = time.AfterFunc(500*time.Millisecond, func() {
		fyne.Do(a.runAutoOptimize)
	})
}

// runAutoOptimize runs the optimizer in a goroutine and updates the UI on the main thread.
func (a *App) runAutoOptimize() {
	if len(a.project.Items) == 0 || a.selectedTruckIdx >= len(a.project.Trucks) {
		a.currentResult = nil
		a.updateStatusBar()
		a.refreshResultView()
		return
	}

	if a.statusLabel != nil {
		a.statusLabel.SetText("Optimizing...")
	}

	truck := a.project.Trucks[a.selectedTruckIdx]
	items := a.project.Items
	cfg := a.project.Config

	go func() {
		result, err := engine.Optimize(items, truck, cfg)
		fyne.Do(func() {
			if err != nil {
				a.statusLabel.SetText(fmt.Sprintf("Optimization failed: %v", err))
				return
			}
			a.currentResult = &result
			a.updateStatusBar()
			a.refreshResultView()
		})
	}()
}

// updateStatusBar updates the status label with optimization summary.
func (a *App) updateStatusBar() {
	if a.statusLabel == nil {
		return
	}
	if a.currentResult == nil {
		a.statusLabel.SetText("No optimization yet")
		return
	}
	r := a.currentResult
	text := fmt.Sprintf("%s: %d/%d placed, %.1f%% weight, %.1f%% volume",
		r.TruckSpecs.Name, r.ItemsPlaced, r.ItemsTotal, r.WeightEfficiency, r.VolumeEfficiency)
	if len(r.UnplacedItemIDs) > 0 {
		text += fmt.Sprintf(" | %d unplaced!", len(r.UnplacedItemIDs))
	}
	a.statusLabel.SetText(text)
}

// refreshResultView rebuilds the center bay canvas from the current result.
func (a *App) refreshResultView() {
	if a.resultBox == nil {
		return
	}
	a.resultBox.RemoveAll()
	a.resultBox.Add(widgets.RenderResult(a.currentResult))
	a.resultBox.Refresh()
}

// refreshResults is a compatibility shim that triggers all UI updates
// after bulk project changes (e.g., loading a project).
func (a *App) refreshResults() {
	a.updateStatusBar()
	a.refreshResultView()
}

// ─── History (Undo/Redo) ────────────────────────────────────

// saveState captures the current project state before a modification.
func (a *App) saveState(label string) {
	a.history.Push(MakeSnapshot(a.project.Items, a.project.Trucks, label))
}

// undo restores the previous state from the undo stack.
func (a *App) undo() {
	current := MakeSnapshot(a.project.Items, a.project.Trucks, "current")
	snap, ok := a.history.Undo(current)
	if !ok {
		return
	}
	a.project.Items = snap.Items
	a.project.Trucks = snap.Trucks
	a.refreshItemList()
	a.refreshTruckList()
	a.scheduleOptimize()
}

// redo restores the next state from the redo stack.
func (a *App) redo() {
	current := MakeSnapshot(a.project.Items, a.project.Trucks, "current")
	snap, ok := a.history.Redo(current)
	if !ok {
		return
	}
	a.project.Items = snap.Items
	a.project.Trucks = snap.Trucks
	a.refreshItemList()
	a.refreshTruckList()
	a.scheduleOptimize()
}

// registerShortcuts adds keyboard shortcuts for undo and redo.
func (a *App) registerShortcuts() {
	canvas := a.window.Canvas()
	canvas.AddShortcut(&fyne.ShortcutUndo{}, func(_ fyne.Shortcut) {
		a.undo()
	})
	canvas.AddShortcut(&fyne.ShortcutRedo{}, func(_ fyne.Shortcut) {
		a.redo()
	})
}

// ─── Helpers ────────────────────────────────────────────────

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

// enterButton is a button that also responds to Enter/Return key when focused.
type enterButton struct {
	widget.Button
}

func newEnterButton(icon fyne.Resource, tapped func()) *enterButton {
	b := &enterButton{}
	b.SetIcon(icon)
	b.OnTapped = tapped
	b.ExtendBaseWidget(b)
	return b
}

func (b *enterButton) TypedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyReturn || ev.Name == fyne.KeyEnter {
		if b.OnTapped != nil {
			b.OnTapped()
		}
		return
	}
	b.Button.TypedKey(ev)
}

// ─── Item Dialogs ───────────────────────────────────────────

func (a *App) showAddItemDialog() {
	refEntry := widget.NewEntry()
	refEntry.SetText(fmt.Sprintf("Item %d", len(a.project.Items)+1))

	lengthEntry := widget.NewEntry()
	lengthEntry.SetPlaceHolder("Length in cm")

	widthEntry := widget.NewEntry()
	widthEntry.SetPlaceHolder("Width in cm")

	heightEntry := widget.NewEntry()
	heightEntry.SetPlaceHolder("Height in cm")

	weightEntry := widget.NewEntry()
	weightEntry.SetPlaceHolder("Weight in kg")

	qtyEntry := widget.NewEntry()
	qtyEntry.SetText("1")

	fragileCheck := widget.NewCheck("Fragile", nil)
	stackableCheck := widget.NewCheck("Stackable", nil)
	stackableCheck.SetChecked(true)

	form := dialog.NewForm("Add Item", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Reference", refEntry),
			widget.NewFormItem("Length (cm)", lengthEntry),
			widget.NewFormItem("Width (cm)", widthEntry),
			widget.NewFormItem("Height (cm)", heightEntry),
			widget.NewFormItem("Weight (kg)", weightEntry),
			widget.NewFormItem("Quantity", qtyEntry),
			widget.NewFormItem("", fragileCheck),
			widget.NewFormItem("", stackableCheck),
		},
		func(ok bool) {
			if !ok {
				return
			}
			l, _ := strconv.ParseFloat(lengthEntry.Text, 64)
			w, _ := strconv.ParseFloat(widthEntry.Text, 64)
			h, _ := strconv.ParseFloat(heightEntry.Text, 64)
			wt, _ := strconv.ParseFloat(weightEntry.Text, 64)
			q, _ := strconv.Atoi(qtyEntry.Text)
			if l <= 0 || w <= 0 || h <= 0 || q <= 0 {
				dialog.ShowError(fmt.Errorf("length, width, height, and quantity must be > 0"), a.window)
				return
			}

			item := model.NewItem(refEntry.Text, l, w, h, wt, q)
			item.Fragile = fragileCheck.Checked
			item.Stackable = stackableCheck.Checked

			a.saveState("Add Item")
			a.project.Items = append(a.project.Items, item)
			a.refreshItemList()
			a.scheduleOptimize()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 440))
	form.Show()
}

func (a *App) showEditItemDialog(idx int) {
	it := a.project.Items[idx]

	refEntry := widget.NewEntry()
	refEntry.SetText(it.Reference)

	lengthEntry := widget.NewEntry()
	lengthEntry.SetText(fmt.Sprintf("%.1f", it.Length))

	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.1f", it.Width))

	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.1f", it.Height))

	weightEntry := widget.NewEntry()
	weightEntry.SetText(fmt.Sprintf("%.1f", it.Weight))

	qtyEntry := widget.NewEntry()
	qtyEntry.SetText(fmt.Sprintf("%d", it.Quantity))

	fragileCheck := widget.NewCheck("Fragile", nil)
	fragileCheck.SetChecked(it.Fragile)
	stackableCheck := widget.NewCheck("Stackable", nil)
	stackableCheck.SetChecked(it.Stackable)

	form := dialog.NewForm("Edit Item", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Reference", refEntry),
			widget.NewFormItem("Length (cm)", lengthEntry),
			widget.NewFormItem("Width (cm)", widthEntry),
			widget.NewFormItem("Height (cm)", heightEntry),
			widget.NewFormItem("Weight (kg)", weightEntry),
			widget.NewFormItem("Quantity", qtyEntry),
			widget.NewFormItem("", fragileCheck),
			widget.NewFormItem("", stackableCheck),
		},
		func(ok bool) {
			if !ok {
				return
			}
			l, _ := strconv.ParseFloat(lengthEntry.Text, 64)
			w, _ := strconv.ParseFloat(widthEntry.Text, 64)
			h, _ := strconv.ParseFloat(heightEntry.Text, 64)
			q, _ := strconv.Atoi(qtyEntry.Text)
			if l <= 0 || w <= 0 || h <= 0 || q <= 0 {
				dialog.ShowError(fmt.Errorf("length, width, height, and quantity must be > 0"), a.window)
				return
			}

			a.saveState("Edit Item")
			a.project.Items[idx].Reference = refEntry.Text
			a.project.Items[idx].Length = l
			a.project.Items[idx].Width = w
			a.project.Items[idx].Height = h
			a.project.Items[idx].Weight, _ = strconv.ParseFloat(weightEntry.Text, 64)
			a.project.Items[idx].Quantity = q
			a.project.Items[idx].Fragile = fragileCheck.Checked
			a.project.Items[idx].Stackable = stackableCheck.Checked
			a.refreshItemList()
			a.scheduleOptimize()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 440))
	form.Show()
}

// ─── Truck Dialogs ──────────────────────────────────────────

func (a *App) showAddTruckDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(fmt.Sprintf("Truck %d", len(a.project.Trucks)+1))

	lengthEntry := widget.NewEntry()
	lengthEntry.SetText("600")

	widthEntry := widget.NewEntry()
	widthEntry.SetText("240")

	heightEntry := widget.NewEntry()
	heightEntry.SetText("250")

	maxWeightEntry := widget.NewEntry()
	maxWeightEntry.SetText("5000")

	baseCostEntry := widget.NewEntry()
	baseCostEntry.SetText("0")

	costPerKmEntry := widget.NewEntry()
	costPerKmEntry.SetText("0")

	form := dialog.NewForm("Add Truck", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
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
			l, _ := strconv.ParseFloat(lengthEntry.Text, 64)
			w, _ := strconv.ParseFloat(widthEntry.Text, 64)
			h, _ := strconv.ParseFloat(heightEntry.Text, 64)
			maxW, _ := strconv.ParseFloat(maxWeightEntry.Text, 64)
			if l <= 0 || w <= 0 || h <= 0 || maxW <= 0 {
				dialog.ShowError(fmt.Errorf("length, width, height, and max weight must be > 0"), a.window)
				return
			}

			truck := model.NewTruckSpecs(nameEntry.Text, l, w, h, maxW)
			truck.BaseCost, _ = strconv.ParseFloat(baseCostEntry.Text, 64)
			truck.CostPerKm, _ = strconv.ParseFloat(costPerKmEntry.Text, 64)

			a.saveState("Add Truck")
			a.project.Trucks = append(a.project.Trucks, truck)
			a.refreshTruckList()
			a.scheduleOptimize()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 460))
	form.Show()
}

func (a *App) showEditTruckDialog(idx int) {
	t := a.project.Trucks[idx]

	nameEntry := widget.NewEntry()
	nameEntry.SetText(t.Name)

	lengthEntry := widget.NewEntry()
	lengthEntry.SetText(fmt.Sprintf("%.0f", t.Length))

	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.0f", t.Width))

	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.0f", t.Height))

	maxWeightEntry := widget.NewEntry()
	maxWeightEntry.SetText(fmt.Sprintf("%.0f", t.MaxWeight))

	baseCostEntry := widget.NewEntry()
	baseCostEntry.SetText(fmt.Sprintf("%.0f", t.BaseCost))

	costPerKmEntry := widget.NewEntry()
	costPerKmEntry.SetText(fmt.Sprintf("%.0f", t.CostPerKm))

	form := dialog.NewForm("Edit Truck", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
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
			l, _ := strconv.ParseFloat(lengthEntry.Text, 64)
			w, _ := strconv.ParseFloat(widthEntry.Text, 64)
			h, _ := strconv.ParseFloat(heightEntry.Text, 64)
			maxW, _ := strconv.ParseFloat(maxWeightEntry.Text, 64)
			if l <= 0 || w <= 0 || h <= 0 || maxW <= 0 {
				dialog.ShowError(fmt.Errorf("length, width, height, and max weight must be > 0"), a.window)
				return
			}

			a.saveState("Edit Truck")
			a.project.Trucks[idx].Name = nameEntry.Text
			a.project.Trucks[idx].Length = l
			a.project.Trucks[idx].Width = w
			a.project.Trucks[idx].Height = h
			a.project.Trucks[idx].MaxWeight = maxW
			a.project.Trucks[idx].BaseCost, _ = strconv.ParseFloat(baseCostEntry.Text, 64)
			a.project.Trucks[idx].CostPerKm, _ = strconv.ParseFloat(costPerKmEntry.Text, 64)
			a.refreshTruckList()
			a.scheduleOptimize()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 460))
	form.Show()
}

// ─── Actions ─────────────────────────────────────────────────

func (a *App) runOptimize() {
	if len(a.project.Items) == 0 {
		dialog.ShowInformation("Nothing to optimize", "Add at least one item first.", a.window)
		return
	}
	if a.selectedTruckIdx >= len(a.project.Trucks) {
		dialog.ShowInformation("No truck selected", "Add and select a truck first.", a.window)
		return
	}

	truck := a.project.Trucks[a.selectedTruckIdx]
	result, err := engine.Optimize(a.project.Items, truck, a.project.Config)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.currentResult = &result
	a.refreshResults()

	if len(result.UnplacedItemIDs) > 0 {
		dialog.ShowInformation("Unplaced Items",
			fmt.Sprintf("%d item(s) could not be placed in %s. Try a larger truck or enable the genetic algorithm.",
				len(result.UnplacedItemIDs), truck.Name),
			a.window)
	}
}

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.SaveProject(path, a.project); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName(a.project.Name + ".loadplan")
	d.Show()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		proj, err := project.LoadProject(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.saveState("Load Project")
		a.project = proj
		a.selectedTruckIdx = 0
		a.refreshItemList()
		a.refreshTruckList()
		a.refreshResults()
	}, a.window)
	d.Show()
}

func (a *App) exportPDF() {
	if a.currentResult == nil || len(a.currentResult.Placements) == 0 {
		dialog.ShowInformation("No results", "Run the optimizer first before exporting a PDF.", a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if exportErr := export.ExportPDF(path, *a.currentResult); exportErr != nil {
			dialog.ShowError(exportErr, a.window)
		} else {
			dialog.ShowInformation("Export Complete", fmt.Sprintf("PDF saved to %s", path), a.window)
		}
	}, a.window)
	d.SetFileName("load-plan.pdf")
	d.Show()
}

func (a *App) exportLabels() {
	if a.currentResult == nil || len(a.currentResult.Placements) == 0 {
		dialog.ShowInformation("No results", "Run the optimizer first before generating labels.", a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if exportErr := export.ExportLabels(path, *a.currentResult); exportErr != nil {
			dialog.ShowError(exportErr, a.window)
		} else {
			dialog.ShowInformation("Export Complete", fmt.Sprintf("QR code labels saved to %s", path), a.window)
		}
	}, a.window)
	d.SetFileName("item-labels.pdf")
	d.Show()
}

// ─── Sharing Functions ──────────────────────────────────────

func (a *App) shareProject() {
	authorEntry := widget.NewEntry()
	authorEntry.SetPlaceHolder("Your name")

	notesEntry := widget.NewMultiLineEntry()
	notesEntry.SetPlaceHolder("Optional notes for the recipient")
	notesEntry.SetMinRowsVisible(3)

	form := dialog.NewForm("Share Project", "Export", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Author", authorEntry),
			widget.NewFormItem("Notes", notesEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
				if err != nil || writer == nil {
					return
				}
				writer.Close()
				path := writer.URI().Path()
				if exportErr := project.ExportShared(path, a.project, authorEntry.Text, notesEntry.Text); exportErr != nil {
					dialog.ShowError(exportErr, a.window)
				} else {
					dialog.ShowInformation("Shared", fmt.Sprintf("Project shared to:\n%s", path), a.window)
				}
			}, a.window)
			d.SetFileName(a.project.Name + ".loadplanshare")
			d.Show()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 300))
	form.Show()
}

func (a *App) importSharedProject() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		shared, importErr := project.ImportShared(reader.URI().Path())
		if importErr != nil {
			dialog.ShowError(importErr, a.window)
			return
		}

		info := fmt.Sprintf("Project: %s\nItems: %d\nTrucks: %d",
			shared.Project.Name, len(shared.Project.Items), len(shared.Project.Trucks))
		if shared.Author != "" {
			info += fmt.Sprintf("\nShared by: %s", shared.Author)
		}
		if shared.Notes != "" {
			info += fmt.Sprintf("\nNotes: %s", shared.Notes)
		}

		dialog.ShowConfirm("Import Shared Project",
			fmt.Sprintf("Import this shared project?\n\n%s", info),
			func(ok bool) {
				if !ok {
					return
				}
				a.saveState("Import Shared Project")
				a.project = shared.Project
				a.selectedTruckIdx = 0
				a.refreshItemList()
				a.refreshTruckList()
				a.refreshResults()
				dialog.ShowInformation("Imported", fmt.Sprintf("Successfully imported project %q.", shared.Project.Name), a.window)
			},
			a.window,
		)
	}, a.window)
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importCSV() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := itemimporter.ImportCSV(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) importExcel() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := itemimporter.ImportExcel(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) handleImportResult(result itemimporter.ImportResult) {
	var summary strings.Builder

	summary.WriteString(fmt.Sprintf("Items imported: %d", len(result.Items)))

	if len(result.Errors) > 0 {
		summary.WriteString(fmt.Sprintf("\nRows skipped: %d", len(result.Errors)))
	}

	if len(result.Warnings) > 0 {
		summary.WriteString("\n\nWarnings:\n")
		for _, w := range result.Warnings {
			summary.WriteString(fmt.Sprintf("  - %s\n", w))
		}
	}

	if len(result.Errors) > 0 {
		summary.WriteString("\nErrors:\n")
		maxErrors := 10
		for i, e := range result.Errors {
			if i >= maxErrors {
				summary.WriteString(fmt.Sprintf("  ... and %d more errors\n", len(result.Errors)-maxErrors))
				break
			}
			summary.WriteString(fmt.Sprintf("  - %s\n", e))
		}
	}

	if len(result.Items) > 0 {
		a.saveState("Import Items")
		a.project.Items = append(a.project.Items, result.Items...)
		a.refreshItemList()
		a.scheduleOptimize()
	}

	if len(result.Items) == 0 && len(result.Errors) > 0 {
		dialog.ShowError(fmt.Errorf("import failed\n\n%s", summary.String()), a.window)
	} else {
		dialog.ShowInformation("Import Summary", summary.String(), a.window)
	}
}

// ─── Project Templates ──────────────────────────────────────

func (a *App) showTemplateManager() {
	list := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		list.RemoveAll()
		if len(a.templates.Templates) == 0 {
			list.Add(widget.NewLabel("No saved templates."))
			return
		}
		for i := range a.templates.Templates {
			idx := i
			tmpl := a.templates.Templates[idx]
			row := container.NewBorder(nil, nil, nil,
				container.NewHBox(
					widget.NewButton("Load", func() {
						a.saveState("Load Template " + tmpl.Name)
						a.project = tmpl.ToProject(tmpl.Name)
						a.selectedTruckIdx = 0
						a.refreshItemList()
						a.refreshTruckList()
						a.refreshResults()
					}),
					widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
						a.templates.Remove(tmpl.ID)
						a.saveTemplates()
						refreshList()
					}),
				),
				widget.NewLabel(fmt.Sprintf("%s — %s (%d items, %d trucks)",
					tmpl.Name, tmpl.Description, len(tmpl.Items), len(tmpl.Trucks))),
			)
			list.Add(row)
		}
	}
	refreshList()

	saveCurrentBtn := widget.NewButtonWithIcon("Save Current Project as Template", theme.ContentAddIcon(), func() {
		a.showSaveTemplateDialog(refreshList)
	})

	content := container.NewBorder(saveCurrentBtn, nil, nil, nil, container.NewVScroll(list))

	d := dialog.NewCustom("Project Templates", "Close", content, a.window)
	d.Resize(fyne.NewSize(600, 450))
	d.Show()
}

func (a *App) showSaveTemplateDialog(onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.project.Name)

	descEntry := widget.NewMultiLineEntry()
	descEntry.SetMinRowsVisible(2)

	form := dialog.NewForm("Save Template", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			tmpl := model.NewProjectTemplate(nameEntry.Text, descEntry.Text, a.project.Items, a.project.Trucks, a.project.Config)
			a.templates.Add(tmpl)
			a.saveTemplates()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 260))
	form.Show()
}

func (a *App) saveTemplates() {
	if err := project.SaveDefaultTemplates(a.templates); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save templates: %w", err), a.window)
	}
}

// ─── Import/Export Data + Settings ──────────────────────────

func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			writer.Close()
			if exportErr := project.ExportAllData(writer.URI().Path(), a.config); exportErr != nil {
				dialog.ShowError(exportErr, a.window)
			} else {
				dialog.ShowInformation("Export Complete", "Application data exported.", a.window)
			}
		}, a.window)
		d.SetFileName("loadplanner-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()
			backup, importErr := project.ImportAllData(reader.URI().Path())
			if importErr != nil {
				dialog.ShowError(importErr, a.window)
				return
			}
			a.config = backup.Config
			a.applyTheme()
			dialog.ShowInformation("Import Complete", "Application config imported.", a.window)
		}, a.window)
	})

	content := container.NewVBox(exportBtn, importBtn)
	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(400, 200))
	d.Show()
}

func (a *App) showSettingsDialog() {
	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		a.config.Theme = selected
		a.applyTheme()
	})
	themeSelect.SetSelected(a.config.Theme)

	autoSaveEntry := widget.NewEntry()
	autoSaveEntry.SetText(fmt.Sprintf("%d", a.config.AutoSaveInterval))

	form := dialog.NewForm("Settings", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Theme", themeSelect),
			widget.NewFormItem("Auto-save Interval (min, 0=off)", autoSaveEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			if v, err := strconv.Atoi(autoSaveEntry.Text); err == nil {
				a.config.AutoSaveInterval = v
			}
			if err := project.SaveAppConfig(project.DefaultConfigPath(), a.config); err != nil {
				dialog.ShowError(err, a.window)
			}
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 220))
	form.Show()
}
