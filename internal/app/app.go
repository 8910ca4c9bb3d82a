// Package app is the Wails-bound editor controller. It owns the single
// editor state, routes every mutation through the plan mutation contract,
// and exposes commands, imports, exports, and quote-file persistence to the
// frontend.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"quotebuilder/internal/catalog"
	"quotebuilder/internal/config"
	"quotebuilder/internal/estimate"
	"quotebuilder/internal/export"
	"quotebuilder/internal/geometry"
	"quotebuilder/internal/history"
	"quotebuilder/internal/importers"
	"quotebuilder/internal/plan"
	"quotebuilder/internal/workspace"
)

// App is the Wails-bound application.
type App struct {
	ctx     context.Context
	version string
	cfg     *config.Config
	catalog *catalog.Catalog

	mu            sync.Mutex
	locations     []*plan.Location
	selection     plan.Selection
	active        workspace.ActiveIDs
	panels        map[string]bool
	supportTier   float64
	supportPeriod estimate.SupportPeriod

	engine    *geometry.Engine
	hist      *history.Store
	orch      *estimate.Orchestrator
	extractor importers.Extractor

	quotes  *workspace.Manager
	quoteID string
}

// NewApp wires the editor core. version is the application version
// (e.g. "0.4.0"). Call Startup with the Wails context before using dialogs.
func NewApp(version string) *App {
	cfg := config.Load()

	apiKey, err := estimate.LoadAPIKey()
	if err != nil {
		log.Printf("app: no pricing credential available: %v", err)
	}

	a := &App{
		version:       version,
		cfg:           cfg,
		catalog:       catalog.Default(),
		panels:        make(map[string]bool),
		supportPeriod: estimate.PeriodMonthly,
		extractor:     importers.NewExtractionClient(cfg, apiKey),
		quotes:        workspace.NewManager(),
	}

	loc := plan.NewLocation("New Location")
	a.locations = []*plan.Location{loc}
	a.active = workspace.ActiveIDs{
		LocationID: loc.ID,
		FloorID:    loc.Floors[0].ID,
		LayerID:    loc.Floors[0].Layers[0].ID,
	}

	a.engine = geometry.NewEngine(a, geometry.DefaultZoomLimits)
	a.hist = history.NewStore(a.locations, history.DefaultQuiet)
	a.hist.OnChange(func() { a.emit("history:changed", nil) })
	a.orch = estimate.NewOrchestrator(
		estimate.NewClient(cfg, apiKey),
		estimate.DefaultQuiet,
		func(v estimate.View) { a.emit("estimate:updated", v) },
	)

	return a
}

// Version returns the application version.
func (a *App) Version() string {
	return a.version
}

// Startup is called by Wails when the app starts; store context for dialogs
// and events.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
}

// Shutdown closes any open quote files.
func (a *App) Shutdown(ctx context.Context) {
	a.quotes.CloseAll()
}

// emit publishes a runtime event when the Wails context is available.
func (a *App) emit(name string, payload any) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, name, payload)
}

// Catalog returns the read-only catalog for the frontend pickers.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}

// ---------------------------------------------------------------------------
// Pointer, wheel, and keyboard forwarding
// ---------------------------------------------------------------------------

// PointerDown forwards a pointer-down. hit is the entity under the pointer
// as resolved by the frontend's hit test, or nil for empty canvas.
func (a *App) PointerDown(button int, x, y float64, hit *geometry.Hit) {
	a.engine.PointerDown(geometry.Button(button), plan.Point{X: x, Y: y}, hit)
}

// PointerMove forwards a pointer-move to the active gesture.
func (a *App) PointerMove(x, y float64) {
	a.engine.PointerMove(plan.Point{X: x, Y: y})
}

// PointerUp ends the active gesture.
func (a *App) PointerUp() {
	a.engine.PointerUp()
}

// Wheel forwards a scroll event; modifier selects zoom over pan.
func (a *App) Wheel(deltaY float64, modifier bool) {
	a.engine.Wheel(deltaY, modifier)
}

// KeyDown routes a keyboard event through the input dispatcher. Returns
// true if the shortcut was consumed.
func (a *App) KeyDown(key string, ctrl, meta, shift, editingText bool) bool {
	return a.engine.Key(geometry.KeyEvent{
		Key: key, Ctrl: ctrl, Meta: meta, Shift: shift, EditingText: editingText,
	})
}

// KeyUp tracks key releases for pan gating.
func (a *App) KeyUp(key string) {
	a.engine.KeyUp(key)
}

// SetMode switches the canvas tool; leaving the cable tool drops any
// pending start point.
func (a *App) SetMode(mode string) {
	a.engine.SetMode(geometry.Mode(mode))
}

// ---------------------------------------------------------------------------
// Estimation
// ---------------------------------------------------------------------------

// EstimateView returns the current pricing panel state: loading flag, last
// good summary, and any error from the most recent request.
func (a *App) EstimateView() estimate.View {
	return a.orch.Snapshot()
}

// RefreshEstimate re-submits the pricing request immediately; the retry
// affordance next to the summary panel calls this.
func (a *App) RefreshEstimate() {
	a.mu.Lock()
	loc := a.activeLocation()
	if loc == nil {
		a.mu.Unlock()
		return
	}
	req := estimate.BuildRequest(loc, a.supportTier, a.supportPeriod)
	a.mu.Unlock()
	a.orch.Refresh(req)
}

// SavePricingAPIKey stores the pricing service credential in the OS
// credential manager. Takes effect on next launch.
func (a *App) SavePricingAPIKey(key string) error {
	return estimate.SaveAPIKey(key)
}

// ---------------------------------------------------------------------------
// Import
// ---------------------------------------------------------------------------

// ImportHardwareFiles sends each file's extracted text to the extraction
// service, one file at a time, then reconciles all successfully parsed
// items into one new station on the active floor. Per-file failures are
// reported in the results and do not abort the remaining files.
func (a *App) ImportHardwareFiles(files []importers.FileInput) []importers.FileResult {
	results := importers.ImportFiles(context.Background(), a.extractor, files)

	items := importers.CollectItems(results)
	if len(items) == 0 {
		return results
	}

	station := importers.Reconcile(items, "Imported Hardware")

	a.mu.Lock()
	floorID := a.active.FloorID
	err := a.commit(func(l *plan.Location) {
		if f := l.FloorByID(floorID); f != nil {
			f.Stations = append(f.Stations, station)
		}
	})
	a.mu.Unlock()
	if err != nil {
		log.Printf("app: import reconciliation: %v", err)
	}
	return results
}

// ---------------------------------------------------------------------------
// Export
// ---------------------------------------------------------------------------

func (a *App) exportPayload() export.Payload {
	a.mu.Lock()
	locs := append([]*plan.Location(nil), a.locations...)
	tier := a.supportTier
	period := a.supportPeriod
	a.mu.Unlock()
	return export.BuildPayload(locs, a.catalog, tier, period, a.orch.Snapshot().Summary)
}

// ExportJSON returns the full JSON payload: model, catalog, rates, and the
// last known estimate.
func (a *App) ExportJSON() (string, error) {
	return export.JSON(a.exportPayload())
}

// ExportCSV returns flattened hardware rows for POS import.
func (a *App) ExportCSV() (string, error) {
	a.mu.Lock()
	locs := append([]*plan.Location(nil), a.locations...)
	a.mu.Unlock()
	return export.CSV(locs, a.catalog)
}

// ExportHTML returns the printable quote document.
func (a *App) ExportHTML() (string, error) {
	return export.HTML(a.exportPayload())
}

// Save writes content to the given path (for exports chosen via dialog).
func (a *App) Save(path string, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// SaveFileDialog opens a save file dialog and returns the chosen path, or
// empty string if cancelled.
func (a *App) SaveFileDialog(title string, defaultFilename string, filterName string, filterPattern string) (string, error) {
	opts := runtime.SaveDialogOptions{
		Title:           title,
		DefaultFilename: defaultFilename,
		Filters: []runtime.FileFilter{
			{DisplayName: filterName, Pattern: filterPattern},
		},
	}
	return runtime.SaveFileDialog(a.ctx, opts)
}

// OpenFileDialog opens a file dialog and returns the chosen path, or empty
// string if cancelled.
func (a *App) OpenFileDialog(title string, filterName string, filterPattern string) (string, error) {
	opts := runtime.OpenDialogOptions{
		Title: title,
		Filters: []runtime.FileFilter{
			{DisplayName: filterName, Pattern: filterPattern},
		},
	}
	return runtime.OpenFileDialog(a.ctx, opts)
}

// ---------------------------------------------------------------------------
// Quote file persistence
// ---------------------------------------------------------------------------

// NewQuote creates a fresh .quote file and saves the current session into
// it.
func (a *App) NewQuote(path string) error {
	quoteID, repo, err := a.quotes.CreateQuote(path)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.quoteID = quoteID
	a.mu.Unlock()
	return a.saveSessionTo(repo)
}

// OpenQuote loads a .quote file and replaces the entire editor session
// with its contents.
func (a *App) OpenQuote(path string) error {
	quoteID, repo, err := a.quotes.OpenQuote(path)
	if err != nil {
		return err
	}

	session, err := repo.LoadSession()
	if err != nil {
		a.quotes.CloseQuote(quoteID)
		return fmt.Errorf("load session: %w", err)
	}

	a.mu.Lock()
	if a.quoteID != "" {
		a.quotes.CloseQuote(a.quoteID)
	}
	a.quoteID = quoteID
	if len(session.Locations) > 0 {
		a.locations = session.Locations
		a.selection = session.Selection
		a.active = session.Active
		a.supportTier = session.Support.Tier
		if session.Support.Period != "" {
			a.supportPeriod = session.Support.Period
		}
		if session.Panels != nil {
			a.panels = session.Panels
		}
		a.engine.SetViewport(session.Viewport)
	}
	a.hist = history.NewStore(a.locations, history.DefaultQuiet)
	a.hist.OnChange(func() { a.emit("history:changed", nil) })
	a.scheduleEstimate()
	a.mu.Unlock()

	a.emit("plan:changed", nil)
	return nil
}

// SaveQuote writes the session to the open quote file.
func (a *App) SaveQuote() error {
	a.mu.Lock()
	quoteID := a.quoteID
	a.mu.Unlock()
	if quoteID == "" {
		return fmt.Errorf("no quote file open")
	}
	repo := a.quotes.GetRepo(quoteID)
	if repo == nil {
		return fmt.Errorf("quote %s not open", quoteID)
	}
	return a.saveSessionTo(repo)
}

func (a *App) saveSessionTo(repo *workspace.QuoteRepo) error {
	a.mu.Lock()
	session := workspace.Session{
		Locations: append([]*plan.Location(nil), a.locations...),
		Selection: a.selection,
		Viewport:  a.engine.Viewport(),
		Panels:    a.panels,
		Support: workspace.SupportSelection{
			Tier:   a.supportTier,
			Period: a.supportPeriod,
		},
		Active: a.active,
	}
	a.mu.Unlock()
	return repo.SaveSession(session)
}

// MigrateLegacyDump imports a browser-storage dump from the hosted editor
// into a new .quote file.
func (a *App) MigrateLegacyDump(dumpPath, newPath string) (workspace.MigrationResult, error) {
	return workspace.MigrateFromDump(dumpPath, newPath)
}
