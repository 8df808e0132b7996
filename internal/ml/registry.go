package ml

import (
	"os"
	"path/filepath"
	"sync"

	"RxPulse/internal/domain/models"
	domrepo "RxPulse/internal/domain/repository"
	applogger "RxPulse/pkg/logger"
)

// Artifact file names, fixed by the offline training pipeline.
const (
	demandTimeseriesFile = "demand_forecasting_prophet.json"
	demandWeeklyFile     = "demand_forecasting_lgb.json"
	inventoryFile        = "inventory_optimization_lgb.json"
	expiryFile           = "expiry_prediction_xgb.json"
)

// Registry holds the loaded model handles, keyed by role. It is constructed
// once at process start and passed by reference to prediction services.
// Handles are write-once: after the first Load, the registry is read-only.
type Registry struct {
	dir     string
	mock    bool
	logger  *applogger.Logger
	metrics domrepo.Metrics

	mu         sync.Mutex
	loaded     bool
	ok         bool
	timeseries TimeSeriesModel
	handles    map[models.Role]Model
}

// NewRegistry creates an empty registry. Load must be called before use.
func NewRegistry(dir string, mock bool, logger *applogger.Logger, metrics domrepo.Metrics) *Registry {
	return &Registry{
		dir:     dir,
		mock:    mock,
		logger:  logger,
		metrics: metrics,
		handles: make(map[models.Role]Model),
	}
}

// Load attempts to load each model artifact independently; a failure to load
// one does not prevent the others from loading. Returns true if at least one
// model loaded. Safe for concurrent callers; after the first call it is a
// no-op returning the cached state.
func (r *Registry) Load() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.ok
	}
	r.loaded = true

	if r.mock {
		r.timeseries = newMockTimeSeries()
		r.handles[models.RoleDemandWeekly] = newMockWeekly()
		r.handles[models.RoleInventory] = newMockInventory()
		r.handles[models.RoleExpiry] = newMockExpiry()
		r.ok = true
		r.logger.Warn("model registry running in mock mode; all roles stubbed")
		r.recordLoaded()
		return true
	}

	count := 0

	if ts, err := LoadSeasonal(filepath.Join(r.dir, demandTimeseriesFile)); err != nil {
		r.logger.Warn("demand time-series model not loaded", applogger.Error(err))
	} else {
		r.timeseries = ts
		count++
	}

	ensembles := map[models.Role]string{
		models.RoleDemandWeekly: demandWeeklyFile,
		models.RoleInventory:    inventoryFile,
		models.RoleExpiry:       expiryFile,
	}
	for role, file := range ensembles {
		m, err := LoadEnsemble(filepath.Join(r.dir, file))
		if err != nil {
			r.logger.Warn("model not loaded", applogger.String("role", string(role)), applogger.Error(err))
			continue
		}
		r.handles[role] = m
		count++
	}

	r.ok = count > 0
	r.logger.Info("model registry loaded",
		applogger.Int("models", count),
		applogger.String("dir", r.dir),
	)
	r.recordLoaded()
	return r.ok
}

func (r *Registry) recordLoaded() {
	r.metrics.RecordModelLoaded(string(models.RoleDemandTimeseries), r.timeseries != nil)
	for _, role := range []models.Role{models.RoleDemandWeekly, models.RoleInventory, models.RoleExpiry} {
		_, ok := r.handles[role]
		r.metrics.RecordModelLoaded(string(role), ok)
	}
}

// Status reports per-role availability without attempting a reload.
func (r *Registry) Status() models.RegistryStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	exists := r.mock
	if !r.mock {
		if info, err := os.Stat(r.dir); err == nil && info.IsDir() {
			exists = true
		}
	}

	_, weekly := r.handles[models.RoleDemandWeekly]
	_, inv := r.handles[models.RoleInventory]
	_, exp := r.handles[models.RoleExpiry]
	return models.RegistryStatus{
		MLAvailable:            r.ok,
		DemandTimeseriesLoaded: r.timeseries != nil,
		DemandWeeklyLoaded:     weekly,
		InventoryLoaded:        inv,
		ExpiryLoaded:           exp,
		ModelsPath:             r.dir,
		ModelsExist:            exists,
	}
}

// Model returns the handle for a role, or false when the role is not loaded.
// Callers must treat absence as "feature unavailable".
func (r *Registry) Model(role models.Role) (Model, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.handles[role]
	return m, ok
}

// TimeSeries returns the global demand time-series handle if loaded.
func (r *Registry) TimeSeries() (TimeSeriesModel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timeseries == nil {
		return nil, false
	}
	return r.timeseries, true
}
