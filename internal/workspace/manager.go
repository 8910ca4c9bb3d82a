package workspace

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Manager tracks multiple open quote files, each backed by its own SQLite
// database.
type Manager struct {
	mu    sync.RWMutex
	repos map[string]*QuoteRepo // keyed by quote ID
}

// NewManager creates a new empty Manager.
func NewManager() *Manager {
	return &Manager{
		repos: make(map[string]*QuoteRepo),
	}
}

// CreateQuote creates a new .quote file at filePath, initializes the
// schema, and returns the quote ID and repo.
func (m *Manager) CreateQuote(filePath string) (string, *QuoteRepo, error) {
	db, err := OpenDB(filePath)
	if err != nil {
		return "", nil, fmt.Errorf("open db: %w", err)
	}
	if err := InitSchema(db); err != nil {
		db.Close()
		return "", nil, fmt.Errorf("init schema: %w", err)
	}

	quoteID := uuid.New().String()
	repo := NewRepo(db, filePath)

	m.mu.Lock()
	m.repos[quoteID] = repo
	m.mu.Unlock()

	return quoteID, repo, nil
}

// OpenQuote opens an existing .quote file and returns the quote ID and
// repo. It runs schema migration if needed.
func (m *Manager) OpenQuote(filePath string) (string, *QuoteRepo, error) {
	db, err := OpenDB(filePath)
	if err != nil {
		return "", nil, fmt.Errorf("open db: %w", err)
	}
	if err := MigrateSchema(db); err != nil {
		db.Close()
		return "", nil, fmt.Errorf("migrate schema: %w", err)
	}

	quoteID := uuid.New().String()
	repo := NewRepo(db, filePath)

	m.mu.Lock()
	m.repos[quoteID] = repo
	m.mu.Unlock()

	return quoteID, repo, nil
}

// CloseQuote closes the SQLite connection for a quote and removes it from
// the manager.
func (m *Manager) CloseQuote(quoteID string) error {
	m.mu.Lock()
	repo, ok := m.repos[quoteID]
	if ok {
		delete(m.repos, quoteID)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("quote %s not found", quoteID)
	}
	return repo.Close()
}

// GetRepo returns the QuoteRepo for an open quote, or nil if not found.
func (m *Manager) GetRepo(quoteID string) *QuoteRepo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.repos[quoteID]
}

// CloseAll closes all open quotes. Called at application shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, repo := range m.repos {
		repo.Close()
		delete(m.repos, id)
	}
}
