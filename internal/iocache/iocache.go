// Package iocache persists prediction runs to a SQL-backed history store.
package iocache

import (
	"context"
	"fmt"
	"sync"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/schema"
)

// HistoryManager holds the process-wide HistoryStore.
type HistoryManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	history      contract.HistoryStore
}

// GetHistoryStore returns the history store, or nil before InitHistory.
func (mgr *HistoryManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}

// Global Manager instance for main logic.
var (
	Manager   = &HistoryManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitHistory initializes the global history store exactly once.
func InitHistory(ctx context.Context, backend schema.DatabaseBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		store, err := NewHistoryStore(ctx, backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize history store: %w", err)
			return
		}
		Manager.Lock()
		defer Manager.Unlock()
		Manager.history = store
	})
	return initErr
}

// CloseHistory should be called on application shutdown.
func CloseHistory() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}
