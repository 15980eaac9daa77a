package threadpool

import (
	"sync"

	"github.com/threading-go/threadpool/core"
)

// =============================================================================
// Global Thread Pool Helper (Singleton)
// =============================================================================

var (
	globalThreadPool *core.ThreadPool
	globalMu         sync.Mutex
)

// InitGlobalThreadPool initializes the global thread pool with the specified
// number of workers. The workers start immediately. Calling it again while a
// global pool exists is a no-op.
func InitGlobalThreadPool(workers int) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalThreadPool != nil {
		return nil // Already initialized
	}

	config := core.DefaultConfig()
	config.ID = "global-pool"
	pool, err := core.NewWithConfig(workers, config)
	if err != nil {
		return err
	}
	globalThreadPool = pool
	return nil
}

// GetGlobalThreadPool returns the global thread pool instance.
// It panics if InitGlobalThreadPool has not been called.
func GetGlobalThreadPool() *core.ThreadPool {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalThreadPool == nil {
		panic("GlobalThreadPool not initialized. Call InitGlobalThreadPool() first.")
	}
	return globalThreadPool
}

// ShutdownGlobalThreadPool shuts the global thread pool down and clears the
// singleton so a new one can be initialized.
func ShutdownGlobalThreadPool() {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalThreadPool != nil {
		globalThreadPool.Shutdown()
		globalThreadPool = nil
	}
}
