// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about design loading and antenna checks.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the checker itself
// stays free of any particular metrics or tracing backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCheckHooks(&myCheckHooks{})
//	    observability.SetLoadHooks(&myLoadHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Check().OnCheckStart(ctx, design, nets)
//	// ... evaluate nets ...
//	observability.Check().OnCheckComplete(ctx, design, pins, violated, total, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Check Hooks
// =============================================================================

// CheckHooks receives events from whole-design antenna checks.
type CheckHooks interface {
	// OnCheckStart is called once before the first net is evaluated.
	OnCheckStart(ctx context.Context, design string, nets int)

	// OnNetChecked is called after each routed, non-special net.
	OnNetChecked(ctx context.Context, net string, gates int, violated bool, duration time.Duration)

	// OnCheckComplete is called once with the final counts.
	OnCheckComplete(ctx context.Context, design string, violatedPins, violatedNets, totalNets int, duration time.Duration, err error)
}

// =============================================================================
// Load Hooks
// =============================================================================

// LoadHooks receives events from design file decoding.
type LoadHooks interface {
	// OnLoadStart records the start of a design file read.
	OnLoadStart(ctx context.Context, path string)

	// OnLoadComplete records the end of a design file read.
	OnLoadComplete(ctx context.Context, path string, nets int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCheckHooks is a no-op implementation of CheckHooks.
type NoopCheckHooks struct{}

func (NoopCheckHooks) OnCheckStart(context.Context, string, int)                       {}
func (NoopCheckHooks) OnNetChecked(context.Context, string, int, bool, time.Duration) {}
func (NoopCheckHooks) OnCheckComplete(context.Context, string, int, int, int, time.Duration, error) {
}

// NoopLoadHooks is a no-op implementation of LoadHooks.
type NoopLoadHooks struct{}

func (NoopLoadHooks) OnLoadStart(context.Context, string)                                {}
func (NoopLoadHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	checkHooks CheckHooks = NoopCheckHooks{}
	loadHooks  LoadHooks  = NoopLoadHooks{}
	hooksMu    sync.RWMutex
)

// SetCheckHooks registers custom check hooks.
// This should be called once at application startup before any check runs.
func SetCheckHooks(h CheckHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		checkHooks = h
	}
}

// SetLoadHooks registers custom load hooks.
// This should be called once at application startup before any design is read.
func SetLoadHooks(h LoadHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		loadHooks = h
	}
}

// Check returns the registered check hooks.
func Check() CheckHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return checkHooks
}

// Load returns the registered load hooks.
func Load() LoadHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return loadHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	checkHooks = NoopCheckHooks{}
	loadHooks = NoopLoadHooks{}
}
