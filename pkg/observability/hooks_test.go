package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Check hooks
	c := NoopCheckHooks{}
	c.OnCheckStart(ctx, "gcd", 120)
	c.OnNetChecked(ctx, "net42", 3, true, time.Millisecond)
	c.OnCheckComplete(ctx, "gcd", 4, 2, 120, time.Second, nil)

	// Load hooks
	l := NoopLoadHooks{}
	l.OnLoadStart(ctx, "gcd.yaml")
	l.OnLoadComplete(ctx, "gcd.yaml", 120, time.Second, errors.New("boom"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Check().(NoopCheckHooks); !ok {
		t.Error("Check() should return NoopCheckHooks by default")
	}
	if _, ok := Load().(NoopLoadHooks); !ok {
		t.Error("Load() should return NoopLoadHooks by default")
	}

	// Set custom hooks
	customCheck := &testCheckHooks{}
	SetCheckHooks(customCheck)
	if Check() != customCheck {
		t.Error("SetCheckHooks should set custom hooks")
	}

	customLoad := &testLoadHooks{}
	SetLoadHooks(customLoad)
	if Load() != customLoad {
		t.Error("SetLoadHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Check().(NoopCheckHooks); !ok {
		t.Error("Reset() should restore NoopCheckHooks")
	}
	if _, ok := Load().(NoopLoadHooks); !ok {
		t.Error("Reset() should restore NoopLoadHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testCheckHooks{}
	SetCheckHooks(custom)

	// Setting nil should be ignored
	SetCheckHooks(nil)

	if Check() != custom {
		t.Error("SetCheckHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testCheckHooks struct{ NoopCheckHooks }
type testLoadHooks struct{ NoopLoadHooks }
