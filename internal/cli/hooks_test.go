package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/antcheck/pkg/observability"
)

var (
	_ observability.CheckHooks = (*logHooks)(nil)
	_ observability.LoadHooks  = (*logHooks)(nil)
)

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	var counts []int
	h := &logHooks{
		logger: newLogger(&buf, log.DebugLevel),
		onNet:  func(n int) { counts = append(counts, n) },
	}
	ctx := context.Background()

	h.OnLoadStart(ctx, "top.yaml")
	h.OnLoadComplete(ctx, "top.yaml", 3, time.Millisecond, nil)
	h.OnLoadComplete(ctx, "bad.yaml", 0, time.Millisecond, errors.New("boom"))
	h.OnCheckStart(ctx, "top", 3)
	h.OnNetChecked(ctx, "n1", 1, true, time.Microsecond)
	h.OnNetChecked(ctx, "n2", 2, false, time.Microsecond)
	h.OnCheckComplete(ctx, "top", 1, 1, 2, time.Millisecond, nil)

	out := buf.String()
	for _, want := range []string{"loading design", "design loaded", "design load failed", "err=boom", "check started", "net=n1", "check complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("hook logs missing %q\n%s", want, out)
		}
	}
	if len(counts) != 2 || counts[0] != 1 || counts[1] != 2 {
		t.Errorf("onNet counts = %v, want [1 2]", counts)
	}

	h.OnCheckStart(ctx, "top", 3)
	h.OnNetChecked(ctx, "n1", 1, false, 0)
	if counts[len(counts)-1] != 1 {
		t.Errorf("OnCheckStart should reset the count, got %v", counts)
	}
}

func TestLogHooksInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, log.InfoLevel)}
	h.OnCheckStart(context.Background(), "top", 1)
	h.OnNetChecked(context.Background(), "n1", 1, false, 0)
	if buf.Len() != 0 {
		t.Errorf("hooks should log at debug level only, got %q", buf.String())
	}
}

func TestNetCheckedUpdatesSpinner(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.netChecked(1) // no spinner, no panic

	c.spinner = newSpinner("Checking...")
	c.netChecked(7)
	if got := c.spinner.Message(); got != "Checked 7 nets..." {
		t.Errorf("spinner message = %q, want %q", got, "Checked 7 nets...")
	}
}
