package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports load and check events as debug log lines. When onNet is
// set it is called with the running count of checked nets.
type logHooks struct {
	logger  *log.Logger
	onNet   func(checked int)
	checked int
}

func (h *logHooks) OnLoadStart(_ context.Context, path string) {
	h.logger.Debug("loading design", "path", path)
}

func (h *logHooks) OnLoadComplete(_ context.Context, path string, nets int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("design load failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("design loaded", "path", path, "nets", nets, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnCheckStart(_ context.Context, design string, nets int) {
	h.checked = 0
	h.logger.Debug("check started", "design", design, "nets", nets)
}

func (h *logHooks) OnNetChecked(_ context.Context, net string, gates int, violated bool, d time.Duration) {
	h.checked++
	h.logger.Debug("net checked", "net", net, "gates", gates, "violated", violated, "took", d.Round(time.Microsecond))
	if h.onNet != nil {
		h.onNet(h.checked)
	}
}

func (h *logHooks) OnCheckComplete(_ context.Context, design string, violatedPins, violatedNets, totalNets int, d time.Duration, err error) {
	h.logger.Debug("check complete",
		"design", design, "pins", violatedPins, "violated", violatedNets, "nets", totalNets,
		"took", d.Round(time.Millisecond), "err", err)
}
