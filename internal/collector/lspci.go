package collector

import (
	"context"
	"time"

	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/monitor/parsers"
)

const lspciTimeout = 3 * time.Second

// detectPCIGPUs lists display controllers via lspci. It runs once at start;
// a missing binary yields nil.
func detectPCIGPUs(ctx context.Context, runner Runner, log logger.Logger) []parsers.PCIGPU {
	out, err := runWithTimeout(ctx, runner, lspciTimeout, "lspci")
	if err != nil {
		log.Debug("lspci unavailable: %v", err)
		return nil
	}
	return parsers.ParseLspci(out)
}
