package modkit

import (
	"scanwedge/internal/platform/config"
	"scanwedge/internal/platform/logger"
	ptime "scanwedge/internal/platform/time"
)

// Deps are handed to every module constructor. The zero value works in tests.
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	Clock ptime.Clock
}

// ClockOrSystem returns d.Clock, falling back to wall time
func (d Deps) ClockOrSystem() ptime.Clock {
	if d.Clock == nil {
		return ptime.System()
	}
	return d.Clock
}
