package setup

import (
	"github.com/IsaacDSC/miracle/internal/cfg"
	"github.com/IsaacDSC/miracle/pkg/logs"
)

// NewLogger builds the process logger from LOG_LEVEL and LOG_SOURCE. Extra
// options are applied last.
func NewLogger(conf cfg.Config, opts ...logs.LogOption) *logs.Logger {
	base := []logs.LogOption{logs.WithLevel(logs.ParseLevel(conf.LogLevel))}
	if conf.LogSource {
		base = append(base, logs.WithSource())
	}

	return logs.New(append(base, opts...)...)
}
