package dieselxr

import (
	"github.com/andewx/dieselxr/internal/logging"
	"go.uber.org/zap"
)

// SetLogger configures the logger used by dieselxr and its xr packages.
// The default is silent; nil restores it.
func SetLogger(l *zap.Logger) {
	logging.Set(l)
}

// Logger returns the current logger.
func Logger() *zap.Logger {
	return logging.L()
}

func logger() *zap.Logger {
	return logging.L().Named("vulkan")
}
