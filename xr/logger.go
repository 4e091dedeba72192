package xr

import (
	"github.com/andewx/dieselxr/internal/logging"
	"go.uber.org/zap"
)

// SetLogger configures the logger shared by the xr packages and the
// renderer core. Nil restores the silent default.
func SetLogger(l *zap.Logger) {
	logging.Set(l)
}
