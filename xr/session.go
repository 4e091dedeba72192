package xr

import (
	"github.com/andewx/dieselxr/internal/logging"
	"github.com/andewx/dieselxr/internal/owned"
	"go.uber.org/zap"
)

// Capabilities is the negotiated display capability descriptor.
type Capabilities struct {
	SystemID             SystemID
	EnvironmentBlendMode EnvironmentBlendMode
	MinAPIVersion        Version
	MaxAPIVersion        Version
	// BackendVersion is the Vulkan version that passed the range check.
	BackendVersion Version
}

// VersionOK reports whether BackendVersion satisfies the negotiated range.
func (c Capabilities) VersionOK() bool {
	return CheckVersion(c.BackendVersion, GraphicsRequirements{
		MinAPIVersion: c.MinAPIVersion,
		MaxAPIVersion: c.MaxAPIVersion,
	}) == nil
}

// Session owns the runtime instance and the capabilities negotiated on it.
// It may be shared across goroutines: each extra holder calls Retain and
// later Release. The instance is destroyed when the last holder releases.
type Session struct {
	runtime  string
	instance Instance
	caps     Capabilities
	ref      *owned.Ref
	log      *zap.Logger
}

func newSession(runtime string, inst Instance, caps Capabilities) *Session {
	s := &Session{
		runtime:  runtime,
		instance: inst,
		caps:     caps,
		log:      logging.L().Named("xr"),
	}
	s.ref = owned.New(s.destroy)
	return s
}

func (s *Session) Runtime() string            { return s.runtime }
func (s *Session) Capabilities() Capabilities { return s.caps }

// Instance returns the runtime instance, or ErrSessionClosed after teardown.
func (s *Session) Instance() (Instance, error) {
	if !s.ref.Alive() {
		return nil, ErrSessionClosed
	}
	return s.instance, nil
}

// Retain adds a holder. It fails once the session has been torn down.
func (s *Session) Retain() error {
	if !s.ref.Retain() {
		return ErrSessionClosed
	}
	return nil
}

// Release drops a holder.
func (s *Session) Release() {
	s.ref.Release()
}

// Close releases the creator's hold.
func (s *Session) Close() error {
	s.ref.Release()
	return nil
}

func (s *Session) destroy() {
	if err := s.instance.Destroy(); err != nil {
		s.log.Warn("destroy runtime instance", zap.String("runtime", s.runtime), zap.Error(err))
		return
	}
	s.log.Debug("runtime instance destroyed", zap.String("runtime", s.runtime))
}
