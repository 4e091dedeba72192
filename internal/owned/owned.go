// Package owned tracks shared ownership of native handles.
package owned

import (
	"sync"
	"sync/atomic"
)

// Ref counts holders of a resource and runs release once, when the
// last holder lets go. The zero value is not usable; call New.
type Ref struct {
	count   atomic.Int32
	once    sync.Once
	release func()
}

// New returns a Ref held once by the caller.
func New(release func()) *Ref {
	r := &Ref{release: release}
	r.count.Store(1)
	return r
}

// Retain adds a holder. It reports false if the resource was already released.
func (r *Ref) Retain() bool {
	for {
		n := r.count.Load()
		if n <= 0 {
			return false
		}
		if r.count.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Release drops a holder and reports whether this call freed the resource.
// Extra releases after the count reaches zero are no-ops.
func (r *Ref) Release() bool {
	for {
		n := r.count.Load()
		if n <= 0 {
			return false
		}
		if r.count.CompareAndSwap(n, n-1) {
			if n == 1 {
				r.once.Do(func() {
					if r.release != nil {
						r.release()
					}
				})
				return true
			}
			return false
		}
	}
}

// Alive reports whether any holder remains.
func (r *Ref) Alive() bool {
	return r.count.Load() > 0
}

// Holders returns the current holder count.
func (r *Ref) Holders() int {
	return int(r.count.Load())
}
