package dieselxr

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	spirvMagic        = 0x07230203
	spirvMagicSwapped = 0x03022307
)

// DecodeSPIRV turns a bytecode blob into the 32-bit words Vulkan expects.
// Blobs written big-endian are swapped. Nothing is truncated: a length that
// is not a multiple of four is an error.
func DecodeSPIRV(code []byte) ([]uint32, error) {
	if len(code) == 0 {
		return nil, fmt.Errorf("%w: empty blob", ErrMalformedBytecode)
	}
	if len(code)%4 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of 4", ErrMalformedBytecode, len(code))
	}
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	switch words[0] {
	case spirvMagic:
	case spirvMagicSwapped:
		for i, w := range words {
			words[i] = w>>24 | (w>>8)&0xff00 | (w<<8)&0xff0000 | w<<24
		}
	default:
		return nil, fmt.Errorf("%w: bad magic number %#08x", ErrMalformedBytecode, words[0])
	}
	return words, nil
}

func safeString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// checkExisting keeps the required names present in actual, null terminated,
// and returns the rest as missing.
func checkExisting(actual, required []string) (existing, missing []string) {
	have := make(map[string]struct{}, len(actual))
	for _, name := range actual {
		have[strings.TrimSuffix(name, "\x00")] = struct{}{}
	}
	for _, name := range required {
		bare := strings.TrimSuffix(name, "\x00")
		if _, ok := have[bare]; ok {
			existing = append(existing, safeString(name))
		} else {
			missing = append(missing, bare)
		}
	}
	return existing, missing
}

type stackFrame struct {
	file string
	line int
	fn   string
}

func newStackFrame(pc uintptr) stackFrame {
	frame := stackFrame{fn: "unknown"}
	if fn := runtime.FuncForPC(pc); fn != nil {
		frame.file, frame.line = fn.FileLine(pc)
		name := fn.Name()
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		frame.fn = name
	}
	return frame
}

func (f stackFrame) String() string {
	return fmt.Sprintf("%s (%s:%d)", f.fn, filepath.Base(f.file), f.line)
}
