package dieselxr

import (
	_ "embed"
)

//go:generate go run ./cmd/spvgen -in shaders -out shaders

//go:embed shaders/triangle.vert.spv
var triangleVert []byte

//go:embed shaders/triangle.frag.spv
var triangleFrag []byte

// DefaultShaders returns copies of the built-in triangle shaders. Both
// use the "main" entry point.
func DefaultShaders() (vertex, fragment []byte) {
	return append([]byte(nil), triangleVert...), append([]byte(nil), triangleFrag...)
}
