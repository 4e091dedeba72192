// Command spvgen compiles the WGSL shaders under -in to SPIR-V blobs
// under -out, one .spv per .wgsl with the same base name.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andewx/dieselxr/internal/logging"
	"github.com/gogpu/naga"
	"go.uber.org/zap"
)

func main() {
	in := flag.String("in", "shaders", "directory holding .wgsl sources")
	out := flag.String("out", "shaders", "directory receiving .spv blobs")
	flag.Parse()

	log := logging.New(logging.Options{Development: true, Level: "info"})
	defer func() { _ = log.Sync() }()

	if err := generate(*in, *out, log); err != nil {
		log.Fatal("spvgen failed", zap.Error(err))
	}
}

func generate(in, out string, log *zap.Logger) error {
	sources, err := filepath.Glob(filepath.Join(in, "*.wgsl"))
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no .wgsl files in %s", in)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	for _, src := range sources {
		text, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		spirv, err := naga.Compile(string(text))
		if err != nil {
			return fmt.Errorf("compile %s: %w", src, err)
		}
		dst := filepath.Join(out, strings.TrimSuffix(filepath.Base(src), ".wgsl")+".spv")
		if err := os.WriteFile(dst, spirv, 0o644); err != nil {
			return err
		}
		log.Info("compiled", zap.String("src", src), zap.String("dst", dst), zap.Int("bytes", len(spirv)))
	}
	return nil
}
