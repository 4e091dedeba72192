// Command dieselxr negotiates display capabilities with an XR runtime,
// brings up a headless Vulkan device at the negotiated version and builds
// the triangle pipeline, render pass and command pool against it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/andewx/dieselxr"
	"github.com/andewx/dieselxr/xr"
	"github.com/andewx/dieselxr/xr/simulated"
	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
	"go.uber.org/zap"
)

func init() {
	// glfw and the Vulkan loader want the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	configPath := flag.String("config", "", "YAML config file")
	flag.Parse()

	cfg, err := dieselxr.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log := cfg.NewLogger()
	dieselxr.SetLogger(log)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("dieselxr failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg dieselxr.Config, log *zap.Logger) error {
	if cfg.Profile != "" && cfg.Runtime == simulated.Name {
		profile, err := simulated.LoadProfile(cfg.Profile)
		if err != nil {
			return err
		}
		simulated.Register(simulated.Name, profile)
	}

	backend, err := cfg.BackendVersion()
	if err != nil {
		return err
	}
	session, err := xr.Negotiate(ctx, xr.Options{
		Runtime:        cfg.Runtime,
		Application:    cfg.ApplicationInfo(),
		BackendVersion: backend,
	})
	if err != nil {
		return err
	}
	defer session.Release()
	caps := session.Capabilities()

	releaseLoader, err := dieselxr.InitLoader(dieselxr.LoaderSource{
		Name:      "glfw",
		Init:      glfw.Init,
		ProcAddr:  glfw.GetVulkanGetInstanceProcAddress,
		Terminate: glfw.Terminate,
	})
	if err != nil {
		return err
	}
	defer releaseLoader()

	platformConfig, err := cfg.PlatformConfig()
	if err != nil {
		return err
	}
	platform, err := dieselxr.NewPlatform(platformConfig)
	if err != nil {
		return err
	}
	defer platform.Destroy()
	device := platform.Device()

	renderPass, err := dieselxr.NewColorRenderPass(device, vk.FormatR8g8b8a8Unorm)
	if err != nil {
		return err
	}
	defer renderPass.Destroy()

	pipeline, err := dieselxr.NewDefaultPipelineBuilder().Build(device, renderPass.Handle())
	if err != nil {
		return err
	}
	defer pipeline.Release()

	pool, err := dieselxr.NewCommandPool(device, platform.GraphicsQueueFamilyIndex())
	if err != nil {
		return err
	}
	defer pool.Destroy()
	buffers := dieselxr.NewCommandBufferManager(pool, vk.CommandBufferLevelPrimary)
	defer buffers.Destroy()
	if _, err := buffers.NewCommandBuffer(); err != nil {
		return err
	}

	log.Info("renderer ready",
		zap.String("runtime", session.Runtime()),
		zap.Stringer("blend_mode", caps.EnvironmentBlendMode),
		zap.Stringer("vulkan", caps.BackendVersion),
		zap.String("gpu", platform.GPUName()),
		zap.Uint32("queue_family", pool.QueueFamilyIndex()))
	return nil
}
