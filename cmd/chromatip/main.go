package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/ayusman/chromatip/internal/app"
	"github.com/ayusman/chromatip/internal/capture"
	"github.com/ayusman/chromatip/internal/chroma"
	"github.com/ayusman/chromatip/internal/colorlog"
	"github.com/ayusman/chromatip/internal/config"
	"github.com/ayusman/chromatip/internal/detector"
	"github.com/ayusman/chromatip/internal/metrics"
	"github.com/ayusman/chromatip/internal/plugin"
	"github.com/ayusman/chromatip/internal/server"
	"github.com/ayusman/chromatip/internal/session"
	"github.com/ayusman/chromatip/internal/store"
	"github.com/ayusman/chromatip/internal/tray"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	withTray := flag.Bool("tray", false, "show the system tray menu")
	printConfig := flag.Bool("print-config", false, "print the effective configuration and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			log.Fatalf("Failed to render configuration: %v", err)
		}
		os.Stdout.Write(data)
		return
	}

	fmt.Println("Chromatip - Fingertip Color Picker")

	if err := run(cfg, *withTray); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(cfg *config.Config, withTray bool) error {
	if err := os.MkdirAll(cfg.Storage.DataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	st, err := store.New(cfg.Storage.Database)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close()

	clog, err := colorlog.Open(cfg.Storage.LogFile)
	if err != nil {
		return fmt.Errorf("open color log: %w", err)
	}

	classifier, err := newClassifier(cfg.Colors.Table)
	if err != nil {
		return err
	}

	detectors, closeTracker := newDetectors(cfg)
	defer closeTracker()

	sess, err := session.New(classifier, session.Options{
		Radius:      cfg.Sampler.Radius,
		InitialMode: cfg.Mode(),
		MotionBlur:  cfg.Motion.Blur,
	}, detectors...)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	defer sess.Close()

	pluginMgr := plugin.NewManager(cfg.Plugins.Dir)
	if err := pluginMgr.Discover(); err != nil {
		log.Printf("Failed to discover plugins: %v", err)
	} else {
		log.Printf("Loaded %d plugins from %s", len(pluginMgr.List()), cfg.Plugins.Dir)
	}

	m := metrics.New()
	feed := server.NewFeed()
	hub := server.NewHub()

	a := app.New(capture.NewCamera(cfg.Camera.CameraOptions()), sess, app.Config{
		Store:        st,
		Log:          clog,
		Hooks:        plugin.NewHooks(pluginMgr, plugin.NewExecutor(cfg.Plugins.TimeoutMs)),
		Metrics:      m,
		Results:      hub,
		Frames:       feed,
		Radius:       cfg.Sampler.Radius,
		RememberMode: cfg.Session.RememberMode,
	})
	a.RestoreMode()

	webDir := cfg.Server.StaticDir
	if webDir == "" {
		webDir = findWebDir()
	}
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir:  webDir,
		Store:      st,
		Classifier: classifier,
		Session:    a,
		Feed:       feed,
		Results:    hub,
		Metrics:    m,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 2)
	go func() {
		fmt.Printf("Starting server on %s\n", cfg.Server.Addr)
		errc <- srv.Serve(ctx, cfg.Server.Addr)
	}()
	go func() {
		errc <- a.Run(ctx)
	}()

	if withTray {
		t := newTray(a, cfg.Server.Addr, stop)
		go func() {
			<-ctx.Done()
			t.Quit()
		}()
		t.Run()
		stop()
	}

	// Either component ending stops the other.
	first := <-errc
	stop()
	second := <-errc
	return errors.Join(first, second)
}

func newClassifier(tablePath string) (*chroma.Classifier, error) {
	if tablePath == "" {
		return chroma.NewClassifier(chroma.DefaultTable()), nil
	}
	table, err := chroma.LoadTableFile(tablePath)
	if err != nil {
		return nil, fmt.Errorf("load color table: %w", err)
	}
	log.Printf("Loaded %d reference colors from %s", table.Len(), tablePath)
	return chroma.NewClassifier(table), nil
}

// newDetectors builds one detector per mode. Landmark mode is only added
// when the hand tracking service is available.
func newDetectors(cfg *config.Config) ([]detector.PointDetector, func()) {
	var detectors []detector.PointDetector
	closeTracker := func() {}

	if cfg.Landmark.Enabled {
		if mp, err := detector.NewMediaPipeTracker(cfg.Landmark.TrackerConfig()); err == nil {
			log.Println("Using MediaPipe hand detection")
			detectors = append(detectors, detector.NewLandmarkDetector(mp))
			closeTracker = func() {
				if err := mp.Close(); err != nil {
					log.Printf("Error closing hand tracker: %v", err)
				}
			}
		} else {
			log.Printf("MediaPipe not available (%v), landmark mode disabled", err)
		}
	}

	detectors = append(detectors,
		detector.NewSkinDetector(cfg.Skin.DetectorConfig()),
		detector.NewMotionDetector(cfg.Motion.DetectorConfig()),
		detector.NewClickDetector(),
	)
	return detectors, closeTracker
}

func newTray(a *app.App, addr string, stop func()) *tray.Tray {
	t := tray.New(a.Mode())
	t.OnCycle(a.Cycle)
	t.OnSave(func() {
		if _, err := a.Save(context.Background()); err != nil {
			log.Printf("Save failed: %v", err)
		}
	})
	t.OnOpen(func() {
		if err := openBrowser(previewURL(addr)); err != nil {
			log.Printf("Failed to open browser: %v", err)
		}
	})
	t.OnQuit(stop)

	a.OnResult(func(res session.Result) {
		if res.Last == nil {
			t.SetLastColor(nil)
			return
		}
		c := res.Last.Classification
		t.SetLastColor(&c)
	})
	return t
}

func previewURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/"
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.chromatip/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".chromatip", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
