// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gopxl/mainthread/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/veandco/go-sdl2/sdl"

	"gofps/camera"
	"gofps/cvar"
	"gofps/cvars"
	"gofps/glh"
	"gofps/level"
	"gofps/math/vec"
	"gofps/portal"
	"gofps/window"
)

var (
	levelPath   = flag.String("level", "", "level to view, .json or compiled")
	compilePath = flag.String("compile", "", "write the level in compiled form to this file and exit")
	configPath  = flag.String("config", "config.cfg", "cvar config file")
	metricsAddr = flag.String("metrics", "", "serve prometheus metrics on this address")
	fullscreen  = flag.Bool("fullscreen", false, "start in fullscreen")
)

var logLevel slog.LevelVar

func main() {
	flag.Parse()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &logLevel})))

	if *levelPath == "" {
		slog.Error("no level given, use -level")
		os.Exit(2)
	}
	var err error
	mainthread.Run(func() {
		err = run()
	})
	if err != nil {
		slog.Error("viewer failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func loadConfig() {
	f, err := os.Open(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not open config", slog.String("path", *configPath), slog.Any("err", err))
		}
		return
	}
	defer f.Close()
	if err := cvar.LoadConfig(f); err != nil {
		slog.Warn("bad config", slog.String("path", *configPath), slog.Any("err", err))
	}
}

func writeConfig() {
	f, err := os.Create(*configPath)
	if err != nil {
		slog.Warn("could not write config", slog.Any("err", err))
		return
	}
	defer f.Close()
	if err := cvar.WriteArchive(f); err != nil {
		slog.Warn("could not write config", slog.Any("err", err))
	}
}

func updateLogLevel(cv *cvar.Cvar) {
	if cv.Bool() {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

func serveMetrics(reg *prometheus.Registry) {
	if *metricsAddr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              *metricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("serving metrics", slog.String("addr", *metricsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server", slog.Any("err", err))
		}
	}()
}

func run() error {
	cvars.Developer.SetCallback(updateLogLevel)
	loadConfig()
	updateLogLevel(cvars.Developer)
	defer writeConfig()

	data, err := level.Load(*levelPath)
	if err != nil {
		return err
	}
	if *compilePath != "" {
		return level.Save(*compilePath, data)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := portal.NewMetrics(reg)
	serveMetrics(reg)

	var v *viewer
	err = mainthread.CallErr(func() error {
		var err error
		v, err = newViewer(data, metrics)
		return err
	})
	if err != nil {
		return err
	}
	defer mainthread.Call(func() {
		window.Shutdown()
		sdl.Quit()
	})

	last := time.Now()
	for {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now
		quit := false
		mainthread.Call(func() {
			quit = v.frame(dt)
		})
		if quit {
			return nil
		}
	}
}

type viewer struct {
	level  *level.Level[*glh.Mesh]
	drawer *glh.CellDrawer
	cam    camera.Camera
}

func newViewer(data []level.CellData, metrics *portal.Metrics) (*viewer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "sdl init")
	}
	w, h := int32(cvars.VideoWidth.Value()), int32(cvars.VideoHeight.Value())
	if err := window.SetMode("gofps", w, h, *fullscreen || cvars.VideoFullscreen.Bool()); err != nil {
		return nil, err
	}
	drawer, err := glh.NewCellDrawer()
	if err != nil {
		return nil, err
	}
	l, err := level.New[*glh.Mesh](data, drawer.NewMesh, level.Options{Metrics: metrics})
	if err != nil {
		return nil, err
	}
	v := &viewer{
		level:  l,
		drawer: drawer,
	}
	// start in the middle of the first cell, at eye height
	fp := data[0].Footprint
	v.cam.Origin = vec.Vec3{
		X: (fp.Min[0] + fp.Max[0]) / 2,
		Y: (fp.Min[1] + fp.Max[1]) / 2,
		Z: 1.6,
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.1, 0.1, 0.1, 1)
	return v, nil
}

func key(state []uint8, sc sdl.Scancode) float32 {
	if state[sc] != 0 {
		return 1
	}
	return 0
}

func readInput() camera.Input {
	ks := sdl.GetKeyboardState()
	return camera.Input{
		Forward:   key(ks, sdl.SCANCODE_W),
		Back:      key(ks, sdl.SCANCODE_S),
		MoveLeft:  key(ks, sdl.SCANCODE_A),
		MoveRight: key(ks, sdl.SCANCODE_D),
		Left:      key(ks, sdl.SCANCODE_LEFT),
		Right:     key(ks, sdl.SCANCODE_RIGHT),
		LookUp:    key(ks, sdl.SCANCODE_UP),
		LookDown:  key(ks, sdl.SCANCODE_DOWN),
	}
}

// frame runs one frame on the main thread. It returns true to quit.
func (v *viewer) frame(dt float32) bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.KeyboardEvent:
			if t.Type != sdl.KEYDOWN || t.Repeat != 0 {
				break
			}
			switch t.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				return true
			case sdl.SCANCODE_C:
				cvars.RPortalCull.Toggle()
				slog.Info("portal culling", slog.Bool("on", cvars.RPortalCull.Bool()))
			}
		}
	}
	v.cam.Update(readInput(), dt)

	w, h := window.Size()
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	fovx := cvars.Fov.Value()
	fovy := camera.FovY(fovx, float32(w), float32(h))
	v.drawer.Begin(camera.Projection(fovy, float32(w)/float32(h)), v.cam.View())
	v.level.Frame(v.cam.Origin, v.cam.Frustum(fovx, fovy))

	window.EndRendering()
	return false
}
