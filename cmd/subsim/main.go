package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/subsim/buoyancy"
	"github.com/oomph-ac/subsim/omath"
	"github.com/oomph-ac/subsim/rigidbody"
	"github.com/oomph-ac/subsim/settings"
	"github.com/oomph-ac/subsim/sim"
	"github.com/oomph-ac/subsim/vehicle"
	"github.com/oomph-ac/subsim/worker"
	"github.com/sirupsen/logrus"
)

var (
	configPath = flag.String("config", "subsim.toml", "path to the settings file, created with defaults if missing")
	duration   = flag.Float64("duration", 0, "seconds to simulate per scenario, overriding the settings")
	scenarios  = flag.String("scenarios", "", "comma separated scenarios to run, all if empty")
	workers    = flag.Int("workers", 0, "number of scenarios run concurrently, one per CPU if zero")
)

// The following program runs the scripted scenarios of a settings file headlessly and logs the telemetry of the
// submersible in each of them.
func main() {
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     false,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	sentryEnabled := false
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.Errorf("unable to initialize sentry: %v", err)
		} else {
			sentryEnabled = true
		}
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
	}

	err := run(log)
	if err != nil {
		log.Error(err)
		if sentryEnabled {
			sentry.CaptureException(err)
		}
	}
	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
	if err != nil {
		os.Exit(1)
	}
}

// run loads the settings and runs the selected scenarios on a worker pool. It returns once every scenario has
// finished. Failing scenarios are logged and do not stop the others.
func run(log *logrus.Logger) error {
	s, err := loadSettings(*configPath, log)
	if err != nil {
		return err
	}
	if s.Simulation.Debug {
		log.SetLevel(logrus.DebugLevel)
	}
	if *duration > 0 {
		s.Simulation.Duration = *duration
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	selected, err := selectScenarios(s.Scenarios, *scenarios)
	if err != nil {
		return err
	}

	pool := worker.New(*workers)
	defer pool.Close()
	for _, sc := range selected {
		pool.Submit(func() {
			entry := log.WithField("scenario", sc.Name)
			sum, err := runScenario(s, sc, entry)
			if err != nil {
				entry.Errorf("scenario failed: %v", err)
				return
			}
			entry.Infof("finished, checksum=%016x", sum)
		})
	}
	pool.Wait()
	return nil
}

func loadSettings(path string, log *logrus.Logger) (settings.Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := settings.SaveDefault(path); err != nil {
			return settings.Settings{}, err
		}
		log.Infof("created default settings at %s", path)
	}
	return settings.Load(path)
}

func selectScenarios(all []settings.Scenario, names string) ([]settings.Scenario, error) {
	if names == "" {
		return all, nil
	}
	var selected []settings.Scenario
outer:
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		for _, sc := range all {
			if sc.Name == name {
				selected = append(selected, sc)
				continue outer
			}
		}
		return nil, fmt.Errorf("unknown scenario %q", name)
	}
	return selected, nil
}

// runScenario plays a scenario back against the submersible and a passive marker buoy floating next to it, and
// returns the checksum of the world once it ends.
func runScenario(s settings.Settings, sc settings.Scenario, log *logrus.Entry) (uint64, error) {
	w, err := sim.NewWorld(s.Scene(), log.Logger)
	if err != nil {
		return 0, err
	}

	conf, err := s.BodyConfig()
	if err != nil {
		return 0, err
	}
	state, err := s.NewBodyState()
	if err != nil {
		return 0, err
	}
	opts := sim.Options{
		Name:        "sub",
		Handler:     &eventLogger{log: log},
		HistorySize: s.Simulation.HistorySize,
	}
	if s.Simulation.Debug {
		opts.Debugf = log.Debugf
	}
	sub, err := w.Add("sub", &state, conf, opts)
	if err != nil {
		return 0, err
	}

	buoyConf := sim.BodyConfig{Buoyancy: s.Buoyancy, Bounds: conf.Bounds.Grow(-conf.Bounds.Width() / 4)}
	buoy := rigidbody.NewBox(state.Position.Add(mgl64.Vec3{conf.Bounds.Width() * 2, 0, 0}), s.Body.Mass/16, mgl64.Vec3{
		buoyConf.Bounds.Width(), buoyConf.Bounds.Height(), buoyConf.Bounds.Length(),
	})
	if _, err := w.Add("buoy", &buoy, buoyConf, sim.Options{Name: "buoy"}); err != nil {
		return 0, err
	}

	src := sc.Source(sub.Sim.Dt())
	ticks := uint64(math.Ceil(s.Simulation.Duration * s.Simulation.TickRate))
	perSecond := uint64(math.Max(1, math.Round(s.Simulation.TickRate)))

	inputs := make(map[string]vehicle.Inputs, 1)
	for tick := uint64(0); tick < ticks; tick++ {
		inputs["sub"] = src.Inputs(tick, sub.Sim.Time())
		for _, res := range w.Tick(inputs) {
			if res.Outcome == sim.OutcomeDiverged {
				return 0, fmt.Errorf("%s diverged at tick %d", res.Name, res.Tick)
			}
			if res.Name == "sub" && (tick+1)%perSecond == 0 {
				logTelemetry(log, sub, res)
			}
		}
	}
	return w.Checksum(), nil
}

func logTelemetry(log *logrus.Entry, sub *sim.Body, res sim.BodyResult) {
	state := sub.State
	pitch, roll := omath.PitchRoll(state.Rotation())
	sea := sampleSea(sub.Sim, state.Position, res.Time)
	log.WithFields(logrus.Fields{
		"t":         omath.Round(res.Time, 2),
		"depth":     omath.Round(-state.Position.Y(), 2),
		"clearance": omath.Round(float64(sea.clearance), 2),
		"swell":     omath.Round(float64(sea.swell), 2),
		"slope":     omath.Round(sea.slope, 1),
		"speed":     omath.Round(state.LinearVelocity.Len(), 2),
		"heading":   omath.Round(mgl64.RadToDeg(omath.Yaw(state.Rotation())), 1),
		"pitch":     omath.Round(mgl64.RadToDeg(pitch), 1),
		"roll":      omath.Round(mgl64.RadToDeg(roll), 1),
		"fraction":  omath.Round(res.Buoyancy.Fraction, 3),
		"hold":      res.Control.DepthHold,
	}).Info("telemetry")
}

// seaState describes the water surface around a position.
type seaState struct {
	// clearance is the height of the surface above the position.
	clearance float32
	// swell is the difference between the highest and lowest surface point in a
	// 10×10 m patch centred on the position.
	swell float32
	// slope is the angle of the surface normal from vertical in degrees.
	slope float64
}

func sampleSea(s *sim.Simulator, pos mgl64.Vec3, t float64) seaState {
	const (
		patch   = 5
		spacing = 2.5
	)
	p := omath.Vec64To32(pos)
	field, level := s.Field(), float32(s.Scene().SurfaceY)

	h, normal := field.Sample32(p.X(), p.Z(), float32(t))
	heights := field.HeightGrid(p.X()-spacing*(patch-1)/2, p.Z()-spacing*(patch-1)/2, spacing, patch, patch, float32(t))
	lo, hi := heights[0], heights[0]
	for _, v := range heights[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	return seaState{
		clearance: level + h - p.Y(),
		swell:     hi - lo,
		slope:     mgl64.RadToDeg(math.Acos(omath.Clamp(omath.Vec32To64(normal).Dot(omath.Up), -1, 1))),
	}
}

// eventLogger logs the water and depth-hold events of the submersible.
type eventLogger struct {
	log *logrus.Entry
}

func (e *eventLogger) HandleWaterEnter(tick uint64, res buoyancy.Result) {
	e.log.Infof("entered water at tick %d (fraction=%.2f)", tick, res.Fraction)
}

func (e *eventLogger) HandleWaterExit(tick uint64) {
	e.log.Infof("left water at tick %d", tick)
}

func (e *eventLogger) HandleDepthHold(tick uint64, state vehicle.State) {
	e.log.Infof("depth hold %s at tick %d (target=%.2f)", state.DepthHold, tick, state.TargetDepth)
}
