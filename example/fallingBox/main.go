package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/akmonengine/keel"
	"github.com/akmonengine/keel/scenario"
	"go.uber.org/zap"
)

// defaultScenario drops a unit box under weak gravity and flicks its
// first corner once, shortly after release.
var defaultScenario = &scenario.Scenario{
	Name:    "falling box",
	Gravity: []float64{0, -0.98, 0},
	Dt:      1.0 / 60.0,
	Steps:   200,
	Body: scenario.BodyConfig{
		Shape:      "box",
		Dimensions: []float64{1, 1, 1},
		Density:    10,
	},
	Impulses: []scenario.ImpulseConfig{
		{Step: 1, Force: []float64{0.15, 0.25, 0.03}, Point: 0},
	},
}

func main() {
	path := flag.String("scenario", "", "path to a YAML scenario file (default: built-in falling box)")
	verbose := flag.Bool("v", false, "log every step")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	sc := defaultScenario
	if *path != "" {
		sc, err = scenario.LoadFile(*path)
		if err != nil {
			logger.Fatal("load scenario", zap.Error(err))
		}
	}

	var observer keel.StepObserver
	if *verbose {
		observer = keel.NewLogObserver(logger)
	}

	logger.Info("running scenario",
		zap.String("name", sc.Name),
		zap.Int("steps", sc.Steps),
		zap.Float64("dt", sc.Dt),
	)

	body, err := sc.Run(observer)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	pose := body.Pose()
	logger.Info("finished",
		zap.Any("position", pose.Position),
		zap.Any("orientation", pose.Rotation),
		zap.Any("velocity", body.Velocity),
		zap.Any("angular_velocity", body.AngularVelocity),
	)
}
