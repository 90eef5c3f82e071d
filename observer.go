package keel

import "go.uber.org/zap"

// StepObserver is notified once after every completed step. The
// numerical core performs no I/O of its own; any per-step diagnostic
// output belongs here.
type StepObserver interface {
	OnStep(stepIndex int, simTime, dt float64)
}

// StepObserverFunc adapts a plain function to the StepObserver
// interface.
type StepObserverFunc func(stepIndex int, simTime, dt float64)

func (f StepObserverFunc) OnStep(stepIndex int, simTime, dt float64) {
	f(stepIndex, simTime, dt)
}

// LogObserver logs every step at debug level.
type LogObserver struct {
	logger *zap.Logger
}

func NewLogObserver(logger *zap.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnStep(stepIndex int, simTime, dt float64) {
	o.logger.Debug("step",
		zap.Int("step", stepIndex),
		zap.Float64("t", simTime),
		zap.Float64("dt", dt),
	)
}
