// Package logging constructs the zap logger shared by the solver, model
// builder, and job packages.
package logging

import "go.uber.org/zap"

// New builds a production zap logger, or a development logger (human
// readable, debug level) when dev is true.
func New(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
