package config

import "go.uber.org/zap"

// NewLogger builds a development logger for LOG_LEVEL=debug and a JSON
// production logger otherwise.
func NewLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
