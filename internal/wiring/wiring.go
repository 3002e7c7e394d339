// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/bob-agent/internal/adapters/config"
	_ "go.trai.ch/bob-agent/internal/adapters/fs"
	_ "go.trai.ch/bob-agent/internal/adapters/logger"
	_ "go.trai.ch/bob-agent/internal/adapters/shell"
	_ "go.trai.ch/bob-agent/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/bob-agent/internal/app"
)
