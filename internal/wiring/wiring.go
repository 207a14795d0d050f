// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/wikipath/internal/adapters/cache"
	_ "go.trai.ch/wikipath/internal/adapters/config"
	_ "go.trai.ch/wikipath/internal/adapters/logger"
	_ "go.trai.ch/wikipath/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/wikipath/internal/adapters/wikixml"
	// Register app nodes.
	_ "go.trai.ch/wikipath/internal/app"
)
