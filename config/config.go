package config

import "github.com/yohamta/donburi/ecs"

// Default is the single render layer used by the host scene
const Default ecs.LayerID = 0

// Config holds general host window configuration
type Config struct {
	Width  int
	Height int
	Title  string
}

// FeedConfig holds the live event feed options
type FeedConfig struct {
	Addr       string // Empty disables the feed
	SendBuffer int    // Per-client outgoing message buffer
	Commands   int    // Pending command buffer between feed clients and the tick
}

// PersistenceConfig holds the settings store options
type PersistenceConfig struct {
	AppName string
	Enabled bool
}

// Global configuration instances
var C *Config
var Feed FeedConfig
var Persistence PersistenceConfig

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
		Title:  "Input Assignment",
	}

	Feed = FeedConfig{
		Addr:       "",
		SendBuffer: 256,
		Commands:   64,
	}

	Persistence = PersistenceConfig{
		AppName: "inputassign",
		Enabled: true,
	}
}
