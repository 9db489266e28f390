package server

import (
	"github.com/mcpjungle/oauth2core/storage"
)

// Engine is the constructed entry point exposing the three endpoints.
// It is constructed once per configuration/storage pair (constructor
// injection) rather than reading process-wide state.
type Engine struct {
	cfg   Config
	store storage.Adapter
}

// New builds an Engine over the given configuration and storage adapter.
func New(cfg Config, store storage.Adapter) *Engine {
	return &Engine{cfg: cfg.withDefaults(), store: store}
}
