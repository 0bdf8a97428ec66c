package crazyeights

import (
	"github.com/fadedpez/crazyeights/internal/discord"
	"github.com/fadedpez/crazyeights/internal/games"
	"github.com/fadedpez/crazyeights/pkg/services/statistics"
)

// Factory creates crazy eights managers
type Factory struct {
	stats   *statistics.Service
	options ManagerOptions

	// manager is the last manager created, kept for maintenance
	manager *Manager
}

// NewFactory creates a new crazy eights factory
func NewFactory(stats *statistics.Service, options ManagerOptions) *Factory {
	return &Factory{
		stats:   stats,
		options: options,
	}
}

// CreateManager creates a new crazy eights manager bound to session
func (f *Factory) CreateManager(session discord.SessionHandler) games.Manager {
	f.manager = NewManager(session, f.stats, f.options)
	return f.manager
}

// Manager returns the most recently created manager, or nil
func (f *Factory) Manager() *Manager {
	return f.manager
}
