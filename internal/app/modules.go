package app

import (
	"github.com/nfrund/dashview/internal/module"
	"github.com/nfrund/dashview/internal/modules/dashboard"
)

// NewModules returns every active module. This is the single source of
// truth for which features are enabled.
func NewModules(deps Dependencies) []module.Module {
	return []module.Module{
		dashboard.New(dashboardDeps(deps)),
	}
}
