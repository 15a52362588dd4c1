package app

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/nfrund/dashview/internal/config"
	dash "github.com/nfrund/dashview/internal/dashboard"
	"github.com/nfrund/dashview/internal/modules/dashboard"
	"github.com/nfrund/dashview/internal/pubsub"
	"github.com/nfrund/dashview/internal/registry"
	"github.com/nfrund/dashview/internal/rendering"
)

// Dependencies holds the core services that are required by the application's modules.
type Dependencies struct {
	Config     *config.Config
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
	Renderer   rendering.Renderer
	Fetcher    dash.Fetcher
}

// NewContainer registers the core service providers. Services are built
// lazily on first Resolve.
func NewContainer(cfg *config.Config) do.Injector {
	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.Provide(injector, newRenderer)
	do.Provide(injector, newEventBus)
	do.Provide(injector, newDashboardClient)
	return injector
}

// Resolve builds the Dependencies from a container.
func Resolve(i do.Injector) (Dependencies, error) {
	cfg, err := do.Invoke[*config.Config](i)
	if err != nil {
		return Dependencies{}, fmt.Errorf("resolve config: %w", err)
	}
	bus, err := do.Invoke[*pubsub.WatermillBridge](i)
	if err != nil {
		return Dependencies{}, fmt.Errorf("resolve event bus: %w", err)
	}
	renderer, err := do.Invoke[*rendering.UniversalRenderer](i)
	if err != nil {
		return Dependencies{}, fmt.Errorf("resolve renderer: %w", err)
	}
	client, err := do.Invoke[*dash.Client](i)
	if err != nil {
		return Dependencies{}, fmt.Errorf("resolve dashboard client: %w", err)
	}

	return Dependencies{
		Config:     cfg,
		Publisher:  bus,
		Subscriber: bus,
		Renderer:   renderer,
		Fetcher:    client,
	}, nil
}

func newRenderer(do.Injector) (*rendering.UniversalRenderer, error) {
	return rendering.NewUniversalRenderer(), nil
}

func newEventBus(do.Injector) (*pubsub.WatermillBridge, error) {
	return pubsub.NewWatermillBridge(), nil
}

func newDashboardClient(i do.Injector) (*dash.Client, error) {
	cfg, err := do.Invoke[*config.Config](i)
	if err != nil {
		return nil, err
	}
	return dash.NewClient(cfg.DashboardURL, dash.WithTimeout(cfg.FetchTimeout)), nil
}

// NewRegistry creates the registry modules boot against, pre-filled with the
// core services they share.
func NewRegistry(deps Dependencies) *registry.Registry {
	reg := registry.New(deps.Config)
	registry.Set(reg, registry.RendererKey, deps.Renderer)
	registry.Set(reg, registry.PublisherKey, deps.Publisher)
	registry.Set(reg, registry.SubscriberKey, deps.Subscriber)
	return reg
}

// dashboardDeps creates the dependency struct for the dashboard module.
func dashboardDeps(deps Dependencies) dashboard.Dependencies {
	return dashboard.Dependencies{
		Fetcher: deps.Fetcher,
	}
}
