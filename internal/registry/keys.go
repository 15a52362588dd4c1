package registry

import (
	"github.com/nfrund/dashview/internal/dashboard"
	"github.com/nfrund/dashview/internal/pubsub"
	"github.com/nfrund/dashview/internal/rendering"
)

// Core service keys are set by the application before modules register.
// Module keys are set by the module that owns the service.
var (
	PublisherKey  = Key[pubsub.Publisher]("core.publisher")
	SubscriberKey = Key[pubsub.Subscriber]("core.subscriber")
	RendererKey   = Key[rendering.Renderer]("core.renderer")

	DashboardFetcherKey = Key[dashboard.Fetcher]("dashboard.fetcher")
)
