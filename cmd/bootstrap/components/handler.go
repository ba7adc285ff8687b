package components

import (
	"dealerbid/internal/handler"
	"dealerbid/internal/handler/api"
	"dealerbid/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBidRequestHandler,
		api.NewOfferHandler,
		api.NewQuickBidHandler,
		api.NewBuyerHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
