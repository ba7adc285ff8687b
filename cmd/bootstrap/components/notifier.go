package components

import (
	"context"

	"dealerbid/internal/notify"
	"dealerbid/internal/pkg/clock"
	"dealerbid/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		NewDispatcher,
	),
	fx.Invoke(StartDispatcher),
)

func NewDispatcher(pool *pgxpool.Pool, cfg config.Config, clk clock.Clock) *notify.Dispatcher {
	return notify.NewDispatcher(pool, cfg, clk,
		notify.NewConsoleSMSSender(),
		notify.NewConsoleEmailSender(),
	)
}

// StartDispatcher runs the outbox poller for the lifetime of the app.
func StartDispatcher(lc fx.Lifecycle, dispatcher *notify.Dispatcher) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go dispatcher.Run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
