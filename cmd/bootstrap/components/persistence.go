package components

import (
	"dealerbid/internal/infra/db"
	"dealerbid/internal/infra/readstore"
	"dealerbid/internal/infra/uow"
	"dealerbid/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewBidRequestReadStore,
			fx.As(new(queries.BidRequestReadStore)),
		),
		fx.Annotate(
			readstore.NewBuyerReadStore,
			fx.As(new(queries.BuyerReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
