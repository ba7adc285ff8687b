package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"dealerbid/internal/domain/user"
	"dealerbid/internal/handler/api"
	"dealerbid/internal/handler/middleware"
	"dealerbid/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bidRequestHandler *api.BidRequestHandler,
	offerHandler *api.OfferHandler,
	quickBidHandler *api.QuickBidHandler,
	buyerHandler *api.BuyerHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, bidRequestHandler, offerHandler, quickBidHandler, buyerHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	bidRequestHandler *api.BidRequestHandler,
	offerHandler *api.OfferHandler,
	quickBidHandler *api.QuickBidHandler,
	buyerHandler *api.BuyerHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		// Token-gated endpoints: the submission token is the credential.
		quickBid := apiGroup.Group("/quick-bid")
		{
			addRoutes(quickBid, []route{
				{Method: http.MethodGet, Path: "", Handler: quickBidHandler.ValidateToken},
				{Method: http.MethodPost, Path: "", Handler: quickBidHandler.SubmitBid},
			})
		}

		bidRequests := apiGroup.Group("/bid-requests")
		bidRequests.Use(authMiddleware.RequireAuth())
		{
			sellerOnly := authMiddleware.RequireRoleAtLeast(user.RoleSeller)
			addRoutes(bidRequests, []route{
				{Method: http.MethodPost, Path: "", Handler: bidRequestHandler.Create, Mw: []gin.HandlerFunc{sellerOnly}},
				{Method: http.MethodGet, Path: "", Handler: bidRequestHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: bidRequestHandler.Get},
				{Method: http.MethodPost, Path: "/:id/invites", Handler: bidRequestHandler.InviteBuyers, Mw: []gin.HandlerFunc{sellerOnly}},
			})
		}

		offers := apiGroup.Group("/offers")
		offers.Use(authMiddleware.RequireAuth())
		{
			addRoutes(offers, []route{
				{Method: http.MethodPost, Path: "/:id/accept", Handler: offerHandler.Accept},
				{Method: http.MethodPost, Path: "/:id/decline", Handler: offerHandler.Decline},
			})
		}

		buyers := apiGroup.Group("/buyers")
		buyers.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleSeller))
		{
			addRoutes(buyers, []route{
				{Method: http.MethodGet, Path: "", Handler: buyerHandler.List},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
