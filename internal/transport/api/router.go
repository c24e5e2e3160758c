package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/dzstore/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout  = 3 * time.Second
	DefaultDeliveryTimeout = 30 * time.Second
	DefaultAdminTimeout    = 15 * time.Second
)

const (
	RouteGroup            = "/api"
	RegisterRoute         = "/user/register"
	LoginRoute            = "/user/login"
	UserOrdersRoute       = "/user/orders"
	UserOrderDeliverRoute = "/user/orders/:id/deliver"
	BalanceRoute          = "/user/balance"
	TransactionsRoute     = "/user/transactions"
	StoreItemsRoute       = "/store/items"
	StoreCategoriesRoute  = "/store/categories"
	StoreSettingsRoute    = "/store/settings"
	PurchaseRoute         = "/store/purchase"
	HealthRoute           = "/health"
)

const (
	AdminGroup                = "/admin"
	AdminItemsRoute           = "/items"
	AdminItemRoute            = "/items/:id"
	AdminItemActiveRoute      = "/items/:id/active"
	AdminItemImageRoute       = "/items/:id/image"
	AdminOrdersRoute          = "/orders"
	AdminOrderRetryRoute      = "/orders/:id/retry"
	AdminOrderCancelRoute     = "/orders/:id/cancel"
	AdminOrderNotesRoute      = "/orders/:id/notes"
	AdminUserPointsRoute      = "/users/:id/points"
	AdminUserLedgerRoute      = "/users/:id/ledger"
	AdminSettingsRoute        = "/settings"
	AdminDeliveryHistoryRoute = "/delivery/history"
	AdminPlayerQueueRoute     = "/delivery/player/:steamId"
	AdminGiveRoute            = "/delivery/give"
)

type RouterArgs struct {
	Logger          *logrus.Logger
	JWTSecretKey    []byte
	UserService     UserServicer
	CatalogService  CatalogServicer
	SettingsService SettingsServicer
	OrderService    OrderServicer
	DeliveryService DeliveryServicer
	LedgerService   LedgerServicer
	GameServer      GameServer
	Giver           ItemDeliverer
	// PurchaseLimiter is optional, purchases are not limited without it.
	PurchaseLimiter middlewares.RateLimiter
	// DeliveryTimeout bounds one game server call made on behalf of a player or an admin retry.
	DeliveryTimeout time.Duration
	// AdminTimeout bounds the direct game server passthroughs.
	AdminTimeout time.Duration
	// CORSOrigins empty allows every origin.
	CORSOrigins []string
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	if args.Logger == nil {
		args.Logger = logrus.StandardLogger()
	}
	if args.DeliveryTimeout <= 0 {
		args.DeliveryTimeout = DefaultDeliveryTimeout
	}
	if args.AdminTimeout <= 0 {
		args.AdminTimeout = DefaultAdminTimeout
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.Logger(args.Logger))
	r.Use(cors.New(corsConfig(args.CORSOrigins)))
	r.Use(middlewares.Errors())

	r.GET(HealthRoute, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := NewAuthHandler(args.UserService)
	storeHandler := NewStoreHandler(args.CatalogService, args.SettingsService, args.OrderService, args.DeliveryTimeout)
	accountHandler := NewAccountHandler(args.OrderService, args.DeliveryService, args.LedgerService, args.DeliveryTimeout)
	itemsHandler := NewAdminItemsHandler(args.CatalogService)
	ordersHandler := NewAdminOrdersHandler(args.OrderService, args.DeliveryService, args.DeliveryTimeout)
	usersHandler := NewAdminUsersHandler(args.LedgerService)
	settingsHandler := NewAdminSettingsHandler(args.SettingsService)
	deliveryHandler := NewAdminDeliveryHandler(args.GameServer, args.Giver, args.DeliveryService, args.AdminTimeout)

	api := r.Group(RouteGroup)

	api.POST(RegisterRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Register)
	api.POST(LoginRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Login)

	api.GET(StoreItemsRoute, storeHandler.Items)
	api.GET(StoreCategoriesRoute, storeHandler.Categories)
	api.GET(StoreSettingsRoute, storeHandler.Settings)

	authorized := api.Group("", middlewares.AuthRequired(args.JWTSecretKey))

	purchase := []gin.HandlerFunc{storeHandler.Purchase}
	if args.PurchaseLimiter != nil {
		purchase = append([]gin.HandlerFunc{
			middlewares.RateLimit(args.PurchaseLimiter, "purchase", args.Logger),
		}, purchase...)
	}
	authorized.POST(PurchaseRoute, purchase...)

	authorized.GET(UserOrdersRoute, accountHandler.Orders)
	authorized.POST(UserOrderDeliverRoute, accountHandler.Deliver)
	authorized.GET(BalanceRoute, accountHandler.Balance)
	authorized.GET(TransactionsRoute, accountHandler.Transactions)

	admin := authorized.Group(AdminGroup, middlewares.AdminRequired(args.UserService))

	admin.GET(AdminItemsRoute, itemsHandler.Index)
	admin.POST(AdminItemsRoute, itemsHandler.Create)
	admin.PUT(AdminItemRoute, itemsHandler.Update)
	admin.PATCH(AdminItemActiveRoute, itemsHandler.SetActive)
	admin.POST(AdminItemImageRoute, itemsHandler.UploadImage)

	admin.GET(AdminOrdersRoute, ordersHandler.Index)
	admin.POST(AdminOrderRetryRoute, ordersHandler.Retry)
	admin.POST(AdminOrderCancelRoute, ordersHandler.Cancel)
	admin.PUT(AdminOrderNotesRoute, ordersHandler.Notes)

	admin.POST(AdminUserPointsRoute, usersHandler.AdjustPoints)
	admin.GET(AdminUserLedgerRoute, usersHandler.Ledger)

	admin.GET(AdminSettingsRoute, settingsHandler.Show)
	admin.PUT(AdminSettingsRoute, settingsHandler.Update)

	admin.GET(AdminDeliveryHistoryRoute, deliveryHandler.History)
	admin.GET(AdminPlayerQueueRoute, deliveryHandler.PlayerQueue)
	admin.DELETE(AdminPlayerQueueRoute, deliveryHandler.ClearPlayerQueue)
	admin.POST(AdminGiveRoute, deliveryHandler.Give)

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept", middlewares.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Authorization", middlewares.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
