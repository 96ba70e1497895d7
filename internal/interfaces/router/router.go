package router

import (
	"net/http"

	authsvc "helwati-backend/internal/application/auth"
	favsvc "helwati-backend/internal/application/favorites"
	notifsvc "helwati-backend/internal/application/notifications"
	productsvc "helwati-backend/internal/application/products"
	profilesvc "helwati-backend/internal/application/profile"
	sellersvc "helwati-backend/internal/application/sellers"
	uploadsvc "helwati-backend/internal/application/uploads"
	"helwati-backend/internal/config"
	"helwati-backend/internal/infrastructure/database"
	authhandler "helwati-backend/internal/interfaces/handlers/auth"
	favhandler "helwati-backend/internal/interfaces/handlers/favorites"
	healthhandler "helwati-backend/internal/interfaces/handlers/health"
	notifhandler "helwati-backend/internal/interfaces/handlers/notifications"
	producthandler "helwati-backend/internal/interfaces/handlers/products"
	profilehandler "helwati-backend/internal/interfaces/handlers/profile"
	sellerhandler "helwati-backend/internal/interfaces/handlers/sellers"
	uploadhandler "helwati-backend/internal/interfaces/handlers/uploads"
	"helwati-backend/internal/middleware"
	"helwati-backend/internal/pkg/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionHandler, redisClient, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	rdb := redisClient
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.ResponseFormatter())
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	app.Use(func(c *fiber.Ctx) error {
		user := c.Locals("user")
		if user == nil {
			c.Locals("user", nil)
		}
		return c.Next()
	})

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             nil,
		SupabaseURL:    cfg.SupabaseURL,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", hh.Dashboard)
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		hh.DB = &gormDBPinger{db: db}
	}

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}

	var userFinder authsvc.UserFinder
	if db != nil {
		userFinder = &authsvc.GormUserFinder{DB: db}
	}
	ah := &authhandler.Handlers{
		DB:         db,
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", ah.Register)
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	if db != nil && rdb != nil {
		// Profile
		ps := &profilesvc.Service{DB: db, Rdb: rdb}
		ph := &profilehandler.Handlers{Service: ps}
		pg := app.Group("/api/v1/profile", middleware.RequireAuth())
		pg.Get("/", ph.GetProfile)
		pg.Put("/update", ph.UpdateProfile)
		pg.Patch("/switch-role", ph.SwitchRole)

		// Products — feed and detail are public, the browse surface needs no login
		prs := &productsvc.Service{DB: db}
		prh := &producthandler.Handlers{Service: prs}
		app.Get("/api/v1/products/feed", prh.Feed)
		app.Get("/api/v1/products/view-product/:product_id", prh.ViewProduct)
		prg := app.Group("/api/v1/products", middleware.RequireAuth())
		prg.Post("/create-product", middleware.AuthorizePermission(constants.CreateProduct), prh.CreateProduct)
		prg.Get("/my-products", middleware.AuthorizePermission(constants.ViewDashboard), prh.MyProducts)
		prg.Put("/edit-product", middleware.AuthorizePermission(constants.EditProduct), prh.EditProduct)
		prg.Delete("/remove-product", middleware.AuthorizePermission(constants.RemoveProduct), prh.RemoveProduct)

		// Notifications (the favorites fan-out publishes through this service)
		ns := &notifsvc.Service{DB: db, Rdb: rdb}
		nh := &notifhandler.Handlers{Service: ns}
		ng := app.Group("/api/v1/notifications", middleware.RequireAuth())
		ng.Get("/", nh.List)
		ng.Get("/unread-count", nh.UnreadCount)
		ng.Get("/stream", nh.Stream)
		ng.Patch("/mark-read/:notification_id", nh.MarkRead)
		ng.Patch("/mark-all-read", nh.MarkAllRead)
		ng.Delete("/delete/:notification_id", nh.Delete)
		ng.Delete("/clear-all", nh.ClearAll)

		// Favorites
		fs := &favsvc.Service{DB: db, Notifier: ns}
		fh := &favhandler.Handlers{Service: fs}
		fg := app.Group("/api/v1/favorites", middleware.RequireAuth())
		fg.Post("/add", fh.AddFavorite)
		fg.Delete("/remove", fh.RemoveFavorite)
		fg.Get("/my-favorites", fh.MyFavorites)
		fg.Delete("/clear-all", fh.ClearFavorites)

		// Sellers — public profile and WhatsApp handoff, gated dashboard
		ss := &sellersvc.Service{DB: db}
		sh := &sellerhandler.Handlers{Service: ss}
		app.Get("/api/v1/sellers/view-seller/:seller_id", sh.ViewSeller)
		app.Get("/api/v1/sellers/whatsapp-link/:product_id", sh.WhatsAppLink)
		sg := app.Group("/api/v1/sellers", middleware.RequireAuth())
		sg.Get("/dashboard-stats", middleware.AuthorizePermission(constants.ViewDashboard), sh.DashboardStats)

		// Uploads — signed URLs against Supabase storage
		sc := &uploadsvc.HTTPClient{BaseURL: cfg.SupabaseURL, SecretKey: cfg.SupabaseSecretKey}
		upsvc := &uploadsvc.Service{Client: sc, SupabaseURL: cfg.SupabaseURL}
		uph := &uploadhandler.Handlers{Service: upsvc}
		upg := app.Group("/api/v1/uploads", middleware.RequireAuth())
		upg.Post("/product-image", middleware.AuthorizePermission(constants.UploadImage), uph.UploadProductImage)
		upg.Post("/avatar", uph.UploadAvatar)
	}

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
