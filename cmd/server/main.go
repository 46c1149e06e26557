package main

import (
	"log"
	"strconv"
	"time"

	"strivehub/config"
	"strivehub/controllers"
	"strivehub/db"
	"strivehub/internal/ratelimit"
	"strivehub/middlewares"
	"strivehub/progression"
	"strivehub/routes"
	"strivehub/services"
	"strivehub/utils"
	"strivehub/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.prod.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.JWT.Secret)
	utils.SetJWTExpiry(cfg.JWT.Expiry)

	services.InitAIService(cfg)

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Redis is optional; likes and rate limiting degrade without it
	if cfg.Redis.Addr != "" {
		if err := db.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			log.Printf("Redis unavailable, continuing without it: %v", err)
		} else {
			log.Println("Connected to Redis")
		}
	}

	if err := middlewares.InitCasbin(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to initialize RBAC: %v", err)
	}

	// Seed initial learning content and sample users
	utils.SeedLearningData()
	utils.PopulateTestUsers()

	// Day boundaries for streaks follow the configured timezone
	location := time.Local
	if cfg.Server.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Server.Timezone)
		if err != nil {
			log.Fatalf("Invalid timezone %q: %v", cfg.Server.Timezone, err)
		}
		location = loc
	}

	store := progression.NewMongoStore(db.MongoClient, db.MongoDatabase)
	engine := progression.NewEngine(store,
		progression.WithNotifier(websocket.HubNotifier{}),
		progression.WithLocation(location),
	)
	limiter := ratelimit.New(db.RedisClient)
	controllers.Init(engine, limiter)

	// Set up the Gin router and configure routes
	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// Set trusted proxies (adjust as needed)
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Configure CORS for the frontend (e.g., localhost:5173 for Vite)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public routes for authentication
	router.POST("/signup", routes.SignUpRouteHandler)
	router.POST("/login", routes.LoginRouteHandler)
	router.POST("/verifyToken", routes.VerifyTokenRouteHandler)

	// Protected routes (JWT auth)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/user/fetchprofile", routes.GetProfileRouteHandler)
		auth.PUT("/user/updateprofile", routes.UpdateProfileRouteHandler)
		auth.GET("/users/:id/xp-history", routes.GetXPHistoryRouteHandler)
		auth.GET("/users/:id/activity", routes.GetActivityRouteHandler)
		auth.GET("/users/:id", routes.GetUserRouteHandler)
		auth.GET("/leaderboard", routes.GetLeaderboardRouteHandler)

		routes.SetupLearningRoutes(auth)
		routes.SetupCVRoutes(auth)
		routes.SetupJobRoutes(auth)
		routes.SetupCommunityRoutes(auth)
	}

	// WebSocket endpoint for live gamification events. Registered outside the
	// auth group because browsers cannot set headers on websocket upgrades;
	// the handler accepts the JWT via ?token= and validates it itself.
	router.GET("/ws/gamification", websocket.GamificationWebSocketHandler)

	routes.SetupAdminRoutes(router)

	return router
}
