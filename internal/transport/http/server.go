package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "gopherpost/internal/app"
	"gopherpost/internal/bootstrap"
	"gopherpost/internal/cache"
	"gopherpost/internal/limiter"
	"gopherpost/internal/platform/rabbitmq"
	"gopherpost/internal/repository"
	"gopherpost/internal/transport/http/handler"
	"gopherpost/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)
	voteRepo := repository.NewVoteRepository(app.MySQL)
	activityRepo := repository.NewActivityRepository(app.MySQL)

	loginLimiter := limiter.NewLoginLimiter(
		app.Redis,
		time.Duration(app.Config.Redis.LoginWindowSeconds)*time.Second,
		app.Config.Redis.LoginMaxAttempts,
	)
	latestCache := cache.NewLatestPostsCache(
		app.Redis,
		time.Duration(app.Config.Redis.LatestTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.LatestDirtyTTLSeconds)*time.Second,
	)
	activityPublisher := rabbitmq.NewActivityPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		loginLimiter,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	postService := appsvc.NewPostService(postRepo, activityPublisher, latestCache)
	voteService := appsvc.NewVoteService(voteRepo, postRepo, activityPublisher)
	activityService := appsvc.NewActivityService(activityRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	voteHandler := handler.NewVoteHandler(voteService)
	activityHandler := handler.NewActivityHandler(activityService)

	v1 := router.Group("/api/v1")
	v1.POST("/login", authHandler.Login)

	userGroup := v1.Group("/users")
	userGroup.POST("", userHandler.Register)
	userGroup.GET("/:user_id", userHandler.GetUser)

	authGroup := v1.Group("/auth")
	authGroup.GET("/me", middleware.Auth(authService), authHandler.Me)

	postGroup := v1.Group("/posts")
	postGroup.Use(middleware.Auth(authService))
	postGroup.POST("", postHandler.CreatePost)
	postGroup.GET("", postHandler.ListPosts)
	postGroup.GET("/latest/:count", postHandler.LatestPosts)
	postGroup.GET("/:post_id", postHandler.GetPost)
	postGroup.PUT("/:post_id", postHandler.UpdatePost)
	postGroup.DELETE("/:post_id", postHandler.DeletePost)

	voteGroup := v1.Group("/votes")
	voteGroup.Use(middleware.Auth(authService))
	voteGroup.POST("", voteHandler.Toggle)
	voteGroup.GET("/:post_id", voteHandler.Count)

	activityGroup := v1.Group("/activity")
	activityGroup.Use(middleware.Auth(authService))
	activityGroup.GET("", activityHandler.ListMine)

	return router
}
