package server

import (
	"os"
	"strings"
	"time"

	"github.com/playverse/community-backend/internal/middleware"

	commentHttp "github.com/playverse/community-backend/internal/modules/comment/delivery/http"
	commentRepo "github.com/playverse/community-backend/internal/modules/comment/repository"
	commentService "github.com/playverse/community-backend/internal/modules/comment/service"

	eventHttp "github.com/playverse/community-backend/internal/modules/event/delivery/http"
	eventRepo "github.com/playverse/community-backend/internal/modules/event/repository"
	eventService "github.com/playverse/community-backend/internal/modules/event/service"

	followHttp "github.com/playverse/community-backend/internal/modules/follow/delivery/http"
	followRepo "github.com/playverse/community-backend/internal/modules/follow/repository"
	followService "github.com/playverse/community-backend/internal/modules/follow/service"

	notiHttp "github.com/playverse/community-backend/internal/modules/notification/delivery/http"
	notifRepo "github.com/playverse/community-backend/internal/modules/notification/repository"
	notifService "github.com/playverse/community-backend/internal/modules/notification/service"

	reactionHttp "github.com/playverse/community-backend/internal/modules/reaction/delivery/http"
	reactionRepo "github.com/playverse/community-backend/internal/modules/reaction/repository"
	reactionService "github.com/playverse/community-backend/internal/modules/reaction/service"

	userHttp "github.com/playverse/community-backend/internal/modules/user/delivery/http"
	userRepo "github.com/playverse/community-backend/internal/modules/user/repository"
	userService "github.com/playverse/community-backend/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client, tokenExpiration time.Duration) *Server {
	users := userRepo.NewUserRepository(db)
	authSvc := userService.NewAuthService(users, tokenExpiration)
	authHandler := userHttp.NewAuthHandler(authSvc)

	// Notification module (side-channel the engines fan out through)
	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient)

	reactions := reactionRepo.NewReactionRepository(db)
	reactionSvc := reactionService.NewReactionService(reactions, redisClient)
	reactionHandler := reactionHttp.NewReactionHandler(reactionSvc)

	comments := commentRepo.NewCommentRepository(db)
	commentSvc := commentService.NewCommentService(comments, notificationSvc, redisClient)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	follows := followRepo.NewFollowRepository(db)
	followSvc := followService.NewFollowService(follows, users, notificationSvc)
	followHandler := followHttp.NewFollowHandler(followSvc)

	events := eventRepo.NewEventRepository(db)
	eventSvc := eventService.NewEventService(events)
	eventHandler := eventHttp.NewEventHandler(eventSvc)

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware()

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}
	api.GET("/events", eventHandler.ListEvents)

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Comment routes
		protected.POST("/comments", commentHandler.CreateComment)
		protected.GET("/comments", commentHandler.ListComments)
		protected.PUT("/comments/:comment_id", commentHandler.UpdateComment)
		protected.DELETE("/comments/:comment_id", commentHandler.DeleteComment)

		// Reaction routes
		protected.POST("/reactions", reactionHandler.ToggleReaction)
		protected.GET("/reactions/:content_type/:content_id", reactionHandler.GetReactions)

		// Follow routes
		protected.POST("/users/:user_id/follow", followHandler.FollowAction)
		protected.GET("/users/:user_id/follow-status", followHandler.FollowStatus)

		// Event registration routes
		protected.POST("/events/:event_id/register", eventHandler.Register)
		protected.DELETE("/events/:event_id/register", eventHandler.Unregister)
		protected.GET("/events/:event_id/register", eventHandler.RegistrationStatus)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
