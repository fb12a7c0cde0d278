package main

import (
	"fmt"
	"log"
	"net/http"

	"linkfolio/backend/internal/auth"
	"linkfolio/backend/internal/config"
	"linkfolio/backend/internal/database"
	"linkfolio/backend/internal/handler"
	"linkfolio/backend/internal/media"
	"linkfolio/backend/internal/reaction"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Linkfolio API
// @version         1.0
// @description     This is the API for the Linkfolio social network.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database and the media host
	database.Connect(config.AppConfig.DatabaseURL)
	media.Init()

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
			authRoutes.POST("/logout", auth.AuthMiddleware(), handler.Logout)
		}

		// Public profile reads (viewer optional, visibility-gated)
		publicRoutes := apiV1.Group("")
		publicRoutes.Use(auth.OptionalAuthMiddleware())
		{
			publicRoutes.GET("/users/:id", handler.GetUserByID)
			publicRoutes.GET("/users/:id/posts", handler.GetWall)
			publicRoutes.GET("/users/:id/images", handler.ListImages)
			publicRoutes.GET("/users/:id/curriculum", handler.GetCurriculum)
			publicRoutes.GET("/users/:id/followers", handler.ListFollowers)
			publicRoutes.GET("/users/:id/following", handler.ListFollowing)
			publicRoutes.GET("/posts/:id", handler.GetPost)
			publicRoutes.GET("/posts/:id/comments", handler.ListComments)
			publicRoutes.GET("/comments/:id/replies", handler.ListReplies)
			publicRoutes.POST("/media/read-url", handler.CreateReadURL)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", handler.SearchUsers) // Must be before /:id
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.PUT("/me", handler.UpdateMe)
			userRoutes.GET("/me/friends", handler.ListFriends)
			userRoutes.GET("/me/requests", handler.ListRequests)

			// Friendship routes
			userRoutes.GET("/:id/relation", handler.GetRelation)
			userRoutes.POST("/:id/request", handler.SendRequest)
			userRoutes.POST("/:id/accept", handler.AcceptRequest)
			userRoutes.POST("/:id/reject", handler.RejectRequest)
			userRoutes.POST("/:id/cancel", handler.CancelRequest)
			userRoutes.POST("/:id/remove", handler.RemoveFriend)

			// Follow routes
			userRoutes.POST("/:id/follow", handler.ToggleFollow)
		}

		// Post routes (protected)
		postRoutes := apiV1.Group("/posts")
		postRoutes.Use(auth.AuthMiddleware())
		{
			postRoutes.POST("", handler.CreatePost)
			postRoutes.GET("/trash", handler.ListTrash) // Must be before /:id
			postRoutes.PUT("/:id", handler.UpdatePost)
			postRoutes.POST("/:id/trash", handler.TrashPost)
			postRoutes.POST("/:id/restore", handler.RestorePost)
			postRoutes.DELETE("/:id", handler.DeletePost)
			postRoutes.POST("/:id/comments", handler.CreateComment)
			postRoutes.POST("/:id/like", handler.React(reaction.TargetPost, reaction.Like))
			postRoutes.POST("/:id/unlike", handler.React(reaction.TargetPost, reaction.Unlike))
		}

		// Comment and reply routes (protected)
		commentRoutes := apiV1.Group("/comments")
		commentRoutes.Use(auth.AuthMiddleware())
		{
			commentRoutes.DELETE("/:id", handler.DeleteComment)
			commentRoutes.POST("/:id/replies", handler.CreateReply)
			commentRoutes.POST("/:id/like", handler.React(reaction.TargetComment, reaction.Like))
			commentRoutes.POST("/:id/unlike", handler.React(reaction.TargetComment, reaction.Unlike))
		}

		replyRoutes := apiV1.Group("/replies")
		replyRoutes.Use(auth.AuthMiddleware())
		{
			replyRoutes.DELETE("/:id", handler.DeleteReply)
			replyRoutes.POST("/:id/like", handler.React(reaction.TargetReply, reaction.Like))
			replyRoutes.POST("/:id/unlike", handler.React(reaction.TargetReply, reaction.Unlike))
		}

		// Image routes (protected)
		imageRoutes := apiV1.Group("/images")
		imageRoutes.Use(auth.AuthMiddleware())
		{
			imageRoutes.POST("", handler.RegisterImage)
			imageRoutes.DELETE("/:id", handler.DeleteImage)
			imageRoutes.POST("/:id/like", handler.React(reaction.TargetImage, reaction.Like))
			imageRoutes.POST("/:id/unlike", handler.React(reaction.TargetImage, reaction.Unlike))
		}

		// Remaining protected routes
		protected := apiV1.Group("")
		protected.Use(auth.AuthMiddleware())
		{
			protected.GET("/feed", handler.GetFeed)
			protected.GET("/configuration", handler.GetConfiguration)
			protected.PUT("/configuration", handler.UpdateConfiguration)
			protected.PUT("/curriculum", handler.UpdateCurriculum)
			protected.POST("/curriculum/sections", handler.CreateSection)
			protected.PUT("/curriculum/sections/order", handler.ReorderSections) // Must be before /:id
			protected.PUT("/curriculum/sections/:id", handler.UpdateSection)
			protected.DELETE("/curriculum/sections/:id", handler.DeleteSection)
			protected.POST("/media/upload-url", handler.CreateUploadURL)
			protected.GET("/sessions", handler.ListSessions)
			protected.DELETE("/sessions/:id", handler.RevokeSession)
			protected.GET("/events", handler.StreamEvents)
		}
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{config.AppConfig.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	addr := ":" + config.AppConfig.Port
	fmt.Println("Server is running on " + addr)
	fmt.Println("Swagger UI is available at http://localhost" + addr + "/swagger/index.html")
	log.Fatal(http.ListenAndServe(addr, corsHandler))
}
