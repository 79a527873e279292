package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/YetundeAlabi/E-voting/controllers"
	"github.com/YetundeAlabi/E-voting/middleware"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	// Auth routes
	router.POST("/signup", controllers.Signup)
	router.GET("/email-verify", controllers.VerifyEmail)
	router.POST("/auth/login", controllers.Login)

	// Public poll views
	router.GET("/polls", controllers.ListPolls)
	router.GET("/polls/:id", controllers.GetPoll)
	router.GET("/polls/:id/result", controllers.GetPollResult)
	router.GET("/polls/:id/candidates", controllers.ListCandidates)

	// Routes for authenticated voters
	voterRoutes := router.Group("/")
	voterRoutes.Use(middleware.JWTAuthMiddleware())
	voterRoutes.POST("/polls/:id/candidates/:cid/vote", controllers.CastVote)
	voterRoutes.GET("/my/polls", controllers.MyPolls)

	// Admin routes for poll and voter management
	adminRoutes := router.Group("/")
	adminRoutes.Use(middleware.JWTAuthMiddleware(), middleware.AdminRequired())
	adminRoutes.POST("/polls", controllers.CreatePoll)
	adminRoutes.GET("/polls/all", controllers.ListAllPolls)
	adminRoutes.PUT("/polls/:id", controllers.UpdatePoll)
	adminRoutes.DELETE("/polls/:id/delete", controllers.DeletePoll)
	adminRoutes.POST("/polls/:id/candidates", controllers.CreateCandidate)
	adminRoutes.GET("/polls/:id/voters", controllers.ListPollVoters)
	adminRoutes.POST("/polls/:id/voters", controllers.AddVoter)
	adminRoutes.DELETE("/polls/:id/voters/:vid/delete", controllers.RemoveVoter)
	adminRoutes.POST("/polls/:id/import", controllers.ImportVoters)
	adminRoutes.GET("/voters", controllers.ListAllVoters)
	adminRoutes.POST("/notifications/poll-open", controllers.SendPollNotifications)

	return router
}
