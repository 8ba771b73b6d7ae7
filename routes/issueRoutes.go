package routes

import (
	"janawaaz-be/controllers"
	"janawaaz-be/middlewares"
	"janawaaz-be/store"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue routes
func IssueRoutes(r *gin.Engine, ic *controllers.IssueController, users store.UserStore, dailyLimit int) {
	issue := r.Group("/api/issue")
	{
		issue.POST("/create", middlewares.AuthMiddleware(), middlewares.IssueRateLimiter(dailyLimit), ic.CreateIssue)
		issue.GET("/all", ic.GetAllIssues)
		issue.GET("/nearby", ic.GetNearbyIssues)
		issue.GET("/recent", ic.RecentIssues)
		issue.GET("/mine", middlewares.AuthMiddleware(), ic.GetMyIssues)
		issue.GET("/analytics", middlewares.AuthMiddleware(), middlewares.AdminOnly(users), ic.GetIssueAnalytics)
		issue.GET("/:id", ic.GetIssue)
		issue.POST("/:id/upvote", middlewares.AuthMiddleware(), ic.UpvoteIssue)
		issue.PATCH("/:id/status", middlewares.AuthMiddleware(), middlewares.AdminOnly(users), ic.UpdateIssueStatus)
		issue.POST("/:id/confirm", middlewares.AuthMiddleware(), ic.ConfirmResolution)
		issue.POST("/:id/reopen", middlewares.AuthMiddleware(), ic.ReopenIssue)
	}
}
