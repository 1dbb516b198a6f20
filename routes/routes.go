package routes

import (
	"corpquiz/handlers"
	"corpquiz/middleware"
	"corpquiz/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	companyHandler *handlers.CompanyHandler,
	invitationHandler *handlers.InvitationHandler,
	requestHandler *handlers.RequestHandler,
	quizHandler *handlers.QuizHandler,
	questionHandler *handlers.QuestionHandler,
	answerHandler *handlers.AnswerHandler,
	quizResultHandler *handlers.QuizResultHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	notificationHandler *handlers.NotificationHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Health endpoints (public)
	health := router.Group("/health")
	{
		health.GET("", healthHandler.Health)
		health.GET("/postgres", healthHandler.Postgres)
		health.GET("/redis", healthHandler.Redis)
	}

	// Auth routes (public)
	auth := router.Group("/auth")
	{
		auth.POST("/sign-up", authHandler.SignUp)
		auth.POST("/sign-in", authHandler.SignIn)
	}

	// Everything else requires a verified bearer token.
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		me := protected.Group("/me")
		{
			me.GET("", authHandler.Me)
			me.GET("/invites", invitationHandler.Mine)
			me.GET("/requests", requestHandler.Mine)
			me.GET("/notifications", notificationHandler.List)
			me.POST("/notifications/:id/read", notificationHandler.MarkAsRead)
		}

		users := protected.Group("/users")
		{
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.Get)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}

		company := protected.Group("/company")
		{
			company.POST("", companyHandler.Create)
			company.GET("", companyHandler.List)
			company.GET("/invitations", companyHandler.SentInvitations)
			company.GET("/requests", companyHandler.ReceivedRequests)
			company.GET("/:id", companyHandler.Get)
			company.PUT("/:id", companyHandler.Update)
			company.DELETE("/:id", companyHandler.Delete)
			company.POST("/:id/join", companyHandler.Join)
			company.POST("/:id/invite/:user_id", companyHandler.Invite)
			company.POST("/:id/leave", companyHandler.Leave)
			company.GET("/:id/members", companyHandler.Members)
			company.DELETE("/:id/members/:user_id", companyHandler.RemoveMember)
			company.GET("/:id/admins", companyHandler.Admins)
			company.POST("/:id/admin/:user_id/appoint", companyHandler.AppointAdmin)
			company.POST("/:id/admin/:user_id/remove", companyHandler.RemoveAdmin)
			company.GET("/:id/quizzes", companyHandler.Quizzes)
		}

		invitations := protected.Group("/invitations")
		{
			invitations.POST("/:id/accept", invitationHandler.Accept)
			invitations.POST("/:id/decline", invitationHandler.Decline)
			invitations.POST("/:id/cancel", invitationHandler.Cancel)
		}

		requests := protected.Group("/requests")
		{
			requests.POST("/:id/accept", requestHandler.Accept)
			requests.POST("/:id/decline", requestHandler.Decline)
			requests.POST("/:id/cancel", requestHandler.Cancel)
		}

		quizzes := protected.Group("/quizzes")
		{
			quizzes.POST("", quizHandler.Create)
			quizzes.GET("/:id", quizHandler.Get)
			quizzes.PUT("/:id", quizHandler.Update)
			quizzes.DELETE("/:id", quizHandler.Delete)
			quizzes.GET("/:id/questions", quizHandler.Questions)
			quizzes.POST("/:id/questions", quizHandler.AddQuestion)
			quizzes.POST("/import/:company_id", quizHandler.Import)
		}

		questions := protected.Group("/questions")
		{
			questions.PUT("/:id", questionHandler.Update)
			questions.DELETE("/:id", questionHandler.Delete)
			questions.GET("/:id/answers", questionHandler.Answers)
			questions.POST("/:id/answers", questionHandler.AddAnswer)
		}

		answer := protected.Group("/answer")
		{
			answer.PUT("/:id", answerHandler.Update)
			answer.DELETE("/:id", answerHandler.Delete)
		}

		quizResult := protected.Group("/quiz_result")
		{
			quizResult.POST("/vote/:company_id/:quiz_id", quizResultHandler.Vote)
			quizResult.GET("/export_quiz_results/:company_id/:quiz_id/csv", quizResultHandler.ExportCSV)
			quizResult.GET("/export_quiz_results/:company_id/:quiz_id/json", quizResultHandler.ExportJSON)
			quizResult.GET("/average_score/me", quizResultHandler.MyAverageScore)
			quizResult.GET("/average_score/:company_id/:user_id", quizResultHandler.MemberAverageScore)
		}

		analytics := protected.Group("/analytics")
		{
			analytics.GET("/me/quizzes", analyticsHandler.MyQuizScores)
			analytics.GET("/me/last_attempts", analyticsHandler.MyLastAttempts)
			analytics.GET("/company/:id/members/average", analyticsHandler.CompanyMemberAverages)
			analytics.GET("/company/:id/member/:user_id/quiz/:quiz_id/trend", analyticsHandler.MemberQuizTrend)
			analytics.GET("/company/:id/last_attempts", analyticsHandler.CompanyLastAttempts)
		}
	}
}
