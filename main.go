package main

import (
	"fmt"
	"log"
	"time"

	"corpquiz/config"
	"corpquiz/handlers"
	"corpquiz/middleware"
	"corpquiz/models"
	"corpquiz/repository"
	"corpquiz/routes"
	"corpquiz/scheduler"
	"corpquiz/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.CompanyMember{},
		&models.CompanyInvitation{},
		&models.CompanyRequest{},
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
		&models.QuizResult{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient := config.InitRedis(cfg)
	voteStore := services.NewRedisVoteStore(redisClient)

	store := repository.NewGormStore(db)

	var idp *services.IdPVerifier
	if cfg.IdPDomain != "" {
		idp, err = services.NewIdPVerifier(cfg.IdPDomain, cfg.IdPAudience)
		if err != nil {
			log.Fatalf("Failed to configure identity provider: %v", err)
		}
	}

	perms := services.NewPermissionService()
	authService := services.NewAuthService(store, cfg.JWTSecret, cfg.JWTAlgorithm,
		time.Duration(cfg.TokenLifetimeMin)*time.Minute, idp)
	userService := services.NewUserService(store, perms)
	companyService := services.NewCompanyService(store, perms)
	memberService := services.NewMemberService(store, perms)
	invitationService := services.NewInvitationService(store, perms)
	requestService := services.NewRequestService(store, perms)
	quizService := services.NewQuizService(store, perms)
	questionService := services.NewQuestionService(store, perms)
	importService := services.NewImportService(store, perms)
	voteService := services.NewVoteService(store, voteStore, perms)
	analyticsService := services.NewAnalyticsService(store, perms)
	notificationService := services.NewNotificationService(store)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	companyHandler := handlers.NewCompanyHandler(companyService, memberService, invitationService, requestService, quizService)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	requestHandler := handlers.NewRequestHandler(requestService)
	quizHandler := handlers.NewQuizHandler(quizService, questionService, importService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	answerHandler := handlers.NewAnswerHandler(questionService)
	quizResultHandler := handlers.NewQuizResultHandler(voteService, analyticsService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	healthHandler := handlers.NewHealthHandler(db, voteStore)

	reminder := scheduler.NewReminder(store)
	reminder.Start()
	defer reminder.Stop()

	router := gin.Default()
	router.Use(middleware.CORS())

	routes.SetupRoutes(router, authService,
		authHandler, userHandler, companyHandler, invitationHandler, requestHandler,
		quizHandler, questionHandler, answerHandler, quizResultHandler,
		analyticsHandler, notificationHandler, healthHandler)

	addr := fmt.Sprintf("%s:%s", cfg.BindAddress, cfg.Port)
	log.Printf("Server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
