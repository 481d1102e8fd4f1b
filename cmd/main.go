package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kotoba-lab/mogi/config"
	"github.com/kotoba-lab/mogi/database"
	_ "github.com/kotoba-lab/mogi/docs" // Swagger docs
	adminctrl "github.com/kotoba-lab/mogi/internal/controller/admin"
	userctrl "github.com/kotoba-lab/mogi/internal/controller/user"
	"github.com/kotoba-lab/mogi/internal/logger"
	"github.com/kotoba-lab/mogi/internal/model"
	"github.com/kotoba-lab/mogi/internal/repository"
	"github.com/kotoba-lab/mogi/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title JLPT Mock Exam API
// @version 1.0
// @description Mock-exam engine for JLPT practice: deterministic question snapshots, forward-only section submission and level-specific scoring.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			func(db *gorm.DB) repository.TxRunner { return db },
		),

		// Repositories layer
		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewTestAttemptRepository,
			repository.NewUserAnswerRepository,
			repository.NewSectionSubmissionRepository,
			repository.NewSectionScoreRepository,
		),

		// Services layer
		fx.Provide(
			service.NewSnapshotBuilder,
			service.NewScoringEngine,
			service.NewQuestionPoolService,
			service.NewAdminQuestionService,
			service.NewExamAttemptService,
		),

		// API controllers layer
		fx.Provide(
			adminctrl.NewAdminQuestionController,
			userctrl.NewExamAttemptController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Zerolog-backed request logging instead of gin's default
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminQuestionCtrl *adminctrl.AdminQuestionController,
	examAttemptCtrl *userctrl.ExamAttemptController,
) {
	// Admin routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		questionsGroup := adminAPIGroup.Group("/questions")
		questionsGroup.POST("", adminQuestionCtrl.CreateQuestion)
		questionsGroup.POST("/bulk", adminQuestionCtrl.CreateQuestions)
		questionsGroup.GET("", adminQuestionCtrl.ListQuestions)
		questionsGroup.DELETE("/:question_id", adminQuestionCtrl.DeactivateQuestion)
	}

	// User routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.POST("/levels/:level/attempts", examAttemptCtrl.StartAttempt)
		userAPIGroup.GET("/attempts", examAttemptCtrl.ListAttempts)
		userAPIGroup.POST("/attempts/:attempt_id/answers", examAttemptCtrl.RecordAnswer)
		userAPIGroup.POST("/attempts/:attempt_id/sections/:section/submit", examAttemptCtrl.SubmitSection)
		userAPIGroup.POST("/attempts/:attempt_id/complete", examAttemptCtrl.CompleteAttempt)
		userAPIGroup.GET("/attempts/:attempt_id/results", examAttemptCtrl.GetResults)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("JLPT mock exam API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Question{},
		&model.TestAttempt{},
		&model.UserAnswer{},
		&model.SectionSubmission{},
		&model.SectionScore{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
