package v1

import (
	"net/http"
	"time"

	"consultant-tracker-backend/config"
	"consultant-tracker-backend/internal/delivery/http/middleware"
	"consultant-tracker-backend/internal/delivery/http/response"
	"consultant-tracker-backend/internal/domain"
	"consultant-tracker-backend/internal/usecase"
	"consultant-tracker-backend/pkg/token"
	"consultant-tracker-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	JobUC        domain.JobUsecase
	RecruiterUC  domain.RecruiterUsecase
	ConsultantUC domain.ConsultantUsecase
	SubmissionUC domain.SubmissionUsecase
	HealthUC     usecase.HealthUsecase
	Tokens       *token.Manager
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSOrigins)) // CORS must be first!
	r.Use(middleware.SecurityHeaders())
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(
		middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", deps.HealthUC.Check(c.Request.Context()))
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	loginLimiter := middleware.RateLimitMiddleware(
		middleware.LoginRateLimitConfig(deps.Config.RateLimitLoginThreshold, window))
	uploadLimiter := middleware.RateLimitMiddleware(
		middleware.UploadRateLimitConfig(10, window))

	public := api.Group("")
	public.Use(loginLimiter)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	{
		NewAuthHandler(public, protected, deps.AuthUC)
		NewJobHandler(protected, deps.JobUC, uploadLimiter)
		NewRecruiterHandler(protected, deps.RecruiterUC)
		NewConsultantHandler(protected, deps.ConsultantUC, uploadLimiter)
		NewSubmissionHandler(protected, deps.SubmissionUC, uploadLimiter)
	}

	return r
}
