package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"photoshare/api/internal/cache"
	"photoshare/api/internal/config"
	"photoshare/api/internal/mail"
	"photoshare/api/internal/media"
	"photoshare/api/internal/middleware"
	"photoshare/api/internal/models"
	"photoshare/api/internal/repository"
	"photoshare/api/internal/service"
	"photoshare/api/internal/storage"
)

type HandlerSet struct {
	log              zerolog.Logger
	cfg              *config.AppConfig
	db               *pgxpool.Pool
	redis            *redis.Client
	userCache        *cache.UserCache
	users            *repository.UserRepository
	authService      *service.AuthService
	imageService     *service.ImageService
	commentService   *service.CommentService
	ratingService    *service.RatingService
	tagService       *service.TagService
	transformService *service.TransformService
	searchService    *service.SearchService
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, redisClient *redis.Client, userCache *cache.UserCache, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	imageRepo := repository.NewImageRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	tagRepo := repository.NewTagRepository(db)
	transformedRepo := repository.NewTransformedImageRepository(db)

	mailer := mail.NewMailer(cfg.Mail, log)
	transformer := media.NewTransformer(cfg.MediaHost, cfg.Security.TransformSecret)

	return HandlerSet{
		log:              log,
		cfg:              cfg,
		db:               db,
		redis:            redisClient,
		userCache:        userCache,
		users:            userRepo,
		authService:      service.NewAuthService(userRepo, userCache, mailer, cfg, log),
		imageService:     service.NewImageService(imageRepo, tagRepo, ratingRepo, commentRepo, store, log),
		commentService:   service.NewCommentService(commentRepo, imageRepo),
		ratingService:    service.NewRatingService(ratingRepo, imageRepo),
		tagService:       service.NewTagService(tagRepo),
		transformService: service.NewTransformService(transformedRepo, imageRepo, transformer),
		searchService:    service.NewSearchService(imageRepo, ratingRepo),
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	api := router.Group("/api")

	api.GET("/healthz", h.Health)

	auth := api.Group("/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.GET("/refresh_token", h.RefreshToken)
	auth.GET("/confirmed_email/:token", h.ConfirmEmail)
	auth.PATCH("/ban/:email",
		middleware.Auth(h.cfg.Security.JWTSecret, h.users, h.userCache),
		middleware.RequireRoles(models.RoleAdmin),
		h.BanUser,
	)

	authed := api.Group("")
	authed.Use(middleware.Auth(h.cfg.Security.JWTSecret, h.users, h.userCache))

	images := authed.Group("/images")
	images.POST("", middleware.RateLimit(h.cfg.RateLimit, h.cfg.RateLimit.Upload), h.UploadImage)
	images.GET("", h.ListImages)
	images.GET("/:id", h.GetImage)
	images.PUT("/:id", h.UpdateImage)
	images.PUT("/:id/tags", h.ReplaceImageTags)
	images.DELETE("/:id", h.DeleteImage)
	images.GET("/user/:userId", middleware.RequireRoles(models.RoleAdmin), h.ListImagesByUser)

	comments := authed.Group("/comments")
	comments.GET("", middleware.RateLimit(h.cfg.RateLimit, h.cfg.RateLimit.ListComments), h.ListComments)
	comments.GET("/:id", h.GetComment)
	comments.POST("", middleware.RateLimit(h.cfg.RateLimit, h.cfg.RateLimit.CreateComment), h.CreateComment)
	comments.PUT("/:id", h.UpdateComment)
	comments.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleModerator), h.DeleteComment)

	ratings := authed.Group("/ratings")
	ratings.GET("/image/:imageId", h.ImageRating)
	ratings.GET("/:id", h.GetRating)
	ratings.POST("/:imageId", h.CreateRating)
	ratings.PUT("/:id", h.UpdateRating)
	ratings.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleModerator), h.DeleteRating)

	tags := authed.Group("/tags")
	tags.GET("", h.ListTags)
	tags.GET("/:id", h.GetTag)
	tags.POST("", h.CreateTag)
	tags.PUT("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleModerator), h.UpdateTag)
	tags.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleModerator), h.DeleteTag)

	// :id is the source image for create/list and the rendition for
	// qrcode/delete.
	transformed := authed.Group("/transformed_images")
	transformed.POST("/:id", h.CreateTransformedImage)
	transformed.GET("/:id", h.ListTransformedImages)
	transformed.GET("/:id/qrcode", h.TransformedImageQRCode)
	transformed.DELETE("/:id", h.DeleteTransformedImage)

	search := authed.Group("/search")
	search.GET("", h.SearchByTag)
	search.GET("/user/:userId", middleware.RequireRoles(models.RoleAdmin, models.RoleModerator), h.SearchByUser)
}
