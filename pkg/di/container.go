package di

import (
	"time"

	"gorm.io/gorm"

	"character-forge/backend/internal/gateway"
	"character-forge/backend/internal/repository"
	"character-forge/backend/internal/service"
	"character-forge/backend/pkg/cache"
	"character-forge/backend/pkg/config"
	"character-forge/backend/pkg/health"
	"character-forge/backend/pkg/logger"
)

// Container holds all the dependencies for the application. Everything is
// built once in New from explicit configuration; no package carries its own
// global state.
type Container struct {
	Config *config.Config
	Logger *logger.Logger
	DB     *gorm.DB

	Characters repository.CharacterRepository
	Templates  repository.TemplateRepository

	TextClient    *gateway.TextClient
	ContentClient *gateway.ContentClient
	ImageClient   *gateway.ImageClient

	TemplateCache *cache.Cache

	CharacterService *service.CharacterService
	TemplateService  *service.TemplateService

	Health *health.Checker
}

// New wires repositories, gateway clients and services together.
func New(db *gorm.DB, cfg *config.Config) *Container {
	log := logger.New(logger.Config{
		Level: cfg.Logging.Level,
		JSON:  cfg.Logging.Format == "json",
	})
	logger.SetGlobal(log)

	characters := repository.NewGormCharacterRepository(db)
	templates := repository.NewGormTemplateRepository(db)

	textClient := gateway.NewTextClient(cfg.Providers.Text)
	contentClient := gateway.NewContentClient(cfg.Providers.Content)
	imageClient := gateway.NewImageClient(cfg.Providers.Image)

	var templateCache *cache.Cache
	if cfg.Cache.Enabled {
		templateCache = cache.New(cache.Options{
			DefaultExpiration: cfg.Cache.TTL,
			CleanupInterval:   cfg.Cache.PurgeWindow,
			MaxItems:          cfg.Cache.MaxSize,
		})
	}

	characterService := service.NewCharacterService(characters, templates, textClient, contentClient, imageClient)
	templateService := service.NewTemplateService(templates, cfg.Templates.DeleteMode, templateCache)

	checker := health.NewChecker(log, 30*time.Second)
	checker.RegisterDatabaseCheck(func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	})
	checker.RegisterProviderCheck("text-completion", cfg.Providers.Text)
	checker.RegisterProviderCheck("content-extraction", cfg.Providers.Content)
	checker.RegisterProviderCheck("image-generation", cfg.Providers.Image)

	return &Container{
		Config:           cfg,
		Logger:           log,
		DB:               db,
		Characters:       characters,
		Templates:        templates,
		TextClient:       textClient,
		ContentClient:    contentClient,
		ImageClient:      imageClient,
		TemplateCache:    templateCache,
		CharacterService: characterService,
		TemplateService:  templateService,
		Health:           checker,
	}
}
