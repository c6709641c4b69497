package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/config"
	"github.com/ignatzorin/portfolio-backend/internal/db"
	"github.com/ignatzorin/portfolio-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/portfolio-backend/internal/http/handlers"
	"github.com/ignatzorin/portfolio-backend/internal/http/middleware"
	httpRouter "github.com/ignatzorin/portfolio-backend/internal/http/router"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/service"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
	"github.com/ignatzorin/portfolio-backend/internal/ws"
	"github.com/ignatzorin/portfolio-backend/web"
)

const sessionCleanupInterval = time.Hour

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}
	logger.Init(cfg.Env)
	log := logger.Component("main")

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("ошибка миграций: %v", err)
	}

	// Объектное хранилище. Резюме принимают PDF, остальные бакеты только изображения.
	objects, err := storage.NewObjectStorage(cfg.StoragePath, cfg.PublicBaseURL, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("не удалось подготовить хранилище: %v", err)
	}
	objects.AllowTypes(models.BucketResumes, "application/pdf")
	if cfg.IsDevelopment() {
		if err := objects.EnsureBuckets(models.Buckets...); err != nil {
			log.WithError(err).Warn("не удалось создать бакеты")
		}
	}

	// Репозитории.
	profileRepo := repository.NewProfileRepository(dbConn)
	serviceRepo := repository.NewServiceRepository(dbConn)
	skillRepo := repository.NewSkillRepository(dbConn)
	projectRepo := repository.NewProjectRepository(dbConn)
	experienceRepo := repository.NewExperienceRepository(dbConn)
	testimonialRepo := repository.NewTestimonialRepository(dbConn)
	settingRepo := repository.NewSettingRepository(dbConn)
	messageRepo := repository.NewMessageRepository(dbConn)
	visitRepo := repository.NewVisitRepository(dbConn)
	userRepo := repository.NewUserRepository(dbConn)
	probeRepo := repository.NewProbeRepository(dbConn)

	// Сервисы.
	cache := service.NewQueryCache(cfg.CacheTTL)
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)
	authService := service.NewAuthService(userRepo, tokenManager)
	sessions := service.NewSessionManager(authService, cfg.SecureCookies)

	content := service.ContentServices{
		Profile:      service.NewProfileContent(profileRepo, objects, cache),
		Services:     service.NewServiceContent(serviceRepo, objects, cache),
		Skills:       service.NewSkillContent(skillRepo, objects, cache),
		Projects:     service.NewProjectContent(projectRepo, objects, cache),
		Experiences:  service.NewExperienceContent(experienceRepo, objects, cache),
		Testimonials: service.NewTestimonialContent(testimonialRepo, objects, cache),
		Settings:     service.NewSettingContent(settingRepo, objects, cache),
	}
	siteService := service.NewSiteService(content)
	visitService := service.NewVisitService(visitRepo)
	dashboardService := service.NewDashboardService(messageRepo, visitRepo, cache)
	mediaService := service.NewMediaService(objects)

	// Вебсокеты: события выхода и новые сообщения уходят в открытые вкладки админки.
	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, hub.Run)
	unsubscribe := sessions.Subscribe(hub.HandleAuthEvent)
	defer unsubscribe()

	messageService := service.NewMessageService(messageRepo, cache, hub)

	fixtures, err := service.LoadBootstrapFixtures()
	if err != nil {
		log.Fatalf("не удалось загрузить данные инициализации: %v", err)
	}
	bootstrapService := service.NewBootstrapService(service.BootstrapDeps{
		Prober:   probeRepo,
		Profiles: service.SeedTable[models.Profile](profileRepo),
		Services: service.SeedTable[models.Service](serviceRepo),
		Buckets:  objects,
		Admins:   authService,
		Cache:    cache,
	}, fixtures, cfg.AdminEmail, cfg.AdminPassword)

	if cfg.BootstrapOnStart {
		summary := bootstrapService.Run(ctx)
		if summary.Success {
			log.Info("инициализация хранилища завершена")
		} else {
			log.WithField("error", summary.Error).Error("инициализация хранилища завершилась с ошибкой")
		}
	}

	goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
		cleanupSessions(ctx, userRepo)
	})

	templates, err := web.Templates()
	if err != nil {
		log.Fatalf("не удалось разобрать шаблоны: %v", err)
	}

	// HTTP хэндлеры.
	h := httpRouter.Handlers{
		Auth:      httpHandlers.NewAuthHandler(sessions),
		Pages:     httpHandlers.NewPageHandler(siteService, sessions),
		Site:      httpHandlers.NewSiteHandler(siteService, visitService),
		Messages:  httpHandlers.NewMessageHandler(messageService),
		Dashboard: httpHandlers.NewDashboardHandler(dashboardService),
		Media:     httpHandlers.NewMediaHandler(mediaService),
		Bootstrap: httpHandlers.NewBootstrapHandler(bootstrapService),
		WS:        httpHandlers.NewWSHandler(hub, cfg.AllowedOrigins),
		Health:    httpHandlers.NewHealthHandler(probeRepo, objects),
		Content: []httpRouter.ContentRoute{
			{Path: "/profile", Routes: httpHandlers.NewContentHandler(content.Profile)},
			{Path: "/services", Routes: httpHandlers.NewContentHandler(content.Services)},
			{Path: "/skills", Routes: httpHandlers.NewContentHandler(content.Skills)},
			{Path: "/projects", Routes: httpHandlers.NewContentHandler(content.Projects)},
			{Path: "/experiences", Routes: httpHandlers.NewContentHandler(content.Experiences)},
			{Path: "/testimonials", Routes: httpHandlers.NewContentHandler(content.Testimonials)},
			{Path: "/settings", Routes: httpHandlers.NewContentHandler(content.Settings)},
		},
	}

	// Роутер.
	engine, err := httpRouter.SetupRouter(cfg, h, templates, sessions, visitService)
	if err != nil {
		log.Fatalf("не удалось собрать роутер: %v", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           middleware.CORS(cfg.AllowedOrigins).Handler(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("ошибка остановки http сервера")
		}
	}()

	log.WithField("port", cfg.HTTPPort).Info("HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("сервер завершился с ошибкой: %v", err)
	}
}

// cleanupSessions периодически удаляет истёкшие сессии администратора.
func cleanupSessions(ctx context.Context, repo *repository.UserRepository) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := repo.DeleteExpiredSessions(ctx)
			if err != nil {
				logger.Component("main").WithError(err).Warn("не удалось удалить истёкшие сессии")
				continue
			}
			if removed > 0 {
				logger.Component("main").WithField("removed", removed).Debug("истёкшие сессии удалены")
			}
		}
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Component("main").WithError(err).Error("ошибка закрытия базы")
	}
}
