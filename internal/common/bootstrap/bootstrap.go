package bootstrap

import (
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"

	authservice "github.com/hackerclone/hackerclone/internal/auth/service"
	"github.com/hackerclone/hackerclone/internal/common/clock"
	"github.com/hackerclone/hackerclone/internal/common/config"
	"github.com/hackerclone/hackerclone/internal/common/crypto"
	"github.com/hackerclone/hackerclone/internal/common/db"
	"github.com/hackerclone/hackerclone/internal/common/logger"
	contentrepo "github.com/hackerclone/hackerclone/internal/content/repository"
	contentservice "github.com/hackerclone/hackerclone/internal/content/service"
	userrepo "github.com/hackerclone/hackerclone/internal/user/repository"
)

type App struct {
	Log            *logger.Logger
	Config         config.Config
	Pool           *pgxpool.Pool
	UserRepo       userrepo.Repository
	AuthService    *authservice.AuthService
	ContentService *contentservice.ContentService
}

func NewApp() (*App, error) {
	log, err := initializeLogger("hackerclone")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
		return nil, err
	}

	pool := db.NewPool(log, cfg.DatabaseURL, cfg.PoolMaxConns, cfg.PoolMinConns)
	if pool == nil {
		return nil, fmt.Errorf("failed to initialize database pool")
	}

	clk := clock.NewRealClock()
	hasher := crypto.NewArgon2Hasher(cfg.SecretKey)

	userRepo := userrepo.NewPgRepository(pool)
	postRepo := contentrepo.NewPgPostRepository(pool)
	commentRepo := contentrepo.NewPgCommentRepository(pool)

	authService := authservice.NewAuthService(
		authservice.AuthServiceDeps{
			Users:  userRepo,
			Hasher: hasher,
			Clock:  clk,
			Log:    log,
		},
		authservice.AuthServiceConfig{
			SecretKey:  cfg.SecretKey,
			SessionTTL: cfg.SessionTTL,
		},
	)

	contentService := contentservice.NewContentService(contentservice.ContentServiceDeps{
		Posts:    postRepo,
		Comments: commentRepo,
		Users:    userRepo,
		Clock:    clk,
		Log:      log,
	})

	return &App{
		Log:            log,
		Config:         cfg,
		Pool:           pool,
		UserRepo:       userRepo,
		AuthService:    authService,
		ContentService: contentService,
	}, nil
}

func initializeLogger(serviceName string) (*logger.Logger, error) {
	return logger.New(os.Getenv("LOG_DIR"), serviceName, os.Getenv("LOG_LEVEL"))
}
