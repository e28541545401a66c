package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"finance_backend/internal/app/di"
	"finance_backend/internal/app/router"
	authadapters "finance_backend/internal/feature/auth/adapters"
	authhandler "finance_backend/internal/feature/auth/transport/handler"
	authusecase "finance_backend/internal/feature/auth/usecase"
	ledgeradapters "finance_backend/internal/feature/ledger/adapters"
	ledgerhandler "finance_backend/internal/feature/ledger/transport/handler"
	ledgerusecase "finance_backend/internal/feature/ledger/usecase"
	"finance_backend/internal/platform/config"
	infradb "finance_backend/internal/platform/db"
	jwtmw "finance_backend/internal/platform/jwt"
	infraredis "finance_backend/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	cfg := config.MustLoad()

	// db
	db := infradb.OpenDB(cfg.Postgres)

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		slog.Warn("Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("Failed to close Redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	ledgerRepo := ledgeradapters.NewLedgerGorm(db)

	// 相場ルックアップ（レートリミット + Redisキャッシュ）
	quoteRepo := di.NewQuoteRepository(rdb, cfg.QuoteCacheTTL)

	// JWT
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), cfg.AccessTokenTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	ledgerUC := ledgerusecase.NewLedgerUsecase(ledgerRepo, quoteRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	ledgerH := ledgerhandler.NewLedgerHandler(ledgerUC)

	// ルータ生成
	r := router.NewRouter(authH, ledgerH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
