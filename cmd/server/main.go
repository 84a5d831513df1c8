package main

import (
	"context"
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"caboai_backend/internal/app/di"
	"caboai_backend/internal/app/router"
	authadapters "caboai_backend/internal/feature/auth/adapters"
	authhandler "caboai_backend/internal/feature/auth/transport/handler"
	authusecase "caboai_backend/internal/feature/auth/usecase"
	chathandler "caboai_backend/internal/feature/chat/transport/handler"
	chatusecase "caboai_backend/internal/feature/chat/usecase"
	usershandler "caboai_backend/internal/feature/users/transport/handler"
	"caboai_backend/internal/platform/config"
	infradb "caboai_backend/internal/platform/db"
	platformhandler "caboai_backend/internal/platform/http/handler"
	jwtmw "caboai_backend/internal/platform/jwt"
	infraredis "caboai_backend/internal/platform/redis"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// db
	gormDB, err := infradb.OpenDB(cfg.DatabaseURL, cfg.RunMigrations)
	if err != nil {
		log.Fatal(err)
	}

	// Redis: optional, the service degrades to in-process stores without it.
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword); err != nil {
		log.Println("[WARN] Redis unavailable. Running with in-process stores.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repositories
	userRepo := authadapters.NewUserPostgres(gormDB)
	conversationRepo := di.NewConversationRepository(rdb)
	usageRepo := di.NewUsageRepository(rdb, cfg.DailyMessageLimit)

	// Token issuer / verifier
	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTTTL)

	// Reply generator (external AI service or Gemini)
	generator, err := di.NewReplyGenerator(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Usecases
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	chatUC := chatusecase.NewChatUsecase(conversationRepo, usageRepo, generator)

	// Handlers
	authH := authhandler.NewAuthHandler(authUC)
	profileH := usershandler.NewProfileHandler()
	chatH := chathandler.NewChatHandler(chatUC)
	healthH := platformhandler.NewHealthHandler(gormDB, rdb, cfg.Environment)

	engine := router.NewRouter(cfg, authH, profileH, chatH, healthH, jwtmw.AuthRequired(tokens, userRepo))

	if err := engine.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
