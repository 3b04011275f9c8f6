package main

import (
	"context"
	"log"

	"github.com/studyia/career/internal/config"
	"github.com/studyia/career/internal/confirmation"
	"github.com/studyia/career/internal/cooldown"
	"github.com/studyia/career/internal/database"
	"github.com/studyia/career/internal/handlers"
	"github.com/studyia/career/internal/payment"
	"github.com/studyia/career/internal/services"
)

func main() {
	// 1. Load Environment Variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Database Connection
	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// 3. Cooldown storage: Redis when configured, process memory otherwise
	var kv cooldown.KV = cooldown.NewMemoryKV()
	if cfg.RedisAddr != "" {
		rkv := cooldown.NewRedisKV(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rkv.Ping(context.Background()); err != nil {
			log.Fatal("Failed to connect to redis: ", err)
		}
		defer rkv.Close()
		kv = rkv
		log.Println("✅ Cooldowns stored in Redis")
	} else {
		log.Println("⚠️  REDIS_ADDR empty, cooldowns kept in memory")
	}
	cooldowns := cooldown.NewStore(kv)

	// 4. Initialize Core Services (Dependencies)
	llmService, err := services.NewLLMService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal("Failed to create Gemini client: ", err)
	}
	cvService := services.NewCVService(db, llmService)
	unlockService := services.NewUnlockService(db, cooldowns, cfg.UnlockPrice, cfg.CommissionRate, cfg.UnlockCooldown)
	referralService := services.NewReferralService(db)

	flowCfg := confirmation.DefaultConfig()
	flowCfg.VerifyDelay = cfg.VerifyDelay
	flowCfg.ConfirmDelay = cfg.ConfirmDelay
	flowCfg.IdleTTL = cfg.ConfirmationIdleTTL
	if len(cfg.ErrorMessages) > 0 {
		flowCfg.Messages = cfg.ErrorMessages
	}
	flows := confirmation.NewManager(payment.NewValidator(loc), confirmation.TimerScheduler{}, flowCfg)

	// 5. Setup Router & Routes
	r := handlers.NewRouter(handlers.Routes{
		CVs:           handlers.NewCVHandler(cvService),
		Confirmations: handlers.NewConfirmationHandler(flows, cooldowns, unlockService, cvService),
		Cooldowns:     handlers.NewCooldownHandler(cooldowns),
		Referrals:     handlers.NewReferralHandler(referralService),
	}, cfg.AllowedOrigins)

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
