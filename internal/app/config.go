package app

import (
	"time"

	"github.com/yungbote/tamiti-backend/internal/logger"
	"github.com/yungbote/tamiti-backend/internal/utils"
)

type Config struct {
	Port            string
	JWTSecretKey    string
	PreviewCacheTTL time.Duration

	CompletionWeight float64
	FocusWeight      float64
	StreakThreshold  float64
	DailyFocusTarget int

	DefaultEstimateMinutes int
	MinChunkMinutes        int
}

func LoadConfig(log *logger.Logger) Config {
	previewTTLSeconds := utils.GetEnvAsInt("PREVIEW_CACHE_TTL", 300, log)
	return Config{
		Port:            utils.GetEnv("PORT", "8080", log),
		JWTSecretKey:    utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		PreviewCacheTTL: time.Duration(previewTTLSeconds) * time.Second,

		CompletionWeight: utils.GetEnvAsFloat("SCORE_COMPLETION_WEIGHT", 0.6, log),
		FocusWeight:      utils.GetEnvAsFloat("SCORE_FOCUS_WEIGHT", 0.4, log),
		StreakThreshold:  utils.GetEnvAsFloat("STREAK_THRESHOLD", 50, log),
		DailyFocusTarget: utils.GetEnvAsInt("DAILY_FOCUS_TARGET", 0, log),

		DefaultEstimateMinutes: utils.GetEnvAsInt("DEFAULT_ESTIMATE_MINUTES", 30, log),
		MinChunkMinutes:        utils.GetEnvAsInt("MIN_CHUNK_MINUTES", 10, log),
	}
}
