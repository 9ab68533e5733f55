package app

import (
	"strings"
	"time"

	"github.com/artcove/artcove-backend/internal/pkg/logger"
	"github.com/artcove/artcove-backend/internal/utils"
)

type Config struct {
	Port             string
	JWTSecretKey     string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	CORSAllowOrigins []string
	CacheTTL         time.Duration
	ReconcileEvery   time.Duration

	ServiceName string
	Environment string
	Version     string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	cacheTTLSeconds := utils.GetEnvAsInt("CACHE_TTL", 300, log)
	reconcileSeconds := utils.GetEnvAsInt("RECONCILE_INTERVAL", 900, log)

	var corsOrigins []string
	if raw := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				corsOrigins = append(corsOrigins, origin)
			}
		}
	}

	return Config{
		Port:             utils.GetEnv("PORT", "8080", log),
		JWTSecretKey:     jwtSecretKey,
		AccessTokenTTL:   time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL:  time.Duration(refreshTokenTTLSeconds) * time.Second,
		CORSAllowOrigins: corsOrigins,
		CacheTTL:         time.Duration(cacheTTLSeconds) * time.Second,
		ReconcileEvery:   time.Duration(reconcileSeconds) * time.Second,
		ServiceName:      utils.GetEnv("SERVICE_NAME", "artcove-backend", log),
		Environment:      utils.GetEnv("APP_ENV", "development", log),
		Version:          utils.GetEnv("APP_VERSION", "dev", log),
	}
}
