// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultDBPath はデータベースファイルのデフォルトパス。
const DefaultDBPath = "online_store.db"

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
// すべての項目にデフォルト値があり、環境変数なしでも起動できる。
type Config struct {
	// Database
	DBPath             string
	EnforceForeignKeys bool

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string

	// Rate Limit（req/min単位）
	RateLimitGeneral int
	RateLimitOrder   int
}

// Load は環境変数からConfigを読み込む。
// レート制限値が0以下の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:             getEnvString("STORE_DB_PATH", DefaultDBPath),
		EnforceForeignKeys: getEnvBool("STORE_FOREIGN_KEYS", false),
		ServerPort:         getEnvString("SERVER_PORT", "8080"),
		CORSAllowedOrigin:  getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
		RateLimitGeneral:   getEnvInt("RATE_LIMIT_GENERAL", 120),
		RateLimitOrder:     getEnvInt("RATE_LIMIT_ORDER", 30),
	}

	if cfg.RateLimitGeneral <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_GENERAL must be positive, got %d", cfg.RateLimitGeneral)
	}
	if cfg.RateLimitOrder <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_ORDER must be positive, got %d", cfg.RateLimitOrder)
	}

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
