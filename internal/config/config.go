package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Адрес, на котором слушает HTTP-сервер (host:port без схемы)
	RunAddress string `env:"RUN_ADDRESS"`

	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`

	// Секрет одноразового создания администратора (POST /api/admin/setup)
	AdminSetupSecret string `env:"ADMIN_SETUP_SECRET"`

	// Разрешённые Origin для CORS, через запятую
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "адрес HTTP-сервера (host:port)")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.AdminSetupSecret, "admin-setup-secret", cfg.AdminSetupSecret, "секрет bootstrap-админа")
	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	// RunAddress должен быть в виде "address:port" (без схемы и пути)
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.RunAddress) {
		cfg.RunAddress = "localhost:8080"
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}

	return cfg
}
