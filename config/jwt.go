package config

import (
	"log/slog"
	"os"
)

var JwtKey []byte

// InitJwtKey читает секрет подписи токенов из окружения.
func InitJwtKey() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("Критическая ошибка: переменная окружения JWT_SECRET не установлена.")
		os.Exit(1)
	}
	JwtKey = []byte(secret)
}
