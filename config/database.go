package config

import (
	"log/slog"
	"os"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB подключается к базе данных. При установленной переменной DB_URL
// используется PostgreSQL; без нее - встроенный файл SQLite, как в самой
// первой версии системы.
func ConnectDB() {
	var (
		db  *gorm.DB
		err error
	)

	dsn := os.Getenv("DB_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "database.db"
		}
		slog.Warn("Переменная окружения DB_URL не установлена, используется SQLite.", "path", path)
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	}
	if err != nil {
		slog.Error("Ошибка подключения к БД", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("Успешное подключение к базе данных!")
}
