package ioc

import (
	"strings"

	"github.com/KNICEX/arbitrage-agent/internal/repo"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the signal journal. The default dsn is an in-memory database,
// so nothing survives a restart.
func InitDB() *gorm.DB {
	dsn := viper.GetString("db.dsn")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}
	if strings.Contains(dsn, ":memory:") {
		// each pooled connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := repo.InitTables(db); err != nil {
		panic(err)
	}
	return db
}
