package repo

import (
	"github.com/KNICEX/arbitrage-agent/internal/entity"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&entity.SignalRecord{})
}
