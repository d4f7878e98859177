package entity

import (
	"time"
)

// SignalRecord 已发送的信号
type SignalRecord struct {
	Id          int64  `gorm:"primaryKey;autoIncrement"`
	TickId      string `gorm:"index"`
	Asset       string `gorm:"index"`
	AssetStable string // decimal strings, kept exact
	AssetLocal  string
	StableLocal string
	ImpliedRate string
	DiffPercent float64
	Verdict     string `gorm:"index"`
	RSIState    string
	RSI         *float64 // nil when no value was computed
	Samples     int
	Delivered   bool
	CreatedAt   time.Time `gorm:"index"`
}
