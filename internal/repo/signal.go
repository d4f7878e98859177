package repo

import (
	"context"

	"github.com/KNICEX/arbitrage-agent/internal/entity"
	"gorm.io/gorm"
)

type SignalRepo interface {
	Create(ctx context.Context, record entity.SignalRecord) (int64, error)
	FindRecent(ctx context.Context, limit int) ([]entity.SignalRecord, error)
	FindByVerdict(ctx context.Context, verdict string, limit int) ([]entity.SignalRecord, error)
}

type signalRepo struct {
	db *gorm.DB
}

func NewSignalRepo(db *gorm.DB) SignalRepo {
	return &signalRepo{
		db: db,
	}
}

func (r *signalRepo) Create(ctx context.Context, record entity.SignalRecord) (int64, error) {
	err := r.db.WithContext(ctx).Create(&record).Error
	if err != nil {
		return 0, err
	}
	return record.Id, nil
}

// FindRecent returns the newest records first.
func (r *signalRepo) FindRecent(ctx context.Context, limit int) ([]entity.SignalRecord, error) {
	var records []entity.SignalRecord
	err := r.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *signalRepo) FindByVerdict(ctx context.Context, verdict string, limit int) ([]entity.SignalRecord, error) {
	var records []entity.SignalRecord
	err := r.db.WithContext(ctx).Where("verdict = ?", verdict).Order("id desc").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
