package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

type RateRepository struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) *RateRepository {
	return &RateRepository{db: db}
}

var _ ports.RateRepository = (*RateRepository)(nil)

func (r *RateRepository) List(ctx context.Context, frequency domain.BillingFrequency) ([]domain.RateEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).Order("service_name, level")
	if frequency != "" {
		q = q.Where("frequency = ?", string(frequency))
	}

	var rows []rateModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.RateEntry, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

// Upsert relies on the (service_name, level, frequency) unique index. On a
// conflict the existing row keeps its id, which is copied back into entry.
func (r *RateRepository) Upsert(ctx context.Context, entry *domain.RateEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	m := rateModel{
		ID:          entry.ID,
		ServiceName: entry.ServiceName,
		Level:       string(entry.Level),
		Frequency:   string(entry.Frequency),
		BasePrice:   entry.BasePrice,
		Multiplier:  entry.Multiplier,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "service_name"}, {Name: "level"}, {Name: "frequency"}},
		DoUpdates: clause.Assignments(map[string]any{
			"base_price": m.BasePrice,
			"multiplier": m.Multiplier,
			"updated_at": now,
		}),
	}).Create(&m).Error
	if err != nil {
		return err
	}

	var stored rateModel
	err = r.db.WithContext(ctx).
		Where("service_name = ? AND level = ? AND frequency = ?", m.ServiceName, m.Level, m.Frequency).
		Take(&stored).Error
	if err != nil {
		return err
	}
	*entry = stored.toDomain()
	return nil
}

func (r *RateRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&rateModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRateNotFound
	}
	return nil
}
