package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

// updatableColumns guards UpdateFields against arbitrary column names.
var updatableColumns = map[string]struct{}{
	domain.FieldStatus:        {},
	domain.FieldEstimatedCost: {},
	domain.FieldServiceType:   {},
}

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

var _ ports.QuoteRepository = (*QuoteRepository)(nil)

func (r *QuoteRepository) Create(ctx context.Context, q *domain.Quote) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m, err := newQuoteModel(q)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *QuoteRepository) FindByID(ctx context.Context, id string) (*domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m quoteModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, err
	}
	return m.toDomain()
}

// List returns a page of quotes (newest first) and the total match count.
func (r *QuoteRepository) List(ctx context.Context, filter ports.ListQuotesFilter) ([]*domain.Quote, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).Model(&quoteModel{})
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []quoteModel
	err := q.Omit("pdf_snapshot").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	items := make([]*domain.Quote, 0, len(rows))
	for i := range rows {
		quote, err := rows[i].toDomain()
		if err != nil {
			return nil, 0, err
		}
		items = append(items, quote)
	}
	return items, total, nil
}

// UpdateFields writes only the given columns. Concurrent calls are
// last-writer-wins per column.
func (r *QuoteRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		if _, ok := updatableColumns[k]; !ok {
			return errors.New("update quote: column not updatable: " + k)
		}
		set[k] = v
	}
	set["updated_at"] = time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&quoteModel{}).Where("id = ?", id).Updates(set)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

func (r *QuoteRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&quoteModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}
