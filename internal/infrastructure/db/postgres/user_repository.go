package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cotizador/quoting-system/internal/core/domain"
	"github.com/cotizador/quoting-system/internal/core/ports"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m userModel
	err := r.db.WithContext(ctx).Where(query, arg).Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

// UpsertByEmail inserts the user with defaultRole or, when the email exists,
// refreshes a non-empty name. Role and legacy hash are never overwritten.
func (r *UserRepository) UpsertByEmail(ctx context.Context, email, name, defaultRole string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	m := userModel{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      defaultRole,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":       gorm.Expr("COALESCE(NULLIF(EXCLUDED.name, ''), users.name)"),
			"updated_at": now,
		}),
	}).Create(&m).Error
	if err != nil {
		return nil, err
	}

	var stored userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&stored).Error; err != nil {
		return nil, err
	}
	return stored.toDomain(), nil
}
