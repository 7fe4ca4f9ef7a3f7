package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{
		db: db,
	}
}

// FindOrCreateByEmail matches emails case-insensitively. The name is only used
// when the user is created.
func (r *userRepository) FindOrCreateByEmail(ctx context.Context, email, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrMissingOwner
	}

	var rec userRecord
	err := r.db.WithContext(ctx).
		Where(userRecord{Email: email}).
		Attrs(userRecord{ID: uuid.NewString(), Name: strings.TrimSpace(name)}).
		FirstOrCreate(&rec).Error
	if err != nil {
		return nil, err
	}

	return rec.toDomain(), nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	var rec userRecord

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return rec.toDomain(), nil
}
