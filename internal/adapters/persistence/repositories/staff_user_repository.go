package repositories

import (
	"context"

	"liblend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// staffUserRepository implements StaffUserRepository interface
type staffUserRepository struct {
	db *gorm.DB
}

// NewStaffUserRepository creates a new staff user repository
func NewStaffUserRepository(db *gorm.DB) StaffUserRepository {
	return &staffUserRepository{db: db}
}

// Create creates a new staff user
func (r *staffUserRepository) Create(ctx context.Context, user *models.StaffUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a staff user by ID
func (r *staffUserRepository) GetByID(ctx context.Context, id uint) (*models.StaffUser, error) {
	var user models.StaffUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername gets a staff user by username
func (r *staffUserRepository) GetByUsername(ctx context.Context, username string) (*models.StaffUser, error) {
	var user models.StaffUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a staff user
func (r *staffUserRepository) Update(ctx context.Context, user *models.StaffUser) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// List lists staff users with pagination
func (r *staffUserRepository) List(ctx context.Context, offset, limit int) ([]*models.StaffUser, int64, error) {
	var users []*models.StaffUser
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.StaffUser{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ExistsByUsername checks if username exists
func (r *staffUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StaffUser{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if email exists
func (r *staffUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StaffUser{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
