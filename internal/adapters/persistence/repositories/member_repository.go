package repositories

import (
	"context"

	"liblend/internal/adapters/persistence/models"
	"liblend/internal/core/domain"

	"gorm.io/gorm"
)

// memberRepository implements MemberRepository interface
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create inserts a new member
func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	return r.db.WithContext(ctx).Create(models.FromMember(member)).Error
}

// GetByID gets a member by ID
func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	var record models.Member
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return record.ToDomain(), nil
}

// GetByEmail gets a member by canonical email
func (r *memberRepository) GetByEmail(ctx context.Context, email domain.Email) (*domain.Member, error) {
	var record models.Member
	err := r.db.WithContext(ctx).
		Where("email = ?", email.String()).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return record.ToDomain(), nil
}

// List lists members with pagination
func (r *memberRepository) List(ctx context.Context, offset, limit int) ([]*domain.Member, int64, error) {
	var records []*models.Member
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Member{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return toDomainMembers(records), total, nil
}

// GetActive gets members with ACTIVE status
func (r *memberRepository) GetActive(ctx context.Context) ([]*domain.Member, error) {
	var records []*models.Member
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.MemberActive)).
		Order("name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainMembers(records), nil
}

// SearchByName finds members whose name contains the given fragment
func (r *memberRepository) SearchByName(ctx context.Context, name string) ([]*domain.Member, error) {
	var records []*models.Member
	err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+name+"%").
		Order("name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainMembers(records), nil
}

// Update saves the aggregate with an optimistic version check
func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	record := models.FromMember(member)
	loadedVersion := record.Version
	record.Version = loadedVersion + 1

	// Struct-based Updates so the JSON serializer runs for the
	// borrowed-book set; Select forces zero-valued fields through.
	result := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ? AND version = ?", record.ID, loadedVersion).
		Select("name", "phone_number", "status", "borrowed_book_ids", "version", "updated_at").
		Updates(record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

// Delete removes a member by ID
func (r *memberRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Member{}).Error
}

// ExistsByEmail checks whether a member with this email is registered
func (r *memberRepository) ExistsByEmail(ctx context.Context, email domain.Email) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("email = ?", email.String()).
		Count(&count).Error
	return count > 0, err
}

func toDomainMembers(records []*models.Member) []*domain.Member {
	members := make([]*domain.Member, 0, len(records))
	for _, record := range records {
		members = append(members, record.ToDomain())
	}
	return members
}
