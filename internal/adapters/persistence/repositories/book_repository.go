package repositories

import (
	"context"

	"liblend/internal/adapters/persistence/models"
	"liblend/internal/core/domain"

	"gorm.io/gorm"
)

// bookRepository implements BookRepository interface
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create inserts a new book
func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	return r.db.WithContext(ctx).Create(models.FromBook(book)).Error
}

// GetByID gets a book by ID
func (r *bookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	var record models.Book
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return record.ToDomain(), nil
}

// GetByISBN gets a book by its normalized ISBN
func (r *bookRepository) GetByISBN(ctx context.Context, isbn domain.ISBN) (*domain.Book, error) {
	var record models.Book
	err := r.db.WithContext(ctx).
		Where("isbn = ?", isbn.String()).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return record.ToDomain(), nil
}

// List lists books with pagination
func (r *bookRepository) List(ctx context.Context, offset, limit int) ([]*domain.Book, int64, error) {
	var records []*models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("title ASC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return toDomainBooks(records), total, nil
}

// SearchByTitle finds books whose title contains the given fragment
func (r *bookRepository) SearchByTitle(ctx context.Context, title string) ([]*domain.Book, error) {
	var records []*models.Book
	err := r.db.WithContext(ctx).
		Where("title LIKE ?", "%"+title+"%").
		Order("title ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainBooks(records), nil
}

// SearchByAuthor finds books whose author contains the given fragment
func (r *bookRepository) SearchByAuthor(ctx context.Context, author string) ([]*domain.Book, error) {
	var records []*models.Book
	err := r.db.WithContext(ctx).
		Where("author LIKE ?", "%"+author+"%").
		Order("title ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainBooks(records), nil
}

// GetByCategory gets books in a category (exact match)
func (r *bookRepository) GetByCategory(ctx context.Context, category string) ([]*domain.Book, error) {
	var records []*models.Book
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("title ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainBooks(records), nil
}

// GetAvailable gets books with at least one copy on the shelf
func (r *bookRepository) GetAvailable(ctx context.Context) ([]*domain.Book, error) {
	var records []*models.Book
	err := r.db.WithContext(ctx).
		Where("available_copies > 0").
		Order("title ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainBooks(records), nil
}

// Update saves the aggregate with an optimistic version check. The
// write succeeds only when the stored version still matches the one
// the aggregate was loaded with.
func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	record := models.FromBook(book)
	loadedVersion := record.Version
	record.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ? AND version = ?", record.ID, loadedVersion).
		Updates(map[string]interface{}{
			"title":            record.Title,
			"author":           record.Author,
			"publication_year": record.PublicationYear,
			"category":         record.Category,
			"total_copies":     record.TotalCopies,
			"available_copies": record.AvailableCopies,
			"version":          record.Version,
			"updated_at":       record.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

// Delete removes a book by ID
func (r *bookRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Book{}).Error
}

// ExistsByISBN checks whether a book with this ISBN is registered
func (r *bookRepository) ExistsByISBN(ctx context.Context, isbn domain.ISBN) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("isbn = ?", isbn.String()).
		Count(&count).Error
	return count > 0, err
}

func toDomainBooks(records []*models.Book) []*domain.Book {
	books := make([]*domain.Book, 0, len(records))
	for _, record := range records {
		books = append(books, record.ToDomain())
	}
	return books
}
