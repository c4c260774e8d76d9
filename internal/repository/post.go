package repository

import (
	"context"
	"errors"

	"github.com/Jins0l/ai-board-project/internal/database"
	"github.com/Jins0l/ai-board-project/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// ListPaged returns one page of posts with their authors plus the total
	// row count. Ordering is newest first; ties on the creation timestamp
	// are broken by ID so pagination stays stable.
	ListPaged(ctx context.Context, page, limit int) ([]models.Post, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
}

type postRepository struct {
	handle *database.Handle
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(handle *database.Handle) PostRepository {
	return &postRepository{handle: handle}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	db := r.handle.DB()
	if db == nil {
		return models.NewStoreUnavailableError()
	}
	if err := db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) ListPaged(ctx context.Context, page, limit int) ([]models.Post, int64, error) {
	db := r.handle.DB()
	if db == nil {
		return nil, 0, models.NewStoreUnavailableError()
	}

	var total int64
	if err := db.WithContext(ctx).Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if total == 0 {
		return []models.Post{}, 0, nil
	}

	offset := (page - 1) * limit
	var posts []models.Post
	if err := db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	db := r.handle.DB()
	if db == nil {
		return nil, models.NewStoreUnavailableError()
	}
	var post models.Post
	if err := db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}
