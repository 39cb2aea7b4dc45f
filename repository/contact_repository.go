package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ihza6661/computer-store-rest-api-sub000/models"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *models.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContactRepository) List(ctx context.Context, unreadOnly bool) ([]models.ContactSubmission, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	var submissions []models.ContactSubmission
	err := q.Find(&submissions).Error
	return submissions, err
}

func (r *ContactRepository) MarkRead(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.ContactSubmission{}).
		Where("id = ?", id).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (r *ContactRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.ContactSubmission{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
