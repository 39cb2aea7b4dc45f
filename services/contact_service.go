package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ihza6661/computer-store-rest-api-sub000/models"
	"github.com/ihza6661/computer-store-rest-api-sub000/repository"
)

var ErrContactNotFound = errors.New("contact submission not found")

type ContactCreateRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required"`
}

type ContactService struct {
	contacts repository.ContactRepo
}

func NewContactService(contacts repository.ContactRepo) *ContactService {
	return &ContactService{contacts: contacts}
}

func (s *ContactService) CreateSubmission(ctx context.Context, req ContactCreateRequest) (*models.ContactSubmission, error) {
	submission := &models.ContactSubmission{
		ID:      uuid.New(),
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.contacts.Create(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *ContactService) ListSubmissions(ctx context.Context, unreadOnly bool) ([]models.ContactSubmission, error) {
	return s.contacts.List(ctx, unreadOnly)
}

func (s *ContactService) MarkRead(ctx context.Context, id uuid.UUID) error {
	affected, err := s.contacts.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (s *ContactService) DeleteSubmission(ctx context.Context, id uuid.UUID) error {
	affected, err := s.contacts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrContactNotFound
	}
	return nil
}
