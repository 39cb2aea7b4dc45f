package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ihza6661/computer-store-rest-api-sub000/models"
	"github.com/ihza6661/computer-store-rest-api-sub000/repository"
)

var (
	ErrAdminNotFound = errors.New("admin user not found")
	ErrEmailTaken    = errors.New("an admin with this email already exists")
)

type AdminCreateRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type AdminUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// AdminService manages admin accounts. It stores bcrypt-hashed credentials
// only; session and token handling live elsewhere.
type AdminService struct {
	admins repository.AdminUserRepo
}

func NewAdminService(admins repository.AdminUserRepo) *AdminService {
	return &AdminService{admins: admins}
}

func (s *AdminService) CreateAdmin(ctx context.Context, req AdminCreateRequest) (*models.AdminUser, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &models.AdminUser{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]models.AdminUser, error) {
	return s.admins.List(ctx)
}

func (s *AdminService) UpdateAdmin(ctx context.Context, id uuid.UUID, req AdminUpdateRequest) (*models.AdminUser, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != admin.Email {
			existing, err := s.admins.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, ErrEmailTaken
			}
			admin.Email = email
		}
	}
	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = string(hash)
	}
	admin.UpdatedAt = time.Now().UTC()

	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) DeleteAdmin(ctx context.Context, id uuid.UUID) error {
	affected, err := s.admins.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAdminNotFound
	}
	return nil
}
