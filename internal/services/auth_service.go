package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"yogurt-cleaning/internal/models"
	"yogurt-cleaning/internal/utils"
)

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, models.AuthenticatedUser, error)
	RegisterClient(ctx context.Context, client *models.Client, password string) error
	RegisterCleaner(ctx context.Context, cleaner *models.Cleaner, password string) error
}

type authService struct {
	admins   AdminRepository
	clients  ClientRepository
	cleaners CleanerRepository
	jwt      *utils.JWTUtil
}

func NewAuthService(admins AdminRepository, clients ClientRepository, cleaners CleanerRepository, jwt *utils.JWTUtil) AuthService {
	return &authService{admins: admins, clients: clients, cleaners: cleaners, jwt: jwt}
}

// Login resolves the account kind by a fixed lookup chain
// (admin, then client, then cleaner) and returns a typed user, never a
// bag of nullable references.
func (s *authService) Login(ctx context.Context, email, password string) (string, models.AuthenticatedUser, error) {
	user, hash, err := s.resolveUser(ctx, email)
	if err != nil {
		return "", models.AuthenticatedUser{}, models.ErrWrongCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", models.AuthenticatedUser{}, models.ErrWrongCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID.Hex(), string(user.Role))
	if err != nil {
		return "", models.AuthenticatedUser{}, err
	}
	return token, user, nil
}

func (s *authService) resolveUser(ctx context.Context, email string) (models.AuthenticatedUser, string, error) {
	if admin, err := s.admins.GetByEmail(ctx, email); err == nil {
		return models.AuthenticatedUser{ID: admin.ID, Email: admin.Email, Role: models.RoleAdmin}, admin.PasswordHash, nil
	}
	if client, err := s.clients.GetByEmail(ctx, email); err == nil && !client.IsDeleted {
		return models.AuthenticatedUser{ID: client.ID, Email: client.Email, Role: models.RoleClient}, client.PasswordHash, nil
	}
	if cleaner, err := s.cleaners.GetByEmail(ctx, email); err == nil && !cleaner.IsDeleted {
		return models.AuthenticatedUser{ID: cleaner.ID, Email: cleaner.Email, Role: models.RoleCleaner}, cleaner.PasswordHash, nil
	}
	return models.AuthenticatedUser{}, "", models.ErrNotFound
}

func (s *authService) RegisterClient(ctx context.Context, client *models.Client, password string) error {
	if err := client.Validate(); err != nil {
		return err
	}
	if _, _, err := s.resolveUser(ctx, client.Email); err == nil {
		return models.ErrDuplicateEmail
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	client.PasswordHash = string(hash)
	return s.clients.Create(ctx, client)
}

func (s *authService) RegisterCleaner(ctx context.Context, cleaner *models.Cleaner, password string) error {
	if err := cleaner.Validate(); err != nil {
		return err
	}
	if _, _, err := s.resolveUser(ctx, cleaner.Email); err == nil {
		return models.ErrDuplicateEmail
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	cleaner.PasswordHash = string(hash)
	return s.cleaners.Create(ctx, cleaner)
}

// ParseUserID converts the middleware's string user id back to an ObjectID.
func ParseUserID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errors.Join(models.ErrInvalidID, err)
	}
	return id, nil
}
