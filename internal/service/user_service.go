package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"campus-portal/internal/domain"
	"campus-portal/internal/repository"
)

// UserService coordina el directorio de usuarios del portal.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrDirectory    = errors.New("user directory unavailable")
)

func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	return &UserService{
		logger: logger,
		users:  users,
	}
}

// FindOrCreate busca por email y crea el registro en el primer login.
// Dos primeros logins simultáneos con el mismo email compiten; el UNIQUE de
// users.email arbitra y el perdedor recibe ErrDirectory.
func (s *UserService) FindOrCreate(ctx context.Context, ident VerifiedIdentity) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, ident.Email)
	if err == nil {
		s.logger.Info("user found", zap.String("email", user.Email))
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, fmt.Errorf("%w: %v", ErrDirectory, err)
	}

	user = domain.User{
		ID:          uuid.NewString(),
		Email:       ident.Email,
		MicrosoftID: ident.MicrosoftID,
		Name:        ident.Name,
		Surname:     ident.Surname,
		Bio:         "",
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", ErrDirectory, err)
	}

	s.logger.Info("user created", zap.String("email", user.Email))
	return user, nil
}

// GetByID resuelve el id guardado en la sesión a un usuario.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", ErrDirectory, err)
	}
	return user, nil
}

// UpdateProfile sobreescribe nombre, apellido y bio completos.
func (s *UserService) UpdateProfile(ctx context.Context, id, name, surname, bio string) error {
	name = strings.TrimSpace(name)
	surname = strings.TrimSpace(surname)
	if err := s.users.UpdateProfile(ctx, id, name, surname, bio); err != nil {
		return fmt.Errorf("%w: %v", ErrDirectory, err)
	}
	return nil
}

// UpdateProfilePicture sobreescribe la ruta de la foto de perfil.
func (s *UserService) UpdateProfilePicture(ctx context.Context, id, path string) error {
	if err := s.users.UpdatePicture(ctx, id, path); err != nil {
		return fmt.Errorf("%w: %v", ErrDirectory, err)
	}
	return nil
}
