package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sjperalta/propostas-api/internal/models"
	"github.com/sjperalta/propostas-api/internal/repository"
	"github.com/sjperalta/propostas-api/pkg/logger"
)

// SeedAdminDisplayName is the display name of the account created on first start
const SeedAdminDisplayName = "Administrador"

// UserService handles user-related business logic
type UserService struct {
	repo      repository.UserRepository
	seedLogin string
}

// NewUserService creates a user service. seedLogin names the account that
// can never be deleted.
func NewUserService(repo repository.UserRepository, seedLogin string) *UserService {
	return &UserService{repo: repo, seedLogin: seedLogin}
}

// CreateUserInput is the data needed to create an account
type CreateUserInput struct {
	Login           string `json:"login"`
	DisplayName     string `json:"display_name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	Role            string `json:"role"`
}

// EnsureSeedAdmin creates the admin account when the user table is empty
func (s *UserService) EnsureSeedAdmin(ctx context.Context, password string) error {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	user := &models.User{
		Login:        s.seedLogin,
		DisplayName:  SeedAdminDisplayName,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}
	logger.Info("Seed admin created", "login", user.Login)
	return nil
}

// Create adds a new account. Admin only.
func (s *UserService) Create(ctx context.Context, actor *models.Identity, in CreateUserInput) (*models.User, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	in.Login = strings.TrimSpace(in.Login)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	role := models.NormalizeRole(in.Role)

	var problems []string
	if in.Login == "" {
		problems = append(problems, "login é obrigatório")
	}
	if in.DisplayName == "" {
		problems = append(problems, "nome de exibição é obrigatório")
	}
	if in.Password == "" {
		problems = append(problems, "senha é obrigatória")
	} else if in.Password != in.PasswordConfirm {
		problems = append(problems, "as senhas não conferem")
	}
	if role == "" {
		problems = append(problems, "perfil deve ser admin ou digitador")
	}
	if err := newValidationError(problems); err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Login:        in.Login,
		DisplayName:  in.DisplayName,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, &DuplicateError{Entity: "usuário", Value: in.Login}
		}
		return nil, err
	}
	logger.Info("User created", "login", user.Login, "role", user.Role, "by", actor.Login)
	return user, nil
}

// List returns every account ordered by id. Admin only.
func (s *UserService) List(ctx context.Context, actor *models.Identity) ([]models.User, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Delete removes an account. The seed admin account is protected. Admin only.
func (s *UserService) Delete(ctx context.Context, actor *models.Identity, id uint) error {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "usuário", id)
	}
	if user.Login == s.seedLogin {
		return &ValidationError{Problems: []string{"não é permitido excluir o usuário '" + s.seedLogin + "'"}}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "usuário", id)
	}
	logger.Info("User deleted", "login", user.Login, "by", actor.Login)
	return nil
}

// ChangePassword replaces the password of the logged-in user
func (s *UserService) ChangePassword(ctx context.Context, actor *models.Identity, current, next, confirm string) error {
	if actor == nil {
		return ErrAuthFailure
	}
	var problems []string
	if next == "" {
		problems = append(problems, "nova senha é obrigatória")
	} else if next != confirm {
		problems = append(problems, "as senhas não conferem")
	}
	if err := newValidationError(problems); err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, actor.UserID)
	if err != nil {
		return notFound(err, "usuário", actor.UserID)
	}
	if !VerifyPassword(current, user.PasswordHash) {
		return &ValidationError{Problems: []string{"senha atual incorreta"}}
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.repo.Update(ctx, user)
}
