package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sjperalta/propostas-api/internal/config"
	"github.com/sjperalta/propostas-api/internal/models"
	"github.com/sjperalta/propostas-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.Config

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> token expiry
	now     func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		revoked:  make(map[string]time.Time),
		now:      time.Now,
	}
}

// LoginResult represents the result of a login attempt
type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      *models.Identity `json:"user"`
}

// Authenticate checks credentials. Unknown login and wrong password both
// return ErrAuthFailure.
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthFailure
		}
		return nil, err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrAuthFailure
	}
	return user, nil
}

// Login authenticates a user and returns a session token
func (s *AuthService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, login, password)
	if err != nil {
		return nil, err
	}

	identity := user.Identity()
	identity.TokenID = uuid.NewString()
	expiresAt := s.now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)

	token, err := s.generateJWT(identity, expiresAt)
	if err != nil {
		return nil, errors.New("erro ao gerar token")
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      identity,
	}, nil
}

// VerifyToken parses a session token and returns the identity of its user as
// currently stored. Tokens of deleted users are rejected.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, errors.New("token inválido")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("token inválido")
	}

	userID, _ := claims["user_id"].(float64)
	login, _ := claims["login"].(string)
	jti, _ := claims["jti"].(string)
	if jti == "" || s.isRevoked(jti) {
		return nil, ErrSessionEnded
	}

	user, err := s.userRepo.FindByID(ctx, uint(userID))
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && user.Login != login) {
		return nil, ErrSessionEnded
	}
	if err != nil {
		return nil, err
	}

	identity := user.Identity()
	identity.TokenID = jti
	return identity, nil
}

// Logout revokes the session token of identity. Revoked ids are kept for
// one token lifetime, after which the token would be rejected as expired.
func (s *AuthService) Logout(identity *models.Identity) {
	if identity == nil || identity.TokenID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for jti, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, jti)
		}
	}
	s.revoked[identity.TokenID] = now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)
}

func (s *AuthService) isRevoked(jti string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[jti]
	return ok
}

// generateJWT creates a new JWT token for a session
func (s *AuthService) generateJWT(identity *models.Identity, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": identity.UserID,
		"login":   identity.Login,
		"name":    identity.DisplayName,
		"role":    identity.Role,
		"jti":     identity.TokenID,
		"exp":     expiresAt.Unix(),
		"iat":     s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// RequireRole fails with a ForbiddenError unless identity holds role
func RequireRole(identity *models.Identity, role string) error {
	if identity == nil || identity.Role != role {
		return &ForbiddenError{Role: role}
	}
	return nil
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword compares a password with a hash
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
