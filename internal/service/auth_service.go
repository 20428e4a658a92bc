package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/model"
	"aimrealty.com/estateapi/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, input dto.LoginInput) (*model.User, string, error)
	Logout(ctx context.Context, sessionID string) error
	// CurrentUser resolves a session to a user. A missing or stale session
	// yields (nil, nil): "not logged in" is a normal outcome.
	CurrentUser(ctx context.Context, sessionID string) (*model.User, error)
	// IssueAPIToken creates a bearer token for dashboard/service
	// integrations that cannot carry cookies.
	IssueAPIToken(ctx context.Context, userID string) (string, int64, error)
}

type authService struct {
	repo        repository.UserRepository
	sessions    SessionStore
	secret      string
	tokenTTL    time.Duration
	defaultRole string
}

func NewAuthService(repo repository.UserRepository, sessions SessionStore) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	ttl := 24 * time.Hour
	if ttlStr := os.Getenv("API_TOKEN_TTL"); ttlStr != "" {
		if parsed, err := time.ParseDuration(ttlStr); err == nil {
			ttl = parsed
		}
	}

	defaultRole := os.Getenv("DEFAULT_ROLE")
	if defaultRole == "" {
		defaultRole = model.RoleCustomer
	}

	return &authService{
		repo:        repo,
		sessions:    sessions,
		secret:      secret,
		tokenTTL:    ttl,
		defaultRole: defaultRole,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*model.User, string, error) {
	if err := s.ensureUserUnique(ctx, input.Email, input.Username); err != nil {
		return nil, "", err
	}

	roleName := s.defaultRole
	if input.Role != nil && *input.Role != "" {
		roleName = *input.Role
	}

	role, err := s.repo.FindRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("role %s not found", roleName)
		}
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	languages := input.Language
	if len(languages) == 0 {
		languages = []string{model.LangEnglish}
	}

	roleID := role.ID
	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		RoleID:       &roleID,
		Phone:        input.Phone,
	}

	if err := s.repo.Create(ctx, user, languages); err != nil {
		return nil, "", err
	}

	created, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", err
	}

	sessionID, err := s.sessions.Create(ctx, created.ID.String())
	if err != nil {
		return nil, "", err
	}

	created.PasswordHash = ""
	return created, sessionID, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*model.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", errors.New("invalid credentials")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", errors.New("invalid credentials")
	}

	if user.IsExpired {
		return nil, "", errors.New("account has expired")
	}

	sessionID, err := s.sessions.Create(ctx, user.ID.String())
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, sessionID, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *authService) CurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, nil
	}

	userID, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, nil
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) IssueAPIToken(ctx context.Context, userID string) (string, int64, error) {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return "", 0, err
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}

func (s *authService) ensureUserUnique(ctx context.Context, email, username string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return errors.New("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return errors.New("username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}
