package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"tableside/staff-svc/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 12 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("missing or expired auth token")
	ErrBadRole            = errors.New("unknown staff role")
)

// AccountService handles staff accounts and opaque session tokens. Tokens
// live in redis with a TTL; the user record is re-read on every request so
// a role change takes effect immediately.
type AccountService struct {
	repo   UserRepository
	tokens TokenStoreInterface
}

func NewAccountService(repo UserRepository, tokens TokenStoreInterface) *AccountService {
	return &AccountService{repo: repo, tokens: tokens}
}

func (s *AccountService) Register(username, password, role, waiterCode string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	switch role {
	case domain.RoleAdmin, domain.RoleWaiter, domain.RoleChef:
	default:
		return nil, ErrBadRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		WaiterCode:   waiterCode,
	}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		// an unknown user and a wrong password look the same to the caller
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := newAuthToken()
	if err := s.tokens.Save(ctx, token, user.ID, tokenTTL); err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AccountService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.tokens.Delete(ctx, token)
}

func (s *AccountService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	userID, err := s.tokens.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	user, err := s.repo.GetUser(userID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// EnsureAdmin seeds the first admin account on an empty user table, so a
// fresh deployment can log in at all.
func (s *AccountService) EnsureAdmin(username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := s.repo.GetUserByUsername(username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	_, err = s.Register(username, password, domain.RoleAdmin, "")
	return err
}

func newAuthToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
