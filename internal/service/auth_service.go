package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"expense_tracker/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// passwordHashCost balances brute-force resistance against per-request latency.
const passwordHashCost = 10

// Domain errors for auth flows.
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrMissingSigningSecret = errors.New("signing secret is not configured")
	ErrInvalidToken         = errors.New("invalid token")
)

// AuthService implements the unified login-or-register flow: one endpoint
// either verifies an existing credential pair or registers it, and issues a
// signed token either way.
type AuthService struct {
	authRepo repository.Authorization
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(repo repository.Authorization, secret []byte, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{authRepo: repo, secret: secret, tokenTTL: tokenTTL}
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// Authenticate looks up the phone number and either verifies the password
// (login) or creates the user (implicit registration). A lookup miss followed
// by a uniqueness violation on insert means another request registered the
// same number concurrently; that loser retries as a login.
func (s *AuthService) Authenticate(ctx context.Context, phoneNumber, password string) (AuthResult, error) {
	if len(s.secret) == 0 {
		return AuthResult{}, ErrMissingSigningSecret
	}

	u, err := s.authRepo.GetByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return AuthResult{}, err
	}
	if u != nil {
		return s.login(u.ID, u.PasswordHash, password)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("invalid password: %w", err)
	}

	id, err := s.authRepo.Create(ctx, phoneNumber, hash)
	if err != nil {
		if errors.Is(err, repository.ErrPhoneNumberTaken) {
			return s.retryAsLogin(ctx, phoneNumber, password)
		}
		return AuthResult{}, err
	}

	token, err := s.issueToken(id)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, UserID: id, Created: true}, nil
}

// login verifies the password against the stored hash and issues a token.
func (s *AuthService) login(userID int, storedHash, password string) (AuthResult, error) {
	if err := verifyPassword(storedHash, password); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	token, err := s.issueToken(userID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, UserID: userID}, nil
}

// retryAsLogin re-fetches the row inserted by the winning concurrent request.
func (s *AuthService) retryAsLogin(ctx context.Context, phoneNumber, password string) (AuthResult, error) {
	u, err := s.authRepo.GetByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return AuthResult{}, err
	}
	if u == nil {
		// insert lost to a registration that vanished before the re-read;
		// outside this core's concurrency model
		return AuthResult{}, ErrInvalidCredentials
	}
	return s.login(u.ID, u.PasswordHash, password)
}

// ParseToken parses a signed token and returns the user id it asserts.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if len(s.secret) == 0 {
			return nil, ErrMissingSigningSecret
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.secret)
}
