package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ecoreforest/ecoreforest-backend/internal/config"
	"github.com/ecoreforest/ecoreforest-backend/internal/dto"
	"github.com/ecoreforest/ecoreforest-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotVerified = errors.New("account exists but is not verified")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

// DefaultFreeUses is how many recommendation generations a new account
// gets before a subscription is required.
const DefaultFreeUses = 2

// NormalizeEmail trims whitespace and lowercases. Every account
// operation normalizes before touching storage, so the function is
// idempotent by construction.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type AccountService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAccountService(db *gorm.DB, cfg *config.Config) *AccountService {
	return &AccountService{db: db, cfg: cfg}
}

// Register creates an unverified user with a fresh six-digit code and
// the default free-use allowance. The stored code is surfaced to the
// caller because code delivery is simulated in this product.
func (s *AccountService) Register(email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:            email,
		PasswordHash:     string(hash),
		Verified:         false,
		VerificationCode: code,
		FreeUses:         DefaultFreeUses,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Verify marks the account verified when the supplied code matches the
// stored one. Re-verifying an already-verified account with the right
// code still succeeds.
func (s *AccountService) Verify(email, code string) error {
	user, err := s.GetUser(email)
	if err != nil {
		return err
	}

	if user.VerificationCode == "" || user.VerificationCode != code {
		return ErrInvalidCode
	}

	if err := s.db.Model(user).Update("verified", true).Error; err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	return nil
}

// Authenticate checks credentials and verification state. A missing
// account and a wrong password both map to ErrInvalidCredentials; an
// existing-but-unverified account gets its own error so the UI can
// point the user at the verification form instead.
func (s *AccountService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Verified {
		return nil, ErrAccountNotVerified
	}

	return &user, nil
}

// ResetPassword overwrites the password for an existing account. There
// is no old-password or code check; the reset flow is part of the
// simulation scope.
func (s *AccountService) ResetPassword(email, newPassword string) error {
	user, err := s.GetUser(email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Model(user).Update("password_hash", string(hash)).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *AccountService) GetUser(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ConsumeFreeUse decrements the free-use counter, clamped at zero, and
// returns the new value. Callers invoke it at most once per successful
// generation and only when no subscription is active.
func (s *AccountService) ConsumeFreeUse(email string) (int, error) {
	email = NormalizeEmail(email)
	remaining := 0

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		remaining = user.FreeUses - 1
		if remaining < 0 {
			remaining = 0
		}
		return tx.Model(&user).Update("free_uses", remaining).Error
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

func (s *AccountService) FreeUses(email string) (int, error) {
	user, err := s.GetUser(email)
	if err != nil {
		return 0, err
	}
	return user.FreeUses, nil
}

// IssueTokenPair creates a short-lived access token and a stored,
// hashed refresh token for a verified user.
func (s *AccountService) IssueTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			Email:    user.Email,
			Verified: user.Verified,
			FreeUses: user.FreeUses,
		},
	}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a
// new pair is issued.
func (s *AccountService) Refresh(refreshToken string) (*dto.AuthResponse, error) {
	tokenHash := hashToken(refreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = ?", tokenHash, false).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	if err := s.db.Model(&stored).Update("revoked", true).Error; err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	user, err := s.GetUser(stored.Email)
	if err != nil {
		return nil, err
	}

	return s.IssueTokenPair(user)
}

func (s *AccountService) Logout(refreshToken string) error {
	tokenHash := hashToken(refreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

func (s *AccountService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.Email,
		"verified": user.Verified,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AccountService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		Email:     user.Email,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

// generateVerificationCode draws a uniform six-digit code in
// [100000, 999999] from crypto/rand.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
