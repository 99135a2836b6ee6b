package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// AccountClaims defines the standard claims for our application
type AccountClaims struct {
	AccountID int64     `json:"account_id"`
	Email     string    `json:"email,omitempty"`
	Type      TokenType `json:"type"`
	IsAdmin   bool      `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateAccessToken(accountID int64, email string, isAdmin bool) (string, error)
	GenerateRefreshToken(accountID int64, email string) (string, error)
	ValidateToken(tokenString string) (*AccountClaims, error)
}

type tokenManager struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewTokenManager(secret string, accessExpiry, refreshExpiry time.Duration) TokenManager {
	return &tokenManager{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (m *tokenManager) GenerateAccessToken(accountID int64, email string, isAdmin bool) (string, error) {
	claims := AccountClaims{
		AccountID: accountID,
		Email:     email,
		Type:      TokenTypeAccess,
		IsAdmin:   isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "swiftpay",
			Audience:  jwt.ClaimStrings{"api-access"},
			ID:        generateJTI(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) GenerateRefreshToken(accountID int64, email string) (string, error) {
	claims := AccountClaims{
		AccountID: accountID,
		Email:     email,
		Type:      TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.refreshExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "swiftpay",
			Audience:  jwt.ClaimStrings{"token-refresh"},
			ID:        generateJTI(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*AccountClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccountClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*AccountClaims); ok && token.Valid {
		// Populate AccountID from Subject if it was lost (though we set both)
		if claims.AccountID == 0 && claims.Subject != "" {
			claims.AccountID, _ = strconv.ParseInt(claims.Subject, 10, 64)
		}
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Simple unique ID generator
func generateJTI() string {
	return strconv.FormatInt(time.Now().UnixNano(), 16)
}
