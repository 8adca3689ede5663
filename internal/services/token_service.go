package services

import (
	"errors"
	"strings"
	"time"

	"pustaka/internal/config"
	"pustaka/internal/models"

	"github.com/dgrijalva/jwt-go"
)

var (
	// ErrTokenExpired means the token was well-formed and correctly signed
	// but its expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid covers every other verification failure: bad
	// signature, malformed payload, wrong signing method.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the identity assertion carried by a verified token.
type Claims struct {
	UserID string
	Email  string
}

// TokenService issues and verifies signed bearer tokens. Tokens are
// self-contained: validity is purely a function of signature and expiry,
// there is no server-side revocation list.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService creates a new TokenService from the JWT configuration.
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}
}

// Issue signs an access token binding the user's id and email.
func (s *TokenService) Issue(user *models.User) (string, error) {
	return s.sign(user, s.accessTTL, "")
}

// IssueRefresh signs a longer-lived token marked as a refresh token.
func (s *TokenService) IssueRefresh(user *models.User) (string, error) {
	return s.sign(user, s.refreshTTL, "refresh")
}

func (s *TokenService) sign(user *models.User, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	if tokenType != "" {
		claims["type"] = tokenType
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify parses and validates a token, returning the identity claims.
// Expired tokens fail with ErrTokenExpired; anything else that does not
// verify fails with ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	if userID == "" {
		return nil, ErrTokenInvalid
	}

	return &Claims{UserID: userID, Email: email}, nil
}

// ExtractBearer pulls the token out of an Authorization header value.
// Only the exact two-token form "Bearer <token>" is accepted; any other
// shape yields not-present rather than an error.
func ExtractBearer(headerValue string) (string, bool) {
	parts := strings.Split(headerValue, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
