package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kawther/internal/models"
	"kawther/internal/store"
)

// AuthService runs the demo sign-in. No password is checked or stored: the admin address signs
// in as admin with any password and every other address becomes a regular user. The issued
// token only marks the session; it is not a credential.
type AuthService struct {
	store      *store.Store
	jwtSecret  []byte
	adminEmail string
	tokenTTL   time.Duration
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(st *store.Store, jwtSecret, adminEmail string, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:      st,
		jwtSecret:  []byte(jwtSecret),
		adminEmail: adminEmail,
		tokenTTL:   24 * time.Hour,
		logger:     logger,
	}
}

// CurrentUser returns the signed-in user, or nil.
func (s *AuthService) CurrentUser() *models.User {
	return s.store.Snapshot().User
}

// Login signs a user in and returns a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(email)
	var user models.User
	switch {
	case email == s.adminEmail:
		user = models.User{ID: "admin", Email: email, Name: "Admin", IsAdmin: true}
	case email != "" && password != "":
		name, _, _ := strings.Cut(email, "@")
		user = models.User{ID: "user-" + uuid.New().String(), Email: email, Name: name}
	default:
		return nil, "", ErrInvalidCredentials
	}
	return s.signIn(ctx, user)
}

// Register signs in a new regular user.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, string, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, "", ErrInvalidCredentials
	}
	return s.signIn(ctx, models.User{ID: "user-" + uuid.New().String(), Email: email, Name: name})
}

// Logout clears the session user.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.store.Update(ctx, func(st *store.State) error {
		st.User = nil
		return nil
	})
}

func (s *AuthService) signIn(ctx context.Context, user models.User) (*models.User, string, error) {
	err := s.store.Update(ctx, func(st *store.State) error {
		u := user
		st.User = &u
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("user signed in", zap.String("user_id", user.ID), zap.Bool("admin", user.IsAdmin))
	return &user, signed, nil
}

// ValidateToken parses and validates a session token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
