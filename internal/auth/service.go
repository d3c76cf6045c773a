package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Harshdeep9881/hospitalos/pkg/config"
	"github.com/Harshdeep9881/hospitalos/pkg/logger"
	"github.com/Harshdeep9881/hospitalos/pkg/types"
)

// Service authenticates the configured admin account and issues bearer
// tokens. There is no user table: the single admin identity comes from
// configuration.
type Service struct {
	config *config.Config
	logger *logger.Logger
}

// New creates a new auth service
func New(cfg *config.Config, log *logger.Logger) *Service {
	return &Service{
		config: cfg,
		logger: log,
	}
}

// Login checks the credentials against the configured admin account and
// returns a signed access token. Email comparison is case-insensitive.
func (s *Service) Login(req *types.LoginRequest) (*types.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	if email == "" || password == "" {
		return nil, types.NewValidationError("Email and password required")
	}

	adminEmail := strings.ToLower(strings.TrimSpace(s.config.Admin.Email))
	adminPassword := strings.TrimSpace(s.config.Admin.Password)
	if email != adminEmail || password != adminPassword {
		s.logger.WithField("email", email).Warn("Failed login attempt")
		return nil, types.NewAuthError("Invalid credentials")
	}

	token, err := s.generateAccessToken(email)
	if err != nil {
		s.logger.WithError(err).Error("Failed to sign access token")
		return nil, types.NewStoreError("unable to issue token", err)
	}

	s.logger.WithField("email", email).Info("Admin logged in")
	return &types.LoginResponse{Token: token}, nil
}

// VerifyToken validates a bearer token and returns the subject email
func (s *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWT.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return "", types.NewAuthError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", types.NewAuthError("Invalid or expired token")
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return "", types.NewAuthError("Invalid or expired token")
	}

	return email, nil
}

func (s *Service) generateAccessToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"role":  "admin",
		"iss":   s.config.JWT.Issuer,
		"exp":   now.Add(time.Duration(s.config.JWT.AccessTokenTTL) * time.Second).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWT.SecretKey))
}
