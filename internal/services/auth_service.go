package services

import (
	"fmt"
	"log"
	"time"

	"zonelink/internal/apperrors"
	"zonelink/internal/models"
	"zonelink/internal/repositories"
	"zonelink/pkg/sharecode"
	"zonelink/pkg/timezone"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// shareCodeAttempts bounds the uniqueness retry loop at profile creation.
const shareCodeAttempts = 5

// AuthService handles business logic for registration, authentication, and
// session tokens.
type AuthService struct {
	userRepo        repositories.UserRepository
	jwtSecret       []byte
	tokenDurat      time.Duration // Duration for which JWT is valid
	defaultTimezone string
}

// NewAuthService creates a new AuthService. defaultTimezone is used when a
// registration does not supply one, the server-side analog of falling back
// to the device-reported zone.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, defaultTimezone string) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		jwtSecret:       []byte(jwtSecret),
		tokenDurat:      24 * time.Hour, // Token valid for 24 hours
		defaultTimezone: defaultTimezone,
	}
}

// Register creates a new identity and its profile in one step: duplicate
// email check, password hash, share code issue, profile row.
func (s *AuthService) Register(email, password, displayName, tz string) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrEmailRegistered, email)
	}

	if tz == "" {
		tz = s.defaultTimezone
	}
	if err := timezone.Validate(tz); err != nil {
		return nil, err
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := s.issueShareCode()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:       email,
		Password:    string(hashedPassword),
		DisplayName: displayName,
		Timezone:    tz,
		ShareCode:   code,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// issueShareCode generates codes until one is unused. Collisions are a
// 1-in-32^6 event per pair, but the lookup design assumes codes are unique,
// so it is verified here rather than trusted to chance.
func (s *AuthService) issueShareCode() (string, error) {
	for i := 0; i < shareCodeAttempts; i++ {
		code := sharecode.Generate()
		existing, err := s.userRepo.GetByShareCode(code)
		if err != nil {
			return "", fmt.Errorf("failed to check share code uniqueness: %w", err)
		}
		if existing == nil {
			return code, nil
		}
		log.Printf("Share code collision on %s, regenerating", code)
	}
	return "", fmt.Errorf("could not issue a unique share code after %d attempts", shareCodeAttempts)
}

// Login authenticates a user and returns a JWT token if successful. Unknown
// email and wrong password produce the same error so the response does not
// reveal which accounts exist.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return "", apperrors.ErrInvalidCredentials
	}

	// Compare the provided password with the hashed password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	// Generate JWT token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":     time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
