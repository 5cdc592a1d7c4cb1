package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vurel/storefront/internal/api/middleware"
	appErrors "github.com/vurel/storefront/internal/errors"
	"github.com/vurel/storefront/internal/models"
	repository "github.com/vurel/storefront/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo      repository.UserRepository
	redisRepo repository.RateLimitRepository
	jwtKey    []byte
	tokenTTL  time.Duration
}

func NewUserService(repo repository.UserRepository, redisRepo repository.RateLimitRepository, jwtKey []byte, tokenTTL time.Duration) *UserService {
	return &UserService{
		repo:      repo,
		redisRepo: redisRepo,
		jwtKey:    jwtKey,
		tokenTTL:  tokenTTL,
	}
}

func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	existingUser, _ := s.repo.GetUserByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, appErrors.DuplicateEntryError("Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  string(hashedPassword),
	}

	err = s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to create user").WithError(err)
	}

	return user, nil

}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	// check rate limit
	allowed, remaining, retryAfter, err := s.redisRepo.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: remaining,
		}, nil
	}

	tokenString, expiresIn, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	user.Password = ""

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: expiresIn,
		User:      user,
	}, nil

}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, appErrors.NotFoundError("User not found").WithError(err)
	}

	return user, nil

}

// IssueToken signs a session token for the user.
func (s *UserService) IssueToken(user *models.User) (string, int, error) {

	claims := &models.Claims{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return "", 0, appErrors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return tokenString, int(time.Until(claims.ExpiresAt.Time).Seconds()), nil
}

// EnsureAccountForCheckout backs guest checkout. A new account gets a random
// password and a session token for auto-login; an existing account is reused
// for order history but no token is issued, since the guest never proved they
// own it.
func (s *UserService) EnsureAccountForCheckout(ctx context.Context, req *models.CheckoutRequest) (*models.User, string, bool, error) {

	logger := middleware.LoggerFromContext(ctx)

	existing, err := s.repo.GetUserByEmail(ctx, req.Email)

	if err == nil {
		return existing, "", false, nil
	}

	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", false, appErrors.DatabaseError("Failed to look up account").WithError(err)
	}

	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, "", false, appErrors.InternalError("Failed to generate password").WithError(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(randomBytes)), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", false, appErrors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", false, appErrors.DatabaseError("Failed to create account").WithError(err)
	}

	tokenString, _, err := s.IssueToken(user)
	if err != nil {
		return nil, "", false, err
	}

	logger.Info("Guest account created during checkout", slog.Int64("userId", user.ID))

	user.Password = ""

	return user, tokenString, true, nil
}
