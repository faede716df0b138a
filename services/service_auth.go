package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"

	"hoopboard/dto"
	"hoopboard/internal/utils"
	"hoopboard/model"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserStore is the slice of the store the auth flows need. The Mongo
// implementation is repository.UserRepository; tests use an in-memory
// fake.
type UserStore interface {
	CreateWithClaim(ctx context.Context, user model.User) (model.User, bool, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

type AuthService struct {
	Users     UserStore
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthService(users UserStore, secret string) *AuthService {
	return &AuthService{
		Users:     users,
		JWTSecret: secret,
		TokenTTL:  72 * time.Hour,
	}
}

// Register validates the signup, hashes the password, and creates the
// user together with its username claim. Username uniqueness is enforced
// by the claim insert, not by this pre-flight validation, so concurrent
// signups for the same name cannot both succeed.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterReq) (model.User, string, error) {
	if err := utils.ValidateUsername(req.Username); err != nil {
		return model.User{}, "", err
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return model.User{}, "", errors.New("firstName, lastName and email are required")
	}
	if len(req.Password) < 8 {
		return model.User{}, "", errors.New("password must be at least 8 characters")
	}

	// Friendly pre-check; the unique email index is the backstop.
	if _, err := s.Users.FindByEmail(ctx, req.Email); err == nil {
		return model.User{}, "", ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", err
	}

	user, dup, err := s.Users.CreateWithClaim(ctx, model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     utils.NormalizeUsername(req.Username),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	})
	if err != nil {
		return model.User{}, "", err
	}
	if dup {
		return model.User{}, "", ErrUsernameTaken
	}

	token, err := s.issueToken(user)
	return user, token, err
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginReq) (model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, "", ErrInvalidCredentials
		}
		return model.User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return model.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	return user, token, err
}

// UsernameAvailable answers the signup form's live check. The input may
// be in any case; the lookup is on the normalized form.
func (s *AuthService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	if err := utils.ValidateUsername(username); err != nil {
		return false, err
	}
	taken, err := s.Users.UsernameTaken(ctx, utils.NormalizeUsername(username))
	return !taken, err
}

func (s *AuthService) issueToken(user model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.Hex(),
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.JWTSecret))
}
