package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"corpquiz/apperrors"
	"corpquiz/models"
	"corpquiz/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registers users, signs in with locally minted tokens, and
// verifies bearer credentials that may come either from us or from the
// external identity provider.
type AuthService struct {
	store         repository.Store
	jwtSecret     []byte
	jwtMethod     jwt.SigningMethod
	tokenLifetime time.Duration
	idp           *IdPVerifier // nil when no IdP is configured
}

func NewAuthService(store repository.Store, jwtSecret, jwtAlgorithm string, tokenLifetime time.Duration, idp *IdPVerifier) *AuthService {
	method := jwt.GetSigningMethod(jwtAlgorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return &AuthService{
		store:         store,
		jwtSecret:     []byte(jwtSecret),
		jwtMethod:     method,
		tokenLifetime: tokenLifetime,
		idp:           idp,
	}
}

type SignUpRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *AuthService) Register(ctx context.Context, req *SignUpRequest) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Users().FindByEmail(ctx, req.Email); err == nil {
			return apperrors.ErrEmailAlreadyExists
		} else if !errors.Is(err, apperrors.ErrUserNotFound) {
			return err
		}

		user, err = uow.Users().AddOne(ctx, &models.User{
			Email:          req.Email,
			IsActive:       true,
			Firstname:      req.Firstname,
			Lastname:       req.Lastname,
			City:           req.City,
			Phone:          req.Phone,
			HashedPassword: string(hashed),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn checks the password and mints a local access token. The owner claim
// marks the token as ours, as opposed to IdP-issued.
func (s *AuthService) SignIn(ctx context.Context, req *SignInRequest) (string, error) {
	var user *models.User
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		found, err := uow.Users().FindByEmail(ctx, req.Email)
		if err != nil {
			return apperrors.ErrInvalidCredentials
		}
		user = found
		return nil
	})
	if err != nil {
		return "", err
	}

	if !user.IsActive {
		return "", apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	return s.mintToken(user)
}

func (s *AuthService) mintToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"email": user.Email,
		"owner": true,
		"exp":   time.Now().Add(s.tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(s.jwtMethod, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken resolves a bearer credential to a user. Locally minted tokens
// carry owner=true and are verified with the shared secret; anything else is
// verified against the IdP's signing keys. An unknown but validly signed
// email auto-provisions a shell user.
func (s *AuthService) VerifyToken(ctx context.Context, raw string) (*models.User, error) {
	email, err := s.verifiedEmail(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidCredentials, err)
	}
	if email == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	var user *models.User
	err = s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		found, err := uow.Users().FindByEmail(ctx, email)
		if err == nil {
			user = found
			return nil
		}
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(randomPassword()), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user, err = uow.Users().AddOne(ctx, &models.User{
			Email:          email,
			IsActive:       true,
			HashedPassword: string(hashed),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) verifiedEmail(ctx context.Context, raw string) (string, error) {
	// The unverified owner claim only routes the token to the right
	// verifier; nothing is trusted until a signature check has passed.
	unverified := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, unverified); err != nil {
		return "", err
	}

	if owner, _ := unverified["owner"].(bool); owner {
		return s.verifyLocalToken(raw)
	}

	if s.idp == nil {
		return "", errors.New("token is not locally minted and no idp is configured")
	}
	claims, err := s.idp.Verify(ctx, raw)
	if err != nil {
		return "", err
	}
	return claims.Email, nil
}

func (s *AuthService) verifyLocalToken(raw string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != s.jwtMethod.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	email, _ := claims["email"].(string)
	return email, nil
}

func randomPassword() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
