package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"vendrefacile/internal/auth"
	"vendrefacile/internal/domain"
	"vendrefacile/internal/repos"
)

type AuthService struct {
	Users *repos.UserRepo
	JWT   *auth.JWTService
}

func NewAuthService(users *repos.UserRepo, jwt *auth.JWTService) *AuthService {
	return &AuthService{Users: users, JWT: jwt}
}

type Registration struct {
	Email    string
	Password string
	Username string
	Phone    *string
	City     *string
}

func (s *AuthService) Register(in Registration) (*domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, "", err
	}
	u, err := s.Users.Create(in.Email, string(hash), in.Username, in.Phone, in.City)
	if err != nil {
		return nil, "", err
	}
	token, err := s.JWT.Generate(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrBadCreds
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", domain.ErrBadCreds
	}
	token, err := s.JWT.Generate(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) Profile(userID int64) (*domain.User, error) {
	return s.Users.ByID(userID)
}

func (s *AuthService) UpdateProfile(userID int64, username, phone, city *string) (*domain.User, error) {
	return s.Users.UpdateProfile(userID, username, phone, city)
}
