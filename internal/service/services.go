package service

import (
	"github.com/rvidal/doorway/internal/repository"
	"github.com/rvidal/doorway/internal/token"
)

type Services struct {
	Auth *AuthService
}

func NewServices(repos *repository.Repositories, codec *token.Codec) *Services {
	return &Services{
		Auth: NewAuthService(repos.User, codec),
	}
}
