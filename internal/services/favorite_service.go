package services

import (
	"vendrefacile/internal/domain"
	"vendrefacile/internal/repos"
)

type FavoriteService struct {
	Repo *repos.FavoriteRepo
}

func NewFavoriteService(r *repos.FavoriteRepo) *FavoriteService { return &FavoriteService{Repo: r} }

func (s *FavoriteService) List(userID int64) ([]repos.FavoriteRow, error) {
	return s.Repo.List(userID)
}

func (s *FavoriteService) Add(userID, annonceID int64) (domain.Favorite, error) {
	return s.Repo.Add(userID, annonceID)
}

func (s *FavoriteService) Remove(userID, annonceID int64) error {
	return s.Repo.Remove(userID, annonceID)
}
