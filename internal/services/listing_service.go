package services

import (
	"vendrefacile/internal/domain"
	"vendrefacile/internal/repos"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SearchParams is the caller-facing filter set; the service validates it and
// translates pagination before handing it to the repo.
type SearchParams struct {
	CategoryID *int64
	City       string
	PriceMin   *float64
	PriceMax   *float64
	Query      string
	Status     string
	Page       int
	PageSize   int
}

type ListingService struct {
	Annonces *repos.AnnonceRepo
}

func NewListingService(annonces *repos.AnnonceRepo) *ListingService {
	return &ListingService{Annonces: annonces}
}

// Search enforces the visibility contract: empty status means active only,
// "all" lifts the restriction, any other value must be a real status.
func (s *ListingService) Search(p SearchParams) ([]repos.AnnonceRow, error) {
	if p.Status != "" && p.Status != domain.SearchAll && !domain.ValidStatus(p.Status) {
		return nil, domain.Invalid("unknown status filter")
	}
	if p.PriceMin != nil && p.PriceMax != nil && *p.PriceMin > *p.PriceMax {
		return nil, domain.Invalid("price_min greater than price_max")
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > maxPageSize {
		p.PageSize = defaultPageSize
	}
	return s.Annonces.Search(repos.SearchFilter{
		CategoryID: p.CategoryID,
		City:       p.City,
		PriceMin:   p.PriceMin,
		PriceMax:   p.PriceMax,
		Query:      p.Query,
		Status:     p.Status,
		Limit:      p.PageSize,
		Offset:     (p.Page - 1) * p.PageSize,
	})
}

func (s *ListingService) Mine(userID int64) ([]repos.AnnonceRow, error) {
	return s.Annonces.Mine(userID)
}

func (s *ListingService) Get(id int64) (repos.AnnonceRow, error) {
	return s.Annonces.ByID(id)
}

func (s *ListingService) Create(userID int64, in repos.NewAnnonce) (domain.Annonce, error) {
	if in.Title == "" {
		return domain.Annonce{}, domain.Invalid("title is required")
	}
	if in.Price != nil && *in.Price < 0 {
		return domain.Annonce{}, domain.Invalid("price must not be negative")
	}
	return s.Annonces.Create(userID, in)
}

func (s *ListingService) Update(id, userID int64, in repos.AnnonceUpdate) (domain.Annonce, error) {
	if in.Title != nil && *in.Title == "" {
		return domain.Annonce{}, domain.Invalid("title must not be empty")
	}
	if in.Price != nil && *in.Price < 0 {
		return domain.Annonce{}, domain.Invalid("price must not be negative")
	}
	if in.Status != nil && !domain.ValidStatus(*in.Status) {
		return domain.Annonce{}, domain.Invalid("unknown status")
	}
	return s.Annonces.Update(id, userID, in)
}

func (s *ListingService) Delete(id, userID int64) error {
	return s.Annonces.Delete(id, userID)
}
