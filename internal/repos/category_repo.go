package repos

import "vendrefacile/internal/domain"

type CategoryRepo struct {
	gw *Gateway
}

func NewCategoryRepo(gw *Gateway) *CategoryRepo { return &CategoryRepo{gw: gw} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.gw.Read.Select(&out, `
	  SELECT id, name, COALESCE(parent_id, 0) AS parent_id
	  FROM categories
	  ORDER BY name`)
	return out, err
}
