package repos

import (
	"vendrefacile/internal/domain"
)

type FavoriteRepo struct {
	gw *Gateway
}

func NewFavoriteRepo(gw *Gateway) *FavoriteRepo { return &FavoriteRepo{gw: gw} }

// FavoriteRow annotates a favorite with a summary of the saved listing.
type FavoriteRow struct {
	ID        int64   `db:"id" json:"id"`
	CreatedAt string  `db:"created_at" json:"created_at"`
	AnnonceID int64   `db:"annonce_id" json:"annonce_id"`
	Title     string  `db:"title" json:"title"`
	Price     float64 `db:"price" json:"price"`
	City      string  `db:"city" json:"city,omitempty"`
	Status    string  `db:"status" json:"status"`
}

func (r *FavoriteRepo) List(userID int64) ([]FavoriteRow, error) {
	out := []FavoriteRow{}
	err := r.gw.Read.Select(&out, r.gw.Read.Rebind(`
	  SELECT f.id, CAST(f.created_at AS TEXT) AS created_at,
	    a.id AS annonce_id, a.title, COALESCE(a.price,0) AS price, COALESCE(a.city,'') AS city, a.status
	  FROM favorites f
	  JOIN annonces a ON a.id = f.annonce_id
	  WHERE f.user_id = ?
	  ORDER BY f.created_at DESC, f.id DESC`), userID)
	return out, err
}

// Add inserts the (user, annonce) pair. Unlike conversations, a duplicate
// here is surfaced to the caller as a conflict, not resolved silently.
func (r *FavoriteRepo) Add(userID, annonceID int64) (domain.Favorite, error) {
	var f domain.Favorite
	err := r.gw.Write.Get(&f, r.gw.Write.Rebind(`
	  INSERT INTO favorites(user_id, annonce_id) VALUES(?, ?)
	  RETURNING id, user_id, annonce_id, CAST(created_at AS TEXT) AS created_at`), userID, annonceID)
	if isUniqueViolation(err) {
		return domain.Favorite{}, domain.ErrConflict
	}
	if isForeignKeyViolation(err) {
		return domain.Favorite{}, domain.ErrNotFound
	}
	return f, err
}

// Remove is idempotent: deleting an absent favorite is not an error.
func (r *FavoriteRepo) Remove(userID, annonceID int64) error {
	_, err := r.gw.Write.Exec(r.gw.Write.Rebind(`DELETE FROM favorites WHERE user_id = ? AND annonce_id = ?`), userID, annonceID)
	return err
}
