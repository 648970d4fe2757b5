package repos

import (
	"database/sql"
	"errors"
	"strings"

	"vendrefacile/internal/domain"
)

type AnnonceRepo struct {
	gw *Gateway
}

func NewAnnonceRepo(gw *Gateway) *AnnonceRepo { return &AnnonceRepo{gw: gw} }

// SearchFilter is the open set of optional criteria the search endpoint
// accepts. Nil/zero members are omitted from the query; everything that is
// present is ANDed in. Status is expected pre-validated by the service.
type SearchFilter struct {
	CategoryID *int64
	City       string
	PriceMin   *float64
	PriceMax   *float64
	Query      string
	Status     string // "", active, sold, archived, all
	Limit      int
	Offset     int
}

// AnnonceRow is a search/detail projection: the listing joined with its
// owner's display name and the (optional) category name.
type AnnonceRow struct {
	domain.Annonce
	SellerName   string `db:"seller_name" json:"seller_name"`
	SellerCity   string `db:"seller_city" json:"seller_city,omitempty"`
	CategoryName string `db:"category_name" json:"category_name,omitempty"`
}

const annonceColumns = `
  a.id, a.title, COALESCE(a.description,'') AS description, COALESCE(a.price,0) AS price,
  COALESCE(a.city,'') AS city, COALESCE(a.latitude,0) AS latitude, COALESCE(a.longitude,0) AS longitude,
  COALESCE(a.category_id,0) AS category_id, a.user_id, a.status,
  CAST(a.created_at AS TEXT) AS created_at, CAST(a.updated_at AS TEXT) AS updated_at`

// Search composes one parameterized query from the filter. The default
// visibility policy restricts to active listings unless the caller named a
// status; "all" lifts the restriction entirely. Ordering is newest first
// with an id tie-break so pagination stays stable.
func (r *AnnonceRepo) Search(f SearchFilter) ([]AnnonceRow, error) {
	conds := []string{}
	args := []any{}

	switch f.Status {
	case "", domain.StatusActive:
		conds = append(conds, `a.status = ?`)
		args = append(args, domain.StatusActive)
	case domain.SearchAll:
		// no status restriction
	default:
		conds = append(conds, `a.status = ?`)
		args = append(args, f.Status)
	}
	if f.CategoryID != nil {
		conds = append(conds, `a.category_id = ?`)
		args = append(args, *f.CategoryID)
	}
	if f.City != "" {
		conds = append(conds, `LOWER(a.city) LIKE ?`)
		args = append(args, "%"+strings.ToLower(f.City)+"%")
	}
	if f.PriceMin != nil {
		conds = append(conds, `a.price >= ?`)
		args = append(args, *f.PriceMin)
	}
	if f.PriceMax != nil {
		conds = append(conds, `a.price <= ?`)
		args = append(args, *f.PriceMax)
	}
	if f.Query != "" {
		conds = append(conds, `(LOWER(a.title) LIKE ? OR LOWER(a.description) LIKE ?)`)
		pat := "%" + strings.ToLower(f.Query) + "%"
		args = append(args, pat, pat)
	}

	where := ""
	if len(conds) > 0 {
		where = ` WHERE ` + strings.Join(conds, " AND ")
	}
	query := `
	  SELECT` + annonceColumns + `,
	    u.username AS seller_name, '' AS seller_city, COALESCE(c.name,'') AS category_name
	  FROM annonces a
	  JOIN users u ON u.id = a.user_id
	  LEFT JOIN categories c ON c.id = a.category_id` + where + `
	  ORDER BY a.created_at DESC, a.id DESC
	  LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)

	out := []AnnonceRow{}
	err := r.gw.Read.Select(&out, r.gw.Read.Rebind(query), args...)
	return out, err
}

// Mine returns every listing owned by userID regardless of status.
func (r *AnnonceRepo) Mine(userID int64) ([]AnnonceRow, error) {
	out := []AnnonceRow{}
	err := r.gw.Read.Select(&out, r.gw.Read.Rebind(`
	  SELECT`+annonceColumns+`,
	    u.username AS seller_name, '' AS seller_city, COALESCE(c.name,'') AS category_name
	  FROM annonces a
	  JOIN users u ON u.id = a.user_id
	  LEFT JOIN categories c ON c.id = a.category_id
	  WHERE a.user_id = ?
	  ORDER BY a.created_at DESC, a.id DESC`), userID)
	return out, err
}

// ByID fetches the detail view; it is reachable for any status once the id
// is known.
func (r *AnnonceRepo) ByID(id int64) (AnnonceRow, error) {
	var row AnnonceRow
	err := r.gw.Read.Get(&row, r.gw.Read.Rebind(`
	  SELECT`+annonceColumns+`,
	    u.username AS seller_name, COALESCE(u.city,'') AS seller_city, COALESCE(c.name,'') AS category_name
	  FROM annonces a
	  JOIN users u ON u.id = a.user_id
	  LEFT JOIN categories c ON c.id = a.category_id
	  WHERE a.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return AnnonceRow{}, domain.ErrNotFound
	}
	return row, err
}

// OwnerID resolves the listing owner from the primary so a just-created
// listing can be contacted immediately, replica lag or not.
func (r *AnnonceRepo) OwnerID(id int64) (int64, error) {
	var owner int64
	err := r.gw.Write.Get(&owner, r.gw.Write.Rebind(`SELECT user_id FROM annonces WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	return owner, err
}

type NewAnnonce struct {
	Title       string
	Description *string
	Price       *float64
	City        *string
	Latitude    *float64
	Longitude   *float64
	CategoryID  *int64
}

func (r *AnnonceRepo) Create(userID int64, in NewAnnonce) (domain.Annonce, error) {
	var a domain.Annonce
	err := r.gw.Write.Get(&a, r.gw.Write.Rebind(`
	  INSERT INTO annonces(title, description, price, city, latitude, longitude, category_id, user_id)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	  RETURNING id, title, COALESCE(description,'') AS description, COALESCE(price,0) AS price,
	    COALESCE(city,'') AS city, COALESCE(latitude,0) AS latitude, COALESCE(longitude,0) AS longitude,
	    COALESCE(category_id,0) AS category_id, user_id, status,
	    CAST(created_at AS TEXT) AS created_at, CAST(updated_at AS TEXT) AS updated_at`),
		in.Title, in.Description, in.Price, in.City, in.Latitude, in.Longitude, in.CategoryID, userID)
	return a, err
}

type AnnonceUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	City        *string
	Latitude    *float64
	Longitude   *float64
	CategoryID  *int64
	Status      *string
}

// Update applies a partial update scoped to the owner. A miss means the
// listing is absent or belongs to someone else; callers get the same
// ErrNotFound either way.
func (r *AnnonceRepo) Update(id, userID int64, in AnnonceUpdate) (domain.Annonce, error) {
	var a domain.Annonce
	err := r.gw.Write.Get(&a, r.gw.Write.Rebind(`
	  UPDATE annonces SET
	    title = COALESCE(?, title), description = COALESCE(?, description),
	    price = COALESCE(?, price), city = COALESCE(?, city),
	    latitude = COALESCE(?, latitude), longitude = COALESCE(?, longitude),
	    category_id = COALESCE(?, category_id), status = COALESCE(?, status),
	    updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND user_id = ?
	  RETURNING id, title, COALESCE(description,'') AS description, COALESCE(price,0) AS price,
	    COALESCE(city,'') AS city, COALESCE(latitude,0) AS latitude, COALESCE(longitude,0) AS longitude,
	    COALESCE(category_id,0) AS category_id, user_id, status,
	    CAST(created_at AS TEXT) AS created_at, CAST(updated_at AS TEXT) AS updated_at`),
		in.Title, in.Description, in.Price, in.City, in.Latitude, in.Longitude, in.CategoryID, in.Status,
		id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Annonce{}, domain.ErrNotFound
	}
	return a, err
}

// Delete removes the listing, owner-scoped like Update.
func (r *AnnonceRepo) Delete(id, userID int64) error {
	res, err := r.gw.Write.Exec(r.gw.Write.Rebind(`DELETE FROM annonces WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
