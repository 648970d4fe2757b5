package repos

import (
	"database/sql"
	"errors"

	"vendrefacile/internal/domain"
)

type UserRepo struct {
	gw *Gateway
}

func NewUserRepo(gw *Gateway) *UserRepo { return &UserRepo{gw: gw} }

const userColumns = `id, email, password_hash, username, COALESCE(phone,'') AS phone, COALESCE(city,'') AS city, role`

// Create inserts a registration. Duplicate email/username surfaces as
// domain.ErrConflict.
func (r *UserRepo) Create(email, hash, username string, phone, city *string) (*domain.User, error) {
	var u domain.User
	err := r.gw.Write.Get(&u, r.gw.Write.Rebind(`
	  INSERT INTO users(email, password_hash, username, phone, city)
	  VALUES(?, ?, ?, ?, ?)
	  RETURNING `+userColumns), email, hash, username, phone, city)
	if isUniqueViolation(err) {
		return nil, domain.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ByEmail reads from the primary: login must see a registration that just
// happened, replica lag or not.
func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.gw.Write.Get(&u, r.gw.Write.Rebind(`SELECT `+userColumns+` FROM users WHERE email = ?`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.gw.Read.Get(&u, r.gw.Read.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile patches the mutable profile fields; nil members keep the
// stored value.
func (r *UserRepo) UpdateProfile(id int64, username, phone, city *string) (*domain.User, error) {
	var u domain.User
	err := r.gw.Write.Get(&u, r.gw.Write.Rebind(`
	  UPDATE users SET
	    username = COALESCE(?, username),
	    phone = COALESCE(?, phone),
	    city = COALESCE(?, city),
	    updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	  RETURNING `+userColumns), username, phone, city, id)
	if isUniqueViolation(err) {
		return nil, domain.ErrConflict
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
