package domain

type User struct {
	ID       int64  `db:"id" json:"id"`
	Email    string `db:"email" json:"email"`
	Username string `db:"username" json:"username"`
	Hash     string `db:"password_hash" json:"-"`
	Phone    string `db:"phone" json:"phone,omitempty"`
	City     string `db:"city" json:"city,omitempty"`
	Role     string `db:"role" json:"role"`
}
