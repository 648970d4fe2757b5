package domain

// Listing statuses. SearchAll is a filter-only sentinel that disables the
// status restriction; it is never stored.
const (
	StatusActive   = "active"
	StatusSold     = "sold"
	StatusArchived = "archived"
	SearchAll      = "all"
)

// User roles.
const (
	RoleUser  = "user"
	RolePro   = "pro"
	RoleAdmin = "admin"
)

type Category struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	ParentID int64  `db:"parent_id" json:"parent_id,omitempty"`
}

type Annonce struct {
	ID          int64   `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description string  `db:"description" json:"description,omitempty"`
	Price       float64 `db:"price" json:"price"`
	City        string  `db:"city" json:"city,omitempty"`
	Latitude    float64 `db:"latitude" json:"latitude,omitempty"`
	Longitude   float64 `db:"longitude" json:"longitude,omitempty"`
	CategoryID  int64   `db:"category_id" json:"category_id,omitempty"`
	UserID      int64   `db:"user_id" json:"user_id"`
	Status      string  `db:"status" json:"status"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
	UpdatedAt   string  `db:"updated_at" json:"updated_at,omitempty"`
}

type Favorite struct {
	ID        int64  `db:"id" json:"id"`
	UserID    int64  `db:"user_id" json:"user_id"`
	AnnonceID int64  `db:"annonce_id" json:"annonce_id"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// Conversation is a buyer/seller thread scoped to one annonce and one buyer.
// UNIQUE(annonce_id, buyer_id) is the invariant the broker leans on.
type Conversation struct {
	ID        int64  `db:"id" json:"id"`
	AnnonceID int64  `db:"annonce_id" json:"annonce_id"`
	BuyerID   int64  `db:"buyer_id" json:"buyer_id"`
	SellerID  int64  `db:"seller_id" json:"seller_id"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

type Message struct {
	ID             int64  `db:"id" json:"id"`
	ConversationID int64  `db:"conversation_id" json:"conversation_id"`
	SenderID       int64  `db:"sender_id" json:"sender_id"`
	Content        string `db:"content" json:"content"`
	Read           bool   `db:"read" json:"read"`
	CreatedAt      string `db:"created_at" json:"created_at"`
}

// ValidStatus reports whether s is a storable listing status.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusSold || s == StatusArchived
}
