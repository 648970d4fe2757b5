package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

const schemaSQLite = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS users (
  id            INTEGER PRIMARY KEY AUTOINCREMENT,
  email         TEXT UNIQUE NOT NULL,
  password_hash TEXT NOT NULL,
  username      TEXT UNIQUE NOT NULL,
  phone         TEXT,
  city          TEXT,
  latitude      REAL,
  longitude     REAL,
  role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user','pro','admin')),
  created_at    TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at    TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS categories (
  id        INTEGER PRIMARY KEY AUTOINCREMENT,
  name      TEXT UNIQUE NOT NULL,
  parent_id INTEGER REFERENCES categories(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS annonces (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  title       TEXT NOT NULL,
  description TEXT,
  price       NUMERIC,
  city        TEXT,
  latitude    REAL,
  longitude   REAL,
  category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL,
  user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  status      TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active','sold','archived')),
  created_at  TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at  TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_annonces_category ON annonces(category_id);
CREATE INDEX IF NOT EXISTS idx_annonces_city     ON annonces(city);
CREATE INDEX IF NOT EXISTS idx_annonces_price    ON annonces(price);
CREATE INDEX IF NOT EXISTS idx_annonces_status   ON annonces(status);
CREATE INDEX IF NOT EXISTS idx_annonces_user     ON annonces(user_id);

CREATE TABLE IF NOT EXISTS favorites (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  annonce_id INTEGER NOT NULL REFERENCES annonces(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_id, annonce_id)
);
CREATE INDEX IF NOT EXISTS idx_favorites_user ON favorites(user_id);

CREATE TABLE IF NOT EXISTS conversations (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  annonce_id INTEGER NOT NULL REFERENCES annonces(id) ON DELETE CASCADE,
  buyer_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  seller_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(annonce_id, buyer_id)
);

CREATE TABLE IF NOT EXISTS messages (
  id              INTEGER PRIMARY KEY AUTOINCREMENT,
  conversation_id INTEGER NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
  sender_id       INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  content         TEXT NOT NULL,
  read            INTEGER NOT NULL DEFAULT 0,
  created_at      TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_messages_conv ON messages(conversation_id);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS users (
  id            SERIAL PRIMARY KEY,
  email         VARCHAR(255) UNIQUE NOT NULL,
  password_hash VARCHAR(255) NOT NULL,
  username      VARCHAR(100) UNIQUE NOT NULL,
  phone         VARCHAR(20),
  city          VARCHAR(100),
  latitude      DOUBLE PRECISION,
  longitude     DOUBLE PRECISION,
  role          VARCHAR(20) DEFAULT 'user' CHECK (role IN ('user','pro','admin')),
  created_at    TIMESTAMPTZ DEFAULT NOW(),
  updated_at    TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS categories (
  id        SERIAL PRIMARY KEY,
  name      VARCHAR(100) UNIQUE NOT NULL,
  parent_id INTEGER REFERENCES categories(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS annonces (
  id          SERIAL PRIMARY KEY,
  title       VARCHAR(255) NOT NULL,
  description TEXT,
  price       NUMERIC(12,2),
  city        VARCHAR(100),
  latitude    DOUBLE PRECISION,
  longitude   DOUBLE PRECISION,
  category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL,
  user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  status      VARCHAR(20) DEFAULT 'active' CHECK (status IN ('active','sold','archived')),
  created_at  TIMESTAMPTZ DEFAULT NOW(),
  updated_at  TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_annonces_category ON annonces(category_id);
CREATE INDEX IF NOT EXISTS idx_annonces_city     ON annonces(city);
CREATE INDEX IF NOT EXISTS idx_annonces_price    ON annonces(price);
CREATE INDEX IF NOT EXISTS idx_annonces_status   ON annonces(status);
CREATE INDEX IF NOT EXISTS idx_annonces_user     ON annonces(user_id);

CREATE TABLE IF NOT EXISTS favorites (
  id         SERIAL PRIMARY KEY,
  user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  annonce_id INTEGER NOT NULL REFERENCES annonces(id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ DEFAULT NOW(),
  UNIQUE(user_id, annonce_id)
);
CREATE INDEX IF NOT EXISTS idx_favorites_user ON favorites(user_id);

CREATE TABLE IF NOT EXISTS conversations (
  id         SERIAL PRIMARY KEY,
  annonce_id INTEGER NOT NULL REFERENCES annonces(id) ON DELETE CASCADE,
  buyer_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  seller_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ DEFAULT NOW(),
  UNIQUE(annonce_id, buyer_id)
);

CREATE TABLE IF NOT EXISTS messages (
  id              SERIAL PRIMARY KEY,
  conversation_id INTEGER NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
  sender_id       INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  content         TEXT NOT NULL,
  read            BOOLEAN DEFAULT FALSE,
  created_at      TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_messages_conv ON messages(conversation_id);
`

func ensureSchema(db *sqlx.DB) error {
	schema := schemaSQLite
	if db.DriverName() == "postgres" {
		schema = schemaPostgres
	}
	_, err := db.Exec(schema)
	return err
}

// seedIfEmpty loads demo data on a fresh database: base categories, a
// seller and a buyer, three listings, one favorite and one conversation.
func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo users/categories/annonces")

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, name := range []string{
		"Véhicules", "Immobilier", "Multimédia", "Maison", "Loisirs",
		"Emploi", "Services", "Vêtements", "Animaux", "Divers",
	} {
		if _, err := tx.Exec(tx.Rebind(`INSERT INTO categories(name) VALUES(?)`), name); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	if err != nil {
		return err
	}

	var sellerID, buyerID int64
	if err := tx.Get(&sellerID, tx.Rebind(`
	  INSERT INTO users(email, password_hash, username, city, role)
	  VALUES(?, ?, ?, ?, 'user') RETURNING id
	`), "seller@vendrefacile.local", string(hash), "vendeur_demo", "Paris"); err != nil {
		return err
	}
	if err := tx.Get(&buyerID, tx.Rebind(`
	  INSERT INTO users(email, password_hash, username, city, role)
	  VALUES(?, ?, ?, ?, 'user') RETURNING id
	`), "buyer@vendrefacile.local", string(hash), "acheteur_demo", "Lyon"); err != nil {
		return err
	}

	var catMultimedia int64
	if err := tx.Get(&catMultimedia, tx.Rebind(`SELECT id FROM categories WHERE name = ?`), "Multimédia"); err != nil {
		return err
	}
	var catVehicules int64
	if err := tx.Get(&catVehicules, tx.Rebind(`SELECT id FROM categories WHERE name = ?`), "Véhicules"); err != nil {
		return err
	}
	var catMaison int64
	if err := tx.Get(&catMaison, tx.Rebind(`SELECT id FROM categories WHERE name = ?`), "Maison"); err != nil {
		return err
	}

	var phoneID int64
	if err := tx.Get(&phoneID, tx.Rebind(`
	  INSERT INTO annonces(title, description, price, city, category_id, user_id)
	  VALUES(?, ?, ?, ?, ?, ?) RETURNING id
	`), "iPhone 12 128Go", "Très bon état, batterie OK, vendu avec câble.", 350, "Paris", catMultimedia, sellerID); err != nil {
		return err
	}
	if _, err := tx.Exec(tx.Rebind(`
	  INSERT INTO annonces(title, description, price, city, category_id, user_id)
	  VALUES(?, ?, ?, ?, ?, ?)
	`), "Vélo de ville", "Vélo confortable, révisé récemment.", 120, "Paris", catVehicules, sellerID); err != nil {
		return err
	}
	if _, err := tx.Exec(tx.Rebind(`
	  INSERT INTO annonces(title, description, price, city, category_id, user_id, status)
	  VALUES(?, ?, ?, ?, ?, ?, 'sold')
	`), "Table basse en bois", "Style scandinave, quelques traces d'usage.", 60, "Paris", catMaison, sellerID); err != nil {
		return err
	}

	if _, err := tx.Exec(tx.Rebind(`INSERT INTO favorites(user_id, annonce_id) VALUES(?, ?)`), buyerID, phoneID); err != nil {
		return err
	}

	var convID int64
	if err := tx.Get(&convID, tx.Rebind(`
	  INSERT INTO conversations(annonce_id, buyer_id, seller_id)
	  VALUES(?, ?, ?) RETURNING id
	`), phoneID, buyerID, sellerID); err != nil {
		return err
	}
	if _, err := tx.Exec(tx.Rebind(`
	  INSERT INTO messages(conversation_id, sender_id, content) VALUES(?, ?, ?)
	`), convID, buyerID, "Bonjour, toujours disponible ?"); err != nil {
		return err
	}
	if _, err := tx.Exec(tx.Rebind(`
	  INSERT INTO messages(conversation_id, sender_id, content) VALUES(?, ?, ?)
	`), convID, sellerID, "Oui, disponible. Vous souhaitez venir le voir quand ?"); err != nil {
		return err
	}

	return tx.Commit()
}
