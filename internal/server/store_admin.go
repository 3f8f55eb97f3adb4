package server

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

const (
	timeLayout      = "2006-01-02T15:04:05.000Z"
	adminSessionTTL = 7 * 24 * time.Hour
)

type AdminStore interface {
	AdminByEmail(ctx context.Context, email string) (adminID, passwordHash string, err error)
	CreateAdminSession(ctx context.Context, adminID string) (sessionID string, err error)
	DeleteAdminSession(ctx context.Context, sessionID string) error
	AdminFromSession(ctx context.Context, sessionID string) (adminSession, error)
	EnsureAdmin(ctx context.Context, email, passwordHash string) error
}

// SQLAdminStore keeps admins and their sessions in the admins and
// admin_sessions tables.
type SQLAdminStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLAdminStore(db *sql.DB) *SQLAdminStore {
	return &SQLAdminStore{db: db, now: time.Now}
}

// EnsureAdmin creates the admin or replaces its password hash.
func (s *SQLAdminStore) EnsureAdmin(ctx context.Context, email, passwordHash string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admins (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET password_hash = excluded.password_hash`,
		newID(), email, passwordHash, s.stamp(),
	)
	if err != nil {
		return fmt.Errorf("ensuring admin: %w", err)
	}
	return nil
}

func (s *SQLAdminStore) AdminByEmail(ctx context.Context, email string) (string, string, error) {
	var id, hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM admins WHERE email = ?`, email,
	).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	if err != nil {
		return "", "", err
	}
	return id, hash, nil
}

func (s *SQLAdminStore) CreateAdminSession(ctx context.Context, adminID string) (string, error) {
	sessionID := newID()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_sessions (id, admin_id, created_at) VALUES (?, ?, ?)`,
		sessionID, adminID, s.stamp(),
	)
	if err != nil {
		return "", fmt.Errorf("creating admin session: %w", err)
	}
	return sessionID, nil
}

func (s *SQLAdminStore) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM admin_sessions WHERE id = ?`, sessionID,
	)
	return err
}

// AdminFromSession resolves a session cookie. Sessions older than a week
// are treated as absent.
func (s *SQLAdminStore) AdminFromSession(ctx context.Context, sessionID string) (adminSession, error) {
	var (
		as        adminSession
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.email, s.created_at
		FROM admin_sessions s
		JOIN admins a ON a.id = s.admin_id
		WHERE s.id = ?
	`, sessionID).Scan(&as.AdminID, &as.Email, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return adminSession{}, errNoAdminSession
	}
	if err != nil {
		return adminSession{}, err
	}

	created, err := time.Parse(timeLayout, createdAt)
	if err != nil || s.now().Sub(created) > adminSessionTTL {
		return adminSession{}, errNoAdminSession
	}
	return as, nil
}

func (s *SQLAdminStore) stamp() string {
	return s.now().UTC().Format(timeLayout)
}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
