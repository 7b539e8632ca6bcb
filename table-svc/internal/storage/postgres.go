package storage

import (
	"database/sql"
	"fmt"
	"time"

	"tableside/table-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tables (
			id SERIAL PRIMARY KEY,
			table_number INT NOT NULL UNIQUE,
			seats INT NOT NULL DEFAULT 4,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			qr_token TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS table_sessions (
			id SERIAL PRIMARY KEY,
			table_id INT NOT NULL REFERENCES tables(id),
			session_token TEXT NOT NULL UNIQUE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS table_parties (
			id SERIAL PRIMARY KEY,
			table_id INT NOT NULL REFERENCES tables(id),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			waiter_id INT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			closed_at TIMESTAMPTZ
		)`,
		// one active party per table, enforced here rather than in clients
		`CREATE UNIQUE INDEX IF NOT EXISTS one_active_party_per_table
			ON table_parties (table_id) WHERE is_active`,
	}

	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) CreateTable(t *domain.Table) error {
	return r.DB.QueryRow(
		"INSERT INTO tables (table_number, seats, is_active, qr_token) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		t.TableNumber, t.Seats, t.IsActive, t.QRToken,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *PostgresRepository) ListTables() ([]domain.TableOverview, error) {
	rows, err := r.DB.Query(`
		SELECT t.id, t.table_number, t.seats, t.is_active, t.qr_token, t.created_at,
		       tp.id, u.waiter_code
		FROM tables t
		LEFT JOIN table_parties tp ON tp.table_id = t.id AND tp.is_active
		LEFT JOIN users u ON u.id = tp.waiter_id
		ORDER BY t.table_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []domain.TableOverview
	for rows.Next() {
		var tv domain.TableOverview
		var partyID sql.NullInt64
		var waiterCode sql.NullString
		if err := rows.Scan(&tv.ID, &tv.TableNumber, &tv.Seats, &tv.IsActive, &tv.QRToken, &tv.CreatedAt,
			&partyID, &waiterCode); err != nil {
			continue
		}
		if partyID.Valid {
			id := int(partyID.Int64)
			tv.PartyID = &id
		}
		if waiterCode.Valid {
			code := waiterCode.String
			tv.WaiterCode = &code
		}
		tables = append(tables, tv)
	}
	return tables, nil
}

func (r *PostgresRepository) GetTable(id int) (*domain.Table, error) {
	var t domain.Table
	err := r.DB.QueryRow(
		"SELECT id, table_number, seats, is_active, qr_token, created_at FROM tables WHERE id = $1", id).
		Scan(&t.ID, &t.TableNumber, &t.Seats, &t.IsActive, &t.QRToken, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) GetTableByQRToken(token string) (*domain.Table, error) {
	var t domain.Table
	err := r.DB.QueryRow(
		"SELECT id, table_number, seats, is_active, qr_token, created_at FROM tables WHERE qr_token = $1 AND is_active", token).
		Scan(&t.ID, &t.TableNumber, &t.Seats, &t.IsActive, &t.QRToken, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) CreateSession(tableID int, token string, expiresAt time.Time) (*domain.TableSession, error) {
	sess := domain.TableSession{TableID: tableID, SessionToken: token, ExpiresAt: expiresAt}
	err := r.DB.QueryRow(
		"INSERT INTO table_sessions (table_id, session_token, expires_at) VALUES ($1, $2, $3) RETURNING id, created_at",
		tableID, token, expiresAt,
	).Scan(&sess.ID, &sess.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// GetSessionTable resolves a stored session token to its table, joining
// through table_sessions. Expired sessions resolve to nothing.
func (r *PostgresRepository) GetSessionTable(token string, now time.Time) (*domain.Table, error) {
	var t domain.Table
	err := r.DB.QueryRow(`
		SELECT t.id, t.table_number, t.seats, t.is_active, t.qr_token, t.created_at
		FROM table_sessions ts
		JOIN tables t ON t.id = ts.table_id
		WHERE ts.session_token = $1 AND ts.expires_at > $2`, token, now).
		Scan(&t.ID, &t.TableNumber, &t.Seats, &t.IsActive, &t.QRToken, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) ValidateSession(token string, tableID int, now time.Time) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM table_sessions
			WHERE session_token = $1 AND table_id = $2 AND expires_at > $3
		)`, token, tableID, now).Scan(&exists)
	return exists, err
}

// GetOrCreateActiveParty finds the active party for a table or creates one.
// The insert races through the partial unique index, so two devices resolving
// the same table concurrently still end up with the same party id.
func (r *PostgresRepository) GetOrCreateActiveParty(tableID int) (int, error) {
	var id int
	err := r.DB.QueryRow(
		"SELECT id FROM table_parties WHERE table_id = $1 AND is_active", tableID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	if _, err := r.DB.Exec(
		"INSERT INTO table_parties (table_id) VALUES ($1) ON CONFLICT (table_id) WHERE is_active DO NOTHING", tableID); err != nil {
		return 0, err
	}

	err = r.DB.QueryRow(
		"SELECT id FROM table_parties WHERE table_id = $1 AND is_active", tableID).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresRepository) EndExpiredSessions(now time.Time) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM table_sessions WHERE expires_at <= $1", now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
