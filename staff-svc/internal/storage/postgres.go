package storage

import (
	"database/sql"
	"fmt"

	"tableside/staff-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			waiter_code TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) CreateUser(user *domain.User) error {
	return r.DB.QueryRow(`
		INSERT INTO users (username, password_hash, role, waiter_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		user.Username, user.PasswordHash, user.Role, user.WaiterCode).
		Scan(&user.ID, &user.CreatedAt)
}

func (r *PostgresRepository) GetUserByUsername(username string) (*domain.User, error) {
	var user domain.User
	var waiterCode sql.NullString
	err := r.DB.QueryRow(`
		SELECT id, username, password_hash, role, COALESCE(waiter_code, ''), created_at
		FROM users
		WHERE username = $1`, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &waiterCode, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	user.WaiterCode = waiterCode.String
	return &user, nil
}

func (r *PostgresRepository) GetUser(id int) (*domain.User, error) {
	var user domain.User
	var waiterCode sql.NullString
	err := r.DB.QueryRow(`
		SELECT id, username, password_hash, role, COALESCE(waiter_code, ''), created_at
		FROM users
		WHERE id = $1`, id).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &waiterCode, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	user.WaiterCode = waiterCode.String
	return &user, nil
}

func (r *PostgresRepository) CountUsers() (int, error) {
	var count int
	err := r.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

func (r *PostgresRepository) ListUnassignedParties() ([]domain.ClaimableParty, error) {
	return r.listParties("tp.waiter_id IS NULL")
}

func (r *PostgresRepository) listParties(condition string, args ...interface{}) ([]domain.ClaimableParty, error) {
	rows, err := r.DB.Query(`
		SELECT tp.id, tp.table_id, t.table_number,
			COUNT(o.id), COALESCE(SUM(o.total), 0), tp.created_at
		FROM table_parties tp
		JOIN tables t ON t.id = tp.table_id
		LEFT JOIN orders o ON o.party_id = tp.id AND o.status <> 'finalized'
		WHERE tp.is_active AND `+condition+`
		GROUP BY tp.id, tp.table_id, t.table_number, tp.created_at
		ORDER BY tp.created_at`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parties := []domain.ClaimableParty{}
	for rows.Next() {
		var p domain.ClaimableParty
		if err := rows.Scan(&p.PartyID, &p.TableID, &p.TableNumber, &p.OrderCount, &p.Total, &p.CreatedAt); err != nil {
			continue
		}
		parties = append(parties, p)
	}
	return parties, nil
}

// ClaimParty assigns the party to a waiter if nobody beat them to it. The
// guard is the conditional update: two waiters racing on the same party
// produce exactly one winner.
func (r *PostgresRepository) ClaimParty(partyID, waiterID int) (bool, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE table_parties
		SET waiter_id = $1
		WHERE id = $2 AND is_active AND waiter_id IS NULL`,
		waiterID, partyID)
	if err != nil {
		return false, err
	}
	claimed, _ := result.RowsAffected()
	if claimed == 0 {
		return false, nil
	}

	if _, err := tx.Exec(`
		UPDATE orders
		SET waiter_id = $1
		WHERE party_id = $2 AND status <> $3`,
		waiterID, partyID, domain.OrderStatusFinalized); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func (r *PostgresRepository) ListWaiterParties(waiterID int) ([]domain.ClaimableParty, error) {
	return r.listParties("tp.waiter_id = $1", waiterID)
}

func (r *PostgresRepository) PartyOrders(partyID int) ([]domain.Order, error) {
	rows, err := r.DB.Query(`
		SELECT id, party_id, waiter_id, status, total, created_at
		FROM orders
		WHERE party_id = $1
		ORDER BY created_at`, partyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		var waiterID sql.NullInt64
		if err := rows.Scan(&order.ID, &order.PartyID, &waiterID, &order.Status, &order.Total, &order.CreatedAt); err != nil {
			continue
		}
		if waiterID.Valid {
			id := int(waiterID.Int64)
			order.WaiterID = &id
		}
		orders = append(orders, order)
	}

	for i := range orders {
		items, err := r.listOrderItems(orders[i].ID)
		if err != nil {
			continue
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *PostgresRepository) listOrderItems(orderID int) ([]domain.OrderItem, error) {
	rows, err := r.DB.Query(`
		SELECT id, order_id, product_id, name, quantity, price, status
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Quantity, &item.Price, &item.Status); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// FinalizeParty closes out a party: finalizes its orders, deactivates the
// party and kills the table's sessions so the next scan starts fresh. The
// waiter guard makes it fail for anyone the party is not assigned to.
func (r *PostgresRepository) FinalizeParty(partyID, waiterID int) (bool, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE table_parties
		SET is_active = FALSE, closed_at = now()
		WHERE id = $1 AND is_active AND waiter_id = $2`,
		partyID, waiterID)
	if err != nil {
		return false, err
	}
	closed, _ := result.RowsAffected()
	if closed == 0 {
		return false, nil
	}

	if _, err := tx.Exec(`
		UPDATE orders
		SET status = $1
		WHERE party_id = $2 AND status <> $1`,
		domain.OrderStatusFinalized, partyID); err != nil {
		return false, err
	}

	if _, err := tx.Exec(`
		UPDATE table_sessions
		SET expires_at = now()
		WHERE table_id = (SELECT table_id FROM table_parties WHERE id = $1)`,
		partyID); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func (r *PostgresRepository) ListKitchenItems() ([]domain.KitchenItem, error) {
	rows, err := r.DB.Query(`
		SELECT oi.id, oi.order_id, oi.product_id, oi.name, oi.quantity, oi.status, t.table_number, o.created_at
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN table_parties tp ON tp.id = o.party_id
		JOIN tables t ON t.id = tp.table_id
		WHERE o.status <> $1
		ORDER BY o.created_at, oi.id`,
		domain.OrderStatusFinalized)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.KitchenItem{}
	for rows.Next() {
		var item domain.KitchenItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Quantity, &item.Status, &item.TableNumber, &item.CreatedAt); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) GetKitchenItem(itemID int) (*domain.KitchenItem, error) {
	var item domain.KitchenItem
	err := r.DB.QueryRow(`
		SELECT oi.id, oi.order_id, oi.product_id, oi.name, oi.quantity, oi.status, t.table_number, o.created_at
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN table_parties tp ON tp.id = o.party_id
		JOIN tables t ON t.id = tp.table_id
		WHERE oi.id = $1`, itemID).
		Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Quantity, &item.Status, &item.TableNumber, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AdvanceItem moves an item to the next status only if it still holds the
// status the caller saw. A stale caller affects zero rows.
func (r *PostgresRepository) AdvanceItem(itemID int, from, to string) (bool, error) {
	result, err := r.DB.Exec(
		"UPDATE order_items SET status = $1 WHERE id = $2 AND status = $3",
		to, itemID, from)
	if err != nil {
		return false, err
	}
	moved, _ := result.RowsAffected()
	return moved > 0, nil
}

func (r *PostgresRepository) ListOrderItemStatuses(orderID int) ([]string, error) {
	rows, err := r.DB.Query(
		"SELECT status FROM order_items WHERE order_id = $1", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			continue
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// SetOrderStatus writes the derived order status, never touching an order a
// waiter already finalized.
func (r *PostgresRepository) SetOrderStatus(orderID int, status string) error {
	_, err := r.DB.Exec(
		"UPDATE orders SET status = $1 WHERE id = $2 AND status <> $3",
		status, orderID, domain.OrderStatusFinalized)
	return err
}

func (r *PostgresRepository) PartyForOrder(orderID int) (int, error) {
	var partyID int
	err := r.DB.QueryRow("SELECT party_id FROM orders WHERE id = $1", orderID).Scan(&partyID)
	return partyID, err
}
