package storage

import (
	"database/sql"
	"fmt"
	"time"

	"tableside/order-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			category_id INT REFERENCES categories(id),
			name TEXT NOT NULL,
			price NUMERIC(10,2) NOT NULL,
			image_url TEXT,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			times_ordered INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS party_cart_items (
			party_id INT NOT NULL,
			product_id INT NOT NULL REFERENCES products(id),
			quantity INT NOT NULL CHECK (quantity >= 1),
			PRIMARY KEY (party_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			party_id INT NOT NULL,
			waiter_id INT,
			status TEXT NOT NULL DEFAULT 'generated',
			total NUMERIC(10,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id),
			product_id INT NOT NULL,
			name TEXT NOT NULL,
			quantity INT NOT NULL,
			price NUMERIC(10,2) NOT NULL,
			status TEXT NOT NULL DEFAULT 'to_prepare',
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

func (r *PostgresRepository) ListCategories() ([]domain.Category, error) {
	rows, err := r.DB.Query("SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			continue
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *PostgresRepository) ListProducts(categoryID int) ([]domain.Product, error) {
	query := `
		SELECT id, COALESCE(category_id, 0), name, price, COALESCE(image_url, ''), is_available
		FROM products
		WHERE is_available`
	args := []interface{}{}
	if categoryID > 0 {
		query += " AND category_id = $1"
		args = append(args, categoryID)
	}
	query += " ORDER BY name"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Price, &p.ImageURL, &p.IsAvailable); err != nil {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// LoadCart reads the full cart for a party, denormalizing product fields.
// The join is LEFT so a deleted product cannot sink the whole load; such
// orphan lines are skipped rather than mapped with empty fields.
func (r *PostgresRepository) LoadCart(partyID int) ([]domain.CartItem, error) {
	rows, err := r.DB.Query(`
		SELECT ci.product_id, ci.quantity, p.name, p.price, COALESCE(p.image_url, '')
		FROM party_cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.party_id = $1
		ORDER BY ci.product_id`, partyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		var name sql.NullString
		var price sql.NullFloat64
		var imageURL string
		if err := rows.Scan(&item.ProductID, &item.Quantity, &name, &price, &imageURL); err != nil {
			continue
		}
		if !name.Valid {
			continue
		}
		item.Name = name.String
		item.Price = price.Float64
		item.ImageURL = imageURL
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) AddCartItem(partyID, productID int) error {
	_, err := r.DB.Exec(`
		INSERT INTO party_cart_items (party_id, product_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (party_id, product_id)
		DO UPDATE SET quantity = party_cart_items.quantity + 1`,
		partyID, productID)
	return err
}

// DecreaseCartItem drops the quantity by one; the row disappears once it
// would reach zero. Quantity never goes below one in storage.
func (r *PostgresRepository) DecreaseCartItem(partyID, productID int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		"DELETE FROM party_cart_items WHERE party_id = $1 AND product_id = $2 AND quantity <= 1",
		partyID, productID)
	if err != nil {
		return err
	}

	deleted, _ := result.RowsAffected()
	if deleted == 0 {
		if _, err := tx.Exec(
			"UPDATE party_cart_items SET quantity = quantity - 1 WHERE party_id = $1 AND product_id = $2 AND quantity > 1",
			partyID, productID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GenerateOrder converts the party's cart into a committed order in one
// transaction: snapshot the lines, write the order, clear the cart. Either
// all of it happens or none of it does.
func (r *PostgresRepository) GenerateOrder(partyID int) (*domain.Order, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT ci.product_id, ci.quantity, p.name, p.price
		FROM party_cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.party_id = $1
		ORDER BY ci.product_id`, partyID)
	if err != nil {
		return nil, err
	}

	var items []domain.OrderItem
	var total float64
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Name, &item.Price); err != nil {
			rows.Close()
			return nil, err
		}
		item.Status = domain.ItemStatusToPrepare
		total += item.Price * float64(item.Quantity)
		items = append(items, item)
	}
	rows.Close()

	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	order := &domain.Order{
		PartyID: partyID,
		Status:  domain.OrderStatusGenerated,
		Total:   total,
	}
	if err := tx.QueryRow(`
		INSERT INTO orders (party_id, status, total)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		partyID, order.Status, order.Total).Scan(&order.ID, &order.CreatedAt); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = order.ID
		if err := tx.QueryRow(`
			INSERT INTO order_items (order_id, product_id, name, quantity, price, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			order.ID, items[i].ProductID, items[i].Name, items[i].Quantity, items[i].Price, items[i].Status).
			Scan(&items[i].ID); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec("DELETE FROM party_cart_items WHERE party_id = $1", partyID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.Items = items
	return order, nil
}

// ValidateSessionForParty checks that the session token belongs to the
// party's table and has not expired. Order generation is a privileged
// operation; an anonymous caller proves table presence with this token.
func (r *PostgresRepository) ValidateSessionForParty(partyID int, sessionToken string, now time.Time) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`
		SELECT EXISTS(
			SELECT 1
			FROM table_sessions ts
			JOIN table_parties tp ON tp.table_id = ts.table_id
			WHERE tp.id = $1 AND ts.session_token = $2 AND ts.expires_at > $3
		)`, partyID, sessionToken, now).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) TableNumberForParty(partyID int) (int, error) {
	var tableNumber int
	err := r.DB.QueryRow(`
		SELECT t.table_number
		FROM table_parties tp
		JOIN tables t ON t.id = tp.table_id
		WHERE tp.id = $1`, partyID).Scan(&tableNumber)
	return tableNumber, err
}

func (r *PostgresRepository) ListPartyOrders(partyID int) ([]domain.Order, error) {
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
