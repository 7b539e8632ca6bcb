package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"tableside/order-svc/internal/domain"
	"tableside/order-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Menu   service.MenuServiceInterface
	Cart   service.CartServiceInterface
	Orders service.OrderServiceInterface
}

func NewHandler(menu service.MenuServiceInterface, cart service.CartServiceInterface, orders service.OrderServiceInterface) *Handler {
	return &Handler{Menu: menu, Cart: cart, Orders: orders}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu/categories", h.listCategories).Methods("GET")
	r.HandleFunc("/api/menu/products", h.listProducts).Methods("GET")

	r.HandleFunc("/api/party-cart", h.loadCart).Methods("GET")
	r.HandleFunc("/api/party-cart/add", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/party-cart/decrease", h.decreaseCartItem).Methods("POST")

	r.HandleFunc("/api/orders/generate", h.generateOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.listPartyOrders).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Menu.Categories()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	categoryID, _ := strconv.Atoi(r.URL.Query().Get("category_id"))

	products, err := h.Menu.Products(categoryID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

func (h *Handler) loadCart(w http.ResponseWriter, r *http.Request) {
	partyID, err := strconv.Atoi(r.URL.Query().Get("party_id"))
	if err != nil || partyID <= 0 {
		http.Error(w, "party_id is required", http.StatusBadRequest)
		return
	}

	items, err := h.Cart.Load(r.Context(), partyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

type cartMutation struct {
	PartyID   int `json:"party_id"`
	ProductID int `json:"product_id"`
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var payload cartMutation
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.PartyID <= 0 || payload.ProductID <= 0 {
		http.Error(w, "party_id and product_id are required", http.StatusBadRequest)
		return
	}

	if err := h.Cart.Add(r.Context(), payload.PartyID, payload.ProductID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) decreaseCartItem(w http.ResponseWriter, r *http.Request) {
	var payload cartMutation
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.PartyID <= 0 || payload.ProductID <= 0 {
		http.Error(w, "party_id and product_id are required", http.StatusBadRequest)
		return
	}

	if err := h.Cart.Decrease(r.Context(), payload.PartyID, payload.ProductID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) generateOrder(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PartyID      int    `json:"party_id"`
		SessionToken string `json:"session_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.PartyID <= 0 {
		http.Error(w, "party_id is required", http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Generate(r.Context(), payload.PartyID, payload.SessionToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrMissingSession):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrSessionInvalid):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

func (h *Handler) listPartyOrders(w http.ResponseWriter, r *http.Request) {
	partyID, err := strconv.Atoi(r.URL.Query().Get("party_id"))
	if err != nil || partyID <= 0 {
		http.Error(w, "party_id is required", http.StatusBadRequest)
		return
	}

	orders, err := h.Orders.ListPartyOrders(partyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}
