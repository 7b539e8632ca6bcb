package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"tableside/staff-svc/internal/domain"
	"tableside/staff-svc/internal/service"

	"github.com/gorilla/mux"
)

// KitchenFeed is the long-poll side of the kitchen board; BoardEvents
// blocks on it until something changes or the poll times out.
type KitchenFeed interface {
	Subscribe(ctx context.Context, channel string) (<-chan struct{}, func())
}

type Handler struct {
	Accounts       service.AccountServiceInterface
	Waiters        service.WaiterServiceInterface
	Kitchen        service.KitchenServiceInterface
	Feed           KitchenFeed
	KitchenChannel string
}

func NewHandler(accounts service.AccountServiceInterface, waiters service.WaiterServiceInterface, kitchen service.KitchenServiceInterface, feed KitchenFeed, kitchenChannel string) *Handler {
	return &Handler{
		Accounts:       accounts,
		Waiters:        waiters,
		Kitchen:        kitchen,
		Feed:           feed,
		KitchenChannel: kitchenChannel,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/staff/login", h.login).Methods("POST")
	r.HandleFunc("/api/staff/logout", h.logout).Methods("POST")
	r.HandleFunc("/api/staff/me", h.currentUser).Methods("GET")
	r.HandleFunc("/api/staff/register", h.requireRole(domain.RoleAdmin, h.register)).Methods("POST")

	r.HandleFunc("/api/waiter/parties/unassigned", h.requireRole(domain.RoleWaiter, h.unassignedParties)).Methods("GET")
	r.HandleFunc("/api/waiter/parties", h.requireRole(domain.RoleWaiter, h.myParties)).Methods("GET")
	r.HandleFunc("/api/waiter/parties/{id}/claim", h.requireRole(domain.RoleWaiter, h.claimParty)).Methods("POST")
	r.HandleFunc("/api/waiter/parties/{id}/orders", h.requireRole(domain.RoleWaiter, h.partyOrders)).Methods("GET")
	r.HandleFunc("/api/waiter/parties/{id}/finalize", h.requireRole(domain.RoleWaiter, h.finalizeParty)).Methods("POST")

	r.HandleFunc("/api/kitchen/board", h.requireRole(domain.RoleChef, h.kitchenBoard)).Methods("GET")
	r.HandleFunc("/api/kitchen/events", h.requireRole(domain.RoleChef, h.boardEvents)).Methods("GET")
	r.HandleFunc("/api/kitchen/items/{id}/advance", h.requireRole(domain.RoleChef, h.advanceItem)).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "staff-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, user, err := h.Accounts.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Accounts.Logout(r.Context(), r.Header.Get("X-Auth-Token")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Accounts.CurrentUser(r.Context(), r.Header.Get("X-Auth-Token"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username   string `json:"username"`
		Password   string `json:"password"`
		Role       string `json:"role"`
		WaiterCode string `json:"waiter_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Accounts.Register(payload.Username, payload.Password, payload.Role, payload.WaiterCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrBadRole):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

func (h *Handler) unassignedParties(w http.ResponseWriter, r *http.Request) {
	parties, err := h.Waiters.UnassignedParties()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(parties)
}

func (h *Handler) myParties(w http.ResponseWriter, r *http.Request) {
	parties, err := h.Waiters.MyParties(userFrom(r).ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(parties)
}

func (h *Handler) claimParty(w http.ResponseWriter, r *http.Request) {
	partyID, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Waiters.Claim(r.Context(), partyID, userFrom(r).ID); err != nil {
		if errors.Is(err, service.ErrAlreadyClaimed) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "claimed"})
}

func (h *Handler) partyOrders(w http.ResponseWriter, r *http.Request) {
	partyID, _ := strconv.Atoi(mux.Vars(r)["id"])

	orders, err := h.Waiters.PartyOrders(partyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

func (h *Handler) finalizeParty(w http.ResponseWriter, r *http.Request) {
	partyID, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Waiters.Finalize(r.Context(), partyID, userFrom(r).ID); err != nil {
		if errors.Is(err, service.ErrNotAssigned) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "finalized"})
}

func (h *Handler) kitchenBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.Kitchen.Board()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(board)
}

// boardEvents long-polls for the next item change. The response says only
// that something changed; the screen re-fetches the board.
func (h *Handler) boardEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	signals, stop := h.Feed.Subscribe(ctx, h.KitchenChannel)
	defer stop()

	changed := false
	select {
	case _, ok := <-signals:
		changed = ok
	case <-ctx.Done():
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"changed": changed})
}

func (h *Handler) advanceItem(w http.ResponseWriter, r *http.Request) {
	itemID, _ := strconv.Atoi(mux.Vars(r)["id"])

	item, err := h.Kitchen.Advance(r.Context(), itemID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemFinished):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrItemMoved):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}
