package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"tableside/table-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Resolver service.ResolverServiceInterface
	Parties  service.PartyServiceInterface
	Tables   service.TableServiceInterface
}

func NewHandler(resolver service.ResolverServiceInterface, parties service.PartyServiceInterface, tables service.TableServiceInterface) *Handler {
	return &Handler{Resolver: resolver, Parties: parties, Tables: tables}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/session/resolve", h.resolveSession).Methods("POST")
	r.HandleFunc("/api/party/resolve", h.resolveParty).Methods("POST")

	r.HandleFunc("/api/tables", h.createTable).Methods("POST")
	r.HandleFunc("/api/tables", h.listTables).Methods("GET")
	r.HandleFunc("/api/tables/{id}/qrcode", h.tableQRCode).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "table-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) resolveSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionToken string `json:"session_token"`
		QRToken      string `json:"qr_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resolution, err := h.Resolver.Resolve(payload.SessionToken, payload.QRToken)
	if err != nil {
		// fail closed: the client must route to its invalid-table view
		http.Error(w, "Invalid table", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resolution)
}

func (h *Handler) resolveParty(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TableID      int    `json:"table_id"`
		SessionToken string `json:"session_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	partyID, err := h.Parties.GetOrCreateParty(payload.TableID, payload.SessionToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingSession):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrSessionExpired):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"party_id": partyID})
}

func (h *Handler) createTable(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TableNumber int  `json:"table_number"`
		Seats       int  `json:"seats"`
		IsActive    bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	table, err := h.Tables.Create(payload.TableNumber, payload.Seats, payload.IsActive)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTableNumber) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(table)
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Tables.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tables)
}

func (h *Handler) tableQRCode(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	png, err := h.Tables.QRCodePNG(id)
	if err != nil {
		http.Error(w, "Table not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
