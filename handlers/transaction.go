package handlers

import (
	"net/http"

	"hisab/backend/models"
	"hisab/backend/services"

	"github.com/gorilla/mux"
)

const transactionNotFound = "Transaction not found"

// GetTransactions handles GET /transactions
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	filter := services.ListFilter{Type: models.TransactionType(r.URL.Query().Get("type"))}

	page, err := h.transactions.List(r.Context(), getUserIDFromContext(r), filter, h.pageRequest(r), getLocale(r))
	if err != nil {
		writeError(w, r, err, transactionNotFound)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// GetTransaction handles GET /transactions/{id}
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	t, err := h.transactions.Get(r.Context(), getUserIDFromContext(r), id, getLocale(r))
	if err != nil {
		writeError(w, r, err, transactionNotFound)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Message: "Transaction retrieved successfully", Data: t})
}

// AddTransaction handles POST /transactions
func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var in models.TransactionInput
	if !decodeBody(w, r, &in) {
		return
	}

	t, err := h.transactions.Create(r.Context(), getUserIDFromContext(r), in, getLocale(r))
	if err != nil {
		writeError(w, r, err, transactionNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{Message: "Transaction created successfully", Data: t})
}

// UpdateTransaction handles PUT /transactions/{id}
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch models.TransactionPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	t, err := h.transactions.Update(r.Context(), getUserIDFromContext(r), id, patch, getLocale(r))
	if err != nil {
		writeError(w, r, err, transactionNotFound)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Message: "Transaction updated successfully", Data: t})
}

// DeleteTransaction handles DELETE /transactions/{id}
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.transactions.Delete(r.Context(), getUserIDFromContext(r), id); err != nil {
		writeError(w, r, err, transactionNotFound)
		return
	}

	writeMessage(w, http.StatusOK, "Transaction deleted successfully")
}
