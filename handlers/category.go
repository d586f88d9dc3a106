package handlers

import (
	"net/http"
	"strconv"

	"hisab/backend/models"
	"hisab/backend/services"

	"github.com/gorilla/mux"
)

const categoryNotFound = "Category not found"

// GetCategories handles GET /categories
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	filter := services.ListFilter{Type: models.TransactionType(r.URL.Query().Get("type"))}

	page, err := h.categories.List(r.Context(), getUserIDFromContext(r), filter, h.pageRequest(r), getLocale(r))
	if err != nil {
		writeError(w, r, err, categoryNotFound)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// GetCategorySelection handles GET /categories/selection
func (h *Handler) GetCategorySelection(w http.ResponseWriter, r *http.Request) {
	typ := models.TransactionType(r.URL.Query().Get("type"))

	options, err := h.categories.Selection(r.Context(), getUserIDFromContext(r), typ, getLocale(r))
	if err != nil {
		writeError(w, r, err, categoryNotFound)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Data: options})
}

// GetCategory handles GET /categories/{id}
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	c, err := h.categories.Get(r.Context(), getUserIDFromContext(r), id, getLocale(r))
	if err != nil {
		writeError(w, r, err, categoryNotFound)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Message: "Category retrieved successfully", Data: c})
}

// AddCategory handles POST /categories
func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	if !decodeBody(w, r, &in) {
		return
	}

	c, err := h.categories.Create(r.Context(), getUserIDFromContext(r), in, getLocale(r))
	if err != nil {
		writeError(w, r, err, categoryNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{Message: "Category created successfully", Data: c})
}

// UpdateCategory handles PUT /categories/{id}
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch models.CategoryPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	c, err := h.categories.Update(r.Context(), getUserIDFromContext(r), id, patch, getLocale(r))
	if err != nil {
		writeError(w, r, err, categoryNotFound)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Message: "Category updated successfully", Data: c})
}

// DeleteCategory handles DELETE /categories/{id}. ?cascade=true also removes
// the category's transactions.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	cascade, _ := strconv.ParseBool(r.URL.Query().Get("cascade"))

	if err := h.categories.Delete(r.Context(), getUserIDFromContext(r), id, cascade); err != nil {
		writeError(w, r, err, categoryNotFound)
		return
	}

	writeMessage(w, http.StatusOK, "Category deleted successfully")
}
