package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/splitq/splitq/internal/ledger"
	"github.com/splitq/splitq/internal/middleware"
	"github.com/splitq/splitq/internal/models"
	"github.com/splitq/splitq/internal/service"
)

// handleCategories serves the static expense category registry. Clients use
// it to render pickers; the server never rejects unknown categories.
func (s *APIServer) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Categories)
}

func (s *APIServer) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var in service.CreateExpenseInput
	if !decodeBody(w, r, &in) {
		return
	}

	expense, err := s.services.Expenses.CreateExpense(r.Context(), middleware.GetUserID(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (s *APIServer) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	err := s.services.Expenses.DeleteExpense(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *APIServer) handleCreateSettlement(w http.ResponseWriter, r *http.Request) {
	var in service.CreateSettlementInput
	if !decodeBody(w, r, &in) {
		return
	}

	settlement, err := s.services.Settlements.CreateSettlement(r.Context(), middleware.GetUserID(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, settlement)
}

func (s *APIServer) handleDeleteSettlement(w http.ResponseWriter, r *http.Request) {
	err := s.services.Settlements.DeleteSettlement(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *APIServer) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var in service.CreateGroupInput
	if !decodeBody(w, r, &in) {
		return
	}

	group, err := s.services.Groups.CreateGroup(r.Context(), middleware.GetUserID(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (s *APIServer) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.services.Groups.ListGroups(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *APIServer) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	info, err := s.services.Groups.GetGroup(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *APIServer) handleGroupBalances(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Balances.GetGroupView(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handlePairBalance serves the balance against one counterparty. An optional
// groupId query parameter narrows the scope to that group's records.
func (s *APIServer) handlePairBalance(w http.ResponseWriter, r *http.Request) {
	scope := ledger.PersonalScope()
	if groupID := r.URL.Query().Get("groupId"); groupID != "" {
		scope = ledger.GroupScope(groupID)
	}

	view, err := s.services.Balances.GetPairBalance(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["userId"], scope)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *APIServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Balances.GetDashboard(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *APIServer) handleContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.services.Contacts.GetContacts(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (s *APIServer) handleSpending(w http.ResponseWriter, r *http.Request) {
	summary, err := s.services.Spending.CurrentYear(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
