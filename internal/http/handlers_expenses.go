package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tripsplit/internal/core"
)

type expenseRequest struct {
	Label            string             `json:"label"`
	Amount           float64            `json:"amount"`
	Currency         string             `json:"currency"`
	PaidBy           string             `json:"paid_by"`
	SplitType        string             `json:"split_type"`
	ExactShares      map[string]float64 `json:"exact_shares,omitempty"`
	PercentageShares map[string]float64 `json:"percentage_shares,omitempty"`
	Participants     []string           `json:"participants"`
	Category         string             `json:"category,omitempty"`
	Notes            string             `json:"notes,omitempty"`
}

type expenseResponse struct {
	ID               string             `json:"id"`
	Label            string             `json:"label"`
	Amount           float64            `json:"amount"`
	Currency         string             `json:"currency"`
	PaidBy           string             `json:"paid_by"`
	SplitType        string             `json:"split_type"`
	ExactShares      map[string]float64 `json:"exact_shares,omitempty"`
	PercentageShares map[string]float64 `json:"percentage_shares,omitempty"`
	Participants     []string           `json:"participants"`
	Category         string             `json:"category,omitempty"`
	Notes            string             `json:"notes,omitempty"`
}

type snapshotResponse struct {
	Total    moneyResponse      `json:"total"`
	PerHead  moneyResponse      `json:"per_head_average"`
	Balances map[string]float64 `json:"balances"`
}

type moneyResponse struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// toDraft maps the wire shape onto a core draft. Exact shares arrive as
// plain numbers and are denominated in the expense's own currency.
func (req expenseRequest) toDraft() (core.ExpenseDraft, error) {
	draft := core.ExpenseDraft{
		Label:        req.Label,
		Amount:       core.Money{Amount: req.Amount, Currency: req.Currency},
		PaidBy:       req.PaidBy,
		Participants: req.Participants,
		Category:     req.Category,
		Notes:        req.Notes,
	}

	switch core.SplitType(req.SplitType) {
	case core.SplitEqual, "":
		draft.Strategy = core.EqualSplit{}
	case core.SplitExact:
		shares := make(map[string]core.Money, len(req.ExactShares))
		for id, amount := range req.ExactShares {
			shares[id] = core.Money{Amount: amount, Currency: req.Currency}
		}
		draft.Strategy = core.ExactSplit{Shares: shares}
	case core.SplitPercentage:
		draft.Strategy = core.PercentageSplit{Shares: req.PercentageShares}
	default:
		return core.ExpenseDraft{}, fmt.Errorf("unknown split type %q", req.SplitType)
	}

	return draft, nil
}

func toExpenseResponse(e core.Expense) expenseResponse {
	resp := expenseResponse{
		ID:           e.ID,
		Label:        e.Label,
		Amount:       e.Amount.Amount,
		Currency:     e.Amount.Currency,
		PaidBy:       e.PaidBy,
		SplitType:    string(e.Strategy.Type()),
		Participants: e.Participants,
		Category:     e.Category,
		Notes:        e.Notes,
	}
	switch s := e.Strategy.(type) {
	case core.ExactSplit:
		resp.ExactShares = make(map[string]float64, len(s.Shares))
		for id, m := range s.Shares {
			resp.ExactShares[id] = m.Amount
		}
	case core.PercentageSplit:
		resp.PercentageShares = s.Shares
	}
	return resp
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	draft, err := req.toDraft()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	id, err := s.svc.AddExpense(r.Context(), chi.URLParam(r, "tripID"), draft)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.svc.ListExpenses(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRemoveExpense(w http.ResponseWriter, r *http.Request) {
	err := s.svc.RemoveExpense(r.Context(), chi.URLParam(r, "tripID"), chi.URLParam(r, "expenseID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	currency := r.URL.Query().Get("currency")
	if currency == "" {
		currency = s.defaultCurrency
	}

	snap, err := s.svc.Snapshot(r.Context(), chi.URLParam(r, "tripID"), currency)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotResponse{
		Total:    moneyResponse{Amount: snap.Total.Amount, Currency: snap.Total.Currency},
		PerHead:  moneyResponse{Amount: snap.PerHead.Amount, Currency: snap.PerHead.Currency},
		Balances: snap.Balances,
	})
}
