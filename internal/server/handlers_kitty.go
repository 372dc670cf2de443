package server

import (
	"net/http"

	"github.com/anmolv/kittysplit/internal/ledger"
	"github.com/anmolv/kittysplit/internal/middleware"
	"github.com/anmolv/kittysplit/internal/models"
)

type memberResponse struct {
	ID      string `json:"id"`
	Key     string `json:"key"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	IsOwner bool   `json:"is_owner"`
}

func toMemberResponse(m *models.Member) memberResponse {
	return memberResponse{
		ID: m.ID,
		Key: ledger.KeyOf(ledger.Member{
			SurrogateID: m.ID,
			UserID:      m.UserID,
			Email:       m.Email,
		}),
		Name:    m.Name,
		Email:   m.Email,
		IsOwner: m.IsOwner,
	}
}

type kittyResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Currency  string           `json:"currency"`
	CreatedAt int64            `json:"created_at"`
	Members   []memberResponse `json:"members,omitempty"`
}

func (s *Server) handleCreateKitty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Currency string `json:"currency"`
	}
	if err := decode(r, &req); err != nil {
		writeBadRequest(w)
		return
	}

	kitty, err := s.kitties.CreateKitty(r.Context(), middleware.GetUserID(r.Context()), req.Name, req.Currency)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, kittyResponse{
		ID: kitty.ID, Name: kitty.Name, Currency: kitty.Currency, CreatedAt: kitty.CreatedAt,
	})
}

func (s *Server) handleListKitties(w http.ResponseWriter, r *http.Request) {
	kitties, err := s.kitties.ListKitties(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]kittyResponse, 0, len(kitties))
	for _, k := range kitties {
		out = append(out, kittyResponse{ID: k.ID, Name: k.Name, Currency: k.Currency, CreatedAt: k.CreatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetKitty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kitty, members, err := s.kitties.GetKitty(ctx,
		middleware.GetUserID(ctx), middleware.GetEmail(ctx), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := kittyResponse{ID: kitty.ID, Name: kitty.Name, Currency: kitty.Currency, CreatedAt: kitty.CreatedAt}
	for _, m := range members {
		resp.Members = append(resp.Members, toMemberResponse(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := decode(r, &req); err != nil {
		writeBadRequest(w)
		return
	}

	ctx := r.Context()
	member, err := s.kitties.AddMember(ctx,
		middleware.GetUserID(ctx), middleware.GetEmail(ctx), r.PathValue("id"),
		req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemberResponse(member))
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := s.kitties.RemoveMember(ctx,
		middleware.GetUserID(ctx), middleware.GetEmail(ctx),
		r.PathValue("id"), r.PathValue("memberID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type expenseResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Amount       float64  `json:"amount"`
	PayerKey     string   `json:"payer_key"`
	Participants []string `json:"participants"`
	CreatedAt    int64    `json:"created_at"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:           e.ID,
		Title:        e.Title,
		Amount:       e.Amount,
		PayerKey:     e.PayerID,
		Participants: e.Participants,
		CreatedAt:    e.CreatedAt,
	}
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title        string   `json:"title"`
		Amount       float64  `json:"amount"`
		PayerKey     string   `json:"payer_key"`
		Participants []string `json:"participants"`
	}
	if err := decode(r, &req); err != nil {
		writeBadRequest(w)
		return
	}

	ctx := r.Context()
	expense, err := s.kitties.AddExpense(ctx,
		middleware.GetUserID(ctx), middleware.GetEmail(ctx), r.PathValue("id"),
		req.Title, req.Amount, req.PayerKey, req.Participants)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	expenses, err := s.kitties.ListExpenses(ctx,
		middleware.GetUserID(ctx), middleware.GetEmail(ctx), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := s.kitties.DeleteExpense(ctx,
		middleware.GetUserID(ctx), middleware.GetEmail(ctx),
		r.PathValue("id"), r.PathValue("expenseID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type entryResponse struct {
	Key  string  `json:"key"`
	Name string  `json:"name"`
	Paid float64 `json:"paid"`
	Owed float64 `json:"owed"`
	Net  float64 `json:"net"`
}

type settlementResponse struct {
	FromKey  string  `json:"from_key"`
	FromName string  `json:"from_name"`
	ToKey    string  `json:"to_key"`
	ToName   string  `json:"to_name"`
	Amount   float64 `json:"amount"`
	Settled  bool    `json:"settled"`
}

type balancesResponse struct {
	Currency    string               `json:"currency"`
	Entries     []entryResponse      `json:"entries"`
	Settlements []settlementResponse `json:"settlements"`
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sheet, err := s.kitties.Balances(ctx,
		middleware.GetUserID(ctx), middleware.GetEmail(ctx), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := balancesResponse{
		Currency:    sheet.Kitty.Currency,
		Entries:     make([]entryResponse, 0, len(sheet.Entries)),
		Settlements: make([]settlementResponse, 0, len(sheet.Settlements)),
	}
	userID := middleware.GetUserID(ctx)
	for _, e := range sheet.Entries {
		name := e.Name
		if e.Key == userID {
			name = "You"
		}
		resp.Entries = append(resp.Entries, entryResponse{
			Key:  e.Key,
			Name: name,
			Paid: ledger.Round2(e.Paid),
			Owed: ledger.Round2(e.Owed),
			Net:  ledger.Round2(e.Net),
		})
	}
	for _, p := range sheet.Settlements {
		resp.Settlements = append(resp.Settlements, settlementResponse{
			FromKey:  p.FromKey,
			FromName: p.FromName,
			ToKey:    p.ToKey,
			ToName:   p.ToName,
			Amount:   p.Amount,
			Settled:  p.Settled,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToggleSettlement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FromKey string  `json:"from_key"`
		ToKey   string  `json:"to_key"`
		Amount  float64 `json:"amount"`
	}
	if err := decode(r, &req); err != nil {
		writeBadRequest(w)
		return
	}

	ctx := r.Context()
	settlement, err := s.kitties.ToggleSettlement(ctx,
		middleware.GetUserID(ctx), middleware.GetEmail(ctx), r.PathValue("id"),
		req.FromKey, req.ToKey, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settlementResponse{
		FromKey:  settlement.FromKey,
		FromName: settlement.FromName,
		ToKey:    settlement.ToKey,
		ToName:   settlement.ToName,
		Amount:   settlement.Amount,
		Settled:  settlement.Settled,
	})
}
