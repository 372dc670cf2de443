package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anmolv/kittysplit/internal/ledger"
	"github.com/anmolv/kittysplit/internal/models"
	"github.com/anmolv/kittysplit/internal/storage"
)

var (
	// ErrNotMember is returned when the requester does not belong to the kitty.
	ErrNotMember = errors.New("you must be a member of this kitty")
	// ErrOwnerRemoval is returned when a caller tries to remove the kitty owner.
	ErrOwnerRemoval = errors.New("the kitty owner cannot be removed")
	// ErrInvalidExpense is returned for expenses that fail validation.
	ErrInvalidExpense = errors.New("invalid expense")
	// ErrInvalidMember is returned for members that fail validation.
	ErrInvalidMember = errors.New("invalid member")
	// ErrInvalidKitty is returned for kitties that fail validation.
	ErrInvalidKitty = errors.New("invalid kitty")
	// ErrUnknownTransaction is returned when a toggle references a
	// transaction absent from the current plan and from history.
	ErrUnknownTransaction = errors.New("no such proposed transaction")
)

// BalanceSheet is the full derived state of a kitty: per-member totals, the
// proposed settlement plan, and each proposed transaction's persisted
// status. It is recomputed from scratch on every read; nothing in it is
// stored.
type BalanceSheet struct {
	Kitty       *models.Kitty
	Members     []*models.Member
	Entries     []ledger.Entry
	Settlements []ledger.PlannedSettlement
}

// KittyService implements kitty, member, expense and settlement operations
// on top of a storage backend. All balance and plan computation is
// delegated to the ledger package.
type KittyService struct {
	store storage.Store
}

// NewKittyService creates a new KittyService with the given storage backend.
func NewKittyService(store storage.Store) *KittyService {
	return &KittyService{store: store}
}

// CreateKitty creates a kitty owned by the given user, who becomes its
// first member.
func (s *KittyService) CreateKitty(ctx context.Context, userID, name, currency string) (*models.Kitty, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidKitty)
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrNotMember
	}
	if currency == "" {
		currency = "€"
	}

	kitty := &models.Kitty{Name: name, Currency: currency}
	owner := &models.Member{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.DisplayName,
	}
	if err := s.store.CreateKitty(ctx, kitty, owner); err != nil {
		return nil, err
	}
	slog.Info("Kitty created", "kitty_id", kitty.ID, "owner", user.ID)
	return kitty, nil
}

// ListKitties returns the kitties the user belongs to.
func (s *KittyService) ListKitties(ctx context.Context, userID string) ([]*models.Kitty, error) {
	return s.store.ListKittiesForUser(ctx, userID)
}

// GetKitty returns a kitty the requester is a member of.
func (s *KittyService) GetKitty(ctx context.Context, userID, email, kittyID string) (*models.Kitty, []*models.Member, error) {
	kitty, err := s.store.GetKitty(ctx, kittyID)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.store.ListMembers(ctx, kittyID)
	if err != nil {
		return nil, nil, err
	}
	if !isMember(members, userID, email) {
		return nil, nil, ErrNotMember
	}
	return kitty, members, nil
}

// AddMember adds a person to a kitty. The member may be linked to a
// registered account by email, or be an email-only (or name-only) invitee;
// either way a surrogate ID is persisted at creation so their identity key
// is stable across runs.
func (s *KittyService) AddMember(ctx context.Context, userID, email, kittyID, name, memberEmail string) (*models.Member, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidMember)
	}
	members, err := s.store.ListMembers(ctx, kittyID)
	if err != nil {
		return nil, err
	}
	if !isMember(members, userID, email) {
		return nil, ErrNotMember
	}

	member := &models.Member{
		KittyID: kittyID,
		Email:   memberEmail,
		Name:    name,
	}
	if memberEmail != "" {
		// Link to a registered account if one exists for this email.
		if user, err := s.store.GetUserByEmail(ctx, memberEmail); err == nil && user != nil {
			member.UserID = user.ID
		}
		for _, m := range members {
			if ledger.KeyOf(memberView(m)) == ledger.KeyOf(memberView(member)) {
				return nil, fmt.Errorf("%w: %s is already in this kitty", ErrInvalidMember, memberEmail)
			}
		}
	}

	if err := s.store.AddMember(ctx, member); err != nil {
		return nil, err
	}
	slog.Info("Member added", "kitty_id", kittyID, "member_id", member.ID)
	return member, nil
}

// RemoveMember removes a member from a kitty. The owner is protected.
// Expenses referencing the removed member are kept; the balance engine
// drops their paid-contribution and absorbs their shares.
func (s *KittyService) RemoveMember(ctx context.Context, userID, email, kittyID, memberID string) error {
	members, err := s.store.ListMembers(ctx, kittyID)
	if err != nil {
		return err
	}
	if !isMember(members, userID, email) {
		return ErrNotMember
	}
	for _, m := range members {
		if m.ID == memberID && m.IsOwner {
			return ErrOwnerRemoval
		}
	}
	return s.store.RemoveMember(ctx, kittyID, memberID)
}

// AddExpense validates and persists an expense. Amounts must be positive
// and the participant set non-empty; participants are deduplicated and
// checked against the current member list. The payer need not be a
// participant.
func (s *KittyService) AddExpense(ctx context.Context, userID, email, kittyID, title string, amount float64, payerKey string, participants []string) (*models.Expense, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: at least one participant required", ErrInvalidExpense)
	}

	members, err := s.store.ListMembers(ctx, kittyID)
	if err != nil {
		return nil, err
	}
	if !isMember(members, userID, email) {
		return nil, ErrNotMember
	}

	keys := make(map[string]bool, len(members))
	for _, m := range members {
		keys[ledger.KeyOf(memberView(m))] = true
	}
	if !keys[payerKey] {
		return nil, fmt.Errorf("%w: payer %q is not a member", ErrInvalidExpense, payerKey)
	}

	seen := make(map[string]bool, len(participants))
	deduped := make([]string, 0, len(participants))
	for _, p := range participants {
		if seen[p] {
			continue
		}
		if !keys[p] {
			return nil, fmt.Errorf("%w: participant %q is not a member", ErrInvalidExpense, p)
		}
		seen[p] = true
		deduped = append(deduped, p)
	}

	expense := &models.Expense{
		KittyID:      kittyID,
		Title:        title,
		Amount:       amount,
		PayerID:      payerKey,
		Participants: deduped,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	slog.Info("Expense added", "kitty_id", kittyID, "expense_id", expense.ID, "amount", amount)
	return expense, nil
}

// ListExpenses returns a kitty's expenses for a member, oldest first.
func (s *KittyService) ListExpenses(ctx context.Context, userID, email, kittyID string) ([]*models.Expense, error) {
	members, err := s.store.ListMembers(ctx, kittyID)
	if err != nil {
		return nil, err
	}
	if !isMember(members, userID, email) {
		return nil, ErrNotMember
	}
	return s.store.ListExpenses(ctx, kittyID)
}

// DeleteExpense removes an expense from a kitty.
func (s *KittyService) DeleteExpense(ctx context.Context, userID, email, kittyID, expenseID string) error {
	members, err := s.store.ListMembers(ctx, kittyID)
	if err != nil {
		return err
	}
	if !isMember(members, userID, email) {
		return ErrNotMember
	}
	return s.store.DeleteExpense(ctx, kittyID, expenseID)
}

// Balances reads one immutable snapshot of members, expenses and settlement
// records and derives the kitty's full balance sheet: ledger entries, the
// proposed settlement plan, and each transaction's settled status.
func (s *KittyService) Balances(ctx context.Context, userID, email, kittyID string) (*BalanceSheet, error) {
	kitty, members, err := s.GetKitty(ctx, userID, email, kittyID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, kittyID)
	if err != nil {
		return nil, err
	}
	records, err := s.store.ListSettlements(ctx, kittyID)
	if err != nil {
		return nil, err
	}

	entries := ledger.ComputeBalances(memberViews(members), expenseViews(expenses))
	plan := ledger.PlanSettlements(entries)
	matched := ledger.MatchSettlements(plan, recordViews(records))

	return &BalanceSheet{
		Kitty:       kitty,
		Members:     members,
		Entries:     entries,
		Settlements: matched,
	}, nil
}

// ToggleSettlement flips the settled status of a proposed transaction,
// identified by its (from, to, amount) triple.
//
// If a settlement record for the triple exists its flag is flipped in
// place; otherwise the transaction must appear in the current plan and a
// new record is appended with settled=true. Records are never deleted. The
// whole settlement array is rewritten through the store in one write; on
// failure nothing has been mutated and the error is returned to the caller.
func (s *KittyService) ToggleSettlement(ctx context.Context, userID, email, kittyID, fromKey, toKey string, amount float64) (*models.Settlement, error) {
	members, err := s.store.ListMembers(ctx, kittyID)
	if err != nil {
		return nil, err
	}
	if !isMember(members, userID, email) {
		return nil, ErrNotMember
	}

	records, err := s.store.ListSettlements(ctx, kittyID)
	if err != nil {
		return nil, err
	}

	amount = ledger.Round2(amount)
	var toggled *models.Settlement
	for _, rec := range records {
		if rec.FromKey == fromKey && rec.ToKey == toKey && ledger.Round2(rec.Amount) == amount {
			rec.Settled = !rec.Settled
			toggled = rec
			break
		}
	}

	if toggled == nil {
		// First toggle for this triple: it must be part of the current plan.
		expenses, err := s.store.ListExpenses(ctx, kittyID)
		if err != nil {
			return nil, err
		}
		entries := ledger.ComputeBalances(memberViews(members), expenseViews(expenses))
		txn, found := findTransaction(ledger.PlanSettlements(entries), fromKey, toKey, amount)
		if !found {
			return nil, ErrUnknownTransaction
		}
		toggled = &models.Settlement{
			KittyID:  kittyID,
			FromKey:  txn.FromKey,
			FromName: txn.FromName,
			ToKey:    txn.ToKey,
			ToName:   txn.ToName,
			Amount:   txn.Amount,
			Settled:  true,
		}
		records = append(records, toggled)
	}

	if err := s.store.ReplaceSettlements(ctx, kittyID, records); err != nil {
		return nil, fmt.Errorf("failed to persist settlement toggle: %w", err)
	}
	slog.Info("Settlement toggled",
		"kitty_id", kittyID, "from", fromKey, "to", toKey,
		"amount", amount, "settled", toggled.Settled)
	return toggled, nil
}

func findTransaction(plan []ledger.Transaction, fromKey, toKey string, amount float64) (ledger.Transaction, bool) {
	for _, txn := range plan {
		if txn.FromKey == fromKey && txn.ToKey == toKey && txn.Amount == amount {
			return txn, true
		}
	}
	return ledger.Transaction{}, false
}

// isMember reports whether the requester matches any member's identity key.
func isMember(members []*models.Member, userID, email string) bool {
	for _, m := range members {
		if userID != "" && m.UserID == userID {
			return true
		}
		if email != "" && m.UserID == "" && m.Email == email {
			return true
		}
	}
	return false
}

func memberView(m *models.Member) ledger.Member {
	return ledger.Member{
		SurrogateID: m.ID,
		UserID:      m.UserID,
		Email:       m.Email,
		Name:        m.Name,
	}
}

func memberViews(members []*models.Member) []ledger.Member {
	views := make([]ledger.Member, len(members))
	for i, m := range members {
		views[i] = memberView(m)
	}
	return views
}

func expenseViews(expenses []*models.Expense) []ledger.Expense {
	views := make([]ledger.Expense, len(expenses))
	for i, e := range expenses {
		views[i] = ledger.Expense{
			Amount:       e.Amount,
			PayerKey:     e.PayerID,
			Participants: e.Participants,
		}
	}
	return views
}

func recordViews(records []*models.Settlement) []ledger.Record {
	views := make([]ledger.Record, len(records))
	for i, r := range records {
		views[i] = ledger.Record{
			ID:      r.ID,
			FromKey: r.FromKey,
			ToKey:   r.ToKey,
			Amount:  r.Amount,
			Settled: r.Settled,
		}
	}
	return views
}
