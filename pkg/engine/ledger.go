package engine

import (
	"fmt"
	"sort"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/store"
)

// Ledger is the single owner of the users table. Every balance mutation goes
// through it, persists immediately, and is serialized per user.
type Ledger struct {
	store    *store.Store
	users    *keyedMutex
	recorder Recorder
}

// NewLedger builds the ledger over the given store.
func NewLedger(s *store.Store, rec Recorder) *Ledger {
	return &Ledger{
		store:    s,
		users:    newKeyedMutex(),
		recorder: rec,
	}
}

// LockUser serializes a multi-step paid operation (check balance, provision,
// debit) for one user. The registry holds this across an entire deploy so a
// double-submitted action cannot over-spend.
func (l *Ledger) LockUser(userID string) func() {
	return l.users.Lock(userID)
}

// Account returns the user's account, creating it lazily with zero balances.
// The lazily created account is not persisted until its first mutation.
func (l *Ledger) Account(userID string) models.UserAccount {
	if acc, ok := l.store.Users.Get(userID); ok {
		return acc
	}
	return models.UserAccount{UserID: userID}
}

// Balance returns the user's spendable points.
func (l *Ledger) Balance(userID string) int {
	return l.Account(userID).Points
}

// Credit adds amount to the user's balance.
func (l *Ledger) Credit(userID string, amount int, reason string) error {
	if amount < 0 {
		return fmt.Errorf("%w: cantidad negativa %d", ErrInvalidArgument, amount)
	}
	if amount == 0 {
		return nil
	}

	err := l.store.Users.Update(userID, func(acc models.UserAccount, exists bool) (models.UserAccount, error) {
		if !exists {
			acc = models.UserAccount{UserID: userID}
		}
		acc.Points += amount
		return acc, nil
	})
	if err != nil {
		return err
	}

	logger.Info(fmt.Sprintf("Crédito de %d puntos a %s (%s)", amount, userID, reason), "Ledger")
	record(l.recorder, "credit", userID, "", fmt.Sprintf("+%d puntos: %s", amount, reason))
	return nil
}

// Debit removes amount from the user's balance, failing with
// InsufficientFundsError if the balance does not cover it.
func (l *Ledger) Debit(userID string, amount int, reason string) error {
	if amount < 0 {
		return fmt.Errorf("%w: cantidad negativa %d", ErrInvalidArgument, amount)
	}
	if amount == 0 {
		return nil
	}

	err := l.store.Users.Update(userID, func(acc models.UserAccount, exists bool) (models.UserAccount, error) {
		if !exists {
			acc = models.UserAccount{UserID: userID}
		}
		if acc.Points < amount {
			return acc, &InsufficientFundsError{Need: amount, Have: acc.Points}
		}
		acc.Points -= amount
		return acc, nil
	})
	if err != nil {
		return err
	}

	logger.Info(fmt.Sprintf("Débito de %d puntos a %s (%s)", amount, userID, reason), "Ledger")
	record(l.recorder, "debit", userID, "", fmt.Sprintf("-%d puntos: %s", amount, reason))
	return nil
}

// Transfer moves amount from one user to another with all-or-nothing
// semantics: if the debit fails, the credit never runs.
func (l *Ledger) Transfer(fromID, toID string, amount int, reason string) error {
	if fromID == toID {
		return fmt.Errorf("%w: no puedes transferirte puntos a ti mismo", ErrInvalidArgument)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser positiva", ErrInvalidArgument)
	}

	unlock := l.users.LockPair(fromID, toID)
	defer unlock()

	if err := l.Debit(fromID, amount, reason); err != nil {
		return err
	}
	if err := l.Credit(toID, amount, reason); err != nil {
		// The debit already persisted; restore it so the transfer stays
		// all-or-nothing.
		if rollback := l.Credit(fromID, amount, "reverso de transferencia"); rollback != nil {
			logger.Critical(fmt.Sprintf("Transferencia %s->%s inconsistente: %v", fromID, toID, rollback), "Ledger")
		}
		return err
	}

	record(l.recorder, "transfer", fromID, "", fmt.Sprintf("%d puntos a %s: %s", amount, toID, reason))
	return nil
}

// ClaimPoints converts the user's entire unclaimed referral count into
// spendable points and zeroes the counter, atomically.
func (l *Ledger) ClaimPoints(userID string) (int, error) {
	unlock := l.users.Lock(userID)
	defer unlock()

	claimed := 0
	err := l.store.Users.Update(userID, func(acc models.UserAccount, exists bool) (models.UserAccount, error) {
		if !exists {
			acc = models.UserAccount{UserID: userID}
		}
		claimed = acc.UnclaimedReferrals
		acc.Points += claimed
		acc.UnclaimedReferrals = 0
		return acc, nil
	})
	if err != nil {
		return 0, err
	}

	if claimed > 0 {
		logger.Info(fmt.Sprintf("%s reclamó %d puntos de invitaciones", userID, claimed), "Ledger")
		record(l.recorder, "claim", userID, "", fmt.Sprintf("%d invitaciones convertidas en puntos", claimed))
	}
	return claimed, nil
}

// AdminAdjust sets the user's balance up or down by delta without the
// insufficient-funds check, clamping at zero. Admin-only by contract.
func (l *Ledger) AdminAdjust(userID string, delta int, reason string) (int, error) {
	unlock := l.users.Lock(userID)
	defer unlock()

	after := 0
	err := l.store.Users.Update(userID, func(acc models.UserAccount, exists bool) (models.UserAccount, error) {
		if !exists {
			acc = models.UserAccount{UserID: userID}
		}
		acc.Points += delta
		if acc.Points < 0 {
			acc.Points = 0
		}
		after = acc.Points
		return acc, nil
	})
	if err != nil {
		return 0, err
	}

	record(l.recorder, "admin_adjust", userID, "", fmt.Sprintf("%+d puntos: %s", delta, reason))
	return after, nil
}

// Top returns up to n accounts ordered by balance, for the leaderboard.
func (l *Ledger) Top(n int) []models.UserAccount {
	all := l.store.Users.All()

	accounts := make([]models.UserAccount, 0, len(all))
	for _, acc := range all {
		accounts = append(accounts, acc)
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Points != accounts[j].Points {
			return accounts[i].Points > accounts[j].Points
		}
		return accounts[i].UserID < accounts[j].UserID
	})

	if n > 0 && len(accounts) > n {
		accounts = accounts[:n]
	}
	return accounts
}

// AllAccounts returns every known account, for admin listings.
func (l *Ledger) AllAccounts() []models.UserAccount {
	return l.Top(0)
}
