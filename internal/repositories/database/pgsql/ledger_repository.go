package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	"github.com/SscSPs/enterprise_ledger/internal/platform/metrics"
	"github.com/SscSPs/enterprise_ledger/internal/platform/reqctx"
)

func ledgerTable(kind domain.LedgerKind) string {
	if kind == domain.LedgerRevenue {
		return "ent_revenue"
	}
	return "ent_expenses"
}

func (s *Store) ListRevenue(ctx context.Context, orgID string, period domain.Period) []domain.LedgerEntry {
	return s.listLedger(ctx, domain.LedgerRevenue, orgID, period)
}

func (s *Store) ListExpenses(ctx context.Context, orgID string, period domain.Period) []domain.LedgerEntry {
	return s.listLedger(ctx, domain.LedgerExpense, orgID, period)
}

func (s *Store) listLedger(ctx context.Context, kind domain.LedgerKind, orgID string, period domain.Period) []domain.LedgerEntry {
	var b strings.Builder
	fmt.Fprintf(&b, `
		SELECT l.id, l.organization_id, l.date, l.amount, l.taken_by,
			COALESCE(p.full_name, 'Unknown') AS taken_by_name,
			COALESCE(l.method, '') AS method, l.bank_account_id,
			COALESCE(l.category, '') AS category, COALESCE(l.narrative, '') AS narrative,
			COALESCE(l.status, '') AS status
		FROM %s l
		LEFT JOIN profiles p ON l.taken_by = p.id
		WHERE l.organization_id = $1`, ledgerTable(kind))

	args := []any{orgID}
	if period.HasFrom() {
		args = append(args, period.From.Format(domain.DateLayout))
		fmt.Fprintf(&b, " AND l.date >= $%d", len(args))
	}
	if period.HasTo() {
		args = append(args, period.To.Format(domain.DateLayout))
		fmt.Fprintf(&b, " AND l.date <= $%d", len(args))
	}
	b.WriteString(" ORDER BY l.date DESC")

	entries := []domain.LedgerEntry{}
	if err := s.db.SelectContext(ctx, &entries, b.String(), args...); err != nil {
		readFailed(ctx, "list"+string(kind), err, "organization_id", orgID)
		return []domain.LedgerEntry{}
	}
	s.enrichBankNames(ctx, entries)
	return entries
}

// enrichBankNames fills BankName from the caller's cloud bank accounts. Any
// failure leaves the entries as they are.
func (s *Store) enrichBankNames(ctx context.Context, entries []domain.LedgerEntry) {
	if s.cloud == nil || len(entries) == 0 {
		return
	}
	p, ok := reqctx.PrincipalFrom(ctx)
	if !ok {
		return
	}
	logger := reqctx.Logger(ctx)

	cloudUserID, err := s.bridge.Resolve(ctx, p.UserID)
	if err != nil {
		logger.Debug("skipping bank name enrichment", "reason", err)
		return
	}
	banks, err := s.cloud.PersonalBanks(ctx, cloudUserID)
	if err != nil {
		logger.Debug("skipping bank name enrichment", "reason", err)
		return
	}

	names := make(map[string]string, len(banks))
	for _, bank := range banks {
		names[bank.ID] = bank.BankName
	}
	for i := range entries {
		if !entries[i].HasBankReference() {
			continue
		}
		if name, ok := names[*entries[i].BankAccountID]; ok {
			entries[i].BankName = &name
		}
	}
}

func (s *Store) AddRevenue(ctx context.Context, orgID string, entry domain.LedgerEntry) domain.WriteResult {
	return s.addLedgerEntry(ctx, domain.LedgerRevenue, orgID, entry)
}

func (s *Store) AddExpense(ctx context.Context, orgID string, entry domain.LedgerEntry) domain.WriteResult {
	return s.addLedgerEntry(ctx, domain.LedgerExpense, orgID, entry)
}

func (s *Store) addLedgerEntry(ctx context.Context, kind domain.LedgerKind, orgID string, entry domain.LedgerEntry) domain.WriteResult {
	entry.OrganizationID = orgID
	query := fmt.Sprintf(`
		INSERT INTO %s (organization_id, date, amount, taken_by, method, bank_account_id, category, narrative, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, ledgerTable(kind))
	_, err := s.db.ExecContext(ctx, query,
		orgID,
		entry.Date.Format(domain.DateLayout),
		entry.Amount,
		entry.TakenBy,
		entry.Method,
		nullIfEmpty(entry.BankAccountID),
		entry.Category,
		entry.Narrative,
		entry.Status,
	)
	if err != nil {
		writeFailed(ctx, "add"+string(kind), err, "organization_id", orgID)
		return domain.PrimaryFailed()
	}

	result := domain.PrimaryOnly()
	if !entry.HasBankReference() || s.cloud == nil {
		return result
	}
	return result.WithMirror(s.mirror(ctx, kind, entry))
}

// mirror writes entry into the cloud personal ledger of its taker. The local
// row is already committed; errors are logged and reported, never rolled back.
func (s *Store) mirror(ctx context.Context, kind domain.LedgerKind, entry domain.LedgerEntry) error {
	logger := reqctx.Logger(ctx)

	cloudUserID, err := s.bridge.Resolve(ctx, entry.TakenBy)
	if err == nil {
		err = s.cloud.InsertPersonalTransaction(ctx, domain.NewMirrorTransaction(kind, cloudUserID, entry))
	}
	if err != nil {
		metrics.ObserveMirrorWrite(string(domain.BackendLocal), string(domain.MirrorFailed))
		logger.Warn("personal ledger mirror failed", "kind", kind, "taken_by", entry.TakenBy, "error", err)
		return err
	}
	metrics.ObserveMirrorWrite(string(domain.BackendLocal), string(domain.MirrorWritten))
	return nil
}

func (s *Store) ListInvestments(ctx context.Context, orgID string) []domain.Investment {
	investments := []domain.Investment{}
	err := s.db.SelectContext(ctx, &investments, `
		SELECT id, organization_id, date, type, amount, taken_by, COALESCE(narrative, '') AS narrative
		FROM ent_investments
		WHERE organization_id = $1
		ORDER BY date DESC`, orgID)
	if err != nil {
		readFailed(ctx, "ListInvestments", err, "organization_id", orgID)
		return []domain.Investment{}
	}
	return investments
}

func (s *Store) AddInvestment(ctx context.Context, orgID string, inv domain.Investment) bool {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ent_investments (organization_id, date, type, amount, taken_by, narrative)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		orgID, inv.Date.Format(domain.DateLayout), inv.Type, inv.Amount, inv.TakenBy, inv.Narrative)
	if err != nil {
		writeFailed(ctx, "AddInvestment", err, "organization_id", orgID)
		return false
	}
	return true
}
