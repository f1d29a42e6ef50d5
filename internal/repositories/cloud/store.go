package cloud

import (
	"context"

	"github.com/SscSPs/enterprise_ledger/internal/apperrors"
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/enterprise_ledger/internal/platform/metrics"
	"github.com/SscSPs/enterprise_ledger/internal/platform/reqctx"
)

// Store is the cloud implementation of portsrepo.DataStore. Enterprise-only
// entities (enterprise banks, business credentials, provisioning) are not
// hosted here and yield empty results.
type Store struct {
	client *Client
}

var (
	_ portsrepo.DataStore = (*Store)(nil)
	_ portsrepo.CloudPeer = (*Store)(nil)
)

// NewStore wraps client.
func NewStore(client *Client) *Store {
	return &Store{client: client}
}

func (s *Store) Backend() domain.BackendKind { return domain.BackendCloud }

func readFailed(ctx context.Context, op string, err error, args ...any) {
	reqctx.Logger(ctx).Error("cloud store read failed", append([]any{"op", op, "error", err}, args...)...)
}

func writeFailed(ctx context.Context, op string, err error, args ...any) {
	reqctx.Logger(ctx).Error("cloud store write failed", append([]any{"op", op, "error", err}, args...)...)
}

// --- organizations ---

func (s *Store) ListUserOrganizations(ctx context.Context, userID string) []domain.Organization {
	var rows []membershipRow
	_, err := s.client.from("ent_members").
		Select("organization_id,ent_organizations(name)", "", false).
		Eq("user_id", userID).
		ExecuteToWithContext(ctx, &rows)
	if err != nil {
		readFailed(ctx, "ListUserOrganizations", err, "user_id", userID)
		return []domain.Organization{}
	}
	orgs := make([]domain.Organization, 0, len(rows))
	for _, r := range rows {
		org := domain.Organization{ID: r.OrganizationID}
		if r.Organization != nil {
			org.Name = r.Organization.Name
		}
		orgs = append(orgs, org)
	}
	return orgs
}

func (s *Store) OrganizationName(ctx context.Context, orgID string) string {
	var rows []nameRef
	_, err := s.client.from("ent_organizations").
		Select("name", "", false).
		Eq("id", orgID).
		Limit(1, "").
		ExecuteToWithContext(ctx, &rows)
	if err != nil {
		readFailed(ctx, "OrganizationName", err, "organization_id", orgID)
		return ""
	}
	if len(rows) == 0 {
		return ""
	}
	return rows[0].Name
}

// ProvisionBusinessOrg is not supported by the cloud backend.
func (s *Store) ProvisionBusinessOrg(ctx context.Context, userID, businessName string) string {
	reqctx.Logger(ctx).Debug("business provisioning is local-only", "user_id", userID, "business_name", businessName)
	return ""
}

// --- members ---

func (s *Store) ListMembers(ctx context.Context, orgID string) []domain.Member {
	var rows []memberRow
	_, err := s.client.from("ent_members").
		Select("role,profiles(id,full_name,email)", "", false).
		Eq("organization_id", orgID).
		ExecuteToWithContext(ctx, &rows)
	if err != nil {
		readFailed(ctx, "ListMembers", err, "organization_id", orgID)
		return []domain.Member{}
	}
	members := make([]domain.Member, 0, len(rows))
	for _, r := range rows {
		if r.Profile == nil {
			continue
		}
		members = append(members, domain.Member{
			UserID:   r.Profile.ID,
			FullName: r.Profile.FullName,
			Email:    r.Profile.Email,
			Role:     domain.Role(r.Role),
		})
	}
	return members
}

// AddMember upserts on (organization_id, user_id); re-adding a member updates
// their role.
func (s *Store) AddMember(ctx context.Context, orgID, userID string, role domain.Role) bool {
	_, _, err := s.client.from("ent_members").
		Upsert(map[string]any{"organization_id": orgID, "user_id": userID, "role": role},
			"organization_id,user_id", "minimal", "").
		ExecuteWithContext(ctx)
	if err != nil {
		writeFailed(ctx, "AddMember", err, "organization_id", orgID, "user_id", userID)
		return false
	}
	return true
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) *domain.User {
	u, err := s.LookupProfileByEmail(ctx, email)
	if err != nil {
		readFailed(ctx, "FindUserByEmail", err)
		return nil
	}
	return u
}

// LookupProfileByEmail returns the cloud profile with email, or nil if none.
func (s *Store) LookupProfileByEmail(ctx context.Context, email string) (*domain.User, error) {
	var rows []profileRef
	_, err := s.client.from("profiles").
		Select("id,full_name,email", "", false).
		Eq("email", email).
		Limit(1, "").
		ExecuteToWithContext(ctx, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &domain.User{ID: rows[0].ID, Email: rows[0].Email, FullName: rows[0].FullName}, nil
}

func (s *Store) CreateProfile(ctx context.Context, user domain.User) bool {
	err := s.client.insert(ctx, "profiles", user)
	if err != nil {
		writeFailed(ctx, "CreateProfile", err, "email", user.Email)
		return false
	}
	return true
}

// --- ledgers ---

func (s *Store) ListRevenue(ctx context.Context, orgID string, period domain.Period) []domain.LedgerEntry {
	return s.listLedger(ctx, "ent_revenue", orgID, period)
}

func (s *Store) ListExpenses(ctx context.Context, orgID string, period domain.Period) []domain.LedgerEntry {
	return s.listLedger(ctx, "ent_expenses", orgID, period)
}

func (s *Store) listLedger(ctx context.Context, table, orgID string, period domain.Period) []domain.LedgerEntry {
	q := s.client.from(table).
		Select("*,profiles(full_name),bank_accounts(bank_name)", "", false).
		Eq("organization_id", orgID)
	if period.HasFrom() {
		q = q.Gte("date", period.From.Format(domain.DateLayout))
	}
	if period.HasTo() {
		q = q.Lte("date", period.To.Format(domain.DateLayout))
	}

	var rows []ledgerRow
	if _, err := q.Order("date", newestFirst).ExecuteToWithContext(ctx, &rows); err != nil {
		readFailed(ctx, "list "+table, err, "organization_id", orgID)
		return []domain.LedgerEntry{}
	}
	entries := make([]domain.LedgerEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.toDomain())
	}
	return entries
}

func (s *Store) AddRevenue(ctx context.Context, orgID string, entry domain.LedgerEntry) domain.WriteResult {
	return s.addLedgerEntry(ctx, domain.LedgerRevenue, "ent_revenue", orgID, entry)
}

func (s *Store) AddExpense(ctx context.Context, orgID string, entry domain.LedgerEntry) domain.WriteResult {
	return s.addLedgerEntry(ctx, domain.LedgerExpense, "ent_expenses", orgID, entry)
}

// addLedgerEntry inserts the entry and then, for bank payments, mirrors it into
// the personal ledger. taken_by is already a cloud id here.
func (s *Store) addLedgerEntry(ctx context.Context, kind domain.LedgerKind, table, orgID string, entry domain.LedgerEntry) domain.WriteResult {
	if err := s.client.insert(ctx, table, newLedgerRow(orgID, entry)); err != nil {
		writeFailed(ctx, "insert "+table, err, "organization_id", orgID)
		return domain.PrimaryFailed()
	}

	result := domain.PrimaryOnly()
	if !entry.HasBankReference() {
		return result
	}
	err := s.InsertPersonalTransaction(ctx, domain.NewMirrorTransaction(kind, entry.TakenBy, entry))
	if err != nil {
		metrics.ObserveMirrorWrite(string(domain.BackendCloud), string(domain.MirrorFailed))
		reqctx.Logger(ctx).Warn("personal ledger mirror failed", "kind", kind, "taken_by", entry.TakenBy, "error", err)
	} else {
		metrics.ObserveMirrorWrite(string(domain.BackendCloud), string(domain.MirrorWritten))
	}
	return result.WithMirror(err)
}

// InsertPersonalTransaction appends txn to the personal cash-flow ledger.
func (s *Store) InsertPersonalTransaction(ctx context.Context, txn domain.PersonalTransaction) error {
	return s.client.insert(ctx, "expenses", txn)
}

func (s *Store) ListInvestments(ctx context.Context, orgID string) []domain.Investment {
	var rows []investmentRow
	_, err := s.client.from("ent_investments").
		Select("*", "", false).
		Eq("organization_id", orgID).
		Order("date", newestFirst).
		ExecuteToWithContext(ctx, &rows)
	if err != nil {
		readFailed(ctx, "ListInvestments", err, "organization_id", orgID)
		return []domain.Investment{}
	}
	out := make([]domain.Investment, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}

func (s *Store) AddInvestment(ctx context.Context, orgID string, inv domain.Investment) bool {
	row := investmentRow{
		OrganizationID: orgID,
		Date:           inv.Date.Format(domain.DateLayout),
		Type:           string(inv.Type),
		Amount:         inv.Amount,
		TakenBy:        inv.TakenBy,
		Narrative:      inv.Narrative,
	}
	if err := s.client.insert(ctx, "ent_investments", row); err != nil {
		writeFailed(ctx, "AddInvestment", err, "organization_id", orgID)
		return false
	}
	return true
}

// --- holding payments ---

func (s *Store) ListHoldingPayments(ctx context.Context, orgID string) []domain.HoldingPayment {
	var rows []holdingRow
	_, err := s.client.from("ent_holding_payments").
		Select("*", "", false).
		Eq("organization_id", orgID).
		Order("created_at", newestFirst).
		ExecuteToWithContext(ctx, &rows)
	if err != nil {
		readFailed(ctx, "ListHoldingPayments", err, "organization_id", orgID)
		return []domain.HoldingPayment{}
	}
	out := make([]domain.HoldingPayment, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}

func (s *Store) AddHoldingPayment(ctx context.Context, orgID string, hp domain.HoldingPayment) bool {
	row := newHoldingRow(orgID, domain.NewHoldingPayment(hp))
	if err := s.client.insert(ctx, "ent_holding_payments", row); err != nil {
		writeFailed(ctx, "AddHoldingPayment", err, "organization_id", orgID)
		return false
	}
	return true
}

// SettleHoldingPayment reads the payment, applies the settlement, and writes it
// back only if the outstanding amount is still the one that was read.
func (s *Store) SettleHoldingPayment(ctx context.Context, orgID, paymentID string, req domain.SettlementRequest) (*domain.HoldingPayment, error) {
	var rows []holdingRow
	_, err := s.client.from("ent_holding_payments").
		Select("*", "", false).
		Eq("id", paymentID).
		Eq("organization_id", orgID).
		Limit(1, "").
		ExecuteToWithContext(ctx, &rows)
	if err != nil {
		return nil, apperrors.NewAppError(502, "failed to load holding payment", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewNotFoundError("holding payment " + paymentID + " not found")
	}

	current := rows[0].toDomain()
	next, err := current.ApplySettlement(req)
	if err != nil {
		return nil, err
	}

	var updated []holdingRow
	_, err = s.client.from("ent_holding_payments").
		Update(settlementPatch{
			Outstanding: next.Outstanding,
			IsSettled:   next.IsSettled,
			Settlements: next.Settlements,
		}, "representation", "").
		Eq("id", paymentID).
		Eq("organization_id", orgID).
		Eq("outstanding_amount", current.Outstanding.String()).
		Is("is_settled", "false").
		ExecuteToWithContext(ctx, &updated)
	if err != nil {
		return nil, apperrors.NewAppError(502, "failed to settle holding payment", err)
	}
	if len(updated) == 0 {
		return nil, apperrors.NewConflictError("holding payment " + paymentID + " was settled concurrently")
	}
	result := updated[0].toDomain()
	return &result, nil
}

// --- banks and categories ---

func (s *Store) ListPersonalBanks(ctx context.Context, userID string) []domain.BankAccount {
	banks, err := s.PersonalBanks(ctx, userID)
	if err != nil {
		readFailed(ctx, "ListPersonalBanks", err, "user_id", userID)
		return []domain.BankAccount{}
	}
	return banks
}

// PersonalBanks lists the bank accounts of a cloud user.
func (s *Store) PersonalBanks(ctx context.Context, cloudUserID string) ([]domain.BankAccount, error) {
	banks := []domain.BankAccount{}
	_, err := s.client.from("bank_accounts").
		Select("id,user_id,bank_name,account_number,balance", "", false).
		Eq("user_id", cloudUserID).
		ExecuteToWithContext(ctx, &banks)
	if err != nil {
		return nil, err
	}
	return banks, nil
}

func (s *Store) ListEnterpriseBanks(context.Context, string) []domain.EnterpriseBankAccount {
	return []domain.EnterpriseBankAccount{}
}

func (s *Store) AddEnterpriseBank(context.Context, domain.EnterpriseBankAccount) bool { return false }

func (s *Store) UpdateEnterpriseBank(context.Context, string, string, domain.EnterpriseBankAccount) bool {
	return false
}

func (s *Store) DeleteEnterpriseBank(context.Context, string, string) bool { return false }

func (s *Store) ListCategories(ctx context.Context, userID string) []string {
	custom, err := s.CustomCategories(ctx, userID)
	if err != nil {
		readFailed(ctx, "ListCategories", err, "user_id", userID)
		return domain.MergeCategories(nil)
	}
	return domain.MergeCategories(custom)
}

// CustomCategories lists the labels a cloud user added on top of the defaults.
func (s *Store) CustomCategories(ctx context.Context, cloudUserID string) ([]string, error) {
	var rows []categoryRow
	_, err := s.client.from("user_categories").
		Select("name", "", false).
		Eq("user_id", cloudUserID).
		ExecuteToWithContext(ctx, &rows)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	return names, nil
}

// --- business credentials (local-only) ---

func (s *Store) GetBusinessCredentials(context.Context, string, string) *domain.BusinessCredential {
	return nil
}

func (s *Store) CreateBusinessCredentials(context.Context, domain.BusinessCredential) bool {
	return false
}

func (s *Store) VerifyBusinessEmail(context.Context, string) *domain.BusinessCredential { return nil }
