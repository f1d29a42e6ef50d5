package cloud

import (
	"time"

	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

const unknownName = "Unknown"

type nameRef struct {
	Name string `json:"name"`
}

type profileRef struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type bankRef struct {
	BankName string `json:"bank_name"`
}

type membershipRow struct {
	OrganizationID string   `json:"organization_id"`
	Role           string   `json:"role"`
	Organization   *nameRef `json:"ent_organizations"`
}

type memberRow struct {
	Role    string      `json:"role"`
	Profile *profileRef `json:"profiles"`
}

type ledgerRow struct {
	ID             string          `json:"id,omitempty"`
	OrganizationID string          `json:"organization_id"`
	Date           string          `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	TakenBy        string          `json:"taken_by"`
	Method         string          `json:"method"`
	BankAccountID  *string         `json:"bank_account_id"`
	Category       string          `json:"category"`
	Narrative      string          `json:"narrative"`
	Status         string          `json:"status,omitempty"`
	Profile        *profileRef     `json:"profiles,omitempty"`
	Bank           *bankRef        `json:"bank_accounts,omitempty"`
}

func newLedgerRow(orgID string, e domain.LedgerEntry) ledgerRow {
	row := ledgerRow{
		OrganizationID: orgID,
		Date:           e.Date.Format(domain.DateLayout),
		Amount:         e.Amount,
		TakenBy:        e.TakenBy,
		Method:         e.Method,
		Category:       e.Category,
		Narrative:      e.Narrative,
		Status:         e.Status,
	}
	if e.HasBankReference() {
		row.BankAccountID = e.BankAccountID
	}
	return row
}

// toDomain flattens the embedded profile and bank resources.
func (r ledgerRow) toDomain() domain.LedgerEntry {
	e := domain.LedgerEntry{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		Date:           parseDate(r.Date),
		Amount:         r.Amount,
		TakenBy:        r.TakenBy,
		TakenByName:    unknownName,
		Method:         r.Method,
		BankAccountID:  r.BankAccountID,
		Category:       r.Category,
		Narrative:      r.Narrative,
		Status:         r.Status,
	}
	if r.Profile != nil && r.Profile.FullName != "" {
		e.TakenByName = r.Profile.FullName
	}
	if r.Bank != nil && r.Bank.BankName != "" {
		name := r.Bank.BankName
		e.BankName = &name
	}
	return e
}

type investmentRow struct {
	ID             string          `json:"id,omitempty"`
	OrganizationID string          `json:"organization_id"`
	Date           string          `json:"date"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	TakenBy        string          `json:"taken_by"`
	Narrative      string          `json:"narrative"`
}

func (r investmentRow) toDomain() domain.Investment {
	return domain.Investment{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		Date:           parseDate(r.Date),
		Type:           domain.InvestmentType(r.Type),
		Amount:         r.Amount,
		TakenBy:        r.TakenBy,
		Narrative:      r.Narrative,
	}
}

type holdingRow struct {
	ID             string                   `json:"id,omitempty"`
	OrganizationID string                   `json:"organization_id"`
	RecordedBy     string                   `json:"recorded_by"`
	Name           string                   `json:"name"`
	Type           string                   `json:"type"`
	Amount         decimal.Decimal          `json:"amount"`
	Outstanding    decimal.Decimal          `json:"outstanding_amount"`
	ExpectedDate   *string                  `json:"expected_date"`
	Contact        string                   `json:"contact"`
	Narrative      string                   `json:"narrative"`
	IsSettled      bool                     `json:"is_settled"`
	Settlements    domain.SettlementHistory `json:"settlements"`
	CreatedAt      *time.Time               `json:"created_at,omitempty"`
}

func newHoldingRow(orgID string, hp domain.HoldingPayment) holdingRow {
	row := holdingRow{
		OrganizationID: orgID,
		RecordedBy:     hp.RecordedBy,
		Name:           hp.Name,
		Type:           string(hp.Type),
		Amount:         hp.Amount,
		Outstanding:    hp.Outstanding,
		Contact:        hp.Contact,
		Narrative:      hp.Narrative,
		IsSettled:      hp.IsSettled,
		Settlements:    hp.Settlements,
	}
	if hp.ExpectedDate != nil {
		d := hp.ExpectedDate.Format(domain.DateLayout)
		row.ExpectedDate = &d
	}
	return row
}

func (r holdingRow) toDomain() domain.HoldingPayment {
	hp := domain.HoldingPayment{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		RecordedBy:     r.RecordedBy,
		Name:           r.Name,
		Type:           domain.HoldingType(r.Type),
		Amount:         r.Amount,
		Outstanding:    r.Outstanding,
		Contact:        r.Contact,
		Narrative:      r.Narrative,
		IsSettled:      r.IsSettled,
		Settlements:    r.Settlements,
	}
	if hp.Settlements == nil {
		hp.Settlements = domain.SettlementHistory{}
	}
	if r.ExpectedDate != nil && *r.ExpectedDate != "" {
		d := parseDate(*r.ExpectedDate)
		hp.ExpectedDate = &d
	}
	if r.CreatedAt != nil {
		hp.CreatedAt = *r.CreatedAt
	}
	return hp
}

type settlementPatch struct {
	Outstanding decimal.Decimal          `json:"outstanding_amount"`
	IsSettled   bool                     `json:"is_settled"`
	Settlements domain.SettlementHistory `json:"settlements"`
}

type categoryRow struct {
	Name string `json:"name"`
}

// parseDate accepts plain dates and full timestamps.
func parseDate(s string) time.Time {
	if t, err := time.Parse(domain.DateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
