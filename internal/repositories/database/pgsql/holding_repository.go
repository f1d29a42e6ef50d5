package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/SscSPs/enterprise_ledger/internal/apperrors"
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
)

const holdingColumns = `id, organization_id, recorded_by, name, type, amount, outstanding_amount,
	expected_date, COALESCE(contact, '') AS contact, COALESCE(narrative, '') AS narrative,
	is_settled, settlements, created_at`

func (s *Store) ListHoldingPayments(ctx context.Context, orgID string) []domain.HoldingPayment {
	payments := []domain.HoldingPayment{}
	err := s.db.SelectContext(ctx, &payments,
		`SELECT `+holdingColumns+` FROM ent_holding_payments WHERE organization_id = $1 ORDER BY created_at DESC`,
		orgID)
	if err != nil {
		readFailed(ctx, "ListHoldingPayments", err, "organization_id", orgID)
		return []domain.HoldingPayment{}
	}
	return payments
}

func (s *Store) AddHoldingPayment(ctx context.Context, orgID string, hp domain.HoldingPayment) bool {
	hp = domain.NewHoldingPayment(hp)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ent_holding_payments
			(organization_id, recorded_by, name, type, amount, outstanding_amount, expected_date, contact, narrative, is_settled, settlements)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, $10)`,
		orgID, hp.RecordedBy, hp.Name, hp.Type, hp.Amount, hp.Outstanding,
		hp.ExpectedDate, hp.Contact, hp.Narrative, hp.Settlements)
	if err != nil {
		writeFailed(ctx, "AddHoldingPayment", err, "organization_id", orgID)
		return false
	}
	return true
}

// SettleHoldingPayment applies the settlement in a single guarded UPDATE so
// concurrent settlements can never drive the outstanding amount below zero.
// A NULL amount settles the full outstanding balance.
func (s *Store) SettleHoldingPayment(ctx context.Context, orgID, paymentID string, req domain.SettlementRequest) (*domain.HoldingPayment, error) {
	var amount any
	if !req.Full {
		if !req.Amount.IsPositive() {
			return nil, apperrors.NewValidationFailedError("settlement amount must be positive")
		}
		amount = req.Amount
	}
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	var hp domain.HoldingPayment
	err := s.db.GetContext(ctx, &hp, `
		UPDATE ent_holding_payments
		SET outstanding_amount = outstanding_amount - COALESCE($3::numeric, outstanding_amount),
			is_settled = (outstanding_amount - COALESCE($3::numeric, outstanding_amount)) = 0,
			settlements = settlements || jsonb_build_array(jsonb_build_object(
				'amount', COALESCE($3::numeric, outstanding_amount),
				'date', $4::text,
				'full', (outstanding_amount - COALESCE($3::numeric, outstanding_amount)) = 0,
				'settled_by', $5::text))
		WHERE id = $1 AND organization_id = $2
			AND NOT is_settled
			AND outstanding_amount >= COALESCE($3::numeric, outstanding_amount)
		RETURNING `+holdingColumns,
		paymentID, orgID, amount, date.Format(domain.DateLayout), req.SettledBy)
	if err == nil {
		return &hp, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, translateError(err, "failed to settle holding payment")
	}
	return nil, s.classifyRejectedSettlement(ctx, orgID, paymentID, req)
}

// classifyRejectedSettlement explains why the guarded UPDATE matched no row.
func (s *Store) classifyRejectedSettlement(ctx context.Context, orgID, paymentID string, req domain.SettlementRequest) error {
	var current domain.HoldingPayment
	err := s.db.GetContext(ctx, &current,
		`SELECT `+holdingColumns+` FROM ent_holding_payments WHERE id = $1 AND organization_id = $2`,
		paymentID, orgID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFoundError("holding payment " + paymentID + " not found")
	}
	if err != nil {
		return translateError(err, "failed to load holding payment")
	}
	if _, err := current.SettlementAmount(req); err != nil {
		return err
	}
	// The row changed between the UPDATE and this read.
	return apperrors.NewConflictError("holding payment " + paymentID + " was settled concurrently")
}
