package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SscSPs/enterprise_ledger/internal/apperrors"
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	"github.com/SscSPs/enterprise_ledger/internal/platform/reqctx"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// --- Fake cloud peer ---
type fakeCloud struct {
	profiles   map[string]string
	lookupErr  error
	banks      []domain.BankAccount
	banksErr   error
	categories []string
	catErr     error
	insertErr  error
	inserted   []domain.PersonalTransaction
}

func (f *fakeCloud) LookupProfileByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	id, ok := f.profiles[email]
	if !ok {
		return nil, nil
	}
	return &domain.User{ID: id, Email: email}, nil
}

func (f *fakeCloud) PersonalBanks(context.Context, string) ([]domain.BankAccount, error) {
	return f.banks, f.banksErr
}

func (f *fakeCloud) CustomCategories(context.Context, string) ([]string, error) {
	return f.categories, f.catErr
}

func (f *fakeCloud) InsertPersonalTransaction(_ context.Context, txn domain.PersonalTransaction) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, txn)
	return nil
}

// --- Test Suite ---
type LocalStoreTestSuite struct {
	suite.Suite
	db    *sql.DB
	mock  sqlmock.Sqlmock
	cloud *fakeCloud
	ctx   context.Context
}

func (suite *LocalStoreTestSuite) SetupTest() {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	suite.Require().NoError(err)
	suite.db = db
	suite.mock = mock
	suite.cloud = &fakeCloud{profiles: map[string]string{"owner@acme.test": "cloud-u1"}}
	suite.ctx = reqctx.WithPrincipal(context.Background(), reqctx.Principal{UserID: "u1", Email: "owner@acme.test"})
}

func (suite *LocalStoreTestSuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
	suite.db.Close()
}

func (suite *LocalStoreTestSuite) store(opts Options, withCloud bool) *Store {
	sdb := sqlx.NewDb(suite.db, "sqlmock")
	if withCloud {
		return NewStore(sdb, suite.cloud, opts)
	}
	return NewStore(sdb, nil, opts)
}

func q(fragment string) string { return regexp.QuoteMeta(fragment) }

func ledgerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "organization_id", "date", "amount", "taken_by", "taken_by_name",
		"method", "bank_account_id", "category", "narrative", "status"})
}

func holdingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "organization_id", "recorded_by", "name", "type", "amount",
		"outstanding_amount", "expected_date", "contact", "narrative", "is_settled", "settlements", "created_at"})
}

func (suite *LocalStoreTestSuite) expectLocalEmail(userID, email string) {
	suite.mock.ExpectQuery(q("SELECT COALESCE(email, '') FROM profiles WHERE id = $1")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow(email))
}

// --- Provisioning ---

func (suite *LocalStoreTestSuite) TestProvisionBusinessOrg_CreatesOrg() {
	s := suite.store(Options{}, false)

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(q("INSERT INTO ent_organizations")).
		WithArgs("Acme", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("org-1"))
	suite.mock.ExpectExec(q("INSERT INTO profiles")).
		WithArgs("u1", nil, "owner@acme.test").
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectExec(q("INSERT INTO ent_members")).
		WithArgs("org-1", "u1", "admin").
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	suite.Equal("org-1", s.ProvisionBusinessOrg(suite.ctx, "u1", "Acme"))
}

func (suite *LocalStoreTestSuite) TestProvisionBusinessOrg_ReturnsExistingID() {
	s := suite.store(Options{}, false)

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(q("INSERT INTO ent_organizations")).
		WithArgs("Acme", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	suite.mock.ExpectQuery(q("SELECT id FROM ent_organizations WHERE created_by = $1 AND business_name = $2")).
		WithArgs("u1", "Acme").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("org-1"))
	suite.mock.ExpectExec(q("INSERT INTO profiles")).WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectExec(q("INSERT INTO ent_members")).WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectCommit()

	suite.Equal("org-1", s.ProvisionBusinessOrg(suite.ctx, "u1", "Acme"))
}

func (suite *LocalStoreTestSuite) TestProvisionBusinessOrg_FailureRollsBack() {
	s := suite.store(Options{}, false)

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(q("INSERT INTO ent_organizations")).WillReturnError(errors.New("db down"))
	suite.mock.ExpectRollback()

	suite.Equal("", s.ProvisionBusinessOrg(suite.ctx, "u1", "Acme"))
}

// --- Memberships and auto-bootstrap ---

func (suite *LocalStoreTestSuite) TestListUserOrganizations_NoBootstrap() {
	s := suite.store(Options{}, false)

	suite.mock.ExpectQuery(q("FROM ent_organizations o")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	suite.Empty(s.ListUserOrganizations(suite.ctx, "u1"))
}

func (suite *LocalStoreTestSuite) TestListUserOrganizations_AutoBootstrap() {
	s := suite.store(Options{AutoBootstrap: true}, false)

	suite.mock.ExpectQuery(q("FROM ent_organizations o")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	suite.mock.ExpectQuery(q("SELECT id, name FROM ent_organizations ORDER BY created_at LIMIT 1")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("org-seed", "Seed Co"))
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(q("INSERT INTO profiles")).
		WithArgs("u1", autoLocalUserName, "owner@acme.test").
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectExec(q("INSERT INTO ent_members")).
		WithArgs("org-seed", "u1", "admin").
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	orgs := s.ListUserOrganizations(suite.ctx, "u1")
	suite.Require().Len(orgs, 1)
	suite.Equal("org-seed", orgs[0].ID)
}

func (suite *LocalStoreTestSuite) TestListUserOrganizations_BootstrapFallsBackToDevEmail() {
	s := suite.store(Options{AutoBootstrap: true}, false)

	suite.mock.ExpectQuery(q("FROM ent_organizations o")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	suite.mock.ExpectQuery(q("ORDER BY created_at LIMIT 1")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("org-seed", "Seed Co"))
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(q("INSERT INTO profiles")).
		WithArgs("u2", autoLocalUserName, autoLocalUserEmail).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectExec(q("INSERT INTO ent_members")).WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	suite.Len(s.ListUserOrganizations(context.Background(), "u2"), 1)
}

func (suite *LocalStoreTestSuite) TestListUserOrganizations_ReadErrorIsEmpty() {
	s := suite.store(Options{AutoBootstrap: true}, false)

	suite.mock.ExpectQuery(q("FROM ent_organizations o")).WillReturnError(errors.New("db down"))

	suite.Empty(s.ListUserOrganizations(suite.ctx, "u1"))
}

// --- Mirrored writes ---

func (suite *LocalStoreTestSuite) revenueEntry(bankID string) domain.LedgerEntry {
	e := domain.LedgerEntry{
		Date:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromInt(500),
		TakenBy:   "u1",
		Method:    domain.MethodBank,
		Category:  "Sales",
		Narrative: "Invoice 42",
	}
	if bankID != "" {
		e.BankAccountID = &bankID
	}
	return e
}

func (suite *LocalStoreTestSuite) TestAddRevenue_MirrorWritten() {
	s := suite.store(Options{}, true)

	suite.mock.ExpectExec(q("INSERT INTO ent_revenue")).
		WithArgs("org-1", "2024-06-01", sqlmock.AnyArg(), "u1", "Bank", "bank-1", "Sales", "Invoice 42", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.expectLocalEmail("u1", "owner@acme.test")

	res := s.AddRevenue(suite.ctx, "org-1", suite.revenueEntry("bank-1"))

	suite.True(res.OK)
	suite.Equal(domain.MirrorWritten, res.Mirror)
	suite.Require().Len(suite.cloud.inserted, 1)
	mirrored := suite.cloud.inserted[0]
	suite.Equal("cloud-u1", mirrored.UserID)
	suite.Equal("Enterprise Income", mirrored.Category)
	suite.Equal("Enterprise Revenue: Invoice 42", mirrored.Description)
	suite.Equal("income", mirrored.Type)
}

func (suite *LocalStoreTestSuite) TestAddExpense_MirrorFailureKeepsPrimary() {
	s := suite.store(Options{}, true)
	suite.cloud.insertErr = errors.New("cloud unreachable")

	suite.mock.ExpectExec(q("INSERT INTO ent_expenses")).WillReturnResult(sqlmock.NewResult(0, 1))
	suite.expectLocalEmail("u1", "owner@acme.test")

	res := s.AddExpense(suite.ctx, "org-1", suite.revenueEntry("bank-1"))

	suite.True(res.OK)
	suite.Equal(domain.MirrorFailed, res.Mirror)
	suite.EqualError(res.MirrorErr, "cloud unreachable")
}

func (suite *LocalStoreTestSuite) TestAddExpense_UnresolvableIdentityKeepsPrimary() {
	s := suite.store(Options{}, true)

	suite.mock.ExpectExec(q("INSERT INTO ent_expenses")).WillReturnResult(sqlmock.NewResult(0, 1))
	suite.expectLocalEmail("u1", "stranger@elsewhere.test")

	res := s.AddExpense(suite.ctx, "org-1", suite.revenueEntry("bank-1"))

	suite.True(res.OK)
	suite.Equal(domain.MirrorFailed, res.Mirror)
	suite.ErrorIs(res.MirrorErr, ErrNoCloudIdentity)
	suite.Empty(suite.cloud.inserted)
}

func (suite *LocalStoreTestSuite) TestAddExpense_CashIsNotMirrored() {
	s := suite.store(Options{}, true)

	suite.mock.ExpectExec(q("INSERT INTO ent_expenses")).
		WithArgs("org-1", "2024-06-01", sqlmock.AnyArg(), "u1", "Bank", nil, "Sales", "Invoice 42", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	res := s.AddExpense(suite.ctx, "org-1", suite.revenueEntry(""))

	suite.True(res.OK)
	suite.Equal(domain.MirrorSkipped, res.Mirror)
}

func (suite *LocalStoreTestSuite) TestAddRevenue_PrimaryFailureSkipsMirror() {
	s := suite.store(Options{}, true)

	suite.mock.ExpectExec(q("INSERT INTO ent_revenue")).WillReturnError(errors.New("db down"))

	res := s.AddRevenue(suite.ctx, "org-1", suite.revenueEntry("bank-1"))

	suite.False(res.OK)
	suite.Equal(domain.MirrorSkipped, res.Mirror)
	suite.Empty(suite.cloud.inserted)
}

// --- Enrichment ---

func (suite *LocalStoreTestSuite) TestListRevenue_EnrichesBankNames() {
	s := suite.store(Options{}, true)
	suite.cloud.banks = []domain.BankAccount{{ID: "bank-1", BankName: "HDFC"}}
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(q("FROM ent_revenue l")).
		WithArgs("org-1", "2024-06-01", "2024-06-30").
		WillReturnRows(ledgerRows().
			AddRow("r1", "org-1", day, "500.00", "u1", "Owner", "Bank", "bank-1", "Sales", "", "").
			AddRow("r2", "org-1", day, "20.00", "u1", "Owner", "Cash", nil, "Other", "", "pending"))
	suite.expectLocalEmail("u1", "owner@acme.test")

	got := s.ListRevenue(suite.ctx, "org-1", domain.Period{From: day, To: day.AddDate(0, 0, 29)})

	suite.Require().Len(got, 2)
	suite.Require().NotNil(got[0].BankName)
	suite.Equal("HDFC", *got[0].BankName)
	suite.Nil(got[1].BankName)
	suite.Equal("pending", got[1].Status)
}

func (suite *LocalStoreTestSuite) TestListExpenses_EnrichmentFailureDegrades() {
	s := suite.store(Options{}, true)
	suite.cloud.lookupErr = errors.New("cloud unreachable")
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(q("FROM ent_expenses l")).
		WithArgs("org-1").
		WillReturnRows(ledgerRows().
			AddRow("e1", "org-1", day, "75.00", "u9", "Unknown", "Bank", "bank-1", "Travel", "", ""))
	suite.expectLocalEmail("u1", "")

	got := s.ListExpenses(suite.ctx, "org-1", domain.Period{})

	suite.Require().Len(got, 1)
	suite.Nil(got[0].BankName)
	suite.Equal("Unknown", got[0].TakenByName)
}

func (suite *LocalStoreTestSuite) TestListRevenue_ReadErrorIsEmpty() {
	s := suite.store(Options{}, true)

	suite.mock.ExpectQuery(q("FROM ent_revenue l")).WillReturnError(errors.New("db down"))

	suite.Empty(s.ListRevenue(suite.ctx, "org-1", domain.Period{}))
}

// --- Settlement ---

func (suite *LocalStoreTestSuite) TestSettleHoldingPayment_Partial() {
	s := suite.store(Options{}, false)
	now := time.Now()

	suite.mock.ExpectQuery(q("UPDATE ent_holding_payments")).
		WithArgs("hp-1", "org-1", sqlmock.AnyArg(), "2024-03-05", "u1").
		WillReturnRows(holdingRows().AddRow("hp-1", "org-1", "u1", "Acme", "receivable", "1000.00", "600.00",
			nil, "", "", false, []byte(`[{"amount":400,"date":"2024-03-05","full":false,"settled_by":"u1"}]`), now))

	hp, err := s.SettleHoldingPayment(suite.ctx, "org-1", "hp-1", domain.SettlementRequest{
		Amount: decimal.NewFromInt(400), Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), SettledBy: "u1",
	})

	suite.Require().NoError(err)
	suite.True(hp.Outstanding.Equal(decimal.NewFromInt(600)))
	suite.False(hp.IsSettled)
	suite.Len(hp.Settlements, 1)
}

func (suite *LocalStoreTestSuite) TestSettleHoldingPayment_OverSettlementRejected() {
	s := suite.store(Options{}, false)

	suite.mock.ExpectQuery(q("UPDATE ent_holding_payments")).WillReturnRows(holdingRows())
	suite.mock.ExpectQuery(q("FROM ent_holding_payments WHERE id = $1 AND organization_id = $2")).
		WithArgs("hp-1", "org-1").
		WillReturnRows(holdingRows().AddRow("hp-1", "org-1", "u1", "Acme", "receivable", "1000.00", "600.00",
			nil, "", "", false, []byte(`[]`), time.Now()))

	hp, err := s.SettleHoldingPayment(suite.ctx, "org-1", "hp-1", domain.SettlementRequest{Amount: decimal.NewFromInt(700)})

	suite.Nil(hp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LocalStoreTestSuite) TestSettleHoldingPayment_NotFound() {
	s := suite.store(Options{}, false)

	suite.mock.ExpectQuery(q("UPDATE ent_holding_payments")).WillReturnRows(holdingRows())
	suite.mock.ExpectQuery(q("FROM ent_holding_payments WHERE id = $1")).WillReturnRows(holdingRows())

	_, err := s.SettleHoldingPayment(suite.ctx, "org-1", "missing", domain.SettlementRequest{Full: true})

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LocalStoreTestSuite) TestSettleHoldingPayment_NonPositiveAmount() {
	s := suite.store(Options{}, false)

	_, err := s.SettleHoldingPayment(suite.ctx, "org-1", "hp-1", domain.SettlementRequest{Amount: decimal.Zero})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Banks and categories ---

func (suite *LocalStoreTestSuite) TestListPersonalBanks_FallsBackToLocal() {
	s := suite.store(Options{}, true)

	suite.expectLocalEmail("u1", "owner@acme.test")
	suite.mock.ExpectQuery(q("FROM bank_accounts")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "bank_name", "account_number", "balance"}).
			AddRow("lb-1", "u1", "Local Bank", "0001", "10.00"))

	banks := s.ListPersonalBanks(suite.ctx, "u1")

	suite.Require().Len(banks, 1)
	suite.Equal("Local Bank", banks[0].BankName)
}

func (suite *LocalStoreTestSuite) TestListPersonalBanks_PrefersCloud() {
	s := suite.store(Options{}, true)
	suite.cloud.banks = []domain.BankAccount{{ID: "cb-1", BankName: "Cloud Bank"}}

	suite.expectLocalEmail("u1", "owner@acme.test")

	banks := s.ListPersonalBanks(suite.ctx, "u1")

	suite.Require().Len(banks, 1)
	suite.Equal("cb-1", banks[0].ID)
}

func (suite *LocalStoreTestSuite) TestListCategories_LocalCustom() {
	s := suite.store(Options{}, false)

	suite.mock.ExpectQuery(q("SELECT name FROM user_categories")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Gifts").AddRow("Rent"))

	cats := s.ListCategories(suite.ctx, "u1")

	suite.Len(cats, 14)
	suite.Equal(domain.DefaultCategories, cats[:12])
}

func (suite *LocalStoreTestSuite) TestListCategories_CloudCustom() {
	s := suite.store(Options{}, true)
	suite.cloud.categories = []string{"Food", "Subscriptions"}

	suite.expectLocalEmail("u1", "owner@acme.test")

	cats := s.ListCategories(suite.ctx, "u1")

	suite.Len(cats, 13)
	suite.Equal("Subscriptions", cats[12])
}

func (suite *LocalStoreTestSuite) TestDeleteEnterpriseBank_OwnRowsOnly() {
	s := suite.store(Options{}, false)

	suite.mock.ExpectExec(q("DELETE FROM enterprise_bank_accounts WHERE id = $1 AND user_id = $2")).
		WithArgs("eb-1", "someone-else").
		WillReturnResult(sqlmock.NewResult(0, 0))

	suite.False(s.DeleteEnterpriseBank(suite.ctx, "someone-else", "eb-1"))
}

func (suite *LocalStoreTestSuite) TestVerifyBusinessEmail_UnknownToken() {
	s := suite.store(Options{}, false)

	suite.mock.ExpectQuery(q("UPDATE enterprise_credentials")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	suite.Nil(s.VerifyBusinessEmail(suite.ctx, "nope"))
}

func TestLocalStoreTestSuite(t *testing.T) {
	suite.Run(t, new(LocalStoreTestSuite))
}
