package services_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/enterprise_ledger/internal/apperrors"
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	"github.com/SscSPs/enterprise_ledger/internal/core/ports/repositories/mocks"
	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/core/services"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
	"github.com/SscSPs/enterprise_ledger/internal/platform/config"
	"github.com/SscSPs/enterprise_ledger/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

const (
	orgID  = "org-1"
	userID = "user-1"
)

var (
	fixedNow      = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	configForTest = config.Config{BaseURL: "http://localhost:8080"}
)

func day(s string) time.Time {
	d, _ := time.Parse(domain.DateLayout, s)
	return d
}

type ServicesTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *mocks.DataStore
	svc   *portssvc.ServiceContainer
}

func (s *ServicesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = new(mocks.DataStore)
	s.svc = services.NewServiceContainer(&configForTest, services.WithClock(func() time.Time { return fixedNow }))
}

func (s *ServicesTestSuite) TearDownTest() {
	s.store.AssertExpectations(s.T())
}

func TestServicesTestSuite(t *testing.T) {
	suite.Run(t, new(ServicesTestSuite))
}

// --- Ledger ---

func (s *ServicesTestSuite) TestAddTransaction_CashDefaults() {
	req := dto.AddTransactionRequest{Type: domain.LedgerExpense, Amount: decimal.NewFromInt(250), Method: "Cash"}
	s.store.On("AddExpense", s.ctx, orgID, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Method == domain.MethodCash &&
			e.BankAccountID == nil &&
			e.Category == domain.DefaultCategory &&
			e.TakenBy == userID &&
			e.Date.Equal(day("2024-03-15"))
	})).Return(domain.PrimaryOnly()).Once()

	res, err := s.svc.Ledger.AddTransaction(s.ctx, s.store, orgID, userID, req)

	s.Require().NoError(err)
	s.True(res.OK)
	s.Equal(domain.MirrorSkipped, res.Mirror)
}

func (s *ServicesTestSuite) TestAddTransaction_BankMethodMirrorFailureStillSucceeds() {
	req := dto.AddTransactionRequest{
		Type: domain.LedgerRevenue, Amount: decimal.NewFromInt(900), Method: "bank-7",
		Date: "2024-03-02", Category: "Sales", TakenBy: "user-2",
	}
	mirrorErr := errors.New("cloud unavailable")
	s.store.On("AddRevenue", s.ctx, orgID, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Method == domain.MethodBank && e.BankAccountID != nil && *e.BankAccountID == "bank-7" &&
			e.Category == "Sales" && e.TakenBy == "user-2"
	})).Return(domain.PrimaryOnly().WithMirror(mirrorErr)).Once()

	res, err := s.svc.Ledger.AddTransaction(s.ctx, s.store, orgID, userID, req)

	s.Require().NoError(err)
	s.True(res.OK)
	s.Equal(domain.MirrorFailed, res.Mirror)
}

func (s *ServicesTestSuite) TestAddTransaction_PrimaryFailure() {
	req := dto.AddTransactionRequest{Type: domain.LedgerExpense, Amount: decimal.NewFromInt(1), Method: "Cash"}
	s.store.On("AddExpense", s.ctx, orgID, mock.Anything).Return(domain.PrimaryFailed()).Once()

	res, err := s.svc.Ledger.AddTransaction(s.ctx, s.store, orgID, userID, req)

	s.Error(err)
	s.False(res.OK)
}

func (s *ServicesTestSuite) TestAddTransaction_RejectsNonPositiveAmount() {
	req := dto.AddTransactionRequest{Type: domain.LedgerExpense, Amount: decimal.Zero, Method: "Cash"}

	_, err := s.svc.Ledger.AddTransaction(s.ctx, s.store, orgID, userID, req)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.store.AssertNotCalled(s.T(), "AddExpense", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServicesTestSuite) TestAddInvestment_DefaultsTakenBy() {
	req := dto.AddInvestmentRequest{Type: domain.InvestmentIn, Amount: decimal.NewFromInt(5000)}
	s.store.On("AddInvestment", s.ctx, orgID, mock.MatchedBy(func(i domain.Investment) bool {
		return i.TakenBy == userID && i.Type == domain.InvestmentIn
	})).Return(true).Once()

	s.NoError(s.svc.Ledger.AddInvestment(s.ctx, s.store, orgID, userID, req))
}

// --- Reporting ---

func (s *ServicesTestSuite) TestDashboard_OrganizationNameFallback() {
	s.store.On("ListRevenue", s.ctx, orgID, domain.Period{}).Return([]domain.LedgerEntry{{Date: day("2024-03-01"), Amount: decimal.NewFromInt(100)}}).Once()
	s.store.On("ListExpenses", s.ctx, orgID, domain.Period{}).Return(nil).Once()
	s.store.On("ListInvestments", s.ctx, orgID).Return(nil).Once()
	s.store.On("OrganizationName", s.ctx, orgID).Return("").Once()

	resp, err := s.svc.Reporting.Dashboard(s.ctx, s.store, orgID)

	s.Require().NoError(err)
	s.Equal(services.DefaultOrganizationName, resp.OrganizationName)
	s.Equal("100.00%", resp.KPIs.MarginPct)
	s.Equal([]string{"2024-03"}, resp.Trend.Labels)
}

func (s *ServicesTestSuite) TestCashflow_LastMonth() {
	period := domain.Period{From: day("2024-02-01"), To: day("2024-02-29")}
	s.store.On("ListRevenue", s.ctx, orgID, period).Return([]domain.LedgerEntry{{Date: day("2024-02-10"), Amount: decimal.NewFromInt(40)}}).Once()
	s.store.On("ListExpenses", s.ctx, orgID, period).Return([]domain.LedgerEntry{{Date: day("2024-02-12"), Amount: decimal.NewFromInt(15)}}).Once()
	s.store.On("ListMembers", s.ctx, orgID).Return([]domain.Member{{UserID: userID, FullName: "Owner"}}).Once()
	s.store.On("ListPersonalBanks", s.ctx, userID).Return(nil).Once()
	s.store.On("ListCategories", s.ctx, userID).Return(domain.DefaultCategories).Once()

	resp, err := s.svc.Reporting.Cashflow(s.ctx, s.store, orgID, userID, dto.CashflowQuery{Period: domain.PeriodLastMonth})

	s.Require().NoError(err)
	s.Equal("2024-02-01", resp.StartDate)
	s.Equal("2024-02-29", resp.EndDate)
	s.Require().Len(resp.Ledger, 2)
	s.Equal(domain.LedgerExpense, resp.Ledger[0].Type)
	s.True(resp.TotalIncome.Equal(decimal.NewFromInt(40)))
	s.Len(resp.Members, 1)
}

func (s *ServicesTestSuite) TestCashflow_InvalidCustomRange() {
	_, err := s.svc.Reporting.Cashflow(s.ctx, s.store, orgID, userID,
		dto.CashflowQuery{Period: domain.PeriodCustom, StartDate: "2024-03-10", EndDate: "2024-03-01"})

	s.ErrorIs(err, apperrors.ErrValidation)
}

// --- Export ---

func (s *ServicesTestSuite) exportFixture() {
	s.store.On("ListRevenue", s.ctx, orgID, domain.Period{}).Return([]domain.LedgerEntry{
		{Date: day("2024-03-05"), Amount: decimal.RequireFromString("1200.5"), Category: "Sales", Method: "Bank", TakenByName: "Asha", Narrative: "Invoice, #12"},
	}).Once()
	s.store.On("ListExpenses", s.ctx, orgID, domain.Period{}).Return([]domain.LedgerEntry{
		{Date: day("2024-03-07"), Amount: decimal.NewFromInt(80), Category: "Utilities", Method: "Cash", TakenByName: "Ravi"},
	}).Once()
}

func (s *ServicesTestSuite) TestExport_CSV() {
	s.exportFixture()

	file, err := s.svc.Export.Export(s.ctx, s.store, orgID, portssvc.ExportCashflow, portssvc.FormatCSV)

	s.Require().NoError(err)
	s.Equal("enterprise_cashflow_2024-03-15.csv", file.Filename)
	s.True(bytes.HasPrefix(file.Data, []byte{0xEF, 0xBB, 0xBF}), "BOM")

	records, err := csv.NewReader(bytes.NewReader(file.Data[3:])).ReadAll()
	s.Require().NoError(err)
	s.Equal(services.ExportColumns, records[0])
	s.Equal([]string{"Expense", "2024-03-07", "80.00", "Utilities", "Cash", "Ravi", ""}, records[1])
	s.Equal([]string{"Income", "2024-03-05", "1200.50", "Sales", "Bank", "Asha", "Invoice, #12"}, records[2])
}

func (s *ServicesTestSuite) TestExport_XLSX() {
	s.exportFixture()

	file, err := s.svc.Export.Export(s.ctx, s.store, orgID, portssvc.ExportCashflow, portssvc.FormatXLSX)

	s.Require().NoError(err)
	s.Equal("enterprise_cashflow_2024-03-15.xlsx", file.Filename)
	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	s.Require().NoError(err)
	defer wb.Close()
	rows, err := wb.GetRows("Ledger")
	s.Require().NoError(err)
	s.Require().Len(rows, 3)
	s.Equal(services.ExportColumns, rows[0])
	s.Equal("Ravi", rows[1][5])
}

func (s *ServicesTestSuite) TestExport_NoRows() {
	s.store.On("ListExpenses", s.ctx, orgID, domain.Period{}).Return(nil).Once()

	_, err := s.svc.Export.Export(s.ctx, s.store, orgID, portssvc.ExportExpenses, portssvc.FormatCSV)

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ServicesTestSuite) TestExport_UnknownScope() {
	_, err := s.svc.Export.Export(s.ctx, s.store, orgID, "payroll", portssvc.FormatCSV)

	s.ErrorIs(err, apperrors.ErrValidation)
}

// --- Members ---

func (s *ServicesTestSuite) TestAddMemberByEmail_UnknownEmail() {
	s.store.On("FindUserByEmail", s.ctx, "ghost@example.com").Return(nil).Once()

	_, err := s.svc.Member.AddMemberByEmail(s.ctx, s.store, orgID, dto.AddMemberRequest{Email: "ghost@example.com"})

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ServicesTestSuite) TestAddMemberByEmail_AlreadyMember() {
	s.store.On("FindUserByEmail", s.ctx, "a@example.com").Return(&domain.User{ID: "u-a", Email: "a@example.com"}).Once()
	s.store.On("ListMembers", s.ctx, orgID).Return([]domain.Member{{UserID: "u-a", Email: "A@example.com"}}).Once()

	outcome, err := s.svc.Member.AddMemberByEmail(s.ctx, s.store, orgID, dto.AddMemberRequest{Email: "a@example.com"})

	s.Require().NoError(err)
	s.Equal(portssvc.MemberAlreadyExists, outcome)
	s.store.AssertNotCalled(s.T(), "AddMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServicesTestSuite) TestAddMemberByEmail_DefaultsToMemberRole() {
	s.store.On("FindUserByEmail", s.ctx, "b@example.com").Return(&domain.User{ID: "u-b"}).Once()
	s.store.On("ListMembers", s.ctx, orgID).Return([]domain.Member{}).Once()
	s.store.On("AddMember", s.ctx, orgID, "u-b", domain.RoleMember).Return(true).Once()

	outcome, err := s.svc.Member.AddMemberByEmail(s.ctx, s.store, orgID, dto.AddMemberRequest{Email: "b@example.com"})

	s.Require().NoError(err)
	s.Equal(portssvc.MemberAdded, outcome)
}

func (s *ServicesTestSuite) TestFastAddMember_CreatesProfile() {
	s.store.On("FindUserByEmail", s.ctx, "new@example.com").Return(nil).Once()
	s.store.On("CreateProfile", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.ID != "" && u.Email == "new@example.com" && u.FullName == "New Hire"
	})).Return(true).Once()
	s.store.On("AddMember", s.ctx, orgID, mock.AnythingOfType("string"), domain.RoleMember).Return(true).Once()

	m, err := s.svc.Member.FastAddMember(s.ctx, s.store, orgID, dto.FastAddMemberRequest{FullName: "New Hire", Email: "new@example.com"})

	s.Require().NoError(err)
	s.NotEmpty(m.UserID)
	s.Equal("New Hire", m.FullName)
}

// --- Organizations ---

func (s *ServicesTestSuite) TestSwitchOrganization_RequiresMembership() {
	s.store.On("ListUserOrganizations", s.ctx, userID).Return([]domain.Organization{{ID: "org-1"}}).Twice()

	s.NoError(s.svc.Organization.SwitchOrganization(s.ctx, s.store, userID, "org-1"))
	s.ErrorIs(s.svc.Organization.SwitchOrganization(s.ctx, s.store, userID, "org-9"), apperrors.ErrForbidden)
}

// --- Holding payments ---

func (s *ServicesTestSuite) TestCreateHoldingPayment_InitialisesOutstanding() {
	req := dto.CreateHoldingPaymentRequest{Name: "Client A", Type: domain.HoldingReceivable, Amount: decimal.NewFromInt(1000), ExpectedDate: "2024-04-01"}
	s.store.On("AddHoldingPayment", s.ctx, orgID, mock.MatchedBy(func(hp domain.HoldingPayment) bool {
		return hp.Outstanding.Equal(decimal.NewFromInt(1000)) && !hp.IsSettled && hp.RecordedBy == userID
	})).Return(true).Once()

	hp, err := s.svc.Holding.CreateHoldingPayment(s.ctx, s.store, orgID, userID, req)

	s.Require().NoError(err)
	s.Require().NotNil(hp.ExpectedDate)
	s.Equal("2024-04-01", hp.ExpectedDate.Format(domain.DateLayout))
}

func (s *ServicesTestSuite) TestSettleHoldingPayment_PassesRequestThrough() {
	settled := &domain.HoldingPayment{ID: "hp-1", Outstanding: decimal.NewFromInt(600)}
	s.store.On("SettleHoldingPayment", s.ctx, orgID, "hp-1", mock.MatchedBy(func(r domain.SettlementRequest) bool {
		return r.Amount.Equal(decimal.NewFromInt(400)) && !r.Full && r.SettledBy == userID && r.Date.Equal(day("2024-03-15"))
	})).Return(settled, nil).Once()

	hp, err := s.svc.Holding.SettleHoldingPayment(s.ctx, s.store, orgID, "hp-1", userID, dto.SettleHoldingPaymentRequest{Amount: decimal.NewFromInt(400)})

	s.Require().NoError(err)
	s.Equal(settled, hp)
}

func (s *ServicesTestSuite) TestSettleHoldingPayment_OverSettlementPropagates() {
	s.store.On("SettleHoldingPayment", s.ctx, orgID, "hp-1", mock.Anything).
		Return(nil, apperrors.NewValidationFailedError("exceeds outstanding")).Once()

	_, err := s.svc.Holding.SettleHoldingPayment(s.ctx, s.store, orgID, "hp-1", userID, dto.SettleHoldingPaymentRequest{Amount: decimal.NewFromInt(5000)})

	s.ErrorIs(err, apperrors.ErrValidation)
}

// --- Banks ---

func (s *ServicesTestSuite) TestAddEnterpriseBank_CloudBackendRejected() {
	s.store.On("Backend").Return(domain.BackendCloud).Once()

	err := s.svc.Bank.AddEnterpriseBank(s.ctx, s.store, userID, dto.EnterpriseBankRequest{BusinessName: "Acme", BankName: "HDFC", AccountNumber: "1"})

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ServicesTestSuite) TestDeleteEnterpriseBank_NotOwned() {
	s.store.On("DeleteEnterpriseBank", s.ctx, userID, "bank-9").Return(false).Once()

	s.ErrorIs(s.svc.Bank.DeleteEnterpriseBank(s.ctx, s.store, userID, "bank-9"), apperrors.ErrNotFound)
}

// --- Business auth ---

func (s *ServicesTestSuite) TestSignUp_ProvisionsOrganization() {
	req := dto.BusinessSignUpRequest{BusinessName: " Acme ", Email: "ops@acme.test", Password: "correct-horse"}
	s.store.On("GetBusinessCredentials", s.ctx, userID, "Acme").Return(nil).Once()
	s.store.On("CreateBusinessCredentials", s.ctx, mock.MatchedBy(func(c domain.BusinessCredential) bool {
		return c.BusinessName == "Acme" && c.VerificationToken != nil && len(*c.VerificationToken) == 64 &&
			utils.CheckPasswordHash("correct-horse", c.PasswordHash)
	})).Return(true).Once()
	s.store.On("ProvisionBusinessOrg", s.ctx, userID, "Acme").Return("org-acme").Once()

	res, err := s.svc.BusinessAuth.SignUp(s.ctx, s.store, userID, req)

	s.Require().NoError(err)
	s.Equal("org-acme", res.OrganizationID)
	s.False(res.Verified)
}

func (s *ServicesTestSuite) TestSignUp_Duplicate() {
	s.store.On("GetBusinessCredentials", s.ctx, userID, "Acme").Return(&domain.BusinessCredential{}).Once()

	_, err := s.svc.BusinessAuth.SignUp(s.ctx, s.store, userID, dto.BusinessSignUpRequest{BusinessName: "Acme", Password: "correct-horse"})

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *ServicesTestSuite) TestSignIn() {
	hash, err := utils.HashPassword("correct-horse")
	s.Require().NoError(err)

	s.Run("wrong password", func() {
		s.store.On("GetBusinessCredentials", s.ctx, userID, "Acme").Return(&domain.BusinessCredential{PasswordHash: hash, IsVerified: true}).Once()
		_, err := s.svc.BusinessAuth.SignIn(s.ctx, s.store, userID, dto.BusinessSignInRequest{BusinessName: "Acme", Password: "nope"})
		s.ErrorIs(err, apperrors.ErrUnauthorized)
	})
	s.Run("unverified", func() {
		s.store.On("GetBusinessCredentials", s.ctx, userID, "Acme").Return(&domain.BusinessCredential{PasswordHash: hash}).Once()
		_, err := s.svc.BusinessAuth.SignIn(s.ctx, s.store, userID, dto.BusinessSignInRequest{BusinessName: "Acme", Password: "correct-horse"})
		s.ErrorIs(err, apperrors.ErrForbidden)
	})
	s.Run("verified", func() {
		s.store.On("GetBusinessCredentials", s.ctx, userID, "Acme").Return(&domain.BusinessCredential{PasswordHash: hash, IsVerified: true}).Once()
		s.store.On("ProvisionBusinessOrg", s.ctx, userID, "Acme").Return("org-acme").Once()
		res, err := s.svc.BusinessAuth.SignIn(s.ctx, s.store, userID, dto.BusinessSignInRequest{BusinessName: "Acme", Password: "correct-horse"})
		s.Require().NoError(err)
		s.Equal("org-acme", res.OrganizationID)
	})
}

func (s *ServicesTestSuite) TestVerifyEmail_UnknownToken() {
	s.store.On("VerifyBusinessEmail", s.ctx, "stale").Return(nil).Once()

	_, err := s.svc.BusinessAuth.VerifyEmail(s.ctx, s.store, "stale")

	s.ErrorIs(err, apperrors.ErrNotFound)
}
