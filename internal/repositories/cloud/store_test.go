package cloud_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/enterprise_ledger/internal/apperrors"
	"github.com/SscSPs/enterprise_ledger/internal/core/domain"
	"github.com/SscSPs/enterprise_ledger/internal/repositories/cloud"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   string
}

// fakeREST answers PostgREST-style requests from canned per-route responses.
type fakeREST struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Header: r.Header.Clone(), Body: string(body),
	})
	f.mu.Unlock()

	key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	if h, ok := f.responses[key]; ok {
		h(w, r)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (f *fakeREST) on(method, table string, h func(w http.ResponseWriter, r *http.Request)) {
	f.responses[method+" "+table] = h
}

func (f *fakeREST) byPath(method, table string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedRequest
	for _, r := range f.requests {
		if r.Method == method && r.Path == "/rest/v1/"+table {
			out = append(out, r)
		}
	}
	return out
}

func jsonReply(status int, body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// --- Test Suite ---
type CloudStoreTestSuite struct {
	suite.Suite
	fake   *fakeREST
	server *httptest.Server
	store  *cloud.Store
	ctx    context.Context
}

func (suite *CloudStoreTestSuite) SetupTest() {
	suite.fake = &fakeREST{responses: map[string]func(http.ResponseWriter, *http.Request){}}
	suite.server = httptest.NewServer(suite.fake)
	suite.ctx = context.Background()
	suite.store = suite.newStore("user-jwt")
}

func (suite *CloudStoreTestSuite) newStore(bearer string) *cloud.Store {
	client, err := cloud.NewClient(suite.ctx, suite.server.URL, "anon-key", bearer)
	suite.Require().NoError(err)
	return cloud.NewStore(client)
}

func (suite *CloudStoreTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *CloudStoreTestSuite) TestRequestsCarryCredentials() {
	suite.fake.on("GET", "ent_organizations", jsonReply(200, `[{"name":"Acme"}]`))

	suite.Equal("Acme", suite.store.OrganizationName(suite.ctx, "org-1"))

	reqs := suite.fake.byPath("GET", "ent_organizations")
	suite.Require().Len(reqs, 1)
	suite.Equal("anon-key", reqs[0].Header.Get("apikey"))
	suite.Equal("Bearer user-jwt", reqs[0].Header.Get("Authorization"))
	suite.Contains(reqs[0].Query, "id=eq.org-1")
}

func (suite *CloudStoreTestSuite) TestAnonymousClientUsesAPIKeyAsBearer() {
	suite.store = suite.newStore("")
	suite.fake.on("GET", "ent_members", jsonReply(200, `[]`))

	suite.store.ListUserOrganizations(suite.ctx, "u1")

	reqs := suite.fake.byPath("GET", "ent_members")
	suite.Require().Len(reqs, 1)
	suite.Equal("Bearer anon-key", reqs[0].Header.Get("Authorization"))
}

func (suite *CloudStoreTestSuite) TestListUserOrganizations_FlattensEmbeddedName() {
	suite.fake.on("GET", "ent_members", jsonReply(200,
		`[{"organization_id":"org-1","ent_organizations":{"name":"Acme"}},{"organization_id":"org-2","ent_organizations":null}]`))

	orgs := suite.store.ListUserOrganizations(suite.ctx, "u1")

	suite.Require().Len(orgs, 2)
	suite.Equal(domain.Organization{ID: "org-1", Name: "Acme"}, orgs[0])
	suite.Equal("", orgs[1].Name)
}

func (suite *CloudStoreTestSuite) TestReadsDegradeToEmptyOnError() {
	suite.fake.on("GET", "ent_members", jsonReply(500, `{"message":"boom"}`))

	suite.Empty(suite.store.ListUserOrganizations(suite.ctx, "u1"))
	suite.Empty(suite.store.ListMembers(suite.ctx, "org-1"))
	suite.Empty(suite.store.ListRevenue(suite.ctx, "org-1", domain.Period{}))
	suite.Len(suite.store.ListCategories(suite.ctx, "u1"), 12)
}

func (suite *CloudStoreTestSuite) TestListRevenue_FlattensAndFilters() {
	suite.fake.on("GET", "ent_revenue", jsonReply(200, `[
		{"id":"r1","organization_id":"org-1","date":"2024-06-02","amount":500,"taken_by":"u1","method":"Bank",
		 "bank_account_id":"b1","category":"Sales","narrative":"Inv","status":"pending",
		 "profiles":{"full_name":"Owner"},"bank_accounts":{"bank_name":"HDFC"}},
		{"id":"r2","organization_id":"org-1","date":"2024-06-01","amount":"20.50","taken_by":"u9","method":"Cash",
		 "bank_account_id":null,"category":"Other","narrative":"","profiles":null,"bank_accounts":null}
	]`))
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	got := suite.store.ListRevenue(suite.ctx, "org-1", domain.Period{From: from, To: from.AddDate(0, 0, 29)})

	suite.Require().Len(got, 2)
	suite.Equal("Owner", got[0].TakenByName)
	suite.Require().NotNil(got[0].BankName)
	suite.Equal("HDFC", *got[0].BankName)
	suite.Equal("pending", got[0].Status)
	suite.Equal("Unknown", got[1].TakenByName)
	suite.Nil(got[1].BankName)
	suite.True(got[1].Amount.Equal(decimal.RequireFromString("20.50")))

	q, err := url.ParseQuery(suite.fake.byPath("GET", "ent_revenue")[0].Query)
	suite.Require().NoError(err)
	suite.Equal("eq.org-1", q.Get("organization_id"))
	suite.Equal("(date.gte.2024-06-01,date.lte.2024-06-30)", q.Get("and"))
	suite.Equal("date.desc.nullslast", q.Get("order"))
}

func (suite *CloudStoreTestSuite) TestListExpenses_OpenEndedPeriod() {
	suite.fake.on("GET", "ent_expenses", jsonReply(200, `[]`))
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	suite.Empty(suite.store.ListExpenses(suite.ctx, "org-1", domain.Period{From: from}))

	q, err := url.ParseQuery(suite.fake.byPath("GET", "ent_expenses")[0].Query)
	suite.Require().NoError(err)
	suite.Equal("gte.2024-06-01", q.Get("date"))
	suite.Empty(q.Get("and"))
}

func (suite *CloudStoreTestSuite) TestAddMember_UpsertsOnMembershipKey() {
	suite.fake.on("POST", "ent_members", jsonReply(201, ``))

	suite.True(suite.store.AddMember(suite.ctx, "org-1", "u2", domain.RoleMember))

	reqs := suite.fake.byPath("POST", "ent_members")
	suite.Require().Len(reqs, 1)
	q, err := url.ParseQuery(reqs[0].Query)
	suite.Require().NoError(err)
	suite.Equal("organization_id,user_id", q.Get("on_conflict"))
	suite.Equal("resolution=merge-duplicates,return=minimal", reqs[0].Header.Get("Prefer"))
	suite.JSONEq(`{"organization_id":"org-1","user_id":"u2","role":"member"}`, reqs[0].Body)
}

func (suite *CloudStoreTestSuite) TestAddMember_RejectedWrite() {
	suite.fake.on("POST", "ent_members", jsonReply(403, `{"code":"42501","message":"permission denied"}`))

	suite.False(suite.store.AddMember(suite.ctx, "org-1", "u2", domain.RoleMember))
}

func (suite *CloudStoreTestSuite) bankEntry() domain.LedgerEntry {
	bank := "b1"
	return domain.LedgerEntry{
		Date:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(500),
		TakenBy:       "u1",
		Method:        domain.MethodBank,
		BankAccountID: &bank,
		Category:      "Sales",
		Narrative:     "Invoice 42",
	}
}

func (suite *CloudStoreTestSuite) TestAddRevenue_MirrorsBankPayment() {
	suite.fake.on("POST", "ent_revenue", jsonReply(201, ``))
	suite.fake.on("POST", "expenses", jsonReply(201, ``))

	res := suite.store.AddRevenue(suite.ctx, "org-1", suite.bankEntry())

	suite.True(res.OK)
	suite.Equal(domain.MirrorWritten, res.Mirror)

	mirrors := suite.fake.byPath("POST", "expenses")
	suite.Require().Len(mirrors, 1)
	var txn map[string]any
	suite.Require().NoError(json.Unmarshal([]byte(mirrors[0].Body), &txn))
	suite.Equal("Enterprise Income", txn["category"])
	suite.Equal("Enterprise Revenue: Invoice 42", txn["description"])
	suite.Equal("income", txn["type"])
	suite.Equal("u1", txn["user_id"])
	suite.Equal("b1", txn["bank_account_id"])
}

func (suite *CloudStoreTestSuite) TestAddExpense_MirrorFailureKeepsPrimary() {
	suite.fake.on("POST", "ent_expenses", jsonReply(201, ``))
	suite.fake.on("POST", "expenses", jsonReply(500, `{"message":"down"}`))

	res := suite.store.AddExpense(suite.ctx, "org-1", suite.bankEntry())

	suite.True(res.OK)
	suite.Equal(domain.MirrorFailed, res.Mirror)
	suite.Error(res.MirrorErr)
}

func (suite *CloudStoreTestSuite) TestAddExpense_PrimaryFailure() {
	suite.fake.on("POST", "ent_expenses", jsonReply(400, `{"message":"bad"}`))

	res := suite.store.AddExpense(suite.ctx, "org-1", suite.bankEntry())

	suite.False(res.OK)
	suite.Empty(suite.fake.byPath("POST", "expenses"))
}

func (suite *CloudStoreTestSuite) TestAddExpense_CashNotMirrored() {
	suite.fake.on("POST", "ent_expenses", jsonReply(201, ``))
	entry := suite.bankEntry()
	entry.BankAccountID = nil
	entry.Method = domain.MethodCash

	res := suite.store.AddExpense(suite.ctx, "org-1", entry)

	suite.True(res.OK)
	suite.Equal(domain.MirrorSkipped, res.Mirror)
	suite.Empty(suite.fake.byPath("POST", "expenses"))
}

func (suite *CloudStoreTestSuite) TestEnterpriseOnlyEntitiesAreEmpty() {
	suite.Equal("", suite.store.ProvisionBusinessOrg(suite.ctx, "u1", "Acme"))
	suite.Empty(suite.store.ListEnterpriseBanks(suite.ctx, "u1"))
	suite.False(suite.store.AddEnterpriseBank(suite.ctx, domain.EnterpriseBankAccount{}))
	suite.Nil(suite.store.GetBusinessCredentials(suite.ctx, "u1", "Acme"))
	suite.Nil(suite.store.VerifyBusinessEmail(suite.ctx, "tok"))
	suite.Equal(domain.BackendCloud, suite.store.Backend())
}

func (suite *CloudStoreTestSuite) TestLookupProfileByEmail() {
	suite.fake.on("GET", "profiles", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("email") == "eq.owner@acme.test" {
			jsonReply(200, `[{"id":"cloud-u1","full_name":"Owner","email":"owner@acme.test"}]`)(w, r)
			return
		}
		jsonReply(200, `[]`)(w, r)
	})

	u, err := suite.store.LookupProfileByEmail(suite.ctx, "owner@acme.test")
	suite.Require().NoError(err)
	suite.Equal("cloud-u1", u.ID)

	u, err = suite.store.LookupProfileByEmail(suite.ctx, "nobody@acme.test")
	suite.NoError(err)
	suite.Nil(u)
}

const holdingJSON = `[{"id":"hp-1","organization_id":"org-1","recorded_by":"u1","name":"Acme","type":"receivable",
	"amount":1000,"outstanding_amount":%s,"expected_date":null,"contact":"","narrative":"",
	"is_settled":false,"settlements":[]}]`

func (suite *CloudStoreTestSuite) TestSettleHoldingPayment_ConditionalPatch() {
	suite.fake.on("GET", "ent_holding_payments", jsonReply(200, strings.Replace(holdingJSON, "%s", "1000", 1)))
	suite.fake.on("PATCH", "ent_holding_payments", jsonReply(200, `[{"id":"hp-1","organization_id":"org-1",
		"recorded_by":"u1","name":"Acme","type":"receivable","amount":1000,"outstanding_amount":600,
		"is_settled":false,"settlements":[{"amount":"400","date":"2024-03-05","full":false,"settled_by":"u1"}]}]`))

	hp, err := suite.store.SettleHoldingPayment(suite.ctx, "org-1", "hp-1", domain.SettlementRequest{
		Amount: decimal.NewFromInt(400), Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), SettledBy: "u1",
	})

	suite.Require().NoError(err)
	suite.True(hp.Outstanding.Equal(decimal.NewFromInt(600)))
	suite.False(hp.IsSettled)

	patch := suite.fake.byPath("PATCH", "ent_holding_payments")[0]
	suite.Contains(patch.Query, "outstanding_amount=eq.1000")
	suite.Contains(patch.Query, "is_settled=is.false")
	suite.Equal("return=representation", patch.Header.Get("Prefer"))
}

func (suite *CloudStoreTestSuite) TestSettleHoldingPayment_LostRaceIsConflict() {
	suite.fake.on("GET", "ent_holding_payments", jsonReply(200, strings.Replace(holdingJSON, "%s", "1000", 1)))
	suite.fake.on("PATCH", "ent_holding_payments", jsonReply(200, `[]`))

	_, err := suite.store.SettleHoldingPayment(suite.ctx, "org-1", "hp-1", domain.SettlementRequest{Amount: decimal.NewFromInt(400)})

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CloudStoreTestSuite) TestSettleHoldingPayment_OverSettlement() {
	suite.fake.on("GET", "ent_holding_payments", jsonReply(200, strings.Replace(holdingJSON, "%s", "600", 1)))

	_, err := suite.store.SettleHoldingPayment(suite.ctx, "org-1", "hp-1", domain.SettlementRequest{Amount: decimal.NewFromInt(700)})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Empty(suite.fake.byPath("PATCH", "ent_holding_payments"))
}

func (suite *CloudStoreTestSuite) TestSettleHoldingPayment_NotFound() {
	suite.fake.on("GET", "ent_holding_payments", jsonReply(200, `[]`))

	_, err := suite.store.SettleHoldingPayment(suite.ctx, "org-1", "missing", domain.SettlementRequest{Full: true})

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CloudStoreTestSuite) TestListCategories_MergesCustom() {
	suite.fake.on("GET", "user_categories", jsonReply(200, `[{"name":"Rent"},{"name":"Food"},{"name":"Gifts"}]`))

	cats := suite.store.ListCategories(suite.ctx, "u1")

	suite.Len(cats, 14)
	suite.Equal([]string{"Rent", "Gifts"}, cats[12:])
}

func TestCloudStoreTestSuite(t *testing.T) {
	suite.Run(t, new(CloudStoreTestSuite))
}
