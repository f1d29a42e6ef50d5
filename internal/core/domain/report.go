package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/enterprise_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

const (
	monthLayout    = "2006-01"
	burnRateMonths = 3
	// TrendMonths is the number of months shown on the dashboard trend.
	TrendMonths = 6
)

// DashboardKPIs are the headline figures of an organization.
type DashboardKPIs struct {
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetPL            decimal.Decimal `json:"net_pl"`
	PendingRevenue   decimal.Decimal `json:"pending_payments"`
	BurnRate         decimal.Decimal `json:"burn_rate"`
	MarginPct        string          `json:"margin_pct"`
	TotalInvestments decimal.Decimal `json:"total_investments"`
	IsProfit         bool            `json:"is_profit"`
}

// Trend holds per-month totals, oldest month first.
type Trend struct {
	Labels   []string          `json:"labels"`
	Revenue  []decimal.Decimal `json:"revenue"`
	Expenses []decimal.Decimal `json:"expenses"`
}

// SumEntries adds up the amounts of entries.
func SumEntries(entries []LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

func monthlyTotals(entries []LedgerEntry) map[string]decimal.Decimal {
	months := make(map[string]decimal.Decimal)
	for _, e := range entries {
		key := e.Date.Format(monthLayout)
		months[key] = months[key].Add(e.Amount)
	}
	return months
}

// ComputeKPIs derives the dashboard figures. Burn rate is the mean monthly
// expense over the latest three calendar months that have expenses. Margin is
// net P/L over revenue, "0.00%" when there is no revenue.
func ComputeKPIs(revenue, expenses []LedgerEntry, investments []Investment) DashboardKPIs {
	k := DashboardKPIs{
		TotalRevenue:     SumEntries(revenue),
		TotalExpenses:    SumEntries(expenses),
		PendingRevenue:   decimal.Zero,
		BurnRate:         decimal.Zero,
		MarginPct:        "0.00%",
		TotalInvestments: decimal.Zero,
	}
	k.NetPL = k.TotalRevenue.Sub(k.TotalExpenses)
	k.IsProfit = !k.NetPL.IsNegative()

	for _, r := range revenue {
		if r.Status == StatusPending {
			k.PendingRevenue = k.PendingRevenue.Add(r.Amount)
		}
	}
	for _, i := range investments {
		k.TotalInvestments = k.TotalInvestments.Add(i.Amount)
	}

	if months := monthlyTotals(expenses); len(months) > 0 {
		keys := make([]string, 0, len(months))
		for m := range months {
			keys = append(keys, m)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(keys)))
		if len(keys) > burnRateMonths {
			keys = keys[:burnRateMonths]
		}
		sum := decimal.Zero
		for _, m := range keys {
			sum = sum.Add(months[m])
		}
		k.BurnRate = sum.Div(decimal.NewFromInt(int64(len(keys)))).Round(2)
	}

	if k.TotalRevenue.IsPositive() {
		margin := k.NetPL.Div(k.TotalRevenue).Mul(decimal.NewFromInt(100))
		k.MarginPct = margin.StringFixed(2) + "%"
	}
	return k
}

// ComputeTrend returns revenue and expense totals for the latest n months that
// have any activity.
func ComputeTrend(revenue, expenses []LedgerEntry, n int) Trend {
	rev := monthlyTotals(revenue)
	exp := monthlyTotals(expenses)

	seen := make(map[string]struct{}, len(rev)+len(exp))
	for m := range rev {
		seen[m] = struct{}{}
	}
	for m := range exp {
		seen[m] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for m := range seen {
		labels = append(labels, m)
	}
	sort.Strings(labels)
	if len(labels) > n {
		labels = labels[len(labels)-n:]
	}

	t := Trend{
		Labels:   labels,
		Revenue:  make([]decimal.Decimal, len(labels)),
		Expenses: make([]decimal.Decimal, len(labels)),
	}
	for i, m := range labels {
		t.Revenue[i] = rev[m]
		t.Expenses[i] = exp[m]
	}
	return t
}

// CashflowPeriod names a preset range for the combined cash-flow view.
type CashflowPeriod string

const (
	PeriodThisMonth CashflowPeriod = "this_month"
	PeriodLastMonth CashflowPeriod = "last_month"
	PeriodThisYear  CashflowPeriod = "this_year"
	PeriodCustom    CashflowPeriod = "custom"
)

// ResolvePeriod turns a preset (or custom bounds) into a Period relative to
// today. Custom bounds are optional YYYY-MM-DD dates. An empty preset means
// this_month.
func ResolvePeriod(name CashflowPeriod, from, to string, today time.Time) (Period, error) {
	y, m, d := today.Date()
	loc := today.Location()
	startOfMonth := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch name {
	case "", PeriodThisMonth:
		return Period{From: startOfMonth, To: day}, nil
	case PeriodLastMonth:
		lastDay := startOfMonth.AddDate(0, 0, -1)
		return Period{From: time.Date(lastDay.Year(), lastDay.Month(), 1, 0, 0, 0, 0, loc), To: lastDay}, nil
	case PeriodThisYear:
		return Period{From: time.Date(y, time.January, 1, 0, 0, 0, 0, loc), To: day}, nil
	case PeriodCustom:
		var p Period
		var err error
		if from != "" {
			if p.From, err = time.ParseInLocation(DateLayout, from, loc); err != nil {
				return Period{}, fmt.Errorf("%w: invalid start date %q", apperrors.ErrValidation, from)
			}
		}
		if to != "" {
			if p.To, err = time.ParseInLocation(DateLayout, to, loc); err != nil {
				return Period{}, fmt.Errorf("%w: invalid end date %q", apperrors.ErrValidation, to)
			}
		}
		if p.HasFrom() && p.HasTo() && p.To.Before(p.From) {
			return Period{}, fmt.Errorf("%w: end date before start date", apperrors.ErrValidation)
		}
		return p, nil
	default:
		return Period{}, fmt.Errorf("%w: unknown period %q", apperrors.ErrValidation, name)
	}
}

// CashflowRow is a ledger entry tagged with the ledger it came from.
type CashflowRow struct {
	Type LedgerKind `json:"type"`
	LedgerEntry
}

// Cashflow is the combined, newest-first view of both ledgers.
type Cashflow struct {
	Rows          []CashflowRow   `json:"ledger"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
}

// MergeCashflow combines revenue and expenses, newest first. On equal dates
// revenue precedes expenses.
func MergeCashflow(revenue, expenses []LedgerEntry) Cashflow {
	rows := make([]CashflowRow, 0, len(revenue)+len(expenses))
	for _, r := range revenue {
		rows = append(rows, CashflowRow{Type: LedgerRevenue, LedgerEntry: r})
	}
	for _, e := range expenses {
		rows = append(rows, CashflowRow{Type: LedgerExpense, LedgerEntry: e})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})
	return Cashflow{
		Rows:          rows,
		TotalIncome:   SumEntries(revenue),
		TotalExpenses: SumEntries(expenses),
	}
}
