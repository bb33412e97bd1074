package finance_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"spendsmart/internal/finance"
	"spendsmart/internal/models"
)

type stubLookup struct {
	expenses []models.Expense
	err      error

	gotOwner    string
	gotCategory models.Category
	gotWindow   finance.Window
}

func (s *stubLookup) ExpensesInWindow(_ context.Context, ownerID string, category models.Category, window finance.Window) ([]models.Expense, error) {
	s.gotOwner = ownerID
	s.gotCategory = category
	s.gotWindow = window
	return s.expenses, s.err
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(owner string, category models.Category, amount string, date time.Time) models.Expense {
	return models.Expense{OwnerID: owner, Category: category, Amount: dec(amount), Date: date}
}

var _ = Describe("ComputeStatus", func() {
	var (
		ctx    context.Context
		budget models.Budget
	)

	BeforeEach(func() {
		ctx = context.Background()
		budget = models.Budget{
			Base:      models.Base{ID: "budget-1"},
			OwnerID:   "owner-1",
			Category:  models.CategoryFood,
			Amount:    dec("200"),
			Period:    models.BudgetPeriodMonthly,
			StartDate: day(2025, time.March, 1),
		}
	})

	It("queries the owner's expenses of the budget category inside the anchored window", func() {
		lookup := &stubLookup{}
		_, err := finance.ComputeStatus(ctx, budget, lookup)
		Expect(err).NotTo(HaveOccurred())

		Expect(lookup.gotOwner).To(Equal("owner-1"))
		Expect(lookup.gotCategory).To(Equal(models.CategoryFood))
		Expect(lookup.gotWindow.Start).To(Equal(day(2025, time.March, 1)))
		Expect(lookup.gotWindow.End).To(Equal(day(2025, time.April, 1)))
	})

	It("reports an untouched budget when nothing matches", func() {
		status, err := finance.ComputeStatus(ctx, budget, &stubLookup{})
		Expect(err).NotTo(HaveOccurred())

		Expect(status.Spent.IsZero()).To(BeTrue())
		Expect(status.Remaining.Equal(dec("200"))).To(BeTrue())
		Expect(status.Percentage).To(BeZero())
		Expect(status.IsOverBudget).To(BeFalse())
		Expect(status.Budget.ID).To(Equal("budget-1"))
	})

	It("sums matching expenses", func() {
		lookup := &stubLookup{expenses: []models.Expense{
			expense("owner-1", models.CategoryFood, "80", day(2025, time.March, 3)),
			expense("owner-1", models.CategoryFood, "20.50", day(2025, time.March, 20)),
		}}
		status, err := finance.ComputeStatus(ctx, budget, lookup)
		Expect(err).NotTo(HaveOccurred())

		Expect(status.Spent.Equal(dec("100.5"))).To(BeTrue())
		Expect(status.Remaining.Equal(dec("99.5"))).To(BeTrue())
		Expect(status.Percentage).To(BeNumerically("~", 50.25, 1e-9))
		Expect(status.IsOverBudget).To(BeFalse())
	})

	It("flags overspending, clamps the percentage and lets remaining go negative", func() {
		lookup := &stubLookup{expenses: []models.Expense{
			expense("owner-1", models.CategoryFood, "150", day(2025, time.March, 5)),
			expense("owner-1", models.CategoryFood, "100", day(2025, time.March, 6)),
		}}
		status, err := finance.ComputeStatus(ctx, budget, lookup)
		Expect(err).NotTo(HaveOccurred())

		Expect(status.IsOverBudget).To(BeTrue())
		Expect(status.Percentage).To(Equal(100.0))
		Expect(status.Remaining.Equal(dec("-50"))).To(BeTrue())
	})

	It("is not over budget when spending exactly meets the limit", func() {
		lookup := &stubLookup{expenses: []models.Expense{
			expense("owner-1", models.CategoryFood, "200", day(2025, time.March, 5)),
		}}
		status, err := finance.ComputeStatus(ctx, budget, lookup)
		Expect(err).NotTo(HaveOccurred())

		Expect(status.IsOverBudget).To(BeFalse())
		Expect(status.Percentage).To(Equal(100.0))
		Expect(status.Remaining.IsZero()).To(BeTrue())
	})

	It("propagates lookup failures", func() {
		boom := errors.New("store down")
		_, err := finance.ComputeStatus(ctx, budget, &stubLookup{err: boom})
		Expect(err).To(MatchError(boom))
	})

	It("uses the rolling window for the current status", func() {
		lookup := &stubLookup{}
		status, err := finance.ComputeCurrentStatus(ctx, budget, lookup, day(2025, time.May, 10))
		Expect(err).NotTo(HaveOccurred())

		Expect(status.Start).To(Equal(day(2025, time.May, 1)))
		Expect(status.End).To(Equal(day(2025, time.June, 1)))
		Expect(lookup.gotWindow).To(Equal(status.Window))
	})
})

var _ = Describe("NewStatus", func() {
	budget := models.Budget{
		OwnerID:   "owner-1",
		Category:  models.CategoryTransport,
		Amount:    dec("50"),
		Period:    models.BudgetPeriodWeekly,
		StartDate: day(2025, time.March, 3),
	}
	window := finance.PeriodWindow(budget.StartDate, budget.Period)

	It("ignores expenses outside the window, owner or category", func() {
		status := finance.NewStatus(budget, window, []models.Expense{
			expense("owner-1", models.CategoryTransport, "10", day(2025, time.March, 3)),
			expense("owner-1", models.CategoryTransport, "5", day(2025, time.March, 10)),
			expense("owner-1", models.CategoryTransport, "99", day(2025, time.March, 11)),
			expense("owner-2", models.CategoryTransport, "99", day(2025, time.March, 4)),
			expense("owner-1", models.CategoryFood, "99", day(2025, time.March, 4)),
		})
		Expect(status.Spent.Equal(dec("15"))).To(BeTrue())
	})

	Context("with a zero limit", func() {
		zero := budget
		zero.Amount = decimal.Zero

		It("reports 0% when nothing is spent", func() {
			status := finance.NewStatus(zero, window, nil)
			Expect(status.Percentage).To(BeZero())
			Expect(status.IsOverBudget).To(BeFalse())
		})

		It("reports 100% and over budget once anything is spent", func() {
			status := finance.NewStatus(zero, window, []models.Expense{
				expense("owner-1", models.CategoryTransport, "0.01", day(2025, time.March, 4)),
			})
			Expect(status.Percentage).To(Equal(100.0))
			Expect(status.IsOverBudget).To(BeTrue())
			Expect(status.Remaining.Equal(dec("-0.01"))).To(BeTrue())
		})
	})
})
