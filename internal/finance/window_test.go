package finance_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"spendsmart/internal/finance"
	"spendsmart/internal/models"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("PeriodWindow", func() {
	DescribeTable("derives the end of the window from the start date",
		func(start time.Time, period models.BudgetPeriod, wantEnd time.Time) {
			w := finance.PeriodWindow(start, period)
			Expect(w.Start).To(Equal(start))
			Expect(w.End).To(Equal(wantEnd))
		},
		Entry("weekly adds seven days", day(2025, time.March, 10), models.BudgetPeriodWeekly, day(2025, time.March, 17)),
		Entry("weekly crosses a month boundary", day(2025, time.January, 28), models.BudgetPeriodWeekly, day(2025, time.February, 4)),
		Entry("monthly keeps the day of month", day(2025, time.March, 15), models.BudgetPeriodMonthly, day(2025, time.April, 15)),
		Entry("monthly carries Jan 31 over to Mar 3", day(2025, time.January, 31), models.BudgetPeriodMonthly, day(2025, time.March, 3)),
		Entry("monthly carries Jan 31 over to Mar 2 in a leap year", day(2024, time.January, 31), models.BudgetPeriodMonthly, day(2024, time.March, 2)),
		Entry("monthly rolls December into the next year", day(2025, time.December, 5), models.BudgetPeriodMonthly, day(2026, time.January, 5)),
		Entry("yearly advances the year", day(2025, time.June, 1), models.BudgetPeriodYearly, day(2026, time.June, 1)),
		Entry("yearly carries Feb 29 over to Mar 1", day(2024, time.February, 29), models.BudgetPeriodYearly, day(2025, time.March, 1)),
	)

	It("adds exactly seven days for weekly windows, whatever the time of day", func() {
		start := time.Date(2025, time.October, 1, 13, 45, 12, 0, time.UTC)
		w := finance.PeriodWindow(start, models.BudgetPeriodWeekly)
		Expect(w.End.Sub(w.Start)).To(Equal(7 * 24 * time.Hour))
	})

	It("normalises the start date to UTC", func() {
		loc := time.FixedZone("UTC+2", 2*60*60)
		start := time.Date(2025, time.May, 1, 2, 0, 0, 0, loc)
		w := finance.PeriodWindow(start, models.BudgetPeriodMonthly)
		Expect(w.Start.Location()).To(Equal(time.UTC))
		Expect(w.Start).To(Equal(time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)))
		Expect(w.End).To(Equal(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)))
	})

	It("includes both bounds", func() {
		w := finance.PeriodWindow(day(2025, time.March, 1), models.BudgetPeriodMonthly)
		Expect(w.Contains(w.Start)).To(BeTrue())
		Expect(w.Contains(w.End)).To(BeTrue())
		Expect(w.Contains(w.Start.Add(-time.Nanosecond))).To(BeFalse())
		Expect(w.Contains(w.End.Add(time.Nanosecond))).To(BeFalse())
	})
})

var _ = Describe("CurrentWindow", func() {
	It("returns the anchored window while now is inside it", func() {
		start := day(2025, time.March, 1)
		w := finance.CurrentWindow(start, models.BudgetPeriodMonthly, day(2025, time.March, 20))
		Expect(w).To(Equal(finance.PeriodWindow(start, models.BudgetPeriodMonthly)))
	})

	It("returns the first window before the start date", func() {
		start := day(2025, time.March, 1)
		w := finance.CurrentWindow(start, models.BudgetPeriodWeekly, day(2025, time.January, 1))
		Expect(w.Start).To(Equal(start))
		Expect(w.End).To(Equal(day(2025, time.March, 8)))
	})

	DescribeTable("rolls forward by whole periods",
		func(start time.Time, period models.BudgetPeriod, now, wantStart, wantEnd time.Time) {
			w := finance.CurrentWindow(start, period, now)
			Expect(w.Start).To(Equal(wantStart))
			Expect(w.End).To(Equal(wantEnd))
			Expect(w.Contains(now)).To(BeTrue())
		},
		Entry("weekly", day(2025, time.January, 6), models.BudgetPeriodWeekly,
			day(2025, time.January, 22), day(2025, time.January, 20), day(2025, time.January, 27)),
		Entry("monthly", day(2025, time.January, 15), models.BudgetPeriodMonthly,
			day(2025, time.June, 2), day(2025, time.May, 15), day(2025, time.June, 15)),
		Entry("monthly from a month end", day(2025, time.January, 31), models.BudgetPeriodMonthly,
			day(2025, time.March, 10), day(2025, time.March, 3), day(2025, time.March, 31)),
		Entry("yearly", day(2020, time.July, 1), models.BudgetPeriodYearly,
			day(2025, time.February, 1), day(2024, time.July, 1), day(2025, time.July, 1)),
		Entry("exactly on a boundary starts the next window", day(2025, time.January, 1), models.BudgetPeriodMonthly,
			day(2025, time.March, 1), day(2025, time.March, 1), day(2025, time.April, 1)),
	)
})
