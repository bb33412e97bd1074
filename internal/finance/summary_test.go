package finance_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"spendsmart/internal/finance"
	"spendsmart/internal/models"
)

var _ = Describe("Summarize", func() {
	It("returns zeroes and an empty breakdown for no expenses", func() {
		s := finance.Summarize(nil)

		Expect(s.Total.IsZero()).To(BeTrue())
		Expect(s.Count).To(BeZero())
		Expect(s.ByCategory).NotTo(BeNil())
		Expect(s.ByCategory).To(BeEmpty())
		Expect(s.Average.IsZero()).To(BeTrue())
	})

	It("totals, groups and averages", func() {
		date := day(2025, time.April, 1)
		s := finance.Summarize([]models.Expense{
			expense("owner-1", models.CategoryFood, "10", date),
			expense("owner-1", models.CategoryFood, "20", date),
			expense("owner-1", models.CategoryTransport, "30", date),
		})

		Expect(s.Total.Equal(dec("60"))).To(BeTrue())
		Expect(s.Count).To(Equal(3))
		Expect(s.ByCategory).To(HaveLen(2))
		Expect(s.ByCategory[models.CategoryFood].Equal(dec("30"))).To(BeTrue())
		Expect(s.ByCategory[models.CategoryTransport].Equal(dec("30"))).To(BeTrue())
		Expect(s.Average.Equal(dec("20"))).To(BeTrue())
	})

	It("keeps decimal precision", func() {
		date := day(2025, time.April, 1)
		s := finance.Summarize([]models.Expense{
			expense("owner-1", models.CategoryBills, "0.10", date),
			expense("owner-1", models.CategoryBills, "0.20", date),
		})

		Expect(s.Total.Equal(dec("0.3"))).To(BeTrue())
		Expect(s.Average.Equal(dec("0.15"))).To(BeTrue())
	})

	It("reports a single category on its own", func() {
		s := finance.Summarize([]models.Expense{
			expense("owner-1", models.CategoryHealthcare, "12.5", day(2025, time.April, 1)),
		})
		Expect(s.ByCategory).To(HaveLen(1))
		Expect(s.ByCategory).To(HaveKey(models.CategoryHealthcare))
		Expect(s.Average.Equal(dec("12.5"))).To(BeTrue())
	})
})
