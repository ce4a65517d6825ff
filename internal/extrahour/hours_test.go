package extrahour_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	extrahourDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/extrahour"
	"github.com/cloudnative-amadeus/extrahours/internal/extrahour"
)

var _ = Describe("RoundHours", func() {
	DescribeTable("rounding worked duration to whole hours",
		func(hours float64, expected int) {
			Expect(extrahour.RoundHours(hours)).To(Equal(expected))
		},
		Entry("exact two hours", 2.0, 2),
		Entry("half rounds up", 0.5, 1),
		Entry("just under half rounds down", 0.49, 0),
		Entry("one and a half rounds up", 1.5, 2),
		Entry("just over one rounds down", 1.2, 1),
		Entry("zero duration", 0.0, 0),
		Entry("negative duration clamps to zero", -1.0, 0),
	)
})

var _ = Describe("ExtraHour entity", func() {
	newRow := func(start, end string) *extrahourDatamodel.ExtraHour {
		day := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)
		parse := func(clock string) time.Time {
			t, err := time.Parse("15:04", clock)
			Expect(err).ToNot(HaveOccurred())
			return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
		}
		return &extrahourDatamodel.ExtraHour{
			ID:              1,
			UserID:          10,
			Date:            day,
			StartTime:       parse(start),
			EndTime:         parse(end),
			ExtraHourTypeID: 1,
			Status:          extrahour.StatusPending,
		}
	}

	It("should compute hours when mapping from the data model", func() {
		eh := extrahour.FromDataModel(newRow("18:00", "20:00"))
		Expect(eh.Hours).To(Equal(2))
	})

	It("should round a thirty minute shift up to one hour", func() {
		eh := extrahour.FromDataModel(newRow("09:00", "09:30"))
		Expect(eh.Hours).To(Equal(1))
	})

	It("should skip nil rows when mapping slices", func() {
		rows := []*extrahourDatamodel.ExtraHour{newRow("18:00", "19:00"), nil, newRow("20:00", "21:00")}
		out := extrahour.FromDataModelSlice(rows)
		Expect(out).To(HaveLen(2))
	})

	It("should report pending and ownership", func() {
		eh := extrahour.FromDataModel(newRow("18:00", "20:00"))
		Expect(eh.IsPending()).To(BeTrue())
		Expect(eh.IsOwnedBy(10)).To(BeTrue())
		Expect(eh.IsOwnedBy(11)).To(BeFalse())
	})
})
