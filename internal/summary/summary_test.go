package summary_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/cloudnative-amadeus/extrahours/internal"
	"github.com/cloudnative-amadeus/extrahours/internal/auth"
	extrahourDatamodel "github.com/cloudnative-amadeus/extrahours/internal/core/datamodel/extrahour"
	"github.com/cloudnative-amadeus/extrahours/internal/extrahour"
	"github.com/cloudnative-amadeus/extrahours/internal/summary"
)

func TestSummary(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Summary Suite")
}

func request(userID int64, status string, hours int) *extrahour.ExtraHour {
	day := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)
	return &extrahour.ExtraHour{
		UserID:    userID,
		Date:      day,
		StartTime: day.Add(18 * time.Hour),
		EndTime:   day.Add(time.Duration(18+hours) * time.Hour),
		Status:    status,
		Hours:     hours,
	}
}

var _ = Describe("Aggregate", func() {
	It("should total hours across statuses and count distinct employees", func() {
		requests := []*extrahour.ExtraHour{
			request(10, extrahour.StatusApproved, 2),
			request(10, extrahour.StatusPending, 3),
			request(11, extrahour.StatusRejected, 1),
		}

		s := summary.Aggregate(requests)

		Expect(s.TotalHours).To(Equal(6))
		Expect(s.ApprovedHours).To(Equal(2))
		Expect(s.PendingHours).To(Equal(3))
		Expect(s.EmployeeCount).To(Equal(2))
	})

	It("should skip nil entries", func() {
		requests := []*extrahour.ExtraHour{
			request(10, extrahour.StatusApproved, 2),
			nil,
			request(11, extrahour.StatusPending, 1),
		}

		s := summary.Aggregate(requests)

		Expect(s.TotalHours).To(Equal(3))
		Expect(s.EmployeeCount).To(Equal(2))
	})

	It("should skip entries with a non-positive duration", func() {
		malformed := request(12, extrahour.StatusApproved, 2)
		malformed.EndTime = malformed.StartTime

		requests := []*extrahour.ExtraHour{
			request(10, extrahour.StatusApproved, 2),
			malformed,
		}

		s := summary.Aggregate(requests)

		Expect(s.TotalHours).To(Equal(2))
		Expect(s.EmployeeCount).To(Equal(1))
	})

	It("should use rounded hours", func() {
		half := request(10, extrahour.StatusApproved, 0)
		half.EndTime = half.StartTime.Add(30 * time.Minute)

		s := summary.Aggregate([]*extrahour.ExtraHour{half})

		Expect(s.TotalHours).To(Equal(1))
		Expect(s.ApprovedHours).To(Equal(1))
	})

	It("should return zero values for an empty set", func() {
		s := summary.Aggregate(nil)

		Expect(s.TotalHours).To(BeZero())
		Expect(s.EmployeeCount).To(BeZero())
	})
})

type mockRequestSource struct {
	rows    []*extrahourDatamodel.ExtraHour
	listErr error
}

func (m *mockRequestSource) List(ctx context.Context, filter extrahour.ListFilter) ([]*extrahourDatamodel.ExtraHour, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.rows, nil
}

var _ = Describe("SummaryService", func() {
	var (
		service *summary.Service
		source  *mockRequestSource

		admin    *auth.User
		employee *auth.User
	)

	BeforeEach(func() {
		day := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)
		source = &mockRequestSource{
			rows: []*extrahourDatamodel.ExtraHour{
				{
					ID: 1, UserID: 10, Date: day,
					StartTime: day.Add(18 * time.Hour), EndTime: day.Add(20 * time.Hour),
					Status: extrahour.StatusApproved,
				},
				{
					ID: 2, UserID: 11, Date: day,
					StartTime: day.Add(9 * time.Hour), EndTime: day.Add(9*time.Hour + 30*time.Minute),
					Status: extrahour.StatusPending,
				},
			},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = summary.NewService(source, logger)

		admin = &auth.User{ID: 1, Email: "admin@admin.com", Role: auth.RoleAdministrator}
		employee = &auth.User{ID: 10, Email: "alice@example.com", Role: auth.RoleEmployee}
	})

	It("should report totals for an administrator", func() {
		report, err := service.Report(context.Background(), admin)

		Expect(err).ToNot(HaveOccurred())
		Expect(report.TotalHours).To(Equal(3))
		Expect(report.ApprovedHours).To(Equal(2))
		Expect(report.PendingHours).To(Equal(1))
		Expect(report.EmployeeCount).To(Equal(2))
	})

	It("should deny an employee", func() {
		_, err := service.Report(context.Background(), employee)

		Expect(err).To(MatchError(apperrors.ErrInsufficientRole))
	})
})
