package auth_test

import (
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/cloudnative-amadeus/extrahours/internal"
	"github.com/cloudnative-amadeus/extrahours/internal/auth"
)

var _ = Describe("Guard", func() {
	var (
		guard    *auth.Guard
		admin    *auth.User
		employee *auth.User
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		guard = auth.NewGuard("admin@admin.com", logger)

		admin = &auth.User{ID: 1, Email: "admin@admin.com", Role: auth.RoleAdministrator}
		employee = &auth.User{ID: 10, Email: "alice@example.com", Role: auth.RoleEmployee}
	})

	Describe("Authorize", func() {
		DescribeTable("the static permission table",
			func(role string, action auth.Action, allowed bool) {
				user := &auth.User{ID: 99, Role: role}
				err := guard.Authorize(user, action)
				if allowed {
					Expect(err).ToNot(HaveOccurred())
				} else {
					Expect(err).To(MatchError(apperrors.ErrInsufficientRole))
				}
			},
			Entry("administrator may approve", auth.RoleAdministrator, auth.ActionApprove, true),
			Entry("administrator may reject", auth.RoleAdministrator, auth.ActionReject, true),
			Entry("administrator may create users", auth.RoleAdministrator, auth.ActionCreateUser, true),
			Entry("administrator may delete users", auth.RoleAdministrator, auth.ActionDeleteUser, true),
			Entry("administrator may view all", auth.RoleAdministrator, auth.ActionViewAll, true),
			Entry("administrator may not use employee create", auth.RoleAdministrator, auth.ActionCreate, false),
			Entry("employee may create", auth.RoleEmployee, auth.ActionCreate, true),
			Entry("employee may edit own", auth.RoleEmployee, auth.ActionEditOwn, true),
			Entry("employee may delete own", auth.RoleEmployee, auth.ActionDeleteOwn, true),
			Entry("employee may view own", auth.RoleEmployee, auth.ActionViewOwn, true),
			Entry("employee may not approve", auth.RoleEmployee, auth.ActionApprove, false),
			Entry("employee may not reject", auth.RoleEmployee, auth.ActionReject, false),
			Entry("employee may not delete users", auth.RoleEmployee, auth.ActionDeleteUser, false),
			Entry("employee may not view all", auth.RoleEmployee, auth.ActionViewAll, false),
			Entry("unknown role gets nothing", "contractor", auth.ActionCreate, false),
		)

		It("should deny a nil user", func() {
			err := guard.Authorize(nil, auth.ActionCreate)

			Expect(err).To(MatchError(apperrors.ErrInsufficientRole))
		})
	})

	Describe("AuthorizeUserDeletion", func() {
		It("should allow an administrator to delete a regular user", func() {
			err := guard.AuthorizeUserDeletion(admin, "alice@example.com")

			Expect(err).ToNot(HaveOccurred())
		})

		It("should deny an employee", func() {
			err := guard.AuthorizeUserDeletion(employee, "bob@example.com")

			Expect(err).To(MatchError(apperrors.ErrInsufficientRole))
		})

		It("should deny deleting the principal administrator, even for an administrator", func() {
			err := guard.AuthorizeUserDeletion(admin, "admin@admin.com")

			Expect(err).To(MatchError(apperrors.ErrProtectedUser))
		})

		It("should match the protected email case-insensitively", func() {
			err := guard.AuthorizeUserDeletion(admin, "Admin@Admin.COM")

			Expect(err).To(MatchError(apperrors.ErrProtectedUser))
		})
	})
})
