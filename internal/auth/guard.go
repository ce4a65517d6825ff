package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/cloudnative-amadeus/extrahours/internal"
)

// Action names a capability a caller may invoke. The table below is static:
// roles never gain or lose actions at runtime.
type Action string

const (
	ActionApprove    Action = "approve"
	ActionReject     Action = "reject"
	ActionCreateUser Action = "create-user"
	ActionDeleteUser Action = "delete-user"
	ActionViewAll    Action = "view-all"
	ActionCreate     Action = "create"
	ActionEditOwn    Action = "edit-own"
	ActionDeleteOwn  Action = "delete-own"
	ActionViewOwn    Action = "view-own"
)

var rolePermissions = map[string][]Action{
	RoleAdministrator: {ActionApprove, ActionReject, ActionCreateUser, ActionDeleteUser, ActionViewAll},
	RoleEmployee:      {ActionCreate, ActionEditOwn, ActionDeleteOwn, ActionViewOwn},
}

// Guard maps an authenticated user to the actions they may invoke. Ownership
// checks (is this caller the resource owner?) live in the workflow engine,
// not here.
type Guard struct {
	principalAdminEmail string
	logger              *slog.Logger
}

func NewGuard(principalAdminEmail string, logger *slog.Logger) *Guard {
	return &Guard{
		principalAdminEmail: strings.ToLower(principalAdminEmail),
		logger:              logger,
	}
}

// Authorize returns nil when the user's role grants the action.
func (g *Guard) Authorize(user *User, action Action) error {
	if user == nil {
		return internal.ErrInsufficientRole
	}
	for _, allowed := range rolePermissions[user.Role] {
		if allowed == action {
			return nil
		}
	}
	return internal.ErrInsufficientRole
}

// AuthorizeUserDeletion enforces the one unconditional rule in the table:
// the principal administrator account is exempt from deletion by anyone,
// including other administrators.
func (g *Guard) AuthorizeUserDeletion(user *User, targetEmail string) error {
	if strings.EqualFold(targetEmail, g.principalAdminEmail) {
		g.logger.Warn("denied attempt to delete the principal administrator",
			"caller_id", callerID(user),
			"target_email", targetEmail)
		return internal.ErrProtectedUser
	}
	return g.Authorize(user, ActionDeleteUser)
}

// PrincipalAdminEmail exposes the reserved email for seeding and tests.
func (g *Guard) PrincipalAdminEmail() string {
	return g.principalAdminEmail
}

func callerID(user *User) int64 {
	if user == nil {
		return 0
	}
	return user.ID
}

// Require builds a chi middleware that rejects callers whose role does not
// grant the action.
func (g *Guard) Require(action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if err := g.Authorize(user, action); err != nil {
				g.logger.WarnContext(r.Context(), "access denied: insufficient role",
					"user_id", user.ID,
					"role", user.Role,
					"action", string(action))
				http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (g *Guard) RequireAdmin() func(http.Handler) http.Handler {
	return g.Require(ActionViewAll)
}
