package auth_test

import (
	"strconv"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/cloudnative-amadeus/extrahours/internal"
	"github.com/cloudnative-amadeus/extrahours/internal/auth"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

const (
	testAccessSecret  = "0123456789abcdef0123456789abcdef"
	testRefreshSecret = "fedcba9876543210fedcba9876543210"
	testIssuer        = "extrahours-api"
	testAudience      = "extrahours-client"
)

type mockAuthRepository struct {
	users      map[string]*auth.User
	hashes     map[string]string
	idsByEmail map[string]int64
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		users:      make(map[string]*auth.User),
		hashes:     make(map[string]string),
		idsByEmail: make(map[string]int64),
	}
}

func (m *mockAuthRepository) addUser(id int64, email, password, role string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	Expect(err).ToNot(HaveOccurred())

	m.users[strconv.FormatInt(id, 10)] = &auth.User{ID: id, Email: email, Role: role}
	m.hashes[email] = string(hash)
	m.idsByEmail[email] = id
}

func (m *mockAuthRepository) GetCredentials(email string) (string, int64, error) {
	hash, exists := m.hashes[email]
	if !exists {
		return "", 0, apperrors.ErrUserNotFound
	}
	return hash, m.idsByEmail[email], nil
}

func (m *mockAuthRepository) GetUserWithRole(userID int64) (*auth.User, error) {
	user, exists := m.users[strconv.FormatInt(userID, 10)]
	if !exists {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func newGenerator(accessTTL, refreshTTL time.Duration) *auth.JWTTokenGenerator {
	return &auth.JWTTokenGenerator{
		AccessTokenSecret:  []byte(testAccessSecret),
		RefreshTokenSecret: []byte(testRefreshSecret),
		Issuer:             testIssuer,
		Audience:           testAudience,
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

var _ = Describe("AuthService", func() {
	var (
		service  *auth.Service
		mockRepo *mockAuthRepository
		tokens   *auth.JWTTokenGenerator
	)

	BeforeEach(func() {
		mockRepo = newMockAuthRepository()
		mockRepo.addUser(1, "admin@admin.com", "admin-password", auth.RoleAdministrator)
		mockRepo.addUser(10, "alice@example.com", "alice-password", auth.RoleEmployee)

		tokens = newGenerator(60*time.Minute, 7*24*time.Hour)
		service = auth.NewService(mockRepo, tokens)
	})

	Describe("Authenticate", func() {
		It("should issue a token pair for valid credentials", func() {
			pair, err := service.Authenticate(auth.LoginDTO{Email: "alice@example.com", Password: "alice-password"})

			Expect(err).ToNot(HaveOccurred())
			Expect(pair.AccessToken).ToNot(BeEmpty())
			Expect(pair.RefreshToken).ToNot(BeEmpty())
		})

		It("should embed subject, email and role in the access token", func() {
			pair, err := service.Authenticate(auth.LoginDTO{Email: "alice@example.com", Password: "alice-password"})
			Expect(err).ToNot(HaveOccurred())

			claims, err := service.ValidateAccessToken(pair.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.Subject).To(Equal("10"))
			Expect(claims.Email).To(Equal("alice@example.com"))
			Expect(claims.Role).To(Equal(auth.RoleEmployee))
		})

		It("should keep the refresh token subject-only", func() {
			pair, err := service.Authenticate(auth.LoginDTO{Email: "alice@example.com", Password: "alice-password"})
			Expect(err).ToNot(HaveOccurred())

			claims, err := tokens.ValidateRefreshToken(pair.RefreshToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.Subject).To(Equal("10"))
			Expect(claims.Email).To(BeEmpty())
			Expect(claims.Role).To(BeEmpty())
		})

		It("should return the same error for an unknown email and a wrong password", func() {
			_, unknownErr := service.Authenticate(auth.LoginDTO{Email: "nobody@example.com", Password: "whatever-password"})
			_, wrongErr := service.Authenticate(auth.LoginDTO{Email: "alice@example.com", Password: "wrong-password"})

			Expect(unknownErr).To(MatchError(apperrors.ErrInvalidCredentials))
			Expect(wrongErr).To(MatchError(apperrors.ErrInvalidCredentials))
		})

		It("should reject an empty login", func() {
			_, err := service.Authenticate(auth.LoginDTO{})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("RefreshTokens", func() {
		It("should rotate the pair from a valid refresh token", func() {
			pair, err := service.Authenticate(auth.LoginDTO{Email: "alice@example.com", Password: "alice-password"})
			Expect(err).ToNot(HaveOccurred())

			rotated, err := service.RefreshTokens(pair.RefreshToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(rotated.AccessToken).ToNot(BeEmpty())
			Expect(rotated.RefreshToken).ToNot(BeEmpty())

			claims, err := service.ValidateAccessToken(rotated.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.Role).To(Equal(auth.RoleEmployee))
		})

		It("should refuse an access token presented as a refresh token", func() {
			pair, err := service.Authenticate(auth.LoginDTO{Email: "alice@example.com", Password: "alice-password"})
			Expect(err).ToNot(HaveOccurred())

			// signed with the access secret, so the refresh validation fails
			_, err = service.RefreshTokens(pair.AccessToken)

			Expect(err).To(MatchError(apperrors.ErrInvalidToken))
		})

		It("should refuse garbage", func() {
			_, err := service.RefreshTokens("not-a-token")

			Expect(err).To(MatchError(apperrors.ErrInvalidToken))
		})
	})

	Describe("Token validation", func() {
		It("should accept a token still inside its lifetime", func() {
			shortLived := newGenerator(time.Minute, time.Hour)
			token, err := shortLived.GenerateAccessToken("10", "alice@example.com", auth.RoleEmployee)
			Expect(err).ToNot(HaveOccurred())

			_, err = shortLived.ValidateAccessToken(token)

			Expect(err).ToNot(HaveOccurred())
		})

		It("should stamp the expiry one access TTL from issuance", func() {
			hourLong := newGenerator(time.Hour, 24*time.Hour)
			token, err := hourLong.GenerateAccessToken("10", "alice@example.com", auth.RoleEmployee)
			Expect(err).ToNot(HaveOccurred())

			claims, err := hourLong.ValidateAccessToken(token)
			Expect(err).ToNot(HaveOccurred())

			remaining := time.Until(claims.ExpiresAt.Time)
			Expect(remaining).To(BeNumerically(">", 59*time.Minute))
			Expect(remaining).To(BeNumerically("<=", 61*time.Minute))
		})

		It("should reject a token past its expiry with zero leeway", func() {
			expired := newGenerator(-time.Minute, time.Hour)
			token, err := expired.GenerateAccessToken("10", "alice@example.com", auth.RoleEmployee)
			Expect(err).ToNot(HaveOccurred())

			_, err = expired.ValidateAccessToken(token)

			Expect(err).To(MatchError(apperrors.ErrTokenExpired))
		})

		It("should reject a token signed with a different key", func() {
			foreign := newGenerator(time.Hour, time.Hour)
			foreign.AccessTokenSecret = []byte("another-secret-of-sufficient-len")
			token, err := foreign.GenerateAccessToken("10", "alice@example.com", auth.RoleEmployee)
			Expect(err).ToNot(HaveOccurred())

			_, err = tokens.ValidateAccessToken(token)

			Expect(err).To(MatchError(apperrors.ErrInvalidToken))
		})

		It("should reject a token from a different issuer", func() {
			foreign := newGenerator(time.Hour, time.Hour)
			foreign.Issuer = "someone-else"
			token, err := foreign.GenerateAccessToken("10", "alice@example.com", auth.RoleEmployee)
			Expect(err).ToNot(HaveOccurred())

			_, err = tokens.ValidateAccessToken(token)

			Expect(err).To(MatchError(apperrors.ErrInvalidToken))
		})

		It("should reject a token minted for a different audience", func() {
			foreign := newGenerator(time.Hour, time.Hour)
			foreign.Audience = "other-client"
			token, err := foreign.GenerateAccessToken("10", "alice@example.com", auth.RoleEmployee)
			Expect(err).ToNot(HaveOccurred())

			_, err = tokens.ValidateAccessToken(token)

			Expect(err).To(MatchError(apperrors.ErrInvalidToken))
		})
	})
})
