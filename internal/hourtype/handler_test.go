package hourtype_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/cloudnative-amadeus/extrahours/internal/hourtype"
	hourtypePostgres "github.com/cloudnative-amadeus/extrahours/internal/hourtype/postgres"
)

type SQLiteExtraHourType struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (SQLiteExtraHourType) TableName() string {
	return "extra_hour_types"
}

var _ = Describe("ExtraHourType Handler Integration", func() {
	var (
		db      *gorm.DB
		service *hourtype.Service
		handler *hourtype.Handler
		router  *chi.Mux
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteExtraHourType{})
		Expect(err).NotTo(HaveOccurred())

		repo := hourtypePostgres.NewExtraHourTypeRepository(db)
		service = hourtype.NewService(repo, slogger)
		handler = hourtype.NewHandler(service)

		for _, name := range []string{"Nocturna", "Diurna"} {
			err := db.Create(&SQLiteExtraHourType{Name: name, CreatedAt: time.Now()}).Error
			Expect(err).NotTo(HaveOccurred())
		}

		router = chi.NewRouter()
		router.Get("/extra-hour-types", handler.ListTypes)
		router.Get("/extra-hour-types/{id}", handler.GetType)
		router.Post("/extra-hour-types", handler.CreateType)
		router.Delete("/extra-hour-types/{id}", handler.DeleteType)
	})

	It("should list the seeded types sorted by name", func() {
		req := httptest.NewRequest(http.MethodGet, "/extra-hour-types", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response struct {
			ExtraHourTypes []*hourtype.ExtraHourType `json:"extra_hour_types"`
		}
		err := json.NewDecoder(w.Body).Decode(&response)
		Expect(err).NotTo(HaveOccurred())

		Expect(response.ExtraHourTypes).To(HaveLen(2))
		Expect(response.ExtraHourTypes[0].Name).To(Equal("Diurna"))
		Expect(response.ExtraHourTypes[1].Name).To(Equal("Nocturna"))
	})

	It("should fetch a single type by ID", func() {
		req := httptest.NewRequest(http.MethodGet, "/extra-hour-types/1", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var found hourtype.ExtraHourType
		err := json.NewDecoder(w.Body).Decode(&found)
		Expect(err).NotTo(HaveOccurred())
		Expect(found.ID).To(Equal(int64(1)))
		Expect(found.Name).NotTo(BeEmpty())
	})

	It("should return 404 for an unknown type", func() {
		req := httptest.NewRequest(http.MethodGet, "/extra-hour-types/999", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should create a new type", func() {
		body := strings.NewReader(`{"name":"Festiva Diurna"}`)
		req := httptest.NewRequest(http.MethodPost, "/extra-hour-types", body)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))

		var created hourtype.ExtraHourType
		err := json.NewDecoder(w.Body).Decode(&created)
		Expect(err).NotTo(HaveOccurred())
		Expect(created.Name).To(Equal("Festiva Diurna"))
		Expect(created.ID).NotTo(BeZero())
	})

	It("should reject a duplicate type name", func() {
		body := strings.NewReader(`{"name":"Diurna"}`)
		req := httptest.NewRequest(http.MethodPost, "/extra-hour-types", body)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("should reject a blank type name", func() {
		body := strings.NewReader(`{"name":"   "}`)
		req := httptest.NewRequest(http.MethodPost, "/extra-hour-types", body)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should delete a type", func() {
		req := httptest.NewRequest(http.MethodDelete, "/extra-hour-types/2", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNoContent))

		var count int64
		err := db.Model(&SQLiteExtraHourType{}).Count(&count).Error
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(int64(1)))
	})
})
