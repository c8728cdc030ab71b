package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salonbook-backend/controllers"
	"salonbook-backend/models"
	"salonbook-backend/scheduling"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type testApp struct {
	router   *gin.Engine
	bookings *services.BookingService
	date     string
	admin    string
}

func newTestApp(t *testing.T) testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.ConfigureJWT("test-secret", 1)

	logger := zap.NewNop()
	rules := scheduling.DefaultRules()
	catalog := services.NewMemoryServiceStore(
		models.Service{ID: "szemoldokfestes", Label: "Szemöldökfestés", Price: 1500, Duration: 15, Category: models.CategoryBasic, Active: true},
		models.Service{ID: "tisztito-kezeles", Label: "Tisztító kezelés", Price: 10000, Duration: 60, Category: models.CategoryFacial, Active: true},
	)
	dispatcher := services.DirectDispatcher{Notifier: services.LogNotifier{SalonName: "Teszt", Logger: logger}, Logger: logger}
	bookings := services.NewBookingService(services.NewMemoryBookingStore(), catalog, rules, dispatcher, logger)

	admin, err := utils.GenerateToken("admin-1", "Admin", "admin@example.com", utils.RoleAdmin)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	r := SetupRouter(Deps{
		Bookings:       bookings,
		Catalog:        services.NewCatalogService(catalog, logger),
		Auth:           services.NewAuthService(services.NewMemoryUserStore(), logger),
		Profile:        controllers.NewSalonProfile("Teszt Szalon", "+36301234567", "", "Fő út 1.", rules),
		Logger:         logger,
		BookingLimiter: utils.NewRateLimiterStore(600, 100),
	})

	return testApp{
		router:   r,
		bookings: bookings,
		date:     utils.FormatDate(rules.MinimumBookableDate(rules.Today(time.Now()))),
		admin:    admin,
	}
}

func (a testApp) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func bookingBody(date, at string, ids ...string) controllers.BookingInput {
	return controllers.BookingInput{
		Services: ids,
		Name:     "Teszt Elek",
		Phone:    "+36301234567",
		Date:     date,
		Time:     at,
	}
}

func TestHealthWithoutMonitor(t *testing.T) {
	app := newTestApp(t)
	if w := app.do(t, http.MethodGet, "/health", nil, ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAvailabilityEndpoint(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/availability?date="+app.date+"&services=tisztito-kezeles", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res services.AvailabilityResult
	decode(t, w, &res)
	if res.Date != app.date || res.DurationMinutes != 60 || len(res.Slots) != 36 {
		t.Fatalf("unexpected availability: %+v", res)
	}
	last := res.Slots[len(res.Slots)-1]
	if last.Time != "16:45" || last.Available || last.Reason != scheduling.ReasonClosing {
		t.Fatalf("a one-hour service cannot start at 16:45: %+v", last)
	}

	if w := app.do(t, http.MethodGet, "/api/availability", nil, ""); w.Code != http.StatusBadRequest {
		t.Fatalf("missing date: expected 400, got %d", w.Code)
	}
	if w := app.do(t, http.MethodGet, "/api/availability?date="+app.date, nil, ""); w.Code != http.StatusBadRequest {
		t.Fatalf("no services: expected 400, got %d", w.Code)
	}
	if w := app.do(t, http.MethodGet, "/api/availability?date=2001-01-01&services=szemoldokfestes", nil, ""); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("past date: expected 422, got %d", w.Code)
	}
}

func TestCreateBookingStatuses(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/bookings", bookingBody(app.date, "10:00", "szemoldokfestes"), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var b models.Booking
	decode(t, w, &b)
	if b.Status != models.StatusPending || b.TotalPrice != 1500 {
		t.Fatalf("unexpected booking: %+v", b)
	}

	if w := app.do(t, http.MethodPost, "/api/bookings", map[string]any{"name": "x"}, ""); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", w.Code)
	}

	w = app.do(t, http.MethodPost, "/api/bookings", bookingBody(app.date, "10:10", "szemoldokfestes"), "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("off grid: expected 422, got %d", w.Code)
	}
	var rule struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	decode(t, w, &rule)
	if rule.Code != scheduling.ErrOffGrid.Code {
		t.Fatalf("expected code %q, got %+v", scheduling.ErrOffGrid.Code, rule)
	}
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	app := newTestApp(t)

	if w := app.do(t, http.MethodGet, "/api/admin/bookings", nil, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", w.Code)
	}
	customer, err := utils.GenerateToken("user-1", "Elek", "elek@example.com", utils.RoleCustomer)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if w := app.do(t, http.MethodGet, "/api/admin/bookings", nil, customer); w.Code != http.StatusForbidden {
		t.Fatalf("customer: expected 403, got %d", w.Code)
	}
	if w := app.do(t, http.MethodGet, "/api/admin/bookings", nil, app.admin); w.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", w.Code)
	}
}

func TestApprovalFlowOverHTTP(t *testing.T) {
	app := newTestApp(t)

	var first, second models.Booking
	decode(t, app.do(t, http.MethodPost, "/api/bookings", bookingBody(app.date, "10:00", "tisztito-kezeles"), ""), &first)
	decode(t, app.do(t, http.MethodPost, "/api/bookings", bookingBody(app.date, "10:30", "szemoldokfestes"), ""), &second)

	w := app.do(t, http.MethodPut, "/api/admin/bookings/"+first.ID.String()+"/approve", nil, app.admin)
	if w.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w := app.do(t, http.MethodPut, "/api/admin/bookings/"+second.ID.String()+"/approve", nil, app.admin); w.Code != http.StatusConflict {
		t.Fatalf("overlapping approve: expected 409, got %d", w.Code)
	}
	if w := app.do(t, http.MethodPut, "/api/admin/bookings/"+second.ID.String()+"/reject", nil, app.admin); w.Code != http.StatusOK {
		t.Fatalf("reject: expected 200, got %d", w.Code)
	}

	// The approved hour now blocks customers.
	if w := app.do(t, http.MethodPost, "/api/bookings", bookingBody(app.date, "10:45", "szemoldokfestes"), ""); w.Code != http.StatusConflict {
		t.Fatalf("taken slot: expected 409, got %d", w.Code)
	}

	if w := app.do(t, http.MethodPut, "/api/admin/bookings/not-a-uuid/approve", nil, app.admin); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: expected 400, got %d", w.Code)
	}
	if w := app.do(t, http.MethodDelete, "/api/admin/bookings/"+first.ID.String(), nil, app.admin); w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	if w := app.do(t, http.MethodGet, "/api/admin/bookings/"+first.ID.String(), nil, app.admin); w.Code != http.StatusNotFound {
		t.Fatalf("deleted booking: expected 404, got %d", w.Code)
	}
}

func TestCatalogSeedAndPublicList(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/admin/services/seed", nil, app.admin)
	if w.Code != http.StatusOK {
		t.Fatalf("seed: expected 200, got %d", w.Code)
	}
	var res services.SeedResult
	decode(t, w, &res)
	if res.Created+res.Skipped != len(services.DefaultCatalog) || res.Failed != 0 {
		t.Fatalf("unexpected seed result: %+v", res)
	}

	var groups []controllers.CategoryGroup
	decode(t, app.do(t, http.MethodGet, "/api/services", nil, ""), &groups)
	if len(groups) != len(models.ServiceCategories) || groups[0].Category != models.CategoryBasic {
		t.Fatalf("expected every category in display order, got %+v", groups)
	}

	w = app.do(t, http.MethodPost, "/api/admin/services", map[string]any{
		"label": "Szemöldökfestés", "price": "1 500 Ft", "duration": 15, "category": "basic",
	}, app.admin)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate service: expected 409, got %d", w.Code)
	}
}

func TestSalonProfileAndWindow(t *testing.T) {
	app := newTestApp(t)

	var profile controllers.SalonProfile
	decode(t, app.do(t, http.MethodGet, "/api/salon", nil, ""), &profile)
	if profile.HoursText != "Mon-Sat 08:00-17:00" || profile.SlotMinutes != 15 {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	var window services.BookingWindow
	decode(t, app.do(t, http.MethodGet, "/api/booking-window", nil, ""), &window)
	if window.MinDate != app.date {
		t.Fatalf("expected min date %s, got %+v", app.date, window)
	}
}

func TestRegisterLoginAndMyBookings(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/auth/register", map[string]string{
		"email": "elek@example.com", "name": "Teszt Elek", "password": "titkos-jelszo",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if w := app.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "elek@example.com", "password": "rossz",
	}, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", w.Code)
	}

	var login struct {
		Token string `json:"token"`
	}
	decode(t, app.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "elek@example.com", "password": "titkos-jelszo",
	}, ""), &login)
	if login.Token == "" {
		t.Fatalf("expected a token")
	}

	if w := app.do(t, http.MethodPost, "/api/bookings", bookingBody(app.date, "11:00", "szemoldokfestes"), login.Token); w.Code != http.StatusCreated {
		t.Fatalf("signed-in booking: expected 201, got %d", w.Code)
	}
	var mine []models.Booking
	decode(t, app.do(t, http.MethodGet, "/api/bookings/mine", nil, login.Token), &mine)
	if len(mine) != 1 || mine[0].UserName != "Teszt Elek" {
		t.Fatalf("expected one booking in history, got %+v", mine)
	}
}

func TestCalendarWeek(t *testing.T) {
	app := newTestApp(t)

	var grid scheduling.WeekGrid
	w := app.do(t, http.MethodGet, "/api/admin/calendar?date="+app.date, nil, app.admin)
	if w.Code != http.StatusOK {
		t.Fatalf("calendar: expected 200, got %d", w.Code)
	}
	decode(t, w, &grid)
	if len(grid.Days) != 7 {
		t.Fatalf("expected seven days, got %d", len(grid.Days))
	}
	if w := app.do(t, http.MethodGet, "/api/admin/calendar?date=nope", nil, app.admin); w.Code != http.StatusBadRequest {
		t.Fatalf("bad date: expected 400, got %d", w.Code)
	}
}

func TestCalendarDefaultsToCurrentWeek(t *testing.T) {
	app := newTestApp(t)
	// Thursday; the week runs Monday 2026-10-12 to Sunday 2026-10-18.
	app.bookings.SetClock(func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) })

	var grid scheduling.WeekGrid
	decode(t, app.do(t, http.MethodGet, "/api/admin/calendar", nil, app.admin), &grid)
	if grid.Start != "2026-10-12" || grid.End != "2026-10-18" {
		t.Fatalf("expected the week of 2026-10-15, got %s..%s", grid.Start, grid.End)
	}
	for _, d := range grid.Days {
		if d.Today != (d.Date == "2026-10-15") {
			t.Fatalf("today flag out of step with the service clock on %s", d.Date)
		}
	}
}
