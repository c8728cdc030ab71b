package scheduling

import (
	"strings"

	"salonbook-backend/models"
	"salonbook-backend/utils"
)

// BookingForm holds the free-text fields typed in by the submitter.
type BookingForm struct {
	Name  string
	Phone string
	Email string
	Date  string
	Time  string
	Notes string
}

// ResolveServices looks selected ids up in the active catalog, keeping the
// caller's order. Unknown, inactive and repeated ids are dropped.
func ResolveServices(selected []string, catalog []models.Service) []models.Service {
	active := make(map[string]models.Service, len(catalog))
	for _, s := range catalog {
		if s.Active {
			active[s.ID] = s
		}
	}

	seen := make(map[string]bool, len(selected))
	resolved := make([]models.Service, 0, len(selected))
	for _, id := range selected {
		id = strings.TrimSpace(id)
		s, ok := active[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		resolved = append(resolved, s)
	}
	return resolved
}

// TotalDuration sums the durations of services, in minutes.
func TotalDuration(services []models.Service) int {
	total := 0
	for _, s := range services {
		total += s.Duration
	}
	return total
}

// BuildBookingPayload assembles a pending booking from a selection and the
// submitter's input. It never fails: a selection that resolves to nothing
// still yields a booking with no services and zero totals.
func BuildBookingPayload(selected []string, catalog []models.Service, form BookingForm, identity *models.Identity) models.Booking {
	resolved := ResolveServices(selected, catalog)

	b := models.Booking{
		Name:       strings.TrimSpace(form.Name),
		Phone:      utils.NormalizePhone(form.Phone),
		Email:      strings.TrimSpace(form.Email),
		Date:       strings.TrimSpace(form.Date),
		Time:       strings.TrimSpace(form.Time),
		Notes:      strings.TrimSpace(form.Notes),
		ServiceIDs: make(models.StringList, 0, len(resolved)),
		Services:   make(models.ServiceSnapshots, 0, len(resolved)),
		Status:     models.StatusPending,
	}

	for _, s := range resolved {
		snap := s.Snapshot()
		b.ServiceIDs = append(b.ServiceIDs, s.ID)
		b.Services = append(b.Services, snap)
		b.TotalPrice += int(snap.Price)
		b.DurationMinutes += snap.Duration
	}

	if identity != nil {
		b.UserID = identity.ID
		b.UserName = identity.DisplayName
		if b.Email == "" {
			b.Email = identity.Email
		}
		if b.Name == "" {
			b.Name = identity.DisplayName
		}
	}
	return b
}
