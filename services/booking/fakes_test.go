package booking

import (
	"context"
	"sync"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/models"
)

// fakeBookingRepo mirrors the conditional-update semantics of the Mongo
// implementation against an in-memory map.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.IdempotencyKey != "" {
		for _, existing := range r.bookings {
			if existing.ClientID == b.ClientID && existing.IdempotencyKey == b.IdempotencyKey {
				cp := *existing
				return &cp, nil
			}
		}
	}
	cp := *b
	r.bookings[b.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "booking", ID: id}
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) Patch(ctx context.Context, id string, set map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return &models.NotFoundError{Entity: "booking", ID: id}
	}
	applySet(b, set)
	return nil
}

func (r *fakeBookingRepo) UpdateIfStatus(ctx context.Context, id string, expect []models.BookingStatus, set map[string]interface{}) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return false, nil
	}
	matched := false
	for _, st := range expect {
		if b.Status == st {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	applySet(b, set)
	return true, nil
}

func (r *fakeBookingRepo) StartSession(ctx context.Context, id, otpCode string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return false, nil
	}
	if b.Status != models.BookingConfirmed || b.OtpCode != otpCode || b.OtpConsumed || !b.OtpExpiresAt.After(now) {
		return false, nil
	}
	b.Status = models.BookingInProgress
	b.OtpConsumed = true
	b.UpdatedAt = now
	return true, nil
}

func (r *fakeBookingRepo) SetPaymentStatus(ctx context.Context, id string, status models.PaymentState, promoteIfPending bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return &models.NotFoundError{Entity: "booking", ID: id}
	}
	b.PaymentStatus = status
	if promoteIfPending && b.Status == models.BookingPending {
		b.Status = models.BookingConfirmed
	}
	return nil
}

func (r *fakeBookingRepo) FindByIdempotencyKey(ctx context.Context, clientID, key string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ClientID == clientID && b.IdempotencyKey == key {
			cp := *b
			return &cp, nil
		}
	}
	return nil, &models.NotFoundError{Entity: "booking", ID: key}
}

func (r *fakeBookingRepo) ListForStylist(ctx context.Context, stylistID string, filter models.BookingFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.StylistID == stylistID && matchesFilter(b, filter) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListForClient(ctx context.Context, clientID string, filter models.BookingFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.ClientID == clientID && matchesFilter(b, filter) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func matchesFilter(b *models.Booking, f models.BookingFilter) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.DateFrom != "" && b.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && b.Date > f.DateTo {
		return false
	}
	return true
}

func applySet(b *models.Booking, set map[string]interface{}) {
	for k, v := range set {
		switch k {
		case "status":
			b.Status = v.(models.BookingStatus)
		case "paymentStatus":
			b.PaymentStatus = v.(models.PaymentState)
		case "cancellationReason":
			b.CancellationReason = v.(string)
		case "rescheduleReason":
			b.RescheduleReason = v.(string)
		case "date":
			b.Date = v.(string)
		case "startTime":
			b.StartTime = v.(string)
		case "endTime":
			b.EndTime = v.(string)
		case "location":
			b.Location = v.(string)
		case "notes":
			b.Notes = v.(string)
		case "rating":
			b.Rating = v.(int)
		case "review":
			b.Review = v.(string)
		case "otpConsumed":
			b.OtpConsumed = v.(bool)
		case "updatedAt":
			b.UpdatedAt = v.(time.Time)
		}
	}
}

// fakeUserDirectory serves client snapshots.
type fakeUserDirectory struct {
	users map[string]*models.User
}

func (r *fakeUserDirectory) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "user", ID: id}
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserDirectory) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

// fakeStylistStore implements the stylist repository over maps.
type fakeStylistStore struct {
	mu       sync.Mutex
	stylists map[string]*models.Stylist
	reviews  map[string]*models.Review
}

func newFakeStylistStore() *fakeStylistStore {
	return &fakeStylistStore{
		stylists: make(map[string]*models.Stylist),
		reviews:  make(map[string]*models.Review),
	}
}

func (r *fakeStylistStore) GetByID(ctx context.Context, id string) (*models.Stylist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.stylists[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "stylist", ID: id}
	}
	cp := *st
	return &cp, nil
}

func (r *fakeStylistStore) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.stylists[id]
	return ok, nil
}

func (r *fakeStylistStore) SetRating(ctx context.Context, id string, avg float64, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.stylists[id]
	if !ok {
		return &models.NotFoundError{Entity: "stylist", ID: id}
	}
	st.Rating = avg
	st.ReviewCount = count
	return nil
}

func (r *fakeStylistStore) SetDisplayedPrice(ctx context.Context, id string, price int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.stylists[id]
	if !ok {
		return &models.NotFoundError{Entity: "stylist", ID: id}
	}
	st.Price = price
	return nil
}

func (r *fakeStylistStore) AddService(ctx context.Context, id string, svc models.StylistService) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.stylists[id]
	if !ok {
		return &models.NotFoundError{Entity: "stylist", ID: id}
	}
	st.Services = append(st.Services, svc)
	return nil
}

func (r *fakeStylistStore) UpdateService(ctx context.Context, id string, svc models.StylistService) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.stylists[id]
	if !ok {
		return &models.NotFoundError{Entity: "stylist", ID: id}
	}
	for i := range st.Services {
		if st.Services[i].ID == svc.ID {
			st.Services[i] = svc
			return nil
		}
	}
	return &models.NotFoundError{Entity: "service", ID: svc.ID}
}

func (r *fakeStylistStore) DeactivateService(ctx context.Context, id, serviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.stylists[id]
	if !ok {
		return &models.NotFoundError{Entity: "stylist", ID: id}
	}
	for i := range st.Services {
		if st.Services[i].ID == serviceID {
			st.Services[i].Active = false
			return nil
		}
	}
	return &models.NotFoundError{Entity: "service", ID: serviceID}
}

func (r *fakeStylistStore) InsertReview(ctx context.Context, rev *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rev
	r.reviews[rev.ID] = &cp
	return nil
}

func (r *fakeStylistStore) GetReviewByID(ctx context.Context, id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rev, ok := r.reviews[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "review", ID: id}
	}
	cp := *rev
	return &cp, nil
}

func (r *fakeStylistStore) ListReviews(ctx context.Context, stylistID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, rev := range r.reviews {
		if rev.StylistID == stylistID {
			out = append(out, *rev)
		}
	}
	return out, nil
}

func (r *fakeStylistStore) DeleteReview(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return &models.NotFoundError{Entity: "review", ID: id}
	}
	delete(r.reviews, id)
	return nil
}

// recordingNotifier captures dispatched events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []models.Notification
}

func (n *recordingNotifier) Notify(ctx context.Context, userID string, typ models.NotificationType, title, message string, data map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, models.Notification{
		UserID: userID, Type: typ, Title: title, Message: message, Data: data,
	})
}

func (n *recordingNotifier) byType(typ models.NotificationType) []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []models.Notification
	for _, e := range n.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
