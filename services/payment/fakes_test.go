package payment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/models"
)

// fakeBookings is a minimal in-memory booking store for capture tests.
type fakeBookings struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookings) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeBookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "booking", ID: id}
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookings) Patch(ctx context.Context, id string, set map[string]interface{}) error {
	return errors.New("not used")
}

func (r *fakeBookings) UpdateIfStatus(ctx context.Context, id string, expect []models.BookingStatus, set map[string]interface{}) (bool, error) {
	return false, errors.New("not used")
}

func (r *fakeBookings) StartSession(ctx context.Context, id, otp string, now time.Time) (bool, error) {
	return false, errors.New("not used")
}

func (r *fakeBookings) SetPaymentStatus(ctx context.Context, id string, status models.PaymentState, promoteIfPending bool) error {
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

func (r *fakeBookings) FindByIdempotencyKey(ctx context.Context, clientID, key string) (*models.Booking, error) {
	return nil, &models.NotFoundError{Entity: "booking", ID: key}
}

func (r *fakeBookings) ListForStylist(ctx context.Context, stylistID string, f models.BookingFilter) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeBookings) ListForClient(ctx context.Context, clientID string, f models.BookingFilter) ([]models.Booking, error) {
	return nil, nil
}

// fakeLedger mirrors the transactional semantics of the Mongo ledger against
// in-memory maps.
type fakeLedger struct {
	mu       sync.Mutex
	payments map[string]*models.Payment
	txns     []models.Transaction
	payouts  []models.Payout
	methods  map[string]*models.PaymentMethod
	bookings *fakeBookings
}

func newFakeLedger(bookings *fakeBookings) *fakeLedger {
	return &fakeLedger{
		payments: make(map[string]*models.Payment),
		methods:  make(map[string]*models.PaymentMethod),
		bookings: bookings,
	}
}

func (l *fakeLedger) CapturePayment(ctx context.Context, payment *models.Payment, clientRow, feeRow *models.Transaction) error {
	l.mu.Lock()
	for _, p := range l.payments {
		if p.BookingID == payment.BookingID && p.Status != models.PaymentFailed {
			l.mu.Unlock()
			return &models.InvalidStateError{Entity: "payment", ID: payment.ID, Message: "duplicate capture"}
		}
	}
	cp := *payment
	l.payments[payment.ID] = &cp
	l.txns = append(l.txns, *clientRow, *feeRow)
	l.mu.Unlock()

	return l.bookings.SetPaymentStatus(ctx, payment.BookingID, models.PaymentStateCompleted, true)
}

func (l *fakeLedger) RecordFailedPayment(ctx context.Context, payment *models.Payment) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *payment
	l.payments[payment.ID] = &cp
	return nil
}

func (l *fakeLedger) RefundPayment(ctx context.Context, paymentID, refundTransactionID, reason string, refundRow *models.Transaction) error {
	l.mu.Lock()
	p, ok := l.payments[paymentID]
	if !ok {
		l.mu.Unlock()
		return &models.NotFoundError{Entity: "payment", ID: paymentID}
	}
	if p.Status != models.PaymentCompleted {
		l.mu.Unlock()
		return &models.InvalidStateError{Entity: "payment", ID: paymentID, Message: "payment is not in completed status"}
	}
	p.Status = models.PaymentRefunded
	p.RefundTransactionID = refundTransactionID
	p.RefundReason = reason
	l.txns = append(l.txns, *refundRow)
	l.mu.Unlock()

	return l.bookings.SetPaymentStatus(ctx, refundRow.BookingID, models.PaymentStateRefunded, false)
}

func (l *fakeLedger) GetPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.payments[paymentID]
	if !ok {
		return nil, &models.NotFoundError{Entity: "payment", ID: paymentID}
	}
	cp := *p
	return &cp, nil
}

func (l *fakeLedger) GetBookingPayment(ctx context.Context, bookingID string) (*models.Payment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.payments {
		if p.BookingID == bookingID && p.Status != models.PaymentFailed {
			cp := *p
			return &cp, nil
		}
	}
	return nil, &models.NotFoundError{Entity: "payment for booking", ID: bookingID}
}

func (l *fakeLedger) FindPaymentByIdempotencyKey(ctx context.Context, clientID, key string) (*models.Payment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.payments {
		if p.ClientID == clientID && p.IdempotencyKey == key && key != "" {
			cp := *p
			return &cp, nil
		}
	}
	return nil, &models.NotFoundError{Entity: "payment", ID: key}
}

func (l *fakeLedger) ListClientPayments(ctx context.Context, clientID string, skip, limit int64) ([]models.Payment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Payment
	for _, p := range l.payments {
		if p.ClientID == clientID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (l *fakeLedger) ListStylistPayments(ctx context.Context, stylistID string, skip, limit int64) ([]models.Payment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Payment
	for _, p := range l.payments {
		if p.StylistID == stylistID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (l *fakeLedger) ListUserTransactions(ctx context.Context, userID string, skip, limit int64) ([]models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Transaction
	for _, t := range l.txns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (l *fakeLedger) CreatePayout(ctx context.Context, payout *models.Payout, payoutRow *models.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	available := l.availableBalanceLocked(payout.StylistID)
	if payout.Amount > available {
		return &models.InvalidStateError{
			Entity: "payout", ID: payout.ID,
			Message: "requested amount exceeds available balance",
		}
	}
	l.payouts = append(l.payouts, *payout)
	l.txns = append(l.txns, *payoutRow)
	return nil
}

func (l *fakeLedger) availableBalanceLocked(stylistID string) float64 {
	var earnings float64
	for _, p := range l.payments {
		if p.StylistID == stylistID && p.Status == models.PaymentCompleted {
			earnings += p.StylistAmount
		}
	}
	var pending float64
	for _, po := range l.payouts {
		if po.StylistID == stylistID && po.Status == models.PaymentPending {
			pending += po.Amount
		}
	}
	return earnings - pending
}

func (l *fakeLedger) ListStylistPayouts(ctx context.Context, stylistID string, skip, limit int64) ([]models.Payout, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Payout
	for _, po := range l.payouts {
		if po.StylistID == stylistID {
			out = append(out, po)
		}
	}
	return out, nil
}

func (l *fakeLedger) Statistics(ctx context.Context, stylistID string) (*models.PaymentStatistics, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := &models.PaymentStatistics{}
	for _, p := range l.payments {
		if p.StylistID == stylistID && p.Status == models.PaymentCompleted {
			stats.TotalEarnings += p.StylistAmount
		}
	}
	for _, po := range l.payouts {
		if po.StylistID == stylistID && po.Status == models.PaymentPending {
			stats.PendingPayouts += po.Amount
		}
	}
	for _, b := range l.bookings.bookings {
		if b.StylistID == stylistID {
			stats.TotalBookings++
			if b.Status == models.BookingCompleted {
				stats.CompletedBookings++
			}
		}
	}
	return stats, nil
}

func (l *fakeLedger) InsertPaymentMethod(ctx context.Context, method *models.PaymentMethod) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if method.IsDefault {
		for _, m := range l.methods {
			if m.UserID == method.UserID {
				m.IsDefault = false
			}
		}
	}
	cp := *method
	l.methods[method.ID] = &cp
	return nil
}

func (l *fakeLedger) GetPaymentMethodByID(ctx context.Context, methodID string) (*models.PaymentMethod, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.methods[methodID]
	if !ok {
		return nil, &models.NotFoundError{Entity: "payment method", ID: methodID}
	}
	cp := *m
	return &cp, nil
}

func (l *fakeLedger) ListPaymentMethods(ctx context.Context, userID string) ([]models.PaymentMethod, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.PaymentMethod
	for _, m := range l.methods {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (l *fakeLedger) DeletePaymentMethod(ctx context.Context, methodID, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.methods[methodID]
	if !ok || m.UserID != userID {
		return &models.NotFoundError{Entity: "payment method", ID: methodID}
	}
	delete(l.methods, methodID)
	return nil
}

func (l *fakeLedger) SetDefaultPaymentMethod(ctx context.Context, methodID, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.methods[methodID]
	if !ok || m.UserID != userID {
		return &models.NotFoundError{Entity: "payment method", ID: methodID}
	}
	for _, other := range l.methods {
		if other.UserID == userID {
			other.IsDefault = false
		}
	}
	m.IsDefault = true
	return nil
}

// fakeGateway returns canned transaction IDs or a configured failure.
type fakeGateway struct {
	mu       sync.Mutex
	failWith error
	captures int
	refunds  int
	payouts  int
}

func (g *fakeGateway) Capture(ctx context.Context, amount float64, currency, clientID, bookingID string) (*GatewayResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failWith != nil {
		return nil, g.failWith
	}
	g.captures++
	return &GatewayResult{TransactionID: "txn_fake_capture"}, nil
}

func (g *fakeGateway) Refund(ctx context.Context, transactionID string, amount float64, currency, reason string) (*GatewayResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failWith != nil {
		return nil, g.failWith
	}
	g.refunds++
	return &GatewayResult{TransactionID: "txn_fake_refund"}, nil
}

func (g *fakeGateway) Payout(ctx context.Context, amount float64, currency, stylistID, bankAccountID string) (*GatewayResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failWith != nil {
		return nil, g.failWith
	}
	g.payouts++
	return &GatewayResult{TransactionID: "txn_fake_payout"}, nil
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
