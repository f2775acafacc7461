package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/models"
)

func newTestPaymentService() (*DefaultPaymentService, *fakeBookings, *fakeLedger, *fakeGateway, *recordingNotifier) {
	bookings := newFakeBookings()
	ledger := newFakeLedger(bookings)
	gateway := &fakeGateway{}
	notifier := &recordingNotifier{}
	svc := &DefaultPaymentService{
		Ledger:     ledger,
		Bookings:   bookings,
		Gateway:    gateway,
		Notifier:   notifier,
		FeePercent: 10,
		Currency:   "INR",
	}
	return svc, bookings, ledger, gateway, notifier
}

func seedBooking(t *testing.T, bookings *fakeBookings, status models.BookingStatus) *models.Booking {
	t.Helper()
	b := &models.Booking{
		ID:            "bk-1",
		ClientID:      "cli-1",
		StylistID:     "sty-1",
		Status:        status,
		PaymentStatus: models.PaymentStatePending,
		Price:         1000,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := bookings.Create(context.Background(), b); err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b
}

func captureRequest() models.PaymentCreate {
	return models.PaymentCreate{
		BookingID:     "bk-1",
		Amount:        1000,
		PaymentMethod: models.MethodCreditCard,
	}
}

func TestCaptureHappyPath(t *testing.T) {
	svc, bookings, ledger, _, notifier := newTestPaymentService()
	seedBooking(t, bookings, models.BookingPending)
	ctx := context.Background()

	p, err := svc.Capture(ctx, captureRequest(), "cli-1")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if p.Status != models.PaymentCompleted {
		t.Errorf("status = %q, want completed", p.Status)
	}
	if p.TransactionID != "txn_fake_capture" {
		t.Errorf("transactionId = %q", p.TransactionID)
	}
	if p.PlatformFee != 100 || p.StylistAmount != 900 {
		t.Errorf("fee split = %.2f/%.2f, want 100/900", p.PlatformFee, p.StylistAmount)
	}
	if p.Currency != "INR" {
		t.Errorf("currency = %q, want default INR", p.Currency)
	}

	if len(ledger.txns) != 2 {
		t.Fatalf("got %d ledger rows, want 2", len(ledger.txns))
	}
	var paymentRow, feeRow *models.Transaction
	for i := range ledger.txns {
		switch ledger.txns[i].Type {
		case models.TxnPayment:
			paymentRow = &ledger.txns[i]
		case models.TxnFee:
			feeRow = &ledger.txns[i]
		}
	}
	if paymentRow == nil || feeRow == nil {
		t.Fatalf("missing ledger rows: payment=%v fee=%v", paymentRow, feeRow)
	}
	if paymentRow.UserID != "cli-1" || paymentRow.Amount != 1000 || paymentRow.Fee != 100 {
		t.Errorf("payment row = %+v", paymentRow)
	}
	if feeRow.UserID != models.PlatformUserID || feeRow.Amount != 100 {
		t.Errorf("fee row = %+v", feeRow)
	}
	if paymentRow.Description != "Payment for booking #bk-1" {
		t.Errorf("payment row description = %q", paymentRow.Description)
	}
	if feeRow.Description != "Platform fee for booking #bk-1" {
		t.Errorf("fee row description = %q", feeRow.Description)
	}

	b, _ := bookings.GetByID(ctx, "bk-1")
	if b.Status != models.BookingConfirmed {
		t.Errorf("booking status = %q, want confirmed after capture", b.Status)
	}
	if b.PaymentStatus != models.PaymentStateCompleted {
		t.Errorf("booking paymentStatus = %q, want completed", b.PaymentStatus)
	}

	if len(notifier.events) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifier.events))
	}
	if n := notifier.events[0]; n.UserID != "sty-1" || n.Type != models.NotifyPaymentReceived {
		t.Errorf("notification = %+v", n)
	}
}

func TestCaptureDoesNotPromoteNonPendingBooking(t *testing.T) {
	svc, bookings, _, _, _ := newTestPaymentService()
	seedBooking(t, bookings, models.BookingConfirmed)
	ctx := context.Background()

	if _, err := svc.Capture(ctx, captureRequest(), "cli-1"); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	b, _ := bookings.GetByID(ctx, "bk-1")
	if b.Status != models.BookingConfirmed {
		t.Errorf("booking status = %q, want unchanged confirmed", b.Status)
	}
	if b.PaymentStatus != models.PaymentStateCompleted {
		t.Errorf("booking paymentStatus = %q, want completed", b.PaymentStatus)
	}
}

func TestCaptureGatewayFailure(t *testing.T) {
	svc, bookings, ledger, gateway, notifier := newTestPaymentService()
	seedBooking(t, bookings, models.BookingPending)
	gateway.failWith = &models.GatewayError{Op: "capture", Err: errors.New("card declined")}
	ctx := context.Background()

	in := captureRequest()
	in.IdempotencyKey = "idem-1"
	_, err := svc.Capture(ctx, in, "cli-1")
	if !models.IsGatewayError(err) {
		t.Fatalf("err = %v, want gateway error", err)
	}

	// The failed attempt is persisted for audit only.
	if len(ledger.payments) != 1 {
		t.Fatalf("got %d payment rows, want 1 audit row", len(ledger.payments))
	}
	for _, p := range ledger.payments {
		if p.Status != models.PaymentFailed {
			t.Errorf("audit row status = %q, want failed", p.Status)
		}
		if p.ErrorMessage == "" {
			t.Error("audit row missing error message")
		}
		if p.IdempotencyKey != "" {
			t.Error("failed attempt must not carry the idempotency key")
		}
	}
	if len(ledger.txns) != 0 {
		t.Errorf("got %d ledger rows, want none on failure", len(ledger.txns))
	}

	b, _ := bookings.GetByID(ctx, "bk-1")
	if b.Status != models.BookingPending || b.PaymentStatus != models.PaymentStatePending {
		t.Errorf("booking touched on failure: status=%q paymentStatus=%q", b.Status, b.PaymentStatus)
	}
	if len(notifier.events) != 0 {
		t.Errorf("got %d notifications, want none on failure", len(notifier.events))
	}

	// A retry with the same key is not deduplicated against the failure.
	gateway.failWith = nil
	p, err := svc.Capture(ctx, in, "cli-1")
	if err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if p.Status != models.PaymentCompleted {
		t.Errorf("retry status = %q, want completed", p.Status)
	}
}

func TestCaptureIdempotentRetry(t *testing.T) {
	svc, bookings, _, gateway, _ := newTestPaymentService()
	seedBooking(t, bookings, models.BookingPending)
	ctx := context.Background()

	in := captureRequest()
	in.IdempotencyKey = "idem-1"
	first, err := svc.Capture(ctx, in, "cli-1")
	if err != nil {
		t.Fatalf("first Capture: %v", err)
	}
	second, err := svc.Capture(ctx, in, "cli-1")
	if err != nil {
		t.Fatalf("second Capture: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("retry returned new payment %s, want %s", second.ID, first.ID)
	}
	if gateway.captures != 1 {
		t.Errorf("gateway charged %d times, want 1", gateway.captures)
	}
}

func TestCaptureForbiddenForOtherClient(t *testing.T) {
	svc, bookings, _, _, _ := newTestPaymentService()
	seedBooking(t, bookings, models.BookingPending)

	_, err := svc.Capture(context.Background(), captureRequest(), "cli-other")
	if !models.IsForbidden(err) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestCaptureValidation(t *testing.T) {
	svc, bookings, _, _, _ := newTestPaymentService()
	seedBooking(t, bookings, models.BookingPending)
	ctx := context.Background()

	in := captureRequest()
	in.Amount = 0
	if _, err := svc.Capture(ctx, in, "cli-1"); !models.IsValidation(err) {
		t.Errorf("zero amount: err = %v, want validation", err)
	}
	in = captureRequest()
	in.Amount = -5
	if _, err := svc.Capture(ctx, in, "cli-1"); !models.IsValidation(err) {
		t.Errorf("negative amount: err = %v, want validation", err)
	}
	in = captureRequest()
	in.PaymentMethod = "barter"
	if _, err := svc.Capture(ctx, in, "cli-1"); !models.IsValidation(err) {
		t.Errorf("bad method: err = %v, want validation", err)
	}
	in = captureRequest()
	in.BookingID = "bk-missing"
	if _, err := svc.Capture(ctx, in, "cli-1"); !models.IsNotFound(err) {
		t.Errorf("missing booking: err = %v, want not found", err)
	}
}

func TestRefund(t *testing.T) {
	svc, bookings, ledger, _, notifier := newTestPaymentService()
	seedBooking(t, bookings, models.BookingPending)
	ctx := context.Background()

	p, err := svc.Capture(ctx, captureRequest(), "cli-1")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	notifier.events = nil

	refunded, err := svc.Refund(ctx, p.ID, "client request")
	if err != nil {
		t.Fatalf("Refund: %v", err)
	}
	if refunded.Status != models.PaymentRefunded {
		t.Errorf("status = %q, want refunded", refunded.Status)
	}
	if refunded.RefundTransactionID != "txn_fake_refund" {
		t.Errorf("refundTransactionId = %q", refunded.RefundTransactionID)
	}
	if refunded.RefundReason != "client request" {
		t.Errorf("refundReason = %q", refunded.RefundReason)
	}

	if len(ledger.txns) != 3 {
		t.Fatalf("got %d ledger rows, want 3 after refund", len(ledger.txns))
	}
	row := ledger.txns[2]
	if row.Type != models.TxnRefund || row.UserID != "cli-1" || row.Amount != 1000 {
		t.Errorf("refund row = %+v", row)
	}
	if row.Description != "Refund for booking #bk-1" {
		t.Errorf("refund row description = %q", row.Description)
	}

	b, _ := bookings.GetByID(ctx, "bk-1")
	if b.PaymentStatus != models.PaymentStateRefunded {
		t.Errorf("booking paymentStatus = %q, want refunded", b.PaymentStatus)
	}

	if len(notifier.events) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifier.events))
	}
	if n := notifier.events[0]; n.UserID != "cli-1" || n.Type != models.NotifyPaymentRefunded {
		t.Errorf("notification = %+v", n)
	}
}

func TestRefundRequiresCompletedPayment(t *testing.T) {
	svc, bookings, ledger, _, _ := newTestPaymentService()
	seedBooking(t, bookings, models.BookingPending)
	ctx := context.Background()

	p, err := svc.Capture(ctx, captureRequest(), "cli-1")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if _, err := svc.Refund(ctx, p.ID, "first"); err != nil {
		t.Fatalf("first Refund: %v", err)
	}
	if _, err := svc.Refund(ctx, p.ID, "second"); !models.IsInvalidState(err) {
		t.Errorf("double refund: err = %v, want invalid state", err)
	}
	if len(ledger.txns) != 3 {
		t.Errorf("got %d ledger rows, double refund must not append", len(ledger.txns))
	}

	if _, err := svc.Refund(ctx, "pay-missing", "x"); !models.IsNotFound(err) {
		t.Errorf("missing payment: err = %v, want not found", err)
	}
}

func TestGetBookingPaymentSkipsFailedAttempts(t *testing.T) {
	svc, bookings, _, gateway, _ := newTestPaymentService()
	seedBooking(t, bookings, models.BookingPending)
	ctx := context.Background()

	gateway.failWith = &models.GatewayError{Op: "capture", Err: errors.New("declined")}
	if _, err := svc.Capture(ctx, captureRequest(), "cli-1"); err == nil {
		t.Fatal("expected gateway failure")
	}
	if _, err := svc.GetBookingPayment(ctx, "bk-1"); !models.IsNotFound(err) {
		t.Fatalf("failed attempt visible as booking payment: %v", err)
	}

	gateway.failWith = nil
	want, err := svc.Capture(ctx, captureRequest(), "cli-1")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	got, err := svc.GetBookingPayment(ctx, "bk-1")
	if err != nil {
		t.Fatalf("GetBookingPayment: %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("got payment %s, want %s", got.ID, want.ID)
	}
}

func TestAddPaymentMethodRedactsCard(t *testing.T) {
	svc, _, ledger, _, _ := newTestPaymentService()
	ctx := context.Background()

	m, err := svc.AddPaymentMethod(ctx, models.PaymentMethodCreate{
		UserID:         "cli-1",
		Type:           models.MethodCreditCard,
		CardNumber:     "4111 1111 1111 1234",
		CardExpiry:     "12/27",
		CardHolderName: "Ravi Kumar",
	})
	if err != nil {
		t.Fatalf("AddPaymentMethod: %v", err)
	}
	if m.LastFour != "1234" {
		t.Errorf("lastFour = %q, want 1234", m.LastFour)
	}
	if m.CardBrand != "Visa" {
		t.Errorf("cardBrand = %q, want Visa", m.CardBrand)
	}
	if m.CardExpiry != "12/27" || m.CardHolderName != "Ravi Kumar" {
		t.Errorf("card metadata = %q/%q", m.CardExpiry, m.CardHolderName)
	}

	stored, err := ledger.GetPaymentMethodByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetPaymentMethodByID: %v", err)
	}
	if stored.LastFour != "1234" || stored.CardBrand != "Visa" {
		t.Errorf("stored method = %+v", stored)
	}
}

func TestAddPaymentMethodNetbankingAndUPI(t *testing.T) {
	svc, _, _, _, _ := newTestPaymentService()
	ctx := context.Background()

	nb, err := svc.AddPaymentMethod(ctx, models.PaymentMethodCreate{
		UserID:            "cli-1",
		Type:              models.MethodNetbanking,
		BankName:          "HDFC",
		BankAccountNumber: "001234567890",
		IfscCode:          "HDFC0000123",
	})
	if err != nil {
		t.Fatalf("netbanking: %v", err)
	}
	if nb.BankLast4 != "7890" || nb.BankName != "HDFC" || nb.IfscCode != "HDFC0000123" {
		t.Errorf("netbanking method = %+v", nb)
	}

	upi, err := svc.AddPaymentMethod(ctx, models.PaymentMethodCreate{
		UserID: "cli-1",
		Type:   models.MethodUPI,
		UpiID:  "ravi@okhdfc",
	})
	if err != nil {
		t.Fatalf("upi: %v", err)
	}
	if upi.UpiID != "ravi@okhdfc" {
		t.Errorf("upiId = %q", upi.UpiID)
	}
}

func TestAddPaymentMethodValidation(t *testing.T) {
	svc, _, _, _, _ := newTestPaymentService()
	ctx := context.Background()

	cases := []models.PaymentMethodCreate{
		{UserID: "cli-1", Type: "barter"},
		{UserID: "cli-1", Type: models.MethodCreditCard},
		{UserID: "cli-1", Type: models.MethodNetbanking},
		{UserID: "cli-1", Type: models.MethodUPI},
	}
	for _, in := range cases {
		if _, err := svc.AddPaymentMethod(ctx, in); !models.IsValidation(err) {
			t.Errorf("type %q: err = %v, want validation", in.Type, err)
		}
	}
}

func TestSetDefaultPaymentMethodIsExclusive(t *testing.T) {
	svc, _, _, _, _ := newTestPaymentService()
	ctx := context.Background()

	first, err := svc.AddPaymentMethod(ctx, models.PaymentMethodCreate{
		UserID: "cli-1", Type: models.MethodUPI, UpiID: "a@bank", IsDefault: true,
	})
	if err != nil {
		t.Fatalf("first method: %v", err)
	}
	second, err := svc.AddPaymentMethod(ctx, models.PaymentMethodCreate{
		UserID: "cli-1", Type: models.MethodUPI, UpiID: "b@bank",
	})
	if err != nil {
		t.Fatalf("second method: %v", err)
	}

	if err := svc.SetDefaultPaymentMethod(ctx, second.ID, "cli-1"); err != nil {
		t.Fatalf("SetDefaultPaymentMethod: %v", err)
	}
	methods, err := svc.ListPaymentMethods(ctx, "cli-1")
	if err != nil {
		t.Fatalf("ListPaymentMethods: %v", err)
	}
	for _, m := range methods {
		switch m.ID {
		case first.ID:
			if m.IsDefault {
				t.Error("old default not cleared")
			}
		case second.ID:
			if !m.IsDefault {
				t.Error("new default not set")
			}
		}
	}

	if err := svc.SetDefaultPaymentMethod(ctx, second.ID, "cli-other"); !models.IsNotFound(err) {
		t.Errorf("foreign user set-default: err = %v, want not found", err)
	}
	if err := svc.DeletePaymentMethod(ctx, second.ID, "cli-other"); !models.IsNotFound(err) {
		t.Errorf("foreign user delete: err = %v, want not found", err)
	}
	if err := svc.DeletePaymentMethod(ctx, second.ID, "cli-1"); err != nil {
		t.Fatalf("DeletePaymentMethod: %v", err)
	}
}
