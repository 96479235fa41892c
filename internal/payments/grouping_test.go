package payments

import (
	"testing"

	"staymate/internal/shared/upstream"
)

func payment(id, bookingID int64, amount float64, status, method, at string) upstream.Payment {
	return upstream.Payment{
		PaymentID:       id,
		BookingID:       bookingID,
		AmountPaid:      amount,
		PaymentStatus:   status,
		PaymentMethod:   method,
		PaymentDateTime: at,
	}
}

func TestGroupByBookingCountsOnlySuccessfulPayments(t *testing.T) {
	payments := []upstream.Payment{
		payment(1, 10, 50, upstream.PaymentStatusSuccess, "CREDIT_CARD", "2026-01-01T10:00:00"),
		payment(2, 10, 30, upstream.PaymentStatusPending, "PAYPAL", "2026-01-02T10:00:00"),
	}
	totals := map[int64]float64{10: 100}

	groups := GroupByBooking(payments, totals)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	g := groups[0]
	if g.TotalPaid != 50 {
		t.Errorf("expected totalPaid 50, got %.2f", g.TotalPaid)
	}
	if g.RemainingAmount != 50 {
		t.Errorf("expected remaining 50, got %.2f", g.RemainingAmount)
	}
	if g.IsFullyPaid {
		t.Error("a half-paid booking must not read as fully paid")
	}
}

func TestGroupByBookingIsOrderInsensitive(t *testing.T) {
	forward := []upstream.Payment{
		payment(1, 10, 25, upstream.PaymentStatusSuccess, "CREDIT_CARD", "2026-01-01T10:00:00"),
		payment(2, 20, 40, upstream.PaymentStatusSuccess, "PAYPAL", "2026-01-02T10:00:00"),
		payment(3, 10, 75, upstream.PaymentStatusSuccess, "CREDIT_CARD", "2026-01-03T10:00:00"),
	}
	reversed := []upstream.Payment{forward[2], forward[1], forward[0]}
	totals := map[int64]float64{10: 100, 20: 40}

	a := GroupByBooking(forward, totals)
	b := GroupByBooking(reversed, totals)

	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("expected 2 groups from both orders, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].BookingID != b[i].BookingID ||
			a[i].TotalPaid != b[i].TotalPaid ||
			a[i].IsFullyPaid != b[i].IsFullyPaid {
			t.Errorf("group %d differs between input orders: %+v vs %+v", i, a[i], b[i])
		}
	}
	if a[0].BookingID != 10 || a[1].BookingID != 20 {
		t.Errorf("groups must be sorted by booking id, got %v then %v", a[0].BookingID, a[1].BookingID)
	}
}

func TestGroupByBookingOverpaymentClampsRemainingToZero(t *testing.T) {
	payments := []upstream.Payment{
		payment(1, 10, 120, upstream.PaymentStatusSuccess, "CREDIT_CARD", "2026-01-01T10:00:00"),
	}

	groups := GroupByBooking(payments, map[int64]float64{10: 100})
	if groups[0].RemainingAmount != 0 {
		t.Errorf("remaining must floor at zero, got %.2f", groups[0].RemainingAmount)
	}
	if !groups[0].IsFullyPaid {
		t.Error("an overpaid booking is fully paid")
	}
}

func TestGroupByBookingMissingTotalStaysZero(t *testing.T) {
	payments := []upstream.Payment{
		payment(1, 10, 50, upstream.PaymentStatusSuccess, "CREDIT_CARD", "2026-01-01T10:00:00"),
	}

	groups := GroupByBooking(payments, map[int64]float64{})
	if groups[0].TotalAmount != 0 {
		t.Errorf("missing booking total must stay 0, got %.2f", groups[0].TotalAmount)
	}
}

func TestCentsRoundsFloatNoise(t *testing.T) {
	// 0.1+0.2 style drift must not flip a boundary comparison.
	if Cents(0.1+0.2) != 30 {
		t.Errorf("expected 30 cents, got %d", Cents(0.1+0.2))
	}
	if Cents(99.999999999) != 10000 {
		t.Errorf("expected 10000 cents, got %d", Cents(99.999999999))
	}
}

func TestRollupByMethodSumsPerMethod(t *testing.T) {
	group := Group{
		BookingID: 10,
		Payments: []upstream.Payment{
			payment(1, 10, 100, upstream.PaymentStatusSuccess, "CREDIT_CARD", "2026-01-01T10:00:00"),
			payment(2, 10, 150, upstream.PaymentStatusSuccess, "CREDIT_CARD", "2026-01-02T10:00:00"),
			payment(3, 10, 150, upstream.PaymentStatusSuccess, "CREDIT_CARD", "2026-01-03T10:00:00"),
			payment(4, 10, 150, upstream.PaymentStatusSuccess, "CREDIT_CARD", "2026-01-04T10:00:00"),
			payment(5, 10, 80, upstream.PaymentStatusSuccess, "PAYPAL", "2026-01-05T10:00:00"),
		},
	}

	summaries := RollupByMethod(group)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 methods, got %v", summaries)
	}
	if summaries[0].Method != "CREDIT_CARD" || summaries[0].Amount != 550 {
		t.Errorf("expected CREDIT_CARD first with 550, got %+v", summaries[0])
	}
	if summaries[1].Method != "PAYPAL" || summaries[1].Amount != 80 {
		t.Errorf("expected PAYPAL with 80, got %+v", summaries[1])
	}
}

func TestRollupByMethodStatusIsAllOrNothing(t *testing.T) {
	group := Group{
		Payments: []upstream.Payment{
			payment(1, 10, 100, upstream.PaymentStatusSuccess, "CREDIT_CARD", "2026-01-01T10:00:00"),
			payment(2, 10, 50, upstream.PaymentStatusFailure, "CREDIT_CARD", "2026-01-02T10:00:00"),
			payment(3, 10, 80, upstream.PaymentStatusSuccess, "PAYPAL", "2026-01-03T10:00:00"),
		},
	}

	summaries := RollupByMethod(group)
	if summaries[0].Status != upstream.PaymentStatusPending {
		t.Errorf("a method with any non-success payment reads PENDING, got %s", summaries[0].Status)
	}
	if summaries[1].Status != upstream.PaymentStatusSuccess {
		t.Errorf("an all-success method reads SUCCESS, got %s", summaries[1].Status)
	}
}

func TestRollupByMethodBlankMethodBecomesUnknown(t *testing.T) {
	group := Group{
		Payments: []upstream.Payment{
			payment(1, 10, 10, upstream.PaymentStatusSuccess, "", "2026-01-01T10:00:00"),
			payment(2, 10, 11, upstream.PaymentStatusSuccess, "", "2026-01-02T10:00:00"),
		},
	}

	summaries := RollupByMethod(group)
	if len(summaries) != 1 {
		t.Fatalf("blank methods collapse into one bucket, got %v", summaries)
	}
	if summaries[0].Method != "UNKNOWN" || summaries[0].Amount != 21 {
		t.Errorf("expected UNKNOWN with 21, got %+v", summaries[0])
	}
}

func TestGroupForAdminLatestTransactionWinsStatus(t *testing.T) {
	payments := []upstream.Payment{
		payment(1, 10, 50, upstream.PaymentStatusSuccess, "CREDIT_CARD", "2026-01-01T10:00:00"),
		payment(2, 10, 50, upstream.PaymentStatusFailure, "CREDIT_CARD", "2026-01-03T10:00:00"),
		payment(3, 10, 50, upstream.PaymentStatusSuccess, "PAYPAL", "2026-01-02T10:00:00"),
	}

	groups := GroupForAdmin(payments)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	g := groups[0]
	if g.Status != upstream.PaymentStatusFailure {
		t.Errorf("latest transaction's status must win, got %s", g.Status)
	}
	if g.LatestTransactionDate != "2026-01-03T10:00:00" {
		t.Errorf("unexpected latest date %s", g.LatestTransactionDate)
	}
	if g.TotalAmount != 150 {
		t.Errorf("admin total sums every payment, got %.2f", g.TotalAmount)
	}
}

func TestGroupForAdminSortsByBookingID(t *testing.T) {
	payments := []upstream.Payment{
		payment(1, 30, 10, upstream.PaymentStatusSuccess, "PAYPAL", "2026-01-01T10:00:00"),
		payment(2, 10, 10, upstream.PaymentStatusSuccess, "PAYPAL", "2026-01-01T10:00:00"),
		payment(3, 20, 10, upstream.PaymentStatusSuccess, "PAYPAL", "2026-01-01T10:00:00"),
	}

	groups := GroupForAdmin(payments)
	for i, want := range []int64{10, 20, 30} {
		if groups[i].BookingID != want {
			t.Errorf("position %d: expected booking %d, got %d", i, want, groups[i].BookingID)
		}
	}
}
