package payments

import (
	"math"
	"sort"

	"staymate/internal/shared/upstream"
)

// Cents converts a decimal amount to integer cents. Payment comparisons
// happen in cents so float noise cannot flip a boundary check.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// GroupByBooking folds a flat payment list into per-booking groups.
// totalsByBooking maps bookingId to the booking's total amount; a booking
// with no entry keeps TotalAmount 0, which understates RemainingAmount and
// may misreport IsFullyPaid. That mirrors the upstream failure mode instead
// of hiding it.
//
// The result is independent of input order and sorted by booking id.
func GroupByBooking(paymentList []upstream.Payment, totalsByBooking map[int64]float64) []Group {
	grouped := make(map[int64]*Group)
	for _, payment := range paymentList {
		group, ok := grouped[payment.BookingID]
		if !ok {
			group = &Group{BookingID: payment.BookingID}
			grouped[payment.BookingID] = group
		}
		group.Payments = append(group.Payments, payment)
	}

	groups := make([]Group, 0, len(grouped))
	for bookingID, group := range grouped {
		group.TotalAmount = totalsByBooking[bookingID]
		group.TotalPaid = totalPaid(group.Payments)
		group.RemainingAmount = math.Max(group.TotalAmount-group.TotalPaid, 0)
		group.IsFullyPaid = Cents(group.TotalPaid) >= Cents(group.TotalAmount)
		groups = append(groups, *group)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].BookingID < groups[j].BookingID })
	return groups
}

// totalPaid sums SUCCESS payments only.
func totalPaid(paymentList []upstream.Payment) float64 {
	var paid float64
	for _, payment := range paymentList {
		if payment.PaymentStatus == upstream.PaymentStatusSuccess {
			paid += payment.AmountPaid
		}
	}
	return paid
}

// RollupByMethod sums a group's payments per payment method, in first-seen
// order. A method reads SUCCESS only when all of its payments succeeded.
func RollupByMethod(group Group) []MethodSummary {
	index := make(map[string]int)
	summaries := make([]MethodSummary, 0)

	for _, payment := range group.Payments {
		method := payment.PaymentMethod
		if method == "" {
			method = "UNKNOWN"
		}

		i, ok := index[method]
		if !ok {
			i = len(summaries)
			index[method] = i
			summaries = append(summaries, MethodSummary{Method: method, Status: upstream.PaymentStatusSuccess})
		}

		summaries[i].Amount += payment.AmountPaid
		if payment.PaymentStatus != upstream.PaymentStatusSuccess {
			summaries[i].Status = upstream.PaymentStatusPending
		}
	}

	return summaries
}

// GroupForAdmin folds every payment into admin groups: TotalAmount here is
// the sum of all payment amounts for the booking, and the group status
// tracks the latest transaction. Output is sorted by booking id.
func GroupForAdmin(paymentList []upstream.Payment) []AdminGroup {
	grouped := make(map[int64]*AdminGroup)
	for _, payment := range paymentList {
		group, ok := grouped[payment.BookingID]
		if !ok {
			grouped[payment.BookingID] = &AdminGroup{
				BookingID:             payment.BookingID,
				TotalAmount:           payment.AmountPaid,
				Status:                payment.PaymentStatus,
				LatestTransactionDate: payment.PaymentDateTime,
				Payments:              []upstream.Payment{payment},
			}
			continue
		}

		group.TotalAmount += payment.AmountPaid
		group.Payments = append(group.Payments, payment)
		// ISO timestamps order lexicographically
		if payment.PaymentDateTime > group.LatestTransactionDate {
			group.LatestTransactionDate = payment.PaymentDateTime
			group.Status = payment.PaymentStatus
		}
	}

	groups := make([]AdminGroup, 0, len(grouped))
	for _, group := range grouped {
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].BookingID < groups[j].BookingID })
	return groups
}
