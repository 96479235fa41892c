package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"staymate/internal/events"
	"staymate/internal/shared/config"
	"staymate/internal/shared/upstream"
	"staymate/pkg/cache"
	"staymate/pkg/logger"
)

type memoryCache struct {
	mu              sync.Mutex
	entries         map[string][]byte
	deletedPatterns []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = raw
	return nil
}

func (m *memoryCache) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[key]; exists {
		return false, nil
	}
	raw, _ := json.Marshal(value)
	m.entries[key] = raw
	return true, nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletedPatterns = append(m.deletedPatterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *memoryCache) Exists(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

func (m *memoryCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := m.Get(ctx, key, dest); err == nil {
		return nil
	}
	value, err := fetcher()
	if err != nil {
		return err
	}
	if err := m.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return m.Get(ctx, key, dest)
}

func (m *memoryCache) Ping(context.Context) error { return nil }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

var _ events.Publisher = (*recordingPublisher)(nil)

// paymentBackend simulates the booking and payment services for one booking
// owned by user 5 with a total of 300, of which 100 is already paid.
type paymentBackend struct {
	processedAmounts []float64
}

func (b *paymentBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /bookings/42", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"data": upstream.Booking{
			ID: 42, UserID: 5, HotelID: 9, TotalAmount: 300, Status: upstream.BookingStatusPending,
		}})
	})
	mux.HandleFunc("GET /hotels/9", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"data": upstream.Hotel{ID: 9, Name: "Seaside Palace"}})
	})
	mux.HandleFunc("GET /payments/booking/42", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []upstream.Payment{
			{PaymentID: 1, BookingID: 42, AmountPaid: 100, PaymentStatus: upstream.PaymentStatusSuccess,
				PaymentMethod: upstream.PaymentMethodCreditCard, PaymentDateTime: "2026-01-01T10:00:00"},
			{PaymentID: 2, BookingID: 42, AmountPaid: 500, PaymentStatus: upstream.PaymentStatusFailure,
				PaymentMethod: upstream.PaymentMethodPayPal, PaymentDateTime: "2026-01-02T10:00:00"},
		}})
	})
	mux.HandleFunc("POST /payments", func(w http.ResponseWriter, r *http.Request) {
		var req upstream.PaymentRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.processedAmounts = append(b.processedAmounts, req.Amount)
		json.NewEncoder(w).Encode(map[string]interface{}{"data": upstream.Payment{
			PaymentID:     3,
			BookingID:     req.BookingID,
			AmountPaid:    req.Amount,
			PaymentStatus: upstream.PaymentStatusSuccess,
			PaymentMethod: r.URL.Query().Get("paymentMethod"),
		}})
	})
	mux.HandleFunc("POST /bookings/42/status", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})
	return mux
}

func newTestService(t *testing.T, b *paymentBackend) (Service, *memoryCache, *recordingPublisher) {
	t.Helper()
	server := httptest.NewServer(b.handler())
	t.Cleanup(server.Close)

	cfg := config.UpstreamConfig{
		UserServiceURL:         server.URL,
		HotelServiceURL:        server.URL,
		BookingServiceURL:      server.URL,
		PaymentServiceURL:      server.URL,
		NotificationServiceURL: server.URL,
		Timeout:                2 * time.Second,
	}
	clients := upstream.NewClients(cfg, logger.GetDefault())

	mem := newMemoryCache()
	pub := &recordingPublisher{}
	return NewService(clients, mem, pub, logger.GetDefault()), mem, pub
}

func TestBookingStateCountsOnlySuccess(t *testing.T) {
	svc, _, _ := newTestService(t, &paymentBackend{})

	state, err := svc.BookingState(t.Context(), 5, 42, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.TotalAmount != 300 {
		t.Errorf("expected total 300, got %.2f", state.TotalAmount)
	}
	if state.AmountPaid != 100 {
		t.Errorf("failed payments must not count, got paid %.2f", state.AmountPaid)
	}
	if state.RemainingAmount != 200 {
		t.Errorf("expected remaining 200, got %.2f", state.RemainingAmount)
	}
	if state.Hotel == nil || state.Hotel.Name != "Seaside Palace" {
		t.Errorf("expected hotel context, got %+v", state.Hotel)
	}
}

func TestBookingStateOwnershipCheck(t *testing.T) {
	svc, _, _ := newTestService(t, &paymentBackend{})

	if _, err := svc.BookingState(t.Context(), 7, 42, false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a stranger, got %v", err)
	}
	if _, err := svc.BookingState(t.Context(), 7, 42, true); err != nil {
		t.Fatalf("an admin may view any booking, got %v", err)
	}
}

func TestPayRejectsOutOfRangeAmounts(t *testing.T) {
	b := &paymentBackend{}
	svc, _, _ := newTestService(t, b)

	if _, err := svc.Pay(t.Context(), 5, 42, 0, upstream.PaymentMethodCreditCard); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount: expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.Pay(t.Context(), 5, 42, 200.01, upstream.PaymentMethodCreditCard); !errors.Is(err, ErrAmountExceedsDue) {
		t.Errorf("201 over 200 remaining: expected ErrAmountExceedsDue, got %v", err)
	}
	if len(b.processedAmounts) != 0 {
		t.Errorf("rejected amounts must never reach the payment service, got %v", b.processedAmounts)
	}
}

func TestPayExactRemainingSucceedsAndPublishes(t *testing.T) {
	b := &paymentBackend{}
	svc, mem, pub := newTestService(t, b)

	payment, err := svc.Pay(t.Context(), 5, 42, 200, upstream.PaymentMethodCreditCard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.PaymentStatus != upstream.PaymentStatusSuccess {
		t.Errorf("unexpected payment %+v", payment)
	}
	if len(b.processedAmounts) != 1 || b.processedAmounts[0] != 200 {
		t.Errorf("expected one processed charge of 200, got %v", b.processedAmounts)
	}

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.events) != 1 || pub.events[0].Type != events.TypePaymentProcessed {
		t.Errorf("expected one PAYMENT_PROCESSED event, got %v", pub.events)
	}

	mem.mu.Lock()
	defer mem.mu.Unlock()
	if len(mem.deletedPatterns) != 1 {
		t.Errorf("expected one notification invalidation, got %v", mem.deletedPatterns)
	}
}

func TestMyPaymentsGroupsWithBookingTotals(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/payments/user/5":
			json.NewEncoder(w).Encode(map[string]interface{}{"data": []upstream.Payment{
				{PaymentID: 1, BookingID: 42, AmountPaid: 100, PaymentStatus: upstream.PaymentStatusSuccess},
				{PaymentID: 2, BookingID: 43, AmountPaid: 50, PaymentStatus: upstream.PaymentStatusSuccess},
			}})
		case r.URL.Path == "/bookings/42":
			json.NewEncoder(w).Encode(map[string]interface{}{"data": upstream.Booking{ID: 42, TotalAmount: 100}})
		case r.URL.Path == "/bookings/43":
			// Booking lookup failure: the group keeps total 0.
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	cfg := config.UpstreamConfig{
		UserServiceURL:         server.URL,
		HotelServiceURL:        server.URL,
		BookingServiceURL:      server.URL,
		PaymentServiceURL:      server.URL,
		NotificationServiceURL: server.URL,
		Timeout:                2 * time.Second,
	}
	svc := NewService(upstream.NewClients(cfg, logger.GetDefault()), newMemoryCache(), &recordingPublisher{}, logger.GetDefault())

	groups, err := svc.MyPayments(t.Context(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %v", groups)
	}
	if !groups[0].IsFullyPaid {
		t.Errorf("booking 42 paid in full, got %+v", groups[0])
	}
	if groups[1].TotalAmount != 0 {
		t.Errorf("failed total lookup keeps 0, got %+v", groups[1])
	}
}

func TestMethodBreakdownRollsUpPerMethod(t *testing.T) {
	svc, _, _ := newTestService(t, &paymentBackend{})

	summaries, err := svc.MethodBreakdown(t.Context(), 5, 42, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 methods, got %v", summaries)
	}
	if summaries[0].Method != upstream.PaymentMethodCreditCard || summaries[0].Status != upstream.PaymentStatusSuccess {
		t.Errorf("unexpected first method %+v", summaries[0])
	}
	if summaries[1].Method != upstream.PaymentMethodPayPal || summaries[1].Status != upstream.PaymentStatusPending {
		t.Errorf("a failed payment must pull its method to PENDING, got %+v", summaries[1])
	}
}
