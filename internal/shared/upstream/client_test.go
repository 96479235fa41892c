package upstream

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staymate/internal/shared/config"
	"staymate/pkg/logger"
)

func testClients(t *testing.T, handler http.Handler) (*Clients, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.UpstreamConfig{
		UserServiceURL:         server.URL,
		HotelServiceURL:        server.URL,
		BookingServiceURL:      server.URL,
		PaymentServiceURL:      server.URL,
		NotificationServiceURL: server.URL,
		Timeout:                2 * time.Second,
	}
	return NewClients(cfg, logger.GetDefault()), server
}

func TestClientDecodesEnvelopedData(t *testing.T) {
	clients, _ := testClients(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hotels/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "ok",
			"data":    Hotel{ID: 7, Name: "Seaside Palace", City: "Lisbon"},
		})
	}))

	hotel, err := clients.Hotels.ByID(t.Context(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hotel.ID != 7 || hotel.Name != "Seaside Palace" {
		t.Errorf("unexpected hotel %+v", hotel)
	}
}

func TestClientFallsBackToBarePayload(t *testing.T) {
	clients, _ := testClients(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Legacy endpoint shape: no envelope, just the payload.
		json.NewEncoder(w).Encode([]Hotel{{ID: 1}, {ID: 2}})
	}))

	hotels, err := clients.Hotels.List(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hotels) != 2 {
		t.Errorf("expected 2 hotels, got %v", hotels)
	}
}

func TestClientSurfacesUpstreamVerdict(t *testing.T) {
	clients, _ := testClients(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Hotel not found"})
	}))

	_, err := clients.Hotels.ByID(t.Context(), 99)
	if err == nil {
		t.Fatal("expected an error")
	}

	var verdict *Error
	if !errors.As(err, &verdict) {
		t.Fatalf("expected *upstream.Error, got %T: %v", err, err)
	}
	if verdict.StatusCode != http.StatusNotFound || verdict.Message != "Hotel not found" {
		t.Errorf("unexpected verdict %+v", verdict)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound must recognize a 404 verdict")
	}
	if IsUnavailable(err) {
		t.Error("a verdict is not a transport failure")
	}
}

func TestClientWrapsTransportFailure(t *testing.T) {
	clients, server := testClients(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := clients.Hotels.List(t.Context())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("transport failures must wrap ErrUnavailable, got %v", err)
	}
	if !IsUnavailable(err) {
		t.Error("IsUnavailable must recognize a transport failure")
	}
}

func TestClientSendsQueryAndBody(t *testing.T) {
	var gotMethod, gotQuery string
	var gotBody PaymentRequest

	clients, _ := testClients(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.Query().Get("paymentMethod")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": Payment{PaymentID: 1, BookingID: gotBody.BookingID, PaymentStatus: PaymentStatusSuccess},
		})
	}))

	payment, err := clients.Payments.CreateAndProcess(t.Context(), PaymentRequest{BookingID: 42, Amount: 99.5}, PaymentMethodCreditCard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotQuery != PaymentMethodCreditCard {
		t.Errorf("method travels as a query parameter, got %q", gotQuery)
	}
	if gotBody.Amount != 99.5 || payment.BookingID != 42 {
		t.Errorf("body round-trip failed: %+v / %+v", gotBody, payment)
	}
}
