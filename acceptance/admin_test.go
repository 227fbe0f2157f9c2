package acceptance

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestAdmin_ListCustomers(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	ts.CreateTestCustomer(t, "Ravi", 50)
	ts.CreateTestCustomer(t, "Maya", 0)

	w := ts.GET("/admin/customers")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp []struct {
		Name    string `json:"name"`
		Balance int64  `json:"balance"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if len(resp) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(resp))
	}
}

func TestAdmin_TotalOutstanding(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	ts.CreateTestCustomer(t, "Ravi", 50)
	ts.CreateTestCustomer(t, "Maya", 30)
	ts.CreateTestCustomer(t, "Asha", 0)

	w := ts.GET("/admin/customers/total")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp struct {
		TotalOutstanding int64 `json:"totalOutstanding"`
		Customers        int   `json:"customers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.TotalOutstanding != 80 {
		t.Errorf("expected total 80, got %d", resp.TotalOutstanding)
	}
	if resp.Customers != 2 {
		t.Errorf("expected 2 owing customers, got %d", resp.Customers)
	}
}

func TestAdmin_PaymentLinkRejectsSettledCustomer(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	ts.CreateTestCustomer(t, "Ravi", 0)

	w := ts.POST("/admin/customers/Ravi/payment-link", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d: %s", http.StatusConflict, w.Code, w.Body.String())
	}
}

func TestAdmin_PaymentLinkUnknownCustomer(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	w := ts.POST("/admin/customers/Nobody/payment-link", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d: %s", http.StatusNotFound, w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	w := ts.GET("/health")
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}
