package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegister_Success(t *testing.T) {
	_, router, _ := newTestServer()

	recorder := doJSON(t, router, "POST", "/api/v1/auth/register", "", CredentialsRequest{
		Email:    "yeni@gmail.com",
		Password: "secret123",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response SessionResponse
	decodeBody(t, recorder, &response)
	if response.Token == "" {
		t.Error("Expected a session token")
	}
	if response.State != "authenticated" {
		t.Errorf("Expected state 'authenticated', got '%s'", response.State)
	}
	if response.Identity == nil || response.Identity.Email != "yeni@gmail.com" {
		t.Errorf("Unexpected identity: %+v", response.Identity)
	}
	if response.Identity != nil && response.Identity.Guest {
		t.Error("Registered identity must not be a guest")
	}
}

func TestRegister_Validation(t *testing.T) {
	_, router, _ := newTestServer()

	tests := []struct {
		name         string
		request      CredentialsRequest
		expectedHTTP int
		expectedCode string
	}{
		{"missing fields", CredentialsRequest{}, http.StatusBadRequest, "missing_fields"},
		{"non-gmail address", CredentialsRequest{Email: "user@yahoo.com", Password: "secret123"}, http.StatusBadRequest, "invalid_email"},
		{"short password", CredentialsRequest{Email: "user@gmail.com", Password: "12345"}, http.StatusBadRequest, "weak_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doJSON(t, router, "POST", "/api/v1/auth/register", "", tt.request)
			if recorder.Code != tt.expectedHTTP {
				t.Errorf("Expected status code %d, got %d", tt.expectedHTTP, recorder.Code)
			}
			if code := errorCode(t, recorder); code != tt.expectedCode {
				t.Errorf("Expected error code '%s', got '%s'", tt.expectedCode, code)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, router, _ := newTestServer()
	accountToken(t, router, "taken@gmail.com")

	recorder := doJSON(t, router, "POST", "/api/v1/auth/register", "", CredentialsRequest{
		Email:    "taken@gmail.com",
		Password: "secret123",
	})
	if recorder.Code != http.StatusConflict {
		t.Errorf("Expected status code %d, got %d", http.StatusConflict, recorder.Code)
	}
	if code := errorCode(t, recorder); code != "email_taken" {
		t.Errorf("Expected error code 'email_taken', got '%s'", code)
	}
}

func TestLogin_Success(t *testing.T) {
	_, router, _ := newTestServer()
	accountToken(t, router, "login@gmail.com")

	recorder := doJSON(t, router, "POST", "/api/v1/auth/login", "", CredentialsRequest{
		Email:    "login@gmail.com",
		Password: "secret123",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response SessionResponse
	decodeBody(t, recorder, &response)
	if response.Token == "" {
		t.Error("Expected a session token")
	}
	if response.State != "authenticated" {
		t.Errorf("Expected state 'authenticated', got '%s'", response.State)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	_, router, _ := newTestServer()
	accountToken(t, router, "login@gmail.com")

	recorder := doJSON(t, router, "POST", "/api/v1/auth/login", "", CredentialsRequest{
		Email:    "login@gmail.com",
		Password: "wrongpass",
	})
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
	if code := errorCode(t, recorder); code != "invalid_credentials" {
		t.Errorf("Expected error code 'invalid_credentials', got '%s'", code)
	}
}

func TestLogin_UnknownAccount(t *testing.T) {
	_, router, _ := newTestServer()

	recorder := doJSON(t, router, "POST", "/api/v1/auth/login", "", CredentialsRequest{
		Email:    "nobody@gmail.com",
		Password: "secret123",
	})
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}

func TestGuestLogin(t *testing.T) {
	_, router, _ := newTestServer()

	recorder := doJSON(t, router, "POST", "/api/v1/auth/guest", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response SessionResponse
	decodeBody(t, recorder, &response)
	if response.Token == "" {
		t.Error("Expected a guest token")
	}
	if response.State != "guest" {
		t.Errorf("Expected state 'guest', got '%s'", response.State)
	}
	if response.Identity == nil || !response.Identity.Guest {
		t.Errorf("Expected a guest identity, got %+v", response.Identity)
	}
}

func TestSessionCheck_Pending_To_Unauthenticated(t *testing.T) {
	_, router, _ := newTestServer()

	recorder := doJSON(t, router, "GET", "/api/v1/auth/session", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response SessionResponse
	decodeBody(t, recorder, &response)
	if response.State != "unauthenticated" {
		t.Errorf("Expected state 'unauthenticated', got '%s'", response.State)
	}
}

func TestSessionCheck_WithToken(t *testing.T) {
	_, router, _ := newTestServer()
	token := accountToken(t, router, "check@gmail.com")

	recorder := doJSON(t, router, "GET", "/api/v1/auth/session", token, nil)
	var response SessionResponse
	decodeBody(t, recorder, &response)
	if response.State != "authenticated" {
		t.Errorf("Expected state 'authenticated', got '%s'", response.State)
	}
	if response.Identity == nil || response.Identity.Email != "check@gmail.com" {
		t.Errorf("Unexpected identity: %+v", response.Identity)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	_, router, _ := newTestServer(testProduct())
	token := accountToken(t, router, "out@gmail.com")

	recorder := doJSON(t, router, "POST", "/api/v1/auth/logout", token, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response SessionResponse
	decodeBody(t, recorder, &response)
	if response.State != "unauthenticated" {
		t.Errorf("Expected state 'unauthenticated' after logout, got '%s'", response.State)
	}

	// The revoked token no longer opens the session routes.
	recorder = doJSON(t, router, "GET", "/api/v1/cart", token, nil)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d with revoked token, got %d", http.StatusUnauthorized, recorder.Code)
	}
}

func TestLogout_DropsCart(t *testing.T) {
	_, router, _ := newTestServer(testProduct())
	token := accountToken(t, router, "dropped@gmail.com")

	doJSON(t, router, "POST", "/api/v1/cart/items", token, AddCartItemRequest{
		ProductID: "p1", Size: "M", Color: "Siyah", Quantity: 1,
	})
	doJSON(t, router, "POST", "/api/v1/auth/logout", token, nil)

	// Log back in; the in-memory cart is gone.
	recorder := doJSON(t, router, "POST", "/api/v1/auth/login", "", CredentialsRequest{
		Email:    "dropped@gmail.com",
		Password: "secret123",
	})
	var session SessionResponse
	decodeBody(t, recorder, &session)

	recorder = doJSON(t, router, "GET", "/api/v1/cart", session.Token, nil)
	var cart cartResponse
	decodeBody(t, recorder, &cart)
	if !cart.Empty {
		t.Error("Expected cart to be discarded on logout")
	}
}

func gateCount(s *Server) int {
	s.gateMu.Lock()
	defer s.gateMu.Unlock()
	return len(s.gates)
}

func TestGateRegistry_AnonymousRequestsNotRegistered(t *testing.T) {
	server, router, _ := newTestServer()

	// No X-Device-ID header: each request gets a throwaway gate.
	for i := 0; i < 3; i++ {
		request := httptest.NewRequest("GET", "/api/v1/auth/session", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		if recorder.Code != http.StatusOK {
			t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
		}

		var response SessionResponse
		decodeBody(t, recorder, &response)
		if response.State != "unauthenticated" {
			t.Errorf("Expected state 'unauthenticated', got '%s'", response.State)
		}
	}

	if n := gateCount(server); n != 0 {
		t.Errorf("Expected no registered gates for anonymous requests, got %d", n)
	}
}

func TestGateRegistry_OneGatePerDevice(t *testing.T) {
	server, router, _ := newTestServer()

	// doJSON always sends the same X-Device-ID.
	doJSON(t, router, "GET", "/api/v1/auth/session", "", nil)
	doJSON(t, router, "POST", "/api/v1/auth/guest", "", nil)
	doJSON(t, router, "GET", "/api/v1/auth/session", "", nil)

	if n := gateCount(server); n != 1 {
		t.Errorf("Expected a single gate for the device, got %d", n)
	}
}

func TestLogout_NoToken(t *testing.T) {
	_, router, _ := newTestServer()

	recorder := doJSON(t, router, "POST", "/api/v1/auth/logout", "", nil)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}
