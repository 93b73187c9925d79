package wizard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func TestHandlerServesFirstStepOnGet(t *testing.T) {
	wz := newMessageWizard(t, wizard.WithAction("/contact"))

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	rec := httptest.NewRecorder()
	wz.Handler(nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", got)
	}

	html := rec.Body.String()
	for _, want := range []string{
		`action="/contact"`,
		`method="POST"`,
		`name="wizard_step" value="0"`,
		`name="0-subject"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("GET page missing %q", want)
		}
	}
}

func TestHandlerDrivesFullTraversal(t *testing.T) {
	var received []wizard.CompletedForm
	wz := newMessageWizard(t)
	handler := wz.Handler(func(w http.ResponseWriter, _ *http.Request, forms []wizard.CompletedForm) {
		received = forms
		w.WriteHeader(http.StatusCreated)
	})

	post := func(values url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := post(url.Values{
		"wizard_step": {"0"},
		"0-subject":   {"Hello"},
		"0-sender":    {"ana@example.com"},
	})
	if first.Code != http.StatusOK {
		t.Fatalf("first POST status = %d, want %d", first.Code, http.StatusOK)
	}
	if !strings.Contains(first.Body.String(), `name="wizard_step" value="1"`) {
		t.Fatal("first POST did not advance to the second step")
	}

	second := post(url.Values{
		"wizard_step": {"1"},
		"0-subject":   {"Hello"},
		"0-sender":    {"ana@example.com"},
		"hash_0":      {stepZeroTag(t, "Hello", "ana@example.com")},
		"1-message":   {"body"},
	})
	if second.Code != http.StatusCreated {
		t.Fatalf("final POST status = %d, want %d", second.Code, http.StatusCreated)
	}
	if len(received) != 2 {
		t.Fatalf("completion received %d forms, want 2", len(received))
	}
	if received[1].Data["message"] != "body" {
		t.Errorf("final step data = %v", received[1].Data)
	}
}

func TestHandlerRejectsForgedTag(t *testing.T) {
	wz := newMessageWizard(t, wizard.WithCompletion(func(context.Context, []wizard.CompletedForm) error {
		t.Error("completion handler ran despite a forged tag")
		return nil
	}))

	values := url.Values{
		"wizard_step": {"1"},
		"0-subject":   {"edited"},
		"0-sender":    {"ana@example.com"},
		"hash_0":      {stepZeroTag(t, "Hello", "ana@example.com")},
		"1-message":   {"body"},
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	wz.Handler(nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST status = %d, want %d", rec.Code, http.StatusOK)
	}
	html := rec.Body.String()
	if !strings.Contains(html, "could not verify") {
		t.Error("response missing the tamper notice")
	}
	if !strings.Contains(html, `name="wizard_step" value="0"`) {
		t.Error("response should restart from the affected step")
	}
}

func TestHandlerDefaultCompletion(t *testing.T) {
	wz := newMessageWizard(t)

	values := url.Values{
		"wizard_step": {"1"},
		"0-subject":   {"Hello"},
		"0-sender":    {"ana@example.com"},
		"hash_0":      {stepZeroTag(t, "Hello", "ana@example.com")},
		"1-message":   {"body"},
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	wz.Handler(nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Thank you") {
		t.Error("default completion page missing")
	}
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	wz := newMessageWizard(t)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	wz.Handler(nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	if got := rec.Header().Get("Allow"); got != "GET, HEAD, POST" {
		t.Errorf("Allow = %q", got)
	}
}
