package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sweetcreations/internal/models"
)

func TestContactSubmit(t *testing.T) {
	env := newTestEnv(t)
	email := "inquiry@test.local"
	cleanContactEmails(t, env.DB, email)
	t.Cleanup(func() { cleanContactEmails(t, env.DB, email) })

	payload := `{"name":"Jamie","email":"` + email + `","phone":"555-0100",` +
		`"occasionType":"Wedding","eventDate":"2027-06-12","message":"We need a three tier cake."}`

	rec := httptest.NewRecorder()
	env.Contact.Submit(rec, httptest.NewRequest("POST", "/api/contact", strings.NewReader(payload)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Thank you for your inquiry") {
		t.Errorf("body: %s", rec.Body.String())
	}

	var body struct {
		Data *models.ContactMessage `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Status != models.ContactStatusNew {
		t.Errorf("status: got %q, want new", body.Data.Status)
	}
	if body.Data.EventDate == nil || body.Data.EventDate.Year() != 2027 {
		t.Errorf("event date not stored: %v", body.Data.EventDate)
	}
}

func TestContactSubmitValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{"missing name", `{"email":"x@test.local","message":"hi"}`, "Please provide your name"},
		{"missing email", `{"name":"J","message":"hi"}`, "Please provide an email"},
		{"missing message", `{"name":"J","email":"x@test.local"}`, "Please provide a message"},
		{"bad event date", `{"name":"J","email":"x@test.local","message":"hi","eventDate":"soon"}`, "Invalid event date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			env.Contact.Submit(rec, httptest.NewRequest("POST", "/api/contact", strings.NewReader(tt.payload)))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.wantMsg) {
				t.Errorf("body: got %s, want %q", rec.Body.String(), tt.wantMsg)
			}
		})
	}
}

func TestContactGetMarksRead(t *testing.T) {
	env := newTestEnv(t)
	email := "inquiry-read@test.local"
	cleanContactEmails(t, env.DB, email)
	t.Cleanup(func() { cleanContactEmails(t, env.DB, email) })

	created, err := env.Contacts.Insert(&models.ContactMessage{
		Name: "Reader", Email: email, Message: "Opening this marks it read",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	rec := httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest("GET", "/api/contact/"+created.ID.String(), nil), "id", created.ID.String())
	env.Contact.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var body struct {
		Data *models.ContactMessage `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Status != models.ContactStatusRead {
		t.Errorf("status after open: got %q, want read", body.Data.Status)
	}
}

func TestContactUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	email := "inquiry-status@test.local"
	cleanContactEmails(t, env.DB, email)
	t.Cleanup(func() { cleanContactEmails(t, env.DB, email) })

	created, err := env.Contacts.Insert(&models.ContactMessage{
		Name: "Stateful", Email: email, Message: "Move me along",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	rec := httptest.NewRecorder()
	req := withChiURLParam(
		httptest.NewRequest("PATCH", "/api/contact/"+created.ID.String()+"/status", strings.NewReader(`{"status":"replied"}`)),
		"id", created.ID.String())
	env.Contact.UpdateStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}

	// Unknown workflow states are rejected.
	rec = httptest.NewRecorder()
	req = withChiURLParam(
		httptest.NewRequest("PATCH", "/api/contact/"+created.ID.String()+"/status", strings.NewReader(`{"status":"spam"}`)),
		"id", created.ID.String())
	env.Contact.UpdateStatus(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status: got %d, want 400", rec.Code)
	}
}
