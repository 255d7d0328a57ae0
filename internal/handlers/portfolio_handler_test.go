package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sweetcreations/internal/models"
)

// listBody mirrors the paginated envelope for decoding in tests.
type listBody struct {
	Status  string                 `json:"status"`
	Results int                    `json:"results"`
	Total   int                    `json:"total"`
	Page    int                    `json:"page"`
	Pages   int                    `json:"pages"`
	Data    []models.PortfolioItem `json:"data"`
}

type itemBody struct {
	Status  string                `json:"status"`
	Message string                `json:"message"`
	Data    *models.PortfolioItem `json:"data"`
}

func createItem(t *testing.T, env *testEnv, title string, mutate func(*models.PortfolioItem)) *models.PortfolioItem {
	t.Helper()

	item := &models.PortfolioItem{
		Title:       title,
		Description: "A test cake for handler tests",
		Category:    models.CategoryBirthdayCakes,
		Price:       120,
		IsActive:    true,
	}
	if mutate != nil {
		mutate(item)
	}
	item.ApplyDefaults()

	created, err := env.PortfolioDB.Insert(item)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	return created
}

func TestPortfolioListEnvelope(t *testing.T) {
	env := newTestEnv(t)
	title := "Handler List Cake " + t.Name()
	cleanPortfolioTitles(t, env.DB, title)
	t.Cleanup(func() { cleanPortfolioTitles(t, env.DB, title) })
	createItem(t, env, title, nil)

	rec := httptest.NewRecorder()
	env.Portfolio.List(rec, httptest.NewRequest("GET", "/api/portfolio?search="+strings.ReplaceAll(title, " ", "+"), nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var body listBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "success" {
		t.Errorf("status field: got %q, want success", body.Status)
	}
	if body.Results != 1 || body.Total != 1 || body.Page != 1 || body.Pages != 1 {
		t.Errorf("counts: got results=%d total=%d page=%d pages=%d, want all 1",
			body.Results, body.Total, body.Page, body.Pages)
	}
	if len(body.Data) != 1 || body.Data[0].Title != title {
		t.Errorf("data: got %+v", body.Data)
	}
}

func TestPortfolioListInvalidCategory(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Portfolio.List(rec, httptest.NewRequest("GET", "/api/portfolio?category=Bread", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid category") {
		t.Errorf("expected invalid category message, got %s", rec.Body.String())
	}
}

func TestPortfolioListClampsPage(t *testing.T) {
	env := newTestEnv(t)

	// page=0 and a negative limit must not produce a negative OFFSET.
	rec := httptest.NewRecorder()
	env.Portfolio.List(rec, httptest.NewRequest("GET", "/api/portfolio?page=0&limit=-5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var body listBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Page != 1 {
		t.Errorf("page: got %d, want 1", body.Page)
	}
}

func TestPortfolioGetIncrementsViews(t *testing.T) {
	env := newTestEnv(t)
	title := "Handler View Cake " + t.Name()
	cleanPortfolioTitles(t, env.DB, title)
	t.Cleanup(func() { cleanPortfolioTitles(t, env.DB, title) })
	created := createItem(t, env, title, nil)

	for want := 1; want <= 2; want++ {
		rec := httptest.NewRecorder()
		req := withChiURLParam(httptest.NewRequest("GET", "/api/portfolio/"+created.ID.String(), nil), "id", created.ID.String())
		env.Portfolio.Get(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rec.Code)
		}
		var body itemBody
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Data.Views != want {
			t.Errorf("views after fetch %d: got %d, want %d", want, body.Data.Views, want)
		}
	}
}

func TestPortfolioGetNotFound(t *testing.T) {
	env := newTestEnv(t)

	tests := []string{"not-a-uuid", "00000000-0000-0000-0000-000000000000"}
	for _, id := range tests {
		rec := httptest.NewRecorder()
		req := withChiURLParam(httptest.NewRequest("GET", "/api/portfolio/"+id, nil), "id", id)
		env.Portfolio.Get(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("id %q: status got %d, want 404", id, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Portfolio item not found") {
			t.Errorf("id %q: body %s", id, rec.Body.String())
		}
	}
}

func TestPortfolioCreate(t *testing.T) {
	env := newTestEnv(t)
	title := "Handler Create Cake " + t.Name()
	cleanPortfolioTitles(t, env.DB, title)
	t.Cleanup(func() { cleanPortfolioTitles(t, env.DB, title) })

	// Tags arrive as a comma string, featured as a string boolean: both are
	// what the admin form actually sends.
	payload := `{"title":"` + title + `","description":"Three tiers of chocolate",` +
		`"category":"Wedding Cakes","price":450,"tags":" chocolate, tiered ,","featured":"true"}`

	rec := httptest.NewRecorder()
	env.Portfolio.Create(rec, httptest.NewRequest("POST", "/api/portfolio", strings.NewReader(payload)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var body itemBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := body.Data
	if got.Servings != models.DefaultServings || got.PreparationTime != models.DefaultPreparationTime {
		t.Errorf("defaults not applied: servings=%q prep=%q", got.Servings, got.PreparationTime)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "chocolate" || got.Tags[1] != "tiered" {
		t.Errorf("tags not normalized: %v", got.Tags)
	}
	if !got.Featured {
		t.Error("featured string \"true\" should coerce to true")
	}
	if !got.IsActive {
		t.Error("new items should default to active")
	}
}

func TestPortfolioCreateValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{"missing title", `{"description":"x","category":"Desserts"}`, "Please provide a title"},
		{"bad category", `{"title":"T","description":"x","category":"Bread"}`, "Invalid category"},
		{"negative price", `{"title":"T","description":"x","category":"Desserts","price":-1}`, "Price must not be negative"},
		{"bad json", `{"title":`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			env.Portfolio.Create(rec, httptest.NewRequest("POST", "/api/portfolio", strings.NewReader(tt.payload)))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.wantMsg) {
				t.Errorf("body: got %s, want %q", rec.Body.String(), tt.wantMsg)
			}
		})
	}
}

func TestPortfolioUpdatePartial(t *testing.T) {
	env := newTestEnv(t)
	title := "Handler Update Cake " + t.Name()
	cleanPortfolioTitles(t, env.DB, title)
	t.Cleanup(func() { cleanPortfolioTitles(t, env.DB, title) })
	created := createItem(t, env, title, func(p *models.PortfolioItem) {
		p.Price = 200
		p.Tags = models.TagList{"original"}
	})

	rec := httptest.NewRecorder()
	req := withChiURLParam(
		httptest.NewRequest("PUT", "/api/portfolio/"+created.ID.String(), strings.NewReader(`{"price":275}`)),
		"id", created.ID.String())
	env.Portfolio.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body itemBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Price != 275 {
		t.Errorf("price: got %v, want 275", body.Data.Price)
	}
	if body.Data.Title != title {
		t.Errorf("title changed by partial update: %q", body.Data.Title)
	}
	if len(body.Data.Tags) != 1 || body.Data.Tags[0] != "original" {
		t.Errorf("tags changed by partial update: %v", body.Data.Tags)
	}
}

func TestPortfolioUpdateRejectsInvalidMerge(t *testing.T) {
	env := newTestEnv(t)
	title := "Handler Merge Cake " + t.Name()
	cleanPortfolioTitles(t, env.DB, title)
	t.Cleanup(func() { cleanPortfolioTitles(t, env.DB, title) })
	created := createItem(t, env, title, nil)

	rec := httptest.NewRecorder()
	req := withChiURLParam(
		httptest.NewRequest("PUT", "/api/portfolio/"+created.ID.String(), strings.NewReader(`{"category":"Bread"}`)),
		"id", created.ID.String())
	env.Portfolio.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestPortfolioDelete(t *testing.T) {
	env := newTestEnv(t)
	title := "Handler Delete Cake " + t.Name()
	cleanPortfolioTitles(t, env.DB, title)
	created := createItem(t, env, title, nil)

	rec := httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest("DELETE", "/api/portfolio/"+created.ID.String(), nil), "id", created.ID.String())
	env.Portfolio.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Portfolio item deleted successfully") {
		t.Errorf("body: %s", rec.Body.String())
	}

	// Second delete must 404.
	rec = httptest.NewRecorder()
	env.Portfolio.Delete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want 404", rec.Code)
	}
}

func TestPortfolioCategories(t *testing.T) {
	env := newTestEnv(t)
	title := "Handler Category Cake " + t.Name()
	cleanPortfolioTitles(t, env.DB, title)
	t.Cleanup(func() { cleanPortfolioTitles(t, env.DB, title) })
	createItem(t, env, title, func(p *models.PortfolioItem) {
		p.Category = models.CategoryCustomCakes
	})

	rec := httptest.NewRecorder()
	env.Portfolio.Categories(rec, httptest.NewRequest("GET", "/api/portfolio/categories/list", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	// The data field must decode as a plain string list.
	var body struct {
		Data []string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	found := false
	for _, c := range body.Data {
		if c == string(models.CategoryCustomCakes) {
			found = true
		}
	}
	if !found {
		t.Errorf("categories: got %v, want %q included", body.Data, models.CategoryCustomCakes)
	}
}
