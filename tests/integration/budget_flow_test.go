package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestBudgetFlow(t *testing.T) {
	t.Run("budget_tracks_spending", func(t *testing.T) {
		app := setupApp(t)

		rec := app.doRequest(t, http.MethodPost, "/api/v1/budgets", map[string]interface{}{
			"name":     "Groceries",
			"category": "Food & Dining",
			"amount":   200.0,
		}, "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
		}
		budget, _ := parseBody(t, rec)["budget"].(map[string]interface{})
		id, _ := budget["id"].(string)
		if id == "" {
			t.Fatal("expected generated budget id")
		}

		// Spend inside the current monthly window.
		now := time.Now()
		date := time.Date(now.Year(), now.Month(), 10, 12, 0, 0, 0, time.UTC).Format(time.RFC3339)
		rec = app.doRequest(t, http.MethodPost, "/api/v1/transactions", map[string]interface{}{
			"amount":   170.0,
			"type":     "expense",
			"category": "Food & Dining",
			"date":     date,
		}, "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
		}

		// Fetching the budget reconciles the cached spent value.
		rec = app.doRequest(t, http.MethodGet, "/api/v1/budgets/"+id, nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("get budget failed: %d", rec.Code)
		}
		budget, _ = parseBody(t, rec)["budget"].(map[string]interface{})
		if spent, _ := budget["spent"].(float64); spent != 170 {
			t.Errorf("expected spent 170, got %v", budget["spent"])
		}

		rec = app.doRequest(t, http.MethodGet, "/api/v1/budgets/"+id+"/progress", nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("progress failed: %d", rec.Code)
		}
		progress, _ := parseBody(t, rec)["progress"].(map[string]interface{})
		if pct, _ := progress["percentage"].(float64); pct != 85 {
			t.Errorf("expected 85%% progress, got %v", progress["percentage"])
		}
		if over, _ := progress["over_warning"].(bool); !over {
			t.Error("expected over_warning at 85% of default threshold")
		}
	})

	t.Run("update_moves_window_and_ceiling", func(t *testing.T) {
		app := setupApp(t)

		rec := app.doRequest(t, http.MethodPost, "/api/v1/budgets", map[string]interface{}{
			"name":     "Pausable",
			"category": "Shopping",
			"amount":   150.0,
		}, "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
		}
		budget, _ := parseBody(t, rec)["budget"].(map[string]interface{})
		id, _ := budget["id"].(string)

		// Freezing a budget sets its ceiling to zero; the window start moves
		// with it.
		start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		rec = app.doRequest(t, http.MethodPut, "/api/v1/budgets/"+id, map[string]interface{}{
			"amount":     0.0,
			"start_date": start.Format(time.RFC3339),
		}, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("update budget failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.doRequest(t, http.MethodGet, "/api/v1/budgets/"+id, nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("get budget failed: %d", rec.Code)
		}
		budget, _ = parseBody(t, rec)["budget"].(map[string]interface{})
		if ceiling, _ := budget["amount"].(float64); ceiling != 0 {
			t.Errorf("expected ceiling 0 after update, got %v", budget["amount"])
		}
		got, _ := budget["start_date"].(string)
		stored, err := time.Parse(time.RFC3339, got)
		if err != nil || !stored.Equal(start) {
			t.Errorf("expected start date %v, got %q", start, got)
		}
	})

	t.Run("invalid_period_rejected", func(t *testing.T) {
		app := setupApp(t)

		rec := app.doRequest(t, http.MethodPost, "/api/v1/budgets", map[string]interface{}{
			"name":     "Bad",
			"category": "Shopping",
			"amount":   10.0,
			"period":   "fortnightly",
		}, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for invalid period, got %d", rec.Code)
		}
	})
}

func TestReportFlow(t *testing.T) {
	t.Run("summary_and_breakdown", func(t *testing.T) {
		app := setupApp(t)

		day := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
		for _, tx := range []map[string]interface{}{
			{"amount": 100.0, "type": "income", "category": "Salary", "date": day.Format(time.RFC3339)},
			{"amount": 30.0, "type": "expense", "category": "Shopping", "date": day.Format(time.RFC3339)},
			{"amount": 10.0, "type": "expense", "category": "Entertainment", "date": day.Format(time.RFC3339)},
		} {
			rec := app.doRequest(t, http.MethodPost, "/api/v1/transactions", tx, "")
			if rec.Code != http.StatusCreated {
				t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
			}
		}

		rangeQuery := fmt.Sprintf("start=%s&end=%s", "2026-04-14", "2026-04-16")

		rec := app.doRequest(t, http.MethodGet, "/api/v1/reports/summary?"+rangeQuery, nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("summary failed: %d %s", rec.Code, rec.Body.String())
		}
		summary, _ := parseBody(t, rec)["summary"].(map[string]interface{})
		if summary["income"] != 100.0 || summary["expense"] != 40.0 || summary["transfer"] != 0.0 {
			t.Errorf("unexpected summary: %+v", summary)
		}

		rec = app.doRequest(t, http.MethodGet, "/api/v1/reports/breakdown?type=expense&"+rangeQuery, nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("breakdown failed: %d %s", rec.Code, rec.Body.String())
		}
		breakdown, _ := parseBody(t, rec)["breakdown"].([]interface{})
		if len(breakdown) != 2 {
			t.Fatalf("expected 2 breakdown rows, got %d", len(breakdown))
		}
		first, _ := breakdown[0].(map[string]interface{})
		if first["category"] != "Shopping" {
			t.Errorf("expected Shopping first by total, got %v", first["category"])
		}
	})

	t.Run("summary_requires_range", func(t *testing.T) {
		app := setupApp(t)

		rec := app.doRequest(t, http.MethodGet, "/api/v1/reports/summary", nil, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 without a range, got %d", rec.Code)
		}
	})

	t.Run("trends_reject_bad_months", func(t *testing.T) {
		app := setupApp(t)

		rec := app.doRequest(t, http.MethodGet, "/api/v1/reports/trends?months=0", nil, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for months=0, got %d", rec.Code)
		}
	})
}

func TestSettingsFlow(t *testing.T) {
	t.Run("seeded_defaults_are_readable", func(t *testing.T) {
		app := setupApp(t)

		rec := app.doRequest(t, http.MethodGet, "/api/v1/settings/currency", nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("get setting failed: %d", rec.Code)
		}
		setting, _ := parseBody(t, rec)["setting"].(map[string]interface{})
		if setting["value"] != "USD" {
			t.Errorf("expected seeded USD, got %v", setting["value"])
		}
	})

	t.Run("upsert_via_put", func(t *testing.T) {
		app := setupApp(t)

		rec := app.doRequest(t, http.MethodPut, "/api/v1/settings/theme", map[string]string{"value": "dark"}, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("set failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.doRequest(t, http.MethodGet, "/api/v1/settings/theme", nil, "")
		setting, _ := parseBody(t, rec)["setting"].(map[string]interface{})
		if setting["value"] != "dark" {
			t.Errorf("expected dark, got %v", setting["value"])
		}
	})

	t.Run("missing_key_404", func(t *testing.T) {
		app := setupApp(t)

		rec := app.doRequest(t, http.MethodGet, "/api/v1/settings/unset", nil, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}
