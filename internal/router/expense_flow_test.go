package router

import (
	"net/http"
	"testing"
)

func TestExpenseFlow_CRUD(t *testing.T) {
	app := setupApp(t)
	token := tokenFor(t, "alice")

	// Step 1: Create
	id := app.createExpense(t, token, `{"amount":"12.50","description":"Lunch","category":"Food","date":"2025-03-04"}`)

	// Step 2: Read back
	rec := app.request(http.MethodGet, "/api/expenses/"+id, "", token)
	mustStatus(t, rec, http.StatusOK)
	expense := parseJSON(t, rec)
	if expense["amount"] != "12.5" || expense["description"] != "Lunch" || expense["category"] != "Food" {
		t.Errorf("unexpected expense %v", expense)
	}
	if expense["date"] != "2025-03-04T00:00:00Z" {
		t.Errorf("unexpected date %v", expense["date"])
	}
	if expense["ownerId"] != "alice" {
		t.Errorf("unexpected owner %v", expense["ownerId"])
	}

	// Step 3: Partial update keeps the other fields
	rec = app.request(http.MethodPut, "/api/expenses/"+id, `{"amount":15}`, token)
	mustStatus(t, rec, http.StatusOK)
	updated := parseJSON(t, rec)
	if updated["amount"] != "15" || updated["description"] != "Lunch" || updated["date"] != "2025-03-04T00:00:00Z" {
		t.Errorf("unexpected update result %v", updated)
	}

	// Step 4: Delete
	rec = app.request(http.MethodDelete, "/api/expenses/"+id, "", token)
	mustStatus(t, rec, http.StatusOK)
	if parseJSON(t, rec)["message"] != "Expense deleted successfully" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}

	// Step 5: Gone
	rec = app.request(http.MethodGet, "/api/expenses/"+id, "", token)
	mustStatus(t, rec, http.StatusNotFound)

	// Step 6: Every mutation was audited
	var audits int64
	app.DB.Table("audit_logs").Where("owner_id = ? AND resource_id = ?", "alice", id).Count(&audits)
	if audits != 3 {
		t.Errorf("expected 3 audit entries, got %d", audits)
	}
}

func TestExpenseFlow_Defaults(t *testing.T) {
	app := setupApp(t)
	token := tokenFor(t, "alice")

	rec := app.request(http.MethodPost, "/api/expenses", `{"amount":3,"description":"Bus"}`, token)
	mustStatus(t, rec, http.StatusCreated)
	expense := parseJSON(t, rec)
	if expense["category"] != "Other" {
		t.Errorf("expected category Other, got %v", expense["category"])
	}
	if expense["date"] == nil || expense["date"] == "" {
		t.Error("expected a default date")
	}
}

func TestExpenseFlow_OwnershipIsolation(t *testing.T) {
	app := setupApp(t)
	alice := tokenFor(t, "alice")
	bob := tokenFor(t, "bob")

	id := app.createExpense(t, alice, `{"amount":10,"description":"Alice's lunch","category":"Food"}`)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "get", method: http.MethodGet, path: "/api/expenses/" + id},
		{name: "update", method: http.MethodPut, path: "/api/expenses/" + id, body: `{"amount":1}`},
		{name: "delete", method: http.MethodDelete, path: "/api/expenses/" + id},
		{name: "nonexistent", method: http.MethodGet, path: "/api/expenses/0190f5c2-0000-7000-8000-000000000000"},
		{name: "malformed", method: http.MethodGet, path: "/api/expenses/not-a-uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.request(tt.method, tt.path, tt.body, bob)
			mustStatus(t, rec, http.StatusNotFound)
			if code := errorCode(t, rec); code != "EXPENSE_NOT_FOUND" {
				t.Errorf("expected EXPENSE_NOT_FOUND, got %s", code)
			}
		})
	}

	rec := app.request(http.MethodGet, "/api/expenses", "", bob)
	mustStatus(t, rec, http.StatusOK)
	if items := parseJSONArray(t, rec); len(items) != 0 {
		t.Errorf("expected bob to see no expenses, got %d", len(items))
	}

	rec = app.request(http.MethodGet, "/api/expenses/"+id, "", alice)
	mustStatus(t, rec, http.StatusOK)
	if parseJSON(t, rec)["amount"] != "10" {
		t.Error("expected alice's expense to be untouched")
	}
}

func TestExpenseFlow_NegativeAmountRejected(t *testing.T) {
	app := setupApp(t)
	token := tokenFor(t, "alice")

	rec := app.request(http.MethodPost, "/api/expenses", `{"amount":-5,"description":"Refund"}`, token)
	mustStatus(t, rec, http.StatusBadRequest)
	if code := errorCode(t, rec); code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %s", code)
	}

	rec = app.request(http.MethodGet, "/api/expenses", "", token)
	if items := parseJSONArray(t, rec); len(items) != 0 {
		t.Errorf("expected nothing persisted, got %d", len(items))
	}
}

func TestExpenseFlow_ListFiltersAndOrder(t *testing.T) {
	app := setupApp(t)
	token := tokenFor(t, "alice")

	app.createExpense(t, token, `{"amount":1,"description":"a","category":"Food","date":"2025-01-01"}`)
	app.createExpense(t, token, `{"amount":2,"description":"b","category":"Bills","date":"2025-01-20"}`)
	app.createExpense(t, token, `{"amount":3,"description":"c","category":"Food","date":"2025-02-10"}`)

	rec := app.request(http.MethodGet, "/api/expenses", "", token)
	mustStatus(t, rec, http.StatusOK)
	items := parseJSONArray(t, rec)
	if len(items) != 3 {
		t.Fatalf("expected 3 expenses, got %d", len(items))
	}
	var order string
	for _, item := range items {
		order += item.(map[string]interface{})["description"].(string)
	}
	if order != "cba" {
		t.Errorf("expected newest first (cba), got %s", order)
	}

	rec = app.request(http.MethodGet, "/api/expenses?category=Food&endDate=2025-01-31", "", token)
	mustStatus(t, rec, http.StatusOK)
	if items := parseJSONArray(t, rec); len(items) != 1 {
		t.Errorf("expected 1 filtered expense, got %d", len(items))
	}
}

func TestExpenseFlow_Summary(t *testing.T) {
	app := setupApp(t)
	token := tokenFor(t, "alice")

	app.createExpense(t, token, `{"amount":10,"description":"a","category":"Food","date":"2025-01-01"}`)
	app.createExpense(t, token, `{"amount":20,"description":"b","category":"Food","date":"2025-01-02"}`)
	app.createExpense(t, token, `{"amount":30,"description":"c","category":"Transport","date":"2025-01-03"}`)
	app.createExpense(t, tokenFor(t, "bob"), `{"amount":500,"description":"d","category":"Food","date":"2025-01-02"}`)

	rec := app.request(http.MethodGet, "/api/expenses/stats/summary", "", token)
	mustStatus(t, rec, http.StatusOK)
	summary := parseJSON(t, rec)
	if summary["total"] != "60" || summary["count"].(float64) != 3 || summary["average"] != "20" {
		t.Errorf("unexpected summary %v", summary)
	}
	byCategory := summary["byCategory"].(map[string]interface{})
	if byCategory["Food"] != "30" || byCategory["Transport"] != "30" || len(byCategory) != 2 {
		t.Errorf("unexpected byCategory %v", byCategory)
	}

	rec = app.request(http.MethodGet, "/api/expenses/stats/summary?startDate=2025-01-03", "", token)
	mustStatus(t, rec, http.StatusOK)
	if parseJSON(t, rec)["total"] != "30" {
		t.Errorf("unexpected ranged summary %s", rec.Body.String())
	}
}
