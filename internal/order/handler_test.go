package order

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shoplane/shop-backend/internal/apperr"
)

func newTestApp(seed []Order) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler(zap.NewNop(), false)})
	h := NewHandler(NewService(NewInMemoryRepository(seed)))
	h.RegisterProtectedRoutes(app)
	return app
}

func validBody() map[string]any {
	return map[string]any{
		"OName":     "Ceramic Mug",
		"OPrice":    19.99,
		"OQuantity": 2,
		"OCategory": "Kitchen",
	}
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	app := newTestApp(nil)

	res := postJSON(t, app, "/order", validBody())
	if res.StatusCode != fiber.StatusCreated {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("status = %d, body %s", res.StatusCode, b)
	}
	var first Order
	json.NewDecoder(res.Body).Decode(&first)
	if first.ID != "Order01" {
		t.Errorf("first OID = %q, want Order01", first.ID)
	}

	res = postJSON(t, app, "/order", validBody())
	var second Order
	json.NewDecoder(res.Body).Decode(&second)
	if second.ID != "Order02" {
		t.Errorf("second OID = %q, want Order02", second.ID)
	}
}

func TestIDGrowsPastPadWidth(t *testing.T) {
	app := newTestApp([]Order{{ID: "Order99", Name: "Old", Category: "Misc", Quantity: 1}})

	res := postJSON(t, app, "/order", validBody())
	var o Order
	json.NewDecoder(res.Body).Decode(&o)
	if o.ID != "Order100" {
		t.Errorf("OID = %q, want Order100", o.ID)
	}
}

func TestPriceRoundTripsExactly(t *testing.T) {
	app := newTestApp(nil)

	res := postJSON(t, app, "/order", validBody())
	var created Order
	json.NewDecoder(res.Body).Decode(&created)

	getRes, _ := app.Test(httptest.NewRequest("GET", "/order/"+created.ID, nil))
	b, _ := io.ReadAll(getRes.Body)
	if !strings.Contains(string(b), `"OPrice":19.99`) {
		t.Fatalf("price drifted: %s", b)
	}
}

func TestCreateRejectsNonPositiveValues(t *testing.T) {
	cases := []struct {
		field string
		value any
	}{
		{"OPrice", 0},
		{"OPrice", -3.5},
		{"OQuantity", 0},
		{"OQuantity", -1},
	}
	for _, tc := range cases {
		app := newTestApp(nil)
		body := validBody()
		body[tc.field] = tc.value
		res := postJSON(t, app, "/order", body)
		if res.StatusCode != fiber.StatusBadRequest {
			t.Errorf("%s=%v: status = %d, want 400", tc.field, tc.value, res.StatusCode)
			continue
		}
		b, _ := io.ReadAll(res.Body)
		if !strings.Contains(string(b), tc.field) {
			t.Errorf("%s=%v: error does not cite field: %s", tc.field, tc.value, b)
		}
	}
}

func TestUpdateKeepsID(t *testing.T) {
	app := newTestApp(nil)
	postJSON(t, app, "/order", validBody())

	b, _ := json.Marshal(map[string]any{"OID": "Order99", "OName": "Renamed"})
	req := httptest.NewRequest("PUT", "/order/Order01", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var updated Order
	json.NewDecoder(res.Body).Decode(&updated)
	if updated.ID != "Order01" {
		t.Errorf("OID mutated to %q", updated.ID)
	}
	if updated.Name != "Renamed" {
		t.Errorf("name = %q", updated.Name)
	}
}

func TestGetUnknownIDReturns404(t *testing.T) {
	app := newTestApp(nil)
	res, _ := app.Test(httptest.NewRequest("GET", "/order/Order42", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.StatusCode)
	}
}

func TestDelete(t *testing.T) {
	app := newTestApp(nil)
	postJSON(t, app, "/order", validBody())

	res, _ := app.Test(httptest.NewRequest("DELETE", "/order/Order01", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	res, _ = app.Test(httptest.NewRequest("GET", "/order/Order01", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Errorf("deleted order still reachable, status %d", res.StatusCode)
	}
}
