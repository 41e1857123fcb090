package product

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

func newTestApp(scheme IDScheme, seed []Product) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler(zap.NewNop(), false)})
	h := NewHandler(NewService(NewInMemoryRepository(seed), scheme))
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func validBody() map[string]any {
	return map[string]any{
		"PName":        "Ceramic Mug",
		"PDescription": "350ml stoneware mug",
		"PPrice":       19.99,
		"PQuantity":    40,
		"PCategory":    "Kitchen",
		"PImage":       "/uploads/products/mug.png",
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

func TestCreateSequentialIDs(t *testing.T) {
	app := newTestApp(SequentialIDs, nil)

	res := postJSON(t, app, "/product", validBody())
	if res.StatusCode != fiber.StatusCreated {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("status = %d, body %s", res.StatusCode, b)
	}
	var first Product
	json.NewDecoder(res.Body).Decode(&first)
	if first.ID != "Product001" {
		t.Errorf("first PID = %q, want Product001", first.ID)
	}

	res = postJSON(t, app, "/product", validBody())
	var second Product
	json.NewDecoder(res.Body).Decode(&second)
	if second.ID != "Product002" {
		t.Errorf("second PID = %q, want Product002", second.ID)
	}
}

func TestCreateRandomIDs(t *testing.T) {
	app := newTestApp(RandomIDs, nil)

	res := postJSON(t, app, "/product", validBody())
	var p Product
	json.NewDecoder(res.Body).Decode(&p)
	if !strings.HasPrefix(p.ID, "PRD-") || len(p.ID) != len("PRD-")+6 {
		t.Errorf("random PID = %q", p.ID)
	}
}

func TestPriceRoundTripsExactly(t *testing.T) {
	app := newTestApp(SequentialIDs, nil)

	res := postJSON(t, app, "/product", validBody())
	var created Product
	json.NewDecoder(res.Body).Decode(&created)

	getRes, _ := app.Test(httptest.NewRequest("GET", "/product/"+created.ID, nil))
	b, _ := io.ReadAll(getRes.Body)
	if !strings.Contains(string(b), `"PPrice":19.99`) {
		t.Fatalf("price drifted: %s", b)
	}
}

func TestCreateRejectsNonPositivePrice(t *testing.T) {
	for _, price := range []float64{0, -3.5} {
		app := newTestApp(SequentialIDs, nil)
		body := validBody()
		body["PPrice"] = price
		res := postJSON(t, app, "/product", body)
		if res.StatusCode != fiber.StatusBadRequest {
			t.Errorf("price %v: status = %d, want 400", price, res.StatusCode)
			continue
		}
		b, _ := io.ReadAll(res.Body)
		if !strings.Contains(string(b), "PPrice") {
			t.Errorf("price %v: error does not cite PPrice: %s", price, b)
		}
	}
}

func TestCreateRejectsNegativeQuantity(t *testing.T) {
	app := newTestApp(SequentialIDs, nil)
	body := validBody()
	body["PQuantity"] = -1
	res := postJSON(t, app, "/product", body)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.StatusCode)
	}
}

func TestUpdateKeepsID(t *testing.T) {
	app := newTestApp(SequentialIDs, nil)
	postJSON(t, app, "/product", validBody())

	b, _ := json.Marshal(map[string]any{"PID": "Product999", "PName": "Renamed Mug"})
	req := httptest.NewRequest("PUT", "/product/Product001", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var updated Product
	json.NewDecoder(res.Body).Decode(&updated)
	if updated.ID != "Product001" {
		t.Errorf("PID mutated to %q", updated.ID)
	}
	if updated.Name != "Renamed Mug" {
		t.Errorf("name = %q", updated.Name)
	}
}

func TestGetUnknownIDReturns404(t *testing.T) {
	app := newTestApp(SequentialIDs, nil)
	res, _ := app.Test(httptest.NewRequest("GET", "/product/Product042", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.StatusCode)
	}
}

func TestDelete(t *testing.T) {
	app := newTestApp(SequentialIDs, nil)
	postJSON(t, app, "/product", validBody())

	res, _ := app.Test(httptest.NewRequest("DELETE", "/product/Product001", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	res, _ = app.Test(httptest.NewRequest("GET", "/product/Product001", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Errorf("deleted product still reachable, status %d", res.StatusCode)
	}
}
