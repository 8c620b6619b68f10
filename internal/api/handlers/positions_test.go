package handlers_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/api/handlers"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/api/request"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/api/response"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/apperrors"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/model"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/repository"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/service"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/testutil"
)

func setupPositionHandler(t *testing.T) (*handlers.PositionHandler, *repository.PositionRepository, *sql.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	repo := repository.NewPositionRepository(db)
	svc := service.NewPositionService(repo, &testutil.StubQuoteSource{}, zerolog.Nop())
	return handlers.NewPositionHandler(svc), repo, db
}

// TestPositionHandler_Create tests the add/update form endpoint.
//
// WHY: This is the write path of the whole system: valid submissions
// must be normalized and stored with 201, invalid payloads rejected with
// 400 before reaching the store.
func TestPositionHandler_Create(t *testing.T) {
	t.Run("creates a position from a valid request", func(t *testing.T) {
		handler, repo, _ := setupPositionHandler(t)

		body := testutil.JSONBody(t, request.CreatePositionRequest{
			Symbol:    "2330",
			CostBasis: 500,
			Quantity:  100,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/positions", body)
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Status = %d, want 201. Body: %s", rec.Code, rec.Body.String())
		}

		var created model.Position
		testutil.DecodeJSON(t, rec, &created)
		if created.Symbol != "2330.TW" || created.Currency != model.CurrencyTWD {
			t.Errorf("Unexpected created position: %+v", created)
		}

		stored, err := repo.List()
		if err != nil {
			t.Fatalf("List() returned unexpected error: %v", err)
		}
		if len(stored) != 1 {
			t.Errorf("Expected 1 stored position, got %d", len(stored))
		}
	})

	t.Run("upserting the same symbol keeps one entry", func(t *testing.T) {
		handler, repo, _ := setupPositionHandler(t)

		for _, cost := range []float64{100, 120} {
			body := testutil.JSONBody(t, request.CreatePositionRequest{
				Symbol:    "NVDA",
				CostBasis: cost,
				Quantity:  10,
			})
			req := httptest.NewRequest(http.MethodPost, "/api/positions", body)
			rec := httptest.NewRecorder()
			handler.Create(rec, req)
			if rec.Code != http.StatusCreated {
				t.Fatalf("Status = %d, want 201", rec.Code)
			}
		}

		stored, err := repo.List()
		if err != nil {
			t.Fatalf("List() returned unexpected error: %v", err)
		}
		if len(stored) != 1 {
			t.Fatalf("Expected 1 entry after re-submit, got %d", len(stored))
		}
		if stored[0].CostBasis != 120 {
			t.Errorf("CostBasis = %v, want overwritten 120", stored[0].CostBasis)
		}
	})

	t.Run("rejects invalid quantity with 400", func(t *testing.T) {
		handler, repo, _ := setupPositionHandler(t)

		body := testutil.JSONBody(t, request.CreatePositionRequest{
			Symbol:   "NVDA",
			Quantity: 0,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/positions", body)
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", rec.Code)
		}

		stored, err := repo.List()
		if err != nil {
			t.Fatalf("List() returned unexpected error: %v", err)
		}
		if len(stored) != 0 {
			t.Errorf("Invalid request reached the store")
		}
	})

	t.Run("rejects malformed JSON with 400", func(t *testing.T) {
		handler, _, _ := setupPositionHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/positions", nil)
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", rec.Code)
		}
	})
}

// TestPositionHandler_UpdatePrice tests the manual price endpoint.
//
// WHY: Partial mutation must hit only the matching symbol and report 404
// for unknown ones.
func TestPositionHandler_UpdatePrice(t *testing.T) {
	t.Run("updates an existing position", func(t *testing.T) {
		handler, repo, db := setupPositionHandler(t)

		testutil.NewPosition().WithSymbol("8069.TWO").Manual(400).Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodPut,
			"/api/positions/8069.TWO/price",
			map[string]string{"symbol": "8069.TWO"},
			testutil.JSONBody(t, request.UpdateManualPriceRequest{Price: 455}),
		)
		rec := httptest.NewRecorder()

		handler.UpdatePrice(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("Status = %d, want 204. Body: %s", rec.Code, rec.Body.String())
		}

		got, err := repo.Get("8069.TWO")
		if err != nil {
			t.Fatalf("Get() returned unexpected error: %v", err)
		}
		if got.ManualPrice != 455 {
			t.Errorf("ManualPrice = %v, want 455", got.ManualPrice)
		}
	})

	t.Run("returns 404 for unknown symbol", func(t *testing.T) {
		handler, _, _ := setupPositionHandler(t)

		req := testutil.NewRequestWithURLParams(
			http.MethodPut,
			"/api/positions/MISSING/price",
			map[string]string{"symbol": "MISSING"},
			testutil.JSONBody(t, request.UpdateManualPriceRequest{Price: 10}),
		)
		rec := httptest.NewRecorder()

		handler.UpdatePrice(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want 404", rec.Code)
		}

		var resp response.ErrorResponse
		testutil.DecodeJSON(t, rec, &resp)
		if resp.Error != apperrors.ErrFailedToUpdatePrice.Error() {
			t.Errorf("Error message = %q, want %q", resp.Error, apperrors.ErrFailedToUpdatePrice.Error())
		}
	})
}

// TestPositionHandler_Delete tests the delete endpoints.
//
// WHY: Per-symbol deletion of an absent symbol must succeed as a no-op,
// and clear-all must empty the store.
func TestPositionHandler_Delete(t *testing.T) {
	t.Run("deletes a position", func(t *testing.T) {
		handler, repo, db := setupPositionHandler(t)

		testutil.NewPosition().WithSymbol("NVDA").Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/positions/NVDA",
			map[string]string{"symbol": "NVDA"},
			nil,
		)
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("Status = %d, want 204", rec.Code)
		}

		stored, err := repo.List()
		if err != nil {
			t.Fatalf("List() returned unexpected error: %v", err)
		}
		if len(stored) != 0 {
			t.Errorf("Expected empty store, got %d positions", len(stored))
		}
	})

	t.Run("deleting an unknown symbol succeeds", func(t *testing.T) {
		handler, _, _ := setupPositionHandler(t)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/positions/MISSING",
			map[string]string{"symbol": "MISSING"},
			nil,
		)
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("Status = %d, want 204 for no-op delete", rec.Code)
		}
	})

	t.Run("clear removes all positions", func(t *testing.T) {
		handler, repo, db := setupPositionHandler(t)

		testutil.NewPosition().WithSymbol("NVDA").Build(t, db)
		testutil.NewPosition().WithSymbol("AAPL").Build(t, db)

		req := httptest.NewRequest(http.MethodDelete, "/api/positions", nil)
		rec := httptest.NewRecorder()

		handler.Clear(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("Status = %d, want 204", rec.Code)
		}

		stored, err := repo.List()
		if err != nil {
			t.Fatalf("List() returned unexpected error: %v", err)
		}
		if len(stored) != 0 {
			t.Errorf("Expected empty store after clear, got %d positions", len(stored))
		}
	})
}

// TestPositionHandler_List tests listing.
func TestPositionHandler_List(t *testing.T) {
	handler, _, db := setupPositionHandler(t)

	testutil.NewPosition().WithSymbol("NVDA").Build(t, db)
	testutil.NewPosition().WithSymbol("2330.TW").WithCurrency(model.CurrencyTWD).Build(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/positions", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var positions []model.Position
	testutil.DecodeJSON(t, rec, &positions)
	if len(positions) != 2 {
		t.Fatalf("Expected 2 positions, got %d", len(positions))
	}
	if positions[0].Symbol != "NVDA" || positions[1].Symbol != "2330.TW" {
		t.Errorf("Unexpected order: %+v", positions)
	}
}
