package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-vault/internal/domain"
	"github.com/KasumiMercury/primind-vault/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-vault/internal/service/alert"
	"github.com/KasumiMercury/primind-vault/internal/service/lifecycle"
)

func newAlertRouter(t *testing.T, token string) (*gin.Engine, *domain.MockItemRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := domain.NewMockItemRepository(ctrl)

	dispatcher := alert.NewDispatcher(
		repo,
		domain.NewMockAlertLedger(ctrl),
		taskqueue.NewMockTaskQueue(ctrl),
		domain.NewMockAlertResultRecorder(ctrl),
		lifecycle.NewClassifier(),
		alert.Options{Thresholds: []int{30, 7, 1, 0}, Horizon: 30 * 24 * time.Hour, LedgerTTL: time.Hour},
		nil,
	)
	h := NewAlertHandler(dispatcher)
	h.now = func() time.Time { return fixedNow }

	r := gin.New()
	h.Register(r.Group("/api/v1"), token)
	return r, repo
}

func TestAlertHandler_Dispatch(t *testing.T) {
	r, repo := newAlertRouter(t, "secret")

	repo.EXPECT().ListDue(gomock.Any(), fixedNow.Add(-alert.Lookback), fixedNow.Add(30*24*time.Hour)).Return(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/dispatch", nil)
	req.Header.Set(DispatchTokenHeader, "secret")
	req.Header.Set("X-Run-ID", "run-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	resp := decode[alert.Response](t, w)
	if resp.RunID != "run-42" || resp.EvaluatedCount != 0 {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestAlertHandler_DispatchVirtualTime(t *testing.T) {
	r, repo := newAlertRouter(t, "")

	from := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	repo.EXPECT().ListDue(gomock.Any(), from.Add(-alert.Lookback), gomock.Any()).Return(nil, nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/alerts/dispatch?from=2025-06-01T10:00:00%2B02:00", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestAlertHandler_DispatchBadFrom(t *testing.T) {
	r, _ := newAlertRouter(t, "")

	w := doJSON(t, r, http.MethodPost, "/api/v1/alerts/dispatch?from=yesterday", nil)
	assertError(t, w, http.StatusBadRequest, "validation_error")
}

func TestAlertHandler_DispatchRequiresToken(t *testing.T) {
	r, _ := newAlertRouter(t, "secret")

	w := doJSON(t, r, http.MethodPost, "/api/v1/alerts/dispatch", nil)
	assertError(t, w, http.StatusUnauthorized, "unauthorized")
}
