package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botbackend/src/model"
	"botbackend/src/service"
	"botbackend/src/store"
)

type mockAccountService struct {
	accounts   []model.Account
	added      model.Account
	testResult service.TestResult
	err        error

	gotInput      service.AddAccountInput
	gotID         string
	gotMonitoring bool
}

func (m *mockAccountService) List() ([]model.Account, error) {
	return m.accounts, m.err
}

func (m *mockAccountService) Add(in service.AddAccountInput) (model.Account, error) {
	m.gotInput = in
	return m.added, m.err
}

func (m *mockAccountService) Delete(id string) error {
	m.gotID = id
	return m.err
}

func (m *mockAccountService) SetMonitoring(id string, monitoring bool) (model.Account, error) {
	m.gotID = id
	m.gotMonitoring = monitoring
	return model.Account{ID: id, Monitoring: monitoring}, m.err
}

func (m *mockAccountService) Test(_ context.Context, id string) (service.TestResult, error) {
	m.gotID = id
	return m.testResult, m.err
}

func accountsRouter(svc *mockAccountService) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/accounts", ListAccountsHandler(svc))
	r.Post("/api/accounts", AddAccountHandler(svc))
	r.Delete("/api/accounts/{id}", DeleteAccountHandler(svc))
	r.Post("/api/accounts/{id}/test", TestAccountHandler(svc))
	r.Put("/api/accounts/{id}/monitoring", SetMonitoringHandler(svc))
	return r
}

func TestListAccountsHandler(t *testing.T) {
	svc := &mockAccountService{accounts: []model.Account{{ID: "a1", Name: "main"}}}

	rr := httptest.NewRecorder()
	accountsRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/accounts", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"a1"`)
}

func TestAddAccountHandler(t *testing.T) {
	svc := &mockAccountService{added: model.Account{ID: "a1", Name: "main"}}

	body := strings.NewReader(`{"name":"main","exchange":"binance","apiKey":"k","secretKey":"s"}`)
	rr := httptest.NewRecorder()
	accountsRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/accounts", body))

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "k", svc.gotInput.APIKeyAlias)
	assert.Equal(t, "s", svc.gotInput.SecretKey)
	assert.Contains(t, rr.Body.String(), `"added"`)
}

func TestAddAccountHandler_BadBody(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/accounts", strings.NewReader(`{broken`))
	accountsRouter(&mockAccountService{}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAddAccountHandler_PersistenceInconsistency(t *testing.T) {
	svc := &mockAccountService{err: fmt.Errorf("%w: account a1 not found after save", store.ErrPersistenceInconsistency)}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/accounts", strings.NewReader(`{"name":"x"}`))
	accountsRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestDeleteAccountHandler_NotFound(t *testing.T) {
	svc := &mockAccountService{err: fmt.Errorf("%w: account a9", store.ErrNotFound)}

	rr := httptest.NewRecorder()
	accountsRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/accounts/a9", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"not_found"`)
	assert.Equal(t, "a9", svc.gotID)
}

func TestTestAccountHandler(t *testing.T) {
	svc := &mockAccountService{
		testResult: service.TestResult{ID: "a1", Connection: service.ConnectionFailed, Reason: "invalid credentials"},
	}

	rr := httptest.NewRecorder()
	accountsRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/accounts/a1/test", nil))

	// A failed connectivity check is still a 200 with a reason.
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"failed"`)
	assert.Equal(t, "a1", svc.gotID)
}

func TestSetMonitoringHandler(t *testing.T) {
	svc := &mockAccountService{}

	body := strings.NewReader(`{"monitoring":true}`)
	rr := httptest.NewRecorder()
	accountsRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/accounts/a1/monitoring", body))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "a1", svc.gotID)
	assert.True(t, svc.gotMonitoring)
}
