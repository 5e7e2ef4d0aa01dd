/*
Copyright 2025 Concilia Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmachado/concilia"
	"github.com/rmachado/concilia/config"
	"github.com/rmachado/concilia/internal/request"
	"github.com/rmachado/concilia/model"
)

type TestRequest struct {
	Payload  io.Reader
	Router   *gin.Engine
	Response interface{}
	Method   string
	Route    string
	Header   map[string]string
}

func SetUpTestRequest(s TestRequest) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(s.Method, s.Route, s.Payload)
	for key, value := range s.Header {
		req.Header.Set(key, value)
	}
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	s.Router.ServeHTTP(resp, req)

	if s.Response != nil {
		if err := json.NewDecoder(resp.Body).Decode(&s.Response); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func setupRouter() (*gin.Engine, *concilia.Concilia) {
	config.MockConfig(&config.Configuration{})
	engine := concilia.NewConcilia(nil, nil)
	router := NewAPI(engine).Router()
	return router, engine
}

func reconciliationPayload() map[string]interface{} {
	note := func(number, code string, billed float64) map[string]interface{} {
		return map[string]interface{}{
			"note_number":    number,
			"associate_code": code,
			"total_debits":   billed,
			"billed_value":   billed,
			"items": []map[string]interface{}{
				{
					"product_code":    "MEN",
					"description":     "Mensalidade",
					"quantity":        1,
					"unit_value":      billed,
					"total_value":     billed,
					"credit_or_debit": "DEBIT",
					"category":        "mensalidades",
				},
			},
		}
	}
	return map[string]interface{}{
		"import_batch_id": "batch_2025_07",
		"reference_date":  "2025-07-01T00:00:00Z",
		"file_notes": []interface{}{
			note("001", "S1", 10.00),
			note("002", "S2", 15.00),
		},
		"bank_notes": []interface{}{
			note("001", "S1", 10.00),
			note("003", "S3", 10.00),
		},
	}
}

func runReconciliation(t *testing.T, router *gin.Engine) string {
	t.Helper()
	payload, err := request.ToJsonReq(reconciliationPayload())
	require.NoError(t, err)

	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Payload:  payload,
		Router:   router,
		Response: &response,
		Method:   "POST",
		Route:    "/reconciliations",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.Code)

	reportID, ok := response["report_id"].(string)
	require.True(t, ok)
	return reportID
}

func TestRunReconciliationAPI(t *testing.T) {
	router, _ := setupRouter()

	payload, err := request.ToJsonReq(reconciliationPayload())
	require.NoError(t, err)

	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Payload:  payload,
		Router:   router,
		Response: &response,
		Method:   "POST",
		Route:    "/reconciliations",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "batch_2025_07", response["import_batch_id"])
	assert.Equal(t, false, response["is_empty"])
	assert.Equal(t, float64(1), response["file_only"])
	assert.Equal(t, float64(1), response["bank_only"])
	assert.Equal(t, float64(0), response["warnings"])
}

func TestRunReconciliationAPIRejectsMissingReferenceDate(t *testing.T) {
	router, _ := setupRouter()

	payload, err := request.ToJsonReq(map[string]interface{}{
		"import_batch_id": "batch_2025_07",
	})
	require.NoError(t, err)

	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Payload:  payload,
		Router:   router,
		Response: &response,
		Method:   "POST",
		Route:    "/reconciliations",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetReconciliationAPI(t *testing.T) {
	router, _ := setupRouter()
	reportID := runReconciliation(t, router)

	var report model.ReconciliationReport
	resp, err := SetUpTestRequest(TestRequest{
		Router:   router,
		Response: &report,
		Method:   "GET",
		Route:    "/reconciliations/" + reportID,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, reportID, report.ReportID)
	assert.Len(t, report.FileOnlyNotes, 1)
	assert.Len(t, report.BankOnlyNotes, 1)
}

func TestGetReconciliationAPINotFound(t *testing.T) {
	router, _ := setupRouter()

	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Router:   router,
		Response: &response,
		Method:   "GET",
		Route:    "/reconciliations/recon_missing",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetDivergentAssociatesAPI(t *testing.T) {
	router, _ := setupRouter()
	reportID := runReconciliation(t, router)

	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Router:   router,
		Response: &response,
		Method:   "GET",
		Route:    "/reconciliations/" + reportID + "/divergent?page=0&page_size=10",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, float64(0), response["page"])
	assert.Equal(t, float64(10), response["page_size"])
	// No billed-value disagreement on a matched key in this payload.
	assert.Empty(t, response["entries"])
}

func TestGetDivergentAssociatesAPIBadPage(t *testing.T) {
	router, _ := setupRouter()
	reportID := runReconciliation(t, router)

	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Router:   router,
		Response: &response,
		Method:   "GET",
		Route:    "/reconciliations/" + reportID + "/divergent?page=-1",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetCategorySummariesAPI(t *testing.T) {
	router, _ := setupRouter()
	reportID := runReconciliation(t, router)

	var response map[string]interface{}
	resp, err := SetUpTestRequest(TestRequest{
		Router:   router,
		Response: &response,
		Method:   "GET",
		Route:    "/reconciliations/" + reportID + "/summary",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Code)

	summaries, ok := response["category_summaries"].([]interface{})
	require.True(t, ok)
	require.Len(t, summaries, 1)
	row := summaries[0].(map[string]interface{})
	assert.Equal(t, "mensalidades", row["category"])
}

func TestExportCSVAPI(t *testing.T) {
	router, _ := setupRouter()
	reportID := runReconciliation(t, router)

	req := httptest.NewRequest("GET", "/reconciliations/"+reportID+"/export/csv", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/csv", resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Body.String(), "section,category_summary")
	assert.Contains(t, resp.Body.String(), "section,file_only_notes")
}
