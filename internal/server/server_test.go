package server

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/pensionfolio/pensionfolio/internal/calculation"
	"github.com/pensionfolio/pensionfolio/internal/domain"
)

func newTestServer() *Server {
	return New(calculation.NewProjectionEngine(), nil)
}

func doRequest(t *testing.T, s *Server, method, path string, body []byte) *fasthttp.RequestCtx {
	t.Helper()
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	if body != nil {
		req.SetBody(body)
	}
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	s.Handler()(ctx)
	return ctx
}

func validRequestBody(t *testing.T) []byte {
	t.Helper()
	req := map[string]interface{}{
		"household": map[string]interface{}{
			"members": []map[string]interface{}{
				{
					"id":             "alex",
					"name":           "Alex",
					"birth_date":     "1985-04-12T00:00:00Z",
					"retirement_age": 67,
				},
			},
			"pensions": []map[string]interface{}{
				{
					"id":            "etf-world",
					"name":          "Global Equity ETF",
					"kind":          "etf",
					"member_id":     "alex",
					"start_date":    "2020-01-01T00:00:00Z",
					"current_value": "10000",
					"contribution_plan": []map[string]interface{}{
						{
							"amount":     "100",
							"frequency":  "MONTHLY",
							"start_date": "2020-01-01T00:00:00Z",
						},
					},
					"etf": map[string]interface{}{"isin": "IE00B4L5Y983"},
				},
			},
		},
		"rates": map[string]interface{}{
			"pessimistic": "2",
			"realistic":   "5",
			"optimistic":  "8",
		},
		"start_date": "2025-01-01",
		"end_date":   "2025-12-01",
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return body
}

func TestHealthz(t *testing.T) {
	ctx := doRequest(t, newTestServer(), fasthttp.MethodGet, "/healthz", nil)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"status":"ok"}`, string(ctx.Response.Body()))
}

func TestUnknownRoute(t *testing.T) {
	ctx := doRequest(t, newTestServer(), fasthttp.MethodGet, "/v2/nothing", nil)
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestProjectionRequiresPost(t *testing.T) {
	ctx := doRequest(t, newTestServer(), fasthttp.MethodGet, "/v1/projection", nil)
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
}

func TestProjectionRejectsMalformedBody(t *testing.T) {
	ctx := doRequest(t, newTestServer(), fasthttp.MethodPost, "/v1/projection", []byte("{not json"))
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &errResp))
	assert.Contains(t, errResp.Message, "invalid request body")
}

func TestProjectionRejectsBadDate(t *testing.T) {
	body := validRequestBody(t)
	var req map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &req))
	req["start_date"] = "01/01/2025"
	body, err := json.Marshal(req)
	require.NoError(t, err)

	ctx := doRequest(t, newTestServer(), fasthttp.MethodPost, "/v1/projection", body)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &errResp))
	assert.Contains(t, errResp.Message, "invalid start_date")
}

func TestProjectionRejectsInvalidHousehold(t *testing.T) {
	body := validRequestBody(t)
	var req map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &req))
	household := req["household"].(map[string]interface{})
	household["members"] = []interface{}{}
	body, err := json.Marshal(req)
	require.NoError(t, err)

	ctx := doRequest(t, newTestServer(), fasthttp.MethodPost, "/v1/projection", body)
	assert.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())
}

func TestProjectionSuccess(t *testing.T) {
	ctx := doRequest(t, newTestServer(), fasthttp.MethodPost, "/v1/projection", validRequestBody(t))
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var projection domain.HouseholdProjection
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &projection))
	require.Len(t, projection.Pensions, 1)
	assert.Equal(t, "etf-world", projection.Pensions[0].PensionID)

	realistic := projection.Totals.Scenario(domain.ScenarioRealistic)
	require.NotNil(t, realistic)
	assert.Len(t, realistic.DataPoints, 12)
	assert.True(t, realistic.FinalValue.GreaterThan(projection.Totals.Scenario(domain.ScenarioPessimistic).FinalValue))
}
