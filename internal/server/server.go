// Package server exposes the projection engine over HTTP.
package server

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/pensionfolio/pensionfolio/internal/calculation"
	"github.com/pensionfolio/pensionfolio/internal/domain"
)

const dateLayout = "2006-01-02"

// ProjectionRequest is the body of POST /v1/projection. Dates are plain
// calendar days; anything that does not parse as YYYY-MM-DD is rejected.
type ProjectionRequest struct {
	Household domain.Household     `json:"household"`
	Rates     domain.ScenarioRates `json:"rates"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
}

// ErrorResponse is the JSON body returned for every non-2xx status.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Server wires the projection engine to fasthttp.
type Server struct {
	engine *calculation.ProjectionEngine
	logger calculation.Logger
}

// New creates a server around the given engine. A nil logger is replaced
// with a no-op logger.
func New(engine *calculation.ProjectionEngine, logger calculation.Logger) *Server {
	if logger == nil {
		logger = &calculation.NopLogger{}
	}
	return &Server{engine: engine, logger: logger}
}

// Handler returns the fasthttp request handler with all routes attached.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		switch string(ctx.Path()) {
		case "/healthz":
			s.handleHealth(ctx)
		case "/v1/projection":
			s.handleProjection(ctx)
		default:
			writeError(ctx, fasthttp.StatusNotFound, "unknown route")
		}
	}
}

// ListenAndServe blocks serving HTTP on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Infof("listening on %s", addr)
	return fasthttp.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("application/json")
	ctx.SetBodyString(`{"status":"ok"}`)
}

func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "use POST")
		return
	}

	var req ProjectionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	in, err := req.toInput()
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	projection, err := s.engine.RunHousehold(ctx, in)
	if err != nil {
		s.logger.Errorf("projection failed: %v", err)
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return
	}

	body, err := json.Marshal(projection)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func (r *ProjectionRequest) toInput() (calculation.HouseholdInput, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return calculation.HouseholdInput{}, fmt.Errorf("invalid start_date %q: expected YYYY-MM-DD", r.StartDate)
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return calculation.HouseholdInput{}, fmt.Errorf("invalid end_date %q: expected YYYY-MM-DD", r.EndDate)
	}
	return calculation.HouseholdInput{
		Household: r.Household,
		Rates:     r.Rates,
		StartDate: start,
		EndDate:   end,
	}, nil
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetBody(body)
}
