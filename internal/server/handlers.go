package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/agbru/matmulbench/internal/config"
	apperrors "github.com/agbru/matmulbench/internal/errors"
	"github.com/agbru/matmulbench/internal/logging"
	"github.com/agbru/matmulbench/internal/service"
	"github.com/agbru/matmulbench/pkg/models"
)

// handleHealth responds to health check requests with 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
	})
}

// handleAlgorithms lists the registered algorithms with their display names.
func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	keys := s.factory.List()
	resp := models.AlgorithmsResponse{Algorithms: make([]models.AlgorithmInfo, 0, len(keys))}
	for _, key := range keys {
		info := models.AlgorithmInfo{Key: key}
		if algo, err := s.factory.Get(key); err == nil {
			info.Name = algo.Name()
		}
		resp.Algorithms = append(resp.Algorithms, info)
	}

	s.writeJSONResponse(w, http.StatusOK, resp)
}

// handleMultiply generates a random operand pair of the requested order,
// multiplies it with the requested algorithms and returns the statistics
// as JSON.
func (s *Server) handleMultiply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := parseMultiplyParams(r.URL.Query())
	if err != nil {
		var paramErr ParamError
		if errors.As(err, &paramErr) {
			s.writeErrorResponse(w, paramErr.StatusCode, paramErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	resp, err := s.service.Multiply(ctx, req)
	var validationErr apperrors.ValidationError
	switch {
	case err == nil:
		s.writeJSONResponse(w, http.StatusOK, resp)
	case errors.Is(err, service.ErrMaxOrderExceeded):
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Value of 'n' exceeds maximum allowed (%d). This limit prevents resource exhaustion.", s.securityConfig.MaxOrder))
	case errors.As(err, &validationErr):
		s.writeErrorResponse(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.writeErrorResponse(w, http.StatusGatewayTimeout, "The benchmark did not finish within the request timeout.")
	case errors.Is(err, context.Canceled):
		s.writeErrorResponse(w, http.StatusServiceUnavailable, "The request was canceled.")
	default:
		s.logger.Error("multiply request failed", err, logging.Int("order", req.Order))
		s.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}

// parseMultiplyParams extracts the benchmark parameters from the query
// string. Only 'n' is required; 'algo' defaults to every algorithm and
// 'min'/'max' to the command line defaults.
func parseMultiplyParams(q url.Values) (service.Request, error) {
	req := service.Request{
		Algo: config.DefaultAlgo,
		Min:  config.DefaultMin,
		Max:  config.DefaultMax,
	}

	nStr := q.Get("n")
	if nStr == "" {
		return req, ParamError{Message: "Missing 'n' parameter", StatusCode: http.StatusBadRequest}
	}
	n, err := strconv.Atoi(nStr)
	if err != nil || n < 1 {
		return req, ParamError{Message: "Invalid 'n' parameter: must be a positive integer", StatusCode: http.StatusBadRequest}
	}
	req.Order = n

	if algo := q.Get("algo"); algo != "" {
		req.Algo = algo
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return req, ParamError{Message: "Invalid 'seed' parameter: must be a non-negative integer", StatusCode: http.StatusBadRequest}
		}
		req.Seed = seed
	}
	for _, p := range []struct {
		name string
		dst  *int64
	}{{"min", &req.Min}, {"max", &req.Max}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, ParamError{Message: fmt.Sprintf("Invalid '%s' parameter: must be an integer", p.name), StatusCode: http.StatusBadRequest}
		}
		*p.dst = parsed
	}
	if req.Min > req.Max {
		return req, ParamError{Message: "Invalid range: 'min' is greater than 'max'", StatusCode: http.StatusBadRequest}
	}
	return req, nil
}

// writeJSONResponse writes data as JSON with the given status code.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("cannot encode JSON response", err)
	}
}

// writeErrorResponse writes a models.ErrorResponse.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
