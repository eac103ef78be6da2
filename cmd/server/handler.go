package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/baditaflorin/go_range_normalizer/internal/adapters/normalizer"
	"github.com/baditaflorin/go_range_normalizer/internal/config"
	"github.com/baditaflorin/go_range_normalizer/internal/core/domain"
	"github.com/baditaflorin/go_range_normalizer/internal/core/mapping"
	"github.com/baditaflorin/go_range_normalizer/internal/ports"
	"github.com/baditaflorin/go_range_normalizer/internal/warmup"
	"github.com/valyala/fasthttp"
)

// Request represents a single-value mapping request
type Request struct {
	Normalizer string   `json:"normalizer"`
	Value      *float64 `json:"value"`
}

// Response represents a mapping response. Output is null when the result is NaN or infinite.
type Response struct {
	Normalizer string   `json:"normalizer"`
	Type       string   `json:"type"`
	Direction  string   `json:"direction"`
	Input      float64  `json:"input"`
	Output     *float64 `json:"output"`
	Finite     bool     `json:"finite"`
}

// NormalizerInfo describes one configured normalizer
type NormalizerInfo struct {
	Name string  `json:"name"`
	Type string  `json:"type"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

type server struct {
	logger  ports.Logger
	mappers map[string]*mapping.Mapper
}

// newServer builds one mapper per configured normalizer.
func newServer(cfg *config.Config, logger ports.Logger) (*server, error) {
	mappers := make(map[string]*mapping.Mapper, len(cfg.Normalizers))
	for name, rc := range cfg.Normalizers {
		typ, err := normalizer.ParseNormalizerType(rc.Type)
		if err != nil {
			return nil, fmt.Errorf("normalizer %q: %w", name, err)
		}
		m, err := mapping.NewMapper(mapping.Config{
			Name:   name,
			Type:   typ,
			Min:    rc.Min,
			Max:    rc.Max,
			Strict: cfg.Strict,
		}, logger)
		if err != nil {
			return nil, err
		}
		mappers[name] = m
	}
	return &server{logger: logger, mappers: mappers}, nil
}

// warmUp exercises every configured normalizer once and logs the unhealthy ones.
func (s *server) warmUp(ctx context.Context, config warmup.WarmupConfig) []warmup.Report {
	manager := warmup.NewManager(s.logger, config)
	for name, m := range s.mappers {
		manager.RegisterNormalizer(name, m.Normalizer())
	}
	return manager.WarmUp(ctx)
}

// requestHandler is the main fasthttp request handler
func (s *server) requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "RangeNormalizer")

	switch string(ctx.Path()) {
	case "/health":
		s.handleHealthCheck(ctx)
	case "/normalizers":
		s.handleList(ctx)
	case "/to_normal":
		s.handleMapping(ctx, domain.ToNormal)
	case "/from_normal":
		s.handleMapping(ctx, domain.FromNormal)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	s.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

func (s *server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status":      "ok",
		"normalizers": len(s.mappers),
		"time":        time.Now().Format(time.RFC3339),
	})
}

func (s *server) handleList(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	infos := make([]NormalizerInfo, 0, len(s.mappers))
	for name, m := range s.mappers {
		cfg := m.Config()
		infos = append(infos, NormalizerInfo{
			Name: name,
			Type: cfg.Type.String(),
			Min:  cfg.Min,
			Max:  cfg.Max,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, infos)
}

func (s *server) handleMapping(ctx *fasthttp.RequestCtx, direction domain.Direction) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req Request
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if req.Normalizer == "" || req.Value == nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Both normalizer and value are required")
		return
	}

	m, ok := s.mappers[req.Normalizer]
	if !ok {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, fmt.Sprintf("Unknown normalizer %q", req.Normalizer))
		return
	}

	result := m.Apply(direction, *req.Value)
	response := Response{
		Normalizer: result.Name,
		Type:       result.Type,
		Direction:  result.Direction.String(),
		Input:      result.Input,
		Finite:     result.Finite,
	}
	if result.Finite {
		output := result.Output
		response.Output = &output
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, response)
}

// writeJSONResponse writes a JSON response to the context
func (s *server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (s *server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}
