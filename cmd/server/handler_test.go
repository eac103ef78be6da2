package main

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/baditaflorin/go_range_normalizer/internal/adapters/logger"
	"github.com/baditaflorin/go_range_normalizer/internal/config"
	"github.com/baditaflorin/go_range_normalizer/internal/warmup"
	"github.com/valyala/fasthttp"
)

func newTestServer(t *testing.T) *server {
	t.Helper()
	cfg := config.Default()
	cfg.Normalizers["flat"] = config.RangeConfig{Type: "linear", Min: 3, Max: 3}
	srv, err := newServer(&cfg, logger.NewNopLogger())
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func doRequest(srv *server, method, path, body string) *fasthttp.RequestCtx {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	srv.requestHandler(&ctx)
	return &ctx
}

func TestHealthCheck(t *testing.T) {
	ctx := doRequest(newTestServer(t), fasthttp.MethodGet, "/health", "")
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status = %d, want 200", ctx.Response.StatusCode())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestListNormalizers(t *testing.T) {
	ctx := doRequest(newTestServer(t), fasthttp.MethodGet, "/normalizers", "")
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status = %d, want 200", ctx.Response.StatusCode())
	}

	var infos []NormalizerInfo
	if err := json.Unmarshal(ctx.Response.Body(), &infos); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("expected 3 normalizers, got %d", len(infos))
	}
	if infos[0].Name != "flat" || infos[1].Name != "frequency" || infos[2].Name != "percent" {
		t.Errorf("expected sorted names, got %+v", infos)
	}
	if infos[1].Type != "log" || infos[1].Min != 20 || infos[1].Max != 20000 {
		t.Errorf("unexpected frequency info: %+v", infos[1])
	}
}

func TestMappingEndpoints(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name      string
		path      string
		body      string
		direction string
		want      float64
	}{
		{name: "percent to normal", path: "/to_normal", body: `{"normalizer":"percent","value":25}`, direction: "to_normal", want: 0.25},
		{name: "percent from normal", path: "/from_normal", body: `{"normalizer":"percent","value":0.5}`, direction: "from_normal", want: 50},
		{name: "frequency to normal", path: "/to_normal", body: `{"normalizer":"frequency","value":20000}`, direction: "to_normal", want: 1},
		{name: "zero value", path: "/from_normal", body: `{"normalizer":"percent","value":0}`, direction: "from_normal", want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := doRequest(srv, fasthttp.MethodPost, tc.path, tc.body)
			if ctx.Response.StatusCode() != fasthttp.StatusOK {
				t.Fatalf("status = %d, body = %s", ctx.Response.StatusCode(), ctx.Response.Body())
			}

			var resp Response
			if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp.Direction != tc.direction {
				t.Errorf("direction = %q, want %q", resp.Direction, tc.direction)
			}
			if !resp.Finite || resp.Output == nil {
				t.Fatalf("expected finite output, got %+v", resp)
			}
			if math.Abs(*resp.Output-tc.want) > 1e-9 {
				t.Errorf("output = %v, want %v", *resp.Output, tc.want)
			}
		})
	}
}

func TestMappingNonFinite(t *testing.T) {
	ctx := doRequest(newTestServer(t), fasthttp.MethodPost, "/to_normal", `{"normalizer":"flat","value":3}`)
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status = %d, body = %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}

	var resp Response
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Finite || resp.Output != nil {
		t.Errorf("expected null output for NaN result, got %+v", resp)
	}
}

func TestMappingErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{name: "wrong method", method: fasthttp.MethodGet, path: "/to_normal", status: fasthttp.StatusMethodNotAllowed},
		{name: "invalid json", method: fasthttp.MethodPost, path: "/to_normal", body: `{`, status: fasthttp.StatusBadRequest},
		{name: "missing value", method: fasthttp.MethodPost, path: "/to_normal", body: `{"normalizer":"percent"}`, status: fasthttp.StatusBadRequest},
		{name: "unknown normalizer", method: fasthttp.MethodPost, path: "/from_normal", body: `{"normalizer":"volume","value":1}`, status: fasthttp.StatusNotFound},
		{name: "unknown route", method: fasthttp.MethodGet, path: "/nope", status: fasthttp.StatusNotFound},
		{name: "list wrong method", method: fasthttp.MethodPost, path: "/normalizers", status: fasthttp.StatusMethodNotAllowed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := doRequest(srv, tc.method, tc.path, tc.body)
			if ctx.Response.StatusCode() != tc.status {
				t.Fatalf("status = %d, want %d", ctx.Response.StatusCode(), tc.status)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp.Error == "" {
				t.Errorf("expected error message")
			}
		})
	}
}

func TestNewServerStrict(t *testing.T) {
	cfg := config.Default()
	cfg.Strict = true
	cfg.Normalizers["broken"] = config.RangeConfig{Type: "log", Min: 0, Max: 10}

	if _, err := newServer(&cfg, logger.NewNopLogger()); err == nil {
		t.Errorf("expected strict mode to reject a non-positive log range")
	}
}

func TestServerWarmUp(t *testing.T) {
	reports := newTestServer(t).warmUp(context.Background(), warmup.DefaultWarmupConfig())
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	for _, r := range reports {
		healthy := r.Healthy(warmup.DefaultWarmupConfig().Tolerance)
		if r.Name == "flat" && healthy {
			t.Errorf("expected degenerate normalizer to be unhealthy")
		}
		if r.Name != "flat" && !healthy {
			t.Errorf("%s: expected healthy report, got %+v", r.Name, r)
		}
	}
}
