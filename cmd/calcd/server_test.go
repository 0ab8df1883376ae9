package main

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/zephyrtronium/calc"
)

func do(s *server, method, path, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	req.SetBodyString(body)
	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	s.handle(&ctx)
	return &ctx
}

func TestEval(t *testing.T) {
	s := newServer(calc.NewContext(), "%g")
	ctx := do(s, "POST", "/eval", "let x = 2; x*3; 1/0; x; 1e308*10;")
	if code := ctx.Response.StatusCode(); code != fasthttp.StatusOK {
		t.Fatalf("want status 200, got %d: %s", code, ctx.Response.Body())
	}
	var got []result
	if err := json.Unmarshal(ctx.Response.Body(), &got); err != nil {
		t.Fatal(err)
	}
	two, six := 2.0, 6.0
	want := []result{
		{Value: &two, Text: "2"},
		{Value: &six, Text: "6"},
		{Error: "18: division by zero (1/0)", Pos: 18},
		{Value: &two, Text: "2"},
		{Text: "+Inf"},
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("want %s, got %s", mustJSON(want), ctx.Response.Body())
	}
}

func TestEvalIsolated(t *testing.T) {
	s := newServer(calc.NewContext(), "%g")
	do(s, "POST", "/eval", "let x = 2;")
	ctx := do(s, "POST", "/eval", "x;")
	var got []result
	if err := json.Unmarshal(ctx.Response.Body(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Error == "" {
		t.Errorf("declaration leaked between requests: %s", ctx.Response.Body())
	}
	if s.base.IsDeclared("x") {
		t.Error("declaration leaked into base context")
	}
}

func TestEvalEmpty(t *testing.T) {
	s := newServer(calc.NewContext(), "%g")
	ctx := do(s, "POST", "/eval", "")
	if body := string(ctx.Response.Body()); body != "[]" {
		t.Errorf("want [], got %s", body)
	}
}

func TestRoutes(t *testing.T) {
	cases := []struct {
		method, path string
		code         int
	}{
		{"GET", "/eval", fasthttp.StatusMethodNotAllowed},
		{"GET", "/nope", fasthttp.StatusNotFound},
		{"GET", "/vars", fasthttp.StatusOK},
		{"POST", "/eval", fasthttp.StatusOK},
	}
	s := newServer(calc.NewContext(), "%g")
	for _, c := range cases {
		ctx := do(s, c.method, c.path, "1;")
		if got := ctx.Response.StatusCode(); got != c.code {
			t.Errorf("%s %s: want %d, got %d", c.method, c.path, c.code, got)
		}
	}
}

func TestDraining(t *testing.T) {
	s := newServer(calc.NewContext(), "%g")
	s.draining.Set()
	ctx := do(s, "POST", "/eval", "1;")
	if got := ctx.Response.StatusCode(); got != fasthttp.StatusServiceUnavailable {
		t.Errorf("want 503, got %d", got)
	}
}

func TestVars(t *testing.T) {
	s := newServer(calc.NewContext(calc.SetVar("g", 9.8)), "%g")
	ctx := do(s, "GET", "/vars", "")
	var got map[string]float64
	if err := json.Unmarshal(ctx.Response.Body(), &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{"pi": calc.Pi, "e": calc.E, "g": 9.8}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func mustJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
