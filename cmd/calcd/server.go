package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/tevino/abool/v2"
	"github.com/valyala/fasthttp"

	"github.com/zephyrtronium/calc"
)

// server evaluates request bodies as calculator sessions. Each request gets
// its own clone of base, so declarations never leak between requests.
type server struct {
	base     *calc.Context
	verb     string
	draining *abool.AtomicBool
}

func newServer(base *calc.Context, verb string) *server {
	return &server{
		base:     base,
		verb:     verb,
		draining: abool.New(),
	}
}

// result is the outcome of one statement.
type result struct {
	// Value is omitted when the result is not finite, since JSON has no
	// representation for it; Text always holds the formatted result.
	Value *float64 `json:"value,omitempty"`
	Text  string   `json:"text,omitempty"`
	Error string   `json:"error,omitempty"`
	Pos   int      `json:"pos,omitempty"`
}

func (s *server) handle(ctx *fasthttp.RequestCtx) {
	if s.draining.IsSet() {
		ctx.Error("shutting down", fasthttp.StatusServiceUnavailable)
		return
	}
	switch string(ctx.Path()) {
	case "/eval":
		if !ctx.IsPost() {
			ctx.Error("use POST", fasthttp.StatusMethodNotAllowed)
			return
		}
		s.eval(ctx)
	case "/vars":
		s.vars(ctx)
	default:
		ctx.Error("not found", fasthttp.StatusNotFound)
	}
}

func (s *server) eval(ctx *fasthttp.RequestCtx) {
	results, err := s.run(ctx.PostBody())
	if err != nil {
		log.Printf("%s %s: %v", ctx.Method(), ctx.Path(), err)
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	buf, err := json.Marshal(results)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	log.Printf("%s %s: %d statements", ctx.Method(), ctx.Path(), len(results))
	ctx.Success("application/json", buf)
}

// run evaluates every statement in body.
func (s *server) run(body []byte) (results []result, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok && errors.Is(e, calc.ErrPutbackOverflow) {
			err = e
			return
		}
		panic(r)
	}()
	sess := calc.NewSession(bytes.NewReader(body), s.base.Clone())
	results = []result{}
	err = sess.Run(nil, func(v float64, err error) {
		if err != nil {
			var ie calc.InputError
			errors.As(err, &ie)
			results = append(results, result{Error: err.Error(), Pos: ie.Pos()})
			return
		}
		r := result{Text: fmt.Sprintf(s.verb, v)}
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			r.Value = &v
		}
		results = append(results, r)
	})
	return results, err
}

func (s *server) vars(ctx *fasthttp.RequestCtx) {
	vars := s.base.Vars()
	m := make(map[string]float64, len(vars))
	for _, v := range vars {
		m[v.Name] = v.Value
	}
	buf, err := json.Marshal(m)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.Success("application/json", buf)
}
