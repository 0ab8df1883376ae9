package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/valyala/fasthttp"

	"github.com/zephyrtronium/calc"
)

func usage() {
	log.Fatalf("usage: %s [-l addr] [-f fmt] [-x bits]", os.Args[0])
}

func main() {
	log.SetFlags(log.LstdFlags)
	addr := ":8080"
	verb := "%g"
	var copts []calc.ContextOption
	opts, optind, err := getopt.Getopts(os.Args, "l:f:x:h")
	if err != nil {
		log.Fatalln(err)
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'l':
			addr = opt.Value
		case 'f':
			verb = opt.Value
		case 'x':
			prec, err := strconv.ParseUint(opt.Value, 10, 32)
			if err != nil || prec == 0 {
				log.Fatalln("invalid -x parameter")
			}
			copts = append(copts, calc.ExactConstants(uint(prec)))
		case 'h':
			usage()
		}
	}
	if optind != len(os.Args) {
		usage()
	}

	s := newServer(calc.NewContext(copts...), verb)
	server := &fasthttp.Server{
		Handler: s.handle,
		Name:    "calcd",
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalln(err)
	}
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	log.Printf("listening on %s", ln.Addr())
	if err := serve(server, s, ln, sig); err != nil {
		log.Fatalln(err)
	}
}

// serve runs server on ln until a signal arrives on stop. Then it rejects new
// requests and returns once requests in flight have finished or
// shutdownTimeout passes.
func serve(server *fasthttp.Server, s *server, ln net.Listener, stop <-chan os.Signal) error {
	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve(ln)
	}()
	select {
	case err := <-errc:
		return err
	case <-stop:
	}
	log.Println("shutting down")
	s.draining.Set()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.ShutdownWithContext(ctx); err != nil {
		return err
	}
	return <-errc
}

const shutdownTimeout = 30 * time.Second
