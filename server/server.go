package server

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp/reuseport"

	"github.com/f5xs-0000a/rusty-website/accesslog"
	"github.com/f5xs-0000a/rusty-website/mycology"
)

// Config carries the paths and address the server needs. All fields are
// required.
type Config struct {
	// Addr is the listen address, loopback by convention.
	Addr string
	// LogFile is the access-log path, shared with the fallback logger.
	LogFile string
	// PagesDir holds the HTML templates for the mycology host.
	PagesDir string
	// FilesDir is the document root for the plain-site host.
	FilesDir string
	// DataFile is the mycology dataset.
	DataFile string
}

// Server is the connection scheduler: it owns the listener, the log-event
// queue and the logging consumer, and spawns one handler goroutine per
// accepted connection. There is no cap on in-flight connections; the
// scheduler's one job is that a slow connection never delays accepting the
// next.
type Server struct {
	cfg       Config
	queue     *accesslog.Queue
	logger    *accesslog.Logger
	site      *Site
	mycology  *mycology.Generator
	startTime time.Time
}

// New wires a server from its config and the shared fallback error logger.
func New(cfg Config, errLog *accesslog.Fallback) *Server {
	queue := accesslog.NewQueue()
	return &Server{
		cfg:    cfg,
		queue:  queue,
		logger: accesslog.NewLogger(queue, cfg.LogFile, os.Stdout),
		site:   &Site{Dir: cfg.FilesDir},
		mycology: &mycology.Generator{
			DataFile: cfg.DataFile,
			PagesDir: cfg.PagesDir,
			ErrLog:   errLog,
		},
		startTime: time.Now(),
	}
}

// Run binds the listening socket and serves forever. A bind failure is the
// only error it returns; the caller treats it as fatal. There is no retry
// and no fallback port.
func (s *Server) Run() error {
	ln, err := reuseport.Listen("tcp4", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ln)
}

// Serve runs the scheduler loop on an already-bound listener. Each iteration
// reacts to exactly one of three events, with no fixed priority among them:
// an accepted connection (spawn a handler, don't wait for it), a finished
// handler (report its error, non-fatally), or the logging consumer exiting.
// The last cannot happen while this loop holds the queue's send side, so
// observing it means the pipeline is gone and nothing will be logged again;
// Serve returns an error and the process exits.
func (s *Server) Serve(ln net.Listener) error {
	defer ln.Close()

	loggerDone := make(chan struct{})
	go func() {
		s.logger.Run()
		close(loggerDone)
	}()

	accepted := make(chan net.Conn)
	go acceptLoop(ln, accepted)

	handlerDone := make(chan error)

	log.Info().Str("addr", ln.Addr().String()).Msg("listening")

	for {
		select {
		case conn := <-accepted:
			go func() {
				handlerDone <- s.handleConnection(conn)
			}()

		case err := <-handlerDone:
			if err != nil {
				log.Error().Err(err).Msg("connection failed")
			}

		case <-loggerDone:
			return errors.New("access-log consumer exited while serving")
		}
	}
}

// acceptLoop feeds accepted connections to the scheduler. Accept errors are
// reported and accepting continues; only a closed listener stops the loop.
func acceptLoop(ln net.Listener, accepted chan<- net.Conn) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Error().Err(err).Msg("accept failed")
			continue
		}
		accepted <- conn
	}
}
