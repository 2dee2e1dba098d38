// Package http provides the http server the cldimg services run on
package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cldimg/cldimg/fs"
	"github.com/cldimg/cldimg/fs/config/flags"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

// Help returns text describing the http server to add to the command
// help.
func Help(prefix string) string {
	help := `### Server options

Use ` + "`--{{ .Prefix }}addr`" + ` to specify which IP address and port the server should
listen on, eg ` + "`--{{ .Prefix }}addr 1.2.3.4:8000` or `--{{ .Prefix }}addr :8080`" + ` to listen to all
IPs.  By default it only listens on localhost.  You can use port
:0 to let the OS choose an available port.

You can use a unix socket by setting the url to ` + "`unix:///path/to/socket`" + `
or just by using an absolute path name.

` + "`--{{ .Prefix }}addr`" + ` may be repeated to listen on multiple IPs/ports/sockets.

` + "`--{{ .Prefix }}server-read-timeout` and `--{{ .Prefix }}server-write-timeout`" + ` can be used to
control the timeouts on the server.

` + "`--{{ .Prefix }}baseurl`" + ` controls the URL prefix that cldimg serves from.  By default
cldimg will serve from the root.  If you used ` + "`--{{ .Prefix }}baseurl \"/cld\"`" + ` then
cldimg would serve from a URL starting with "/cld/".

` + "`--{{ .Prefix }}allow-origin`" + ` sets the Access-Control-Allow-Origin header.
`
	return strings.ReplaceAll(help, "{{ .Prefix }}", prefix)
}

// Middleware function signature required by chi.Router.Use()
type Middleware func(http.Handler) http.Handler

// Config contains options for the http Server
type Config struct {
	ListenAddr         []string      `config:"addr"`                 // Port to listen on
	BaseURL            string        `config:"baseurl"`              // prefix to strip from URLs
	ServerReadTimeout  time.Duration `config:"server_read_timeout"`  // Timeout for server reading data
	ServerWriteTimeout time.Duration `config:"server_write_timeout"` // Timeout for server writing data
	AllowOrigin        string        `config:"allow_origin"`         // AllowOrigin sets the Access-Control-Allow-Origin header
}

// AddFlagsPrefix adds flags for the http server
func (cfg *Config) AddFlagsPrefix(flagSet *pflag.FlagSet, prefix string) {
	flags.StringArrayVarP(flagSet, &cfg.ListenAddr, prefix+"addr", "", cfg.ListenAddr, "IPaddress:Port, :Port or [unix://]/path/to/socket to bind server to")
	flags.DurationVarP(flagSet, &cfg.ServerReadTimeout, prefix+"server-read-timeout", "", cfg.ServerReadTimeout, "Timeout for server reading data")
	flags.DurationVarP(flagSet, &cfg.ServerWriteTimeout, prefix+"server-write-timeout", "", cfg.ServerWriteTimeout, "Timeout for server writing data")
	flags.StringVarP(flagSet, &cfg.BaseURL, prefix+"baseurl", "", cfg.BaseURL, "Prefix for URLs - leave blank for root")
	flags.StringVarP(flagSet, &cfg.AllowOrigin, prefix+"allow-origin", "", cfg.AllowOrigin, "Origin which cross-domain request (CORS) can be executed from")
}

// DefaultCfg is the default values used for Config
func DefaultCfg() Config {
	return Config{
		ListenAddr:         []string{"127.0.0.1:8080"},
		ServerReadTimeout:  1 * time.Minute,
		ServerWriteTimeout: 1 * time.Minute,
	}
}

type instance struct {
	url        string
	listener   net.Listener
	httpServer *http.Server
}

func (s instance) serve(wg *sync.WaitGroup) {
	defer wg.Done()
	err := s.httpServer.Serve(s.listener)
	if err != http.ErrServerClosed && err != nil {
		fs.Logf(nil, "%s: unexpected error: %s", s.listener.Addr(), err.Error())
	}
}

// Server contains info about the running http server
type Server struct {
	wg        sync.WaitGroup
	mux       chi.Router
	instances []instance
	cfg       Config
}

// Option allows customizing the server
type Option func(*Server)

// WithConfig option applies the Config to the server, overriding defaults
func WithConfig(cfg Config) Option {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// For a given listener construct an instance.  The url string ends
// up in the `url` field of the `instance`.
func newInstance(ctx context.Context, s *Server, listener net.Listener, url string) *instance {
	return &instance{
		url:      url,
		listener: listener,
		httpServer: &http.Server{
			Handler:           s.mux,
			ReadTimeout:       s.cfg.ServerReadTimeout,
			WriteTimeout:      s.cfg.ServerWriteTimeout,
			ReadHeaderTimeout: 10 * time.Second, // time to send the headers
			IdleTimeout:       60 * time.Second, // time to keep idle connections open
			BaseContext:       NewBaseContext(ctx),
		},
	}
}

// NewServer instantiates a new http server listening on every address
// in the config.
func NewServer(ctx context.Context, options ...Option) (*Server, error) {
	s := &Server{
		mux: chi.NewRouter(),
		cfg: DefaultCfg(),
	}
	for _, opt := range options {
		opt(s)
	}

	// Build base router
	s.mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
	s.mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	// Ignore passing "/" for BaseURL
	s.cfg.BaseURL = strings.Trim(s.cfg.BaseURL, "/")
	if s.cfg.BaseURL != "" {
		s.cfg.BaseURL = "/" + s.cfg.BaseURL
		s.mux.Use(MiddlewareStripPrefix(s.cfg.BaseURL))
	}
	s.mux.Use(MiddlewareCORS(s.cfg.AllowOrigin))
	s.mux.Use(MiddlewareLog())

	for _, addr := range s.cfg.ListenAddr {
		inst, err := s.listen(ctx, addr)
		if err != nil {
			s.closeListeners()
			return nil, err
		}
		s.instances = append(s.instances, *inst)
	}
	return s, nil
}

// listen makes an instance listening on addr
func (s *Server) listen(ctx context.Context, addr string) (*instance, error) {
	if strings.HasPrefix(addr, "unix://") || filepath.IsAbs(addr) {
		addr = strings.TrimPrefix(addr, "unix://")
		listener, err := net.Listen("unix", addr)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to listen on %q", addr)
		}
		return newInstance(ctx, s, listener, addr), nil
	}
	addr = strings.TrimPrefix(addr, "http://")
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to listen on %q", addr)
	}
	return newInstance(ctx, s, listener, fmt.Sprintf("http://%s%s/", listener.Addr().String(), s.cfg.BaseURL)), nil
}

// closeListeners closes the listeners of a server which never served
func (s *Server) closeListeners() {
	for _, ii := range s.instances {
		if err := ii.listener.Close(); err != nil {
			fs.Debugf(nil, "Failed to close listener on %s: %v", ii.url, err)
		}
	}
	s.instances = nil
}

// Serve starts the HTTP server on each listener
func (s *Server) Serve() {
	s.wg.Add(len(s.instances))
	for _, ii := range s.instances {
		fs.Logf(nil, "Serving on %s", ii.url)
		go ii.serve(&s.wg)
	}
}

// Wait blocks until every listener has stopped accepting connections.
//
// Requests in flight may still be running when it returns: Shutdown
// waits for those.
func (s *Server) Wait() {
	s.wg.Wait()
}

// Router returns the server base router
func (s *Server) Router() chi.Router {
	return s.mux
}

// Time to wait to Shutdown an HTTP server
const gracefulShutdownTime = 10 * time.Second

// Shutdown gracefully shuts down the server. It returns once the
// requests in flight have finished or gracefulShutdownTime has passed.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTime)
	defer cancel()
	g, gCtx := errgroup.WithContext(ctx)
	for _, ii := range s.instances {
		ii := ii
		g.Go(func() error {
			if err := ii.httpServer.Shutdown(gCtx); err != nil {
				return errors.Wrapf(err, "error shutting down server on %s", ii.url)
			}
			return nil
		})
	}
	err := g.Wait()
	s.wg.Wait()
	return err
}

// URLs returns all configured URLS
func (s *Server) URLs() []string {
	var out []string
	for _, ii := range s.instances {
		if ii.listener.Addr().Network() == "unix" {
			continue
		}
		out = append(out, ii.url)
	}
	return out
}
