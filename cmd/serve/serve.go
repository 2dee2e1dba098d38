// Package serve provides the serve command.
package serve

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cldimg/cldimg/cmd"
	"github.com/cldimg/cldimg/fs"
	"github.com/cldimg/cldimg/fs/config"
	"github.com/cldimg/cldimg/fs/config/configmap"
	"github.com/cldimg/cldimg/lib/cldurl"
	libhttp "github.com/cldimg/cldimg/lib/http"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// Options for the server
var httpConfig = libhttp.DefaultCfg()

func init() {
	httpConfig.AddFlagsPrefix(Command.Flags(), "")
	cmd.Root.AddCommand(Command)
}

// Command definition for cobra
var Command = &cobra.Command{
	Use:   "serve",
	Short: `Serve delivery URLs over HTTP.`,
	Long: `
cldimg serve runs an HTTP server which builds delivery URLs.

    GET /url?public_id=sample&width=100&crop=fill

returns {"url": "..."} or a 400 error if the URL can't be built.

    GET /image/sample?width=100&crop=fill

redirects to the delivery URL.  Options are given as query parameters
using their snake_case names and override the profile defaults.

Prometheus metrics are served on /metrics.

` + libhttp.Help(""),
	Run: func(command *cobra.Command, args []string) {
		cmd.CheckArgs(0, 0, command, args)
		cmd.Run(command, func() error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			defaults, err := cmd.LoadDefaults(ctx)
			if err != nil {
				return err
			}
			return serve(ctx, defaults, httpConfig)
		})
	},
}

// serve runs the server until ctx is cancelled then shuts it down,
// waiting for the requests in flight to finish.
func serve(ctx context.Context, defaults *config.Defaults, cfg libhttp.Config) error {
	s, err := libhttp.NewServer(context.WithoutCancel(ctx), libhttp.WithConfig(cfg))
	if err != nil {
		return err
	}
	newServer(defaults).Bind(s.Router())
	s.Serve()
	if urls := s.URLs(); len(urls) > 0 {
		fs.Infof(nil, "Building URLs for profile %q at %s", defaults.Profile(), strings.Join(urls, ", "))
	}

	// stop waiting if every listener fails
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		s.Wait()
		cancel()
	}()

	<-ctx.Done()
	fs.Logf(nil, "Shutting down")
	return s.Shutdown()
}

// server builds URLs for requests
type server struct {
	defaults *config.Defaults
	metrics  *Metrics
	registry *prometheus.Registry
}

func newServer(defaults *config.Defaults) *server {
	s := &server{
		defaults: defaults,
		metrics:  NewMetrics("cldimg"),
		registry: prometheus.NewRegistry(),
	}
	s.registry.MustRegister(s.metrics.Collectors()...)
	return s
}

// Bind adds the routes to router
func (s *server) Bind(router chi.Router) {
	router.Get("/url", s.handleURL)
	router.Get("/image/*", s.handleImage)
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}

// build makes the URL for publicID with the query options layered
// over the defaults
func (s *server) build(r *http.Request, publicID string) (string, error) {
	opt, err := s.defaults.Options(configmap.Values(r.URL.Query()))
	if err != nil {
		return "", err
	}
	result, err := cldurl.Resolve(publicID, opt)
	if err != nil {
		return "", err
	}
	s.metrics.onBuild(result)
	return result.URL, nil
}

// writeError writes err as a 400 response
func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.metrics.onError(err)
	fs.Debugf(r.RemoteAddr, "Failed to build URL for %q: %v", r.URL.RequestURI(), err)
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func (s *server) handleURL(w http.ResponseWriter, r *http.Request) {
	publicID := r.URL.Query().Get("public_id")
	url, err := s.build(r, publicID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	err = enc.Encode(map[string]string{"url": url})
	if err != nil {
		fs.Errorf(r.RemoteAddr, "%v", errors.Wrap(err, "failed to write JSON"))
	}
}

func (s *server) handleImage(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "*")
	if publicID == "" {
		http.Error(w, "missing public id", http.StatusBadRequest)
		return
	}
	url, err := s.build(r, publicID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}
