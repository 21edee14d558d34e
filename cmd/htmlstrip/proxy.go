package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/mnightingale/htmlstrip/config"
	"github.com/mnightingale/htmlstrip/filter"
	"github.com/mnightingale/htmlstrip/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func runProxy(c *cli.Context) error {
	upstream, err := url.Parse(c.String(proxyUpstream))
	if err != nil {
		return fmt.Errorf("invalid upstream: %w", err)
	}
	if upstream.Scheme == "" || upstream.Host == "" {
		return fmt.Errorf("invalid upstream %q: scheme and host are required", upstream)
	}

	enabled := func(*http.Request) bool { return true }
	if path := c.String(proxyConfig); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		enabled = func(r *http.Request) bool { return cfg.Enabled(r.Host, r.URL.Path) }
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w, true)
	})
	mux.Handle("/", newProxyHandler(upstream, enabled))

	srv := &http.Server{
		Addr:              c.String(proxyListen),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(c.Context)
	g.Go(func() error {
		logger.Logger.Info("proxy listening", "addr", srv.Addr, "upstream", upstream.String())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Logger.Info("shutting down proxy")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}

// newProxyHandler forwards requests to upstream and compacts eligible responses.
// Requests that may be compacted ask upstream for an identity encoding.
func newProxyHandler(upstream *url.URL, enabled func(*http.Request) bool) http.Handler {
	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(upstream)
			pr.SetXForwarded()
			if enabled(pr.In) {
				pr.Out.Header.Set("Accept-Encoding", "identity")
			}
		},
	}

	return filter.New(rp,
		filter.WithEnabled(enabled),
		filter.WithLogger(logger.Logger.Logger),
	)
}
