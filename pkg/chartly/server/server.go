// Package server exposes chart rendering over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/justinas/alice"
	"github.com/rs/zerolog"

	"github.com/ukaji3/chartly-go/pkg/chartly"
	"github.com/ukaji3/chartly-go/pkg/chartly/codec"
	"github.com/ukaji3/chartly-go/pkg/chartly/models"
	"github.com/ukaji3/chartly-go/pkg/chartly/output"
	"github.com/ukaji3/chartly-go/pkg/chartly/render"
	"github.com/ukaji3/chartly-go/pkg/chartly/sample"
	"github.com/ukaji3/chartly-go/pkg/chartly/settings"
)

// DroppedHeader reports how many rows a conversion dropped.
const DroppedHeader = "X-Chartly-Dropped"

// SkippedHeader reports how many CSV lines had too few columns.
const SkippedHeader = "X-Chartly-Skipped"

var contentTypes = map[chartly.Format]string{
	chartly.FormatPNG:  "image/png",
	chartly.FormatHTML: "text/html; charset=utf-8",
	chartly.FormatJSON: "application/json",
	chartly.FormatCSV:  "text/csv; charset=utf-8",
	chartly.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Server serves the render API.
type Server struct {
	conf    settings.HTTPServer
	render  settings.Render
	logger  zerolog.Logger
	metrics *Metrics
	handler http.Handler
}

// New builds the server routes and middleware chain.
func New(conf settings.Config, logger zerolog.Logger) *Server {
	s := &Server{
		conf:    conf.HTTP,
		render:  conf.Render,
		logger:  logger,
		metrics: NewMetrics(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/render/{kind}", s.handleRender)
	mux.HandleFunc("POST /api/convert/{from}/{to}", s.handleConvert)
	mux.HandleFunc("GET /api/sample/{kind}", s.handleSample)
	mux.HandleFunc("GET /api/kinds", s.handleKinds)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	s.handler = alice.New(RequestID, LogRequest(logger), s.metrics.Instrument).Then(mux)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.conf.Addr(),
		Handler:      s.handler,
		ReadTimeout:  s.conf.ReadTimeout,
		WriteTimeout: s.conf.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info().Msg("shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kind(w, r, "kind")
	if !ok {
		return
	}
	opts, err := s.options(r, chartly.FormatPNG)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.maxBody())
	res, err := chartly.ReadCSV(body, "request", kind)
	if err != nil {
		s.readFailed(w, r, err)
		return
	}
	s.metrics.countRows(len(res.Rows), res.Skipped)

	started := time.Now()
	var buf bytes.Buffer
	if err := chartly.Render(&buf, kind, res.Rows, opts); err != nil {
		if errors.Is(err, chartly.ErrNoValidData) || errors.Is(err, render.ErrNothingToRender) {
			s.fail(w, r, http.StatusUnprocessableEntity, err)
			return
		}
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.metrics.observeRender(started, string(kind), string(opts.Format))

	out := buf.Bytes()
	if opts.Format == chartly.FormatJSON {
		out, err = s.withMeta(r, out, res.Skipped)
		if err != nil {
			s.fail(w, r, http.StatusInternalServerError, err)
			return
		}
	}
	w.Header().Set(SkippedHeader, strconv.Itoa(res.Skipped))
	s.write(w, opts.Format, out)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	from, ok := s.kind(w, r, "from")
	if !ok {
		return
	}
	to, ok := s.kind(w, r, "to")
	if !ok {
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.maxBody())
	rows, _, err := codec.DecodeCSV(body, models.MustSchema(from))
	if err != nil {
		s.readFailed(w, r, err)
		return
	}
	converted, err := chartly.Convert(from, to, rows)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	var buf bytes.Buffer
	if err := codec.EncodeCSV(&buf, models.MustSchema(to), converted); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set(DroppedHeader, strconv.Itoa(len(rows)-len(converted)))
	s.write(w, chartly.FormatCSV, buf.Bytes())
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kind(w, r, "kind")
	if !ok {
		return
	}
	opts, err := s.options(r, chartly.FormatPNG)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	rows, err := sample.Rows(kind, nil)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	var buf bytes.Buffer
	if err := chartly.Render(&buf, kind, rows, opts); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.write(w, opts.Format, buf.Bytes())
}

func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	out, err := output.KindsToJSON(false)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.write(w, chartly.FormatJSON, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.write(w, chartly.FormatJSON, []byte(`{"status":"ok"}`))
}

func (s *Server) kind(w http.ResponseWriter, r *http.Request, name string) (models.Kind, bool) {
	kind, ok := models.ParseKind(r.PathValue(name))
	if !ok {
		s.fail(w, r, http.StatusNotFound, fmt.Errorf("unknown chart kind %q", r.PathValue(name)))
		return "", false
	}
	return kind, true
}

// options reads format, width, height, title and pretty from the query.
func (s *Server) options(r *http.Request, fallback chartly.Format) (chartly.Options, error) {
	q := r.URL.Query()
	opts := chartly.Options{
		Format: fallback,
		Width:  s.render.Width,
		Height: s.render.Height,
		Title:  q.Get("title"),
		Pretty: q.Has("pretty"),
	}
	if s.render.Format != "" {
		if f, err := chartly.ParseFormat(s.render.Format); err == nil {
			opts.Format = f
		}
	}
	if v := q.Get("format"); v != "" {
		f, err := chartly.ParseFormat(v)
		if err != nil {
			return opts, err
		}
		opts.Format = f
	}
	for key, dst := range map[string]*int{"width": &opts.Width, "height": &opts.Height} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("invalid %s: %q", key, v)
		}
		*dst = n
	}
	return opts, nil
}

func (s *Server) withMeta(r *http.Request, doc []byte, skipped int) ([]byte, error) {
	doc, err := output.SetField(doc, "meta.request_id", RequestIDFromContext(r.Context()))
	if err != nil {
		return nil, err
	}
	return output.SetField(doc, "meta.skipped", skipped)
}

func (s *Server) readFailed(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		s.fail(w, r, http.StatusRequestEntityTooLarge, err)
	case errors.Is(err, chartly.ErrNoValidData):
		s.fail(w, r, http.StatusUnprocessableEntity, err)
	default:
		s.fail(w, r, http.StatusBadRequest, err)
	}
}

func (s *Server) maxBody() int64 {
	if s.conf.MaxBodyBytes > 0 {
		return s.conf.MaxBodyBytes
	}
	return 1 << 20
}

func (s *Server) write(w http.ResponseWriter, format chartly.Format, body []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	doc := []byte(`{}`)
	doc, _ = output.SetField(doc, "error", err.Error())
	doc, _ = output.SetField(doc, "request_id", RequestIDFromContext(r.Context()))
	w.Header().Set("Content-Type", contentTypes[chartly.FormatJSON])
	w.WriteHeader(status)
	_, _ = w.Write(doc)
}
