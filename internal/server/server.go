package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-sambat/internal/config"
	"github.com/tartampluch/go-sambat/internal/engine"
)

// feedItem stores the rendered feed and its metadata for HTTP caching.
type feedItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123, as required by HTTP headers
}

// CalendarServer serves the month-start feed and the conversion API on
// localhost.
type CalendarServer struct {
	// feed is swapped on every sync and read on every GET.
	feed atomic.Pointer[feedItem]
	Port string

	// Calendar backs the /convert endpoint. Clock supplies "today" for
	// fallbacks; nil means the system clock.
	Calendar engine.Calendar
	Clock    engine.Clock
}

// NewCalendarServer creates a server bound to the given port.
func NewCalendarServer(port string, cal engine.Calendar) *CalendarServer {
	return &CalendarServer{
		Port:     port,
		Calendar: cal,
	}
}

// Handler returns the routing table. It is exposed for tests.
func (s *CalendarServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteConvert, s.handleConvert)
	mux.HandleFunc(config.RouteRoot, s.handleFeed)
	return mux
}

// Start runs the HTTP server and blocks until ctx is cancelled.
func (s *CalendarServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served feed.
func (s *CalendarServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	s.feed.Store(&feedItem{
		data:         data,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

func allowReadOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set(config.HeaderAllow, config.AllowedMethods)
	http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	return false
}

// handleFeed serves the ICS content with conditional GET support.
func (s *CalendarServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	if !allowReadOnly(w, r) {
		return
	}

	item := s.feed.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, config.MimeTextCalendar)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderETag, item.etag)
	h.Set(config.HeaderLastModified, item.lastModified)

	if notModified(r, item) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

func notModified(r *http.Request, item *feedItem) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == item.etag
	}

	since := r.Header.Get(config.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, item.lastModified)
	if err != nil {
		return false
	}
	return !serverTime.After(clientTime)
}

// handleConvert answers GET /convert?from=bs|ad&year=&month=&day= with the
// rendered DisplayBundle. Month is one-based here. Year and day follow the
// converter's lenient parsing, so only "from" and "month" can be rejected.
func (s *CalendarServer) handleConvert(w http.ResponseWriter, r *http.Request) {
	if !allowReadOnly(w, r) {
		return
	}

	q := r.URL.Query()

	mode := engine.ModeBSToAD
	switch q.Get(config.QueryFrom) {
	case "", config.FromBS:
	case config.FromAD:
		mode = engine.ModeADToBS
	default:
		http.Error(w, config.ErrQueryFrom, http.StatusBadRequest)
		return
	}

	month, err := strconv.Atoi(q.Get(config.QueryMonth))
	if err != nil || month < config.MinMonth+1 || month > config.MaxMonth+1 {
		http.Error(w, config.ErrQueryMonth, http.StatusBadRequest)
		return
	}

	slog.Debug(config.MsgConvRequest,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyMode, mode.String(),
		config.LogKeyYear, q.Get(config.QueryYear),
		config.LogKeyMonth, month,
		config.LogKeyDay, q.Get(config.QueryDay),
	)

	e := engine.New(s.Calendar, s.Clock)
	e.SetMode(mode)
	if mode == engine.ModeADToBS {
		e.SetADInputText(q.Get(config.QueryYear), month-1, q.Get(config.QueryDay))
	} else {
		e.SetBSInputText(q.Get(config.QueryYear), month-1, q.Get(config.QueryDay))
	}

	body, err := json.Marshal(engine.Render(e.Convert()))
	if err != nil {
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, config.MimeJSON)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlNoStore)

	if r.Method == http.MethodGet {
		if _, err := w.Write(body); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
