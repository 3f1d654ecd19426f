package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/erp/client/internal/domain/shared"
	"github.com/erp/client/internal/infrastructure/session"
)

// Pipeline is an http.RoundTripper decorator that attaches the stored bearer
// credential to every outgoing request and centrally reacts to authentication
// failures, so individual call sites never handle token attachment or 401/403
// logic themselves.
type Pipeline struct {
	base   http.RoundTripper
	store  session.Store
	logger *zap.Logger
	cfg    Config
}

// Config configures the pipeline.
type Config struct {
	// LoginPath is the request path of the login endpoint. A 401 from this
	// path is propagated unchanged so the login form can report invalid
	// credentials instead of tearing the session down.
	LoginPath string
	// OnSessionInvalidated is invoked after a non-login 401 cleared the
	// session store. The composition root decides how to react; the pipeline
	// itself performs no navigation. Optional.
	OnSessionInvalidated func()
	// OnForbidden is invoked on a 403 response. The credential is left
	// untouched: the user is authenticated but lacks permission. Optional.
	OnForbidden func()
}

// New creates a pipeline wrapping base. A nil base falls back to
// http.DefaultTransport.
func New(base http.RoundTripper, store session.Store, logger *zap.Logger, cfg Config) *Pipeline {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		base:   base,
		store:  store,
		logger: logger,
		cfg:    cfg,
	}
}

// RoundTrip implements http.RoundTripper.
func (p *Pipeline) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	out := req.Clone(req.Context())
	if token, ok := p.store.Token(); ok {
		out.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := p.base.RoundTrip(out)
	if err != nil {
		// Cancellation is the caller's doing, not a connectivity failure;
		// keep it distinguishable.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrConnection, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized && req.URL.Path != p.cfg.LoginPath:
		resp.Body.Close()
		p.logger.Warn("session invalidated by server",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path))
		if err := p.store.Clear(); err != nil {
			p.logger.Error("failed to clear session store", zap.Error(err))
		}
		if p.cfg.OnSessionInvalidated != nil {
			p.cfg.OnSessionInvalidated()
		}
		return nil, fmt.Errorf("%w: %s %s", shared.ErrSessionInvalid, req.Method, req.URL.Path)

	case resp.StatusCode == http.StatusForbidden:
		resp.Body.Close()
		p.logger.Warn("request forbidden",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path))
		if p.cfg.OnForbidden != nil {
			p.cfg.OnForbidden()
		}
		return nil, fmt.Errorf("%w: %s %s", shared.ErrForbidden, req.Method, req.URL.Path)

	case resp.StatusCode >= http.StatusInternalServerError:
		// Server errors are the caller's to handle; log and propagate.
		p.logger.Error("server error",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode))
	}

	return resp, nil
}

var _ http.RoundTripper = (*Pipeline)(nil)
