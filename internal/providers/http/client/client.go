package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/tracing"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const DefaultUserAgent = "AppCoPro-Engine/2.5"

// Options configures an outbound client
type Options struct {
	Name      string
	BaseURL   string
	Timeout   time.Duration
	Retries   int     // extra attempts on connection errors, 429 and 5xx
	RPS       float64 // <= 0 means unlimited
	UserAgent string

	FailureThreshold uint32
	BreakerTimeout   time.Duration

	// PublicOnly refuses connections to non-public addresses and bypasses
	// any environment proxy so the check applies to the real destination
	PublicOnly bool
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Client wraps resty with rate limiting and a circuit breaker
type Client struct {
	name    string
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	logger  *logging.Logger
}

// New creates an outbound client. Retries are performed by the
// retryablehttp transport under resty. metrics may be nil.
func New(opts Options, logger *logging.Logger, metrics *monitoring.Metrics) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	logger = logger.Component(opts.Name)

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = max(opts.Retries, 0)
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = leveledLogger{logger.Sugar()}
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if opts.PublicOnly {
		if transport, ok := retryClient.HTTPClient.Transport.(*http.Transport); ok {
			dialer := &net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
				Control:   PublicOnly,
			}
			transport.Proxy = nil
			transport.DialContext = dialer.DialContext
		}
	}

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			tracing.Inject(r.Context(), r.Header)
			return nil
		})
	if opts.BaseURL != "" {
		restyClient.SetBaseURL(opts.BaseURL)
	}

	breaker := resilience.New(opts.Name, resilience.Settings{
		FailureThreshold: opts.FailureThreshold,
		Timeout:          opts.BreakerTimeout,
		IsFailure:        isBreakerFailure,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if metrics != nil {
				metrics.SetBreakerState(name, int(to))
			}
		},
	})

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), max(int(opts.RPS), 1))
	}

	return &Client{
		name:    opts.Name,
		resty:   restyClient,
		limiter: limiter,
		breaker: breaker,
		logger:  logger,
	}
}

// Execute waits for the rate limiter, then runs the request built by prepare
// through the circuit breaker. Non-2xx responses come back as *StatusError
// together with the response.
func (c *Client) Execute(ctx context.Context, prepare func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	if c.breaker.State() == resilience.StateOpen {
		return nil, resilience.ErrCircuitOpen
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	return resilience.Execute(c.breaker, func() (*resty.Response, error) {
		resp, err := prepare(c.resty.R().SetContext(ctx))
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return resp, &StatusError{Code: resp.StatusCode(), Body: truncate(resp.String(), 512)}
		}
		return resp, nil
	})
}

// BreakerState returns the current circuit breaker state
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

// isBreakerFailure ignores caller errors: cancellations, blocked
// destinations and 4xx other than 429
func isBreakerFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrBlockedAddress) {
		return false
	}
	var status *StatusError
	if errors.As(err, &status) {
		return status.Code >= http.StatusInternalServerError || status.Code == http.StatusTooManyRequests
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.s.Debugw(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
