// Package geocode defines the gazetteer contract the locator depends on and the
// helpers that turn provider failures into typed outcomes.
package geocode

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/bwise1/lifegroup_locator/internal/model"
	"github.com/pkg/errors"
)

// ErrNotFound is returned by providers when the gazetteer has no match for the query.
var ErrNotFound = errors.New("address not found")

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (model.ResolvedLocation, error)
}

// Reason classifies why a geocoding call failed.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonNotFound  Reason = "not-found"
	ReasonTimeout   Reason = "timeout"
	ReasonTransport Reason = "transport"
)

// Classify maps an error returned by a Geocoder to a Reason.
func Classify(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	if errors.Is(err, ErrNotFound) {
		return ReasonNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	return ReasonTransport
}

// Result is the outcome of one geocoding attempt.
type Result struct {
	Query    string
	Location *model.ResolvedLocation
	Reason   Reason
	Err      error
}

func (r Result) OK() bool {
	return r.Location != nil
}

// Attempt makes a single call bounded by timeout and folds every failure into Result.
// A panicking provider is treated like any other failure.
func Attempt(ctx context.Context, g Geocoder, query string, timeout time.Duration) (res Result) {
	res.Query = query
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	defer func() {
		if p := recover(); p != nil {
			res.Location = nil
			res.Err = errors.Errorf("geocoder panic: %v", p)
			res.Reason = ReasonTransport
		}
	}()

	loc, err := g.Geocode(ctx, query)
	if err != nil {
		res.Err = err
		res.Reason = Classify(err)
		return res
	}
	res.Location = &loc
	return res
}

// Qualify appends the non-blank qualifiers to address, comma separated.
func Qualify(address string, qualifiers ...string) string {
	parts := []string{strings.TrimSpace(address)}
	for _, q := range qualifiers {
		if q = strings.TrimSpace(q); q != "" {
			parts = append(parts, q)
		}
	}
	return strings.Join(parts, ", ")
}

// Fallback resolves user-typed addresses: first narrowed to a region, then with the
// country only. The region stage is skipped when Region is blank.
type Fallback struct {
	Geocoder Geocoder
	Region   string
	Country  string
	Timeout  time.Duration
}

// Resolve returns the first successful attempt, or the last failed one.
func (f Fallback) Resolve(ctx context.Context, address string) Result {
	queries := []string{}
	if strings.TrimSpace(f.Region) != "" {
		queries = append(queries, Qualify(address, f.Region, f.Country))
	}
	queries = append(queries, Qualify(address, f.Country))

	var res Result
	for _, q := range queries {
		res = Attempt(ctx, f.Geocoder, q, f.Timeout)
		if res.OK() {
			return res
		}
	}
	return res
}

// Func adapts a plain function to the Geocoder interface.
type Func func(ctx context.Context, query string) (model.ResolvedLocation, error)

func (f Func) Geocode(ctx context.Context, query string) (model.ResolvedLocation, error) {
	return f(ctx, query)
}
