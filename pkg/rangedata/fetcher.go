package rangedata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff"

	"src.elv.sh/rangebar/pkg/rangesel"
	"src.elv.sh/rangebar/pkg/store/storedefs"
)

// Source is where a payload is read from. File takes precedence over URL.
type Source struct {
	URL  string
	File string
}

func (s Source) String() string {
	if s.File != "" {
		return s.File
	}
	return s.URL
}

// Maximum size of a payload read over HTTP.
const maxPayloadSize = 1 << 20

// Default initial interval between attempts.
const defaultRetryInterval = 200 * time.Millisecond

// Fetcher reads payloads from sources. The zero value is usable: it uses
// http.DefaultClient, makes a single attempt per fetch and has no cache.
type Fetcher struct {
	Client *http.Client
	// Timeout of each HTTP attempt; no timeout if zero.
	Timeout time.Duration
	// Number of extra HTTP attempts after a failed one. Client errors (4xx)
	// and bad payloads are never retried.
	Retries int
	// Initial interval between attempts, growing exponentially.
	RetryInterval time.Duration
	// Keeps the last good payload of every source.
	Cache storedefs.Store
}

// FetchNormal fetches a normal range.
func (f *Fetcher) FetchNormal(ctx context.Context, src Source) (rangesel.Domain, error) {
	return f.Fetch(ctx, Normal, src)
}

// FetchFixed fetches a fixed range.
func (f *Fetcher) FetchFixed(ctx context.Context, src Source) (rangesel.Domain, error) {
	return f.Fetch(ctx, Fixed, src)
}

// Fetch reads and decodes the payload from a source. On success the payload is
// saved to the cache. On failure, the cached payload for the source is used if
// there is one; otherwise the error wraps ErrNoSource, ErrFetch or
// ErrBadPayload.
func (f *Fetcher) Fetch(ctx context.Context, kind Kind, src Source) (rangesel.Domain, error) {
	key := cacheKey(kind, src)
	data, err := f.read(ctx, src)
	if err == nil {
		var d rangesel.Domain
		d, err = Decode(kind, data)
		if err == nil {
			if f.Cache != nil {
				if err := f.Cache.SetPayload(key, data); err != nil {
					logger.Warnf("save payload for %s: %v", key, err)
				}
			}
			return d, nil
		}
	}
	if f.Cache == nil || errors.Is(err, ErrNoSource) {
		return rangesel.Domain{}, err
	}

	p, cacheErr := f.Cache.Payload(key)
	if cacheErr != nil {
		if !errors.Is(cacheErr, storedefs.ErrNoPayload) {
			logger.Warnf("read cached payload for %s: %v", key, cacheErr)
		}
		return rangesel.Domain{}, err
	}
	d, decodeErr := Decode(kind, p.Data)
	if decodeErr != nil {
		logger.Warnf("cached payload for %s: %v", key, decodeErr)
		return rangesel.Domain{}, err
	}
	logger.Warnf("using payload for %s cached at %s: %v",
		key, time.Unix(p.Saved, 0).Format(time.RFC3339), err)
	return d, nil
}

func cacheKey(kind Kind, src Source) string {
	return kind.String() + ":" + src.String()
}

func (f *Fetcher) read(ctx context.Context, src Source) ([]byte, error) {
	switch {
	case src.File != "":
		data, err := os.ReadFile(src.File)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetch, err)
		}
		return data, nil
	case src.URL != "":
		return f.get(ctx, src.URL)
	}
	return nil, ErrNoSource
}

func (f *Fetcher) newBackOff(ctx context.Context) backoff.BackOff {
	if f.Retries <= 0 {
		// WithMaxRetries treats 0 as no limit.
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.RetryInterval
	if b.InitialInterval <= 0 {
		b.InitialInterval = defaultRetryInterval
	}
	b.MaxInterval = 16 * b.InitialInterval
	// The number of attempts is bounded by Retries instead.
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(f.Retries)), ctx)
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	attempt := 0
	op := func() error {
		attempt++
		var err error
		data, err = f.getOnce(ctx, url)
		if err != nil {
			logger.Debugf("attempt %d for %s: %v", attempt, url, err)
		}
		return err
	}
	if err := backoff.Retry(op, f.newBackOff(ctx)); err != nil {
		return nil, err
	}
	return data, nil
}

func (f *Fetcher) getOnce(ctx context.Context, url string) ([]byte, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: %w", ErrFetch, err))
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("%w: status %s", ErrFetch, resp.Status)
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return data, nil
}
