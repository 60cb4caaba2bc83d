package countrydata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	country Country
	err     error
	calls   atomic.Int32
}

func (s *stubProvider) Country(_ context.Context, _ string) (Country, error) {
	s.calls.Add(1)

	return s.country, s.err
}

func TestStaticProvider_Embedded(t *testing.T) {
	p, err := NewStaticProvider()
	require.NoError(t, err)

	at, err := p.Country(context.Background(), "AT")
	require.NoError(t, err)
	assert.Equal(t, "at", at.Code)
	assert.Equal(t, "Austria", at.Name)

	dsgvo, ok := at.Regulation("dsgvo")
	require.True(t, ok)
	assert.Equal(t, StatusImplemented, dsgvo.ImplementationStatus)
	assert.NotEmpty(t, dsgvo.Authority)

	_, err = p.Country(context.Background(), "xx")
	assert.ErrorIs(t, err, ErrCountryNotFound)

	assert.Contains(t, p.Codes(), "de")
}

func TestParseStatic_InvalidStatus(t *testing.T) {
	doc := []byte(`
countries:
  at:
    name: Austria
    regulations:
      nis2:
        implementationStatus: maybe
`)

	_, err := ParseStatic(doc)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatic([]byte("countries: ["))
	assert.ErrorIs(t, err, ErrDecodeFailed)
}

func TestHTTPProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch r.URL.Path {
		case "/countries/at.json":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(Country{
				Name: "Austria",
				Regulations: map[string]RegulationStatus{
					"nis2": {ImplementationStatus: StatusOverdue, NationalDeadline: "2024-10-17"},
				},
			})
		case "/countries/zz.json":
			w.Write([]byte(`{"regulations":{"nis2":{"implementationStatus":"soon"}}}`)) //nolint:errcheck
		case "/countries/xx.json":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	p, err := NewHTTPProvider(server.URL+"/", WithAPIToken("secret"))
	require.NoError(t, err)

	at, err := p.Country(context.Background(), "AT")
	require.NoError(t, err)
	assert.Equal(t, "at", at.Code)
	assert.Equal(t, StatusOverdue, at.Regulations["nis2"].ImplementationStatus)

	_, err = p.Country(context.Background(), "xx")
	assert.ErrorIs(t, err, ErrCountryNotFound)

	_, err = p.Country(context.Background(), "zz")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = p.Country(context.Background(), "fr")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	_, err = NewHTTPProvider("")
	assert.ErrorIs(t, err, ErrMissingBaseURL)
}

func TestHTTPProvider_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	p, err := NewHTTPProvider(server.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = p.Country(ctx, "at")
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestCachedProvider(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	upstream := &stubProvider{country: Country{Code: "at", Name: "Austria"}}
	p := NewCachedProvider(upstream, client, time.Minute)

	for i := 0; i < 3; i++ {
		c, err := p.Country(context.Background(), "at")
		require.NoError(t, err)
		assert.Equal(t, "Austria", c.Name)
	}

	assert.Equal(t, int32(1), upstream.calls.Load())
	assert.True(t, mr.Exists("hub:country:at"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("hub:country:at"))

	require.NoError(t, p.Invalidate(context.Background(), "AT"))
}

func TestCachedProvider_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	mr.Close()

	upstream := &stubProvider{country: Country{Code: "de", Name: "Germany"}}
	p := NewCachedProvider(upstream, client, 0)

	c, err := p.Country(context.Background(), "de")
	require.NoError(t, err)
	assert.Equal(t, "Germany", c.Name)
}

func TestCachedProvider_UpstreamError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	p := NewCachedProvider(&stubProvider{err: ErrCountryNotFound}, client, 0)

	_, err := p.Country(context.Background(), "xx")
	assert.ErrorIs(t, err, ErrCountryNotFound)
	assert.False(t, mr.Exists("hub:country:xx"))
}

func TestChain(t *testing.T) {
	boom := errors.New("boom")

	remote := &stubProvider{err: boom}
	static := &stubProvider{country: Country{Code: "at"}}

	c, err := Chain{remote, static}.Country(context.Background(), "at")
	require.NoError(t, err)
	assert.Equal(t, "at", c.Code)
	assert.Equal(t, int32(1), remote.calls.Load())

	_, err = Chain{&stubProvider{err: ErrCountryNotFound}, &stubProvider{err: ErrCountryNotFound}}.Country(context.Background(), "xx")
	assert.ErrorIs(t, err, ErrCountryNotFound)

	_, err = Chain{&stubProvider{err: boom}, &stubProvider{err: ErrCountryNotFound}}.Country(context.Background(), "xx")
	assert.ErrorIs(t, err, boom)

	_, err = Chain{}.Country(context.Background(), "at")
	assert.ErrorIs(t, err, ErrCountryNotFound)
}

type blockingProvider struct {
	deadline time.Time
}

func (b *blockingProvider) Country(ctx context.Context, _ string) (Country, error) {
	b.deadline, _ = ctx.Deadline()
	<-ctx.Done()

	return Country{}, fmt.Errorf("%w: %v", ErrRequestFailed, ctx.Err())
}

func TestChain_SlowUpstreamFallsBackToStatic(t *testing.T) {
	static, err := NewStaticProvider()
	require.NoError(t, err)

	remote := &blockingProvider{}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	parent, _ := ctx.Deadline()

	c, err := Chain{remote, static}.Country(ctx, "at")
	require.NoError(t, err)
	assert.Equal(t, "at", c.Code)
	assert.True(t, remote.deadline.Before(parent), "upstream should run under a shorter deadline")
	assert.NoError(t, ctx.Err())
}

func TestChain_ExpiredDeadlineStillUsesLastProvider(t *testing.T) {
	static, err := NewStaticProvider()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	<-ctx.Done()

	c, err := Chain{&blockingProvider{}, static}.Country(ctx, "de")
	require.NoError(t, err)
	assert.Equal(t, "de", c.Code)
}
