package leads

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	rdaplib "github.com/openrdap/rdap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRegistration(t *testing.T) {
	d := &rdaplib.Domain{
		Events: []rdaplib.Event{
			{Action: "last changed", Date: "2024-05-01T10:00:00Z"},
			{Action: "Registration", Date: "2009-03-12T08:30:00+01:00"},
		},
		Entities: []rdaplib.Entity{
			{Handle: "ABUSE-1", Roles: []string{"abuse"}},
			{Handle: "REG-42", Roles: []string{"registrar"}},
		},
	}

	reg := buildRegistration(d)

	assert.Equal(t, "REG-42", reg.Registrar)
	require.NotNil(t, reg.RegisteredAt)
	assert.Equal(t, time.Date(2009, 3, 12, 7, 30, 0, 0, time.UTC), *reg.RegisteredAt)

	empty := buildRegistration(&rdaplib.Domain{Events: []rdaplib.Event{{Action: "registration", Date: "yesterday"}}})
	assert.Empty(t, empty.Registrar)
	assert.Nil(t, empty.RegisteredAt)
}

func newRDAPServer(t *testing.T) *url.URL {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)

	return u
}

func TestRegistrationChecker_Errors(t *testing.T) {
	c := NewRegistrationChecker(WithRDAPServer(newRDAPServer(t)), WithRDAPTimeout(time.Second))

	_, err := c.Lookup(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidDomainFormat)

	_, err = c.Lookup(context.Background(), "example.com")
	assert.ErrorIs(t, err, ErrLookupFailed)
}

func TestEnricher_RegistrationFailureIsSoft(t *testing.T) {
	c := NewRegistrationChecker(WithRDAPServer(newRDAPServer(t)), WithRDAPTimeout(time.Second))
	e := NewEnricher(nil, WithRegistrationLookup(c))

	out, err := e.Enrich(context.Background(), "anna@firma.at")
	require.NoError(t, err)
	assert.Equal(t, "firma.at", out.CompanyDomain)
	assert.Nil(t, out.Registration)
	assert.Nil(t, out.MXVerified)
}
