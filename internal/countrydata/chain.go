package countrydata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// fallbackShare divides the remaining deadline for a provider that has others behind it
const fallbackShare = 2

// Chain asks each provider in turn and returns the first answer
type Chain []Provider

// Country returns the first successful lookup. A provider followed by others
// gets half of the remaining deadline so a slow upstream leaves time for the
// fallbacks, and an expired deadline still falls through to the last provider.
// When every provider fails, the result is ErrCountryNotFound if that is all
// they reported, otherwise the joined errors.
func (c Chain) Country(ctx context.Context, code string) (Country, error) {
	var errs []error

	for i, p := range c {
		pctx, cancel := c.budget(ctx, i)
		country, err := p.Country(pctx, code)
		cancel()

		if err == nil {
			return country, nil
		}

		if !errors.Is(err, ErrCountryNotFound) {
			log.Debug().Err(err).Int("provider", i).Str("country", code).Msg("country provider failed, trying next")
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		return Country{}, fmt.Errorf("%w: %s", ErrCountryNotFound, code)
	}

	return Country{}, errors.Join(errs...)
}

// budget returns the context provider i runs under
func (c Chain) budget(ctx context.Context, i int) (context.Context, context.CancelFunc) {
	deadline, ok := ctx.Deadline()
	if !ok || i == len(c)-1 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, time.Until(deadline)/fallbackShare)
}
