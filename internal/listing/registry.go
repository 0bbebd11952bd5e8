package listing

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"bourse/internal/engine"

	"github.com/rs/zerolog/log"
)

var ErrAlreadyListed = errors.New("company already listed")

// Registry is the set of listed companies, keyed by code.
type Registry struct {
	companies map[string]*Company
	reporter  engine.Reporter
}

func NewRegistry() *Registry {
	return &Registry{companies: make(map[string]*Company)}
}

// SetReporter routes LISTED events to reporter, typically the engine's
// event log.
func (r *Registry) SetReporter(reporter engine.Reporter) {
	r.reporter = reporter
}

func (r *Registry) List(company *Company) error {
	if _, ok := r.companies[company.Code()]; ok {
		return fmt.Errorf("%s: %w", company.Code(), ErrAlreadyListed)
	}
	r.companies[company.Code()] = company
	if r.reporter != nil {
		r.reporter.Announce("LISTED: " + company.String())
	}
	log.Info().Str("company", company.String()).Msg("listed")
	return nil
}

// ListedCodes returns the listed codes in ascending order.
func (r *Registry) ListedCodes() []string {
	codes := make([]string, 0, len(r.companies))
	for code := range r.companies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (r *Registry) Company(code string) (*Company, bool) {
	company, ok := r.companies[strings.ToUpper(strings.TrimSpace(code))]
	return company, ok
}

func (r *Registry) Instrument(code string) (engine.Instrument, bool) {
	company, ok := r.Company(code)
	if !ok {
		// Avoid returning a typed nil inside the interface.
		return nil, false
	}
	return company, true
}
