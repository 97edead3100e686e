// Package search drives the patient appointment list page: an Enter-key
// server-side search with a pristine fallback listing captured when the
// page loads.
package search

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/jwalitptl/clinic-portal/pkg/errors"
	"github.com/jwalitptl/clinic-portal/pkg/logger"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

const noResultsMessage = "No appointments found matching your search."

// Service is the slice of the clinic API the search page needs.
type Service interface {
	SearchAppointments(ctx context.Context, query string) ([]model.SearchResult, error)
}

// Page is the search page state. The pristine listing is captured once at
// construction and restored whenever the query is cleared.
type Page struct {
	svc      Service
	alert    func(msg string)
	logger   *logger.Logger
	pristine []model.SearchResult

	rows      []model.SearchResult
	noResults bool
}

// New captures the initial listing and shows it.
func New(svc Service, initial []model.SearchResult, alert func(string), log *logger.Logger) *Page {
	if log == nil {
		log = logger.NewLogger(nil)
	}
	pristine := make([]model.SearchResult, len(initial))
	copy(pristine, initial)

	p := &Page{
		svc:      svc,
		alert:    alert,
		logger:   log.WithComponent("search"),
		pristine: pristine,
	}
	p.Reset()
	return p
}

// Input reacts to the query box changing: clearing it restores the pristine
// listing immediately, without a server round trip.
func (p *Page) Input(value string) {
	if strings.TrimSpace(value) == "" {
		p.Reset()
	}
}

// Submit runs the search (the Enter key). An empty query restores the
// pristine listing instead of hitting the server.
func (p *Page) Submit(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		p.Reset()
		return
	}

	results, err := p.svc.SearchAppointments(ctx, query)
	if err != nil {
		p.logger.Error(err, "appointment search failed", "query", query)
		if apperrors.IsUpstream(err) {
			p.notify("Error searching appointments: " + apperrors.Message(err))
		} else {
			p.notify("A network error occurred. Please try again.")
		}
		return
	}

	p.rows = results
	p.noResults = len(results) == 0
}

// Reset restores the exact listing captured at construction.
func (p *Page) Reset() {
	rows := make([]model.SearchResult, len(p.pristine))
	copy(rows, p.pristine)
	p.rows = rows
	p.noResults = false
}

// Rows returns the rows currently shown.
func (p *Page) Rows() []model.SearchResult { return p.rows }

// Render draws the listing, or the explicit empty-state line after a search
// with no matches.
func (p *Page) Render() string {
	if p.noResults {
		return noResultsMessage + "\n"
	}
	var b strings.Builder
	for _, r := range p.rows {
		fmt.Fprintf(&b, "%s\n", r.DateLabel())
		fmt.Fprintf(&b, "  %s  %s\n", r.TimeLabel(), r.Description)
	}
	return b.String()
}

func (p *Page) notify(msg string) {
	if p.alert != nil {
		p.alert(msg)
	}
}
