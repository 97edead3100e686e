package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/clinic-portal/pkg/errors"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

type fakeService struct {
	results map[string][]model.SearchResult
	queries []string
	err     error
}

func (f *fakeService) SearchAppointments(_ context.Context, query string) ([]model.SearchResult, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

var initial = []model.SearchResult{
	{AppointmentDate: "2025-10-11", AppointmentTime: "09:00:00", Description: "Cardiology"},
	{AppointmentDate: "2025-10-13", AppointmentTime: "14:30:00", Description: "Dermatology"},
}

func TestInitialListingShown(t *testing.T) {
	p := New(&fakeService{}, initial, nil, nil)
	assert.Len(t, p.Rows(), 2)
	out := p.Render()
	assert.Contains(t, out, "Saturday, Oct 11")
	assert.Contains(t, out, "9:00 AM  Cardiology")
}

func TestSubmitReplacesListing(t *testing.T) {
	svc := &fakeService{results: map[string][]model.SearchResult{
		"cardio": {{AppointmentDate: "2025-10-11", AppointmentTime: "09:00:00", Description: "Cardiology"}},
	}}
	p := New(svc, initial, nil, nil)

	p.Submit(context.Background(), "cardio")
	require.Len(t, p.Rows(), 1)
	assert.Equal(t, []string{"cardio"}, svc.queries)
}

func TestSubmitTrimsQuery(t *testing.T) {
	svc := &fakeService{results: map[string][]model.SearchResult{}}
	p := New(svc, initial, nil, nil)

	p.Submit(context.Background(), "  cardio  ")
	assert.Equal(t, []string{"cardio"}, svc.queries)
}

func TestEmptySubmitRestoresPristineWithoutServerCall(t *testing.T) {
	svc := &fakeService{results: map[string][]model.SearchResult{
		"cardio": {{Description: "Cardiology"}},
	}}
	p := New(svc, initial, nil, nil)

	p.Submit(context.Background(), "cardio")
	require.Len(t, p.Rows(), 1)

	p.Submit(context.Background(), "   ")
	assert.Equal(t, initial, p.Rows())
	assert.Equal(t, []string{"cardio"}, svc.queries, "empty submit must not hit the server")
}

func TestClearingInputRestoresPristine(t *testing.T) {
	svc := &fakeService{results: map[string][]model.SearchResult{
		"x": {{Description: "Something"}},
	}}
	p := New(svc, initial, nil, nil)

	p.Submit(context.Background(), "x")
	p.Input("")
	assert.Equal(t, initial, p.Rows())

	p.Input("not empty")
	assert.Equal(t, initial, p.Rows(), "non-empty input alone does not search")
	assert.Equal(t, []string{"x"}, svc.queries)
}

func TestZeroResultsRendersEmptyState(t *testing.T) {
	svc := &fakeService{results: map[string][]model.SearchResult{}}
	p := New(svc, initial, nil, nil)

	p.Submit(context.Background(), "nothing")
	assert.Empty(t, p.Rows())
	assert.Contains(t, p.Render(), "No appointments found matching your search.")
}

func TestUpstreamFailureAlertsWithServerMessage(t *testing.T) {
	var alerts []string
	svc := &fakeService{err: apperrors.Upstream("query too long")}
	p := New(svc, initial, func(m string) { alerts = append(alerts, m) }, nil)

	p.Submit(context.Background(), "cardio")
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0], "query too long")
	assert.Equal(t, initial, p.Rows(), "failed search leaves the listing alone")
}

func TestNetworkFailureAlertsGenerically(t *testing.T) {
	var alerts []string
	svc := &fakeService{err: apperrors.Network(assert.AnError)}
	p := New(svc, initial, func(m string) { alerts = append(alerts, m) }, nil)

	p.Submit(context.Background(), "cardio")
	require.Len(t, alerts, 1)
	assert.Equal(t, "A network error occurred. Please try again.", alerts[0])
}
