package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"time"

	"github.com/armadakv/console-sub000/pkg/history"
	"github.com/armadakv/console-sub000/pkg/models"
)

// TestStatusAllMembersHealthy tests the aggregated happy path
func (s *ServerTestSuite) TestStatusAllMembersHealthy() {
	rec := s.do(http.MethodGet, "/status", "")
	s.Equal(http.StatusOK, rec.Code)

	var aggregated models.AggregatedStatus
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &aggregated))
	s.Require().Len(aggregated.Servers, 2)

	// Sorted by name: alpha before beta.
	s.Equal("alpha", aggregated.Servers[0].Name)
	s.Equal("beta", aggregated.Servers[1].Name)
	for _, entry := range aggregated.Servers {
		s.Equal(models.StateOK, entry.State)
		s.Equal(uint64(42), entry.Tables["orders"].RaftIndex)
	}
}

// TestStatusOneMemberTimesOut tests that a stalled node degrades only its row
func (s *ServerTestSuite) TestStatusOneMemberTimesOut() {
	s.mock.addMember("m3", "gamma", stalledStatusHandler())

	rec := s.do(http.MethodGet, "/status", "")
	s.Equal(http.StatusOK, rec.Code)

	var aggregated models.AggregatedStatus
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &aggregated))
	s.Require().Len(aggregated.Servers, 3)

	errorRows := 0
	for _, entry := range aggregated.Servers {
		if entry.State == models.StateError {
			errorRows++
			s.Equal("gamma", entry.Name)
			s.Contains(entry.Message, "timed out")
		}
	}
	s.Equal(1, errorRows)
}

// TestStatusOneMemberUnreachable tests the connection-failure degradation
func (s *ServerTestSuite) TestStatusOneMemberUnreachable() {
	s.mock.mu.Lock()
	s.mock.members = append(s.mock.members, models.Member{
		ID:              "m9",
		Name:            "zombie",
		ClientAddresses: []string{"127.0.0.1:1"},
	})
	s.mock.mu.Unlock()

	rec := s.do(http.MethodGet, "/status", "")
	s.Equal(http.StatusOK, rec.Code)

	var aggregated models.AggregatedStatus
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &aggregated))
	s.Require().Len(aggregated.Servers, 3)

	// zombie sorts last by name
	degraded := aggregated.Servers[2]
	s.Equal("zombie", degraded.Name)
	s.Equal(models.StateError, degraded.State)
	s.NotEmpty(degraded.Message)
}

// TestStatusHistoryServesRecordedSnapshots tests the history endpoint with a store
func (s *ServerTestSuite) TestStatusHistoryServesRecordedSnapshots() {
	store, err := history.NewStore(filepath.Join(s.T().TempDir(), "history.db"), 10)
	s.Require().NoError(err)
	defer store.Close()

	_, err = store.Record([]models.NodeStatus{{ID: "m1", Name: "alpha", State: models.StateOK}})
	s.Require().NoError(err)

	srv := New(s.registry, s.srv.aggregator, store, Config{
		RequestTimeout:          time.Second,
		GracefulShutdownTimeout: time.Second,
		ScanLimit:               100,
	})

	req := newJSONRequest(http.MethodGet, "/status/history?limit=5", "")
	rec := record(srv, req)
	s.Equal(http.StatusOK, rec.Code)

	var body models.SnapshotListResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Len(body.Snapshots, 1)
	s.Equal("alpha", body.Snapshots[0].Servers[0].Name)
}

// TestStatusHistoryRejectsBadLimit tests limit validation
func (s *ServerTestSuite) TestStatusHistoryRejectsBadLimit() {
	store, err := history.NewStore(filepath.Join(s.T().TempDir(), "history.db"), 10)
	s.Require().NoError(err)
	defer store.Close()

	srv := New(s.registry, s.srv.aggregator, store, Config{
		RequestTimeout:          time.Second,
		GracefulShutdownTimeout: time.Second,
		ScanLimit:               100,
	})

	rec := record(srv, newJSONRequest(http.MethodGet, "/status/history?limit=nope", ""))
	s.Equal(http.StatusBadRequest, rec.Code)
}
