package server

import (
	"encoding/json"
	"net/http"

	"github.com/armadakv/console-sub000/pkg/models"
)

func (s *ServerTestSuite) createTable(name string) {
	rec := s.do(http.MethodPost, "/tables", `{"name":"`+name+`"}`)
	s.Require().Equal(http.StatusOK, rec.Code)
}

// TestPutThenGetRoundTrip tests that a written entry reads back unchanged
func (s *ServerTestSuite) TestPutThenGetRoundTrip() {
	s.createTable("orders")

	rec := s.do(http.MethodPut, "/kv/orders", `{"key":"o1","value":"42"}`)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/kv/orders/o1", "")
	s.Equal(http.StatusOK, rec.Code)

	var entry models.KeyValueEntry
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &entry))
	s.Equal("o1", entry.Key)
	s.Equal("42", entry.Value)
}

// TestPutIsIdempotent tests that re-putting the same entry succeeds
func (s *ServerTestSuite) TestPutIsIdempotent() {
	s.createTable("orders")

	for i := 0; i < 2; i++ {
		rec := s.do(http.MethodPut, "/kv/orders", `{"key":"o1","value":"42"}`)
		s.Equal(http.StatusOK, rec.Code)
	}

	rec := s.do(http.MethodGet, "/kv/orders/o1", "")
	s.Equal(http.StatusOK, rec.Code)
}

// TestPutInvalidBody tests body validation
func (s *ServerTestSuite) TestPutInvalidBody() {
	s.createTable("orders")

	rec := s.do(http.MethodPut, "/kv/orders", `{not json`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Invalid request body", s.decodeMessage(rec))
}

// TestPutEmptyKey tests key validation on put
func (s *ServerTestSuite) TestPutEmptyKey() {
	s.createTable("orders")

	rec := s.do(http.MethodPut, "/kv/orders", `{"key":"","value":"42"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("key is required", s.decodeMessage(rec))
}

// TestGetMissingKey tests the 404 path
func (s *ServerTestSuite) TestGetMissingKey() {
	s.createTable("orders")

	rec := s.do(http.MethodGet, "/kv/orders/missing", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("Not found", s.decodeMessage(rec))
}

// TestListRejectsPrefixWithRange tests the mutual-exclusion rule end to end
func (s *ServerTestSuite) TestListRejectsPrefixWithRange() {
	s.createTable("orders")

	rec := s.do(http.MethodGet, "/kv/orders?prefix=o&start=a&end=z", "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Cannot specify both prefix and start/end range", s.decodeMessage(rec))
}

// TestListRejectsAsymmetricRange tests that a single bound is rejected
func (s *ServerTestSuite) TestListRejectsAsymmetricRange() {
	s.createTable("orders")

	for _, target := range []string{"/kv/orders?start=a", "/kv/orders?end=z"} {
		rec := s.do(http.MethodGet, target, "")
		s.Equal(http.StatusBadRequest, rec.Code, target)
	}
}

// TestListByPrefix tests prefix filtering
func (s *ServerTestSuite) TestListByPrefix() {
	s.createTable("orders")
	s.do(http.MethodPut, "/kv/orders", `{"key":"o1","value":"1"}`)
	s.do(http.MethodPut, "/kv/orders", `{"key":"o2","value":"2"}`)
	s.do(http.MethodPut, "/kv/orders", `{"key":"x1","value":"3"}`)

	rec := s.do(http.MethodGet, "/kv/orders?prefix=o", "")
	s.Equal(http.StatusOK, rec.Code)

	var body models.KeyValueListResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Len(body.Entries, 2)
	s.Equal("o1", body.Entries[0].Key)
	s.Equal("o2", body.Entries[1].Key)
}

// TestListByRange tests range filtering
func (s *ServerTestSuite) TestListByRange() {
	s.createTable("orders")
	s.do(http.MethodPut, "/kv/orders", `{"key":"a1","value":"1"}`)
	s.do(http.MethodPut, "/kv/orders", `{"key":"b1","value":"2"}`)
	s.do(http.MethodPut, "/kv/orders", `{"key":"c1","value":"3"}`)

	rec := s.do(http.MethodGet, "/kv/orders?start=a&end=c", "")
	s.Equal(http.StatusOK, rec.Code)

	var body models.KeyValueListResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Len(body.Entries, 2)
	s.Equal("a1", body.Entries[0].Key)
	s.Equal("b1", body.Entries[1].Key)
}

// TestListWithLimit tests that the limit caps the page
func (s *ServerTestSuite) TestListWithLimit() {
	s.createTable("orders")
	s.do(http.MethodPut, "/kv/orders", `{"key":"o1","value":"1"}`)
	s.do(http.MethodPut, "/kv/orders", `{"key":"o2","value":"2"}`)

	rec := s.do(http.MethodGet, "/kv/orders?limit=1", "")
	s.Equal(http.StatusOK, rec.Code)

	var body models.KeyValueListResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Len(body.Entries, 1)
}

// TestListInvalidLimit tests limit validation
func (s *ServerTestSuite) TestListInvalidLimit() {
	s.createTable("orders")

	rec := s.do(http.MethodGet, "/kv/orders?limit=-1", "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Invalid limit parameter", s.decodeMessage(rec))
}

// TestDeleteKey tests deletion
func (s *ServerTestSuite) TestDeleteKey() {
	s.createTable("orders")
	s.do(http.MethodPut, "/kv/orders", `{"key":"o1","value":"42"}`)

	rec := s.do(http.MethodDelete, "/kv/orders?key=o1", "")
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/kv/orders/o1", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

// TestDeleteAbsentKeySucceeds tests idempotent delete end to end
func (s *ServerTestSuite) TestDeleteAbsentKeySucceeds() {
	s.createTable("orders")

	rec := s.do(http.MethodDelete, "/kv/orders?key=never-existed", "")
	s.Equal(http.StatusOK, rec.Code)
}

// TestDeleteEmptyKey tests key validation on delete
func (s *ServerTestSuite) TestDeleteEmptyKey() {
	s.createTable("orders")

	rec := s.do(http.MethodDelete, "/kv/orders", "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("key is required", s.decodeMessage(rec))
}
