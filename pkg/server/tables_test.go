package server

import (
	"encoding/json"
	"net/http"

	"github.com/armadakv/console-sub000/pkg/models"
)

// TestCreateTable tests table creation
func (s *ServerTestSuite) TestCreateTable() {
	rec := s.do(http.MethodPost, "/tables", `{"name":"orders"}`)
	s.Equal(http.StatusOK, rec.Code)

	var body map[string]string
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.NotEmpty(body["id"])
}

// TestCreateDuplicateTable tests the 409 path
func (s *ServerTestSuite) TestCreateDuplicateTable() {
	s.createTable("orders")

	rec := s.do(http.MethodPost, "/tables", `{"name":"orders"}`)
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("Table already exists", s.decodeMessage(rec))
}

// TestCreateTableEmptyName tests name validation
func (s *ServerTestSuite) TestCreateTableEmptyName() {
	rec := s.do(http.MethodPost, "/tables", `{"name":""}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Table name is required", s.decodeMessage(rec))
}

// TestCreateTableInvalidBody tests body validation
func (s *ServerTestSuite) TestCreateTableInvalidBody() {
	rec := s.do(http.MethodPost, "/tables", `{broken`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Invalid request body", s.decodeMessage(rec))
}

// TestListTables tests the table listing
func (s *ServerTestSuite) TestListTables() {
	s.createTable("orders")
	s.createTable("invoices")

	rec := s.do(http.MethodGet, "/tables", "")
	s.Equal(http.StatusOK, rec.Code)

	var body models.TableListResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Len(body.Tables, 2)
	s.Equal("invoices", body.Tables[0].Name)
	s.Equal("orders", body.Tables[1].Name)
}

// TestListTablesEmpty tests listing with no tables
func (s *ServerTestSuite) TestListTablesEmpty() {
	rec := s.do(http.MethodGet, "/tables", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"tables":[]}`, rec.Body.String())
}

// TestDeleteTable tests table deletion
func (s *ServerTestSuite) TestDeleteTable() {
	s.createTable("orders")

	rec := s.do(http.MethodDelete, "/tables/orders", "")
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/tables", "")
	s.JSONEq(`{"tables":[]}`, rec.Body.String())
}

// TestDeleteAbsentTableSucceeds tests idempotent table delete end to end
func (s *ServerTestSuite) TestDeleteAbsentTableSucceeds() {
	rec := s.do(http.MethodDelete, "/tables/never-existed", "")
	s.Equal(http.StatusOK, rec.Code)
}
