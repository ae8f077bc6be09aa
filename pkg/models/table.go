package models

// Table is a named keyspace in the cluster. IDs are assigned by the store.
type Table struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TableListResponse represents a list of tables.
type TableListResponse struct {
	Tables []Table `json:"tables"`
}
