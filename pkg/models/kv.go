package models

// KeyValueEntry is one key-value pair stored in a table. The value is an
// opaque payload; the console never interprets it.
type KeyValueEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// KeyValueListResponse represents a page of key-value entries.
type KeyValueListResponse struct {
	Entries []KeyValueEntry `json:"entries"`
}
