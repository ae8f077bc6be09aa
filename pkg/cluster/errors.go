package cluster

import "errors"

var (
	// ErrNotFound is returned when the addressed table or key does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when creating a table whose name is taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrConnection is returned when the cluster client cannot be constructed
	// because the target is unreachable. The next Get retries construction.
	ErrConnection = errors.New("cannot connect to cluster")

	// ErrUpstream is returned when a cluster call fails for any reason other
	// than the ones above.
	ErrUpstream = errors.New("upstream request failed")
)
