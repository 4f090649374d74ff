// Package store implements the append-only file persistence used for the
// session log. Each process run gets a distinct timestamped file under the
// system temp directory, so concurrent processes never share a log file.
package store
