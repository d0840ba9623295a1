// Package gathering defines the domain model for the gathering backend:
// gatherings, participants, reviews, and the value types used to search
// and page through them.
//
// The types here are storage-agnostic scalars. Persistence and dynamic
// query composition live in the postgresengine subpackage.
package gathering
