// package repositories provides the sqlite persistence layer.
//
// The only entity stored today is the mirrored OAuth credential, kept as an
// opaque encoded blob so the database schema never has to track the token
// format.
package repositories
