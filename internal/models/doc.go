// Package models defines the entities of the music library and the record shape of the account store.
//
// The package contains two categories of types:
//
// 1. Library entities: in-memory values owned by a logged-in user
//   - [Song] : one track, identified by its title
//   - [Playlist] : a named, ordered list of songs
//
// 2. Persistent records: what the account store reads and writes
//   - [Account] : credentials plus the three collections serialized as JSON strings
//
// Collections cross the store boundary through [EncodeSongs], [DecodeSongs], [EncodePlaylists] and [DecodePlaylists],
// which use fixed record structs rather than untyped maps.
package models
