// Package repositories implements account persistence behind the load-all/save-all [AccountStore] contract.
//
// Every store replaces the whole record set on [AccountStore.Save], keeping the given order,
// and returns the records in that order from [AccountStore.Load]. Blank collection fields are
// stored as an empty JSON list.
//
// Key Implementations:
//   - [SQLiteStore] : accounts table managed by the embedded migrations in shared
//   - [CSVStore] : users.csv file, replaced atomically through a temporary file
//   - [GormStore] : gorm-managed accounts table, PostgreSQL in production
//   - [MemoryStore] : process-local copy, for tests and throwaway sessions
//
// The stores assume a single active session. None of them lock, version or detect concurrent writers.
package repositories
