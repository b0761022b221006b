// Package storage persists small string values such as the session token.
//
// The Store interface mirrors browser local storage (get/set/remove) so the
// session package can swap implementations:
//
//   - MemoryStore: process memory, used in tests and for the "memory" driver.
//   - SQLiteStore: a single kv_entries table managed with Bun; the default
//     on-disk store.
//   - RedisStore: shared storage for several processes.
//
// Stores do not notify each other. A Remove in one process only affects
// what other processes read afterwards.
package storage
