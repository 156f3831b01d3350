// Package store provides the local IR code library on SQLite.
//
// The library holds devices (manufacturer + model + native code format)
// and their named codes. Every code row carries the content hash of its
// decoded signal, so the same physical signal stored under different
// vendor formats can be found as a duplicate. Writes are idempotent:
// re-importing a device file is a no-op for rows already present.
package store
