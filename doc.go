// Package tourbook implements a local-first tour expense book.
//
// A Book owns a list of Tours. Each Tour owns its income/expense Entries and
// its preparation items. All aggregates (income, expense, profit) are
// normalized into the home currency (TWD) using a refreshable exchange-rate
// table; nothing is cached on the records themselves, totals are always
// recomputed from the live table.
//
// The whole book persists as a single versioned JSON file. Reads are
// best-effort: a missing or corrupt file yields an empty book. Writes go
// through a temp file and a rename.
package tourbook
