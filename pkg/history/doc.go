/*
Package history keeps a SQLite record of names that earlier runs emitted,
so a caller can exclude them from later runs. It stores names only, never
trained models.
*/
package history
