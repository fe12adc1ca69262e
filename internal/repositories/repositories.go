// package repositories provides sqlite persistence for tokens and top-items snapshots.
//
// TokenRepository implements services.TokenStore over the tokens key/value
// table; SnapshotRepository records the most recent successful aggregate
// fetch per item kind. Both expect the schema created by shared.RunMigrations.
package repositories
