package services

// Deleted carries the snapshot of a removed entity and the action that puts an
// equivalent record back. Restore inserts a new identity with the same field values.
type Deleted[T any] struct {
	Snapshot T
	Restore  func() (T, error)
}
