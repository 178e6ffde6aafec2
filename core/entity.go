package core

// Entity is an opaque identifier; all data lives in component stores
// IDs are allocated monotonically and never reused, so ascending order equals creation order
type Entity uint64

// NoEntity is the zero value, never allocated
const NoEntity Entity = 0
