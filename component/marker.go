package component

// MouseAttractComponent tags entities pulled toward the pointer
type MouseAttractComponent struct{}

// DeathComponent tags entities for removal at the end of the current tick
type DeathComponent struct{}
