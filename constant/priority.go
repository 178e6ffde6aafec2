package constant

// System Execution Priorities (lower runs first)
// Forces accumulate before damping; integration follows all velocity writers; containment corrects the integrated position
const (
	PriorityMouse       = 10
	PrioritySpring      = 20
	PriorityCoulomb     = 30
	PriorityDamping     = 40
	PriorityIntegration = 50
	PriorityBoundary    = 60
	PriorityCull        = 900 // After all simulation systems, deferred removal
)
