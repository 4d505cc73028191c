package parameter

// System execution priorities (lower runs first)
// Navigation must run before steering so followers never read a stale field within a tick
const (
	PriorityGoalWatch   = 10
	PriorityWorldStream = 20
	PriorityNavigation  = 30
	PrioritySteering    = 40
)
