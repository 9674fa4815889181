package analyzer

type Pass[T any] interface {
	Process(T)
}

// Process runs the passes in order.  Every pass observes the previous passes'
// results; there is no parallelism within a compilation unit.
func Process[T any](
	node T,
	passes []Pass[T],
	shouldEarlyExit func() bool, // optional
) {
	for _, pass := range passes {
		pass.Process(node)

		if shouldEarlyExit != nil && shouldEarlyExit() {
			return
		}
	}
}
