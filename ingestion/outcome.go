package ingestion

// outcome is the tagged result of a provider call: either a usable value
// or the provider's neutral default with the degraded marker set. The
// dispatcher matches on the marker instead of inspecting errors, so a
// provider failure can never abort an ingest.
type outcome[T any] struct {
	value    T
	degraded bool
}

func succeeded[T any](value T) outcome[T] {
	return outcome[T]{value: value}
}

func degraded[T any](neutral T) outcome[T] {
	return outcome[T]{value: neutral, degraded: true}
}
