//go:build !pprof

package profile

// Modes returns no modes when built without the pprof tag.
func Modes() []string { return nil }

func valid(string) bool { return false }

func start(Profiler) Stopper { return ignore{} }
