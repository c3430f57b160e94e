package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Stopper ends a profiling session started by [Profiler.Start].
type Stopper interface{ Stop() }

// Profiler configures one profiling session.
type Profiler struct {
	// Mode is one of [Modes]. Profiling is disabled if Mode is empty.
	Mode string
	// Path is the directory profile data is written to.
	Path string
	// Quiet suppresses the profiler's own log output.
	Quiet bool
}

// Enabled reports whether p would start a profiler in this build.
func (p Profiler) Enabled() bool {
	return p.Mode != "" && valid(p.Mode)
}

// Start begins profiling and returns a [Stopper] that ends it.
//
// If the binary was built without the pprof tag, or p names no supported
// mode, Start returns a no-op. Both Start and Stop are always safely
// callable.
func (p Profiler) Start() Stopper {
	if !p.Enabled() {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
