// Package profile provides optional runtime profiling for litcfg.
//
// # Overview
//
// This package wraps [github.com/pkg/profile] behind the "pprof" build tag.
// Without the tag, [Modes] is empty and [Profiler.Start] is a no-op, so
// callers never need their own build constraints.
//
// # Available Profiling Modes
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// # Using File-Based Profiling
//
//	p := profile.Profiler{
//	    Mode:  "cpu",
//	    Path:  "/tmp/profiles",
//	    Quiet: true,
//	}
//	defer p.Start().Stop()
//
// Profile files are written to Path with names matching the mode
// (e.g., cpu.pprof, mem.pprof).
//
// # Command-Line Usage
//
// The litcfg command exposes profiling when built with the tag:
//
//	go build -tags pprof -o litcfg .
//	./litcfg --pprof-mode cpu load app.pyi
//	./litcfg --pprof-mode heap --pprof-dir ./profiles update app.pyi -t tmpl.pyi
//
// The default output directory is the "pprof" directory below the user
// cache directory, for example:
//
//	$XDG_CACHE_HOME/litcfg/pprof   (Linux/Unix)
//	~/Library/Caches/litcfg/pprof  (macOS)
//	%LocalAppData%\litcfg\pprof    (Windows)
//
// # Analyzing Profile Data
//
//	go tool pprof ./litcfg /tmp/profiles/cpu.pprof
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//	go tool pprof -base=old.pprof new.pprof
//
// With the tag, the package also imports [net/http/pprof], which registers
// its handlers at /debug/pprof/ on [net/http.DefaultServeMux].
package profile
