package main

import "runtime"

// defaultPoolSize derives a worker count from GOMAXPROCS (adjusted by
// automaxprocs inside containers). Half the available CPUs leaves headroom
// for the TeX engines themselves, which are single-threaded but I/O heavy.
func defaultPoolSize() int {
	n := runtime.GOMAXPROCS(0) / 2
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}
