// Command cellbench drives synthetic lists through cellsize managers and
// reports hit rates, optionally exposing Prometheus metrics and pprof.
package main

func main() {
	Execute()
}
