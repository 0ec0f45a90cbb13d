// Advent solves a small set of text-input puzzles and keeps a history of
// the answers it computed.
//
// Three puzzles are registered:
//   - expense: find the entries of an expense report that sum to a target
//   - passwords: count password entries that satisfy their policy line
//   - toboggan: count occupied cells along straight routes through a
//     horizontally repeating grid
//
// Usage:
//
//	# Solve every puzzle with the inputs named in config.yaml
//	advent solve
//
//	# Solve one puzzle from an explicit input file
//	advent solve passwords --input day2.txt
//
//	# Re-solve whenever an input file changes, exposing /metrics
//	advent watch --metrics-addr :9090
//
//	# Show recorded answers
//	advent history list --puzzle toboggan
package main

func main() {
	Execute()
}
