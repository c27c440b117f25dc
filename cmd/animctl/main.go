// Command animctl inspects, simulates and previews animation manifests.
package main

func main() {
	Execute()
}
