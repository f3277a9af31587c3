// Command emergec-llvm drives the LLVM backend of the emerge compiler: it
// checks the installed LLVM against the backend configuration and compiles
// sample units through the IR construction API.
package main

func main() {
	Execute()
}
