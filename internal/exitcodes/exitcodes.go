package exitcodes

// Exit codes for the path-sweep binaries
// Individual delete failures never change the exit code; only broken
// configuration or infrastructure does
const (
	Success       = 0 // Successful execution, failed deletes included
	InvalidConfig = 2 // Configuration file invalid or missing
	RuntimeError  = 4 // Runtime error during execution (database, scheduler)
)
