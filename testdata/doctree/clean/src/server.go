package src

// Serve is a placeholder for the demo tree.
func Serve() string { return "ok" }
