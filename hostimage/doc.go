// Package hostimage searches the symbol table of the running executable through goloader,
// for hosts that link the Java runtime statically.
//
// goloader needs the internals of the Go SDK copied into cmd/objfile, so the strategy only
// builds with the goloader tag:
//
//	go build -tags goloader
//
// Register it with jvmgetter.WithStrategy(hostimage.Strategy{}).
package hostimage
