package jvmgetter

// directStrategy asks the dynamic linker of the current process, no file is read.
type directStrategy struct{}

func (directStrategy) Name() string {
	return "direct"
}

func (directStrategy) Find(symbol string) (Sym, error) {
	return directLookup(symbol)
}
