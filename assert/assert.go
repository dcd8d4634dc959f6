package assert

import "github.com/oomph-ac/kcc/oerror"

// IsTrue panics with an *oerror.Error if ok is false.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
