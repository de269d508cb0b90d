package assert

import "github.com/oomph-ac/subsim/oerror"

// IsTrue panics with a formatted SimError if ok is false.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}

// NoError panics if err is non-nil. It is used by Must* constructors.
func NoError(err error) {
	if err != nil {
		panic(oerror.New("%v", err))
	}
}
