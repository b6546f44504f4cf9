// Command logplugin builds the C entry points as a shared library:
//
//	go build -buildmode=c-shared -o liblogplugin.so ./cmd/logplugin
//
// Strings are UTF-8, NUL-terminated and owned by the caller; nothing is
// retained after a call returns.
package main

/*
#include <stdint.h>
*/
import "C"

import "github.com/Station-Manager/logplugin"

//export configure
func configure(config *C.char) C.int32_t {
	return C.int32_t(logplugin.Configure(goString(config)))
}

//export emit
func emit(record *C.char) C.int32_t {
	return C.int32_t(logplugin.Emit(goString(record)))
}

//export shutdown
func shutdown() C.int32_t {
	return C.int32_t(logplugin.Shutdown())
}

// Names used by hosts built against the earlier plugin ABI.

//export initialize
func initialize(config *C.char) C.int32_t {
	return configure(config)
}

//export execute
func execute(record *C.char) C.int32_t {
	return emit(record)
}

//export teardown
func teardown() C.int32_t {
	return shutdown()
}

func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

func main() {}
