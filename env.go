package odbc

import "sync"

// envState holds the process-wide environment handle. It is created on first
// use and shared read-only by every Connection afterwards.
type envState struct {
	once sync.Once
	h    *Handle[EnvKind]
	err  error
}

var sharedEnv = &envState{}

// environment returns the shared environment, allocating it and selecting
// ODBC 3 behaviour on the first call. A failure is cached like a success.
func environment() (*Handle[EnvKind], error) {
	env := sharedEnv
	env.once.Do(func() {
		h, err := NewRootHandle[EnvKind]()
		if err != nil {
			env.err = err
			return
		}
		ret := SetEnvAttr(SQLHENV(h.Native()), SQL_ATTR_ODBC_VERSION, uintptr(SQL_OV_ODBC3), 0)
		if !IsSuccess(ret) {
			env.err = h.opError(ErrAllocation, "failed to set ODBC version on environment handle")
			h.Free()
			return
		}
		env.h = h
	})
	return env.h, env.err
}
