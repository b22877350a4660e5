//go:build windows

package odbc

import (
	"golang.org/x/sys/windows"
)

// loadODBCLibrary loads the driver manager on Windows
func loadODBCLibrary(libPath string) (uintptr, error) {
	handle, err := windows.LoadLibrary(libPath)
	if err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}
