package odbc

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

var (
	odbcLib  uintptr
	initOnce sync.Once
	initErr  error
)

// ODBC function pointers - populated by purego
var (
	sqlAllocHandle   func(handleType SQLSMALLINT, inputHandle SQLHANDLE, outputHandle *SQLHANDLE) SQLRETURN
	sqlFreeHandle    func(handleType SQLSMALLINT, handle SQLHANDLE) SQLRETURN
	sqlSetEnvAttr    func(env SQLHENV, attribute SQLINTEGER, value uintptr, stringLength SQLINTEGER) SQLRETURN
	sqlDriverConnect func(dbc SQLHDBC, hwnd uintptr, inConnStr *byte, inConnStrLen SQLSMALLINT, outConnStr *byte, outConnStrMax SQLSMALLINT, outConnStrLen *SQLSMALLINT, driverCompletion SQLUSMALLINT) SQLRETURN
	sqlDisconnect    func(dbc SQLHDBC) SQLRETURN
	sqlGetInfo       func(dbc SQLHDBC, infoType SQLUSMALLINT, infoValue uintptr, bufferLength SQLSMALLINT, stringLength *SQLSMALLINT) SQLRETURN
	sqlExecDirect    func(stmt SQLHSTMT, stmtText *byte, textLength SQLINTEGER) SQLRETURN
	sqlNumResultCols func(stmt SQLHSTMT, columnCount *SQLSMALLINT) SQLRETURN
	sqlDescribeCol   func(stmt SQLHSTMT, colNum SQLUSMALLINT, colName *byte, bufferLen SQLSMALLINT, nameLen *SQLSMALLINT, dataType *SQLSMALLINT, colSize *SQLULEN, decDigits *SQLSMALLINT, nullable *SQLSMALLINT) SQLRETURN
	sqlColAttribute  func(stmt SQLHSTMT, colNum SQLUSMALLINT, fieldId SQLUSMALLINT, charAttr uintptr, bufferLen SQLSMALLINT, strLen *SQLSMALLINT, numAttr *SQLLEN) SQLRETURN
	sqlFetch         func(stmt SQLHSTMT) SQLRETURN
	sqlGetData       func(stmt SQLHSTMT, colNum SQLUSMALLINT, targetType SQLSMALLINT, targetValue uintptr, bufferLen SQLLEN, strLenOrInd *SQLLEN) SQLRETURN
	sqlRowCount      func(stmt SQLHSTMT, rowCount *SQLLEN) SQLRETURN
	sqlGetDiagRec    func(handleType SQLSMALLINT, handle SQLHANDLE, recNum SQLSMALLINT, sqlState *byte, nativeError *SQLINTEGER, msgText *byte, bufferLen SQLSMALLINT, textLen *SQLSMALLINT) SQLRETURN
	sqlFreeStmt      func(stmt SQLHSTMT, option SQLUSMALLINT) SQLRETURN
	sqlSetStmtAttr   func(stmt SQLHSTMT, attribute SQLINTEGER, value uintptr, stringLength SQLINTEGER) SQLRETURN
)

// getLibraryPath returns the platform-specific driver manager path.
// The GODBC_LIBRARY_PATH environment variable can override the default path.
func getLibraryPath() string {
	if path := os.Getenv("GODBC_LIBRARY_PATH"); path != "" {
		return path
	}

	switch runtime.GOOS {
	case "windows":
		return "odbc32.dll"
	case "darwin":
		paths := []string{
			"/opt/homebrew/lib/libodbc.2.dylib", // Apple Silicon Homebrew
			"/usr/local/lib/libodbc.2.dylib",    // Intel Homebrew
			"/opt/homebrew/lib/libodbc.dylib",
			"/usr/local/lib/libodbc.dylib",
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
		return "libodbc.2.dylib"
	default:
		return "libodbc.so.2"
	}
}

// initODBC loads the driver manager and registers the call surface.
// It runs at most once per process; later calls return the cached result.
func initODBC() error {
	initOnce.Do(func() {
		libPath := getLibraryPath()

		odbcLib, initErr = loadODBCLibrary(libPath)
		if initErr != nil {
			initErr = fmt.Errorf("failed to load ODBC library %q: %w (set GODBC_LIBRARY_PATH to override)", libPath, initErr)
			return
		}

		purego.RegisterLibFunc(&sqlAllocHandle, odbcLib, "SQLAllocHandle")
		purego.RegisterLibFunc(&sqlFreeHandle, odbcLib, "SQLFreeHandle")
		purego.RegisterLibFunc(&sqlSetEnvAttr, odbcLib, "SQLSetEnvAttr")

		// ANSI entry points carry an 'A' suffix on Windows only
		if runtime.GOOS == "windows" {
			purego.RegisterLibFunc(&sqlDriverConnect, odbcLib, "SQLDriverConnectA")
			purego.RegisterLibFunc(&sqlGetInfo, odbcLib, "SQLGetInfoA")
			purego.RegisterLibFunc(&sqlExecDirect, odbcLib, "SQLExecDirectA")
			purego.RegisterLibFunc(&sqlDescribeCol, odbcLib, "SQLDescribeColA")
			purego.RegisterLibFunc(&sqlColAttribute, odbcLib, "SQLColAttributeA")
			purego.RegisterLibFunc(&sqlGetDiagRec, odbcLib, "SQLGetDiagRecA")
		} else {
			purego.RegisterLibFunc(&sqlDriverConnect, odbcLib, "SQLDriverConnect")
			purego.RegisterLibFunc(&sqlGetInfo, odbcLib, "SQLGetInfo")
			purego.RegisterLibFunc(&sqlExecDirect, odbcLib, "SQLExecDirect")
			purego.RegisterLibFunc(&sqlDescribeCol, odbcLib, "SQLDescribeCol")
			purego.RegisterLibFunc(&sqlColAttribute, odbcLib, "SQLColAttribute")
			purego.RegisterLibFunc(&sqlGetDiagRec, odbcLib, "SQLGetDiagRec")
		}
		purego.RegisterLibFunc(&sqlDisconnect, odbcLib, "SQLDisconnect")
		purego.RegisterLibFunc(&sqlNumResultCols, odbcLib, "SQLNumResultCols")
		purego.RegisterLibFunc(&sqlFetch, odbcLib, "SQLFetch")
		purego.RegisterLibFunc(&sqlGetData, odbcLib, "SQLGetData")
		purego.RegisterLibFunc(&sqlRowCount, odbcLib, "SQLRowCount")
		purego.RegisterLibFunc(&sqlFreeStmt, odbcLib, "SQLFreeStmt")
		purego.RegisterLibFunc(&sqlSetStmtAttr, odbcLib, "SQLSetStmtAttr")
	})
	return initErr
}

// AllocHandle allocates an ODBC handle
func AllocHandle(handleType SQLSMALLINT, inputHandle SQLHANDLE, outputHandle *SQLHANDLE) SQLRETURN {
	return sqlAllocHandle(handleType, inputHandle, outputHandle)
}

// FreeHandle frees an ODBC handle
func FreeHandle(handleType SQLSMALLINT, handle SQLHANDLE) SQLRETURN {
	return sqlFreeHandle(handleType, handle)
}

// SetEnvAttr sets an environment attribute
func SetEnvAttr(env SQLHENV, attribute SQLINTEGER, value uintptr, stringLength SQLINTEGER) SQLRETURN {
	return sqlSetEnvAttr(env, attribute, value, stringLength)
}

// DriverConnect connects to a data source using a connection string
func DriverConnect(dbc SQLHDBC, hwnd uintptr, inConnStr string, outConnStr []byte, driverCompletion SQLUSMALLINT) (outLen SQLSMALLINT, ret SQLRETURN) {
	inBytes := append([]byte(inConnStr), 0)
	var outLenPtr SQLSMALLINT
	var outPtr *byte
	var outMax SQLSMALLINT
	if len(outConnStr) > 0 {
		outPtr = &outConnStr[0]
		outMax = SQLSMALLINT(len(outConnStr))
	}
	ret = sqlDriverConnect(dbc, hwnd, &inBytes[0], SQLSMALLINT(SQL_NTS), outPtr, outMax, &outLenPtr, driverCompletion)
	return outLenPtr, ret
}

// Disconnect disconnects from a data source
func Disconnect(dbc SQLHDBC) SQLRETURN {
	return sqlDisconnect(dbc)
}

// GetInfo retrieves driver/data source information
func GetInfo(dbc SQLHDBC, infoType SQLUSMALLINT, infoValue []byte) (stringLength SQLSMALLINT, ret SQLRETURN) {
	var strLen SQLSMALLINT
	ret = sqlGetInfo(dbc, infoType, uintptr(0), 0, &strLen)
	if !IsSuccess(ret) {
		return 0, ret
	}
	if len(infoValue) > 0 {
		ret = sqlGetInfo(dbc, infoType, uintptr(unsafe.Pointer(&infoValue[0])), SQLSMALLINT(len(infoValue)), &strLen)
	}
	return strLen, ret
}

// ExecDirect executes an SQL statement directly
func ExecDirect(stmt SQLHSTMT, query string) SQLRETURN {
	queryBytes := append([]byte(query), 0)
	return sqlExecDirect(stmt, &queryBytes[0], SQLINTEGER(SQL_NTS))
}

// NumResultCols returns the number of columns in a result set
func NumResultCols(stmt SQLHSTMT, columnCount *SQLSMALLINT) SQLRETURN {
	return sqlNumResultCols(stmt, columnCount)
}

// DescribeCol describes a column in a result set
func DescribeCol(stmt SQLHSTMT, colNum SQLUSMALLINT, colName []byte) (nameLen SQLSMALLINT, dataType SQLSMALLINT, colSize SQLULEN, decDigits SQLSMALLINT, nullable SQLSMALLINT, ret SQLRETURN) {
	ret = sqlDescribeCol(stmt, colNum, &colName[0], SQLSMALLINT(len(colName)), &nameLen, &dataType, &colSize, &decDigits, &nullable)
	return
}

// ColAttribute returns a column attribute
func ColAttribute(stmt SQLHSTMT, colNum SQLUSMALLINT, fieldId SQLUSMALLINT, charAttr []byte) (strLen SQLSMALLINT, numAttr SQLLEN, ret SQLRETURN) {
	var charPtr uintptr
	var bufLen SQLSMALLINT
	if len(charAttr) > 0 {
		charPtr = uintptr(unsafe.Pointer(&charAttr[0]))
		bufLen = SQLSMALLINT(len(charAttr))
	}
	ret = sqlColAttribute(stmt, colNum, fieldId, charPtr, bufLen, &strLen, &numAttr)
	return
}

// Fetch fetches the next row from the result set
func Fetch(stmt SQLHSTMT) SQLRETURN {
	return sqlFetch(stmt)
}

// GetData retrieves data for a single column
func GetData(stmt SQLHSTMT, colNum SQLUSMALLINT, targetType SQLSMALLINT, targetValue unsafe.Pointer, bufferLen SQLLEN, strLenOrInd *SQLLEN) SQLRETURN {
	return sqlGetData(stmt, colNum, targetType, uintptr(targetValue), bufferLen, strLenOrInd)
}

// RowCount returns the number of rows affected by an UPDATE, INSERT, or DELETE
func RowCount(stmt SQLHSTMT, rowCount *SQLLEN) SQLRETURN {
	return sqlRowCount(stmt, rowCount)
}

// GetDiagRec retrieves diagnostic records
func GetDiagRec(handleType SQLSMALLINT, handle SQLHANDLE, recNum SQLSMALLINT, sqlState []byte, message []byte) (nativeError SQLINTEGER, msgLen SQLSMALLINT, ret SQLRETURN) {
	ret = sqlGetDiagRec(handleType, handle, recNum, &sqlState[0], &nativeError, &message[0], SQLSMALLINT(len(message)), &msgLen)
	return
}

// FreeStmt frees resources associated with a statement
func FreeStmt(stmt SQLHSTMT, option SQLUSMALLINT) SQLRETURN {
	return sqlFreeStmt(stmt, option)
}

// SetStmtAttr sets a statement attribute
func SetStmtAttr(stmt SQLHSTMT, attribute SQLINTEGER, value uintptr, stringLength SQLINTEGER) SQLRETURN {
	return sqlSetStmtAttr(stmt, attribute, value, stringLength)
}
