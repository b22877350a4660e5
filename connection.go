package odbc

import (
	"fmt"
	"sync"
)

// Connection is a connection to an ODBC data source. It owns a connection
// handle allocated under the process-wide environment and hands out Queries
// whose statement handles are allocated under it.
//
// Disconnect and Close release the statements of Queries that are still
// open; those Queries report ErrNotReady afterwards.
type Connection struct {
	mu        sync.Mutex
	dbc       *Handle[ConnKind]
	connected bool
	queries   map[*Query]struct{}
	opts      options
}

// NewConnection allocates an unconnected Connection.
func NewConnection(opts ...Option) (*Connection, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	env, err := environment()
	if err != nil {
		return nil, err
	}
	dbc, err := NewChildHandle[ConnKind](env)
	if err != nil {
		return nil, err
	}
	return &Connection{dbc: dbc, queries: map[*Query]struct{}{}, opts: o}, nil
}

// Open allocates a Connection and connects it using connStr.
//
//	conn, err := odbc.Open("DSN=warehouse;UID=report;PWD=secret")
func Open(connStr string, opts ...Option) (*Connection, error) {
	c, err := NewConnection(opts...)
	if err != nil {
		return nil, err
	}
	if _, err := c.Connect(connStr, c.opts.prompt); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Connect connects to the data source described by connStr. With prompt set
// the driver may ask the user for missing details. It reports whether the
// Connection is now connected; a driver failure returns false and an error
// carrying the driver diagnostics.
func (c *Connection) Connect(connStr string, prompt bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return true, ErrAlreadyConnected
	}
	if c.dbc.IsNull() {
		return false, fmt.Errorf("%w: connection is closed", ErrNotConnected)
	}

	completion := SQL_DRIVER_NOPROMPT
	if prompt {
		completion = SQL_DRIVER_PROMPT
	}

	c.opts.logger.Printf("connecting (prompt=%v)", prompt)
	outConnStr := make([]byte, 1024)
	_, ret := DriverConnect(SQLHDBC(c.dbc.Native()), 0, connStr, outConnStr, completion)
	if !IsSuccess(ret) {
		return false, c.dbc.opError(ErrConnect, "failed to connect")
	}
	c.connected = true
	c.opts.logger.Printf("connected")
	return true, nil
}

// Connected reports whether the Connection is connected.
func (c *Connection) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Disconnect closes the connection to the data source. It is a no-op when
// not connected.
func (c *Connection) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnect()
}

func (c *Connection) disconnect() error {
	if !c.connected {
		return nil
	}
	c.connected = false
	c.releaseQueries()
	if ret := Disconnect(SQLHDBC(c.dbc.Native())); !IsSuccess(ret) {
		return c.dbc.opError(ErrConnect, "failed to disconnect")
	}
	c.opts.logger.Printf("disconnected")
	return nil
}

// releaseQueries frees the statement handles of open Queries before the
// driver drops them with the session.
func (c *Connection) releaseQueries() {
	if len(c.queries) > 0 {
		c.opts.logger.Printf("releasing %d open queries", len(c.queries))
	}
	for q := range c.queries {
		if err := q.release(); err != nil {
			c.opts.logger.Printf("release query: %v", err)
		}
		delete(c.queries, q)
	}
}

func (c *Connection) forget(q *Query) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.queries, q)
}

// Close disconnects and frees the connection handle. Calling Close more than
// once is safe.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.disconnect()
	if ferr := c.dbc.Free(); err == nil {
		err = ferr
	}
	return err
}

// MakeQuery creates a Query on this Connection.
func (c *Connection) MakeQuery() (*Query, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil, ErrNotConnected
	}
	q, err := newQuery(c.dbc, c.opts)
	if err != nil {
		return nil, err
	}
	q.conn = c
	c.queries[q] = struct{}{}
	return q, nil
}

// DBMSName returns the name of the database product behind the driver.
func (c *Connection) DBMSName() (string, error) {
	return c.info(SQL_DBMS_NAME)
}

// DriverName returns the file name of the driver library.
func (c *Connection) DriverName() (string, error) {
	return c.info(SQL_DRIVER_NAME)
}

func (c *Connection) info(infoType SQLUSMALLINT) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return "", ErrNotConnected
	}
	buf := make([]byte, 256)
	n, ret := GetInfo(SQLHDBC(c.dbc.Native()), infoType, buf)
	if !IsSuccess(ret) {
		return "", c.dbc.opError(ErrStatement, "unable to get driver information")
	}
	if int(n) >= len(buf) {
		n = SQLSMALLINT(len(buf) - 1)
	}
	if n < 0 {
		n = 0
	}
	return string(buf[:n]), nil
}
