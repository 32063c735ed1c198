// Package transport delivers encoded byte streams to the printer over a
// serial channel.
package transport

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
	"go.uber.org/zap"
)

// DefaultWriteTimeout bounds the blocking write of one print operation.
const DefaultWriteTimeout = 10 * time.Second

// closeGrace is how long a timed-out send waits for the closed port to
// unblock its writer, to report the partial byte count.
const closeGrace = time.Second

// OpenError reports a port that does not exist or is held by another
// process. The port name is the one that was attempted.
type OpenError struct {
	Port string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open printer port %s: %v", e.Port, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// WriteError reports a timed-out or partial write. Written carries the
// byte count that made it out before the failure.
type WriteError struct {
	Port    string
	Written int
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write to %s failed after %d bytes: %v", e.Port, e.Written, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Serial writes byte streams to serial printers. One open channel per
// send; concurrent sends to the same port surface the OS's exclusive-open
// failure as an OpenError instead of queuing.
type Serial struct {
	timeout time.Duration
	log     *zap.Logger
}

// NewSerial builds a transport with the given write timeout; zero selects
// DefaultWriteTimeout.
func NewSerial(timeout time.Duration, log *zap.Logger) *Serial {
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Serial{timeout: timeout, log: log}
}

// serialPort is the slice of the serial driver the delivery loop needs.
type serialPort interface {
	io.WriteCloser
	Flush() error
}

// Send opens the port exclusively, writes the whole stream, flushes and
// closes. It either fully completes and returns an acknowledgment naming
// the port, or reports a typed failure; nothing is retried here.
func (s *Serial) Send(data []byte, portName string, baud int) (string, error) {
	port, err := serial.OpenPort(&serial.Config{Name: portName, Baud: baud})
	if err != nil {
		return "", &OpenError{Port: portName, Err: err}
	}

	s.log.Debug("serial port opened",
		zap.String("port", portName),
		zap.Int("baud", baud),
		zap.Int("bytes", len(data)),
	)

	return s.deliver(port, data, portName)
}

func (s *Serial) deliver(port serialPort, data []byte, portName string) (string, error) {
	defer port.Close()

	type writeResult struct {
		n   int
		err error
	}
	done := make(chan writeResult, 1)
	go func() {
		n, err := port.Write(data)
		done <- writeResult{n, err}
	}()

	var written int
	select {
	case res := <-done:
		written = res.n
		if res.err != nil {
			return "", &WriteError{Port: portName, Written: written, Err: res.err}
		}
		if written == 0 && len(data) > 0 {
			return "", &WriteError{Port: portName, Written: 0, Err: errors.New("no bytes written")}
		}
		if written < len(data) {
			return "", &WriteError{
				Port:    portName,
				Written: written,
				Err:     fmt.Errorf("short write: %d of %d bytes", written, len(data)),
			}
		}
	case <-time.After(s.timeout):
		// Closing the port unblocks the writer goroutine; pick up its
		// byte count if it surfaces within the grace period.
		port.Close()
		select {
		case res := <-done:
			written = res.n
		case <-time.After(closeGrace):
		}
		return "", &WriteError{Port: portName, Written: written, Err: errors.New("write timed out")}
	}

	if err := port.Flush(); err != nil {
		return "", &WriteError{Port: portName, Written: written, Err: err}
	}

	s.log.Info("receipt sent",
		zap.String("port", portName),
		zap.Int("bytes", written),
	)

	return fmt.Sprintf("✅ Receipt printed on %s", portName), nil
}
