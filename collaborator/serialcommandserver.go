package collaborator

import (
	"context"
	"time"

	"github.com/daedaluz/goserial"
	"github.com/sirupsen/logrus"

	"github.com/tannerhollis/legraph/engine"
)

// serialReadTimeout bounds a single serial read, per spec.md §5 ("10 ms
// for serial reads").
const serialReadTimeout = 10 * time.Millisecond

// SerialCommandServer serves the ASCII command protocol over a single
// serial line — there is exactly one "connection", the port itself,
// rather than TCPCommandServer's accept loop.
type SerialCommandServer struct {
	device string
	eng    *engine.Engine
	log    *logrus.Entry

	port *serial.Port
}

// NewSerialCommandServer constructs a server bound to device (e.g.
// "/dev/ttyUSB0"), opened once Serve is called.
func NewSerialCommandServer(device string, eng *engine.Engine) *SerialCommandServer {
	return &SerialCommandServer{device: device, eng: eng, log: logrus.WithField("transport", "serial")}
}

// Serve implements CommandServer: it opens the serial device and runs
// the request/response loop until ctx is cancelled or the port errors.
func (s *SerialCommandServer) Serve(ctx context.Context) error {
	opts := serial.NewOptions().SetReadTimeout(serialReadTimeout)
	p, err := serial.Open(s.device, opts)
	if err != nil {
		return err
	}
	s.port = p
	s.log.WithField("device", s.device).Info("command server listening")

	serveConn(ctx, s.device, p, s.eng, s.log)
	return nil
}

// Close implements CommandServer.
func (s *SerialCommandServer) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}
