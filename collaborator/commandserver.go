package collaborator

import (
	"bufio"
	"context"
	"fmt"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/tannerhollis/legraph/engine"
)

// CommandServer is the external command/telemetry transport collaborator
// of spec.md §1/§6: it accepts connections and serves the ASCII line
// protocol against an attached engine, without the engine core ever
// knowing which transport carried the request.
type CommandServer interface {
	Serve(ctx context.Context) error
	Close() error
}

// writeFrame renders a Frame as the wire line the client expects:
// "<category> [BAD] <payload>\n".
func writeFrame(w *bufio.Writer, f Frame) error {
	tag := f.Category.String()
	if f.Bad {
		tag += " BAD"
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", tag, f.Payload); err != nil {
		return err
	}
	return w.Flush()
}

// serveConn runs the request/response loop for one already-open
// connection, dispatching each line through a session bound to eng.
// A line starting with escapeByte sets the flag the session's
// interrupted callback reports; the flag is cleared after the next
// request is handled. No line is read while a request is being handled,
// so an Escape sent during a TARGET is read only after that TARGET has
// returned, and it applies to the request that follows it.
func serveConn(ctx context.Context, id string, rw readWriteCloser, eng *engine.Engine, log *logrus.Entry) {
	defer rw.Close()
	reader := bufio.NewReader(rw)
	writer := bufio.NewWriter(rw)

	var escapeSeen bool
	sess := newSession(id, eng, func() bool { return escapeSeen })

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if line[0] == escapeByte {
				escapeSeen = true
				continue
			}
			for _, f := range sess.handleLine(trimEOL(line)) {
				if werr := writeFrame(writer, f); werr != nil {
					log.WithError(werr).Warn("command server: write failed")
					return
				}
			}
			escapeSeen = false
		}
		if err != nil {
			return
		}
	}
}

func trimEOL(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// readWriteCloser is the minimal transport contract serveConn needs;
// both net.Conn and *serial.Port satisfy it.
type readWriteCloser interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// TCPCommandServer serves the ASCII command protocol over a TCP
// listener, one goroutine per client connection.
type TCPCommandServer struct {
	addr string
	eng  *engine.Engine
	log  *logrus.Entry

	ln net.Listener
}

// NewTCPCommandServer constructs a server that will listen on addr
// (e.g. ":8765") once Serve is called.
func NewTCPCommandServer(addr string, eng *engine.Engine) *TCPCommandServer {
	return &TCPCommandServer{addr: addr, eng: eng, log: logrus.WithField("transport", "tcp")}
}

// Serve implements CommandServer: it blocks accepting connections until
// ctx is cancelled or the listener errors.
func (s *TCPCommandServer) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.log.WithField("addr", s.addr).Info("command server listening")

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		go serveConn(ctx, conn.RemoteAddr().String(), conn, s.eng, s.log)
	}
}

// Close implements CommandServer.
func (s *TCPCommandServer) Close() error {
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}
