package ssh

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	gossh "golang.org/x/crypto/ssh"
)

const (
	shellReadChunk = 1024
	stopWait       = time.Second
	pollInterval   = 10 * time.Millisecond
)

// State describes the shell channel lifecycle. Stopped doubles as the
// initial state.
type State int32

const (
	Stopped State = iota
	Starting
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return "stopped"
	}
}

// Subscriber receives shell events. Output is called with every filtered
// chunk, Stopped exactly once when the channel shuts down, Err with reader
// errors and recovered subscriber failures. Nil callbacks are skipped.
type Subscriber struct {
	Output  func(chunk string)
	Stopped func()
	Err     func(err error)
}

// Shell is the interactive channel: a duplex byte stream with a single
// background reader that filters control sequences, feeds the shared
// history and fans chunks out to subscribers. A Shell is single-use; once
// stopped it stays stopped.
type Shell struct {
	ch      io.ReadWriteCloser
	history *History

	state   atomic.Int32
	started atomic.Bool

	mu     sync.Mutex
	subs   map[int]Subscriber
	nextID int
	buf    strings.Builder

	stop       chan struct{}
	done       chan struct{}
	signalOnce sync.Once
	finishOnce sync.Once
}

// NewShell wraps an already-open duplex channel. The concrete channel is an
// SSH pty session; tests substitute in-memory pipes.
func NewShell(ch io.ReadWriteCloser, hist *History) *Shell {
	return &Shell{
		ch:      ch,
		history: hist,
		subs:    make(map[int]Subscriber),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// State reports the current lifecycle state.
func (s *Shell) State() State {
	return State(s.state.Load())
}

// Running reports whether the background reader is active.
func (s *Shell) Running() bool {
	return s.State() == Running
}

// Start launches the background reader. Starting a running shell is a
// no-op; exactly one reader is ever active.
func (s *Shell) Start() error {
	if s.State() == Running {
		return nil
	}
	if !s.started.CompareAndSwap(false, true) {
		return ErrShellNotRunning
	}
	s.state.Store(int32(Starting))
	s.state.Store(int32(Running))
	go s.readLoop()
	return nil
}

// Send writes one command line to the remote shell and records it in the
// history.
func (s *Shell) Send(text string) error {
	if s.State() != Running {
		return ErrShellNotRunning
	}
	if _, err := io.WriteString(s.ch, text+"\n"); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	s.history.Append(text)
	return nil
}

// Stop signals the reader, waits a bounded interval for it to exit and
// proceeds regardless. The channel close is best-effort; teardown never
// fails. The stop notification fires exactly once, shared with the path
// where the reader terminates on its own.
func (s *Shell) Stop() {
	if !s.started.Load() {
		return
	}
	if s.State() != Stopped {
		s.state.Store(int32(Stopping))
	}
	// Closing the channel is what unblocks a pending read; do it together
	// with the stop signal so the reader observes an orderly shutdown.
	s.signalOnce.Do(func() {
		close(s.stop)
		_ = s.ch.Close()
	})
	select {
	case <-s.done:
	case <-time.After(stopWait):
		// Reader did not exit in time; the closed channel will error out any
		// read still in flight, so abandon it rather than wait forever.
	}
	s.finish()
}

// Subscribe registers sub and returns an opaque handle for Unsubscribe.
// Registration and removal are safe at any time, including from inside a
// callback during active delivery.
func (s *Shell) Subscribe(sub Subscriber) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.subs[s.nextID] = sub
	return s.nextID
}

// Unsubscribe removes the subscription identified by id.
func (s *Shell) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

// Buffer returns the accumulated filtered output.
func (s *Shell) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// ClearBuffer discards the accumulated output.
func (s *Shell) ClearBuffer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Reset()
}

func (s *Shell) readLoop() {
	defer close(s.done)
	defer s.finish()
	buf := make([]byte, shellReadChunk)
	for {
		select {
		case <-s.stop:
			return
		default:
		}
		n, err := s.ch.Read(buf)
		if n > 0 {
			chunk := strings.ToValidUTF8(string(buf[:n]), string(utf8.RuneError))
			filtered := StripEscapes(chunk)
			if filtered != "" {
				s.record(filtered)
				s.dispatch(filtered)
			}
		}
		if err != nil {
			if isTimeout(err) {
				// A receive timeout is normal idle, not an error.
				time.Sleep(pollInterval)
				continue
			}
			select {
			case <-s.stop:
				// Channel closed under us during teardown; expected.
			default:
				s.reportErr(fmt.Errorf("shell read: %w", err))
			}
			return
		}
	}
}

// record appends the filtered chunk to the rolling buffer and each of its
// non-blank lines to the history.
func (s *Shell) record(chunk string) {
	s.mu.Lock()
	s.buf.WriteString(chunk)
	s.mu.Unlock()
	for _, line := range strings.Split(chunk, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			s.history.Append(t)
		}
	}
}

func (s *Shell) dispatch(chunk string) {
	for _, sub := range s.subscribers() {
		s.deliver(sub, chunk)
	}
}

// deliver isolates one subscriber: a panic is recovered and reported, never
// propagated into the reader loop.
func (s *Shell) deliver(sub Subscriber, chunk string) {
	defer func() {
		if r := recover(); r != nil {
			s.reportErr(fmt.Errorf("subscriber failure: %v", r))
		}
	}()
	if sub.Output != nil {
		sub.Output(chunk)
	}
}

func (s *Shell) reportErr(err error) {
	for _, sub := range s.subscribers() {
		if sub.Err != nil {
			sub.Err(err)
		}
	}
}

// finish drives the transition to Stopped and the stop notification exactly
// once, whether the reader exited on request or on its own.
func (s *Shell) finish() {
	s.finishOnce.Do(func() {
		s.state.Store(int32(Stopped))
		for _, sub := range s.subscribers() {
			if sub.Stopped != nil {
				sub.Stopped()
			}
		}
	})
}

func (s *Shell) subscribers() []Subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		out = append(out, sub)
	}
	return out
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// sshChannel adapts a pty session to the shell's duplex channel.
type sshChannel struct {
	sess   *gossh.Session
	stdin  io.WriteCloser
	stdout io.Reader
}

func (c *sshChannel) Read(p []byte) (int, error)  { return c.stdout.Read(p) }
func (c *sshChannel) Write(p []byte) (int, error) { return c.stdin.Write(p) }

func (c *sshChannel) Close() error {
	_ = c.stdin.Close()
	return c.sess.Close()
}

// StartShell opens a pty channel on the connection and returns a running
// Shell whose output feeds hist.
func (c *Client) StartShell(hist *History) (*Shell, error) {
	if c.conn == nil {
		return nil, ErrNotConnected
	}
	sess, err := c.conn.NewSession()
	if err != nil {
		return nil, fmt.Errorf("open shell channel: %w", err)
	}
	modes := gossh.TerminalModes{
		gossh.ECHO:          1,
		gossh.TTY_OP_ISPEED: 14400,
		gossh.TTY_OP_OSPEED: 14400,
	}
	if err := sess.RequestPty("xterm", 40, 120, modes); err != nil {
		_ = sess.Close()
		return nil, fmt.Errorf("request pty: %w", err)
	}
	stdin, err := sess.StdinPipe()
	if err != nil {
		_ = sess.Close()
		return nil, fmt.Errorf("open stdin: %w", err)
	}
	stdout, err := sess.StdoutPipe()
	if err != nil {
		_ = sess.Close()
		return nil, fmt.Errorf("open stdout: %w", err)
	}
	if err := sess.Shell(); err != nil {
		_ = sess.Close()
		return nil, fmt.Errorf("start shell: %w", err)
	}

	sh := NewShell(&sshChannel{sess: sess, stdin: stdin, stdout: stdout}, hist)
	if err := sh.Start(); err != nil {
		_ = sess.Close()
		return nil, err
	}
	return sh, nil
}
