package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"go.uber.org/zap"
)

// Process drives an external program over stdin/stdout. Each Act writes one
// turn and waits for one line; stderr is forwarded to the logger.
type Process struct {
	name  string
	cmd   *exec.Cmd
	stdin io.WriteCloser
	lines chan string
	log   *zap.Logger

	stderrDone sync.WaitGroup
	closeOnce  sync.Once
}

// StartProcess launches argv. The program lives until Close or until ctx is
// cancelled.
func StartProcess(ctx context.Context, name string, argv []string, log *zap.Logger) (*Process, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: empty command for %s", ErrProtocol, name)
	}
	if log == nil {
		log = zap.NewNop()
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}

	p := &Process{
		name:  name,
		cmd:   cmd,
		stdin: stdin,
		lines: make(chan string, 1),
		log:   log.With(zap.String("agent", name), zap.Int("pid", cmd.Process.Pid)),
	}
	go p.readLines(stdout)
	p.stderrDone.Add(1)
	go p.drainStderr(stderr)
	p.log.Debug("agent started", zap.Strings("argv", argv))
	return p, nil
}

func (p *Process) readLines(r io.Reader) {
	defer close(p.lines)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		p.lines <- sc.Text()
	}
}

func (p *Process) drainStderr(r io.Reader) {
	defer p.stderrDone.Done()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		p.log.Debug("agent stderr", zap.String("line", sc.Text()))
	}
}

func (p *Process) Name() string { return p.name }

func (p *Process) Act(ctx context.Context, t Turn) (string, error) {
	if err := WriteTurn(p.stdin, t); err != nil {
		return "", fmt.Errorf("%w: write turn: %v", ErrExited, err)
	}
	select {
	case line, ok := <-p.lines:
		if !ok {
			return "", ErrExited
		}
		return CleanReply(line), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close kills the program and reaps it. Safe to call more than once.
func (p *Process) Close() error {
	p.closeOnce.Do(func() {
		_ = p.stdin.Close()
		if p.cmd.Process != nil {
			_ = p.cmd.Process.Kill()
		}
		// Both pipes must be read to EOF before Wait closes them.
		for range p.lines {
		}
		p.stderrDone.Wait()
		err := p.cmd.Wait()
		p.log.Debug("agent stopped", zap.Error(err))
	})
	return nil
}
