package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kbukum/securekit/component"
	"github.com/kbukum/securekit/config"
	"github.com/kbukum/securekit/logger"
	"github.com/kbukum/securekit/observability"
	"github.com/kbukum/securekit/secure"
	"github.com/kbukum/securekit/version"
)

// annotationSecure marks commands that need an initialized secure context.
const annotationSecure = "securekit/secure"

var needsSecure = map[string]string{annotationSecure: "true"}

// app carries the state shared by all commands of one invocation.
type app struct {
	configFile    string
	envFile       string
	noColor       bool
	passwordStdin bool

	cfg      appConfig
	log      *logger.Logger
	registry *component.Registry
	secure   *secure.Context

	// Terminal seams, replaced in tests.
	stdinFd      func() int
	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
}

func newApp() *app {
	return &app{
		stdinFd:      func() int { return int(os.Stdin.Fd()) },
		isTerminal:   term.IsTerminal,
		readPassword: term.ReadPassword,
	}
}

// init resolves configuration and starts the registered components.
func (a *app) init(ctx context.Context) error {
	var opts []config.LoaderOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if a.envFile != "" {
		opts = append(opts, config.WithEnvFile(a.envFile))
	}
	if err := config.Load(serviceName, &a.cfg, opts...); err != nil {
		return err
	}

	a.log = logger.New(&a.cfg.Logging, a.cfg.Name)
	logger.SetGlobalLogger(a.log)
	a.registry = component.NewRegistry(a.log)

	telemetry := observability.NewTelemetry(a.cfg.Telemetry, a.cfg.Name, version.Get().Version, a.cfg.Environment)
	metrics, err := telemetry.Metrics()
	if err != nil {
		return err
	}

	sc, err := secure.New(a.cfg.Config, secure.WithLogger(a.log), secure.WithMetrics(metrics))
	if err != nil {
		return err
	}
	a.secure = sc

	for _, c := range []component.Component{telemetry, sc} {
		if err := a.registry.Register(c); err != nil {
			return err
		}
	}
	return a.registry.StartAll(ctx)
}

// shutdown stops whatever init started.
func (a *app) shutdown() error {
	if a.registry == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), component.DefaultStopTimeout)
	defer cancel()
	return a.registry.StopAll(ctx)
}

// readSecret reads a password from the first line of stdin when
// --password-stdin is set, otherwise from the terminal without echo.
func (a *app) readSecret(cmd *cobra.Command, prompt string) (string, error) {
	if a.passwordStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return "", fmt.Errorf("reading password from stdin: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fd := a.stdinFd()
	if !a.isTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal; use --password-stdin")
	}
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	pw, err := a.readPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

// readInput returns args[0] when given, otherwise all of stdin without the
// trailing newline.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("✓")+" "+fmt.Sprintf(format, args...))
}

func failure(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("✗")+" "+fmt.Sprintf(format, args...))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
