// Command sha2sum prints or checks SHA-256 and SHA-512 digests, or HMAC tags when given a key.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/codahale/sha2"
	"github.com/codahale/sha2/internal/logging"
	"github.com/codahale/sha2/internal/sum"
	"go.uber.org/zap"
)

// errUsage marks errors caused by invalid command-line input.
var errUsage = errors.New("usage error")

// keyEnv names the variable holding the HMAC key when neither --key nor --key-file is given.
const keyEnv = "SHA2SUM_KEY"

// CLI is the sha2sum command line.
type CLI struct {
	Algorithm string   `short:"a" default:"sha256" env:"SHA2SUM_ALGORITHM" help:"Digest algorithm: sha256 or sha512."`
	Key       string   `short:"k" help:"Compute HMAC tags keyed with this text. Defaults to $SHA2SUM_KEY."`
	KeyFile   string   `type:"existingfile" help:"Compute HMAC tags keyed with the raw contents of this file."`
	Check     bool     `short:"c" help:"Read checksums from the files and check them."`
	LogLevel  string   `default:"warn" env:"SHA2SUM_LOG_LEVEL" help:"Log level."`
	LogFormat string   `default:"text" enum:"text,json" env:"SHA2SUM_LOG_FORMAT" help:"Log format: text or json."`
	Files     []string `arg:"" optional:"" name:"file" help:"Inputs to read. With no file, or when file is -, read standard input."`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run parses args, executes the command, and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("sha2sum"),
		kong.Description("Print or check SHA-2 digests and HMAC tags."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}

	if _, err := parser.Parse(args); err != nil {
		_, _ = fmt.Fprintf(stderr, "sha2sum: %v\n", err)
		return 2
	}

	if err := cli.run(stdin, stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "sha2sum: %v\n", err)
		return exitCode(err)
	}
	return 0
}

func (c *CLI) run(stdin io.Reader, stdout io.Writer) error {
	v, err := sha2.ParseVariant(c.Algorithm)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	key, err := c.key()
	if err != nil {
		return err
	}

	logger, err := logging.New(c.LogLevel, c.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("starting", zap.Stringer("variant", v), zap.Bool("keyed", key != nil), zap.Bool("check", c.Check))

	open := func(name string) (io.ReadCloser, error) {
		if name == sum.Stdin {
			return io.NopCloser(stdin), nil
		}
		return os.Open(name)
	}

	s, err := sum.New(v, key, open, logger)
	if err != nil {
		return err
	}

	if !c.Check {
		return s.Print(stdout, c.Files)
	}

	lists := c.Files
	if len(lists) == 0 {
		lists = []string{sum.Stdin}
	}
	var errs []error
	for _, name := range lists {
		f, err := open(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		err = s.Check(stdout, f)
		_ = f.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// key returns the HMAC key, or nil for plain digests. Flags take precedence over the environment.
func (c *CLI) key() ([]byte, error) {
	switch {
	case c.Key != "" && c.KeyFile != "":
		return nil, fmt.Errorf("%w: --key and --key-file can't be used together", errUsage)
	case c.KeyFile != "":
		return os.ReadFile(c.KeyFile)
	case c.Key != "":
		return []byte(c.Key), nil
	}

	if key := os.Getenv(keyEnv); key != "" {
		return []byte(key), nil
	}
	return nil, nil
}

// exitCode maps an error to a process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		return 1
	}
}
