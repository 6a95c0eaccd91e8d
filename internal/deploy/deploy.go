// Package deploy implements the containerized and local deploy sequences
// behind the kanairy-deploy CLI.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"kanairy_backend/internal/deploy/envfile"
	"kanairy_backend/internal/deploy/execx"
)

// Sentinel errors for the preflight failures.
var (
	ErrMissingEnv        = errors.New("deploy: .env file is missing")
	ErrDockerUnavailable = errors.New("deploy: docker daemon is not reachable")
)

const (
	binDir      = "bin"
	serverBin   = "kanairy-server"
	serverPkg   = "./cmd/server"
	defaultPort = "8000"
)

// ExitError carries the exit code of a failed tool invocation so the CLI
// can propagate it unchanged.
type ExitError struct {
	Tool string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("deploy: %s exited with code %d", e.Tool, e.Code)
}

// ExitCode maps a deploy error to the CLI process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) && ee.Code != 0 {
		return ee.Code
	}
	return 1
}

// Deployer runs the deploy sequences against a project directory.
type Deployer struct {
	runner execx.Runner
	dir    string
	out    io.Writer
}

// New creates a Deployer. dir is the project root holding the env file,
// compose file and sources.
func New(runner execx.Runner, dir string, out io.Writer) *Deployer {
	return &Deployer{runner: runner, dir: dir, out: out}
}

// Docker builds and starts the containerized stack. The env file must
// already exist and the docker daemon must be reachable; nothing is built
// or started otherwise.
func (d *Deployer) Docker(ctx context.Context) error {
	if !envfile.Exists(d.dir) {
		fmt.Fprintln(d.out, "No .env file found. Create one with the following keys:")
		for _, key := range envfile.RequiredKeys {
			fmt.Fprintf(d.out, "  %s\n", key)
		}
		return ErrMissingEnv
	}

	if res := d.runner.Run(ctx, "docker", "info"); res.Code != 0 {
		fmt.Fprintln(d.out, "Docker is not running. Start the docker daemon and retry.")
		return ErrDockerUnavailable
	}

	fmt.Fprintln(d.out, "Building containers...")
	if res := d.runner.Run(ctx, "docker", "compose", "build"); res.Code != 0 {
		return &ExitError{Tool: "docker compose build", Code: res.Code}
	}

	fmt.Fprintln(d.out, "Starting services...")
	if res := d.runner.Run(ctx, "docker", "compose", "up", "-d"); res.Code != 0 {
		return &ExitError{Tool: "docker compose up", Code: res.Code}
	}

	port := d.port()
	fmt.Fprintln(d.out, "KanAIRY is up.")
	fmt.Fprintf(d.out, "  Web:    http://localhost:%s/\n", port)
	fmt.Fprintf(d.out, "  Health: http://localhost:%s/api/health\n", port)
	fmt.Fprintf(d.out, "  Status: http://localhost:%s/api/status\n", port)
	fmt.Fprintln(d.out, "Logs:  docker compose logs -f")
	fmt.Fprintln(d.out, "Stop:  docker compose down")
	return nil
}

// Local builds the server binary and runs it in the foreground. A missing
// env file is synthesized with placeholder values first.
func (d *Deployer) Local(ctx context.Context) error {
	if version, res := d.runner.Capture(ctx, "go", "version"); res.Code == 0 {
		fmt.Fprintf(d.out, "Using %s\n", version)
	}

	if err := d.ensureBinDir(); err != nil {
		return err
	}

	fmt.Fprintln(d.out, "Downloading dependencies...")
	if res := d.runner.Run(ctx, "go", "mod", "download"); res.Code != 0 {
		return &ExitError{Tool: "go mod download", Code: res.Code}
	}

	fmt.Fprintln(d.out, "Building server...")
	target := filepath.Join(binDir, serverBin)
	if res := d.runner.Run(ctx, "go", "build", "-o", target, serverPkg); res.Code != 0 {
		return &ExitError{Tool: "go build", Code: res.Code}
	}

	if !envfile.Exists(d.dir) {
		fmt.Fprintln(d.out, "No .env file found, creating one with placeholder values.")
		fmt.Fprintln(d.out, "Replace the your-* values to connect to hosted services.")
		if err := envfile.Synthesize(d.dir); err != nil {
			return err
		}
	}

	fmt.Fprintf(d.out, "Starting KanAIRY on http://localhost:%s\n", d.port())
	if res := d.runner.Run(ctx, "./"+target); res.Code != 0 {
		return &ExitError{Tool: serverBin, Code: res.Code}
	}
	return nil
}

// ensureBinDir creates the build directory on first run only.
func (d *Deployer) ensureBinDir() error {
	path := filepath.Join(d.dir, binDir)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", binDir, err)
	}
	return nil
}

// port reads PORT from the env file, defaulting when absent or unreadable.
func (d *Deployer) port() string {
	env, err := godotenv.Read(filepath.Join(d.dir, envfile.Name))
	if err != nil {
		return defaultPort
	}
	if p, ok := env["PORT"]; ok && p != "" {
		return p
	}
	return defaultPort
}
