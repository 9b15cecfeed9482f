package check

import (
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// Binary is a resolved external executable that checks invoke per file.
type Binary struct {
	path string
}

// FindBinary resolves program through PATH (or verifies an explicit path).
func FindBinary(program string) (Binary, error) {
	path, err := exec.LookPath(program)
	if err != nil {
		return Binary{}, err
	}
	return Binary{path: path}, nil
}

// Path returns the resolved executable path.
func (b Binary) Path() string { return b.path }

// Exec runs the binary with args, feeding stdin when non-empty, and
// classifies success purely by the exit code. Stdout and stderr are captured
// verbatim. A launch failure (missing binary, exec error) is returned as a
// failing Result with the error detail on stderr, indistinguishable at the
// report layer from an ordinary diagnostic failure.
func (b Binary) Exec(stdin string, args ...string) Result {
	cmd := exec.Command(b.path, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug().Str("bin", b.path).Strs("args", args).Msg("running tool")

	err := cmd.Run()
	result := Result{
		Passed: err == nil,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		if _, isExit := err.(*exec.ExitError); !isExit {
			// The process never ran; surface the launch failure where a
			// diagnostic would normally appear.
			result.Stderr = strings.TrimSpace(result.Stderr + "\n" + err.Error())
		}
	}
	return result
}
