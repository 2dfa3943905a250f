package device

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner запускает внешний исполняемый файл моста
type Runner interface {
	// LookPath проверяет, что исполняемый файл существует
	LookPath(name string) (string, error)
	// Run выполняет команду и возвращает объединенный stdout/stderr
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner реализация Runner через os/exec
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if msg == "" {
			return output, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
		}
		return output, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
	}
	return output, nil
}
