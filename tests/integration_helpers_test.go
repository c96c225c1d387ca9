package tests

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type integrationResult struct {
	standardOutput string
	standardError  string
	runError       error
}

func repositoryRoot(testInstance *testing.T) string {
	testInstance.Helper()
	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	return filepath.Dir(currentWorkingDirectory)
}

func runIntegrationCommand(testInstance *testing.T, environment []string, timeout time.Duration, arguments []string) integrationResult {
	testInstance.Helper()

	executionContext, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	command := exec.CommandContext(executionContext, "go", append([]string{"run", "."}, arguments...)...)
	command.Dir = repositoryRoot(testInstance)
	command.Env = append(append([]string{}, os.Environ()...), environment...)

	var standardOutput bytes.Buffer
	var standardError bytes.Buffer
	command.Stdout = &standardOutput
	command.Stderr = &standardError

	runError := command.Run()
	return integrationResult{
		standardOutput: standardOutput.String(),
		standardError:  standardError.String(),
		runError:       runError,
	}
}

func writeIntegrationFile(testInstance *testing.T, name string, content string) string {
	testInstance.Helper()
	filePath := filepath.Join(testInstance.TempDir(), name)
	require.NoError(testInstance, os.WriteFile(filePath, []byte(content), 0o600))
	return filePath
}
