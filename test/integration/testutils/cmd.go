package testutils

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

var multiSpaceRegex = regexp.MustCompile(" +")

// RunUptimechart executes uptimechart command.
func RunUptimechart(ctx context.Context, env []string, cmdApp, cmdArgs string, nolog bool) (stdout, stderr []byte, err error) {
	// Sanitize command.
	cmdArgs = strings.TrimSpace(cmdArgs)
	cmdArgs = multiSpaceRegex.ReplaceAllString(cmdArgs, " ")

	// Split into args.
	args := strings.Split(cmdArgs, " ")

	// Create command.
	var outData, errData bytes.Buffer
	cmd := exec.CommandContext(ctx, cmdApp, args...)
	cmd.Stdout = &outData
	cmd.Stderr = &errData

	// Set env.
	newEnv := append([]string{}, env...)
	newEnv = append(newEnv, os.Environ()...)
	if nolog {
		newEnv = append(newEnv,
			"UPTIMECHART_NO_LOG=true",
			"UPTIMECHART_NO_COLOR=true",
		)
	}
	cmd.Env = newEnv

	// Run.
	err = cmd.Run()

	return outData.Bytes(), errData.Bytes(), err
}

func UptimechartVersion(ctx context.Context, binary string) (string, error) {
	stdout, stderr, err := RunUptimechart(ctx, []string{}, binary, "version", false)
	if err != nil {
		return "", fmt.Errorf("could not obtain versions: %s: %w", stderr, err)
	}

	version := string(stdout)
	version = strings.TrimSpace(version)

	return version, nil
}
