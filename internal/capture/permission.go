package capture

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// StaticPermission always answers the same way.
type StaticPermission bool

func (p StaticPermission) Request(ctx context.Context) (bool, error) {
	return bool(p), nil
}

// PromptPermission asks on a terminal.
type PromptPermission struct {
	In  io.Reader
	Out io.Writer
}

func (p PromptPermission) Request(ctx context.Context) (bool, error) {
	fmt.Fprint(p.Out, "Allow Edurecap to use the microphone? [y/N] ")

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
