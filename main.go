package main

import (
	"os"
	"runtime/debug"

	"github.com/mezonai/devkit/cmd"
	"github.com/mezonai/devkit/logx"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			_ = logx.Errorf("DEVKIT CRASHED: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
