package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

type exiter struct{}

func (exiter) main() {
	os.Exit(3) // want "found usage of os.Exit outside of main function"
}

func run(logger *zap.Logger) error {
	logger.Info("running")
	if len(os.Args) > 2 {
		logger.Fatal("bad arguments") // want "found usage of zap Fatal outside of main function"
	}
	return nil
}

func main() {
	if err := run(&zap.Logger{}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	exiter{}.main()
}
