package collector

import (
	"errors"
	"log"
	"os"

	"go.uber.org/zap"
)

func Collect(logger *zap.SugaredLogger) error {
	logger.Infow("collecting")

	if len(os.Args) > 5 {
		panic("too many arguments") // want "found usage of panic"
	}

	if len(os.Args) > 4 {
		log.Fatal("statistics command failed") // want "found usage of log.Fatal outside of main function"
	}

	if len(os.Args) > 3 {
		os.Exit(1) // want "found usage of os.Exit outside of main function"
	}

	if len(os.Args) > 2 {
		logger.Fatalw("malformed output") // want "found usage of zap Fatalw outside of main function"
	}

	if len(os.Args) > 1 {
		logger.DPanicf("provider failed: %d", 1) // want "found usage of zap DPanicf outside of main function"
	}

	return errors.New("not implemented")
}
