package main

import (
	"fmt"

	"github.com/temirov/codic/internal/cli"
	"github.com/temirov/codic/internal/utils"
)

// main is the entry point for the codic command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer func() { _ = loggerInstance.Sync() }()
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Fatal(fmt.Sprintf(utils.ErrorLogFormat, applicationExecutionError))
	}
}
