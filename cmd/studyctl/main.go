package main

import (
	"errors"
	"fmt"
	"os"

	"studyBuddy/internal/client"
	"studyBuddy/internal/logger"
)

var Version = "dev"

func main() {
	err := newRootCmd().Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
		os.Exit(1)
	}
}

// describe appends the server's reason to an API error message.
func describe(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Detail != "":
			return apiErr.Message + ": " + apiErr.Detail
		case apiErr.Err != nil:
			return apiErr.Message + ": " + apiErr.Err.Error()
		}
	}
	return err.Error()
}
