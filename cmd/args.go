package main

import (
	"errors"
	"strconv"

	cerr "github.com/saeidalz13/battleship-terminal/internal/error"
)

const usage = `Please, run 'battleships N K'
where N >= 5 is height of the field and K >= 5 is its width`

var errInvalidArguments = errors.New(cerr.ConstErrInvalidArguments)

// parseArgs reads the map height and width from the command line
// arguments, program name excluded.
func parseArgs(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, errInvalidArguments
	}

	height, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, errInvalidArguments
	}
	width, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, errInvalidArguments
	}

	if height < cerr.MinMapSize || width < cerr.MinMapSize {
		return 0, 0, errInvalidArguments
	}
	return height, width, nil
}
