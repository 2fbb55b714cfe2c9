// logweave - interleave log files by timestamp.
//
// logweave merges lines from multiple log files into one stream ordered by
// timestamp, extracting each file's timestamps with a configurable regex.
package main

import (
	"os"

	"github.com/dgarrick/logweave/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
