// Command itweet-stream is a small demo consumer of the itweet public
// facade: it opens one streaming method and prints each status and
// event it receives, until stopped or the stream ends.
package main

import (
	"fmt"
	"os"

	"github.com/alepharchives/itweet/cmd/itweet-stream/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
