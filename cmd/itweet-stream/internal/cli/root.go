// Package cli implements the itweet-stream demo command.
package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alepharchives/itweet"
	"github.com/alepharchives/itweet/internal/config"
	"github.com/alepharchives/itweet/internal/teststub"
	"github.com/alepharchives/itweet/urlbuilder"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var errInterrupted = errors.New("interrupted")

// Execute runs the itweet-stream CLI.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the root cobra command.
func NewRootCommand() *cobra.Command {
	var configPath string
	var user, password string
	var method string
	var track []string
	var timeout time.Duration
	var debug bool
	var fake bool
	var showVersion bool

	cmd := &cobra.Command{
		Use:   "itweet-stream",
		Short: "Stream Twitter's public streaming API and print what it sends",
		Long: `itweet-stream is a small demo consumer of the itweet library.

It opens one streaming method (filter, firehose, links, retweet, or
sample), prints every status and event the handler receives, and runs
until the stream ends, the handler stops it, or it is interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), "itweet-stream version "+version)
				return nil
			}

			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = loaded
			}
			if user != "" {
				cfg.Credentials.User = user
			}
			if password != "" {
				cfg.Credentials.Password = password
			}
			if method != "" {
				cfg.Method.Name = method
			}
			if len(track) > 0 {
				cfg.Method.Track = track
			}
			if timeout > 0 {
				cfg.Timeout = timeout
			}
			if debug {
				cfg.Debug = debug
			}
			if fake {
				cfg.Fake = fake
			}

			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&user, "user", "", "Basic auth username")
	flags.StringVar(&password, "password", "", "Basic auth password")
	flags.StringVar(&method, "method", "", "streaming method: filter, firehose, links, retweet, sample")
	flags.StringSliceVar(&track, "track", nil, "comma-separated track terms (filter method only)")
	flags.DurationVar(&timeout, "timeout", 0, "deadline for each streaming request, counted from when it opens")
	flags.BoolVar(&debug, "debug", false, "enable verbose logging")
	flags.BoolVar(&fake, "fake", false, "use an in-memory fake transport instead of a real connection")
	flags.BoolVar(&showVersion, "version", false, "print the version and exit")

	return cmd
}

func run(cfg config.Config) error {
	opts := itweet.Options{
		{Name: "user", Value: cfg.Credentials.User},
		{Name: "password", Value: cfg.Credentials.Password},
		{Name: "timeout", Value: cfg.Timeout},
		{Name: "debug", Value: cfg.Debug},
	}
	if cfg.Fake {
		opts = append(opts, itweet.Option{Name: "opener", Value: fakeOpener()})
	}

	client, err := itweet.Start(printHandler{}, nil, opts)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	if err := switchMethod(client, cfg.Method); err != nil {
		return fmt.Errorf("open %s stream: %w", cfg.Method.Name, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-client.Done():
	case <-sigCh:
		client.Stop(errInterrupted)
		<-client.Done()
	}
	return client.Err()
}

func switchMethod(client *itweet.Client, m config.Method) error {
	opts := methodOptions(m)
	switch m.Name {
	case "filter":
		return client.Filter(opts)
	case "firehose":
		return client.Firehose(opts)
	case "links":
		return client.Links(opts)
	case "retweet":
		return client.Retweet(opts)
	default:
		return client.Sample(opts)
	}
}

func methodOptions(m config.Method) itweet.Options {
	var opts itweet.Options
	if len(m.Track) > 0 {
		opts = append(opts, itweet.Option{Name: "track", Value: m.Track})
	}
	if len(m.Follow) > 0 {
		opts = append(opts, itweet.Option{Name: "follow", Value: m.Follow})
	}
	if m.Count != 0 {
		opts = append(opts, itweet.Option{Name: "count", Value: m.Count})
	}
	if len(m.Locations)%4 == 0 && len(m.Locations) > 0 {
		locs := make([]urlbuilder.Location, 0, len(m.Locations)/4)
		for i := 0; i+3 < len(m.Locations); i += 4 {
			locs = append(locs, urlbuilder.Location{
				m.Locations[i], m.Locations[i+1], m.Locations[i+2], m.Locations[i+3],
			})
		}
		opts = append(opts, itweet.Option{Name: "locations", Value: locs})
	}
	return opts
}

func fakeOpener() *teststub.Opener {
	return teststub.NewOpener(teststub.Script{
		StatusCode: 200,
		Chunks: []teststub.Chunk{
			{Data: []byte(`{"text":"hello from the fake transport"}` + "\r")},
			{Data: []byte(`{"delete":{"status":{"id":1}}}` + "\r")},
		},
	})
}
