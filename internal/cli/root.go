// Package cli implements the jobdash command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/adamwoolhether/jobdash"
	"github.com/adamwoolhether/jobdash/config"
	"github.com/adamwoolhether/jobdash/notify"
)

var versionInfo = struct {
	Version   string
	Commit    string
	BuildDate string
}{Version: "dev", Commit: "unknown", BuildDate: "unknown"}

// SetVersionInfo records the build's version for --version.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

type state struct {
	cfgFile  string
	logLevel string
	baseURL  string

	out     io.Writer
	errOut  io.Writer
	appOpts []jobdash.Option

	app *jobdash.App
}

func newRootCmd(s *state) *cobra.Command {
	root := &cobra.Command{
		Use:           "jobdash",
		Short:         "Browse and update tracked job applications",
		Long:          "jobdash talks to the job application dashboard backend, keeping every API call under one shared rate limit.",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", versionInfo.Version, versionInfo.Commit, versionInfo.BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open()
		},
	}
	root.SetOut(s.out)
	root.SetErr(s.errOut)

	root.PersistentFlags().StringVar(&s.cfgFile, "config", "", "config file (YAML)")
	root.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&s.baseURL, "base-url", "", "dashboard backend address")

	root.AddCommand(
		newStatsCmd(s),
		newAppsCmd(s),
		newFollowupsCmd(s),
		newTimelineCmd(s),
		newInterviewsCmd(s),
		newShortcutsCmd(s),
	)

	return root
}

// Execute runs the command line with args. opts are applied when the
// dashboard client is built.
func Execute(ctx context.Context, args []string, out, errOut io.Writer, opts ...jobdash.Option) error {
	s := &state{out: out, errOut: errOut, appOpts: opts}

	return s.execute(ctx, args)
}

// execute runs one command and always releases the app it opened.
func (s *state) execute(ctx context.Context, args []string) error {
	root := newRootCmd(s)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)

	return errors.Join(err, s.close())
}

func (s *state) open() error {
	cfg, err := config.Load(s.cfgFile)
	if err != nil {
		return err
	}
	if s.logLevel != "" {
		cfg.Logging.Level = s.logLevel
	}
	if s.baseURL != "" {
		cfg.BaseURL = s.baseURL
	}

	opts := append([]jobdash.Option{
		jobdash.WithLogOutput(s.errOut),
		jobdash.WithTerminal(s.out),
		jobdash.WithToastSink(s.toast),
	}, s.appOpts...)

	s.app, err = jobdash.New(cfg, opts...)
	if err != nil {
		return fmt.Errorf("starting jobdash: %w", err)
	}

	return nil
}

func (s *state) close() error {
	if s.app == nil {
		return nil
	}

	err := s.app.Close()
	s.app = nil

	return err
}

func (s *state) toast(t notify.Toast) {
	fmt.Fprintf(s.errOut, "[%s] %s\n", t.Level, t.Message)
}

var errNotFound = errors.New("not found")
