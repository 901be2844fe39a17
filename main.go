package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	appName = "btps"
	usage   = `solution builder for the judging pipeline

btps compiles one contestant or reference solution, links it against the
task's grader when the task has one, and leaves a ready-to-run sandbox with
the artifact and the generated exec/run scripts`
)

func main() {
	app := cli.NewApp()
	app.Name = appName
	app.Usage = usage
	app.ArgsUsage = "<solution-path>"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "echo every external command and decision before execution",
		},
		cli.BoolFlag{
			Name:  "public-grader",
			Usage: "build against the public grader instead of the judge one",
		},
		cli.StringFlag{
			Name:  "log",
			Value: "/dev/null",
			Usage: "set the log file path where internal debug information is written",
		},
		cli.StringFlag{
			Name:  "log-format",
			Value: "text",
			Usage: "set the format used by logs ('text' (default), or 'json')",
		},
	}

	app.Before = func(context *cli.Context) error {
		if context.GlobalBool("verbose") {
			logrus.SetLevel(logrus.DebugLevel)
			logrus.SetOutput(os.Stderr)
			return setLogFormat(context)
		}
		if path := context.GlobalString("log"); path != "" {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND|os.O_SYNC, 0666)
			if err != nil {
				return err
			}
			logrus.SetOutput(f)
		}
		return setLogFormat(context)
	}

	app.Action = buildAction

	// If the command returns an error, cli takes upon itself to print
	// the error on cli.ErrWriter and exit.
	// Use our own writer here to ensure the log gets sent to the right location.
	cli.ErrWriter = &FatalWriter{cli.ErrWriter}
	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func setLogFormat(context *cli.Context) error {
	switch context.GlobalString("log-format") {
	case "text":
		// retain logrus's default.
	case "json":
		logrus.SetFormatter(new(logrus.JSONFormatter))
	default:
		return fmt.Errorf("unknown log-format %q", context.GlobalString("log-format"))
	}
	return nil
}

type FatalWriter struct {
	cliErrWriter io.Writer
}

func (f *FatalWriter) Write(p []byte) (n int, err error) {
	logrus.Error(string(p))
	return f.cliErrWriter.Write(p)
}
