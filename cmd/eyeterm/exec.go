package main

import (
	"bufio"
	"fmt"
	"io"

	"eyeterm/internal/boot"
	"eyeterm/internal/errors"
	"eyeterm/internal/log"
	"eyeterm/internal/shell"

	"github.com/spf13/cobra"
)

func execCmd() *cobra.Command {
	var playBoot bool

	cmd := &cobra.Command{
		Use:   "exec [command ...]",
		Short: "Run terminal commands without the UI",
		Long: `Run terminal commands headlessly and print the scrollback.
Each argument is one command line; without arguments, lines are read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := args
			if len(lines) == 0 {
				var err error
				if lines, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			return runHeadless(cmd, lines, playBoot)
		},
	}

	cmd.Flags().BoolVar(&playBoot, "boot", false, "play the boot sequence first")
	return cmd
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read commands")
	}
	return lines, nil
}

// logPrinter writes the log entries a session gained since the last flush.
type logPrinter struct {
	out     io.Writer
	s       *shell.Session
	printed int
}

func (p *logPrinter) flush() {
	entries := p.s.Log()
	if len(entries) < p.printed {
		p.printed = 0
	}
	for _, e := range entries[p.printed:] {
		fmt.Fprintln(p.out, e)
	}
	p.printed = len(entries)
}

func runHeadless(cmd *cobra.Command, lines []string, playBoot bool) error {
	s := shell.NewSession()
	p := &logPrinter{out: cmd.OutOrStdout(), s: s}

	if playBoot {
		seq := boot.New(s.Content().BootLines(), boot.DefaultDelay)
		err := seq.Run(cmd.Context(), func(line string) {
			s.AppendLog(line)
			p.flush()
		})
		if err != nil {
			return errors.Wrap(err, "boot interrupted")
		}
	}
	s.CompleteIntro()

	for _, line := range lines {
		outcome := s.Execute(line)
		if outcome == shell.Cleared {
			p.printed = 0
		}
		p.flush()
		if outcome == shell.Exited {
			break
		}
	}
	log.LogWithFields(log.F("session", s.ID()), log.F("commands", len(s.History()))).Debug("exec finished")
	return nil
}
