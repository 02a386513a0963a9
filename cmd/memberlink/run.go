package main

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"memberlink/internal/diagnostic"
	"memberlink/internal/scenario"
)

var (
	ErrExpectationsFailed = errors.New("scenario expectations failed")
	ErrBackendFailures    = errors.New("scenario reported errors")
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario file and print a step report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.LoadFile(args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig(s.Config)
			if err != nil {
				return err
			}

			s.Config = cfg

			report, err := scenario.NewRunner(newLogger(cmd, cfg)).Run(s)
			if err != nil {
				return err
			}

			printReport(cmd, report)

			return checkReport(report)
		},
	}
}

// checkReport turns failed expectations and error diagnostics into the exit error.
func checkReport(report *scenario.Report) error {
	if report.Failures > 0 {
		return fmt.Errorf("%w: %d of %d steps", ErrExpectationsFailed, report.Failures, len(report.Results))
	}

	if report.Diagnostics.HasErrors() {
		return fmt.Errorf("%w: %w", ErrBackendFailures, report.Diagnostics.Error())
	}

	return nil
}

func printReport(cmd *cobra.Command, report *scenario.Report) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Step", "Action", "Detail", "Result"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	for _, res := range report.Results {
		result := "ok"
		if !res.OK {
			result = "FAIL " + res.Message
		}

		table.Append([]string{strconv.Itoa(res.Step), res.Action, res.Detail, result})
	}

	table.SetFooter([]string{
		"",
		"undo entries " + strconv.Itoa(report.UndoEntries),
		"",
		fmt.Sprintf("%d failed", report.Failures),
	})

	table.Render()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s\n%s", report.Name, buf.String())

	if report.Diagnostics.Count() > 0 {
		_, _ = fmt.Fprintf(out, "\n%s", diagnosticsTable(report.Diagnostics))
	}
}

func diagnosticsTable(diags diagnostic.Diagnostics) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Severity", "Code", "Member", "Target", "Message"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, list := range [][]diagnostic.Diagnostic{diags.Errors, diags.Warnings, diags.Infos} {
		for _, d := range list {
			table.Append([]string{d.Severity.String(), d.Code, d.Member, d.Target, d.Message})
		}
	}

	table.Render()

	return buf.String()
}
