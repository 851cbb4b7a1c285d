package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reoring/valchain"
	"github.com/reoring/valchain/jsonschema"
)

// app carries the streams and flags shared by every subcommand.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger

	input   string
	from    string
	strict  bool
	verbose bool
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: log.NewWithOptions(stderr, log.Options{Prefix: "valchain"}),
	}
}

func (a *app) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "valchain",
		Short:         "Inspect valchain violation reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.verbose {
				a.logger.SetLevel(log.DebugLevel)
			}
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.input, "input", "i", "-", "report file to read, - for stdin")
	pf.StringVar(&a.from, "from", "auto", "input encoding: auto, json or yaml")
	pf.BoolVar(&a.strict, "strict", false, "reject JSON reports with duplicate keys")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(a.renderCommand(), a.flattenCommand(), a.schemaCommand())
	return root
}

func (a *app) renderCommand() *cobra.Command {
	var format string
	var fail bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a violation report as a tree, JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := a.readReport()
			if err != nil {
				return a.fail(err)
			}
			var out []byte
			switch format {
			case "text":
				out = []byte(renderTree(vs))
			case "json":
				if out, err = json.MarshalIndent(valchain.Report{Violations: nonNil(vs)}, "", "  "); err == nil {
					out = append(out, '\n')
				}
			case "yaml":
				out, err = valchain.MarshalReportYAML(vs)
			default:
				err = fmt.Errorf("unknown format %q", format)
			}
			if err != nil {
				return a.fail(err)
			}
			if _, err := a.stdout.Write(out); err != nil {
				return a.fail(err)
			}
			if fail && len(vs) > 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&fail, "fail", false, "exit 1 when the report is not empty")
	return cmd
}

func (a *app) flattenCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "flatten",
		Short: "List every message with the JSON Pointer of its attribute",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := a.readReport()
			if err != nil {
				return a.fail(err)
			}
			iss := valchain.Flatten(vs)
			a.logger.Debug("flattened report", "violations", len(vs), "issues", len(iss))
			switch format {
			case "text":
				for _, is := range iss {
					fmt.Fprintf(a.stdout, "%s: %s\n", pathStyle.Render(is.Path), is.Message)
				}
				return nil
			case "json":
				if iss == nil {
					iss = valchain.Issues{}
				}
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return a.fail(enc.Encode(iss))
			case "yaml":
				return a.fail(yaml.NewEncoder(a.stdout).Encode(iss))
			default:
				return a.fail(fmt.Errorf("unknown format %q", format))
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	return cmd
}

func (a *app) schemaCommand() *cobra.Command {
	var issues bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the report body",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := jsonschema.ReportSchema()
			if issues {
				s = jsonschema.IssuesSchema()
			}
			data, err := jsonschema.Marshal(s)
			if err != nil {
				return a.fail(err)
			}
			_, err = fmt.Fprintln(a.stdout, string(data))
			return a.fail(err)
		},
	}
	cmd.Flags().BoolVar(&issues, "issues", false, "describe the flattened issue list instead")
	return cmd
}

// readReport loads the report named by --input in the encoding named by --from.
func (a *app) readReport() ([]valchain.Violation, error) {
	var (
		data []byte
		err  error
	)
	if a.input == "-" {
		data, err = io.ReadAll(a.stdin)
	} else {
		data, err = os.ReadFile(a.input)
	}
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	from := a.from
	if from == "auto" {
		from = detectEncoding(a.input, data)
	}
	a.logger.Debug("decoding report", "input", a.input, "encoding", from, "bytes", len(data))
	switch from {
	case "json":
		if a.strict {
			return valchain.UnmarshalReportStrict(data)
		}
		return valchain.UnmarshalReport(data)
	case "yaml":
		return valchain.UnmarshalReportYAML(data)
	default:
		return nil, fmt.Errorf("unknown input encoding %q", from)
	}
}

// fail logs err and turns it into exit status 2. A nil err passes through.
func (a *app) fail(err error) error {
	if err == nil {
		return nil
	}
	a.logger.Error(err)
	return &exitError{code: 2, err: err}
}

func detectEncoding(name string, data []byte) string {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return "yaml"
	}
	if strings.HasSuffix(name, ".json") || bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return "json"
	}
	return "yaml"
}

func nonNil(vs []valchain.Violation) []valchain.Violation {
	if vs == nil {
		return []valchain.Violation{}
	}
	return vs
}
