// pgb is a command-line utility for translating SQL templates with named
// parameters and for calling stored Postgres functions.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mitranim/pgb"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const usage = `usage:
  pgb translate -t <template.sql> [-p <params.yaml>]
  pgb call -c <config.yaml> [--single-row] [--single-value] <schema.func> [args...]`

func main() {
	log.SetFlags(0)
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command\n%s", usage)
	}

	switch args[0] {
	case "translate":
		return runTranslate(args[1:], stdin, stdout)
	case "call":
		return runCall(ctx, args[1:], stdout)
	default:
		return fmt.Errorf("unrecognized command %q\n%s", args[0], usage)
	}
}

func runTranslate(args []string, stdin io.Reader, stdout io.Writer) error {
	var command struct {
		template string
		params   string
	}

	flags := pflag.NewFlagSet("translate", pflag.ContinueOnError)
	flags.StringVarP(&command.template, "template", "t", "-", "SQL template file, - for stdin")
	flags.StringVarP(&command.params, "params", "p", "", "YAML file with named parameters")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if len(flags.Args()) > 0 {
		return fmt.Errorf("unrecognized args: %s", strings.Join(flags.Args(), " "))
	}

	text, err := readInput(command.template, stdin)
	if err != nil {
		return err
	}

	params := pgb.NamedParams{}
	if command.params != "" {
		src, err := os.ReadFile(command.params)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(src, &params); err != nil {
			return fmt.Errorf("cannot parse params: %w", err)
		}
	}

	query, err := pgb.ProcessNamedParams(string(text), params)
	if err != nil {
		return err
	}

	return writeYaml(stdout, translateOutput{SQL: query.String(), Args: query.Args})
}

type translateOutput struct {
	SQL  string `yaml:"sql"`
	Args []any  `yaml:"args"`
}

func runCall(ctx context.Context, args []string, stdout io.Writer) error {
	var command struct {
		config      string
		singleRow   bool
		singleValue bool
	}

	flags := pflag.NewFlagSet("call", pflag.ContinueOnError)
	flags.StringVarP(&command.config, "config", "c", "pgb.yaml", "YAML config file")
	flags.BoolVar(&command.singleRow, "single-row", false, "expect exactly one row")
	flags.BoolVar(&command.singleValue, "single-value", false, "expect exactly one column")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return fmt.Errorf("no function specified\n%s", usage)
	}

	fn, err := parseFunc(flags.Arg(0))
	if err != nil {
		return err
	}
	fn.ReturnSingleRow = command.singleRow
	fn.ReturnSingleValue = command.singleValue

	conf, err := pgb.LoadConfig(command.config)
	if err != nil {
		return err
	}

	db, err := conf.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	callArgs := make([]any, 0, flags.NArg()-1)
	for _, val := range flags.Args()[1:] {
		callArgs = append(callArgs, val)
	}

	out, err := conf.Conn(db, log.Default()).Func(fn)(ctx, callArgs...)
	if err != nil {
		return err
	}
	return writeYaml(stdout, out)
}

// Accepts "schema.func" or "func"; the latter uses the "public" schema.
func parseFunc(src string) (pgb.StoredFunc, error) {
	schema, name, ok := strings.Cut(src, ".")
	if !ok {
		schema, name = "public", src
	}
	if schema == "" || name == "" {
		return pgb.StoredFunc{}, fmt.Errorf("invalid function name %q", src)
	}
	return pgb.StoredFunc{Schema: schema, Name: name}, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeYaml(out io.Writer, val any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(val); err != nil {
		return err
	}
	return enc.Close()
}
