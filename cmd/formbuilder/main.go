package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/internal/prompt"
	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/importer"
	"github.com/goliatone/go-formbuilder/pkg/survey"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// errInvalid signals validation failures so main can exit non-zero without
// logging twice.
var errInvalid = errors.New("document is invalid")

type options struct {
	configPath  string
	input       string
	output      string
	openapi     string
	operation   string
	validate    bool
	interactive bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, prompt.NewSurveyDriver()); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if !errors.Is(err, errInvalid) {
			log.Printf("formbuilder: %v", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("formbuilder", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "configuration file (defaults to the user config dir)")
	fs.StringVar(&opts.input, "in", "", "survey JSON or YAML to edit (new survey if empty)")
	fs.StringVar(&opts.output, "out", "", "output file (stdout if empty)")
	fs.StringVar(&opts.openapi, "import", "", "OpenAPI document to import a page from")
	fs.StringVar(&opts.operation, "operation", "", "operation ID to import; lists operations when empty")
	fs.BoolVar(&opts.validate, "validate", false, "validate the result and report issues")
	fs.BoolVar(&opts.interactive, "interactive", false, "edit the survey with terminal prompts")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout io.Writer, driver prompt.Driver) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger, closeLog := logging.New(cfg.LoggingOptions())
	defer closeLog()

	doc, err := loadInput(opts.input)
	if err != nil {
		return err
	}

	editorOpts := append(cfg.EditorOptions(), editor.WithLogger(logging.WithComponent(logger, "editor")))
	ed := editor.New(doc, editorOpts...)

	if opts.openapi != "" {
		done, err := importPage(ctx, ed, opts, stdout, logger)
		if err != nil || done {
			return err
		}
	}

	if opts.interactive {
		session := prompt.NewSession(ed, driver, logging.WithComponent(logger, "prompt"))
		if err := session.Run(ctx); err != nil {
			return err
		}
	}

	if opts.validate {
		if err := report(ctx, ed.Document(), cfg, stdout); err != nil {
			return err
		}
	}

	encoded, err := survey.Encode(ed.Document())
	if err != nil {
		return fmt.Errorf("encode survey: %w", err)
	}
	if opts.output == "" {
		_, err = stdout.Write(encoded)
		return err
	}
	if err := os.WriteFile(opts.output, encoded, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("survey written", slog.String("path", opts.output), slog.Int("pages", ed.Document().PageCount()))
	return nil
}

func loadInput(path string) (survey.Document, error) {
	if strings.TrimSpace(path) == "" {
		return survey.Document{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return survey.Document{}, fmt.Errorf("read survey: %w", err)
	}
	return survey.Decode(data)
}

// importPage either lists the operations of the OpenAPI document (done is
// true) or appends a page built from the chosen operation. An empty first
// page is filled instead of adding another.
func importPage(ctx context.Context, ed *editor.Editor, opts options, stdout io.Writer, logger *slog.Logger) (bool, error) {
	raw, err := os.ReadFile(opts.openapi)
	if err != nil {
		return false, fmt.Errorf("read openapi document: %w", err)
	}
	imp := importer.New(importer.WithLogger(logging.WithComponent(logger, "importer")))

	if opts.operation == "" {
		ops, err := imp.Operations(ctx, raw)
		if err != nil {
			return false, err
		}
		for _, op := range ops {
			fmt.Fprintf(stdout, "%s\t%s %s\t%s\n", op.ID, op.Method, op.Path, op.Summary)
		}
		return true, nil
	}

	page, err := imp.Page(ctx, raw, opts.operation, ed.Document())
	if err != nil {
		return false, err
	}
	doc := ed.Document()
	target := doc.Pages[len(doc.Pages)-1].Name
	if len(doc.Pages) != 1 || len(doc.Pages[0].Elements) != 0 {
		target = ed.AddPage()
	}
	if err := ed.Update(survey.NameRef(target), page); err != nil {
		return false, fmt.Errorf("import page: %w", err)
	}
	logger.Info("page imported", slog.String("operation", opts.operation), slog.Int("elements", len(page.Elements)))
	return false, nil
}

func report(ctx context.Context, doc survey.Document, cfg config.Config, stdout io.Writer) error {
	var opts []validation.Option
	if cfg.Validation.SchemaPath != "" {
		opts = append(opts, validation.WithSchemaFile(cfg.Validation.SchemaPath))
	}
	validator, err := validation.NewValidator(opts...)
	if err != nil {
		return err
	}
	result := validator.Validate(ctx, doc)
	if result.Valid {
		return nil
	}
	for _, issue := range result.Issues {
		location := issue.Field
		if location == "" {
			location = "(root)"
		}
		fmt.Fprintf(os.Stderr, "%s: %s\n", location, issue.Message)
	}
	return errInvalid
}
