package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/pkg/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"golang.org/x/term"
)

const defaultTermWidth = 80

// Parser wraps the HCL parser to route diagnostics through one place.
type Parser struct {
	*hclparse.Parser
	diagsWriterFunc func(hcl.Diagnostics) error
	logger          log.Logger
}

// Option configures a Parser.
type Option func(*Parser) *Parser

// WithLogger sets the logger used for parse failures.
func WithLogger(logger log.Logger) Option {
	return func(parser *Parser) *Parser {
		parser.logger = logger
		return parser
	}
}

// WithDiagnosticsWriter makes the parser write diagnostics to writer before failing.
func WithDiagnosticsWriter(writer io.Writer, disableColor bool) Option {
	return func(parser *Parser) *Parser {
		diagsWriter := parser.GetDiagnosticsWriter(writer, disableColor)

		parser.diagsWriterFunc = func(diags hcl.Diagnostics) error {
			if err := diagsWriter.WriteDiagnostics(diags); err != nil {
				return errors.New(err)
			}

			return nil
		}

		return parser
	}
}

// NewParser returns a parser.
func NewParser(opts ...Option) *Parser {
	parser := &Parser{
		Parser: hclparse.NewParser(),
		logger: log.Default(),
	}

	for _, opt := range opts {
		parser = opt(parser)
	}

	return parser
}

// File is a parsed configuration file.
type File struct {
	*hcl.File
	logger     log.Logger
	ConfigPath string
}

func (parser *Parser) ParseFromFile(configPath string) (*File, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		parser.logger.Warnf("Error reading file %s: %v", configPath, err)

		return nil, errors.New(err)
	}

	return parser.ParseFromBytes(content, configPath)
}

func (parser *Parser) ParseFromString(content, configPath string) (*File, error) {
	return parser.ParseFromBytes([]byte(content), configPath)
}

// ParseFromBytes parses content as HCL, or as JSON when configPath ends in `.json`.
func (parser *Parser) ParseFromBytes(content []byte, configPath string) (file *File, err error) {
	// cty conversions panic on some malformed input
	defer func() {
		if recovered := recover(); recovered != nil {
			err = errors.New(PanicWhileParsingConfigError{RecoveredValue: recovered, ConfigFile: configPath})
		}
	}()

	var (
		diags   hcl.Diagnostics
		hclFile *hcl.File
	)

	switch filepath.Ext(configPath) {
	case ".json":
		hclFile, diags = parser.ParseJSON(content, configPath)
	default:
		hclFile, diags = parser.ParseHCL(content, configPath)
	}

	if err := parser.handleDiagnostics(diags); err != nil {
		parser.logger.Warnf("Failed to parse HCL in file %s: %v", configPath, diags)

		return nil, errors.New(diags)
	}

	return &File{File: hclFile, ConfigPath: configPath, logger: parser.logger}, nil
}

// GetDiagnosticsWriter returns an HCL diagnostics writer sized for the current terminal.
func (parser *Parser) GetDiagnosticsWriter(writer io.Writer, disableColor bool) hcl.DiagnosticWriter {
	termColor := !disableColor && term.IsTerminal(int(os.Stderr.Fd()))

	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		termWidth = defaultTermWidth
	}

	return hcl.NewDiagnosticTextWriter(writer, parser.Files(), uint(termWidth), termColor)
}

func (parser *Parser) handleDiagnostics(diags hcl.Diagnostics) error {
	if !diags.HasErrors() {
		return nil
	}

	if fn := parser.diagsWriterFunc; fn != nil {
		if err := fn(diags); err != nil {
			return err
		}
	}

	return diags
}
