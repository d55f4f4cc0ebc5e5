package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sanexml/sanexml"
)

var rootCmd = &cobra.Command{
	Use:   "sanexml [file]",
	Short: "Normalize sloppy markup into well-formed XML",
	Long: `Reads HTML-like markup from a file (or stdin), repairs malformed and
custom tags, optionally strips attributes, elements or wrapping tags,
and writes the result as well-formed XML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

var (
	baseURL       string
	stripAttrs    []string
	stripElements []string
	stripTags     []string
	stripComments bool
	keepTails     bool
	pretty        bool
	space         string
	method        string
	encoding      string
	output        string
	verbose       bool
)

func init() {
	f := rootCmd.Flags()
	f.StringVar(&baseURL, "base-url", "", "absolutize href attributes against this URL")
	f.StringArrayVar(&stripAttrs, "strip-attr", nil, "attribute name pattern to remove (repeatable, * wildcard)")
	f.StringArrayVar(&stripElements, "strip-element", nil, "tag name pattern whose subtree is removed (repeatable)")
	f.StringArrayVar(&stripTags, "strip-tag", nil, "tag name pattern to unwrap, keeping content (repeatable)")
	f.BoolVar(&stripComments, "strip-comments", false, "remove comment nodes")
	f.BoolVar(&keepTails, "keep-tails", false, "preserve trailing text of removed elements")
	f.BoolVarP(&pretty, "pretty", "p", false, "indent the output")
	f.StringVar(&space, "space", "  ", "indentation unit used with --pretty")
	f.StringVar(&method, "method", "xml", "output method: xml, html or text")
	f.StringVar(&encoding, "encoding", "", "name this encoding in an XML declaration")
	f.StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	f.BoolVarP(&verbose, "verbose", "v", false, "log processing details to stderr")
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	data, name, err := readInput(args)
	if err != nil {
		return err
	}

	start := time.Now()
	var root *sanexml.Node
	if baseURL != "" {
		root, err = sanexml.FromStringWithBase(string(data), baseURL)
	} else {
		root, err = sanexml.FromString(string(data))
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	logger.Debug("parsed input", "source", name, "bytes", len(data), "took", time.Since(start))

	if len(stripAttrs) > 0 {
		if err := sanexml.StripAttributes(root, stripAttrs...); err != nil {
			return err
		}
	}
	selectors := stripElements
	if stripComments {
		selectors = append(selectors, sanexml.Comment)
	}
	if len(selectors) > 0 {
		if err := sanexml.StripElements(root, !keepTails, selectors...); err != nil {
			return err
		}
	}
	if len(stripTags) > 0 {
		if err := sanexml.StripTags(root, stripTags...); err != nil {
			return err
		}
	}
	if pretty {
		if err := sanexml.Indent(root, space, 0); err != nil {
			return err
		}
	}

	out, err := sanexml.ToString(root, sanexml.SerializeOptions{Method: method, Encoding: encoding})
	if err != nil {
		return err
	}
	return writeOutput(out)
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func readInput(args []string) (data []byte, name string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
		return data, "stdin", err
	}
	data, err = os.ReadFile(args[0])
	return data, args[0], err
}

func writeOutput(s string) error {
	if output == "" {
		_, err := fmt.Println(s)
		return err
	}
	return os.WriteFile(output, []byte(s+"\n"), 0o644)
}
