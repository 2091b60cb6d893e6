// Command quill compiles a system prompt once from files or stdin and prints
// the result.
//
//	quill -base prompt.txt -instructions - < notes.txt
//	quill -mode preset -industry dentist -brand "Bright Dental" -booking-url https://bright.example/book
//	quill -mode shape -instructions faq.txt -org "Bright Dental"
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/JaimeStill/quill/internal/api"
	"github.com/JaimeStill/quill/internal/compiler"
	"github.com/JaimeStill/quill/internal/config"
	"github.com/JaimeStill/quill/internal/infrastructure"
	"github.com/JaimeStill/quill/pkg/engine"
	"github.com/JaimeStill/quill/pkg/openapi"
	"github.com/JaimeStill/quill/pkg/presets"
	"github.com/JaimeStill/quill/pkg/scheduling"
)

const (
	modeApply    = "apply"
	modeGenerate = "generate"
	modeUser     = "user"
	modePreset   = "preset"
	modeShape    = "shape"
)

var errUsage = errors.New("usage")

type options struct {
	base         string
	instructions string
	mode         string

	industry     string
	brand        string
	location     string
	tone         string
	services     string
	bookingURL   string
	bookingPhone string

	org     string
	persona string

	diff    bool
	chips   bool
	asJSON  bool
	openAPI string
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "warning: .env not loaded:", err)
	}

	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "quill:", err)
		}
		os.Exit(2)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var o options
	fs := flag.NewFlagSet("quill", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.base, "base", "", "Base prompt file (default: built-in starter prompt)")
	fs.StringVar(&o.instructions, "instructions", "", "Instructions file, or - for stdin")
	fs.StringVar(&o.mode, "mode", modeApply, "Compile mode: apply, generate, user, preset, or shape")

	fs.StringVar(&o.industry, "industry", "", "Preset industry key or alias")
	fs.StringVar(&o.brand, "brand", "", "Business name")
	fs.StringVar(&o.location, "location", "", "Business location")
	fs.StringVar(&o.tone, "tone", "", "Tone words for the style section")
	fs.StringVar(&o.services, "services", "", "Comma-separated services")
	fs.StringVar(&o.bookingURL, "booking-url", "", "Online booking URL")
	fs.StringVar(&o.bookingPhone, "booking-phone", "", "Booking phone number")

	fs.StringVar(&o.org, "org", "", "Organization name for the scheduling template")
	fs.StringVar(&o.persona, "persona", "", "Assistant persona name for the scheduling template")

	fs.BoolVar(&o.diff, "diff", false, "Print diff rows instead of the merged prompt")
	fs.BoolVar(&o.chips, "chips", false, "List instruction chips and exit")
	fs.BoolVar(&o.asJSON, "json", false, "Print the full result as JSON")
	fs.StringVar(&o.openAPI, "openapi", "", "Write the OpenAPI document to FILE, or - for stdout, and exit")

	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return nil, errUsage
	}

	switch o.mode {
	case modeApply, modeGenerate, modeUser, modePreset, modeShape:
	default:
		return nil, fmt.Errorf("unknown mode %q", o.mode)
	}
	return &o, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg := &config.Config{}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := infrastructure.NewLogger(&cfg.Logging, stderr)
	sys, err := compiler.New(nil, nil, nil, logger, compiler.Config{
		BatchLimit:  cfg.Compiler.BatchLimit,
		Concurrency: cfg.Compiler.Concurrency,
	})
	if err != nil {
		return err
	}

	switch {
	case o.openAPI != "":
		spec := api.NewSpec(cfg, sys.Handler(cfg.API.MaxBodySize.Bytes()).Routes())
		if o.openAPI == "-" {
			data, err := openapi.MarshalJSON(spec)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, string(data))
			return err
		}
		return openapi.WriteJSON(spec, o.openAPI)
	case o.chips:
		chips, err := sys.Chips(ctx)
		if err != nil {
			return err
		}
		return printChips(stdout, chips, o.asJSON)
	}

	base, err := readBase(o.base, stdin)
	if err != nil {
		return err
	}
	instructions, err := readInput(o.instructions, stdin)
	if err != nil {
		return err
	}

	return compile(ctx, sys, o, base, instructions, stdout)
}

func compile(ctx context.Context, sys compiler.System, o *options, base, instructions string, stdout io.Writer) error {
	switch o.mode {
	case modeGenerate:
		res, err := sys.Generate(ctx, compiler.GenerateRequest{BasePrompt: base, FreeText: instructions})
		if err != nil {
			return err
		}
		if o.asJSON {
			return printJSON(stdout, res)
		}
		if o.diff {
			return printDiff(stdout, res.Diff)
		}
		_, err = fmt.Fprintln(stdout, res.NextPrompt)
		return err

	case modeUser:
		res, err := sys.ApplyUser(ctx, compiler.ApplyUserRequest{BasePrompt: base, Freeform: instructions})
		if err != nil {
			return err
		}
		return printApplication(stdout, o, res)

	case modePreset:
		res, err := sys.BuildPreset(ctx, o.params(base))
		if err != nil {
			return err
		}
		return printPrompt(stdout, o, res)

	case modeShape:
		raw := instructions
		if raw == "" {
			raw = base
		}
		res, err := sys.Shape(ctx, compiler.ShapeRequest{
			Raw:     raw,
			Options: scheduling.Options{Org: o.org, PersonaName: o.persona},
		})
		if err != nil {
			return err
		}
		return printPrompt(stdout, o, res)
	}

	res, err := sys.Apply(ctx, compiler.ApplyRequest{BasePrompt: base, Instructions: instructions})
	if err != nil {
		return err
	}
	return printApplication(stdout, o, res)
}

func (o *options) params(base string) presets.Params {
	p := presets.Params{
		Industry:   o.industry,
		Brand:      o.brand,
		InLocation: o.location,
		Tone:       o.tone,
	}
	if o.base != "" {
		p.BasePrompt = base
	}
	for _, s := range strings.Split(o.services, ",") {
		if s = strings.TrimSpace(s); s != "" {
			p.Services = append(p.Services, s)
		}
	}
	switch {
	case o.bookingURL != "":
		p.Booking = &presets.Booking{Type: "url", URL: o.bookingURL, Phone: o.bookingPhone}
	case o.bookingPhone != "":
		p.Booking = &presets.Booking{Type: "phone", Phone: o.bookingPhone}
	}
	return p
}

// readBase returns the default starter prompt when no base file is given.
func readBase(path string, stdin io.Reader) (string, error) {
	if path == "" {
		return engine.DefaultPrompt, nil
	}
	return readInput(path, stdin)
}

func readInput(path string, stdin io.Reader) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func printApplication(w io.Writer, o *options, res *compiler.ApplyResult) error {
	if o.asJSON {
		return printJSON(w, res)
	}
	if o.diff {
		if err := printDiff(w, res.Diff); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintln(w, res.Merged); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n# %s\n", res.Summary)
	return err
}

func printPrompt(w io.Writer, o *options, res *compiler.PromptResult) error {
	if o.asJSON {
		return printJSON(w, res)
	}
	_, err := fmt.Fprintln(w, res.Prompt)
	return err
}

func printDiff(w io.Writer, rows []engine.DiffRow) error {
	for _, r := range rows {
		mark := " "
		switch r.Kind {
		case engine.DiffAdd:
			mark = "+"
		case engine.DiffRemove:
			mark = "-"
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", mark, r.Text); err != nil {
			return err
		}
	}
	return nil
}

func printChips(w io.Writer, chips []presets.Chip, asJSON bool) error {
	if asJSON {
		return printJSON(w, chips)
	}
	for _, c := range chips {
		if _, err := fmt.Fprintf(w, "%-24s [%s] %s\n", c.Label, c.Section.Title(), c.Instruction); err != nil {
			return err
		}
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
