// Package setup checks a Gemini API key, asking for one and saving it to .env
// when none is configured, and tries out one of the native audio voices.
package setup

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/davidhbaek/gemini-audio/internal/chat"
	"github.com/davidhbaek/gemini-audio/internal/config"
	"github.com/davidhbaek/gemini-audio/internal/exchange"
	"github.com/davidhbaek/gemini-audio/internal/gemini"
	"github.com/davidhbaek/gemini-audio/internal/logging"
)

const ReadyPrompt = "Say exactly: 'Gemini 2.5 Flash Native Audio ready!'"

var errNoKey = errors.New("no API key provided")

type env struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	in      chat.LineReader
	config  *config.Config
	logger  zerolog.Logger
	needKey bool
	voice   string
}

func CLI(args []string) int {
	app := env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	return app.main(args)
}

func (app *env) main(args []string) int {
	err := app.fromArgs(args)
	switch {
	case errors.Is(err, config.ErrInvalidModel):
		fmt.Fprintf(app.stderr, "Error: %v\n", err)
		return 1
	case errors.Is(err, flag.ErrHelp):
		return 2
	case err != nil:
		fmt.Fprintf(app.stderr, "parsing args: %v\n", err)
		return 2
	}

	err = app.run(context.Background())
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNoKey):
		fmt.Fprintln(app.stderr, "\nNo API key provided. Exiting.")
	case gemini.IsTransport(err):
		fmt.Fprintf(app.stderr, "Connection error: %v\n", err)
	default:
		fmt.Fprintf(app.stderr, "Error: %v\n", err)
	}
	return 1
}

func (app *env) fromArgs(args []string) error {
	fl := flag.NewFlagSet("setup", flag.ContinueOnError)
	fl.SetOutput(app.stderr)
	fl.Usage = func() {
		fmt.Fprintln(fl.Output(), "Usage: setup [-m model] [-voice name|number] [-v] [api_key]")
		fl.PrintDefaults()
	}

	var model string
	fl.StringVar(&model, "m", "", "the Gemini model to use (flash, pro, lite or a full name)")
	fl.StringVar(&model, "model", "", "the Gemini model to use (flash, pro, lite or a full name)")

	fl.StringVar(&app.voice, "voice", "", "the voice to try, by name or number; asked for when empty")

	var verbose bool
	fl.BoolVar(&verbose, "v", false, "log debug output to stderr")
	fl.BoolVar(&verbose, "verbose", false, "log debug output to stderr")

	if err := fl.Parse(args); err != nil {
		return err
	}
	if fl.NArg() > 1 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fl.Args()[1:], " "))
	}

	// A missing key is not fatal here: it can still come from the command
	// line or be typed in.
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrMissingCredential) {
		return err
	}
	if fl.NArg() == 1 {
		err = cfg.SetAPIKey(fl.Arg(0))
	}
	app.needKey = errors.Is(err, config.ErrMissingCredential)

	if err := cfg.UseModel(model); err != nil {
		return err
	}

	app.config = cfg
	app.logger = logging.New(app.stderr, verbose || cfg.Debug)

	return nil
}

func (app *env) run(ctx context.Context) error {
	app.in = chat.NewScanReader(app.stdin, app.stdout, "")

	if app.needKey {
		if err := app.askAPIKey(); err != nil {
			return err
		}
	}

	client, err := gemini.NewClient(ctx,
		gemini.WithAPIKey(app.config.APIKey),
		gemini.WithBaseURL(app.config.BaseURL),
		gemini.WithLogger(app.logger),
	)
	if err != nil {
		return err
	}
	runner := exchange.NewRunner(client, app.config.Model, exchange.WithLogger(app.logger))

	if err := app.testConnection(ctx, runner); err != nil {
		return err
	}

	app.listVoices()

	if err := app.testVoice(ctx, runner, app.chooseVoice()); err != nil {
		return err
	}

	app.nextSteps()
	return nil
}

func (app *env) askAPIKey() error {
	fmt.Fprintln(app.stdout, strings.Repeat("=", 60))
	fmt.Fprintf(app.stdout, "%s not found!\n", config.APIKeyEnv)
	fmt.Fprintln(app.stdout, strings.Repeat("=", 60))
	fmt.Fprintf(app.stdout, "\nGet your API key at: %s\n", config.APIKeyURL)
	fmt.Fprintln(app.stdout, "\nYou can provide it via:")
	fmt.Fprintf(app.stdout, "  1. Create %s file with %s=your-key\n", config.DotEnvFile, config.APIKeyEnv)
	fmt.Fprintf(app.stdout, "  2. export %s=your-key\n", config.APIKeyEnv)
	fmt.Fprintln(app.stdout, "  3. setup your-key")
	fmt.Fprint(app.stdout, "  4. Enter it now:\n\n")

	fmt.Fprint(app.stdout, "API Key: ")
	apiKey, err := app.in.ReadLine()
	if err != nil {
		app.logger.Debug().Err(err).Msg("no key typed")
		return errNoKey
	}
	if err := app.config.SetAPIKey(apiKey); err != nil {
		return errNoKey
	}

	fmt.Fprintf(app.stdout, "Save to %s for future use? [Y/n]: ", config.DotEnvFile)
	answer, err := app.in.ReadLine()
	if err != nil || strings.EqualFold(strings.TrimSpace(answer), "n") {
		return nil
	}

	if err := config.SaveAPIKey(config.DotEnvFile, app.config.APIKey); err != nil {
		app.logger.Warn().Err(err).Msg("could not save API key")
		return nil
	}
	fmt.Fprintf(app.stdout, "Saved to %s\n", config.DotEnvFile)

	return nil
}

func (app *env) testConnection(ctx context.Context, runner *exchange.Runner) error {
	fmt.Fprintln(app.stdout, "\nTesting Gemini API connection...")
	fmt.Fprintln(app.stdout, strings.Repeat("-", 40))

	rsp, err := runner.Ask(ctx, ReadyPrompt)
	if err != nil {
		return fmt.Errorf("testing connection: %w", err)
	}

	fmt.Fprintf(app.stdout, "Response: %s\n", rsp.Text)
	fmt.Fprintln(app.stdout, strings.Repeat("-", 40))
	fmt.Fprint(app.stdout, "SUCCESS! API connection working.\n\n")

	return nil
}

func (app *env) listVoices() {
	fmt.Fprintln(app.stdout, "\nAvailable HD Voices (Live API):")
	fmt.Fprintln(app.stdout, strings.Repeat("-", 40))
	for i, voice := range Voices {
		fmt.Fprintf(app.stdout, "  %d. %-10s - %s\n", i+1, voice.Name, voice.Description)
	}
	fmt.Fprintln(app.stdout, strings.Repeat("-", 40))
}

func (app *env) chooseVoice() Voice {
	if app.voice != "" {
		return SelectVoice(app.voice)
	}

	fmt.Fprintf(app.stdout, "\nSelect a voice to test (1-%d) or press Enter for %s: ", len(Voices), DefaultVoice.Name)
	choice, err := app.in.ReadLine()
	if err != nil {
		fmt.Fprintln(app.stdout)
		return DefaultVoice
	}

	return SelectVoice(choice)
}

func (app *env) testVoice(ctx context.Context, runner *exchange.Runner, voice Voice) error {
	fmt.Fprintf(app.stdout, "\nTesting voice: %s\n", voice.Name)
	fmt.Fprintln(app.stdout, strings.Repeat("-", 40))
	fmt.Fprintf(app.stdout, "Voice characteristics: %s\n", voice.Description)
	fmt.Fprintf(app.stdout, "Model for Live API: %s\n", NativeAudioModel)

	rsp, err := runner.Ask(ctx, GreetingPrompt(voice))
	if err != nil {
		return fmt.Errorf("testing voice %s: %w", voice.Name, err)
	}

	fmt.Fprintf(app.stdout, "\nSample greeting for %s:\n%s\n", voice.Name, rsp.Text)
	fmt.Fprintln(app.stdout, strings.Repeat("-", 40))

	return nil
}

func (app *env) nextSteps() {
	fmt.Fprintln(app.stdout, "\n"+strings.Repeat("=", 60))
	fmt.Fprintln(app.stdout, "Setup complete! Next steps:")
	fmt.Fprintln(app.stdout, strings.Repeat("=", 60))
	fmt.Fprint(app.stdout, `
  # Analyze an audio file:
  audiotest /path/to/audio.mp3

  # Chat with the model:
  livechat

`)
}
