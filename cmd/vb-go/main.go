package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chriscow/voicebot-go/internal/shell"
	"github.com/chriscow/voicebot-go/pkg/ai/llm"
	"github.com/chriscow/voicebot-go/pkg/ai/stt"
	"github.com/chriscow/voicebot-go/pkg/ai/tts"
	"github.com/chriscow/voicebot-go/pkg/plugin"
	_ "github.com/chriscow/voicebot-go/pkg/plugin/gtts"   // Import to register gtts plugin
	_ "github.com/chriscow/voicebot-go/pkg/plugin/openai" // Import to register OpenAI plugins
	"github.com/chriscow/voicebot-go/pkg/version"
	"github.com/chriscow/voicebot-go/pkg/voice"
)

var rootCmd = &cobra.Command{
	Use:   "vb-go",
	Short: "vb-go - a voice assistant pipeline: record, transcribe, answer, speak",
	Long: `vb-go wires speech-to-text, chat completion and speech synthesis into
one interaction cycle. The core is a library; this CLI runs single cycles from
WAV files and serves the WebSocket shell the browser UI connects to.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetVersionInfo())
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Run one full cycle from a recorded WAV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath, _ := cmd.Flags().GetString("file")
		model, _ := cmd.Flags().GetString("model")
		key, _ := cmd.Flags().GetString("key")
		speak, _ := cmd.Flags().GetBool("speak")
		outPath, _ := cmd.Flags().GetString("out")
		ttsName, _ := cmd.Flags().GetString("tts")
		lang, _ := cmd.Flags().GetString("lang")

		logger := setupLogger()

		audio, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read audio file: %w", err)
		}

		controller, err := buildController(ttsName, key, lang, logger)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		exchange, err := controller.Submit(ctx, voice.SubmitRequest{
			Audio:      audio,
			Model:      model,
			Credential: key,
		})
		if err != nil {
			return err
		}

		fmt.Printf("[%s] user: %s\n", exchange.Question.Clock(), exchange.Question.Text)
		fmt.Printf("[%s] assistant: %s\n", exchange.Answer.Clock(), exchange.Answer.Text)

		if !speak {
			return nil
		}
		payload, err := controller.SpeakLastAnswer(ctx)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, payload.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write audio: %w", err)
		}
		logger.Info("answer audio written",
			slog.String("path", outPath),
			slog.String("format", payload.Format),
			slog.Int("bytes", len(payload.Data)))
		return nil
	},
}

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Synthesize text to an audio file",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetString("text")
		lang, _ := cmd.Flags().GetString("lang")
		outPath, _ := cmd.Flags().GetString("out")
		ttsName, _ := cmd.Flags().GetString("tts")
		key, _ := cmd.Flags().GetString("key")

		logger := setupLogger()

		synth, err := buildTTS(ttsName, key)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		payload, err := synth.Synthesize(ctx, tts.SynthesizeRequest{Text: text, Language: lang})
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, payload.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write audio: %w", err)
		}
		logger.Info("audio written",
			slog.String("path", outPath),
			slog.String("format", payload.Format),
			slog.Int("bytes", len(payload.Data)))
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the WebSocket shell for the browser UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		ttsName, _ := cmd.Flags().GetString("tts")
		key, _ := cmd.Flags().GetString("key")
		lang, _ := cmd.Flags().GetString("lang")

		logger := setupLogger()

		factory := func() (*voice.Controller, error) {
			return buildController(ttsName, key, lang, logger)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		server := shell.NewServer(addr, factory, logger)
		return server.Run(ctx)
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List registered providers",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%-6s %-10s %-8s %s\n", "KIND", "NAME", "VERSION", "DESCRIPTION")
		for _, p := range plugin.List("") {
			fmt.Printf("%-6s %-10s %-8s %s\n", p.Kind, p.Name, p.Version, p.Description)
		}
	},
}

func setupLogger() *slog.Logger {
	logFormat := os.Getenv("VB_LOG_FORMAT")
	logLevel := os.Getenv("VB_LOG_LEVEL")

	opts := &slog.HandlerOptions{}
	switch logLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	var handler slog.Handler
	if logFormat == "console" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func buildController(ttsName, ttsKey, lang string, logger *slog.Logger) (*voice.Controller, error) {
	sttProvider, err := buildSTT()
	if err != nil {
		return nil, err
	}
	llmProvider, err := buildLLM()
	if err != nil {
		return nil, err
	}
	ttsProvider, err := buildTTS(ttsName, ttsKey)
	if err != nil {
		return nil, err
	}
	return voice.New(voice.Config{
		STT:      sttProvider,
		LLM:      llmProvider,
		TTS:      ttsProvider,
		Language: lang,
		Logger:   logger,
	})
}

func buildSTT() (stt.STT, error) {
	factory, ok := plugin.Get(plugin.KindSTT, "openai")
	if !ok {
		return nil, fmt.Errorf("stt provider %q is not registered", "openai")
	}
	instance, err := factory(nil)
	if err != nil {
		return nil, err
	}
	return instance.(stt.STT), nil
}

func buildLLM() (llm.LLM, error) {
	factory, ok := plugin.Get(plugin.KindLLM, "openai")
	if !ok {
		return nil, fmt.Errorf("llm provider %q is not registered", "openai")
	}
	instance, err := factory(nil)
	if err != nil {
		return nil, err
	}
	return instance.(llm.LLM), nil
}

func buildTTS(name, apiKey string) (tts.TTS, error) {
	factory, ok := plugin.Get(plugin.KindTTS, name)
	if !ok {
		return nil, fmt.Errorf("tts provider %q is not registered", name)
	}
	instance, err := factory(map[string]any{"api_key": apiKey})
	if err != nil {
		return nil, err
	}
	return instance.(tts.TTS), nil
}

func init() {
	submitCmd.Flags().String("file", "", "Path to the recorded WAV file")
	submitCmd.Flags().String("model", "gpt-4o-mini", "Chat model (gpt-4o-mini, gpt-4.1-mini, gpt-3.5-turbo)")
	submitCmd.Flags().String("key", "", "OpenAI API key")
	submitCmd.Flags().Bool("speak", false, "Also synthesize the answer")
	submitCmd.Flags().String("out", "answer.mp3", "Output path for synthesized audio")
	submitCmd.Flags().String("tts", "gtts", "TTS provider (gtts, openai)")
	submitCmd.Flags().String("lang", "ko", "Synthesis language code")
	submitCmd.MarkFlagRequired("file")
	submitCmd.MarkFlagRequired("key")

	synthesizeCmd.Flags().String("text", "", "Text to synthesize")
	synthesizeCmd.Flags().String("lang", "ko", "Synthesis language code")
	synthesizeCmd.Flags().String("out", "answer.mp3", "Output path for synthesized audio")
	synthesizeCmd.Flags().String("tts", "gtts", "TTS provider (gtts, openai)")
	synthesizeCmd.Flags().String("key", "", "API key (openai TTS only)")
	synthesizeCmd.MarkFlagRequired("text")

	serveCmd.Flags().String("addr", ":8090", "Listen address for the shell")
	serveCmd.Flags().String("tts", "gtts", "TTS provider (gtts, openai)")
	serveCmd.Flags().String("key", "", "API key (openai TTS only)")
	serveCmd.Flags().String("lang", "ko", "Synthesis language code")

	rootCmd.AddCommand(versionCmd, submitCmd, synthesizeCmd, serveCmd, providersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
