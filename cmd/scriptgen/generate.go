package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/scriptgen/internal/ai"
	"github.com/thywilljoshua/scriptgen/internal/config"
	"github.com/thywilljoshua/scriptgen/internal/document"
	"github.com/thywilljoshua/scriptgen/internal/export"
	"github.com/thywilljoshua/scriptgen/internal/failure"
	"github.com/thywilljoshua/scriptgen/internal/generate"
	"github.com/thywilljoshua/scriptgen/internal/script"
)

type generateSummary struct {
	Document string           `json:"document"`
	Scenes   int              `json:"scenes"`
	Words    int              `json:"words"`
	Duration *script.Duration `json:"estimated_duration,omitempty"`
	Export   string           `json:"export"`
	Script   string           `json:"script_json,omitempty"`
}

func generateCmd(opts *rootOptions) *cobra.Command {
	var name string
	var out string
	var format string
	var model string
	var language string
	var tone string
	var replay string
	var saveScript string

	cmd := &cobra.Command{
		Use:   "generate <document>",
		Short: "Generate a narration script from a PDF/DOC/DOCX document and export it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			overrideString(cmd, "model", &cfg.Gemini.Model, model)
			overrideString(cmd, "language", &cfg.Script.Language, language)
			overrideString(cmd, "tone", &cfg.Script.Tone, tone)
			overrideString(cmd, "format", &cfg.Export.Format, format)
			overrideString(cmd, "out", &cfg.Export.Dir, out)

			renderer, err := export.ForFormat(cfg.Export.Format)
			if err != nil {
				return err
			}
			delegate, err := newDelegate(cmd.Context(), cfg, replay)
			if err != nil {
				return err
			}

			doc, err := document.FromFile(args[0])
			if err != nil {
				return err
			}
			session := generate.NewSession(generate.New(generate.Config{
				Delegate: delegate,
				Builder:  ai.Builder{Language: cfg.Script.Language, Tone: cfg.Script.Tone},
				Logger:   slog.Default(),
			}))
			session.SetName(name)
			if err := session.SetDocument(doc); err != nil {
				return userFacing(err)
			}

			in := bufio.NewReader(cmd.InOrStdin())
			for {
				res, err := session.Generate(cmd.Context())
				if err != nil {
					return userFacing(err)
				}
				f, failed := res.Failure()
				if !failed {
					break
				}
				fmt.Fprintln(cmd.ErrOrStderr(), f.Message)
				if !f.Retryable() || !confirm(cmd, in, "Coba lagi sekarang? [y/N] ") {
					return f
				}
			}

			scenes := session.State().Script
			data, err := export.Render(renderer, scenes, name)
			if err != nil {
				return err
			}
			w, err := export.NewWriter(cfg.Export.Dir)
			if err != nil {
				return err
			}
			path, err := w.Write(name, data, renderer.Extension())
			if err != nil {
				return err
			}

			sum := generateSummary{Document: doc.Name, Scenes: len(scenes), Words: script.WordCount(scenes), Export: path}
			if d, ok := session.Estimate(); ok {
				sum.Duration = &d
			}
			if saveScript != "" {
				if err := script.Save(scenes, saveScript); err != nil {
					return err
				}
				sum.Script = saveScript
			}
			b, _ := json.MarshalIndent(sum, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "teacher name used in the opening greeting and export filename")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory for the export (default: current directory)")
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "export format: pdf|xlsx|json")
	cmd.Flags().StringVar(&model, "model", "", "Gemini model (default from config)")
	cmd.Flags().StringVar(&language, "language", "", "narration language (default Bahasa Indonesia)")
	cmd.Flags().StringVar(&tone, "tone", "", "narration tone")
	cmd.Flags().StringVar(&replay, "replay", "", "use a saved model response file instead of calling Gemini")
	cmd.Flags().StringVar(&saveScript, "save-script", "", "also write the script as JSON to this path")
	return cmd
}

func newDelegate(ctx context.Context, cfg config.Config, replay string) (ai.Delegate, error) {
	if replay != "" {
		return ai.Replay{Path: replay}, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return ai.NewGemini(ctx, ai.GeminiConfig{
		APIKey:      cfg.Gemini.APIKey,
		Model:       cfg.Gemini.Model,
		Temperature: cfg.Gemini.Temperature,
		Timeout:     cfg.Gemini.Timeout,
		BaseURL:     cfg.Gemini.BaseURL,
	}, slog.Default())
}

// overrideString applies a flag value only when the flag was set explicitly.
func overrideString(cmd *cobra.Command, flag string, dst *string, v string) {
	if cmd.Flags().Changed(flag) {
		*dst = v
	}
}

// userFacing prefers the localized message of a classified failure.
func userFacing(err error) error {
	if f, ok := failure.As(err); ok {
		return fmt.Errorf("%s (%s)", f.Message, f.Category)
	}
	if errors.Is(err, generate.ErrNoDocument) {
		return fmt.Errorf("%s", failure.MsgNoDocument)
	}
	return err
}

func confirm(cmd *cobra.Command, in *bufio.Reader, prompt string) bool {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "ya", "yes":
		return true
	}
	return false
}
