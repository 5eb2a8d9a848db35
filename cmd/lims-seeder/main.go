package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lims/lims/internal/config"
	"github.com/lims/lims/internal/pipeline"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lims-seeder",
		Short: "Synthetic laboratory-data generator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate()
		},
	}

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(verifyCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate a verified synthetic corpus and write the output documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate()
		},
	}
}

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Re-run the integrity verifier over previously written documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			catalogPath, _ := cmd.Flags().GetString("catalog")
			logger := newLogger()

			res, err := pipeline.VerifyDocuments(dir, catalogPath)
			if err != nil {
				logger.Error().Err(err).Msg("verification failed to run")
				return err
			}
			for _, w := range res.Warnings {
				logger.Warn().Msg(w)
			}
			if !res.Valid {
				for i, e := range res.Errors {
					if i == 10 {
						logger.Error().Msgf("+%d more", len(res.Errors)-10)
						break
					}
					logger.Error().Msg(e)
				}
				return fmt.Errorf("corpus invalid: %d errors", len(res.Errors))
			}
			logger.Info().Msg("corpus verified")
			return nil
		},
	}
	cmd.Flags().String("dir", "output", "Directory holding the generated documents")
	cmd.Flags().String("catalog", "", "Catalog path (embedded default when empty)")
	return cmd
}

func runGenerate() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		return err
	}

	if _, err := pipeline.New(cfg, logger).Run(); err != nil {
		logger.Error().Err(err).Msg("generation run failed")
		return err
	}
	return nil
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}
