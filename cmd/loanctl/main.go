package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"loan-scorer/internal/apperrors"
	"loan-scorer/internal/dto"
	"loan-scorer/internal/features"
	"loan-scorer/internal/mlmodel"
	"loan-scorer/internal/models"
	"loan-scorer/internal/repository"
	"loan-scorer/internal/service"
	"loan-scorer/internal/upstream"
	"loan-scorer/pkg/config"
	"loan-scorer/pkg/logger"
	"loan-scorer/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		// cobra already printed the error
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "loanctl",
		Short:   "Operate the loan scorer from the command line",
		Version: version,
	}

	var format string
	root.PersistentFlags().StringVar(&format, "format", formatJSON, "Output format: json or yaml")

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the financing_requests table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd.Context(), func(cfg *config.Config, db *pgxpool.Pool, log *zap.Logger) error {
				return postgres.Migrate(cmd.Context(), db, log)
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "import",
		Short: "Fetch, score and store new requests from the import source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			return withDatabase(cmd.Context(), func(cfg *config.Config, db *pgxpool.Pool, log *zap.Logger) error {
				scorer, err := loadScorer(cfg, log)
				if err != nil {
					return err
				}
				source := upstream.NewClient(cfg.Import.SourceURL, cfg.Import.Timeout, log,
					upstream.WithMaxBodyBytes(cfg.Import.MaxBodyBytes))
				repo := repository.NewRequestRepository(db, log)
				importer := service.NewImportService(source, repo, scorer, cfg.Import.Workers, nil, log)

				resp, err := importer.Import(cmd.Context())
				if err != nil {
					return codeError(2, "import failed: %s", err)
				}
				return writeOutput(cmd.OutOrStdout(), format, resp)
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "score [file|-]",
		Short: "Score one request (JSON object) or many (JSON array) without touching the database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			scorer, err := loadScorer(cfg, log)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return codeError(3, "opening input: %s", err)
				}
				defer f.Close()
				in = f
			}
			return runScore(in, cmd.OutOrStdout(), format, scorer)
		},
	})

	return root
}

func validateFormat(format string) error {
	if format != formatJSON && format != formatYAML {
		return codeError(3, "invalid --format %q: must be json or yaml", format)
	}
	return nil
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, codeError(3, "loading config: %s", err)
	}
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		return nil, nil, codeError(3, "initializing logger: %s", err)
	}
	return cfg, logger.Get(), nil
}

func withDatabase(ctx context.Context, fn func(*config.Config, *pgxpool.Pool, *zap.Logger) error) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := postgres.NewPool(ctx, &cfg.Database, log)
	if err != nil {
		return codeError(2, "connecting to database: %s", err)
	}
	defer db.Close()

	return fn(cfg, db, log)
}

func loadScorer(cfg *config.Config, log *zap.Logger) (*service.ScoringService, error) {
	scaler, err := mlmodel.LoadScaler(cfg.Model.ScalerPath)
	if err != nil {
		return nil, codeError(3, "loading scaler: %s", err)
	}
	model, err := mlmodel.LoadClassifier(cfg.Model.ModelPath)
	if err != nil {
		return nil, codeError(3, "loading model: %s", err)
	}
	if err := mlmodel.CheckCompatible(scaler, model, features.Width); err != nil {
		return nil, codeError(3, "incompatible artifacts: %s", err)
	}
	return service.NewScoringService(scaler, model, nil, log), nil
}

// scoredRecord is one line of the score output.
type scoredRecord struct {
	RequestID *int64 `json:"RichiestaFinanziamentoID,omitempty" yaml:"RichiestaFinanziamentoID,omitempty"`
	dto.PredictResponse `yaml:",inline"`
}

// runScore reads a JSON object or array of objects from in and writes one result per record.
func runScore(in io.Reader, out io.Writer, format string, scorer *service.ScoringService) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return codeError(3, "reading input: %s", err)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return codeError(3, "parsing input: %s", err)
	}

	results := make([]scoredRecord, 0, len(records))
	for i, rec := range records {
		resp, err := scorer.Predict(rec)
		if err != nil {
			return codeError(4, "record %d: %s", i, err)
		}
		row := scoredRecord{PredictResponse: *resp}
		if id, err := models.RequestIDOf(rec); err == nil {
			row.RequestID = &id
		}
		results = append(results, row)
	}

	return writeOutput(out, format, results)
}

func decodeRecords(data []byte) ([]features.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("no input data provided: %w", apperrors.ErrInput)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if data[0] == '[' {
		var records []features.Record
		if err := dec.Decode(&records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var rec features.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	return []features.Record{rec}, nil
}

func writeOutput(w io.Writer, format string, v any) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
