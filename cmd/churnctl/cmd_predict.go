package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/liamcoop/churn/adapter"
	"github.com/liamcoop/churn/catalog"
	"github.com/liamcoop/churn/validation"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func runPredict(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")

	raw, err := readRecord(cmd.InOrStdin(), file)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newServices(cfg)
	if err != nil {
		return err
	}

	rec, err := svc.validator.Validate(raw)
	if err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			for _, v := range verr.Violations {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠️ %s\n", v)
			}
			return fmt.Errorf("validation failed with %d violation(s)", len(verr.Violations))
		}
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := adapter.NewStructured(svc.predictor).Predict(ctx, rec)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// readRecord decodes one record. JSON is valid YAML, so one decoder covers both.
func readRecord(stdin io.Reader, file string) (map[string]any, error) {
	if file == "" {
		return catalog.Churn.Example(), nil
	}

	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("record is empty")
	}
	return raw, nil
}
