package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const artifactPath = "../../models/churn_logistic.json"

const highRiskYAML = `gender: Female
SeniorCitizen: 1
Partner: "No"
Dependents: "No"
tenure: 1
PhoneService: "Yes"
MultipleLines: "No"
InternetService: Fiber optic
OnlineSecurity: "No"
OnlineBackup: "No"
DeviceProtection: "No"
TechSupport: "No"
StreamingTV: "Yes"
StreamingMovies: "Yes"
Contract: Month-to-month
PaperlessBilling: "Yes"
PaymentMethod: Electronic check
MonthlyCharges: 105.65
TotalCharges: 105.65
`

// execute runs the root command with args and returns stdout and stderr
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CHURN_CONFIG", "")
	t.Setenv("MODEL_URI", "")

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReadRecord(t *testing.T) {
	jsonBody := `{"gender": "Male", "tenure": 12, "MonthlyCharges": 70.5}`

	testCases := []struct {
		name    string
		file    string
		stdin   string
		check   func(t *testing.T, raw map[string]any)
		wantErr string
	}{
		{
			name: "yaml file",
			file: writeFile(t, "c.yaml", highRiskYAML),
			check: func(t *testing.T, raw map[string]any) {
				assert.Equal(t, "No", raw["Partner"])
				assert.Equal(t, 1, raw["tenure"])
				assert.Equal(t, 105.65, raw["MonthlyCharges"])
			},
		},
		{
			name: "json file",
			file: writeFile(t, "c.json", jsonBody),
			check: func(t *testing.T, raw map[string]any) {
				assert.Equal(t, "Male", raw["gender"])
				assert.Equal(t, 12, raw["tenure"])
			},
		},
		{
			name:  "stdin",
			file:  "-",
			stdin: jsonBody,
			check: func(t *testing.T, raw map[string]any) {
				assert.Equal(t, 70.5, raw["MonthlyCharges"])
			},
		},
		{
			name: "default example",
			check: func(t *testing.T, raw map[string]any) {
				assert.Len(t, raw, 19)
			},
		},
		{name: "empty file", file: writeFile(t, "empty.yaml", ""), wantErr: "record is empty"},
		{name: "missing file", file: filepath.Join(t.TempDir(), "nope.yaml"), wantErr: "failed to read record"},
		{name: "not a mapping", file: writeFile(t, "list.yaml", "- 1\n- 2\n"), wantErr: "failed to parse record"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := readRecord(strings.NewReader(tc.stdin), tc.file)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, raw)
		})
	}
}

func TestPredictCommand(t *testing.T) {
	path := writeFile(t, "customer.yaml", highRiskYAML)

	out, _, err := execute(t, "", "predict", "--model", artifactPath, "--file", path)
	require.NoError(t, err)

	var resp struct {
		IsChurner        bool    `json:"is_churner"`
		ChurnProbability float64 `json:"churn_probability"`
		RiskLevel        string  `json:"risk_level"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	assert.True(t, resp.IsChurner)
	assert.Equal(t, "High", resp.RiskLevel)
	assert.Greater(t, resp.ChurnProbability, 0.5)
}

func TestPredictCommandRejectsInvalidRecord(t *testing.T) {
	body := strings.Replace(highRiskYAML, "TotalCharges: 105.65", "TotalCharges: 50", 1)
	body = strings.Replace(body, "MonthlyCharges: 105.65", "MonthlyCharges: 100", 1)

	_, stderr, err := execute(t, body, "predict", "--model", artifactPath, "--file", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, stderr, "TotalCharges (50) cannot be less than MonthlyCharges (100).")
}

func TestPredictCommandBadModel(t *testing.T) {
	_, _, err := execute(t, "", "predict", "--model", "ftp://models/churn", "--file", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported model uri scheme")
}

func TestCatalogCommand(t *testing.T) {
	out, _, err := execute(t, "", "catalog", "--json=false")
	require.NoError(t, err)
	for _, want := range []string{"NAME", "gender", "numeric-range", "a number > 0", "Electronic check"} {
		assert.Contains(t, out, want)
	}

	out, _, err = execute(t, "", "catalog", "--json")
	require.NoError(t, err)

	var fields []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	require.Len(t, fields, 19)
	assert.Equal(t, "TotalCharges", fields[18]["name"])
}
