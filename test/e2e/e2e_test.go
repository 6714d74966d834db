package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../../main.go"}, args...)...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

type diffSummary struct {
	Identical bool `json:"identical"`
	Summary   struct {
		Added   int `json:"added"`
		Removed int `json:"removed"`
		Updated int `json:"updated"`
		Moved   int `json:"moved"`
	} `json:"summary"`
}

// TestEndToEnd_TransactionListDiff compares a list of transactions against a
// reordered, partially edited copy
func TestEndToEnd_TransactionListDiff(t *testing.T) {
	tempDir := t.TempDir()
	rng := rand.New(rand.NewSource(7))

	const count = 200
	left := make([]map[string]any, count)
	for i := range left {
		left[i] = map[string]any{
			"id":     fmt.Sprintf("tx-%03d", i),
			"height": 1000 + i,
			"fee":    map[string]any{"amount": fmt.Sprint(rng.Intn(10000)), "denom": "ubze"},
		}
	}

	var right []map[string]any
	removed, updated := 0, 0
	for i, tx := range left {
		if i%10 == 0 {
			removed++
			continue
		}
		copied := map[string]any{"id": tx["id"], "height": tx["height"], "fee": tx["fee"]}
		if i%7 == 0 {
			copied["height"] = tx["height"].(int) + 1
			updated++
		}
		right = append(right, copied)
	}
	added := 5
	for i := 0; i < added; i++ {
		right = append(right, map[string]any{"id": fmt.Sprintf("new-%d", i), "height": 5000 + i})
	}
	rng.Shuffle(len(right), func(i, j int) { right[i], right[j] = right[j], right[i] })

	leftFile := filepath.Join(tempDir, "left.json")
	rightFile := filepath.Join(tempDir, "right.json")
	writeJSON(t, leftFile, left)
	writeJSON(t, rightFile, right)

	stdout, stderr, err := runCLI(t, "", "diff", leftFile, rightFile, "-o", "json")
	require.NoError(t, err, "CLI command failed: %s", stderr)

	var result diffSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.False(t, result.Identical)
	assert.Equal(t, added, result.Summary.Added)
	assert.Equal(t, removed, result.Summary.Removed)
	assert.Equal(t, updated, result.Summary.Updated)
	assert.Greater(t, result.Summary.Moved, 0)

	// Sorting keys first does not hide real changes, and a document compared
	// with itself is identical.
	stdout, stderr, err = runCLI(t, "", "--sort-keys", "diff", rightFile, rightFile, "-o", "json")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.True(t, result.Identical)
}

// TestEndToEnd_AnalyzeGeneratedDocument checks that every planted coin is
// found in a nested document
func TestEndToEnd_AnalyzeGeneratedDocument(t *testing.T) {
	tempDir := t.TempDir()

	var plant func(depth, width int) (map[string]any, int)
	plant = func(depth, width int) (map[string]any, int) {
		if depth == 0 {
			return map[string]any{
				"balance": "1000000ustake",
				"note":    "plain text",
				"count":   3,
			}, 1
		}
		node := make(map[string]any, width)
		total := 0
		for i := 0; i < width; i++ {
			child, n := plant(depth-1, width)
			node[fmt.Sprintf("child_%d", i)] = child
			total += n
		}
		return node, total
	}
	doc, planted := plant(4, 3)
	doc["raw_log"] = `[{"events":[{"amount":"5","denom":"uatom"}]}]`
	planted++

	jsonFile := filepath.Join(tempDir, "nested.json")
	writeJSON(t, jsonFile, doc)

	stdout, stderr, err := runCLI(t, "", "analyze", jsonFile, "-o", "json")
	require.NoError(t, err, "CLI command failed: %s", stderr)

	var result struct {
		MaxDepth int `json:"maxDepth"`
		Markers  []struct {
			Type     string  `json:"type"`
			Fraction float64 `json:"fraction"`
		} `json:"markers"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Len(t, result.Markers, planted)
	assert.Equal(t, 4, result.MaxDepth)

	previous := 0.0
	for _, m := range result.Markers {
		assert.Equal(t, "coin", m.Type)
		assert.Greater(t, m.Fraction, previous)
		assert.LessOrEqual(t, m.Fraction, 1.0)
		previous = m.Fraction
	}
}

// TestEndToEnd_EdgeCases tests various edge cases
func TestEndToEnd_EdgeCases(t *testing.T) {
	testCases := []struct {
		name     string
		json     string
		expected string
		isError  bool
	}{
		{
			name:     "EmptyObject",
			json:     `{}`,
			expected: "No coins or labels found (2 lines, max depth 0)",
		},
		{
			name:     "EmptyArray",
			json:     `[]`,
			expected: "No coins or labels found (2 lines, max depth 0)",
		},
		{
			name:     "SingleCoinString",
			json:     `"100ustake"`,
			expected: "1 markers, 1 interesting paths, 0 ancestors, 1 lines, max depth 0",
		},
		{
			name:     "SingleNumber",
			json:     `42`,
			expected: "No coins or labels found (1 lines, max depth 0)",
		},
		{
			name:     "SingleNull",
			json:     `null`,
			expected: "No coins or labels found (1 lines, max depth 0)",
		},
		{
			name:     "UppercaseDenomIsNotACoin",
			json:     `["100USTAKE"]`,
			expected: "No coins or labels found",
		},
		{
			name:     "CoinObjectWithExtraKey",
			json:     `{"amount": "1", "denom": "ubze", "extra": true}`,
			expected: "No coins or labels found",
		},
		{
			name:     "BrokenStringifiedJSON",
			json:     `{"raw_log": "[{\"amount\":\"1\",\"denom\":"}`,
			expected: "No coins or labels found",
		},
		{
			name:     "DeeplyNestedArray",
			json:     `[[[[[["7uatom"]]]]]]`,
			expected: "5 ancestors, 13 lines, max depth 5",
		},
		{
			name:    "InvalidJSON",
			json:    `{"name": "Invalid JSON",}`,
			isError: true,
		},
		{
			name:    "MultipleDocuments",
			json:    `{} {}`,
			isError: true,
		},
		{
			name:    "EmptyInput",
			json:    ``,
			isError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, tc.json, "--no-color", "analyze")

			if tc.isError {
				assert.Error(t, err, "Expected an error for %s", tc.name)
				assert.NotEmpty(t, stderr)
				return
			}
			assert.NoError(t, err, "Unexpected error for %s: %s", tc.name, stderr)
			assert.Contains(t, stdout, tc.expected, "Expected output not found for %s", tc.name)
		})
	}
}
