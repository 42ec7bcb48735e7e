// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Item: {
	name:   string & !=""
	count?: int & >=0
}
`

type testItem struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	result, err := ParseAndDecode[testItem]([]byte(testSchema), []byte(`name: "curl"
count: 2`), "#Item", WithFilename("item.cue"))
	if err != nil {
		t.Fatalf("ParseAndDecode() error = %v", err)
	}
	if result.Value.Name != "curl" || result.Value.Count != 2 {
		t.Errorf("decoded %+v", *result.Value)
	}
}

func TestUnify_FromGo(t *testing.T) {
	t.Parallel()

	t.Run("valid map", func(t *testing.T) {
		t.Parallel()

		raw := map[string]any{"name": "git", "count": int64(1)}
		if _, err := Unify([]byte(testSchema), "#Item", FromGo(raw)); err != nil {
			t.Fatalf("Unify() error = %v", err)
		}
	})

	t.Run("closed definition rejects unknown fields", func(t *testing.T) {
		t.Parallel()

		raw := map[string]any{"name": "git", "colour": "blue"}
		_, err := Unify([]byte(testSchema), "#Item", FromGo(raw), WithFilename("devfile.yaml"))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *ValidationError, got %v", err)
		}
		if verr.FilePath != "devfile.yaml" {
			t.Errorf("FilePath = %q", verr.FilePath)
		}
		if !strings.Contains(err.Error(), "colour") {
			t.Errorf("error should name the unknown field, got %v", err)
		}
	})

	t.Run("constraint violation reports path", func(t *testing.T) {
		t.Parallel()

		raw := map[string]any{"name": "git", "count": int64(-1)}
		_, err := Unify([]byte(testSchema), "#Item", FromGo(raw))
		if err == nil || !strings.Contains(err.Error(), "count") {
			t.Fatalf("expected error on count, got %v", err)
		}
	})
}

func TestUnify_FileSizeLimit(t *testing.T) {
	t.Parallel()

	_, err := Unify([]byte(testSchema), "#Item", FromBytes([]byte(`name: "a-long-name"`)), WithMaxFileSize(4))
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestUnify_MissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := Unify([]byte(testSchema), "#Missing", FromBytes([]byte(`name: "x"`)))
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Fatalf("expected internal error, got %v", err)
	}
}
