package rv

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() map[string]any {
	return map[string]any{
		"model": map[string]any{"type": "RESNET50"},
		"trainer": map[string]any{
			"options": map[string]any{
				"batchSize":  8,
				"saveBest":   false,
				"classNames": []any{"a"},
			},
		},
	}
}

func TestMergeConfig(t *testing.T) {
	testCases := []struct {
		name      string
		mod       map[string]any
		opts      MergeOptions
		expected  map[string]any
		expectErr error
	}{
		{
			name: "explicit key overrides, siblings survive",
			mod:  map[string]any{"trainer": map[string]any{"options": map[string]any{"saveBest": true}}},
			expected: map[string]any{
				"model": map[string]any{"type": "RESNET50"},
				"trainer": map[string]any{
					"options": map[string]any{"batchSize": 8, "saveBest": true, "classNames": []any{"a"}},
				},
			},
		},
		{
			name: "missing key added with SetMissingKeys",
			mod:  map[string]any{"trainer": map[string]any{"options": map[string]any{"lrSchedule": []any{1}}}},
			opts: MergeOptions{SetMissingKeys: true},
			expected: map[string]any{
				"model": map[string]any{"type": "RESNET50"},
				"trainer": map[string]any{
					"options": map[string]any{"batchSize": 8, "saveBest": false, "classNames": []any{"a"}, "lrSchedule": []any{1}},
				},
			},
		},
		{
			name: "missing key dropped with IgnoreMissingKeys",
			mod:  map[string]any{"extra": 1, "model": map[string]any{"type": "X"}},
			opts: MergeOptions{IgnoreMissingKeys: true},
			expected: map[string]any{
				"model": map[string]any{"type": "X"},
				"trainer": map[string]any{
					"options": map[string]any{"batchSize": 8, "saveBest": false, "classNames": []any{"a"}},
				},
			},
		},
		{
			name:      "missing key rejected by default",
			mod:       map[string]any{"trainer": map[string]any{"options": map[string]any{"lrSchedule": []any{}}}},
			expectErr: ErrMissingConfigKey,
		},
		{
			name: "lists replace rather than merge",
			mod:  map[string]any{"trainer": map[string]any{"options": map[string]any{"classNames": []any{"b", "c"}}}},
			expected: map[string]any{
				"model": map[string]any{"type": "RESNET50"},
				"trainer": map[string]any{
					"options": map[string]any{"batchSize": 8, "saveBest": false, "classNames": []any{"b", "c"}},
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			base := baseConfig()
			got, err := MergeConfig(base, tc.mod, tc.opts)
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("MergeConfig() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, baseConfig(), base, "base must not be mutated")
		})
	}
}

func TestMergeConfig_ErrorNamesPath(t *testing.T) {
	_, err := MergeConfig(baseConfig(), map[string]any{"trainer": map[string]any{"nope": 1}}, MergeOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trainer.nope")
}

func TestMergeConfig_ResultDoesNotAliasMod(t *testing.T) {
	mod := map[string]any{"new": map[string]any{"k": []any{1}}}
	got, err := MergeConfig(nil, mod, MergeOptions{SetMissingKeys: true})
	require.NoError(t, err)

	got["new"].(map[string]any)["k"].([]any)[0] = 2
	assert.Equal(t, 1, mod["new"].(map[string]any)["k"].([]any)[0])
}

func TestSetAndGetConfigValue(t *testing.T) {
	cfg := map[string]any{"a": "scalar"}
	SetConfigValue(cfg, 3, "a", "b", "c")

	v, ok := ConfigValue(cfg, "a", "b", "c")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = ConfigValue(cfg, "a", "x")
	assert.False(t, ok)
}

func TestSetConfigValue_EmptyPathIsNoOp(t *testing.T) {
	cfg := map[string]any{"a": 1}

	require.NotPanics(t, func() { SetConfigValue(cfg, 3) })
	assert.Equal(t, map[string]any{"a": 1}, cfg)
}
