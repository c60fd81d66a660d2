package cache

import "testing"

// TestSafe はsafe関数がRedisキーで問題となる文字を可逆にエスケープすることを検証します。
func TestSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"hello-world", "hello-world"},
		{"hello world", "hello+world"},
		{"key:value", "key%3Avalue"},
		{"a_b", "a_b"},
		{"a+b", "a%2Bb"},
		{"100%", "100%25"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			result := safe(tt.input)
			if result != tt.expected {
				t.Errorf("safe(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestKey はkey関数が名前空間と各要素をコロンで連結することを検証します。
func TestKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		namespace string
		parts     []string
		expected  string
	}{
		{"namespace only", "posts", nil, "posts"},
		{"single part", "posts", []string{"slug"}, "posts:slug"},
		{"parts are escaped", "posts", []string{"slug", "a:b c"}, "posts:slug:a%3Ab+c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := key(tt.namespace, tt.parts...); got != tt.expected {
				t.Errorf("key(%q, %v) = %q, expected %q", tt.namespace, tt.parts, got, tt.expected)
			}
		})
	}
}

// TestSafe_DistinctInputsDistinctKeys は見た目の近いスラッグが同じキーに潰れないことを検証します。
func TestSafe_DistinctInputsDistinctKeys(t *testing.T) {
	t.Parallel()

	inputs := []string{"a_b", "a:b", "a b", "a+b", "a%3Ab", "a%20b"}
	seen := map[string]string{}
	for _, in := range inputs {
		k := key("posts", "slug", in)
		if prev, ok := seen[k]; ok {
			t.Errorf("key collision: %q and %q both map to %q", prev, in, k)
		}
		seen[k] = in
	}
}
