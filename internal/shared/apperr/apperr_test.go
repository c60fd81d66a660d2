package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestKindOf はエラーチェーンから種別が正しく取り出されることを検証します。
func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad input"), KindValidation},
		{"unauthenticated", Unauthenticated("no token"), KindUnauthenticated},
		{"forbidden", Forbidden("nope"), KindForbidden},
		{"not found", NotFound("missing"), KindNotFound},
		{"conflict", Conflict("dup"), KindConflict},
		{"wrapped", fmt.Errorf("load post: %w", NotFound("missing")), KindNotFound},
		{"plain error", errors.New("boom"), KindInternal},
		{"nil", nil, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

// TestError_Unwrap は原因エラーがメッセージとUnwrapの両方に反映されることを検証します。
func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("duplicate key")
	err := &Error{Kind: KindConflict, Message: "Slug already exists", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Slug already exists: duplicate key", err.Error())
	assert.Equal(t, "conflict", err.Kind.String())
}
