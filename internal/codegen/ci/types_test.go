package ci

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectImpl(t *testing.T) {
	tests := []struct {
		input    string
		expected ObjectImpl
	}{
		{input: "", expected: ObjectImplStruct},
		{input: "struct", expected: ObjectImplStruct},
		{input: "Trait", expected: ObjectImplTrait},
		{input: "callback_trait", expected: ObjectImplCallbackTrait},
		{input: "with_foreign", expected: ObjectImplCallbackTrait},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			imp, err := ParseObjectImpl(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, imp)
		})
	}
}

func TestParseExternalKind(t *testing.T) {
	tests := []struct {
		input    string
		expected ExternalKind
	}{
		{input: "", expected: ExternalKindDataClass},
		{input: "record", expected: ExternalKindDataClass},
		{input: "enum", expected: ExternalKindDataClass},
		{input: "Object", expected: ExternalKindInterface},
		{input: "interface", expected: ExternalKindInterface},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, err := ParseExternalKind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestParseKindErrorsCarryStack(t *testing.T) {
	_, err := ParseObjectImpl("singleton")
	require.Error(t, err)
	assert.Equal(t, `unknown object implementation "singleton"`, err.Error())
	assert.NotNil(t, errors.GetReportableStackTrace(err))

	_, err = ParseExternalKind("union")
	require.Error(t, err)
	assert.Equal(t, `unknown external kind "union"`, err.Error())
	assert.NotNil(t, errors.GetReportableStackTrace(err))
}
