package register

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultJSON(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		result   Result
		expected string
	}{
		{result: Skipped, expected: `false`},
		{result: Finished, expected: `"Finished."`},
		{result: FinishedUnnotified, expected: `"Finished, but failed to notify to the slack channel."`},
	} {
		tc := tc
		t.Run(tc.result.String(), func(t *testing.T) {
			t.Parallel()

			b, err := jsoniter.Marshal(tc.result)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(b))
		})
	}
}
