package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewProducesValidULIDs(t *testing.T) {
	t.Parallel()

	seen := make(map[ID]struct{})
	for range 100 {
		id := New()
		require.False(t, id.IsZero())

		_, err := Parse(id.String())
		require.NoError(t, err)

		_, dup := seen[id]
		require.False(t, dup, "ids must be unique")
		seen[id] = struct{}{}
	}
}

func TestNewAtEmbedsTimestamp(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	id := NewAt(at)
	require.Equal(t, at.UnixMilli(), id.Time().UnixMilli())
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "   ", "not-a-ulid", "0000"} {
		_, err := Parse(s)
		require.ErrorIs(t, err, ErrInvalid)
	}
}

func TestIDsSortByTime(t *testing.T) {
	t.Parallel()

	a := NewAt(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC))
	b := NewAt(time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC))
	require.Less(t, a.String(), b.String())
}
