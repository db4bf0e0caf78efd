package idx_test

import (
	"testing"
	"time"

	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewProducesValidIDs(t *testing.T) {
	a := idx.New()
	b := idx.New()

	require.False(t, a.IsZero())
	require.False(t, b.IsZero())
	require.NotEqual(t, a, b)

	parsed, err := idx.Parse(a.String())
	require.NoError(t, err)
	require.Equal(t, a, parsed)
}

func TestNewAtEmbedsTimestamp(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := idx.NewAt(at)

	require.WithinDuration(t, at, id.Time(), time.Millisecond)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "not-a-ulid", "0000"} {
		_, err := idx.Parse(in)
		require.ErrorIs(t, err, idx.ErrInvalid)
	}
}

func TestIDsAreSortedByTime(t *testing.T) {
	early := idx.NewAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	late := idx.NewAt(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))

	require.Less(t, early.String(), late.String())
}
