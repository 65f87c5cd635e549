package syncdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntity struct {
	key string
	fp  string
}

func (f fakeEntity) SyncKey() string     { return f.key }
func (f fakeEntity) Fingerprint() string { return f.fp }

func TestDiff(t *testing.T) {
	t.Run("Sync And Delete Sets", func(t *testing.T) {
		current := []fakeEntity{
			{key: "a", fp: "h1"},
			{key: "b", fp: "h2"},
		}
		previous := map[string]string{
			"a": "h1",
			"c": "h3",
		}

		result, err := Diff("courses", current, previous)
		require.NoError(t, err)

		// "b" is new, "c" disappeared, "a" is unchanged and appears nowhere.
		require.Len(t, result.ForSync, 1)
		assert.Equal(t, "b", result.ForSync[0].key)
		assert.Equal(t, []string{"c"}, result.ForDeletion)
	})

	t.Run("Changed Fingerprint Forces Resync", func(t *testing.T) {
		current := []fakeEntity{{key: "a", fp: "h2"}}
		previous := map[string]string{"a": "h1"}

		result, err := Diff("courses", current, previous)
		require.NoError(t, err)
		require.Len(t, result.ForSync, 1)
		assert.Empty(t, result.ForDeletion)
	})

	t.Run("Empty Metadata Syncs Everything", func(t *testing.T) {
		current := []fakeEntity{{key: "a", fp: "h1"}, {key: "b", fp: "h2"}}

		result, err := Diff("courses", current, nil)
		require.NoError(t, err)
		assert.Len(t, result.ForSync, 2)
		assert.Empty(t, result.ForDeletion)
	})

	t.Run("Duplicate Key Is Batch Error", func(t *testing.T) {
		current := []fakeEntity{{key: "a", fp: "h1"}, {key: "a", fp: "h2"}}

		result, err := Diff("courses", current, nil)
		assert.Nil(t, result)

		var dup *DuplicateKeyError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "courses", dup.Collection)
		assert.Equal(t, "a", dup.Key)
	})

	t.Run("Idempotent", func(t *testing.T) {
		current := []fakeEntity{{key: "a", fp: "h1"}, {key: "b", fp: "h2"}}
		previous := map[string]string{"a": "h1", "c": "h3"}

		first, err := Diff("courses", current, previous)
		require.NoError(t, err)
		second, err := Diff("courses", current, previous)
		require.NoError(t, err)

		assert.ElementsMatch(t, first.ForSync, second.ForSync)
		assert.ElementsMatch(t, first.ForDeletion, second.ForDeletion)
	})
}
