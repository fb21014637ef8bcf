package directory

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adnanprojects/userdir/pkg/errors"
)

func seedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	s.Create(map[string]interface{}{"name": "adnan", "age": 26})
	s.Create(map[string]interface{}{"name": "kashan", "age": 25})
	s.Create(map[string]interface{}{"name": "arisha", "age": 23})
	s.Create(map[string]interface{}{"name": "zaid", "age": 19})
	return s
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	t.Run("EmptyStoreStartsAtOne", func(t *testing.T) {
		s := NewStore()
		u := s.Create(map[string]interface{}{"name": "adnan"})
		assert.Equal(t, 1, u.ID)
	})

	t.Run("SequentialAssignment", func(t *testing.T) {
		s := seedStore(t)
		u := s.Create(map[string]interface{}{"name": "noor"})
		assert.Equal(t, 5, u.ID)
	})

	t.Run("ClientSuppliedIDIsIgnored", func(t *testing.T) {
		s := NewStore()
		u := s.Create(map[string]interface{}{"id": 99, "name": "adnan"})
		assert.Equal(t, 1, u.ID)
		_, hasID := u.Attribute("id")
		assert.False(t, hasID)
	})
}

func TestDeletedIDsAreNeverReused(t *testing.T) {
	s := seedStore(t)

	_, err := s.Delete(4)
	require.NoError(t, err)

	u := s.Create(map[string]interface{}{"name": "noor"})
	assert.Equal(t, 5, u.ID)

	// The remaining records keep their ids.
	ids := make([]int, 0)
	for _, u := range s.List(nil) {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 5}, ids)
}

func TestFindByID(t *testing.T) {
	s := seedStore(t)

	t.Run("Found", func(t *testing.T) {
		u, err := s.FindByID(2)
		require.NoError(t, err)
		name, _ := u.Attribute("name")
		assert.Equal(t, "kashan", name)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := s.FindByID(42)
		assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
	})
}

func TestIndexByID(t *testing.T) {
	s := seedStore(t)

	i, err := s.IndexByID(3)
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	_, err = s.IndexByID(42)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestReplaceKeepsOnlyID(t *testing.T) {
	s := seedStore(t)

	u, err := s.Replace(2, map[string]interface{}{"name": "X"})
	require.NoError(t, err)

	assert.Equal(t, 2, u.ID)
	name, _ := u.Attribute("name")
	assert.Equal(t, "X", name)

	// The previous age attribute is gone after a full replace.
	_, hasAge := u.Attribute("age")
	assert.False(t, hasAge)
}

func TestMergePreservesOtherAttributes(t *testing.T) {
	s := seedStore(t)

	u, err := s.Merge(2, map[string]interface{}{"name": "X"})
	require.NoError(t, err)

	assert.Equal(t, 2, u.ID)
	name, _ := u.Attribute("name")
	assert.Equal(t, "X", name)
	age, hasAge := u.Attribute("age")
	assert.True(t, hasAge)
	assert.Equal(t, 25, age)
}

func TestReplaceMergeDeleteNotFound(t *testing.T) {
	s := seedStore(t)

	_, err := s.Replace(42, map[string]interface{}{"name": "X"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	_, err = s.Merge(42, map[string]interface{}{"name": "X"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	_, err = s.Delete(42)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestListPreservesInsertionOrder(t *testing.T) {
	s := seedStore(t)

	names := make([]string, 0)
	for _, u := range s.List(nil) {
		name, _ := u.AttributeString("name")
		names = append(names, name)
	}
	assert.Equal(t, []string{"adnan", "kashan", "arisha", "zaid"}, names)
}

func TestLastOnEmptyStore(t *testing.T) {
	s := NewStore()

	_, err := s.Last()
	assert.True(t, errors.IsCode(err, errors.ErrCodeEmptyStore))

	// Creating into the empty store still works and starts at 1.
	u := s.Create(map[string]interface{}{"name": "adnan"})
	assert.Equal(t, 1, u.ID)

	last, err := s.Last()
	require.NoError(t, err)
	assert.Equal(t, 1, last.ID)
}

func TestConcurrentCreatesNeverCollide(t *testing.T) {
	s := NewStore()
	const n = 100

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Create(map[string]interface{}{"name": fmt.Sprintf("user-%d", i)})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, s.Len())

	seen := make(map[int]bool)
	for _, u := range s.List(nil) {
		assert.False(t, seen[u.ID], "duplicate id %d", u.ID)
		seen[u.ID] = true
	}
}

func TestParseID(t *testing.T) {
	t.Run("WellFormed", func(t *testing.T) {
		id, err := ParseID("17")
		require.NoError(t, err)
		assert.Equal(t, 17, id)
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, raw := range []string{"abc", "1.5", "", "12abc"} {
			_, err := ParseID(raw)
			assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest), "input %q", raw)
		}
	})
}

func TestUserJSONRoundTrip(t *testing.T) {
	u := &User{ID: 2, Attributes: map[string]interface{}{"name": "zaid", "age": 19}}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, float64(2), flat["id"])
	assert.Equal(t, "zaid", flat["name"])

	var back User
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, 2, back.ID)
	name, _ := back.Attribute("name")
	assert.Equal(t, "zaid", name)
	_, hasID := back.Attribute("id")
	assert.False(t, hasID)
}
