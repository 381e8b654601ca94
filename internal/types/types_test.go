package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSetPutKeepsFirstPosition(t *testing.T) {
	set := NewRecordSet()

	assert.False(t, set.Put(AccountRecord{Username: "bob", UID: "1", Groups: []string{}}))
	assert.False(t, set.Put(AccountRecord{Username: "amy", UID: "2", Groups: []string{}}))
	assert.True(t, set.Put(AccountRecord{Username: "bob", UID: "3", FullName: "Bob", Groups: []string{}}))

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"bob", "amy"}, set.Usernames())

	bob, ok := set.Get("bob")
	require.True(t, ok)
	assert.Equal(t, "3", bob.UID)
	assert.Equal(t, "Bob", bob.FullName)
}

func TestRecordSetCloneIsIndependent(t *testing.T) {
	set := NewRecordSet()
	set.Put(AccountRecord{Username: "root", UID: "0", Groups: []string{}})

	clone := set.Clone()
	require.True(t, clone.AppendGroup("root", "wheel"))
	assert.False(t, clone.AppendGroup("nobody", "wheel"))

	original, _ := set.Get("root")
	merged, _ := clone.Get("root")
	assert.Empty(t, original.Groups)
	assert.Equal(t, []string{"wheel"}, merged.Groups)
}

func TestRecordSetGetReturnsCopy(t *testing.T) {
	set := NewRecordSet()
	set.Put(AccountRecord{Username: "root", Groups: []string{"a"}})

	got, _ := set.Get("root")
	got.Groups[0] = "changed"

	again, _ := set.Get("root")
	assert.Equal(t, []string{"a"}, again.Groups)
}

func TestStageErrorUnwraps(t *testing.T) {
	err := &StageError{Stage: "write output", Err: fmt.Errorf("%w: disk full", ErrOutputWrite)}

	assert.True(t, errors.Is(err, ErrOutputWrite))
	assert.Equal(t, "write output: output write failure: disk full", err.Error())
}
