package groups

import (
	"testing"

	"github.com/ginjaninja78/passwd2json/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordSet(usernames ...string) *types.RecordSet {
	set := types.NewRecordSet()
	for _, username := range usernames {
		set.Put(types.AccountRecord{Username: username, Groups: []string{}})
	}
	return set
}

func groupsOf(t *testing.T, set *types.RecordSet, username string) []string {
	t.Helper()
	record, ok := set.Get(username)
	require.True(t, ok, "missing %s", username)
	return record.Groups
}

func TestMergeRootDaemon(t *testing.T) {
	merged, stats := Merge(recordSet("root"), []string{"daemon:x:2:root,bin"})

	assert.Equal(t, []string{"daemon"}, groupsOf(t, merged, "root"))
	assert.Equal(t, MergeStats{Lines: 1, Memberships: 1, UnknownMembers: 1}, stats)
}

func TestMergeEmptyMemberField(t *testing.T) {
	merged, stats := Merge(recordSet("alice"), []string{"wheel:x:1:"})

	assert.Empty(t, groupsOf(t, merged, "alice"))
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 1, stats.UnknownMembers)
}

func TestMergeSkipsLinesWithoutMemberList(t *testing.T) {
	merged, stats := Merge(recordSet("alice"), []string{
		"nogroup:x:65534",
		"",
		"users:x:100:alice",
	})

	assert.Equal(t, []string{"users"}, groupsOf(t, merged, "alice"))
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 1, stats.Memberships)
}

func TestMergePreservesFileOrder(t *testing.T) {
	merged, _ := Merge(recordSet("alice", "bob"), []string{
		"wheel:x:10:bob,alice",
		"audio:x:11:alice",
		"video:x:12:alice,bob",
		"extra:x:13:alice:trailing",
	})

	assert.Equal(t, []string{"wheel", "audio", "video", "extra"}, groupsOf(t, merged, "alice"))
	assert.Equal(t, []string{"wheel", "video"}, groupsOf(t, merged, "bob"))
}

func TestMergeDuplicateMemberOnOneLine(t *testing.T) {
	merged, stats := Merge(recordSet("alice"), []string{"wheel:x:10:alice,alice"})

	assert.Equal(t, []string{"wheel"}, groupsOf(t, merged, "alice"))
	assert.Equal(t, 1, stats.Memberships)
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	input := recordSet("alice")

	merged, _ := Merge(input, []string{"wheel:x:10:alice"})

	assert.Empty(t, groupsOf(t, input, "alice"))
	assert.Equal(t, []string{"wheel"}, groupsOf(t, merged, "alice"))
}

func TestMergeUnknownMembersIgnored(t *testing.T) {
	merged, stats := Merge(recordSet("alice"), []string{"wheel:x:10:ghost,phantom"})

	assert.Empty(t, groupsOf(t, merged, "alice"))
	assert.Equal(t, 2, stats.UnknownMembers)
	assert.Equal(t, 1, merged.Len())
}
