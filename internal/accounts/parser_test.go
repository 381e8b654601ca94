package accounts

import (
	"errors"
	"testing"

	"github.com/ginjaninja78/passwd2json/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	records, err := Parse([]string{
		"root:x:0:0:root:/root:/bin/bash",
		"alice:x:100:100:Alice A:/home/alice:/bin/sh",
		"svc:x:0042:0042::/var/empty",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"root", "alice", "svc"}, records.Usernames())

	root, ok := records.Get("root")
	require.True(t, ok)
	assert.Equal(t, types.AccountRecord{Username: "root", UID: "0", FullName: "root", Groups: []string{}}, root)

	svc, _ := records.Get("svc")
	assert.Equal(t, "0042", svc.UID)
	assert.Equal(t, "", svc.FullName)
	assert.NotNil(t, svc.Groups)
}

func TestParseExactlyFiveFields(t *testing.T) {
	records, err := Parse([]string{"bob:x:7:7:Bob"})
	require.NoError(t, err)

	bob, ok := records.Get("bob")
	require.True(t, ok)
	assert.Equal(t, "Bob", bob.FullName)
}

func TestParseDuplicateLastWriteWins(t *testing.T) {
	records, err := Parse([]string{
		"bob:x:1:1:First Bob:/home/bob:/bin/sh",
		"amy:x:2:2:Amy:/home/amy:/bin/sh",
		"bob:x:3:3:Second Bob:/home/bob:/bin/sh",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, records.Len())
	assert.Equal(t, []string{"bob", "amy"}, records.Usernames())

	bob, _ := records.Get("bob")
	assert.Equal(t, "3", bob.UID)
	assert.Equal(t, "Second Bob", bob.FullName)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		line   int
		fields int
	}{
		{"too few fields", []string{"root:x:0:0:root:/root:/bin/bash", "broken:x:1"}, 2, 3},
		{"empty line", []string{""}, 1, 1},
		{"four fields", []string{"a:b:c:d"}, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse(tt.lines)

			require.Error(t, err)
			assert.Nil(t, records)
			assert.ErrorIs(t, err, types.ErrMalformedRecord)

			var malformed *MalformedRecordError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.line, malformed.Line)
			assert.Equal(t, tt.fields, malformed.Fields)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	records, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, records.Len())
}

func TestParseRejectsInvalidUTF8Username(t *testing.T) {
	records, err := Parse([]string{
		"a\xff:x:1:1:First:/home/a:/bin/sh",
		"a\xfe:x:2:2:Second:/home/a:/bin/sh",
	})

	require.Error(t, err)
	assert.Nil(t, records)
	assert.ErrorIs(t, err, types.ErrMalformedRecord)
	assert.Contains(t, err.Error(), "not valid UTF-8")

	var malformed *MalformedRecordError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 1, malformed.Line)
}

func TestParseAcceptsUTF8Usernames(t *testing.T) {
	records, err := Parse([]string{"josé:x:1:1:José:/home/jose:/bin/sh"})
	require.NoError(t, err)

	_, ok := records.Get("josé")
	assert.True(t, ok)
}
