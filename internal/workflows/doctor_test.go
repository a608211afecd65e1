package workflows

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkByName(t *testing.T, res *DoctorResult, name string) CheckResult {
	t.Helper()
	for _, c := range res.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no check named %q in %+v", name, res.Checks)
	return CheckResult{}
}

func TestDoctorWithoutStore(t *testing.T) {
	res, err := Doctor(context.Background(), newTestEnv(t))
	require.NoError(t, err)

	require.Len(t, res.Checks, 1)
	assert.Equal(t, CheckWarning, res.Checks[0].Status)
	assert.Equal(t, DoctorSummary{Warnings: 1}, res.Summary)
	assert.Len(t, res.Suggestions, 1)
}

func TestDoctorUnsyncedStore(t *testing.T) {
	env := newTestEnv(t)
	mustSet(t, env, "home", "wifi", "hunter2")

	res, err := Doctor(context.Background(), env)
	require.NoError(t, err)

	assert.Equal(t, CheckPass, checkByName(t, res, "Store").Status)
	assert.Equal(t, CheckPass, checkByName(t, res, "Index").Status)
	assert.Equal(t, CheckPass, checkByName(t, res, "Items").Status)
	assert.Equal(t, CheckWarning, checkByName(t, res, "Sync").Status)
	assert.False(t, res.Summary.HasErrors())
}

func TestDoctorFindsStaleIndexAndCorruptItems(t *testing.T) {
	env := newTestEnv(t)
	mustSet(t, env, "home", "wifi", "hunter2")
	require.NoError(t, os.WriteFile(env.Store.Path("junk"), []byte("no terminator"), 0o600))

	res, err := Doctor(context.Background(), env)
	require.NoError(t, err)

	index := checkByName(t, res, "Index")
	assert.Equal(t, CheckWarning, index.Status)
	assert.Contains(t, index.Message, "1 file(s) not indexed")

	items := checkByName(t, res, "Items")
	assert.Equal(t, CheckError, items.Status)
	assert.Contains(t, items.Message, "junk")
	assert.True(t, res.Summary.HasErrors())
	assert.Contains(t, res.Suggestions, "Run 'oxio reindex' to rebuild the index")
}

func TestDoctorSyncedStore(t *testing.T) {
	withGitIdentity(t)
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := SyncInit(ctx, env, SyncRemoteOptions{URL: newRemote(t)})
	require.NoError(t, err)

	res, err := Doctor(ctx, env)
	require.NoError(t, err)
	for _, c := range res.Checks {
		assert.Equal(t, CheckPass, c.Status, "%s: %s", c.Name, c.Message)
	}
	assert.Equal(t, 7, res.Summary.Passed)
}

func TestCheckStatusJSON(t *testing.T) {
	data, err := CheckWarning.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"warning"`, string(data))
}
