package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.yaml"))
}

func TestLoadMissingFile(t *testing.T) {
	s := tempStore(t)
	sess, ok := s.Load()
	assert.False(t, ok)
	assert.Nil(t, sess)
	assert.Nil(t, s.Current())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := tempStore(t)
	err := s.Save(&Session{Token: "tok-123", UserID: 7, Username: "ada", IsPremium: true})
	require.NoError(t, err)

	// A fresh store against the same path must restore the session.
	restored := NewStore(s.path)
	sess, ok := restored.Load()
	require.True(t, ok)
	assert.Equal(t, "tok-123", sess.Token)
	assert.Equal(t, int64(7), sess.UserID)
	assert.Equal(t, "ada", sess.Username)
	assert.True(t, sess.IsPremium)
	assert.Equal(t, "tok-123", restored.Token())
}

func TestLoadMalformedFile(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.path), 0755))
	require.NoError(t, os.WriteFile(s.path, []byte("{not yaml:::"), 0600))

	_, ok := s.Load()
	assert.False(t, ok)
}

func TestLoadWithoutToken(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.path), 0755))
	require.NoError(t, os.WriteFile(s.path, []byte("username: ada\nuser_id: 7\n"), 0600))

	// A session file without a credential is treated as logged out.
	_, ok := s.Load()
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Save(&Session{Token: "tok", UserID: 1, Username: "ada"}))
	require.NoError(t, s.Clear())

	assert.Nil(t, s.Current())
	assert.Empty(t, s.Token())
	_, ok := s.Load()
	assert.False(t, ok)

	// Clearing twice is fine.
	require.NoError(t, s.Clear())
}

func TestSetPremiumRewritesWholeSession(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Save(&Session{Token: "tok", UserID: 3, Username: "grace"}))
	require.NoError(t, s.SetPremium(true))

	// Siblings survive the premium update on disk, not just in memory.
	restored := NewStore(s.path)
	sess, ok := restored.Load()
	require.True(t, ok)
	assert.True(t, sess.IsPremium)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, int64(3), sess.UserID)
	assert.Equal(t, "grace", sess.Username)
}

func TestSetPremiumWithoutSession(t *testing.T) {
	s := tempStore(t)
	assert.Error(t, s.SetPremium(true))
}
