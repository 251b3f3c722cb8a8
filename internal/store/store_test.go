package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelius/marquee/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		UserID:   "u1",
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Role:     domain.RoleUser,
	}
}

func TestSaveAndLoadUser(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveUser(testUser()))

	got, err := s.LoadUser()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ada Lovelace", got.FullName)
	assert.Equal(t, domain.RoleUser, got.Role)
}

func TestLoadUserEmpty(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	got, err := s.LoadUser()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClearUser(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveUser(testUser()))
	require.NoError(t, s.ClearUser())

	got, err := s.LoadUser()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveUser(testUser()))
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.LoadUser()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
}

func TestMemoryFallback(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveUser(testUser()))
	got, err := s.LoadUser()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ada@example.com", got.Email)

	require.NoError(t, s.ClearUser())
	got, err = s.LoadUser()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCorruptRecordTreatedAsAbsent(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.put(keyUser, []byte("{not json")))

	got, err := s.LoadUser()
	require.NoError(t, err)
	assert.Nil(t, got)
}
