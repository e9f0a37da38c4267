package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pairline/pairline/internal/domain"
)

type nopConn struct{}

func (nopConn) TrySend(Frame) error { return nil }
func (nopConn) Close()              {}

func TestRegistry_Register_And_SetIdentity(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	// Given a fresh connection
	reg.Register("a", nopConn{})
	p, ok := reg.Get("a")
	req.True(ok)
	req.Empty(p.Name)

	// When the participant declares its identity
	req.NoError(reg.SetIdentity("a", "Ann", domain.RoleSeeker))

	// Then the record reflects it
	p, ok = reg.Get("a")
	req.True(ok)
	req.Equal("Ann", p.Name)
	req.Equal(domain.RoleSeeker, p.Role)
	req.Equal(1, reg.Count())
}

func TestRegistry_SetIdentity_Unknown_Connection(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()

	err := reg.SetIdentity("ghost", "Ann", domain.RoleSeeker)

	req.ErrorIs(err, domain.ErrNotRegistered)
}

func TestRegistry_SetIdentity_Rejects_Invalid_Name(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	reg.Register("a", nopConn{})

	req.ErrorIs(reg.SetIdentity("a", "", domain.RoleSeeker), domain.ErrNameEmpty)

	req.ErrorIs(reg.SetIdentity("a", strings.Repeat("x", domain.MaxNameLen+1), domain.RoleSeeker), domain.ErrNameTooLong)

	// The limit counts runes, not bytes: a multibyte name at the cap fits
	req.NoError(reg.SetIdentity("a", strings.Repeat("ж", domain.MaxNameLen), domain.RoleSeeker))
	req.ErrorIs(reg.SetIdentity("a", strings.Repeat("ж", domain.MaxNameLen+1), domain.RoleSeeker), domain.ErrNameTooLong)
}

func TestRegistry_Unregister_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry()
	reg.Register("a", nopConn{})

	reg.Unregister("a")
	reg.Unregister("a")

	req.Equal(0, reg.Count())
	_, ok := reg.Get("a")
	req.False(ok)
	_, ok = reg.Conn("a")
	req.False(ok)
}
