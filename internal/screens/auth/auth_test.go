package auth

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studygenie/internal/screen"
	"github.com/abhisek/studygenie/internal/screen/screentest"
	"github.com/abhisek/studygenie/internal/ui/components"
)

func signedOut(t *testing.T) screen.Env {
	env := screentest.Env(t, nil)
	env.Ctrl.Logout()
	return env
}

func TestAuth_Login(t *testing.T) {
	env := signedOut(t)
	s := New(env)
	s.login.Fields[0].SetValue("ada@example.com")
	s.login.Fields[1].SetValue("secret1")

	_, cmd := s.Update(components.FormSubmitMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, screen.SignedInMsg{}, cmd())
	assert.True(t, env.Ctrl.Session().Active())
	assert.Empty(t, s.errMsg)
}

func TestAuth_LoginMissingFields(t *testing.T) {
	env := signedOut(t)
	s := New(env)

	_, cmd := s.Update(components.FormSubmitMsg{})
	assert.Nil(t, cmd)
	assert.Equal(t, "Please fill in all fields", s.errMsg)
	assert.False(t, env.Ctrl.Session().Active())
}

func TestAuth_SignupPasswordMismatch(t *testing.T) {
	s := New(signedOut(t))
	s.Update(tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	require.Equal(t, "Sign Up", s.Title())

	s.signup.Fields[0].SetValue("Ada")
	s.signup.Fields[1].SetValue("ada@example.com")
	s.signup.Fields[2].SetValue("secret1")
	s.signup.Fields[3].SetValue("secret2")
	s.Update(components.FormSubmitMsg{})
	assert.Equal(t, "Passwords do not match!", s.errMsg)
}

func TestAuth_Demo(t *testing.T) {
	env := signedOut(t)
	s := New(env)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, screen.SignedInMsg{}, cmd())
	assert.True(t, env.Ctrl.Session().IsDemo())
}
