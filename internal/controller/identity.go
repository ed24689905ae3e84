package controller

import (
	"strings"

	"github.com/abhisek/studygenie/internal/requests"
	"github.com/abhisek/studygenie/internal/session"
)

// Login validates the form and starts a fresh session for email. There is
// no credential check beyond the form: the backend does not authenticate.
func (c *Controller) Login(email, password string) (session.Identity, error) {
	if err := requests.ValidateLogin(email, password); err != nil {
		c.reportInvalid(err)
		return session.Identity{}, err
	}
	id := session.LoginIdentity(strings.TrimSpace(email), c.now())
	c.start(id, false)
	c.notices.Success("Welcome, " + id.Name + "!")
	return id, nil
}

// Signup validates the form and starts a fresh session for the new user.
func (c *Controller) Signup(name, email, password, confirm string) (session.Identity, error) {
	if err := requests.ValidateSignup(name, email, password, confirm); err != nil {
		c.reportInvalid(err)
		return session.Identity{}, err
	}
	id := session.SignupIdentity(strings.TrimSpace(name), strings.TrimSpace(email), c.now())
	c.start(id, false)
	c.notices.Success("Account created successfully!")
	return id, nil
}

// EnterDemo starts a fresh demo session.
func (c *Controller) EnterDemo() session.Identity {
	id := session.DemoIdentity()
	c.start(id, true)
	c.notices.Success("Welcome to Demo Mode! All data will be cleared when you logout.")
	return id
}

// StartLocal starts a session without a sign-in form, as the one-shot
// commands do.
func (c *Controller) StartLocal(name string, demo bool) session.Identity {
	id := session.LocalIdentity(name)
	if demo {
		id = session.DemoIdentity()
	}
	c.start(id, demo)
	return id
}

// Logout drops the identity and everything the session held.
func (c *Controller) Logout() {
	c.sessions.Clear()
	c.notices.Info("Logged out successfully")
}

func (c *Controller) start(id session.Identity, demo bool) {
	epoch := c.sessions.ResetForNewIdentity(id, demo)
	c.logger.Info("session started", "uid", id.UID, "demo", demo, "epoch", string(epoch))
}
