package session

import (
	"fmt"
	"strings"
	"time"
)

// Identity is the signed-in learner. Authentication is a local stub.
type Identity struct {
	UID   string
	Name  string
	Email string
}

// Demo identity values.
const (
	DemoEmail = "demo@example.com"
	DemoName  = "Demo User"
	DemoUID   = "demo_user"
)

// DisplayName returns the name shown in the header, marking demo sessions.
func (id Identity) DisplayName(demo bool) string {
	if demo {
		return id.Name + " (Demo)"
	}
	return id.Name
}

// LoginIdentity builds the identity for an email login. The name is the
// local part of the address.
func LoginIdentity(email string, now time.Time) Identity {
	email = strings.TrimSpace(email)
	name, _, _ := strings.Cut(email, "@")
	return Identity{
		UID:   fmt.Sprintf("dev_user_%d", now.UnixMilli()),
		Name:  name,
		Email: email,
	}
}

// SignupIdentity builds the identity for a new account.
func SignupIdentity(name, email string, now time.Time) Identity {
	return Identity{
		UID:   fmt.Sprintf("user_%d", now.UnixMilli()),
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}
}

// DemoIdentity returns the fixed demo learner.
func DemoIdentity() Identity {
	return Identity{UID: DemoUID, Name: DemoName, Email: DemoEmail}
}

// LocalIdentity is used by one-shot CLI commands that never sign in.
func LocalIdentity(name string) Identity {
	if name == "" {
		name = "local"
	}
	return Identity{UID: "local_" + name, Name: name}
}
