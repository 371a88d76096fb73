package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrLoginFailed is returned when the dashboard rejects the credentials or cannot
// be reached.
var ErrLoginFailed = errors.New("login failed: invalid credentials or dashboard unreachable")

// RunLogin authenticates against the dashboard and stores the session. An empty
// password is read from the input reader.
func RunLogin(
	ctx context.Context,
	s Session,
	logger *slog.Logger,
	ioTuple IOTuple,
	username, password, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if password == "" {
		if format == "text" {
			_, _ = fmt.Fprint(ioTuple.Writer, "Password: ")
		}
		line, err := bufio.NewReader(ioTuple.Reader).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if !s.Login(ctx, username, password) {
		return ErrLoginFailed
	}

	user, _ := s.User()
	logger.Info("logged in", slog.String("username", user.Username))

	if format == "json" {
		return writeJSON(ioTuple.Writer, map[string]any{
			"username": user.Username,
			"email":    user.Email,
			"state":    s.State().String(),
		})
	}
	_, err := fmt.Fprintf(ioTuple.Writer, "Logged in as %s\n", user.Username)
	return err
}

// RunLogout ends the stored session. It succeeds even without one.
func RunLogout(ctx context.Context, s Session, ioTuple IOTuple) error {
	s.Logout(ctx)
	_, err := fmt.Fprintln(ioTuple.Writer, "Logged out")
	return err
}

// RunStatus prints the session state and the logged in user.
func RunStatus(s Session, ioTuple IOTuple, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	user, ok := s.User()
	if format == "json" {
		result := map[string]any{"state": s.State().String()}
		if ok {
			result["username"] = user.Username
			result["email"] = user.Email
		}
		return writeJSON(ioTuple.Writer, result)
	}

	if !ok {
		_, err := fmt.Fprintln(ioTuple.Writer, "Not logged in")
		return err
	}
	_, err := fmt.Fprintf(ioTuple.Writer, "Logged in as %s\n", user.Username)
	return err
}
