package main

import (
	"github.com/example/cashew-corner/internal/auth"
	"github.com/urfave/cli/v2"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and store the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true, EnvVars: []string{"CASHEW_EMAIL"}},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"CASHEW_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			e := envFrom(c)
			resp, err := e.session.Login(c.Context, c.String("email"), c.String("password"))
			if err != nil {
				return cli.Exit(auth.LoginMessage(err), 1)
			}
			name := c.String("email")
			if resp.User != nil && resp.User.FullName != "" {
				name = resp.User.FullName
			}
			return newPrinter(e).line(resp.User, "Signed in as %s", name)
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "end the session on the server and forget it locally",
		Action: func(c *cli.Context) error {
			e := envFrom(c)
			e.session.LogoutFromServer(c.Context)
			return newPrinter(e).line(map[string]string{"message": "Logout successful"}, "Signed out")
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the signed-in user",
		Action: func(c *cli.Context) error {
			e, err := authed(c)
			if err != nil {
				return err
			}
			s, _ := e.session.Session()
			u := e.session.CurrentUser()
			if u == nil {
				return newPrinter(e).line(s, "Signed in, session expires %s", s.ExpiresAt.Format("2006-01-02 15:04"))
			}
			return newPrinter(e).line(u, "%s <%s> role=%s, session expires %s",
				u.FullName, u.Email, u.RoleName, s.ExpiresAt.Format("2006-01-02 15:04"))
		},
	}
}
