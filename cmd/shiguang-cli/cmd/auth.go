package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"shiguang/internal/application/commands"
)

var passwordFlag string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the local account",
}

var authRegisterCmd = &cobra.Command{
	Use:   "register <name> <email>",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pw, err := readPassword(cmd)
		if err != nil {
			return err
		}
		u, err := commands.NewRegisterCommand(authDeps(), args[0], args[1], pw).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "Welcome, %s\n", u.Name)
		return nil
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pw, err := readPassword(cmd)
		if err != nil {
			return err
		}
		u, err := commands.NewLoginCommand(authDeps(), args[0], pw).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "Logged in as %s\n", u.Name)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := commands.NewLogoutCommand(rt.Store).Execute(context.Background()); err != nil {
			return err
		}
		fmt.Fprintln(out(cmd), "Logged out")
		return nil
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := commands.NewCurrentUserCommand(rt.Store, rt.Store).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "%s <%s>  joined %s\n", u.Name, u.Email, u.JoinDate.In(rt.Env.Loc()).Format("2006-01-02"))
		if len(u.Badges) > 0 {
			fmt.Fprintf(out(cmd), "badges: %s\n", strings.Join(u.Badges, ", "))
		}
		return nil
	},
}

// readPassword takes --password, prompts without echo on a terminal, or
// reads one line from piped stdin.
func readPassword(cmd *cobra.Command) (string, error) {
	if passwordFlag != "" {
		return passwordFlag, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authRegisterCmd, authLoginCmd, authLogoutCmd, authWhoamiCmd)

	for _, c := range []*cobra.Command{authRegisterCmd, authLoginCmd} {
		c.Flags().StringVarP(&passwordFlag, "password", "p", "", "password (prompted when omitted)")
	}
}
