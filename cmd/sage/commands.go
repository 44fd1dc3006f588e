package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmorita/sage/internal/chat"
	"github.com/dmorita/sage/internal/validate"
)

var (
	regFirstName string
	regLastName  string
	regEmail     string
	regPassword  string
	regConfirm   string

	loginEmail    string
	loginPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validate.Name(regFirstName, "First name"); err != nil {
			return err
		}
		if err := validate.Name(regLastName, "Last name"); err != nil {
			return err
		}
		if err := validate.Email(regEmail); err != nil {
			return err
		}
		if err := validate.PasswordConfirmation(regPassword, regConfirm); err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}

		msg, err := a.manager.Register(cmd.Context(), regFirstName, regLastName, regEmail, regPassword)
		if err != nil {
			return err
		}

		fmt.Println(msg)
		fmt.Println("Now log in with: sage login --email", regEmail)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validate.Email(loginEmail); err != nil {
			return err
		}
		// The login form requires a password but does not re-check its
		// strength; the server is the judge of existing credentials.
		if loginPassword == "" {
			return &validate.FieldRequiredError{Field: "Password"}
		}

		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.manager.Login(cmd.Context(), loginEmail, loginPassword); err != nil {
			return err
		}

		if user, ok := a.manager.CurrentUser(); ok {
			fmt.Println("Logged in as", user.FullName())
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the session and the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		a.manager.Logout()
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		user, ok := a.manager.CurrentUser()
		if !ok {
			if _, hasToken := a.manager.Token(); hasToken {
				fmt.Println("A stored token was restored, but the profile is only available after logging in again.")
				return nil
			}
			fmt.Println("Not logged in.")
			return nil
		}

		fmt.Println(user.FullName())
		fmt.Println(user.Email)
		fmt.Println("Member since:", user.CreatedAt.Format("Jan 2, 2006"))
		fmt.Println("Last login:", user.LastLogin.Format("Jan 2, 2006 15:04"))
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat with the assistant",
	Long: `Starts a read-eval loop against the assistant.

Type a message and press enter. /clear resets the transcript, /quit exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		sess := chat.NewSession(a.client, a.manager, logger)
		scanner := bufio.NewScanner(os.Stdin)

		fmt.Println("Chatting with Sage. /clear resets, /quit exits.")
		for {
			fmt.Print("you> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())

			switch line {
			case "":
				continue
			case "/quit":
				return scanner.Err()
			case "/clear":
				sess.Clear()
				fmt.Println("Transcript cleared.")
				continue
			}

			sess.Send(cmd.Context(), line)
			msgs := sess.Messages()
			if len(msgs) > 0 && !msgs[len(msgs)-1].FromUser {
				fmt.Println("sage>", msgs[len(msgs)-1].Content)
			}
		}
		return scanner.Err()
	},
}

func init() {
	registerCmd.Flags().StringVar(&regFirstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&regLastName, "last-name", "", "last name")
	registerCmd.Flags().StringVar(&regEmail, "email", "", "email address")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "password (min 6 characters)")
	registerCmd.Flags().StringVar(&regConfirm, "confirm", "", "password confirmation")

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password")
}
