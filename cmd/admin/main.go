package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"doppelkopf-server/internal/util"
	"doppelkopf-server/pkg/model"

	"github.com/badoux/checkmail"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var (
	email   = flag.String("email", "", "email address of the player (prompted when empty)")
	name    = flag.String("name", "", "display name (a random table name when empty)")
	isAdmin = flag.Bool("admin", false, "promote the player to site admin without prompting")
)

func main() {
	flag.Parse()

	ctx := context.Background()

	addr := strings.TrimSpace(*email)
	if addr == "" {
		addr = promptEmail()
	}
	if addr == "" {
		os.Exit(1)
	}

	password := promptPassword()
	if password == "" {
		os.Exit(1)
	}

	displayName := strings.TrimSpace(*name)
	if displayName == "" {
		displayName = util.GetRandomName()
	}

	player, err := model.CreatePlayer(ctx, addr, displayName, password, "127.0.0.1")
	if err != nil {
		logrus.WithError(err).Fatal("could not create player")
	}

	fmt.Printf("Created player %d (%s)\n", player.ID, player.DisplayName)

	promote := *isAdmin
	if !promote {
		answer, err := prompt("Make site admin (Y/n)")
		if err != nil {
			logrus.WithError(err).Fatal("could not get answer")
		}

		promote = answer == "" || strings.ToLower(answer)[0] == 'y'
	}

	if promote {
		if err := player.SetIsSiteAdmin(ctx, true); err != nil {
			logrus.WithError(err).Fatal("could not promote player to site admin")
		}

		fmt.Println("Player promoted to site admin")
	}
}

func promptPassword() string {
	for {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(0)
		if err != nil {
			continue
		}
		fmt.Println("")

		password := strings.TrimRight(string(pwBytes), "\r\n")

		if password == "" {
			return ""
		}

		if len(password) < 6 {
			_, _ = fmt.Fprintf(os.Stderr, "password must be 6 or more characters\n")
			continue
		}

		return password
	}
}

func promptEmail() string {
	for {
		str, err := prompt("Email")
		if err != nil {
			logrus.WithError(err).Warn("could not read email")
			continue
		}

		if str == "" {
			return ""
		}

		if err := checkmail.ValidateFormat(str); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			continue
		}

		return str
	}
}

func prompt(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimRight(str, "\r\n"), nil
}
