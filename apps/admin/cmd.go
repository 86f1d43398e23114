package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/thedigitalbhaiya/ans-sub000/core/admin"
	"github.com/thedigitalbhaiya/ans-sub000/core/student"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	studentRepo student.Repository
	studentSvc  *student.Service
	adminSvc    *admin.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed                                   - load the sample students and admin accounts")
	fmt.Println("  resetpassword -username USERNAME       - reset an admin account's password")
	fmt.Println("  listadmins                             - print all admin accounts")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The account's username. The password will be prompted next.")

	switch args[1] {
	case "seed":
		return cli.seed()
	case "listadmins":
		return cli.listAdmins()
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) resetPassword(uname, pwd string) error {
	if err := cli.adminSvc.SetPassword(uname, pwd); err != nil {
		return err
	}
	fmt.Printf("Password reset for %q\n", uname)
	return nil
}

func (cli *commandLine) listAdmins() error {
	accts, err := cli.adminSvc.QueryAll()
	if err != nil {
		return err
	}
	for _, acct := range accts {
		fmt.Printf("%-24s %-12s %-12s %s\n", acct.Name, acct.Username, acct.Role, acct.Phone)
	}
	return nil
}
