package main

import (
	"github.com/darasa-lms/darasa/core/user"
)

// resetPassword sets a new password on an existing account.
func (cli *commandLine) resetPassword(email, pwd string) error {
	usr, err := cli.usrSvc.GetByEmail(email)
	if err != nil {
		return err
	}

	uu := user.UpdateUser{Password: pwd, PasswordConfirm: pwd}
	if err := uu.Validate(usr, cli.usrSvc); err != nil {
		return err
	}
	if _, err := cli.usrSvc.Update(system, usr.ID, uu); err != nil {
		return err
	}
	logger.Printf("password reset for %s", usr.Email)
	return nil
}
