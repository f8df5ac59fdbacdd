package main

import (
	"github.com/darasa-lms/darasa/core"
	"github.com/darasa-lms/darasa/core/user"
)

// system is the actor used for CLI operations.
var system = core.Actor{Role: core.RoleAdmin}

// addUser creates a user account, admin or student.
func (cli *commandLine) addUser(email, name, pwd string, isAdmin bool) error {
	role := core.RoleStudent
	if isAdmin {
		role = core.RoleAdmin
	}

	nu := user.NewUser{
		Name:            name,
		Email:           email,
		Role:            role,
		Password:        pwd,
		PasswordConfirm: pwd,
	}
	if err := nu.Validate(cli.usrSvc); err != nil {
		return err
	}

	usr, err := cli.usrSvc.Create(system, nu)
	if err != nil {
		return err
	}
	logger.Printf("user %s created (%s)", usr.Email, usr.Role)
	return nil
}
