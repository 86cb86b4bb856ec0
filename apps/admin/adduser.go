package main

import (
	"github.com/ojtrack/ojtrack/core/user"
)

func (cli *commandLine) addUser(name, email, role, pwd string) error {
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
	if _, err := cli.usrSvc.Create(nu); err != nil {
		return err
	}
	return nil
}
