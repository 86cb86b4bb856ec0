package main

func (cli *commandLine) resetPassword(email, pwd string) error {
	return cli.usrSvc.ResetPassword(email, pwd)
}
