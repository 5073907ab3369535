package security

// Account is a hardcoded login. There is no account database.
type Account struct {
	ID       int64
	Email    string
	Password string
	Name     string
	Enabled  bool
}

var Accounts = map[string]Account{
	"usuario@ejemplo.com": {ID: 1, Email: "usuario@ejemplo.com", Password: "123456", Name: "Usuario Ejemplo", Enabled: true},
}

// Authenticate returns the account for email when password matches.
func Authenticate(email, password string) (Account, bool) {
	a, ok := Accounts[email]
	if !ok || !a.Enabled || a.Password != password {
		return Account{}, false
	}
	return a, true
}
